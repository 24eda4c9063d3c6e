package utils

import (
	"math"
	"strconv"
	"strings"
)

// ParseFloatOrZero converte valores numéricos livres (com separador de milhar
// ou símbolo de moeda) e devolve 0 quando não há número válido
func ParseFloatOrZero(value string) float64 {
	cleaned := strings.NewReplacer(",", "", "¥", "", "￥", "", " ", "").Replace(strings.TrimSpace(value))
	if cleaned == "" {
		return 0
	}
	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

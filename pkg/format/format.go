package format

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.Japanese)

// Yen arredonda para o iene inteiro e agrupa os milhares: ¥1,234,567
func Yen(v float64) string {
	rounded := int64(math.Round(v))
	if rounded < 0 {
		return printer.Sprintf("-¥%d", -rounded)
	}
	return printer.Sprintf("¥%d", rounded)
}

// Percent usa uma casa decimal: 12.5%
func Percent(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		v = 0
	}
	return printer.Sprintf("%.1f%%", v)
}

func Ratio(v float64) string {
	return printer.Sprintf("%.1fx", v)
}

func Count(n int) string {
	return printer.Sprintf("%d", n)
}

// Money carrega o valor bruto e o texto formatado
type Money struct {
	Value     float64 `json:"value"`
	Formatted string  `json:"formatted"`
}

func NewMoney(v float64) Money {
	return Money{Value: v, Formatted: Yen(v)}
}

type Rate struct {
	Value     float64 `json:"value"`
	Formatted string  `json:"formatted"`
}

func NewRate(v float64) Rate {
	return Rate{Value: v, Formatted: Percent(v)}
}

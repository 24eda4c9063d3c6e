package utils

import (
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Formatos aceitos nas datas vindas de fora: ISO, com barras, RFC3339 e o
// formato HTTP usado por alguns serviços ao serializar datas
var dateLayouts = []string{
	time.DateOnly,
	"2006/01/02",
	time.RFC3339,
	"2006-01-02 15:04:05",
	http.TimeFormat,
}

func ParseDate(dateStr string) (time.Time, error) {
	value := strings.TrimSpace(dateStr)
	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			y, m, d := parsed.Date()
			return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("data inválida: %q", dateStr)
}

// ParseOptionalDate devolve nil para string vazia
func ParseOptionalDate(dateStr string) (*time.Time, error) {
	if strings.TrimSpace(dateStr) == "" {
		return nil, nil
	}
	date, err := ParseDate(dateStr)
	if err != nil {
		return nil, err
	}
	return &date, nil
}

func FormatDate(t time.Time) string {
	return t.Format(time.DateOnly)
}

func FormatOptionalDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return FormatDate(*t)
}

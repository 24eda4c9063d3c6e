package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestYen(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		want  string
	}{
		{name: "Zero", value: 0, want: "¥0"},
		{name: "Agrupamento de milhares", value: 1234567, want: "¥1,234,567"},
		{name: "Arredonda para o iene inteiro", value: 24999.5, want: "¥25,000"},
		{name: "Saldo negativo", value: -175000, want: "-¥175,000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Yen(tt.value))
		})
	}
}

func TestPercent(t *testing.T) {
	assert.Equal(t, "12.5%", Percent(12.46))
	assert.Equal(t, "-87.5%", Percent(-87.5))
	assert.Equal(t, "0.0%", Percent(0))
}

func TestNewMoney(t *testing.T) {
	m := NewMoney(25000)
	assert.Equal(t, 25000.0, m.Value)
	assert.Equal(t, "¥25,000", m.Formatted)
}

package utils

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	expected := time.Date(2025, time.May, 28, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		input string
		valid bool
	}{
		{name: "Formato ISO", input: "2025-05-28", valid: true},
		{name: "Formato com barras", input: "2025/05/28", valid: true},
		{name: "RFC3339 com horário - descarta horário", input: "2025-05-28T15:04:05Z", valid: true},
		{name: "Formato HTTP", input: "Wed, 28 May 2025 00:00:00 GMT", valid: true},
		{name: "Espaços nas bordas", input: " 2025-05-28 ", valid: true},
		{name: "Texto inválido", input: "28 de maio", valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			if !tt.valid {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, expected, got)
		})
	}
}

func TestParseOptionalDate(t *testing.T) {
	got, err := ParseOptionalDate("")
	assert.NoError(t, err)
	assert.Nil(t, got)

	got, err = ParseOptionalDate("2025/01/02")
	require.NoError(t, err)
	assert.Equal(t, "2025-01-02", FormatOptionalDate(got))
	assert.Equal(t, "", FormatOptionalDate(nil))
}

func TestParseFloatOrZero(t *testing.T) {
	assert.Equal(t, 25000.0, ParseFloatOrZero("25000"))
	assert.Equal(t, 1234567.5, ParseFloatOrZero("¥1,234,567.5"))
	assert.Equal(t, 0.0, ParseFloatOrZero("abc"))
	assert.Equal(t, 0.0, ParseFloatOrZero(""))
	assert.Equal(t, 0.0, ParseFloatOrZero("NaN"))
}

func TestGeneratePrefixedID(t *testing.T) {
	id, err := GeneratePrefixedID("exp")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(id, "exp_"))
	assert.Len(t, id, len("exp_")+idSize)
}

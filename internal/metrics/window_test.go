package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/saas-metrics-api/internal/domain"
)

func TestWindow_ActiveInMonth(t *testing.T) {
	may := NewWindow(month(2025, time.May))
	april := NewWindow(month(2025, time.April))

	tests := []struct {
		name     string
		customer domain.Customer
		window   Window
		expected bool
	}{
		{
			name:     "Cliente ativo iniciado antes do mês - deve estar ativo",
			customer: activeCustomer(1, 1000, date(2024, time.March, 15)),
			window:   may,
			expected: true,
		},
		{
			name:     "Cliente iniciado no último dia do mês - deve estar ativo",
			customer: activeCustomer(1, 1000, date(2025, time.May, 31)),
			window:   may,
			expected: true,
		},
		{
			name:     "Cliente iniciado depois do mês - não deve estar ativo",
			customer: activeCustomer(1, 1000, date(2025, time.June, 1)),
			window:   may,
			expected: false,
		},
		{
			name:     "Churn no mês anterior - ativo no mês do churn",
			customer: churnedCustomer(1, 1000, date(2024, time.January, 10), date(2025, time.April, 20)),
			window:   april,
			expected: true,
		},
		{
			name:     "Churn no mês anterior - inativo no mês seguinte",
			customer: churnedCustomer(1, 1000, date(2024, time.January, 10), date(2025, time.April, 20)),
			window:   may,
			expected: false,
		},
		{
			name:     "Churn exatamente no primeiro dia do mês - não deve estar ativo",
			customer: churnedCustomer(1, 1000, date(2024, time.January, 10), date(2025, time.May, 1)),
			window:   may,
			expected: false,
		},
		{
			name: "Trial - nunca conta como ativo",
			customer: func() domain.Customer {
				c := activeCustomer(1, 0, date(2025, time.May, 2))
				c.Status = domain.CustomerStatusTrial
				return c
			}(),
			window:   may,
			expected: false,
		},
		{
			name: "Churn sem data - não deve estar ativo",
			customer: func() domain.Customer {
				c := activeCustomer(1, 1000, date(2024, time.January, 10))
				c.Status = domain.CustomerStatusChurned
				return c
			}(),
			window:   may,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.window.ActiveInMonth(tt.customer))
		})
	}
}

func TestNewWindow_Boundaries(t *testing.T) {
	w := NewWindow(month(2024, time.February))

	assert.Equal(t, date(2024, time.February, 1), w.First)
	assert.Equal(t, date(2024, time.February, 29), w.Last)
	assert.Equal(t, month(2024, time.January), w.Prev().Month)

	current := CurrentWindow(time.Date(2025, time.January, 3, 15, 30, 0, 0, time.UTC))
	assert.Equal(t, "01-2025", current.Month.Period())
	assert.Equal(t, "12-2024", current.Prev().Month.Period())
}

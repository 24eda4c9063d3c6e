package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/saas-metrics-api/internal/domain"
)

func TestComposePnL(t *testing.T) {
	may := NewWindow(month(2025, time.May))

	tests := []struct {
		name     string
		snap     domain.Snapshot
		validate func(t *testing.T, pnl ProfitAndLoss)
	}{
		{
			name: "Cliente ativo e despesa de publicidade aprovada - saldo negativo",
			snap: domain.Snapshot{
				Customers: []domain.Customer{activeCustomer(1, 25000, date(2024, time.March, 15))},
				Expenses:  []domain.Expense{approvedExpense("e1", 200000, domain.CategoryAdvertising, date(2025, time.May, 28))},
			},
			validate: func(t *testing.T, pnl ProfitAndLoss) {
				assert.Equal(t, "05-2025", pnl.Period)
				assert.Equal(t, 25000.0, pnl.MRR)
				assert.Equal(t, 25000.0, pnl.TotalIncome)
				assert.Equal(t, 200000.0, pnl.TotalExpense)
				assert.Equal(t, -175000.0, pnl.Balance)
				assert.Equal(t, -700.0, pnl.ProfitMargin)

				require.Len(t, pnl.Rows, 2)
				assert.Equal(t, RowRevenue, pnl.Rows[0].Kind)
				assert.Equal(t, "mrr", pnl.Rows[0].Key)
				assert.Equal(t, RowExpense, pnl.Rows[1].Kind)
				assert.Equal(t, string(domain.CategoryAdvertising), pnl.Rows[1].Key)
				assert.Equal(t, 200000.0, pnl.Rows[1].Amount)
			},
		},
		{
			name: "Nenhum cliente ativo no mês - MRR e margem zerados",
			snap: domain.Snapshot{
				Customers: []domain.Customer{
					activeCustomer(1, 25000, date(2025, time.July, 1)),
					churnedCustomer(2, 9000, date(2024, time.January, 1), date(2025, time.February, 1)),
				},
			},
			validate: func(t *testing.T, pnl ProfitAndLoss) {
				assert.Equal(t, 0.0, pnl.MRR)
				assert.Equal(t, 0.0, pnl.TotalIncome)
				assert.Equal(t, 0.0, pnl.ProfitMargin)
				assert.Empty(t, pnl.Rows)
			},
		},
		{
			name: "Coleções vazias - resultado zerado e válido",
			snap: domain.Snapshot{},
			validate: func(t *testing.T, pnl ProfitAndLoss) {
				assert.Equal(t, 0.0, pnl.Balance)
				assert.Equal(t, 0.0, pnl.ProfitMargin)
				assert.Empty(t, pnl.Expenses.Categories)
			},
		},
		{
			name: "Todas as fontes de receita - linhas zeradas omitidas e rodapé completo",
			snap: domain.Snapshot{
				Customers: func() []domain.Customer {
					c := activeCustomer(1, 30000, date(2025, time.May, 2))
					c.InitialFee = 100000
					return []domain.Customer{c}
				}(),
				Expenses: []domain.Expense{
					approvedExpense("e1", 40000, domain.CategoryPersonnel, date(2025, time.May, 10)),
					{ID: "e2", Date: date(2025, time.May, 11), Category: domain.CategoryAdvertising, Amount: 99999, Status: domain.ExpenseStatusPending},
				},
			},
			validate: func(t *testing.T, pnl ProfitAndLoss) {
				assert.Equal(t, 130000.0, pnl.TotalIncome)
				assert.Equal(t, 40000.0, pnl.TotalExpense)
				assert.Equal(t, 90000.0, pnl.Balance)
				assert.InDelta(t, 69.2307, pnl.ProfitMargin, 1e-3)

				require.Len(t, pnl.Rows, 3)
				assert.Equal(t, "mrr", pnl.Rows[0].Key)
				assert.Equal(t, "initial_fees", pnl.Rows[1].Key)
				assert.Equal(t, string(domain.CategoryPersonnel), pnl.Rows[2].Key)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pnl := ComposePnL(tt.snap, may)
			assert.Equal(t, pnl.TotalIncome-pnl.TotalExpense, pnl.Balance)
			tt.validate(t, pnl)
		})
	}
}

func TestComposePnL_Idempotent(t *testing.T) {
	snap := domain.Snapshot{
		Customers: []domain.Customer{
			activeCustomer(1, 25000.33, date(2024, time.March, 15)),
			activeCustomer(2, 12345.67, date(2025, time.May, 2)),
		},
		Expenses: []domain.Expense{
			approvedExpense("e1", 1000.1, domain.CategoryAdvertising, date(2025, time.May, 3)),
			approvedExpense("e2", 2000.2, domain.CategoryOutsourcing, date(2025, time.May, 4)),
		},
	}
	w := NewWindow(month(2025, time.May))

	assert.Equal(t, ComposePnL(snap, w), ComposePnL(snap, w))
}

func TestSummarizeExpenses(t *testing.T) {
	may := NewWindow(month(2025, time.May))

	web := approvedExpense("e1", 30000, domain.CategoryAdvertising, date(2025, time.May, 1))
	web.Subcategory = domain.SubWebAds
	social := approvedExpense("e2", 10000, domain.CategoryAdvertising, date(2025, time.May, 2))
	social.Subcategory = domain.SubSocialAds

	expenses := []domain.Expense{
		approvedExpense("e0", 25000, domain.CategoryOutsourcing, date(2025, time.May, 1)),
		web,
		social,
		approvedExpense("e3", 25000, domain.CategoryPersonnel, date(2025, time.May, 31)),
		approvedExpense("e4", 77777, domain.CategoryPersonnel, date(2025, time.April, 30)),
		{ID: "e5", Date: date(2025, time.May, 5), Category: domain.CategoryPersonnel, Amount: 5000, Status: domain.ExpenseStatusPending},
	}

	summary := SummarizeExpenses(expenses, may)

	assert.Equal(t, 90000.0, summary.Total)
	assert.Equal(t, 4, summary.Count)
	require.Len(t, summary.Categories, 3)

	assert.Equal(t, domain.CategoryAdvertising, summary.Categories[0].Category)
	assert.Equal(t, 40000.0, summary.Categories[0].Amount)
	// empate resolvido pela ordem de aparição
	assert.Equal(t, domain.CategoryOutsourcing, summary.Categories[1].Category)
	assert.Equal(t, domain.CategoryPersonnel, summary.Categories[2].Category)

	require.Len(t, summary.Categories[0].Subcategories, 2)
	assert.Equal(t, domain.SubWebAds, summary.Categories[0].Subcategories[0].Subcategory)
	assert.Equal(t, 75.0, summary.Categories[0].Subcategories[0].Percentage)

	var total float64
	for _, c := range summary.Categories {
		total += c.Percentage
	}
	assert.InDelta(t, 100.0, total, 0.1*float64(len(summary.Categories)))
}

func TestSummarizeExpenses_NoApprovedExpenses(t *testing.T) {
	summary := SummarizeExpenses([]domain.Expense{
		{ID: "e1", Date: date(2025, time.May, 5), Category: domain.CategoryPersonnel, Amount: 5000, Status: domain.ExpenseStatusPending},
	}, NewWindow(month(2025, time.May)))

	assert.Equal(t, 0.0, summary.Total)
	assert.Equal(t, 0, summary.Count)
	assert.Empty(t, summary.Categories)
}

package metrics

import (
	"sort"

	"github.com/vfg2006/saas-metrics-api/internal/domain"
)

type SubcategoryAmount struct {
	Subcategory domain.ExpenseSubcategory `json:"subcategory"`
	Label       string                    `json:"label"`
	Amount      float64                   `json:"amount"`
	Percentage  float64                   `json:"percentage"`
}

type CategoryAmount struct {
	Category      domain.ExpenseCategory `json:"category"`
	Label         string                 `json:"label"`
	Amount        float64                `json:"amount"`
	Percentage    float64                `json:"percentage"`
	Subcategories []SubcategoryAmount    `json:"subcategories"`
}

type ExpenseSummary struct {
	Period     string           `json:"period"`
	Total      float64          `json:"total"`
	Count      int              `json:"count"`
	Categories []CategoryAmount `json:"categories"`
}

// SummarizeExpenses agrega as despesas aprovadas do mês por categoria.
// Categorias ficam em ordem decrescente de valor; empates mantêm a ordem
// em que a categoria apareceu primeiro.
func SummarizeExpenses(expenses []domain.Expense, w Window) ExpenseSummary {
	summary := ExpenseSummary{Period: w.Month.Period()}

	index := make(map[domain.ExpenseCategory]int)
	subIndex := make(map[domain.ExpenseCategory]map[domain.ExpenseSubcategory]int)

	for _, e := range expenses {
		if !e.IsApproved() || !w.Contains(e.Date) {
			continue
		}

		summary.Total += e.Amount
		summary.Count++

		i, ok := index[e.Category]
		if !ok {
			i = len(summary.Categories)
			index[e.Category] = i
			subIndex[e.Category] = make(map[domain.ExpenseSubcategory]int)
			summary.Categories = append(summary.Categories, CategoryAmount{
				Category: e.Category,
				Label:    e.Category.Label(),
			})
		}
		cat := &summary.Categories[i]
		cat.Amount += e.Amount

		if e.Subcategory == "" {
			continue
		}
		j, ok := subIndex[e.Category][e.Subcategory]
		if !ok {
			j = len(cat.Subcategories)
			subIndex[e.Category][e.Subcategory] = j
			cat.Subcategories = append(cat.Subcategories, SubcategoryAmount{
				Subcategory: e.Subcategory,
				Label:       e.Subcategory.Label(),
			})
		}
		cat.Subcategories[j].Amount += e.Amount
	}

	sort.SliceStable(summary.Categories, func(a, b int) bool {
		return summary.Categories[a].Amount > summary.Categories[b].Amount
	})

	for i := range summary.Categories {
		cat := &summary.Categories[i]
		cat.Percentage = percentage(cat.Amount, summary.Total)

		sort.SliceStable(cat.Subcategories, func(a, b int) bool {
			return cat.Subcategories[a].Amount > cat.Subcategories[b].Amount
		})
		for j := range cat.Subcategories {
			cat.Subcategories[j].Percentage = percentage(cat.Subcategories[j].Amount, cat.Amount)
		}
	}

	return summary
}

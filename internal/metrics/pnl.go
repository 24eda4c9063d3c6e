package metrics

import "github.com/vfg2006/saas-metrics-api/internal/domain"

type RowKind string

const (
	RowRevenue RowKind = "revenue"
	RowExpense RowKind = "expense"
)

type PnLRow struct {
	Kind   RowKind `json:"kind"`
	Key    string  `json:"key"`
	Label  string  `json:"label"`
	Amount float64 `json:"amount"`
}

type ProfitAndLoss struct {
	Period        string         `json:"period"`
	MRR           float64        `json:"mrr"`
	InitialFees   float64        `json:"initialFees"`
	OperationFees float64        `json:"operationFees"`
	TotalIncome   float64        `json:"totalIncome"`
	TotalExpense  float64        `json:"totalExpense"`
	Balance       float64        `json:"balance"`
	ProfitMargin  float64        `json:"profitMargin"`
	Rows          []PnLRow       `json:"rows"`
	Expenses      ExpenseSummary `json:"expenses"`
}

// ComposePnL monta o demonstrativo do mês. Linhas com valor zero são omitidas,
// os totais do rodapé não dependem dessa omissão.
func ComposePnL(snap domain.Snapshot, w Window) ProfitAndLoss {
	pnl := ProfitAndLoss{
		Period:        w.Month.Period(),
		MRR:           MonthlyMRR(snap.Customers, w),
		InitialFees:   MonthlyInitialFees(snap.Customers, w),
		OperationFees: MonthlyOperationFees(snap.Customers, w),
		Expenses:      SummarizeExpenses(snap.Expenses, w),
	}

	pnl.TotalIncome = pnl.MRR + pnl.InitialFees + pnl.OperationFees
	pnl.TotalExpense = pnl.Expenses.Total
	pnl.Balance = pnl.TotalIncome - pnl.TotalExpense
	pnl.ProfitMargin = percentage(pnl.Balance, pnl.TotalIncome)

	revenues := []PnLRow{
		{Kind: RowRevenue, Key: "mrr", Label: "月額利用料 (MRR)", Amount: pnl.MRR},
		{Kind: RowRevenue, Key: "initial_fees", Label: "初期費用", Amount: pnl.InitialFees},
		{Kind: RowRevenue, Key: "operation_fees", Label: "運用代行費", Amount: pnl.OperationFees},
	}
	for _, row := range revenues {
		if row.Amount != 0 {
			pnl.Rows = append(pnl.Rows, row)
		}
	}

	for _, cat := range pnl.Expenses.Categories {
		if cat.Amount == 0 {
			continue
		}
		pnl.Rows = append(pnl.Rows, PnLRow{
			Kind:   RowExpense,
			Key:    string(cat.Category),
			Label:  cat.Label,
			Amount: cat.Amount,
		})
	}

	return pnl
}

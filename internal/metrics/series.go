package metrics

import "github.com/vfg2006/saas-metrics-api/internal/domain"

const DefaultSeriesLength = 6

type SeriesPoint struct {
	Label   string  `json:"label"`
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
	Balance float64 `json:"balance"`
}

// TrailingSeries devolve n meses terminando em end, do mais antigo para o mais recente
func TrailingSeries(snap domain.Snapshot, end domain.Month, n int) []SeriesPoint {
	if n <= 0 {
		n = DefaultSeriesLength
	}

	points := make([]SeriesPoint, 0, n)
	for i := n - 1; i >= 0; i-- {
		w := NewWindow(end.AddMonths(-i))
		pnl := ComposePnL(snap, w)
		points = append(points, SeriesPoint{
			Label:   w.Month.Period(),
			Income:  pnl.TotalIncome,
			Expense: pnl.TotalExpense,
			Balance: pnl.Balance,
		})
	}
	return points
}

package metrics

import "github.com/vfg2006/saas-metrics-api/internal/domain"

const (
	DefaultCohortCount = 6
	maxCohortPoints    = 6
)

type Cohort struct {
	Label     string    `json:"label"`
	Size      int       `json:"size"`
	Retention []float64 `json:"retention"`
}

// Cohorts agrupa os clientes pelo mês de início (trials de fora) nos últimos n
// meses até target e acompanha a fração ainda ativa em cada mês seguinte.
// Cohorts vazias não aparecem.
func Cohorts(customers []domain.Customer, target domain.Month, n int) []Cohort {
	if n <= 0 {
		n = DefaultCohortCount
	}

	out := make([]Cohort, 0, n)
	for i := n - 1; i >= 0; i-- {
		start := target.AddMonths(-i)
		startWindow := NewWindow(start)

		members := make([]domain.Customer, 0)
		for _, c := range customers {
			if c.Status != domain.CustomerStatusTrial && startWindow.Contains(c.StartDate) {
				members = append(members, c)
			}
		}
		if len(members) == 0 {
			continue
		}

		cohort := Cohort{Label: start.Period(), Size: len(members)}
		for k := 0; k < maxCohortPoints; k++ {
			m := start.AddMonths(k)
			if target.Before(m) {
				break
			}
			w := NewWindow(m)
			var active int
			for _, c := range members {
				if w.ActiveInMonth(c) {
					active++
				}
			}
			cohort.Retention = append(cohort.Retention, percentage(float64(active), float64(cohort.Size)))
		}
		out = append(out, cohort)
	}
	return out
}

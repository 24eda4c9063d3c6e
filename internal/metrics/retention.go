package metrics

import (
	"math"
	"time"

	"github.com/vfg2006/saas-metrics-api/internal/domain"
)

type Retention struct {
	ChurnedLastMonth         int     `json:"churnedLastMonth"`
	ActiveBeginningLastMonth int     `json:"activeBeginningLastMonth"`
	MonthlyChurnRate         float64 `json:"monthlyChurnRate"`
	AvgRetentionMonths       float64 `json:"avgRetentionMonths"`
	BeginningMRR             float64 `json:"beginningMrr"`
	EndingMRR                float64 `json:"endingMrr"`
	NRR                      float64 `json:"nrr"`
}

// ComputeRetention calcula churn do mês anterior, retenção média e NRR.
// prevMRR é o MRR por cliente no mês anterior; quando nil, é derivado dos
// clientes ativos naquele mês.
func ComputeRetention(customers []domain.Customer, now time.Time, prevMRR map[int]float64) Retention {
	current := CurrentWindow(now)
	last := current.Prev()

	var r Retention
	for _, c := range customers {
		if c.IsChurned() && c.ChurnDate != nil && last.Contains(*c.ChurnDate) {
			r.ChurnedLastMonth++
		}
		if activeAtBeginning(c, last.First) {
			r.ActiveBeginningLastMonth++
		}
	}
	r.MonthlyChurnRate = percentage(float64(r.ChurnedLastMonth), float64(r.ActiveBeginningLastMonth))
	r.AvgRetentionMonths = averageRetentionMonths(customers, now)

	if prevMRR == nil {
		prevMRR = ActiveMRR(customers, last)
	}
	r.BeginningMRR, r.EndingMRR = retainedMRR(customers, current, prevMRR)
	r.NRR = percentage(r.EndingMRR, r.BeginningMRR)

	return r
}

func activeAtBeginning(c domain.Customer, first time.Time) bool {
	if !domain.DateOnly(c.StartDate).Before(first) {
		return false
	}
	if c.IsActive() {
		return true
	}
	return c.IsChurned() && c.ChurnDate != nil && !domain.DateOnly(*c.ChurnDate).Before(first)
}

func averageRetentionMonths(customers []domain.Customer, now time.Time) float64 {
	var total float64
	var count int
	for _, c := range customers {
		if !c.IsActive() {
			continue
		}
		end := now
		if c.ChurnDate != nil {
			end = *c.ChurnDate
		}
		total += float64(MonthsBetween(c.StartDate, end))
		count++
	}
	return ratio(total, float64(count))
}

// retainedMRR soma o MRR inicial da base do mês anterior e o MRR atual
// desses mesmos clientes que continuam ativos
func retainedMRR(customers []domain.Customer, current Window, prevMRR map[int]float64) (float64, float64) {
	var beginning, ending float64
	for _, id := range sortedIDs(prevMRR) {
		beginning += prevMRR[id]
	}
	for _, c := range customers {
		if _, ok := prevMRR[c.ID]; ok && current.ActiveInMonth(c) {
			ending += c.MRR
		}
	}
	return beginning, ending
}

// MonthsBetween conta meses completos de 30.4375 dias entre as datas, nunca negativo
func MonthsBetween(start, end time.Time) int {
	days := domain.DateOnly(end).Sub(domain.DateOnly(start)).Hours() / 24
	months := math.Floor(days / DaysPerMonth)
	if months < 0 {
		return 0
	}
	return int(months)
}

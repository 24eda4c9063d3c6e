package metrics

import (
	"sort"

	"github.com/vfg2006/saas-metrics-api/internal/domain"
)

// MonthlyMRR soma o MRR dos clientes ativos no mês
func MonthlyMRR(customers []domain.Customer, w Window) float64 {
	var total float64
	for _, c := range customers {
		if w.ActiveInMonth(c) {
			total += c.MRR
		}
	}
	return total
}

// MonthlyInitialFees soma as taxas iniciais dos contratos iniciados no mês
func MonthlyInitialFees(customers []domain.Customer, w Window) float64 {
	var total float64
	for _, c := range customers {
		if w.Contains(c.StartDate) {
			total += c.InitialFee
		}
	}
	return total
}

// MonthlyOperationFees soma as taxas de operação dos clientes ativos no mês
func MonthlyOperationFees(customers []domain.Customer, w Window) float64 {
	var total float64
	for _, c := range customers {
		if c.OperationFee > 0 && w.ActiveInMonth(c) {
			total += c.OperationFee
		}
	}
	return total
}

func ARR(mrr float64) float64 {
	return mrr * 12
}

// ActiveMRR indexa o MRR dos clientes ativos no mês pelo ID
func ActiveMRR(customers []domain.Customer, w Window) map[int]float64 {
	out := make(map[int]float64)
	for _, c := range customers {
		if w.ActiveInMonth(c) {
			out[c.ID] = c.MRR
		}
	}
	return out
}

// ARPA é a receita média por conta ativa no mês
func ARPA(customers []domain.Customer, w Window) float64 {
	active := w.activeCustomers(customers)
	return ratio(MonthlyMRR(active, w), float64(len(active)))
}

type Movement struct {
	Mode             MovementMode `json:"mode"`
	New              float64      `json:"newBusiness"`
	Expansion        float64      `json:"expansion"`
	Contraction      float64      `json:"contraction"`
	Churn            float64      `json:"churn"`
	Net              float64      `json:"net"`
	NewCount         int          `json:"newCount"`
	ExpansionCount   int          `json:"expansionCount"`
	ContractionCount int          `json:"contractionCount"`
	ChurnCount       int          `json:"churnCount"`
}

// DiffMovement decompõe a variação de MRR comparando o MRR de cada cliente
// entre dois snapshots. Contração e churn são negativos.
func DiffMovement(prev, curr map[int]float64) Movement {
	m := Movement{Mode: MovementDiff}

	// ordem fixa de soma para resultados idênticos entre execuções
	for _, id := range sortedIDs(curr) {
		mrr := curr[id]
		before, existed := prev[id]
		switch {
		case !existed:
			m.New += mrr
			m.NewCount++
		case mrr > before:
			m.Expansion += mrr - before
			m.ExpansionCount++
		case mrr < before:
			m.Contraction += mrr - before
			m.ContractionCount++
		}
	}

	for _, id := range sortedIDs(prev) {
		if _, ok := curr[id]; !ok {
			m.Churn -= prev[id]
			m.ChurnCount++
		}
	}

	m.Net = m.New + m.Expansion + m.Contraction + m.Churn
	return m
}

// FixedRatioMovement reproduz a decomposição simplificada do painel original:
// expansão +5%, contração -1% e churn -2% sobre o MRR ativo
func FixedRatioMovement(customers []domain.Customer, w Window) Movement {
	m := Movement{Mode: MovementFixed}

	var activeMRR float64
	for _, c := range customers {
		if !c.IsActive() {
			continue
		}
		activeMRR += c.MRR
		if w.Contains(c.StartDate) {
			m.New += c.MRR
			m.NewCount++
		}
	}

	m.Expansion = activeMRR * 0.05
	m.Contraction = activeMRR * -0.01
	m.Churn = activeMRR * -0.02
	m.Net = m.New + m.Expansion + m.Contraction + m.Churn
	return m
}

// MRRGrowthRate compara a variação líquida com o MRR do mês anterior (MRR - net).
// Sem MRR no mês anterior a taxa é 0, mesmo quando há receita nova no mês.
func MRRGrowthRate(mrr, net float64) float64 {
	base := mrr - net
	if base <= 0 {
		return 0
	}
	return net / base * 100
}

type PlanAmount struct {
	Plan  domain.Plan `json:"plan"`
	MRR   float64     `json:"mrr"`
	Count int         `json:"count"`
}

// PlanBreakdown agrupa MRR e quantidade de clientes com status ativo por plano
func PlanBreakdown(customers []domain.Customer) []PlanAmount {
	index := make(map[domain.Plan]int)
	out := make([]PlanAmount, 0, len(domain.Plans()))
	for i, p := range domain.Plans() {
		index[p] = i
		out = append(out, PlanAmount{Plan: p})
	}

	for _, c := range customers {
		if !c.IsActive() {
			continue
		}
		i, ok := index[c.Plan]
		if !ok {
			i = len(out)
			index[c.Plan] = i
			out = append(out, PlanAmount{Plan: c.Plan})
		}
		out[i].MRR += c.MRR
		out[i].Count++
	}
	return out
}

func sortedIDs(values map[int]float64) []int {
	ids := make([]int, 0, len(values))
	for id := range values {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

package metrics

import (
	"time"

	"github.com/vfg2006/saas-metrics-api/internal/domain"
)

type UnitEconomics struct {
	MarketingCost          float64      `json:"marketingCost"`
	SalesTeamCost          float64      `json:"salesTeamCost"`
	NewCustomers           int          `json:"newCustomers"`
	CAC                    float64      `json:"cac"`
	AvgMRR                 float64      `json:"avgMrr"`
	RetentionHorizonMonths int          `json:"retentionHorizonMonths"`
	LTV                    float64      `json:"ltv"`
	LTVCACRatio            float64      `json:"ltvCacRatio"`
	Plans                  []PlanAmount `json:"plans"`
}

// ComputeUnitEconomics aloca o custo de marketing do mês e o custo fixo de
// vendas entre os clientes novos (mínimo 1) e projeta o LTV pelo horizonte
// de retenção da política
func ComputeUnitEconomics(snap domain.Snapshot, now time.Time, policy Policy) UnitEconomics {
	current := CurrentWindow(now)

	ue := UnitEconomics{
		MarketingCost:          MarketingCostOn(snap.Campaigns, now),
		SalesTeamCost:          policy.SalesTeamCost,
		RetentionHorizonMonths: policy.RetentionHorizonMonths,
		Plans:                  PlanBreakdown(snap.Customers),
	}

	for _, c := range snap.Customers {
		if current.Contains(c.StartDate) {
			ue.NewCustomers++
		}
	}
	divisor := ue.NewCustomers
	if divisor < 1 {
		divisor = 1
	}

	ue.CAC = (ue.MarketingCost + ue.SalesTeamCost) / float64(divisor)
	ue.AvgMRR = averageActiveMRR(snap.Customers)
	ue.LTV = ue.AvgMRR * float64(policy.RetentionHorizonMonths)
	if ue.CAC > 0 {
		ue.LTVCACRatio = ue.LTV / ue.CAC
	}

	return ue
}

// CampaignMonthlyCost distribui o gasto da campanha pela sua duração em meses de 30 dias
func CampaignMonthlyCost(c domain.Campaign) float64 {
	days := domain.DateOnly(c.EndDate).Sub(domain.DateOnly(c.StartDate)).Hours() / 24
	months := days / campaignMonthDays
	if months <= 0 {
		months = 1
	}
	return c.Spent / months
}

// MarketingCostOn soma o custo mensal das campanhas em andamento na data
func MarketingCostOn(campaigns []domain.Campaign, now time.Time) float64 {
	var total float64
	for _, c := range campaigns {
		if c.RunningOn(now) {
			total += CampaignMonthlyCost(c)
		}
	}
	return total
}

func averageActiveMRR(customers []domain.Customer) float64 {
	var total float64
	var count int
	for _, c := range customers {
		if c.IsActive() {
			total += c.MRR
			count++
		}
	}
	return ratio(total, float64(count))
}

type CustomerLTV struct {
	CustomerID         int             `json:"customerId"`
	Name               string          `json:"name"`
	Plan               domain.Plan     `json:"plan"`
	MRR                float64         `json:"mrr"`
	MonthsActive       int             `json:"monthsActive"`
	TotalPaymentToDate float64         `json:"totalPaymentToDate"`
	PredictedLTV       float64         `json:"predictedLtv"`
	HealthScore        int             `json:"healthScore"`
	Risk               domain.RiskTier `json:"risk"`
}

// CustomerLTVTable gera uma linha por cliente com status ativo
func CustomerLTVTable(customers []domain.Customer, now time.Time, policy Policy) []CustomerLTV {
	rows := make([]CustomerLTV, 0, len(customers))
	for _, c := range customers {
		if !c.IsActive() {
			continue
		}
		months := MonthsBetween(c.StartDate, now)
		rows = append(rows, CustomerLTV{
			CustomerID:         c.ID,
			Name:               c.Name,
			Plan:               c.Plan,
			MRR:                c.MRR,
			MonthsActive:       months,
			TotalPaymentToDate: c.MRR*float64(months) + c.InitialFee,
			PredictedLTV:       c.MRR * float64(policy.RetentionHorizonMonths),
			HealthScore:        c.HealthScore,
			Risk:               domain.RiskTierOf(c.HealthScore),
		})
	}
	return rows
}

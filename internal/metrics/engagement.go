package metrics

import "github.com/vfg2006/saas-metrics-api/internal/domain"

// NPS considera promotores (nota >= 9) e detratores (nota <= 6) entre os clientes ativos
func NPS(customers []domain.Customer) float64 {
	var promoters, detractors, total int
	for _, c := range customers {
		if !c.IsActive() {
			continue
		}
		total++
		switch {
		case c.NPSScore >= 9:
			promoters++
		case c.NPSScore <= 6:
			detractors++
		}
	}
	return percentage(float64(promoters-detractors), float64(total))
}

type MarketingFunnel struct {
	Spent          float64 `json:"spent"`
	Budget         float64 `json:"budget"`
	Leads          int     `json:"leads"`
	Conversions    int     `json:"conversions"`
	ConversionRate float64 `json:"conversionRate"`
	CostPerLead    float64 `json:"costPerLead"`
}

func ComputeMarketingFunnel(campaigns []domain.Campaign) MarketingFunnel {
	var f MarketingFunnel
	for _, c := range campaigns {
		f.Spent += c.Spent
		f.Budget += c.Budget
		f.Leads += c.Leads
		f.Conversions += c.Conversions
	}
	f.ConversionRate = percentage(float64(f.Conversions), float64(f.Leads))
	f.CostPerLead = ratio(f.Spent, float64(f.Leads))
	return f
}

type CampaignPerformance struct {
	CampaignID     string  `json:"campaignId"`
	Name           string  `json:"name"`
	Channel        string  `json:"channel"`
	Spent          float64 `json:"spent"`
	BudgetUsage    float64 `json:"budgetUsage"`
	ConversionRate float64 `json:"conversionRate"`
	CostPerLead    float64 `json:"costPerLead"`
	ROI            float64 `json:"roi"`
}

// CampaignROI usa o valor fixo por conversão da política
func CampaignROI(c domain.Campaign, policy Policy) float64 {
	revenue := float64(c.Conversions) * policy.ConversionValue
	return percentage(revenue-c.Spent, c.Spent)
}

func ComputeCampaignPerformance(campaigns []domain.Campaign, policy Policy) []CampaignPerformance {
	out := make([]CampaignPerformance, 0, len(campaigns))
	for _, c := range campaigns {
		out = append(out, CampaignPerformance{
			CampaignID:     c.ID,
			Name:           c.Name,
			Channel:        c.Channel,
			Spent:          c.Spent,
			BudgetUsage:    percentage(c.Spent, c.Budget),
			ConversionRate: percentage(float64(c.Conversions), float64(c.Leads)),
			CostPerLead:    ratio(c.Spent, float64(c.Leads)),
			ROI:            CampaignROI(c, policy),
		})
	}
	return out
}

type StatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

// LeadFunnel conta leads por status na ordem hot, warm, cold, converted
func LeadFunnel(leads []domain.Lead) []StatusCount {
	counts := make(map[domain.LeadStatus]int)
	for _, l := range leads {
		counts[l.Status]++
	}
	out := make([]StatusCount, 0, len(domain.LeadStatuses()))
	for _, s := range domain.LeadStatuses() {
		out = append(out, StatusCount{Status: string(s), Count: counts[s]})
	}
	return out
}

// HealthDistribution conta clientes ativos por faixa de risco
func HealthDistribution(customers []domain.Customer) []StatusCount {
	counts := make(map[domain.RiskTier]int)
	for _, c := range customers {
		if c.IsActive() {
			counts[domain.RiskTierOf(c.HealthScore)]++
		}
	}
	tiers := []domain.RiskTier{domain.RiskHealthy, domain.RiskAtRisk, domain.RiskCritical}
	out := make([]StatusCount, 0, len(tiers))
	for _, t := range tiers {
		out = append(out, StatusCount{Status: string(t), Count: counts[t]})
	}
	return out
}

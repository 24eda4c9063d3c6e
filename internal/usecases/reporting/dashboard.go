package reporting

import (
	"github.com/vfg2006/saas-metrics-api/internal/metrics"
	"github.com/vfg2006/saas-metrics-api/pkg/format"
)

// Headline traz os cartões do topo do painel com valor bruto e formatado
type Headline struct {
	MRR             format.Money `json:"mrr"`
	ARR             format.Money `json:"arr"`
	ARPA            format.Money `json:"arpa"`
	MRRGrowthRate   format.Rate  `json:"mrrGrowthRate"`
	ActiveCustomers int          `json:"activeCustomers"`
	TotalIncome     format.Money `json:"totalIncome"`
	TotalExpense    format.Money `json:"totalExpense"`
	Balance         format.Money `json:"balance"`
	ProfitMargin    format.Rate  `json:"profitMargin"`
	ChurnRate       format.Rate  `json:"churnRate"`
	NRR             format.Rate  `json:"nrr"`
	CAC             format.Money `json:"cac"`
	LTV             format.Money `json:"ltv"`
	LTVCACRatio     string       `json:"ltvCacRatio"`
	NPS             float64      `json:"nps"`
}

type Engagement struct {
	NPS                float64                       `json:"nps"`
	Funnel             metrics.MarketingFunnel       `json:"funnel"`
	Campaigns          []metrics.CampaignPerformance `json:"campaigns"`
	Leads              []metrics.StatusCount         `json:"leads"`
	HealthDistribution []metrics.StatusCount         `json:"healthDistribution"`
}

type Dashboard struct {
	Period        string                  `json:"period"`
	Headline      Headline                `json:"headline"`
	Movement      metrics.Movement        `json:"movement"`
	Plans         []metrics.PlanAmount    `json:"plans"`
	PnL           metrics.ProfitAndLoss   `json:"pnl"`
	Retention     metrics.Retention       `json:"retention"`
	UnitEconomics metrics.UnitEconomics   `json:"unitEconomics"`
	Series        []metrics.SeriesPoint   `json:"series"`
	Forecast      []metrics.ForecastPoint `json:"forecast"`
	Cohorts       []metrics.Cohort        `json:"cohorts"`
	Engagement    Engagement              `json:"engagement"`
}

package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/saas-metrics-api/internal/domain"
)

func TestNPS(t *testing.T) {
	withScore := func(id, score int) domain.Customer {
		c := activeCustomer(id, 1000, date(2024, time.January, 1))
		c.NPSScore = score
		return c
	}
	churned := churnedCustomer(9, 1000, date(2024, time.January, 1), date(2025, time.January, 1))
	churned.NPSScore = 0

	assert.Equal(t, 25.0, NPS([]domain.Customer{withScore(1, 10), withScore(2, 9), withScore(3, 7), withScore(4, 3), churned}))
	assert.Equal(t, 0.0, NPS(nil))
}

func TestComputeMarketingFunnel(t *testing.T) {
	c1 := campaign("c1", 40000, date(2025, time.May, 1), date(2025, time.May, 31))
	c1.Leads, c1.Conversions = 30, 3
	c2 := campaign("c2", 60000, date(2025, time.May, 1), date(2025, time.May, 31))
	c2.Leads, c2.Conversions = 20, 2

	funnel := ComputeMarketingFunnel([]domain.Campaign{c1, c2})

	assert.Equal(t, 100000.0, funnel.Spent)
	assert.Equal(t, 50, funnel.Leads)
	assert.Equal(t, 5, funnel.Conversions)
	assert.Equal(t, 10.0, funnel.ConversionRate)
	assert.Equal(t, 2000.0, funnel.CostPerLead)

	empty := ComputeMarketingFunnel(nil)
	assert.Equal(t, 0.0, empty.ConversionRate)
	assert.Equal(t, 0.0, empty.CostPerLead)
}

func TestCampaignROI(t *testing.T) {
	policy := DefaultPolicy()

	profitable := campaign("c1", 50000, date(2025, time.May, 1), date(2025, time.May, 31))
	profitable.Conversions = 4
	assert.Equal(t, 100.0, CampaignROI(profitable, policy))

	free := campaign("c2", 0, date(2025, time.May, 1), date(2025, time.May, 31))
	free.Conversions = 4
	assert.Equal(t, 0.0, CampaignROI(free, policy))

	perf := ComputeCampaignPerformance([]domain.Campaign{profitable}, policy)
	require.Len(t, perf, 1)
	assert.Equal(t, 100.0, perf[0].BudgetUsage)
	assert.Equal(t, 100.0, perf[0].ROI)
}

func TestLeadFunnelAndHealthDistribution(t *testing.T) {
	leads := []domain.Lead{
		{ID: "l1", Status: domain.LeadStatusHot},
		{ID: "l2", Status: domain.LeadStatusHot},
		{ID: "l3", Status: domain.LeadStatusConverted},
	}
	assert.Equal(t, []StatusCount{
		{Status: "hot", Count: 2},
		{Status: "warm", Count: 0},
		{Status: "cold", Count: 0},
		{Status: "converted", Count: 1},
	}, LeadFunnel(leads))

	healthy := activeCustomer(1, 1000, date(2024, time.January, 1))
	healthy.HealthScore = 90
	risky := activeCustomer(2, 1000, date(2024, time.January, 1))
	risky.HealthScore = 60
	assert.Equal(t, []StatusCount{
		{Status: "healthy", Count: 1},
		{Status: "at_risk", Count: 1},
		{Status: "critical", Count: 0},
	}, HealthDistribution([]domain.Customer{healthy, risky}))
}

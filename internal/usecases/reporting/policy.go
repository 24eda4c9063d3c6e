package reporting

import (
	"github.com/vfg2006/saas-metrics-api/internal/config"
	"github.com/vfg2006/saas-metrics-api/internal/metrics"
)

const forecastModeSeeded = "seeded"

// PolicyFromConfig completa com os padrões os valores não configurados
func PolicyFromConfig(cfg config.Metrics) metrics.Policy {
	policy := metrics.DefaultPolicy()

	if cfg.SalesTeamCost > 0 {
		policy.SalesTeamCost = cfg.SalesTeamCost
	}
	if cfg.RetentionHorizonMonths > 0 {
		policy.RetentionHorizonMonths = cfg.RetentionHorizonMonths
	}
	if cfg.ConversionValue > 0 {
		policy.ConversionValue = cfg.ConversionValue
	}
	if metrics.MovementMode(cfg.MovementMode) == metrics.MovementFixed {
		policy.MovementMode = metrics.MovementFixed
	}

	return policy
}

func GrowthFromConfig(cfg config.Metrics) metrics.GrowthSource {
	if cfg.ForecastMode == forecastModeSeeded {
		return metrics.SeededGrowth{Seed: cfg.ForecastSeed}
	}
	return metrics.TrailingGrowth{}
}

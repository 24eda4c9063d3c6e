package metrics

// DaysPerMonth é a duração média de um mês usada para converter dias em meses
const DaysPerMonth = 30.4375

// campaignMonthDays normaliza a duração de campanhas em meses de 30 dias
const campaignMonthDays = 30.0

type MovementMode string

const (
	MovementDiff  MovementMode = "diff"
	MovementFixed MovementMode = "fixed"
)

// Policy reúne as constantes de negócio usadas nos cálculos
type Policy struct {
	SalesTeamCost          float64
	RetentionHorizonMonths int
	ConversionValue        float64
	MovementMode           MovementMode
}

func DefaultPolicy() Policy {
	return Policy{
		SalesTeamCost:          450000,
		RetentionHorizonMonths: 24,
		ConversionValue:        25000,
		MovementMode:           MovementDiff,
	}
}

func ratio(numerator, denominator float64) float64 {
	if denominator == 0 {
		return 0
	}
	return numerator / denominator
}

func percentage(part, total float64) float64 {
	return ratio(part, total) * 100
}

package metrics

import (
	"math"
	"math/rand"
	"time"

	"github.com/vfg2006/saas-metrics-api/internal/domain"
)

// Faixa permitida para a taxa de crescimento mensal projetada
const (
	MinGrowthRate = 0.02
	MaxGrowthRate = 0.05
)

// GrowthSource fornece uma taxa de crescimento por passo de projeção a partir
// do histórico de MRR realizado
type GrowthSource interface {
	Rates(history []float64, steps int) []float64
}

// SeededGrowth sorteia taxas na faixa permitida. Cada chamada recria o gerador
// a partir da semente, então a mesma entrada sempre gera a mesma projeção.
type SeededGrowth struct {
	Seed int64
}

func (s SeededGrowth) Rates(_ []float64, steps int) []float64 {
	r := rand.New(rand.NewSource(s.Seed))
	out := make([]float64, steps)
	for i := range out {
		out[i] = MinGrowthRate + r.Float64()*(MaxGrowthRate-MinGrowthRate)
	}
	return out
}

// TrailingGrowth usa a taxa composta de crescimento mensal (CMGR) do histórico
type TrailingGrowth struct{}

func (TrailingGrowth) Rates(history []float64, steps int) []float64 {
	rate := clampGrowth(compoundMonthlyGrowth(history))
	out := make([]float64, steps)
	for i := range out {
		out[i] = rate
	}
	return out
}

func compoundMonthlyGrowth(history []float64) float64 {
	first, last := -1, -1
	for i, v := range history {
		if v <= 0 {
			continue
		}
		if first < 0 {
			first = i
		}
		last = i
	}
	if first < 0 || last <= first {
		return (MinGrowthRate + MaxGrowthRate) / 2
	}
	return math.Pow(history[last]/history[first], 1/float64(last-first)) - 1
}

func clampGrowth(g float64) float64 {
	if math.IsNaN(g) {
		return (MinGrowthRate + MaxGrowthRate) / 2
	}
	return math.Min(MaxGrowthRate, math.Max(MinGrowthRate, g))
}

type ForecastPoint struct {
	Label    string   `json:"label"`
	Actual   *float64 `json:"actual"`
	Forecast *float64 `json:"forecast"`
}

// BuildForecast cobre os 12 meses do ano do mês alvo. Meses até o alvo trazem o
// MRR realizado; a projeção parte do valor realizado no alvo e compõe a taxa
// do GrowthSource mês a mês.
func BuildForecast(snap domain.Snapshot, target domain.Month, growth GrowthSource) []ForecastPoint {
	if growth == nil {
		growth = TrailingGrowth{}
	}

	months := make([]domain.Month, 12)
	for i := range months {
		months[i] = domain.Month{Year: target.Year, Month: time.Month(i + 1)}
	}

	points := make([]ForecastPoint, 0, len(months))
	history := make([]float64, 0, len(months))
	for _, m := range months {
		p := ForecastPoint{Label: m.Period()}
		if !target.Before(m) {
			actual := MonthlyMRR(snap.Customers, NewWindow(m))
			history = append(history, actual)
			p.Actual = floatPtr(actual)
			p.Forecast = floatPtr(actual)
		}
		points = append(points, p)
	}

	steps := len(months) - len(history)
	rates := growth.Rates(history, steps)
	value := history[len(history)-1]
	for i := 0; i < steps; i++ {
		rate := (MinGrowthRate + MaxGrowthRate) / 2
		if i < len(rates) {
			rate = rates[i]
		}
		value *= 1 + clampGrowth(rate)
		points[len(history)+i].Forecast = floatPtr(value)
	}

	return points
}

func floatPtr(v float64) *float64 {
	return &v
}

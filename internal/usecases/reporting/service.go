package reporting

import (
	"context"
	"fmt"
	"time"

	"github.com/vfg2006/saas-metrics-api/infrastructure/repository"
	"github.com/vfg2006/saas-metrics-api/internal/domain"
	"github.com/vfg2006/saas-metrics-api/internal/metrics"
	"github.com/vfg2006/saas-metrics-api/internal/store"
	"github.com/vfg2006/saas-metrics-api/pkg/clock"
	"github.com/vfg2006/saas-metrics-api/pkg/format"
	"github.com/vfg2006/saas-metrics-api/pkg/log"
	"github.com/vfg2006/saas-metrics-api/pkg/telemetry"
	"golang.org/x/sync/singleflight"
)

type ReportingService interface {
	CurrentMonth() domain.Month
	Dashboard(ctx context.Context, month domain.Month) (*Dashboard, error)
	ProfitAndLoss(month domain.Month) metrics.ProfitAndLoss
	Expenses(month domain.Month) metrics.ExpenseSummary
	Retention(ctx context.Context, month domain.Month) metrics.Retention
	UnitEconomics(month domain.Month) metrics.UnitEconomics
	CustomerLTV(month domain.Month) []metrics.CustomerLTV
	Series(month domain.Month, n int) []metrics.SeriesPoint
	Forecast(month domain.Month) []metrics.ForecastPoint
	Cohorts(month domain.Month, n int) []metrics.Cohort
	Engagement() Engagement
	CaptureMRRSnapshot(ctx context.Context) (int, error)
	SnapshotPeriods(ctx context.Context) ([]string, error)
}

type Service struct {
	store        *store.Store
	snapshotRepo repository.MRRSnapshotRepository
	clock        clock.Clock
	policy       metrics.Policy
	growth       metrics.GrowthSource
	telemetry    *telemetry.Metrics
	group        singleflight.Group
}

func NewService(
	store *store.Store,
	snapshotRepo repository.MRRSnapshotRepository,
	clock clock.Clock,
	policy metrics.Policy,
	growth metrics.GrowthSource,
	telemetry *telemetry.Metrics,
) ReportingService {
	if growth == nil {
		growth = metrics.TrailingGrowth{}
	}
	return &Service{
		store:        store,
		snapshotRepo: snapshotRepo,
		clock:        clock,
		policy:       policy,
		growth:       growth,
		telemetry:    telemetry,
	}
}

func (s *Service) CurrentMonth() domain.Month {
	return domain.MonthOf(s.clock.Now())
}

// asOf é o instante de referência de um mês: agora para o mês corrente e o
// último dia do mês para os demais
func (s *Service) asOf(month domain.Month) time.Time {
	now := s.clock.Now()
	if domain.MonthOf(now) == month {
		return now
	}
	return month.LastDay()
}

// Dashboard compõe o painel completo do mês. Pedidos simultâneos para o mesmo
// período compartilham a mesma execução.
func (s *Service) Dashboard(ctx context.Context, month domain.Month) (*Dashboard, error) {
	v, err, shared := s.group.Do(month.Period(), func() (any, error) {
		return s.compose(ctx, month), nil
	})
	if err != nil {
		return nil, err
	}
	if shared {
		log.ForContext(ctx).Debugf("dashboard: resultado de %s compartilhado", month.Period())
	}
	return v.(*Dashboard), nil
}

func (s *Service) compose(ctx context.Context, month domain.Month) *Dashboard {
	snap := s.store.Snapshot()
	w := metrics.NewWindow(month)
	now := s.asOf(month)
	prevMRR := s.previousMRR(ctx, month)

	pnl := metrics.ComposePnL(snap, w)
	retention := metrics.ComputeRetention(snap.Customers, now, prevMRR)
	ue := metrics.ComputeUnitEconomics(snap, now, s.policy)
	movement := s.movement(snap.Customers, w, prevMRR)
	engagement := engagementOf(snap, s.policy)
	active := len(metrics.ActiveMRR(snap.Customers, w))

	d := &Dashboard{
		Period: month.Period(),
		Headline: Headline{
			MRR:             format.NewMoney(pnl.MRR),
			ARR:             format.NewMoney(metrics.ARR(pnl.MRR)),
			ARPA:            format.NewMoney(metrics.ARPA(snap.Customers, w)),
			MRRGrowthRate:   format.NewRate(metrics.MRRGrowthRate(pnl.MRR, movement.Net)),
			ActiveCustomers: active,
			TotalIncome:     format.NewMoney(pnl.TotalIncome),
			TotalExpense:    format.NewMoney(pnl.TotalExpense),
			Balance:         format.NewMoney(pnl.Balance),
			ProfitMargin:    format.NewRate(pnl.ProfitMargin),
			ChurnRate:       format.NewRate(retention.MonthlyChurnRate),
			NRR:             format.NewRate(retention.NRR),
			CAC:             format.NewMoney(ue.CAC),
			LTV:             format.NewMoney(ue.LTV),
			LTVCACRatio:     format.Ratio(ue.LTVCACRatio),
			NPS:             engagement.NPS,
		},
		Movement:      movement,
		Plans:         ue.Plans,
		PnL:           pnl,
		Retention:     retention,
		UnitEconomics: ue,
		Series:        metrics.TrailingSeries(snap, month, metrics.DefaultSeriesLength),
		Forecast:      metrics.BuildForecast(snap, month, s.growth),
		Cohorts:       metrics.Cohorts(snap.Customers, month, metrics.DefaultCohortCount),
		Engagement:    engagement,
	}

	if month == s.CurrentMonth() {
		s.telemetry.ObserveHeadline(telemetry.Headline{
			MRR:             pnl.MRR,
			ARR:             metrics.ARR(pnl.MRR),
			Balance:         pnl.Balance,
			ChurnRate:       retention.MonthlyChurnRate,
			NRR:             retention.NRR,
			ActiveCustomers: active,
		})
	}

	log.ForContext(ctx).Debugf("dashboard: painel de %s calculado", month.Period())
	return d
}

// movement usa a decomposição por diferença, exceto quando a política pede
// as razões fixas
func (s *Service) movement(customers []domain.Customer, w metrics.Window, prevMRR map[int]float64) metrics.Movement {
	if s.policy.MovementMode == metrics.MovementFixed {
		return metrics.FixedRatioMovement(customers, w)
	}
	if prevMRR == nil {
		prevMRR = metrics.ActiveMRR(customers, w.Prev())
	}
	return metrics.DiffMovement(prevMRR, metrics.ActiveMRR(customers, w))
}

// previousMRR lê o snapshot gravado de M-1. Sem snapshot, ou com erro na
// leitura, devolve nil e o cálculo deriva M-1 do store.
func (s *Service) previousMRR(ctx context.Context, month domain.Month) map[int]float64 {
	if s.snapshotRepo == nil {
		return nil
	}

	period := month.Prev().Period()
	entries, err := s.snapshotRepo.GetByPeriod(ctx, period)
	if err != nil {
		log.ForContext(ctx).WithError(err).Warnf("dashboard: snapshot de %s indisponível, usando o store", period)
		return nil
	}
	if len(entries) == 0 {
		return nil
	}
	return domain.MRRByCustomer(entries)
}

func (s *Service) ProfitAndLoss(month domain.Month) metrics.ProfitAndLoss {
	return metrics.ComposePnL(s.store.Snapshot(), metrics.NewWindow(month))
}

func (s *Service) Expenses(month domain.Month) metrics.ExpenseSummary {
	return metrics.SummarizeExpenses(s.store.Expenses(), metrics.NewWindow(month))
}

func (s *Service) Retention(ctx context.Context, month domain.Month) metrics.Retention {
	return metrics.ComputeRetention(s.store.Customers(), s.asOf(month), s.previousMRR(ctx, month))
}

func (s *Service) UnitEconomics(month domain.Month) metrics.UnitEconomics {
	return metrics.ComputeUnitEconomics(s.store.Snapshot(), s.asOf(month), s.policy)
}

func (s *Service) CustomerLTV(month domain.Month) []metrics.CustomerLTV {
	return metrics.CustomerLTVTable(s.store.Customers(), s.asOf(month), s.policy)
}

func (s *Service) Series(month domain.Month, n int) []metrics.SeriesPoint {
	return metrics.TrailingSeries(s.store.Snapshot(), month, n)
}

func (s *Service) Forecast(month domain.Month) []metrics.ForecastPoint {
	return metrics.BuildForecast(s.store.Snapshot(), month, s.growth)
}

func (s *Service) Cohorts(month domain.Month, n int) []metrics.Cohort {
	return metrics.Cohorts(s.store.Customers(), month, n)
}

func (s *Service) Engagement() Engagement {
	return engagementOf(s.store.Snapshot(), s.policy)
}

// CaptureMRRSnapshot grava o MRR de cada cliente ativo no mês corrente.
// Executar de novo no mesmo mês sobrescreve os valores.
func (s *Service) CaptureMRRSnapshot(ctx context.Context) (int, error) {
	now := s.clock.Now()
	w := metrics.CurrentWindow(now)

	customers := s.store.Customers()
	snapshots := make([]*domain.MRRSnapshot, 0, len(customers))
	for _, c := range customers {
		if !w.ActiveInMonth(c) {
			continue
		}
		snapshots = append(snapshots, &domain.MRRSnapshot{
			CustomerID: c.ID,
			Period:     w.Month.Period(),
			MRR:        c.MRR,
			Status:     c.Status,
			CapturedAt: now,
		})
	}

	if err := s.snapshotRepo.SaveSnapshots(ctx, snapshots); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrSaveSnapshot, err)
	}

	log.ForContext(ctx).Infof("dashboard: %d snapshots de MRR gravados para %s", len(snapshots), w.Month.Period())
	return len(snapshots), nil
}

// SnapshotPeriods lista os meses com fechamento gravado, do mais recente
// para o mais antigo
func (s *Service) SnapshotPeriods(ctx context.Context) ([]string, error) {
	if s.snapshotRepo == nil {
		return []string{}, nil
	}
	periods, err := s.snapshotRepo.GetAllPeriods(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrListPeriods, err)
	}
	if periods == nil {
		periods = []string{}
	}
	return periods, nil
}

func engagementOf(snap domain.Snapshot, policy metrics.Policy) Engagement {
	return Engagement{
		NPS:                metrics.NPS(snap.Customers),
		Funnel:             metrics.ComputeMarketingFunnel(snap.Campaigns),
		Campaigns:          metrics.ComputeCampaignPerformance(snap.Campaigns, policy),
		Leads:              metrics.LeadFunnel(snap.Leads),
		HealthDistribution: metrics.HealthDistribution(snap.Customers),
	}
}

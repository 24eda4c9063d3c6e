package reporting

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/saas-metrics-api/infrastructure/repository/mocks"
	"github.com/vfg2006/saas-metrics-api/internal/config"
	"github.com/vfg2006/saas-metrics-api/internal/domain"
	"github.com/vfg2006/saas-metrics-api/internal/metrics"
	"github.com/vfg2006/saas-metrics-api/internal/store"
	"github.com/vfg2006/saas-metrics-api/pkg/clock"
	"go.uber.org/mock/gomock"
)

var (
	referenceNow = time.Date(2025, time.May, 20, 10, 0, 0, 0, time.UTC)
	may2025      = domain.Month{Year: 2025, Month: time.May}
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestService_Dashboard(t *testing.T) {
	tests := []struct {
		name     string
		policy   metrics.Policy
		seed     func(s *store.Store)
		setup    func(repo *mocks.MockMRRSnapshotRepository)
		validate func(t *testing.T, d *Dashboard)
	}{
		{
			name:   "Um cliente ativo e uma despesa aprovada geram saldo negativo",
			policy: metrics.DefaultPolicy(),
			seed: func(s *store.Store) {
				s.ReplaceCustomers([]domain.Customer{
					{ID: 1, Name: "A", Plan: domain.PlanStarter, MRR: 25000, Status: domain.CustomerStatusActive, StartDate: day(2025, time.April, 1), HealthScore: 70, NPSScore: 7},
				})
				s.ReplaceExpenses([]domain.Expense{
					{ID: "exp_1", Date: day(2025, time.May, 10), Name: "Ads", Category: domain.CategoryAdvertising, Amount: 200000, Status: domain.ExpenseStatusApproved},
				})
			},
			setup: func(repo *mocks.MockMRRSnapshotRepository) {
				// Mock: nenhum snapshot gravado para abril
				repo.EXPECT().GetByPeriod(gomock.Any(), "04-2025").Return(nil, nil)
			},
			validate: func(t *testing.T, d *Dashboard) {
				assert.Equal(t, "05-2025", d.Period)
				assert.Equal(t, 25000.0, d.Headline.MRR.Value)
				assert.Equal(t, 300000.0, d.Headline.ARR.Value)
				assert.Equal(t, 200000.0, d.Headline.TotalExpense.Value)
				assert.Equal(t, -175000.0, d.Headline.Balance.Value)
				assert.Equal(t, "-¥175,000", d.Headline.Balance.Formatted)
				assert.Equal(t, 1, d.Headline.ActiveCustomers)
				assert.Equal(t, 100.0, d.Retention.NRR)
				assert.Len(t, d.Series, 6)
				assert.Len(t, d.Forecast, 12)
				assert.Equal(t, metrics.MovementDiff, d.Movement.Mode)
				assert.Equal(t, 0.0, d.Movement.Net)
			},
		},
		{
			name:   "Sem clientes ativos MRR e margem são zero",
			policy: metrics.DefaultPolicy(),
			seed:   func(s *store.Store) {},
			setup: func(repo *mocks.MockMRRSnapshotRepository) {
				repo.EXPECT().GetByPeriod(gomock.Any(), "04-2025").Return(nil, nil)
			},
			validate: func(t *testing.T, d *Dashboard) {
				assert.Equal(t, 0.0, d.Headline.MRR.Value)
				assert.Equal(t, 0.0, d.Headline.ProfitMargin.Value)
				assert.Equal(t, "0.0%", d.Headline.ProfitMargin.Formatted)
				assert.Equal(t, 0.0, d.Headline.ChurnRate.Value)
				assert.Equal(t, 0.0, d.Headline.NRR.Value)
				assert.Empty(t, d.Cohorts)
			},
		},
		{
			name:   "Snapshot de M-1 alimenta a movimentação por diferença",
			policy: metrics.DefaultPolicy(),
			seed: func(s *store.Store) {
				s.ReplaceCustomers([]domain.Customer{
					{ID: 1, Plan: domain.PlanProfessional, MRR: 25000, Status: domain.CustomerStatusActive, StartDate: day(2025, time.January, 1)},
					{ID: 2, Plan: domain.PlanStarter, MRR: 10000, Status: domain.CustomerStatusActive, StartDate: day(2025, time.May, 2)},
				})
			},
			setup: func(repo *mocks.MockMRRSnapshotRepository) {
				// Mock: abril gravado com MRR menor para o cliente 1 e um cliente que saiu
				repo.EXPECT().GetByPeriod(gomock.Any(), "04-2025").Return([]*domain.MRRSnapshot{
					{CustomerID: 1, Period: "04-2025", MRR: 20000},
					{CustomerID: 3, Period: "04-2025", MRR: 8000},
				}, nil)
			},
			validate: func(t *testing.T, d *Dashboard) {
				m := d.Movement
				assert.Equal(t, 10000.0, m.New)
				assert.Equal(t, 5000.0, m.Expansion)
				assert.Equal(t, -8000.0, m.Churn)
				assert.Equal(t, 7000.0, m.Net)
				assert.Equal(t, 35000.0-28000.0, m.Net)
				assert.Equal(t, 28000.0, d.Retention.BeginningMRR)
			},
		},
		{
			name:   "Falha ao ler snapshot recorre ao store",
			policy: metrics.Policy{SalesTeamCost: 450000, RetentionHorizonMonths: 24, ConversionValue: 25000, MovementMode: metrics.MovementFixed},
			seed: func(s *store.Store) {
				s.ReplaceCustomers([]domain.Customer{
					{ID: 1, MRR: 100000, Status: domain.CustomerStatusActive, StartDate: day(2024, time.January, 1)},
				})
			},
			setup: func(repo *mocks.MockMRRSnapshotRepository) {
				repo.EXPECT().GetByPeriod(gomock.Any(), "04-2025").Return(nil, errors.New("relation does not exist"))
			},
			validate: func(t *testing.T, d *Dashboard) {
				assert.Equal(t, metrics.MovementFixed, d.Movement.Mode)
				assert.InDelta(t, 5000.0, d.Movement.Expansion, 1e-9)
				assert.InDelta(t, -1000.0, d.Movement.Contraction, 1e-9)
				assert.InDelta(t, -2000.0, d.Movement.Churn, 1e-9)
				assert.Equal(t, 100.0, d.Retention.NRR)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := mocks.NewMockMRRSnapshotRepository(ctrl)
			s := store.New()
			tt.seed(s)
			service := NewService(s, repo, clock.Fixed(referenceNow), tt.policy, metrics.TrailingGrowth{}, nil)

			tt.setup(repo)
			d, err := service.Dashboard(context.Background(), may2025)
			require.NoError(t, err)
			tt.validate(t, d)
		})
	}
}

func TestService_Dashboard_Idempotent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockMRRSnapshotRepository(ctrl)
	repo.EXPECT().GetByPeriod(gomock.Any(), gomock.Any()).Return(nil, nil).Times(2)

	s := store.New()
	s.ReplaceCustomers([]domain.Customer{
		{ID: 1, MRR: 30000, Status: domain.CustomerStatusActive, StartDate: day(2025, time.February, 1)},
		{ID: 2, MRR: 15000, Status: domain.CustomerStatusChurned, StartDate: day(2024, time.December, 1), ChurnDate: ptr(day(2025, time.April, 15))},
	})
	service := NewService(s, repo, clock.Fixed(referenceNow), metrics.DefaultPolicy(), metrics.SeededGrowth{Seed: 42}, nil)

	first, err := service.Dashboard(context.Background(), may2025)
	require.NoError(t, err)
	second, err := service.Dashboard(context.Background(), may2025)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestService_CaptureMRRSnapshot(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockMRRSnapshotRepository(ctrl)
	s := store.New()
	s.ReplaceCustomers([]domain.Customer{
		{ID: 1, MRR: 30000, Status: domain.CustomerStatusActive, StartDate: day(2025, time.February, 1)},
		{ID: 2, MRR: 15000, Status: domain.CustomerStatusChurned, StartDate: day(2024, time.December, 1), ChurnDate: ptr(day(2025, time.May, 10))},
		{ID: 3, MRR: 9000, Status: domain.CustomerStatusTrial, StartDate: day(2025, time.May, 1)},
	})

	// Mock: gravação dos clientes ativos em maio
	repo.EXPECT().
		SaveSnapshots(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, snapshots []*domain.MRRSnapshot) error {
			require.Len(t, snapshots, 2)
			assert.Equal(t, 1, snapshots[0].CustomerID)
			assert.Equal(t, "05-2025", snapshots[0].Period)
			assert.Equal(t, domain.CustomerStatusChurned, snapshots[1].Status)
			return nil
		})

	service := NewService(s, repo, clock.Fixed(referenceNow), metrics.DefaultPolicy(), nil, nil)
	count, err := service.CaptureMRRSnapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	repo.EXPECT().SaveSnapshots(gomock.Any(), gomock.Any()).Return(errors.New("tx aborted"))
	_, err = service.CaptureMRRSnapshot(context.Background())
	assert.ErrorIs(t, err, ErrSaveSnapshot)
}

func TestService_PastMonthUsesMonthEnd(t *testing.T) {
	s := store.New()
	s.ReplaceCustomers([]domain.Customer{
		{ID: 1, MRR: 20000, Status: domain.CustomerStatusActive, StartDate: day(2025, time.January, 15), HealthScore: 90},
	})
	service := NewService(s, nil, clock.Fixed(referenceNow), metrics.DefaultPolicy(), nil, nil)

	rows := service.CustomerLTV(domain.Month{Year: 2025, Month: time.March})
	require.Len(t, rows, 1)
	assert.Equal(t, 2, rows[0].MonthsActive)
	assert.Equal(t, domain.RiskHealthy, rows[0].Risk)
}

func TestService_SnapshotPeriods(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(repo *mocks.MockMRRSnapshotRepository)
		validate func(t *testing.T, periods []string, err error)
	}{
		{
			name: "Lista os períodos do repositório",
			setup: func(repo *mocks.MockMRRSnapshotRepository) {
				// Mock: dois fechamentos gravados
				repo.EXPECT().GetAllPeriods(gomock.Any()).Return([]string{"05-2025", "04-2025"}, nil)
			},
			validate: func(t *testing.T, periods []string, err error) {
				require.NoError(t, err)
				assert.Equal(t, []string{"05-2025", "04-2025"}, periods)
			},
		},
		{
			name: "Sem snapshots devolve lista vazia",
			setup: func(repo *mocks.MockMRRSnapshotRepository) {
				// Mock: tabela vazia
				repo.EXPECT().GetAllPeriods(gomock.Any()).Return(nil, nil)
			},
			validate: func(t *testing.T, periods []string, err error) {
				require.NoError(t, err)
				assert.NotNil(t, periods)
				assert.Empty(t, periods)
			},
		},
		{
			name: "Erro do banco é propagado",
			setup: func(repo *mocks.MockMRRSnapshotRepository) {
				// Mock: falha de conexão
				repo.EXPECT().GetAllPeriods(gomock.Any()).Return(nil, errors.New("conn reset"))
			},
			validate: func(t *testing.T, periods []string, err error) {
				assert.ErrorIs(t, err, ErrListPeriods)
				assert.Nil(t, periods)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := mocks.NewMockMRRSnapshotRepository(ctrl)
			tt.setup(repo)

			service := NewService(store.New(), repo, clock.Fixed(referenceNow), metrics.DefaultPolicy(), nil, nil)
			periods, err := service.SnapshotPeriods(context.Background())
			tt.validate(t, periods, err)
		})
	}
}

func TestPolicyFromConfig(t *testing.T) {
	policy := PolicyFromConfig(config.Metrics{SalesTeamCost: 300000, MovementMode: "fixed"})
	assert.Equal(t, 300000.0, policy.SalesTeamCost)
	assert.Equal(t, 24, policy.RetentionHorizonMonths)
	assert.Equal(t, 25000.0, policy.ConversionValue)
	assert.Equal(t, metrics.MovementFixed, policy.MovementMode)

	assert.IsType(t, metrics.SeededGrowth{}, GrowthFromConfig(config.Metrics{ForecastMode: "seeded", ForecastSeed: 7}))
	assert.IsType(t, metrics.TrailingGrowth{}, GrowthFromConfig(config.Metrics{ForecastMode: "trailing"}))
}

func ptr[T any](v T) *T {
	return &v
}

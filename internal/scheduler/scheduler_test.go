package scheduler

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	persistencemocks "github.com/vfg2006/saas-metrics-api/infrastructure/integrator/persistence/mocks"
	"github.com/vfg2006/saas-metrics-api/infrastructure/repository/mocks"
	"github.com/vfg2006/saas-metrics-api/internal/config"
	"github.com/vfg2006/saas-metrics-api/internal/domain"
	"github.com/vfg2006/saas-metrics-api/internal/metrics"
	"github.com/vfg2006/saas-metrics-api/internal/store"
	"github.com/vfg2006/saas-metrics-api/internal/usecases/marketing"
	"github.com/vfg2006/saas-metrics-api/internal/usecases/reporting"
	"github.com/vfg2006/saas-metrics-api/internal/usecases/spending"
	"github.com/vfg2006/saas-metrics-api/internal/usecases/subscribing"
	"github.com/vfg2006/saas-metrics-api/internal/usecases/syncing"
	"github.com/vfg2006/saas-metrics-api/pkg/clock"
	"github.com/vfg2006/saas-metrics-api/pkg/telemetry"
	"go.uber.org/mock/gomock"
)

var referenceNow = clock.Fixed(time.Date(2025, time.May, 31, 23, 55, 0, 0, time.UTC))

func testConfig() *config.Config {
	return &config.Config{
		CustomerSync:    config.CustomerSync{CronSchedule: "*/15 * * * *", Enabled: true},
		MRRSnapshotSync: config.MRRSnapshotSync{CronSchedule: "55 23 * * *", Enabled: true},
	}
}

func TestCustomerSyncService_run(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(integrator *persistencemocks.MockPersistenceIntegrator, expenses *mocks.MockExpenseRepository, campaigns *mocks.MockCampaignRepository, leads *mocks.MockLeadRepository)
		validate func(t *testing.T, status map[string]any, s *store.Store)
	}{
		{
			name: "Recarga completa sem erro",
			setup: func(integrator *persistencemocks.MockPersistenceIntegrator, expenses *mocks.MockExpenseRepository, campaigns *mocks.MockCampaignRepository, leads *mocks.MockLeadRepository) {
				// Mock: todas as fontes respondem
				integrator.EXPECT().FetchCustomers(gomock.Any()).Return([]domain.Customer{{ID: 1}}, nil)
				expenses.EXPECT().List(gomock.Any()).Return(nil, nil)
				campaigns.EXPECT().List(gomock.Any()).Return(nil, nil)
				leads.EXPECT().List(gomock.Any()).Return(nil, nil)
			},
			validate: func(t *testing.T, status map[string]any, s *store.Store) {
				assert.Equal(t, "", status["last_error"])
				assert.Equal(t, false, status["sync_running"])
				assert.False(t, status["last_sync_completed_at"].(time.Time).IsZero())
				assert.Len(t, s.Customers(), 1)
			},
		},
		{
			name: "Falha na persistência aparece no status",
			setup: func(integrator *persistencemocks.MockPersistenceIntegrator, expenses *mocks.MockExpenseRepository, campaigns *mocks.MockCampaignRepository, leads *mocks.MockLeadRepository) {
				// Mock: persistência fora do ar
				integrator.EXPECT().FetchCustomers(gomock.Any()).Return(nil, errors.New("connection refused"))
				expenses.EXPECT().List(gomock.Any()).Return(nil, nil)
				campaigns.EXPECT().List(gomock.Any()).Return(nil, nil)
				leads.EXPECT().List(gomock.Any()).Return(nil, nil)
			},
			validate: func(t *testing.T, status map[string]any, s *store.Store) {
				assert.Contains(t, status["last_error"], "customers")
				assert.Empty(t, s.Customers())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			integrator := persistencemocks.NewMockPersistenceIntegrator(ctrl)
			expenseRepo := mocks.NewMockExpenseRepository(ctrl)
			campaignRepo := mocks.NewMockCampaignRepository(ctrl)
			leadRepo := mocks.NewMockLeadRepository(ctrl)

			s := store.New()
			syncService := syncing.NewService(
				subscribing.NewService(integrator, s, referenceNow, nil),
				spending.NewService(expenseRepo, s, referenceNow, nil),
				marketing.NewService(campaignRepo, leadRepo, s, referenceNow, nil),
			)
			service := NewCustomerSyncService(syncService, telemetry.New(), testConfig())

			tt.setup(integrator, expenseRepo, campaignRepo, leadRepo)
			service.run(context.Background())
			tt.validate(t, service.GetStatus(), s)
		})
	}
}

func TestCustomerSyncService_SkipsWhenRunning(t *testing.T) {
	service := NewCustomerSyncService(nil, nil, testConfig())
	require.True(t, service.state.begin(time.Now()))

	// sync é nil: se run não respeitasse a trava, haveria panic
	service.run(context.Background())
	assert.False(t, service.TriggerManualSync(context.Background()))
	assert.Equal(t, true, service.GetStatus()["sync_running"])
}

func TestCustomerSyncService_StartDisabled(t *testing.T) {
	cfg := testConfig()
	cfg.CustomerSync.Enabled = false
	service := NewCustomerSyncService(nil, nil, cfg)

	require.NoError(t, service.Start(context.Background()))
	assert.Equal(t, false, service.GetStatus()["sync_enabled"])
}

func TestMRRSnapshotSyncService_run(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	snapshotRepo := mocks.NewMockMRRSnapshotRepository(ctrl)
	s := store.New()
	s.ReplaceCustomers([]domain.Customer{
		{ID: 1, MRR: 25000, Status: domain.CustomerStatusActive, StartDate: time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)},
		{ID: 2, MRR: 50000, Status: domain.CustomerStatusActive, StartDate: time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)},
	})
	reportingService := reporting.NewService(s, snapshotRepo, referenceNow, metrics.DefaultPolicy(), nil, nil)
	service := NewMRRSnapshotSyncService(reportingService, nil, testConfig())

	// Mock: primeira gravação ok, segunda falha
	gomock.InOrder(
		snapshotRepo.EXPECT().SaveSnapshots(gomock.Any(), gomock.Len(2)).Return(nil),
		snapshotRepo.EXPECT().SaveSnapshots(gomock.Any(), gomock.Any()).Return(errors.New("disk full")),
	)

	service.run(context.Background())
	status := service.GetStatus()
	assert.Equal(t, 2, status["last_snapshot_count"])
	assert.Equal(t, "", status["last_error"])

	service.run(context.Background())
	status = service.GetStatus()
	assert.Equal(t, 2, status["last_snapshot_count"])
	assert.Contains(t, status["last_error"], "disk full")
}

func TestMRRSnapshotSyncService_TriggerManualSync_Concurrent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	snapshotRepo := mocks.NewMockMRRSnapshotRepository(ctrl)
	s := store.New()
	s.ReplaceCustomers([]domain.Customer{
		{ID: 1, MRR: 25000, Status: domain.CustomerStatusActive, StartDate: time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)},
	})
	reportingService := reporting.NewService(s, snapshotRepo, referenceNow, metrics.DefaultPolicy(), nil, nil)
	service := NewMRRSnapshotSyncService(reportingService, nil, testConfig())

	release := make(chan struct{})
	// Mock: a gravação fica presa até o teste liberar; só uma execução pode chegar aqui
	snapshotRepo.EXPECT().
		SaveSnapshots(gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, []*domain.MRRSnapshot) error {
			<-release
			return nil
		}).
		Times(1)

	const callers = 10
	var accepted atomic.Int32
	var wg sync.WaitGroup
	start := make(chan struct{})
	for range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			if service.TriggerManualSync(context.Background()) {
				accepted.Add(1)
			}
		}()
	}
	close(start)
	wg.Wait()

	assert.Equal(t, int32(1), accepted.Load())
	assert.Equal(t, true, service.GetStatus()["sync_running"])

	close(release)
	assert.Eventually(t, func() bool {
		return service.GetStatus()["sync_running"] == false
	}, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, 1, service.GetStatus()["last_snapshot_count"])
}

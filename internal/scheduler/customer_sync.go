package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/saas-metrics-api/internal/config"
	"github.com/vfg2006/saas-metrics-api/internal/usecases/syncing"
	"github.com/vfg2006/saas-metrics-api/pkg/log"
	"github.com/vfg2006/saas-metrics-api/pkg/telemetry"
)

const customerSyncJob = "customer_sync"

// CustomerSyncService recarrega periodicamente o store a partir da
// persistência e do banco
type CustomerSyncService struct {
	scheduler *gocron.Scheduler
	config    config.CustomerSync
	sync      syncing.SyncService
	telemetry *telemetry.Metrics
	state     jobState
}

func NewCustomerSyncService(
	syncService syncing.SyncService,
	telemetry *telemetry.Metrics,
	appConfig *config.Config,
) *CustomerSyncService {
	logrus.WithFields(logrus.Fields{
		"cron_schedule": appConfig.CustomerSync.CronSchedule,
		"sync_enabled":  appConfig.CustomerSync.Enabled,
	}).Info("scheduler: configuração da sincronização do store carregada")

	return &CustomerSyncService{
		scheduler: gocron.NewScheduler(time.Local),
		config:    appConfig.CustomerSync,
		sync:      syncService,
		telemetry: telemetry,
	}
}

// Start agenda a recarga e para o agendador quando ctx é cancelado
func (s *CustomerSyncService) Start(ctx context.Context) error {
	if !s.config.Enabled {
		logrus.Info("scheduler: sincronização do store desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("scheduler: iniciando sincronização do store")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.run(ctx)
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar sincronização do store: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("scheduler: parando sincronização do store")
		s.scheduler.Stop()
	}()

	return nil
}

func (s *CustomerSyncService) run(ctx context.Context) {
	if !s.state.begin(time.Now()) {
		logrus.Info("scheduler: sincronização do store já em andamento, ignorando")
		return
	}
	s.execute(ctx)
}

// execute roda a recarga; quem chama já reservou a execução com state.begin
func (s *CustomerSyncService) execute(ctx context.Context) {
	ctx = log.WithJob(ctx, customerSyncJob)
	tracker := s.telemetry.Track(customerSyncJob)

	startTime := time.Now()
	err := tracker.End(s.sync.Reload(ctx))
	s.state.finish(time.Now(), err)

	logger := log.ForContext(ctx).WithField("duration", time.Since(startTime).String())
	if err != nil {
		logger.WithError(err).Error("scheduler: sincronização do store concluída com falhas")
		return
	}
	logger.Info("scheduler: sincronização do store concluída")
}

// TriggerManualSync dispara uma recarga fora do agendamento. A execução é
// reservada antes de voltar, então só um de vários pedidos simultâneos vence.
func (s *CustomerSyncService) TriggerManualSync(ctx context.Context) bool {
	if !s.state.begin(time.Now()) {
		logrus.Info("scheduler: sincronização do store já em andamento, ignorando solicitação manual")
		return false
	}

	logrus.Info("scheduler: sincronização manual do store iniciada")
	go s.execute(context.WithoutCancel(ctx))
	return true
}

func (s *CustomerSyncService) GetStatus() map[string]any {
	started, completed, lastError, running := s.state.snapshot()
	return map[string]any{
		"sync_enabled":           s.config.Enabled,
		"sync_cron":              s.config.CronSchedule,
		"sync_running":           running,
		"last_sync_started_at":   started,
		"last_sync_completed_at": completed,
		"last_error":             lastError,
	}
}

package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/saas-metrics-api/internal/config"
	"github.com/vfg2006/saas-metrics-api/internal/usecases/reporting"
	"github.com/vfg2006/saas-metrics-api/pkg/log"
	"github.com/vfg2006/saas-metrics-api/pkg/telemetry"
)

const mrrSnapshotSyncJob = "mrr_snapshot_sync"

// MRRSnapshotSyncService grava o MRR por cliente do mês corrente. Rodando
// diariamente, a última execução do mês fica como o fechamento usado na
// movimentação do mês seguinte.
type MRRSnapshotSyncService struct {
	scheduler *gocron.Scheduler
	config    config.MRRSnapshotSync
	reporting reporting.ReportingService
	telemetry *telemetry.Metrics
	state     jobState
	lastCount int
}

func NewMRRSnapshotSyncService(
	reportingService reporting.ReportingService,
	telemetry *telemetry.Metrics,
	appConfig *config.Config,
) *MRRSnapshotSyncService {
	logrus.WithFields(logrus.Fields{
		"cron_schedule": appConfig.MRRSnapshotSync.CronSchedule,
		"sync_enabled":  appConfig.MRRSnapshotSync.Enabled,
	}).Info("scheduler: configuração do snapshot de MRR carregada")

	return &MRRSnapshotSyncService{
		scheduler: gocron.NewScheduler(time.Local),
		config:    appConfig.MRRSnapshotSync,
		reporting: reportingService,
		telemetry: telemetry,
	}
}

func (s *MRRSnapshotSyncService) Start(ctx context.Context) error {
	if !s.config.Enabled {
		logrus.Info("scheduler: snapshot de MRR desabilitado por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("scheduler: iniciando snapshot de MRR")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.run(ctx)
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar snapshot de MRR: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("scheduler: parando snapshot de MRR")
		s.scheduler.Stop()
	}()

	return nil
}

func (s *MRRSnapshotSyncService) run(ctx context.Context) {
	if !s.state.begin(time.Now()) {
		logrus.Info("scheduler: snapshot de MRR já em andamento, ignorando")
		return
	}
	s.execute(ctx)
}

func (s *MRRSnapshotSyncService) execute(ctx context.Context) {
	ctx = log.WithJob(ctx, mrrSnapshotSyncJob)
	tracker := s.telemetry.Track(mrrSnapshotSyncJob)

	count, err := s.reporting.CaptureMRRSnapshot(ctx)
	err = tracker.End(err)

	s.state.mu.Lock()
	if err == nil {
		s.lastCount = count
	}
	s.state.mu.Unlock()
	s.state.finish(time.Now(), err)

	if err != nil {
		log.ForContext(ctx).WithError(err).Error("scheduler: erro ao gravar snapshot de MRR")
		return
	}
	log.ForContext(ctx).Infof("scheduler: snapshot de MRR gravado para %d clientes", count)
}

func (s *MRRSnapshotSyncService) TriggerManualSync(ctx context.Context) bool {
	if !s.state.begin(time.Now()) {
		logrus.Info("scheduler: snapshot de MRR já em andamento, ignorando solicitação manual")
		return false
	}

	logrus.Info("scheduler: snapshot manual de MRR iniciado")
	go s.execute(context.WithoutCancel(ctx))
	return true
}

func (s *MRRSnapshotSyncService) GetStatus() map[string]any {
	started, completed, lastError, running := s.state.snapshot()

	s.state.mu.Lock()
	count := s.lastCount
	s.state.mu.Unlock()

	return map[string]any{
		"sync_enabled":           s.config.Enabled,
		"sync_cron":              s.config.CronSchedule,
		"sync_running":           running,
		"last_sync_started_at":   started,
		"last_sync_completed_at": completed,
		"last_error":             lastError,
		"last_snapshot_count":    count,
	}
}

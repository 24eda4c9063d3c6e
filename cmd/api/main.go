package main

import (
	"context"
	"os"
	"path"
	"runtime"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/saas-metrics-api/infrastructure/database/postgres"
	"github.com/vfg2006/saas-metrics-api/infrastructure/integrator/persistence"
	"github.com/vfg2006/saas-metrics-api/infrastructure/integrator/persistence/persistenceclient"
	"github.com/vfg2006/saas-metrics-api/infrastructure/repository"
	"github.com/vfg2006/saas-metrics-api/internal/api"
	"github.com/vfg2006/saas-metrics-api/internal/api/handler"
	"github.com/vfg2006/saas-metrics-api/internal/config"
	"github.com/vfg2006/saas-metrics-api/internal/scheduler"
	"github.com/vfg2006/saas-metrics-api/internal/store"
	"github.com/vfg2006/saas-metrics-api/internal/usecases/authenticating"
	"github.com/vfg2006/saas-metrics-api/internal/usecases/importing"
	"github.com/vfg2006/saas-metrics-api/internal/usecases/marketing"
	"github.com/vfg2006/saas-metrics-api/internal/usecases/reporting"
	"github.com/vfg2006/saas-metrics-api/internal/usecases/spending"
	"github.com/vfg2006/saas-metrics-api/internal/usecases/subscribing"
	"github.com/vfg2006/saas-metrics-api/internal/usecases/syncing"
	"github.com/vfg2006/saas-metrics-api/pkg/clock"
	"github.com/vfg2006/saas-metrics-api/pkg/log"
	"github.com/vfg2006/saas-metrics-api/pkg/telemetry"
)

func main() {
	chdirToSource()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	log.Setup(cfg.App.LogLevel, cfg.App.Environment)
	logrus.Infof("Nível de log configurado para: %s", logrus.GetLevel())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	systemClock := clock.New()
	metrics := telemetry.New()
	entityStore := store.New()

	userRepo := repository.NewUserRepository(pgConn)
	expenseRepo := repository.NewExpenseRepository(pgConn)
	campaignRepo := repository.NewCampaignRepository(pgConn)
	leadRepo := repository.NewLeadRepository(pgConn)
	snapshotRepo := repository.NewMRRSnapshotRepository(pgConn)

	persistenceIntegrator := persistence.New(persistenceclient.NewClient(cfg.Persistence))

	authenticator := authenticating.NewService(userRepo, cfg.Auth, systemClock)
	customerService := subscribing.NewService(persistenceIntegrator, entityStore, systemClock, metrics)
	expenseService := spending.NewService(expenseRepo, entityStore, systemClock, metrics)
	marketingService := marketing.NewService(campaignRepo, leadRepo, entityStore, systemClock, metrics)
	importService := importing.NewService(customerService)
	reportingService := reporting.NewService(
		entityStore,
		snapshotRepo,
		systemClock,
		reporting.PolicyFromConfig(cfg.Metrics),
		reporting.GrowthFromConfig(cfg.Metrics),
		metrics,
	)
	syncService := syncing.NewService(customerService, expenseService, marketingService)

	// Carga inicial: falhas deixam a coleção vazia e o agendador tenta de novo
	if err := syncService.Reload(ctx); err != nil {
		logrus.WithError(err).Warn("Carga inicial do store incompleta")
	}

	customerSyncService := scheduler.NewCustomerSyncService(syncService, metrics, cfg)
	mrrSnapshotSyncService := scheduler.NewMRRSnapshotSyncService(reportingService, metrics, cfg)

	if err := customerSyncService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de sincronização do store")
	}

	if err := mrrSnapshotSyncService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de snapshot de MRR")
	}

	server := api.New(cfg, api.Services{
		Reporting:     reportingService,
		Customers:     customerService,
		Importer:      importService,
		Expenses:      expenseService,
		Marketing:     marketingService,
		Authenticator: authenticator,
		CronJobs: handler.CronJobServices{
			CustomerSync:    customerSyncService,
			MRRSnapshotSync: mrrSnapshotSyncService,
		},
		Database:  pgConn,
		Telemetry: metrics,
	})

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// chdirToSource faz o .env ao lado do main ser encontrado em go run
func chdirToSource() {
	_, file, _, _ := runtime.Caller(0)
	if err := os.Chdir(path.Dir(file)); err != nil {
		logrus.WithError(err).Debug("Não foi possível mudar para o diretório do binário")
	}
}

func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	if err := conn.Ping(ctx); err != nil {
		logrus.WithError(err).Fatal("Erro ao testar conexão com PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}

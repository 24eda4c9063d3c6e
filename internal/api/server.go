package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/justinas/alice"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/saas-metrics-api/internal/api/handler"
	"github.com/vfg2006/saas-metrics-api/internal/api/handler/router"
	"github.com/vfg2006/saas-metrics-api/internal/config"
	"github.com/vfg2006/saas-metrics-api/internal/usecases/authenticating"
	"github.com/vfg2006/saas-metrics-api/internal/usecases/importing"
	"github.com/vfg2006/saas-metrics-api/internal/usecases/marketing"
	"github.com/vfg2006/saas-metrics-api/internal/usecases/reporting"
	"github.com/vfg2006/saas-metrics-api/internal/usecases/spending"
	"github.com/vfg2006/saas-metrics-api/internal/usecases/subscribing"
	"github.com/vfg2006/saas-metrics-api/pkg/middleware"
	"github.com/vfg2006/saas-metrics-api/pkg/telemetry"
)

const shutdownTimeout = 15 * time.Second

// Services agrupa as dependências expostas pela API
type Services struct {
	Reporting     reporting.ReportingService
	Customers     subscribing.CustomerService
	Importer      importing.ImportService
	Expenses      spending.ExpenseService
	Marketing     marketing.MarketingService
	Authenticator authenticating.Authenticator
	CronJobs      handler.CronJobServices
	Database      handler.Pinger
	Telemetry     *telemetry.Metrics
}

type Server struct {
	httpServer *http.Server
}

// NewHandler monta o roteador com a cadeia global de middlewares
func NewHandler(cfg *config.Config, services Services) http.Handler {
	rt := router.New(
		router.WithTelemetry(services.Telemetry),
		router.WithRoutes(handler.Healthcheck(services.Database, services.Telemetry)...),
		router.WithRoutes(handler.Authentication(services.Authenticator)...),
		router.WithRoutes(handler.User(services.Authenticator)...),
		router.WithRoutes(handler.Dashboard(services.Reporting)...),
		router.WithRoutes(handler.Reports(services.Reporting)...),
		router.WithRoutes(handler.Customers(services.Customers, services.Importer)...),
		router.WithRoutes(handler.Expenses(services.Expenses)...),
		router.WithRoutes(handler.Marketing(services.Marketing)...),
		router.WithRoutes(handler.CronJobs(services.CronJobs)...),
	)

	return alice.New(
		middleware.LogPanicMiddleware(),
		middleware.LoggingMiddleware(),
		middleware.Cors(cfg.Server.AllowedOrigins),
		middleware.AuthMiddleware(services.Authenticator),
	).Then(rt)
}

func New(cfg *config.Config, services Services) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
			Handler:           NewHandler(cfg, services),
			ReadHeaderTimeout: 2 * time.Second,
		},
	}
}

// Run bloqueia até SIGINT/SIGTERM ou o cancelamento de ctx e então desliga
// o servidor de forma graciosa
func (s *Server) Run(ctx context.Context) error {
	go func() {
		logrus.WithField("address", s.httpServer.Addr).Info("server: iniciando")

		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Error("server: erro durante a execução")
		}
	}()

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	select {
	case <-done:
		logrus.Info("server: sinal de interrupção recebido")
	case <-ctx.Done():
		logrus.Info("server: contexto da aplicação cancelado")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	logrus.WithField("timeout", shutdownTimeout.String()).Info("server: iniciando desligamento gracioso")

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("server: erro durante o desligamento")
		return err
	}

	logrus.Info("server: desligado com sucesso")
	return nil
}

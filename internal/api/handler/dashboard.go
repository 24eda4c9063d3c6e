package handler

import (
	"net/http"

	"github.com/vfg2006/saas-metrics-api/internal/domain"
	"github.com/vfg2006/saas-metrics-api/internal/metrics"
	"github.com/vfg2006/saas-metrics-api/internal/usecases/reporting"
	"github.com/vfg2006/saas-metrics-api/pkg/apiErrors"
	"github.com/vfg2006/saas-metrics-api/pkg/log"
)

const maxSeriesMonths = 60

// GetDashboard monta o painel completo do mês pedido
func GetDashboard(service reporting.ReportingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		month, ok := monthFromQuery(w, r, service.CurrentMonth())
		if !ok {
			return
		}

		dashboard, err := service.Dashboard(r.Context(), month)
		if err != nil {
			log.ForContext(r.Context()).WithError(err).Error("dashboard: erro ao montar o painel")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao montar o painel", nil)
			return
		}

		writeJSON(w, http.StatusOK, dashboard)
	}
}

// monthReport adapta um relatório que depende só do mês
func monthReport[T any](service reporting.ReportingService, build func(r *http.Request, m domain.Month) T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		month, ok := monthFromQuery(w, r, service.CurrentMonth())
		if !ok {
			return
		}
		writeJSON(w, http.StatusOK, build(r, month))
	}
}

func GetProfitAndLoss(service reporting.ReportingService) http.HandlerFunc {
	return monthReport(service, func(_ *http.Request, m domain.Month) metrics.ProfitAndLoss {
		return service.ProfitAndLoss(m)
	})
}

func GetExpenseReport(service reporting.ReportingService) http.HandlerFunc {
	return monthReport(service, func(_ *http.Request, m domain.Month) metrics.ExpenseSummary {
		return service.Expenses(m)
	})
}

func GetRetention(service reporting.ReportingService) http.HandlerFunc {
	return monthReport(service, func(r *http.Request, m domain.Month) metrics.Retention {
		return service.Retention(r.Context(), m)
	})
}

func GetUnitEconomics(service reporting.ReportingService) http.HandlerFunc {
	return monthReport(service, func(_ *http.Request, m domain.Month) metrics.UnitEconomics {
		return service.UnitEconomics(m)
	})
}

func GetCustomerLTV(service reporting.ReportingService) http.HandlerFunc {
	return monthReport(service, func(_ *http.Request, m domain.Month) []metrics.CustomerLTV {
		return service.CustomerLTV(m)
	})
}

func GetForecast(service reporting.ReportingService) http.HandlerFunc {
	return monthReport(service, func(_ *http.Request, m domain.Month) []metrics.ForecastPoint {
		return service.Forecast(m)
	})
}

// GetSeries aceita ?n= com o número de meses (padrão 6)
func GetSeries(service reporting.ReportingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		month, ok := monthFromQuery(w, r, service.CurrentMonth())
		if !ok {
			return
		}
		n, ok := intQuery(w, r, "n", metrics.DefaultSeriesLength, maxSeriesMonths)
		if !ok {
			return
		}
		writeJSON(w, http.StatusOK, service.Series(month, n))
	}
}

func GetCohorts(service reporting.ReportingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		month, ok := monthFromQuery(w, r, service.CurrentMonth())
		if !ok {
			return
		}
		n, ok := intQuery(w, r, "n", metrics.DefaultCohortCount, maxSeriesMonths)
		if !ok {
			return
		}
		writeJSON(w, http.StatusOK, service.Cohorts(month, n))
	}
}

func GetEngagement(service reporting.ReportingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, service.Engagement())
	}
}

// GetSnapshotPeriods lista os meses com fechamento de MRR disponível
func GetSnapshotPeriods(service reporting.ReportingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		periods, err := service.SnapshotPeriods(r.Context())
		if err != nil {
			log.ForContext(r.Context()).WithError(err).Error("dashboard: erro ao listar períodos")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao listar períodos", nil)
			return
		}
		writeJSON(w, http.StatusOK, periods)
	}
}

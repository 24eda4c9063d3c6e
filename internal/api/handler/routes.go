package handler

import (
	"net/http"

	"github.com/vfg2006/saas-metrics-api/internal/api/handler/router"
	"github.com/vfg2006/saas-metrics-api/internal/usecases/authenticating"
	"github.com/vfg2006/saas-metrics-api/internal/usecases/importing"
	"github.com/vfg2006/saas-metrics-api/internal/usecases/marketing"
	"github.com/vfg2006/saas-metrics-api/internal/usecases/reporting"
	"github.com/vfg2006/saas-metrics-api/internal/usecases/spending"
	"github.com/vfg2006/saas-metrics-api/internal/usecases/subscribing"
	"github.com/vfg2006/saas-metrics-api/pkg/middleware"
	"github.com/vfg2006/saas-metrics-api/pkg/telemetry"
)

type middlewares = []func(http.Handler) http.Handler

func Healthcheck(db Pinger, metrics *telemetry.Metrics) []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(db),
		},
		{
			Path:    "/metrics",
			Method:  http.MethodGet,
			Handler: metrics.Handler(),
		},
	}
}

func Dashboard(service reporting.ReportingService) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/dashboard",
			Method:      http.MethodGet,
			Handler:     GetDashboard(service),
			Middlewares: middlewares{middleware.AllRoles()},
		},
	}
}

func Reports(service reporting.ReportingService) []router.Route {
	reports := map[string]http.Handler{
		"/v1/reports/pnl":            GetProfitAndLoss(service),
		"/v1/reports/expenses":       GetExpenseReport(service),
		"/v1/reports/retention":      GetRetention(service),
		"/v1/reports/unit-economics": GetUnitEconomics(service),
		"/v1/reports/customer-ltv":   GetCustomerLTV(service),
		"/v1/reports/series":         GetSeries(service),
		"/v1/reports/forecast":       GetForecast(service),
		"/v1/reports/cohorts":        GetCohorts(service),
		"/v1/reports/engagement":     GetEngagement(service),
		"/v1/reports/periods":        GetSnapshotPeriods(service),
	}

	routes := make([]router.Route, 0, len(reports))
	for path, h := range reports {
		routes = append(routes, router.Route{
			Path:        path,
			Method:      http.MethodGet,
			Handler:     h,
			Middlewares: middlewares{middleware.AllRoles()},
		})
	}
	return routes
}

func Customers(service subscribing.CustomerService, importer importing.ImportService) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/customers",
			Method:      http.MethodGet,
			Handler:     ListCustomers(service),
			Middlewares: middlewares{middleware.AllRoles()},
		},
		{
			Path:        "/v1/customers",
			Method:      http.MethodPost,
			Handler:     CreateCustomer(service),
			Middlewares: middlewares{middleware.AdminOrAnalyst()},
		},
		{
			Path:        "/v1/customers/:id",
			Method:      http.MethodDelete,
			Handler:     DeleteCustomer(service),
			Middlewares: middlewares{middleware.AdminOrAnalyst()},
		},
		{
			Path:        "/v1/customers/bulk-delete",
			Method:      http.MethodPost,
			Handler:     BulkDeleteCustomers(service),
			Middlewares: middlewares{middleware.AdminOrAnalyst()},
		},
		{
			Path:        "/v1/customers/import",
			Method:      http.MethodPost,
			Handler:     ImportCustomers(importer),
			Middlewares: middlewares{middleware.AdminOrAnalyst()},
		},
		{
			Path:        "/v1/customers/export",
			Method:      http.MethodGet,
			Handler:     ExportCustomers(importer),
			Middlewares: middlewares{middleware.AllRoles()},
		},
	}
}

func Expenses(service spending.ExpenseService) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/expenses",
			Method:      http.MethodGet,
			Handler:     ListExpenses(service),
			Middlewares: middlewares{middleware.AllRoles()},
		},
		{
			Path:        "/v1/expenses",
			Method:      http.MethodPost,
			Handler:     CreateExpense(service),
			Middlewares: middlewares{middleware.AdminOrAnalyst()},
		},
		{
			Path:        "/v1/expenses/taxonomy",
			Method:      http.MethodGet,
			Handler:     GetExpenseTaxonomy(service),
			Middlewares: middlewares{middleware.AllRoles()},
		},
		{
			Path:        "/v1/expenses/:id",
			Method:      http.MethodDelete,
			Handler:     DeleteExpense(service),
			Middlewares: middlewares{middleware.AdminOrAnalyst()},
		},
		{
			Path:        "/v1/expenses/:id/approve",
			Method:      http.MethodPut,
			Handler:     ApproveExpense(service),
			Middlewares: middlewares{middleware.AdminOnly()},
		},
	}
}

func Marketing(service marketing.MarketingService) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/campaigns",
			Method:      http.MethodGet,
			Handler:     ListCampaigns(service),
			Middlewares: middlewares{middleware.AllRoles()},
		},
		{
			Path:        "/v1/campaigns",
			Method:      http.MethodPost,
			Handler:     CreateCampaign(service),
			Middlewares: middlewares{middleware.AdminOrAnalyst()},
		},
		{
			Path:        "/v1/campaigns/:id",
			Method:      http.MethodDelete,
			Handler:     DeleteCampaign(service),
			Middlewares: middlewares{middleware.AdminOrAnalyst()},
		},
		{
			Path:        "/v1/leads",
			Method:      http.MethodGet,
			Handler:     ListLeads(service),
			Middlewares: middlewares{middleware.AllRoles()},
		},
		{
			Path:        "/v1/leads",
			Method:      http.MethodPost,
			Handler:     CreateLead(service),
			Middlewares: middlewares{middleware.AdminOrAnalyst()},
		},
		{
			Path:        "/v1/leads/:id",
			Method:      http.MethodDelete,
			Handler:     DeleteLead(service),
			Middlewares: middlewares{middleware.AdminOrAnalyst()},
		},
		{
			Path:        "/v1/leads/:id/convert",
			Method:      http.MethodPut,
			Handler:     ConvertLead(service),
			Middlewares: middlewares{middleware.AdminOrAnalyst()},
		},
	}
}

func Authentication(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/login",
			Method:  http.MethodPost,
			Handler: Login(service),
		},
		{
			Path:        "/v1/me",
			Method:      http.MethodGet,
			Handler:     GetMe(service),
			Middlewares: middlewares{middleware.AllRoles()},
		},
		{
			Path:        "/v1/users/:id/generate-password",
			Method:      http.MethodPost,
			Handler:     GeneratePassword(service),
			Middlewares: middlewares{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/users/:id/change-password",
			Method:      http.MethodPost,
			Handler:     ChangePassword(service),
			Middlewares: middlewares{middleware.AllRoles()},
		},
	}
}

func User(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/users",
			Method:      http.MethodGet,
			Handler:     ListUsers(service),
			Middlewares: middlewares{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/users",
			Method:      http.MethodPost,
			Handler:     CreateUser(service),
			Middlewares: middlewares{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/users/:id",
			Method:      http.MethodGet,
			Handler:     GetUser(service),
			Middlewares: middlewares{middleware.AllRoles()},
		},
		{
			Path:        "/v1/users/:id",
			Method:      http.MethodPut,
			Handler:     UpdateUser(service),
			Middlewares: middlewares{middleware.AllRoles()},
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/cron/:type/run",
			Method:      http.MethodPost,
			Handler:     RunCronJob(services),
			Middlewares: middlewares{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/cron/status",
			Method:      http.MethodGet,
			Handler:     GetCronStatus(services),
			Middlewares: middlewares{middleware.AdminOnly()},
		},
	}
}

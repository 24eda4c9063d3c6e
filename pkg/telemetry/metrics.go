package telemetry

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "saas_metrics"

// Metrics agrupa os coletores Prometheus da aplicação num registry próprio.
// Todos os métodos aceitam receptor nil e viram no-op.
type Metrics struct {
	registry *prometheus.Registry
	handler  http.Handler

	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec

	mrr             prometheus.Gauge
	arr             prometheus.Gauge
	balance         prometheus.Gauge
	churnRate       prometheus.Gauge
	nrr             prometheus.Gauge
	activeCustomers prometheus.Gauge

	persistenceFailures *prometheus.CounterVec
	storeReloads        *prometheus.CounterVec

	jobRuns     *prometheus.CounterVec
	jobDuration *prometheus.HistogramVec
}

func New() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Requisições HTTP por rota, método e status.",
		}, []string{"route", "method", "code"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duração das requisições HTTP por rota.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
		mrr: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "mrr_yen",
			Help:      "MRR do último mês calculado no painel.",
		}),
		arr: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "arr_yen",
			Help:      "ARR do último mês calculado no painel.",
		}),
		balance: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "balance_yen",
			Help:      "Resultado (receita menos despesa) do último mês calculado.",
		}),
		churnRate: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "monthly_churn_rate_percent",
			Help:      "Churn mensal em percentual.",
		}),
		nrr: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "net_revenue_retention_percent",
			Help:      "Net revenue retention em percentual.",
		}),
		activeCustomers: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_customers",
			Help:      "Clientes ativos no mês calculado.",
		}),
		persistenceFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "persistence_failures_total",
			Help:      "Falhas nas chamadas ao serviço de persistência por operação.",
		}, []string{"operation"}),
		storeReloads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "store_reloads_total",
			Help:      "Recargas de coleções do store por resultado.",
		}, []string{"collection", "result"}),
		jobRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "job_runs_total",
			Help:      "Execuções dos jobs agendados por status.",
		}, []string{"job", "status"}),
		jobDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "job_duration_seconds",
			Help:      "Duração das execuções dos jobs agendados.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"job"}),
	}

	registry.MustRegister(
		m.requestsTotal,
		m.requestDuration,
		m.mrr,
		m.arr,
		m.balance,
		m.churnRate,
		m.nrr,
		m.activeCustomers,
		m.persistenceFailures,
		m.storeReloads,
		m.jobRuns,
		m.jobDuration,
	)
	m.handler = promhttp.HandlerFor(registry, promhttp.HandlerOpts{})

	return m
}

// Handler expõe o endpoint /metrics
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// Registerer permite registrar coletores adicionais no mesmo registry
func (m *Metrics) Registerer() prometheus.Registerer {
	if m == nil {
		return prometheus.NewRegistry()
	}
	return m.registry
}

// Instrument conta e cronometra as requisições de uma rota
func (m *Metrics) Instrument(route string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if m == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(recorder, r)
			m.requestsTotal.WithLabelValues(route, r.Method, strconv.Itoa(recorder.status)).Inc()
			m.requestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
		})
	}
}

// Headline é o recorte do painel publicado como gauges
type Headline struct {
	MRR             float64
	ARR             float64
	Balance         float64
	ChurnRate       float64
	NRR             float64
	ActiveCustomers int
}

func (m *Metrics) ObserveHeadline(h Headline) {
	if m == nil {
		return
	}
	m.mrr.Set(h.MRR)
	m.arr.Set(h.ARR)
	m.balance.Set(h.Balance)
	m.churnRate.Set(h.ChurnRate)
	m.nrr.Set(h.NRR)
	m.activeCustomers.Set(float64(h.ActiveCustomers))
}

func (m *Metrics) PersistenceFailure(operation string) {
	if m == nil {
		return
	}
	m.persistenceFailures.WithLabelValues(operation).Inc()
}

func (m *Metrics) StoreReload(collection string, err error) {
	if m == nil {
		return
	}
	result := "success"
	if err != nil {
		result = "failure"
	}
	m.storeReloads.WithLabelValues(collection, result).Inc()
}

// Tracker mede uma execução de job
type Tracker struct {
	metrics *Metrics
	job     string
	start   time.Time
}

func (m *Metrics) Track(job string) *Tracker {
	return &Tracker{metrics: m, job: job, start: time.Now()}
}

// End registra duração e status e devolve err intacto
func (t *Tracker) End(err error) error {
	if t == nil || t.metrics == nil {
		return err
	}
	status := "success"
	if err != nil {
		status = "failure"
	}
	t.metrics.jobRuns.WithLabelValues(t.job, status).Inc()
	t.metrics.jobDuration.WithLabelValues(t.job).Observe(time.Since(t.start).Seconds())
	return err
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

package observability

import (
	"context"
	"database/sql"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/yungbote/registrar-backend/internal/platform/logger"
)

type MetricsConfig struct {
	Enabled bool   `koanf:"enabled" yaml:"enabled"`
	Addr    string `koanf:"addr" yaml:"addr"`
}

// Metrics owns a private registry so tests can build as many as they like.
type Metrics struct {
	registry *prometheus.Registry

	apiRequests *prometheus.CounterVec
	apiLatency  *prometheus.HistogramVec
	apiInflight prometheus.Gauge

	aggregateOps        *prometheus.CounterVec
	aggregateLatency    *prometheus.HistogramVec
	constraintViolation *prometheus.CounterVec
	txAborted           *prometheus.CounterVec
	referenceRace       *prometheus.CounterVec
	referenceCreated    *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		apiRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "registrar_api_requests_total",
			Help: "Total API requests by method/route/status.",
		}, []string{"method", "route", "status"}),
		apiLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "registrar_api_request_duration_seconds",
			Help:    "API request latency in seconds by method/route/status.",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5},
		}, []string{"method", "route", "status"}),
		apiInflight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "registrar_api_inflight_requests",
			Help: "In-flight API requests.",
		}),
		aggregateOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "registrar_aggregate_operations_total",
			Help: "Aggregate write operations by name and outcome code.",
		}, []string{"op", "status"}),
		aggregateLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "registrar_aggregate_operation_duration_seconds",
			Help:    "Aggregate write latency including commit.",
			Buckets: prometheus.DefBuckets,
		}, []string{"op"}),
		constraintViolation: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "registrar_constraint_violations_total",
			Help: "Units of work rolled back on a constraint violation.",
		}, []string{"op"}),
		txAborted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "registrar_transactions_aborted_total",
			Help: "Units of work aborted by the database or by cancellation.",
		}, []string{"op"}),
		referenceRace: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "registrar_reference_insert_races_total",
			Help: "Reference inserts that lost a race and re-read the winner's row.",
		}, []string{"table"}),
		referenceCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "registrar_references_created_total",
			Help: "Reference rows created by find-or-create.",
		}, []string{"table"}),
	}
	m.registry.MustRegister(
		m.apiRequests,
		m.apiLatency,
		m.apiInflight,
		m.aggregateOps,
		m.aggregateLatency,
		m.constraintViolation,
		m.txAborted,
		m.referenceRace,
		m.referenceCreated,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// RegisterDB exports database/sql pool stats under the given name.
func (m *Metrics) RegisterDB(db *sql.DB, name string) error {
	if m == nil || db == nil {
		return nil
	}
	return m.registry.Register(collectors.NewDBStatsCollector(db, name))
}

func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// StartServer serves /metrics on addr until ctx is done.
func (m *Metrics) StartServer(ctx context.Context, log *logger.Logger, addr string) {
	if m == nil {
		return
	}
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		_ = srv.Shutdown(shutdownCtx)
		cancel()
	}()
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			if log != nil {
				log.Error("metrics server failed", "error", err, "addr", addr)
			}
		}
	}()
}

func (m *Metrics) ObserveAPI(method, route, status string, dur time.Duration) {
	if m == nil {
		return
	}
	if method == "" {
		method = "UNKNOWN"
	}
	if route == "" {
		route = "unknown"
	}
	if status == "" {
		status = "0"
	}
	m.apiRequests.WithLabelValues(method, route, status).Inc()
	m.apiLatency.WithLabelValues(method, route, status).Observe(dur.Seconds())
}

func (m *Metrics) APIInflightInc() {
	if m == nil {
		return
	}
	m.apiInflight.Inc()
}

func (m *Metrics) APIInflightDec() {
	if m == nil {
		return
	}
	m.apiInflight.Dec()
}

func (m *Metrics) ObserveAggregateOperation(op, status string, dur time.Duration) {
	if m == nil {
		return
	}
	m.aggregateOps.WithLabelValues(op, status).Inc()
	m.aggregateLatency.WithLabelValues(op).Observe(dur.Seconds())
}

func (m *Metrics) IncConstraintViolation(op string) {
	if m == nil {
		return
	}
	m.constraintViolation.WithLabelValues(op).Inc()
}

func (m *Metrics) IncTransactionAborted(op string) {
	if m == nil {
		return
	}
	m.txAborted.WithLabelValues(op).Inc()
}

func (m *Metrics) IncReferenceRace(table string) {
	if m == nil {
		return
	}
	m.referenceRace.WithLabelValues(table).Inc()
}

func (m *Metrics) AddReferencesCreated(table string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.referenceCreated.WithLabelValues(table).Add(float64(n))
}

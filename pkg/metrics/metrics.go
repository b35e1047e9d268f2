package metrics

import (
	"database/sql"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics набор Prometheus-коллекторов сервиса
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueriesTotal     *prometheus.CounterVec
	DBQueryDuration    *prometheus.HistogramVec
	DBOpenConnections  *prometheus.GaugeVec
	DBInUseConnections *prometheus.GaugeVec
	DBIdleConnections  *prometheus.GaugeVec
	DBWaitCount        *prometheus.GaugeVec

	SchedulingOutcomes   *prometheus.CounterVec
	SideEffectWarnings   *prometheus.CounterVec
	PersistenceAttempts  *prometheus.CounterVec
	SlotSearchIterations *prometheus.HistogramVec
}

// New создает и регистрирует коллекторы в DefaultRegisterer
func New(serviceName string) *Metrics {
	return NewWithRegisterer(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegisterer создает коллекторы и регистрирует их в переданном registerer
func NewWithRegisterer(serviceName string, reg prometheus.Registerer) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "route", "status"}),

		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),

		DBQueriesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "db_queries_total",
			Help:        "Total number of database queries",
			ConstLabels: constLabels,
		}, []string{"operation", "status"}),

		DBQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query latency",
			ConstLabels: constLabels,
			Buckets:     []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation"}),

		DBOpenConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_open_connections",
			Help:        "Number of open connections",
			ConstLabels: constLabels,
		}, []string{}),

		DBInUseConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_in_use_connections",
			Help:        "Number of connections currently in use",
			ConstLabels: constLabels,
		}, []string{}),

		DBIdleConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_idle_connections",
			Help:        "Number of idle connections",
			ConstLabels: constLabels,
		}, []string{}),

		DBWaitCount: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_wait_count",
			Help:        "Total number of connections waited for",
			ConstLabels: constLabels,
		}, []string{}),

		SchedulingOutcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "scheduling_outcomes_total",
			Help:        "Scheduling attempts by outcome",
			ConstLabels: constLabels,
		}, []string{"outcome"}),

		SideEffectWarnings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "scheduling_side_effect_warnings_total",
			Help:        "Degraded side effects by pipeline step",
			ConstLabels: constLabels,
		}, []string{"step"}),

		PersistenceAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "scheduling_persistence_attempts_total",
			Help:        "Persistence attempts by strategy and result",
			ConstLabels: constLabels,
		}, []string{"strategy", "result"}),

		SlotSearchIterations: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "scheduling_slot_search_iterations",
			Help:        "Iterations spent by slot search per request",
			ConstLabels: constLabels,
			Buckets:     []float64{1, 2, 3, 5, 10, 25, 50, 100, 365},
		}, []string{}),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.DBQueriesTotal,
		m.DBQueryDuration,
		m.DBOpenConnections,
		m.DBInUseConnections,
		m.DBIdleConnections,
		m.DBWaitCount,
		m.SchedulingOutcomes,
		m.SideEffectWarnings,
		m.PersistenceAttempts,
		m.SlotSearchIterations,
	)

	return m
}

// ObserveHTTP фиксирует HTTP запрос
func (m *Metrics) ObserveHTTP(method, route, status string, d time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, route, status).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// ObserveDB фиксирует запрос к БД
func (m *Metrics) ObserveDB(operation string, err error, d time.Duration) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.DBQueriesTotal.WithLabelValues(operation, status).Inc()
	m.DBQueryDuration.WithLabelValues(operation).Observe(d.Seconds())
}

// ObservePool фиксирует состояние connection pool
func (m *Metrics) ObservePool(stats sql.DBStats) {
	m.DBOpenConnections.WithLabelValues().Set(float64(stats.OpenConnections))
	m.DBInUseConnections.WithLabelValues().Set(float64(stats.InUse))
	m.DBIdleConnections.WithLabelValues().Set(float64(stats.Idle))
	m.DBWaitCount.WithLabelValues().Set(float64(stats.WaitCount))
}

// SchedulingOutcome фиксирует итог попытки бронирования
func (m *Metrics) SchedulingOutcome(outcome string) {
	m.SchedulingOutcomes.WithLabelValues(outcome).Inc()
}

// SideEffectWarning фиксирует деградацию шага пайплайна
func (m *Metrics) SideEffectWarning(step string) {
	m.SideEffectWarnings.WithLabelValues(step).Inc()
}

// PersistenceAttempt фиксирует попытку сохранения
func (m *Metrics) PersistenceAttempt(strategy string, ok bool) {
	result := "ok"
	if !ok {
		result = "error"
	}
	m.PersistenceAttempts.WithLabelValues(strategy, result).Inc()
}

// SlotSearch фиксирует количество итераций поиска слота
func (m *Metrics) SlotSearch(iterations int) {
	m.SlotSearchIterations.WithLabelValues().Observe(float64(iterations))
}

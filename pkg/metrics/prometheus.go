package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics глобальный контейнер метрик
type Metrics struct {
	// HTTP request metrics (the platform used to label these by gRPC method;
	// the MAPF API is HTTP/JSON, so the label is the request path instead).
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	// MAPF solve metrics
	SolveOperationsTotal  *prometheus.CounterVec
	SolveDuration         *prometheus.HistogramVec
	SolveObjectiveValue   *prometheus.GaugeVec
	AgentCountTotal       *prometheus.HistogramVec
	DynamicLoopIterations *prometheus.HistogramVec
	ConflictCutsAdded     *prometheus.HistogramVec
	CacheHitsTotal        *prometheus.CounterVec

	GraphNodesTotal  *prometheus.HistogramVec
	GraphEdgesTotal  *prometheus.HistogramVec
	BottlenecksFound *prometheus.HistogramVec

	// Системные метрики
	MemoryUsage *prometheus.GaugeVec
	Goroutines  prometheus.Gauge

	// Информация о сервисе
	ServiceInfo *prometheus.GaugeVec
}

var defaultMetrics *Metrics

// InitMetrics инициализирует метрики
func InitMetrics(namespace, subsystem string) *Metrics {
	m := &Metrics{
		HTTPRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"path", "status"},
		),

		HTTPRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "http_request_duration_seconds",
				Help:      "Duration of HTTP requests",
				Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"path"},
		),

		HTTPRequestsInFlight: promauto.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "http_requests_in_flight",
				Help:      "Current number of HTTP requests being processed",
			},
		),

		// MAPF solve metrics
		SolveOperationsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "solve_operations_total",
				Help:      "Total number of MAPF solve operations",
			},
			[]string{"flavor", "status"},
		),

		SolveDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "solve_duration_seconds",
				Help:      "Duration of MAPF solve operations",
				Buckets:   []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60},
			},
			[]string{"flavor"},
		),

		SolveObjectiveValue: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "solve_objective_value",
				Help:      "Last computed objective value",
			},
			[]string{"flavor"},
		),

		AgentCountTotal: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "agent_count",
				Help:      "Number of agents in a solved instance",
				Buckets:   []float64{1, 2, 5, 10, 25, 50, 100, 250, 500},
			},
			[]string{"flavor"},
		),

		DynamicLoopIterations: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "dynamic_loop_iterations",
				Help:      "Number of lazy-cut iterations in the dynamic-conflict loop",
				Buckets:   []float64{1, 2, 3, 5, 10, 20, 50, 100},
			},
			[]string{"flavor"},
		),

		ConflictCutsAdded: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "conflict_cuts_added",
				Help:      "Number of conflict cuts added over a solve",
				Buckets:   []float64{0, 1, 2, 5, 10, 25, 50, 100},
			},
			[]string{"flavor"},
		),

		CacheHitsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "solve_cache_total",
				Help:      "Solve result cache lookups",
			},
			[]string{"result"},
		),

		GraphNodesTotal: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "graph_nodes_total",
				Help:      "Number of nodes in processed graphs",
				Buckets:   []float64{10, 50, 100, 500, 1000, 5000, 10000, 50000},
			},
			[]string{"operation"},
		),

		GraphEdgesTotal: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "graph_edges_total",
				Help:      "Number of edges in processed graphs",
				Buckets:   []float64{20, 100, 500, 1000, 5000, 10000, 50000, 100000},
			},
			[]string{"operation"},
		),

		BottlenecksFound: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "bottlenecks_found",
				Help:      "Number of bottlenecks found",
				Buckets:   []float64{0, 1, 2, 5, 10, 20, 50},
			},
			[]string{"severity"},
		),

		// Системные метрики
		MemoryUsage: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "memory_usage_bytes",
				Help:      "Current memory usage",
			},
			[]string{"type"},
		),

		Goroutines: promauto.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "goroutines",
				Help:      "Current number of goroutines",
			},
		),

		ServiceInfo: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "service_info",
				Help:      "Service information",
			},
			[]string{"version", "environment"},
		),
	}

	defaultMetrics = m
	return m
}

// Get возвращает глобальные метрики
func Get() *Metrics {
	if defaultMetrics == nil {
		return InitMetrics("mapfnet", "")
	}
	return defaultMetrics
}

// RecordHTTPRequest records metrics for one HTTP request.
func (m *Metrics) RecordHTTPRequest(path string, status string, duration time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(path, status).Inc()
	m.HTTPRequestDuration.WithLabelValues(path).Observe(duration.Seconds())
}

// RecordSolveOperation records metrics for one MAPF solve call.
func (m *Metrics) RecordSolveOperation(flavor string, success bool, duration time.Duration, objective float64) {
	status := "success"
	if !success {
		status = "error"
	}

	m.SolveOperationsTotal.WithLabelValues(flavor, status).Inc()
	m.SolveDuration.WithLabelValues(flavor).Observe(duration.Seconds())
	m.SolveObjectiveValue.WithLabelValues(flavor).Set(objective)
}

// RecordDynamicLoop records the iteration count and cuts added by one
// dynamic-conflict-loop solve.
func (m *Metrics) RecordDynamicLoop(flavor string, iterations, cuts int) {
	m.DynamicLoopIterations.WithLabelValues(flavor).Observe(float64(iterations))
	m.ConflictCutsAdded.WithLabelValues(flavor).Observe(float64(cuts))
}

// RecordCacheLookup increments the cache hit/miss counter.
func (m *Metrics) RecordCacheLookup(hit bool) {
	if hit {
		m.CacheHitsTotal.WithLabelValues("hit").Inc()
		return
	}
	m.CacheHitsTotal.WithLabelValues("miss").Inc()
}

// RecordGraphSize записывает размер графа
func (m *Metrics) RecordGraphSize(operation string, nodes, edges int) {
	m.GraphNodesTotal.WithLabelValues(operation).Observe(float64(nodes))
	m.GraphEdgesTotal.WithLabelValues(operation).Observe(float64(edges))
}

// RecordBottlenecks записывает количество найденных узких мест
func (m *Metrics) RecordBottlenecks(severity string, count int) {
	m.BottlenecksFound.WithLabelValues(severity).Observe(float64(count))
}

// SetServiceInfo устанавливает информацию о сервисе
func (m *Metrics) SetServiceInfo(version, environment string) {
	m.ServiceInfo.WithLabelValues(version, environment).Set(1)
}

// Handler возвращает HTTP handler для /metrics
func Handler() http.Handler {
	return promhttp.Handler()
}

// StartMetricsServer запускает HTTP сервер для метрик
func StartMetricsServer(port int) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		// Игнорируем ошибку записи - response уже отправлен
		_, _ = w.Write([]byte("OK")) //nolint:errcheck // health endpoint, ошибка записи не критична
	})

	server := &http.Server{
		Addr:         ":" + strconv.Itoa(port),
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	return server.ListenAndServe()
}

// Package metrics provides Prometheus instrumentation for the docsearch CLI.
package metrics

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Manager owns the metric registry and the instruments fed by the CLI.
type Manager struct {
	registry *prometheus.Registry
	enabled  bool

	queries          *prometheus.CounterVec
	queryDuration    prometheus.Histogram
	documents        prometheus.Gauge
	zeroResultWindow prometheus.Gauge
}

// Config holds metrics configuration.
type Config struct {
	Enabled bool
	Port    int
	Path    string

	QueryDurationBuckets []float64
}

// DefaultConfig returns default metrics configuration.
func DefaultConfig() Config {
	return Config{
		Enabled:              true,
		Port:                 9091,
		Path:                 "/metrics",
		QueryDurationBuckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
	}
}

// NewManager creates a new metrics manager.
func NewManager(cfg Config) *Manager {
	if !cfg.Enabled {
		return &Manager{enabled: false}
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(prometheus.NewGoCollector())
	registry.MustRegister(prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}))

	buckets := cfg.QueryDurationBuckets
	if len(buckets) == 0 {
		buckets = DefaultConfig().QueryDurationBuckets
	}

	m := &Manager{
		registry: registry,
		enabled:  true,
		queries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "docsearch_queries_total",
			Help: "Total queries executed, labeled by outcome.",
		}, []string{"outcome"}),
		queryDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "docsearch_query_duration_seconds",
			Help:    "Query execution time.",
			Buckets: buckets,
		}),
		documents: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "docsearch_documents",
			Help: "Live documents in the index.",
		}),
		zeroResultWindow: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "docsearch_zero_result_queries_window",
			Help: "Queries with zero results over the sliding request window.",
		}),
	}
	registry.MustRegister(m.queries, m.queryDuration, m.documents, m.zeroResultWindow)
	return m
}

// Enabled reports whether metrics collection is on.
func (m *Manager) Enabled() bool {
	return m.enabled
}

// Handler returns the HTTP handler for the metrics endpoint.
func (m *Manager) Handler() http.Handler {
	if !m.enabled {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		})
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// StartServer serves the metrics endpoint until ctx is done.
func (m *Manager) StartServer(ctx context.Context, port int, path string) error {
	if !m.enabled {
		return nil
	}

	mux := http.NewServeMux()
	mux.Handle(path, m.Handler())

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: mux,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Warn("metrics server shutdown", "error", err)
		}
	}()

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("metrics server: %w", err)
	}
	return nil
}

// ObserveQuery records one query execution.
func (m *Manager) ObserveQuery(duration time.Duration, resultCount int, err error) {
	if !m.enabled {
		return
	}
	outcome := "ok"
	switch {
	case err != nil:
		outcome = "error"
	case resultCount == 0:
		outcome = "empty"
	}
	m.queries.WithLabelValues(outcome).Inc()
	if err == nil {
		m.queryDuration.Observe(duration.Seconds())
	}
}

// SetDocumentCount updates the live-document gauge.
func (m *Manager) SetDocumentCount(n int) {
	if m.enabled {
		m.documents.Set(float64(n))
	}
}

// SetZeroResultWindow updates the sliding-window zero-result gauge.
func (m *Manager) SetZeroResultWindow(n int) {
	if m.enabled {
		m.zeroResultWindow.Set(float64(n))
	}
}

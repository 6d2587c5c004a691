// Package observability bundles the service's Prometheus metrics and
// the HTTP instrumentation that feeds them.
package observability

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector bundles Prometheus metrics for the HTTP surface and the
// dataset/render pipeline, and provides helpers to wire them into the
// router.
type Collector struct {
	gatherer prometheus.Gatherer

	HTTPRequests  *prometheus.CounterVec
	HTTPDurations *prometheus.HistogramVec

	DatasetsActive  prometheus.Gauge
	SectorsRendered prometheus.Counter
	SectorFailures  prometheus.Counter
	RowsSkipped     prometheus.Counter
}

// NewCollector registers the service metrics against the provided
// registerer, defaulting to the global Prometheus registry when nil.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of handled HTTP requests, labeled by method, route, and status code.",
	}, []string{"method", "route", "status"})
	requests, err := registerCounterVec(reg, requests, "http_requests_total")
	if err != nil {
		return nil, err
	}

	durations := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency in seconds.",
		Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
	}, []string{"method", "route"})
	durations, err = registerHistogramVec(reg, durations, "http_request_duration_seconds")
	if err != nil {
		return nil, err
	}

	datasets, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "datasets_active",
		Help: "Current number of datasets held in memory.",
	}), "datasets_active")
	if err != nil {
		return nil, err
	}
	rendered, err := registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "sectors_rendered_total",
		Help: "Total sector polygons included in rendered views.",
	}), "sectors_rendered_total")
	if err != nil {
		return nil, err
	}
	failures, err := registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "sector_build_failures_total",
		Help: "Total records whose sector geometry could not be built.",
	}), "sector_build_failures_total")
	if err != nil {
		return nil, err
	}
	skipped, err := registerCounter(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "csv_rows_skipped_total",
		Help: "Total CSV data rows skipped during parsing.",
	}), "csv_rows_skipped_total")
	if err != nil {
		return nil, err
	}

	return &Collector{
		gatherer:        gatherer,
		HTTPRequests:    requests,
		HTTPDurations:   durations,
		DatasetsActive:  datasets,
		SectorsRendered: rendered,
		SectorFailures:  failures,
		RowsSkipped:     skipped,
	}, nil
}

// Middleware records request counts and durations per chi route
// pattern, so /api/datasets/{id} stays one series regardless of ID.
func (c *Collector) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if c == nil {
				next.ServeHTTP(w, r)
				return
			}

			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			elapsed := time.Since(start)

			route := r.URL.Path
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				if pattern := rctx.RoutePattern(); pattern != "" {
					route = pattern
				}
			}
			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}

			if c.HTTPRequests != nil {
				c.HTTPRequests.WithLabelValues(r.Method, route, fmt.Sprintf("%d", status)).Inc()
			}
			if c.HTTPDurations != nil {
				c.HTTPDurations.WithLabelValues(r.Method, route).Observe(elapsed.Seconds())
			}
		})
	}
}

// Handler exposes a ready-to-use /metrics handler.
func (c *Collector) Handler() http.Handler {
	gatherer := c.gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// SetDatasetsActive satisfies the dataset store's Recorder interface so
// the store can drive the gauge directly from its mutators.
func (c *Collector) SetDatasetsActive(n int) {
	if c == nil || c.DatasetsActive == nil {
		return
	}
	c.DatasetsActive.Set(float64(n))
}

// AddSectorsRendered counts sector polygons included in views.
func (c *Collector) AddSectorsRendered(n int) {
	if c == nil || c.SectorsRendered == nil || n <= 0 {
		return
	}
	c.SectorsRendered.Add(float64(n))
}

// AddSectorFailures counts records whose geometry could not be built.
func (c *Collector) AddSectorFailures(n int) {
	if c == nil || c.SectorFailures == nil || n <= 0 {
		return
	}
	c.SectorFailures.Add(float64(n))
}

// AddRowsSkipped counts CSV rows dropped during parsing.
func (c *Collector) AddRowsSkipped(n int) {
	if c == nil || c.RowsSkipped == nil || n <= 0 {
		return
	}
	c.RowsSkipped.Add(float64(n))
}

func registerCounter(reg prometheus.Registerer, counter prometheus.Counter, name string) (prometheus.Counter, error) {
	if err := reg.Register(counter); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Counter); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return counter, nil
}

func registerCounterVec(reg prometheus.Registerer, vec *prometheus.CounterVec, name string) (*prometheus.CounterVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerHistogramVec(reg prometheus.Registerer, vec *prometheus.HistogramVec, name string) (*prometheus.HistogramVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.HistogramVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerGauge(reg prometheus.Registerer, gauge prometheus.Gauge, name string) (prometheus.Gauge, error) {
	if err := reg.Register(gauge); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Gauge); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return gauge, nil
}

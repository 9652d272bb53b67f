package observability

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics implements PipelineHooks and CacheHooks on Prometheus collectors
// held in a private registry. Register it with SetPipelineHooks and
// SetCacheHooks; short-lived processes export it with WriteTextfile.
type Metrics struct {
	registry *prometheus.Registry

	stageDuration *prometheus.HistogramVec
	resources     prometheus.Gauge
	vertices      prometheus.Gauge
	containers    prometheus.Gauge
	cacheOps      *prometheus.CounterVec
	cacheBytes    *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with a new registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	return &Metrics{
		registry: reg,
		stageDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "relgraph_stage_duration_seconds",
				Help:    "Duration of pipeline stages in seconds",
				Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
			},
			[]string{"stage", "result"},
		),
		resources: factory.NewGauge(prometheus.GaugeOpts{
			Name: "relgraph_catalog_resources",
			Help: "Resources in the last loaded catalog",
		}),
		vertices: factory.NewGauge(prometheus.GaugeOpts{
			Name: "relgraph_scheduled_vertices",
			Help: "Vertices in the last computed schedule",
		}),
		containers: factory.NewGauge(prometheus.GaugeOpts{
			Name: "relgraph_spliced_containers",
			Help: "Containers removed by the last splice",
		}),
		cacheOps: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "relgraph_cache_operations_total",
				Help: "Cache lookups and writes by key type",
			},
			[]string{"key_type", "op"},
		),
		cacheBytes: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "relgraph_cache_written_bytes_total",
				Help: "Bytes written to the cache by key type",
			},
			[]string{"key_type"},
		),
	}
}

// Registry returns the registry holding the collectors.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// WriteTextfile writes the current values in the text exposition format,
// suitable for the node exporter's textfile collector.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}

func (m *Metrics) observe(stage string, d time.Duration, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.stageDuration.WithLabelValues(stage, result).Observe(d.Seconds())
}

func (m *Metrics) OnLoadComplete(_ context.Context, _ string, resources int, d time.Duration, err error) {
	m.observe("load", d, err)
	if err == nil {
		m.resources.Set(float64(resources))
	}
}

func (m *Metrics) OnSpliceComplete(_ context.Context, containers, _ int, d time.Duration, err error) {
	m.observe("splice", d, err)
	if err == nil {
		m.containers.Set(float64(containers))
	}
}

func (m *Metrics) OnScheduleComplete(_ context.Context, vertices int, d time.Duration, err error) {
	m.observe("schedule", d, err)
	if err == nil {
		m.vertices.Set(float64(vertices))
	}
}

func (m *Metrics) OnRenderStart(context.Context, []string) {}

func (m *Metrics) OnRenderComplete(_ context.Context, _ []string, d time.Duration, err error) {
	m.observe("render", d, err)
}

func (m *Metrics) OnCacheHit(_ context.Context, keyType string) {
	m.cacheOps.WithLabelValues(keyType, "hit").Inc()
}

func (m *Metrics) OnCacheMiss(_ context.Context, keyType string) {
	m.cacheOps.WithLabelValues(keyType, "miss").Inc()
}

func (m *Metrics) OnCacheSet(_ context.Context, keyType string, size int) {
	m.cacheOps.WithLabelValues(keyType, "set").Inc()
	m.cacheBytes.WithLabelValues(keyType).Add(float64(size))
}

var (
	_ PipelineHooks = (*Metrics)(nil)
	_ CacheHooks    = (*Metrics)(nil)
)

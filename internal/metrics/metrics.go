// Package metrics defines the Prometheus collectors for the dashboard
// service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics bundles the service-level Prometheus collectors.
type Metrics struct {
	UploadsTotal   prometheus.Counter
	UploadFailures prometheus.Counter
	RendersTotal   prometheus.Counter
	EmptyRenders   prometheus.Counter
	RenderSeconds  prometheus.Histogram
	LoadedRows     prometheus.Gauge
}

// New registers the dashboard collectors on the given registerer.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		UploadsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "wodash_uploads_total",
			Help: "Spreadsheet uploads accepted.",
		}),
		UploadFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "wodash_upload_failures_total",
			Help: "Spreadsheet uploads rejected as unloadable.",
		}),
		RendersTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "wodash_report_renders_total",
			Help: "Dashboard report renders.",
		}),
		EmptyRenders: factory.NewCounter(prometheus.CounterOpts{
			Name: "wodash_report_renders_empty_total",
			Help: "Renders whose filters matched no rows.",
		}),
		RenderSeconds: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "wodash_report_render_seconds",
			Help:    "Report render duration.",
			Buckets: prometheus.DefBuckets,
		}),
		LoadedRows: factory.NewGauge(prometheus.GaugeOpts{
			Name: "wodash_loaded_rows",
			Help: "Rows in the most recently uploaded table.",
		}),
	}
}

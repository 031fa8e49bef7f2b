package httpd

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/docdex/docdex"
)

// PrometheusObserver exports store events as Prometheus metrics. Pass it
// to docdex.WithObserver so engine-level timings show up next to the HTTP
// metrics on /metrics.
type PrometheusObserver struct {
	insertDuration  *prometheus.HistogramVec
	searchDuration  *prometheus.HistogramVec
	persistDuration prometheus.Histogram
	persistBytes    prometheus.Histogram
	loadCollections prometheus.Gauge
	loadDocuments   prometheus.Gauge
}

var _ docdex.Observer = (*PrometheusObserver)(nil)

// NewPrometheusObserver builds the observer and registers its collectors.
// A nil registerer uses the default registry.
func NewPrometheusObserver(reg prometheus.Registerer) *PrometheusObserver {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	o := &PrometheusObserver{
		insertDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "docdex",
				Name:      "insert_duration_seconds",
				Help:      "Insert duration in seconds, durable write included",
			},
			[]string{"result"},
		),
		searchDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "docdex",
				Name:      "search_duration_seconds",
				Help:      "Query duration in seconds by mode",
			},
			[]string{"mode", "result"},
		),
		persistDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: "docdex",
				Name:      "persist_duration_seconds",
				Help:      "Envelope write duration in seconds",
			},
		),
		persistBytes: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: "docdex",
				Name:      "persist_bytes",
				Help:      "Encoded envelope size in bytes",
				Buckets:   prometheus.ExponentialBuckets(1024, 4, 10),
			},
		),
		loadCollections: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "docdex",
				Name:      "loaded_collections",
				Help:      "Collections reconstructed at startup",
			},
		),
		loadDocuments: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "docdex",
				Name:      "loaded_documents",
				Help:      "Documents reconstructed at startup",
			},
		),
	}

	reg.MustRegister(
		o.insertDuration,
		o.searchDuration,
		o.persistDuration,
		o.persistBytes,
		o.loadCollections,
		o.loadDocuments,
	)
	return o
}

func (o *PrometheusObserver) OnInsert(duration time.Duration, count int, err error) {
	o.insertDuration.WithLabelValues(resultLabel(err)).Observe(duration.Seconds())
}

func (o *PrometheusObserver) OnSearch(mode string, duration time.Duration, hits int, err error) {
	o.searchDuration.WithLabelValues(mode, resultLabel(err)).Observe(duration.Seconds())
}

func (o *PrometheusObserver) OnPersist(duration time.Duration, bytes int, err error) {
	o.persistDuration.Observe(duration.Seconds())
	if err == nil {
		o.persistBytes.Observe(float64(bytes))
	}
}

func (o *PrometheusObserver) OnLoad(duration time.Duration, collections, documents int) {
	o.loadCollections.Set(float64(collections))
	o.loadDocuments.Set(float64(documents))
}

func resultLabel(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	metricPrefix = "projections_"

	ResultComputed = "computed"
	ResultDeclined = "declined"
	ResultError    = "error"
	ResultSuccess  = "success"
)

var (
	registerOnce sync.Once

	projectionTotal   *prometheus.CounterVec
	projectionLatency *prometheus.HistogramVec
	exportTotal       *prometheus.CounterVec
	contactTotal      *prometheus.CounterVec
)

// Init registers the metrics with reg (the default registerer when nil).
// sessionViews, if set, is sampled for the live session view gauge.
func Init(reg prometheus.Registerer, sessionViews func() int) {
	registerOnce.Do(func() {
		if reg == nil {
			reg = prometheus.DefaultRegisterer
		}
		projectionTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "runs_total",
				Help: "Projection runs by calculator and result",
			},
			[]string{"calculator", "result"},
		)
		projectionLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "run_latency_seconds",
				Help:    "Projection run latency in seconds",
				Buckets: prometheus.ExponentialBuckets(0.00001, 4, 8),
			},
			[]string{"calculator"},
		)
		exportTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "exports_total",
				Help: "Exports by format and result",
			},
			[]string{"format", "result"},
		)
		contactTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "contact_submissions_total",
				Help: "Contact form relays by result",
			},
			[]string{"result"},
		)
		reg.MustRegister(projectionTotal, projectionLatency, exportTotal, contactTotal)

		if sessionViews != nil {
			reg.MustRegister(prometheus.NewGaugeFunc(
				prometheus.GaugeOpts{
					Name: metricPrefix + "session_views",
					Help: "Views held by the session board",
				},
				func() float64 { return float64(sessionViews()) },
			))
		}
	})
}

// ObserveProjection records one engine run. No-op before Init.
func ObserveProjection(calculator, result string, d time.Duration) {
	if projectionTotal == nil {
		return
	}
	projectionTotal.WithLabelValues(calculator, result).Inc()
	projectionLatency.WithLabelValues(calculator).Observe(d.Seconds())
}

func ObserveExport(format, result string) {
	if exportTotal == nil {
		return
	}
	exportTotal.WithLabelValues(format, result).Inc()
}

func ObserveContact(result string) {
	if contactTotal == nil {
		return
	}
	contactTotal.WithLabelValues(result).Inc()
}

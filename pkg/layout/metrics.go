package layout

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics instruments one Layout: a render counter, a render-duration
// histogram, and a gauge tracking the FutureQueue's pending-task count.
//
// A nil *Metrics (what a Layout holds when no WithMetrics option is given)
// is safe to use: every method no-ops.
type Metrics struct {
	renders        prometheus.Counter
	renderFailures prometheus.Counter
	renderDuration prometheus.Histogram
	queuePending   prometheus.Gauge
}

// NewMetrics builds a Metrics registered against reg. If reg is nil, the
// returned Metrics is non-nil and its collectors are registered nowhere, so
// nothing it records is exported — callers never need to nil-check before
// calling its methods.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		renders: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "layout_renders_total",
			Help: "Completed element render tasks.",
		}),
		renderFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "layout_render_failures_total",
			Help: "Element render tasks that failed (HostRenderFailure).",
		}),
		renderDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "layout_render_duration_seconds",
			Help:    "Wall-clock duration of a single element render.",
			Buckets: prometheus.DefBuckets,
		}),
		queuePending: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "layout_futurequeue_pending",
			Help: "Render tasks currently in flight on the FutureQueue.",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.renders, m.renderFailures, m.renderDuration, m.queuePending)
	}
	return m
}

func (m *Metrics) observeRender(d time.Duration, failed bool) {
	if m == nil {
		return
	}
	m.renders.Inc()
	if failed {
		m.renderFailures.Inc()
	}
	m.renderDuration.Observe(d.Seconds())
}

func (m *Metrics) setQueuePending(n int) {
	if m == nil {
		return
	}
	m.queuePending.Set(float64(n))
}

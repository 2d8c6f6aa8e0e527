package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the watcher.
type Metrics struct {
	TicksTotal   *prometheus.CounterVec // labels: loop={fast,alerts,warmcache,daily}
	TickDuration *prometheus.HistogramVec

	FetchErrors   *prometheus.CounterVec   // labels: feed={kp,bz,speed,alerts}
	FetchDuration *prometheus.HistogramVec // labels: feed

	NotificationsSent *prometheus.CounterVec // labels: class={short_fuse,lis,alert_levels,daily,baseline}
	NotifyErrors      *prometheus.CounterVec // labels: channel={email,sms,kafka}

	RiskIndex       prometheus.Gauge
	ShortFuseActive prometheus.Gauge
	WatcherRunning  prometheus.Gauge
}

// NewMetrics creates and registers all watcher metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.TicksTotal,
		m.TickDuration,
		m.FetchErrors,
		m.FetchDuration,
		m.NotificationsSent,
		m.NotifyErrors,
		m.RiskIndex,
		m.ShortFuseActive,
		m.WatcherRunning,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		TicksTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "spaceweather",
			Name:      "ticks_total",
			Help:      "Completed scheduler ticks by loop.",
		}, []string{"loop"}),
		TickDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "spaceweather",
			Name:      "tick_duration_seconds",
			Help:      "Duration of a full tick (fetch, score, dedup, notify) by loop.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"loop"}),
		FetchErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "spaceweather",
			Name:      "fetch_errors_total",
			Help:      "Telemetry fetches that degraded to a default value, by feed.",
		}, []string{"feed"}),
		FetchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "spaceweather",
			Name:      "fetch_duration_seconds",
			Help:      "SWPC feed request duration in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"feed"}),
		NotificationsSent: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "spaceweather",
			Name:      "notifications_sent_total",
			Help:      "Notification decisions that passed dedup, by category class.",
		}, []string{"class"}),
		NotifyErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "spaceweather",
			Name:      "notify_errors_total",
			Help:      "Delivery failures by channel.",
		}, []string{"channel"}),
		RiskIndex: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "spaceweather",
			Name:      "risk_index",
			Help:      "Most recently computed Local Impact Score (0-100).",
		}),
		ShortFuseActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "spaceweather",
			Name:      "short_fuse_active",
			Help:      "1 when the last fast-loop assessment met the short-fuse condition.",
		}),
		WatcherRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "spaceweather",
			Name:      "watcher_running",
			Help:      "1 while the scheduler loops are active, 0 after shutdown.",
		}),
	}
}

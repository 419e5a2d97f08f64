package extension

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the registry's Prometheus metrics. A nil *Metrics is valid
// and records nothing.
type Metrics struct {
	RegistrationsTotal   *prometheus.CounterVec
	UnregistrationsTotal prometheus.Counter
	PluginsRegistered    prometheus.Gauge
	NotifyDuration       prometheus.Histogram
	Subscribers          prometheus.Gauge
}

// NewMetrics creates and registers the registry metrics.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		RegistrationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hostpanel_plugin_registrations_total",
				Help: "Plugin registration attempts by result",
			},
			[]string{"result"},
		),
		UnregistrationsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "hostpanel_plugin_unregistrations_total",
				Help: "Successful plugin unregistrations",
			},
		),
		PluginsRegistered: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "hostpanel_plugins_registered",
				Help: "Currently registered plugins",
			},
		),
		NotifyDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "hostpanel_plugin_notify_duration_seconds",
				Help:    "Duration of synchronous subscriber notification fan-out",
				Buckets: prometheus.DefBuckets,
			},
		),
		Subscribers: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "hostpanel_plugin_subscribers",
				Help: "Active registry change subscribers",
			},
		),
	}

	if reg != nil {
		reg.MustRegister(
			m.RegistrationsTotal,
			m.UnregistrationsTotal,
			m.PluginsRegistered,
			m.NotifyDuration,
			m.Subscribers,
		)
	}
	return m
}

func (m *Metrics) recordRegistration(result string) {
	if m == nil {
		return
	}
	m.RegistrationsTotal.WithLabelValues(result).Inc()
}

func (m *Metrics) recordUnregistration() {
	if m == nil {
		return
	}
	m.UnregistrationsTotal.Inc()
}

func (m *Metrics) setRegistered(n int) {
	if m == nil {
		return
	}
	m.PluginsRegistered.Set(float64(n))
}

func (m *Metrics) observeNotify(seconds float64) {
	if m == nil {
		return
	}
	m.NotifyDuration.Observe(seconds)
}

func (m *Metrics) setSubscribers(n int) {
	if m == nil {
		return
	}
	m.Subscribers.Set(float64(n))
}

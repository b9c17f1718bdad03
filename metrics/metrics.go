package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// singleton instance
	instance *Metrics
	once     sync.Once
)

// Metrics holds Prometheus metrics for event sources and their listeners
type Metrics struct {
	Registrations   prometheus.Counter
	Unregistrations prometheus.Counter
	ListenersActive prometheus.Gauge
	Fires           *prometheus.CounterVec
	ListenerCalls   *prometheus.CounterVec
}

// Default returns the metrics singleton registered with the default Prometheus registry
func Default() *Metrics {
	once.Do(func() {
		instance = New(prometheus.DefaultRegisterer)
	})
	return instance
}

// New creates metrics registered with reg. A nil reg creates unregistered metrics.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	m := &Metrics{}

	m.Registrations = f.NewCounter(
		prometheus.CounterOpts{
			Name: "interaction_registrations_total",
			Help: "Total number of listener registrations",
		},
	)

	m.Unregistrations = f.NewCounter(
		prometheus.CounterOpts{
			Name: "interaction_unregistrations_total",
			Help: "Total number of listener registrations removed",
		},
	)

	m.ListenersActive = f.NewGauge(
		prometheus.GaugeOpts{
			Name: "interaction_listeners_active",
			Help: "Number of currently registered listeners",
		},
	)

	m.Fires = f.NewCounterVec(
		prometheus.CounterOpts{
			Name: "interaction_fires_total",
			Help: "Total number of event firings",
		},
		[]string{"event"},
	)

	m.ListenerCalls = f.NewCounterVec(
		prometheus.CounterOpts{
			Name: "interaction_listener_calls_total",
			Help: "Total number of listener invocations",
		},
		[]string{"event"},
	)

	return m
}

// Registered records a new listener. Safe on a nil receiver.
func (m *Metrics) Registered() {
	if m == nil {
		return
	}
	m.Registrations.Inc()
	m.ListenersActive.Inc()
}

// Unregistered records n removed listeners. Safe on a nil receiver.
func (m *Metrics) Unregistered(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.Unregistrations.Add(float64(n))
	m.ListenersActive.Sub(float64(n))
}

// Fired records one firing of event that reached the given number of listeners.
// Safe on a nil receiver.
func (m *Metrics) Fired(event string, listeners int) {
	if m == nil {
		return
	}
	m.Fires.WithLabelValues(event).Inc()
	m.ListenerCalls.WithLabelValues(event).Add(float64(listeners))
}

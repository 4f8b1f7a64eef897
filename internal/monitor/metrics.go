package monitor

import "sync"

// Metric names used across the pipeline.
const (
	CounterAdmissions       = "admissions_total"
	CounterIdempotentReplay = "idempotent_replays_total"
	CounterEventsDispatched = "outbox_events_dispatched_total"
	CounterEventsFailed     = "outbox_events_failed_total"

	GaugeReviewQueueSize     = "review_queue_size"
	GaugeOutboxBacklog       = "outbox_backlog"
	GaugeOutboxOldestLagSec  = "outbox_oldest_lag_seconds"
	GaugeProviderLatencyMsec = "provider_confirm_latency_ms"
)

// Metrics is a process-local counter and gauge registry, exposed as a JSON
// snapshot on the metrics endpoint.
type Metrics struct {
	mu       sync.Mutex
	counters map[string]int64
	gauges   map[string]float64
}

// New creates an empty Metrics registry.
func New() *Metrics {
	return &Metrics{
		counters: make(map[string]int64),
		gauges:   make(map[string]float64),
	}
}

// Inc increments a counter by one.
func (m *Metrics) Inc(name string) {
	m.Add(name, 1)
}

// Add increments a counter by delta.
func (m *Metrics) Add(name string, delta int64) {
	m.mu.Lock()
	m.counters[name] += delta
	m.mu.Unlock()
}

// SetGauge records the latest observed value for a gauge.
func (m *Metrics) SetGauge(name string, value float64) {
	m.mu.Lock()
	m.gauges[name] = value
	m.mu.Unlock()
}

// Counter returns the current value of a counter.
func (m *Metrics) Counter(name string) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.counters[name]
}

// Gauge returns the current value of a gauge.
func (m *Metrics) Gauge(name string) float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.gauges[name]
}

// Snapshot returns a copy of all metrics for serialization.
func (m *Metrics) Snapshot() map[string]any {
	m.mu.Lock()
	defer m.mu.Unlock()

	counters := make(map[string]int64, len(m.counters))
	for k, v := range m.counters {
		counters[k] = v
	}
	gauges := make(map[string]float64, len(m.gauges))
	for k, v := range m.gauges {
		gauges[k] = v
	}
	return map[string]any{
		"counters": counters,
		"gauges":   gauges,
	}
}

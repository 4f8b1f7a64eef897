package monitor

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Counters(t *testing.T) {
	m := New()

	m.Inc(CounterAdmissions)
	m.Inc(CounterAdmissions)
	m.Add(CounterEventsDispatched, 5)

	assert.Equal(t, int64(2), m.Counter(CounterAdmissions))
	assert.Equal(t, int64(5), m.Counter(CounterEventsDispatched))
	assert.Equal(t, int64(0), m.Counter(CounterEventsFailed))
}

func TestMetrics_GaugesKeepLatestValue(t *testing.T) {
	m := New()

	m.SetGauge(GaugeOutboxBacklog, 12)
	m.SetGauge(GaugeOutboxBacklog, 3)

	assert.Equal(t, float64(3), m.Gauge(GaugeOutboxBacklog))
}

func TestMetrics_SnapshotIsACopy(t *testing.T) {
	m := New()
	m.Inc(CounterAdmissions)
	m.SetGauge(GaugeReviewQueueSize, 7)

	snap := m.Snapshot()
	counters, ok := snap["counters"].(map[string]int64)
	require.True(t, ok)
	gauges, ok := snap["gauges"].(map[string]float64)
	require.True(t, ok)

	assert.Equal(t, int64(1), counters[CounterAdmissions])
	assert.Equal(t, float64(7), gauges[GaugeReviewQueueSize])

	// Mutating the snapshot must not leak back into the registry.
	counters[CounterAdmissions] = 99
	assert.Equal(t, int64(1), m.Counter(CounterAdmissions))
}

func TestMetrics_ConcurrentIncrements(t *testing.T) {
	m := New()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				m.Inc(CounterAdmissions)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(1000), m.Counter(CounterAdmissions))
}

package resilience

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCircuitBreaker_TripsAtThreshold(t *testing.T) {
	b := NewCircuitBreaker(3, time.Minute)

	require.NoError(t, b.AllowCall())
	b.OnFailure()
	b.OnFailure()
	assert.Equal(t, CircuitClosed, b.State())
	require.NoError(t, b.AllowCall())

	b.OnFailure()
	assert.Equal(t, CircuitOpen, b.State())
	assert.ErrorIs(t, b.AllowCall(), ErrCircuitOpen)
}

func TestCircuitBreaker_SuccessResetsFailureCount(t *testing.T) {
	b := NewCircuitBreaker(3, time.Minute)

	b.OnFailure()
	b.OnFailure()
	b.OnSuccess()
	b.OnFailure()
	b.OnFailure()
	assert.Equal(t, CircuitClosed, b.State())
}

func TestCircuitBreaker_HalfOpensAfterRecoveryTimeout(t *testing.T) {
	b := NewCircuitBreaker(1, 10*time.Second)
	now := time.Now()
	b.now = func() time.Time { return now }

	b.OnFailure()
	assert.ErrorIs(t, b.AllowCall(), ErrCircuitOpen)

	now = now.Add(11 * time.Second)
	require.NoError(t, b.AllowCall())
	assert.Equal(t, CircuitHalfOpen, b.State())
}

func TestCircuitBreaker_HalfOpenFailureReopens(t *testing.T) {
	b := NewCircuitBreaker(1, 10*time.Second)
	now := time.Now()
	b.now = func() time.Time { return now }

	b.OnFailure()
	now = now.Add(11 * time.Second)
	require.NoError(t, b.AllowCall())

	// The probe fails: straight back to open for another full window.
	b.OnFailure()
	assert.ErrorIs(t, b.AllowCall(), ErrCircuitOpen)

	now = now.Add(5 * time.Second)
	assert.ErrorIs(t, b.AllowCall(), ErrCircuitOpen)
}

func TestCircuitBreaker_HalfOpenSuccessCloses(t *testing.T) {
	b := NewCircuitBreaker(1, 10*time.Second)
	now := time.Now()
	b.now = func() time.Time { return now }

	b.OnFailure()
	now = now.Add(11 * time.Second)
	require.NoError(t, b.AllowCall())

	b.OnSuccess()
	assert.Equal(t, CircuitClosed, b.State())
	require.NoError(t, b.AllowCall())
}

package resilience

import (
	"errors"
	"sync"
	"time"
)

// ErrCircuitOpen is returned by AllowCall while the breaker is open and the
// recovery timeout has not elapsed.
var ErrCircuitOpen = errors.New("circuit breaker is open")

// CircuitState is the breaker's current position.
type CircuitState string

const (
	CircuitClosed   CircuitState = "closed"
	CircuitOpen     CircuitState = "open"
	CircuitHalfOpen CircuitState = "half_open"
)

// CircuitBreaker is a counter-based breaker. In CLOSED, failures accumulate
// until the threshold trips it OPEN. In OPEN, calls are rejected until the
// recovery timeout elapses, after which one probe call is admitted
// (HALF_OPEN). A half-open failure re-opens; a success resets to CLOSED.
type CircuitBreaker struct {
	mu               sync.Mutex
	failureThreshold int
	recoveryTimeout  time.Duration
	state            CircuitState
	failures         int
	openedAt         time.Time
	now              func() time.Time
}

// NewCircuitBreaker creates a closed breaker.
func NewCircuitBreaker(failureThreshold int, recoveryTimeout time.Duration) *CircuitBreaker {
	return &CircuitBreaker{
		failureThreshold: failureThreshold,
		recoveryTimeout:  recoveryTimeout,
		state:            CircuitClosed,
		now:              time.Now,
	}
}

// State returns the breaker state, promoting OPEN to HALF_OPEN once the
// recovery timeout has elapsed.
func (b *CircuitBreaker) State() CircuitState {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.state == CircuitOpen && b.canHalfOpen() {
		b.state = CircuitHalfOpen
	}
	return b.state
}

// AllowCall gates a call attempt. It returns ErrCircuitOpen while the
// breaker is open within its recovery window.
func (b *CircuitBreaker) AllowCall() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.state == CircuitOpen {
		if !b.canHalfOpen() {
			return ErrCircuitOpen
		}
		b.state = CircuitHalfOpen
	}
	return nil
}

// OnSuccess resets the breaker to CLOSED with a zero failure counter.
func (b *CircuitBreaker) OnSuccess() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.state = CircuitClosed
	b.failures = 0
	b.openedAt = time.Time{}
}

// OnFailure records a failed call. A half-open failure trips immediately.
func (b *CircuitBreaker) OnFailure() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.state == CircuitHalfOpen {
		b.trip()
		return
	}
	b.failures++
	if b.failures >= b.failureThreshold {
		b.trip()
	}
}

func (b *CircuitBreaker) trip() {
	b.state = CircuitOpen
	b.openedAt = b.now()
}

func (b *CircuitBreaker) canHalfOpen() bool {
	if b.openedAt.IsZero() {
		return false
	}
	return !b.now().Before(b.openedAt.Add(b.recoveryTimeout))
}

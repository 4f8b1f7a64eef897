package resilience

import (
	"context"
	"sync"
)

// Bulkhead bounds concurrency per key with one semaphore per key, limiting
// blast radius when a single downstream is slow.
type Bulkhead struct {
	mu          sync.Mutex
	limitPerKey int
	slots       map[string]chan struct{}
}

// NewBulkhead creates a bulkhead with the given per-key concurrency limit.
func NewBulkhead(limitPerKey int) *Bulkhead {
	if limitPerKey < 1 {
		limitPerKey = 1
	}
	return &Bulkhead{
		limitPerKey: limitPerKey,
		slots:       make(map[string]chan struct{}),
	}
}

// Acquire blocks until a slot for key is free or ctx is done. Callers must
// Release on every exit path after a successful Acquire.
func (b *Bulkhead) Acquire(ctx context.Context, key string) error {
	sem := b.semaphore(key)
	select {
	case sem <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Release frees a slot previously acquired for key.
func (b *Bulkhead) Release(key string) {
	sem := b.semaphore(key)
	select {
	case <-sem:
	default:
	}
}

// InFlight returns the number of held slots for key.
func (b *Bulkhead) InFlight(key string) int {
	return len(b.semaphore(key))
}

func (b *Bulkhead) semaphore(key string) chan struct{} {
	b.mu.Lock()
	defer b.mu.Unlock()
	sem, ok := b.slots[key]
	if !ok {
		sem = make(chan struct{}, b.limitPerKey)
		b.slots[key] = sem
	}
	return sem
}

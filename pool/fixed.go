package pool

import (
	"context"
	"sync"
)

// fixed caps the number of outstanding slots at a constant capacity.
// Slots are created lazily via newFn until the cap is reached; afterwards
// Acquire blocks until a slot is released.
type fixed struct {
	mu        sync.Mutex
	made      uint
	capacity  uint
	available chan interface{}
	newFn     func() interface{}
}

// NewFixed creates a Pool bounded at capacity. capacity must be > 0; a
// zero-capacity fixed pool would block every Acquire forever.
func NewFixed(capacity uint, newFn func() interface{}) Pool {
	return &fixed{
		capacity:  capacity,
		available: make(chan interface{}, capacity),
		newFn:     newFn,
	}
}

func (p *fixed) Acquire(ctx context.Context) (interface{}, bool) {
	// Reuse a released slot when one is free.
	select {
	case el := <-p.available:
		return el, true
	default:
	}

	// Create lazily until the cap is reached.
	p.mu.Lock()
	if p.made < p.capacity {
		p.made++
		p.mu.Unlock()
		return p.newFn(), true
	}
	p.mu.Unlock()

	// Saturated: wait for a release or cancellation.
	select {
	case el := <-p.available:
		return el, true
	case <-ctx.Done():
		return nil, false
	}
}

func (p *fixed) Release(el interface{}) {
	p.available <- el
}

// Package pool provides execution-slot pools that bound (fixed) or elastically
// reuse (dynamic) the per-operation runner objects of a sequencer submission.
package pool

import "context"

// Pool hands out execution slots for concurrently running operations.
type Pool interface {
	// Acquire obtains a slot, blocking until one is free or ctx is done.
	// ok is false when ctx was done first; the returned slot is nil then.
	Acquire(ctx context.Context) (slot interface{}, ok bool)

	// Release returns a slot previously obtained from Acquire.
	Release(slot interface{})
}

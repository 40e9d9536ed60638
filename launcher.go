package sequencer

import (
	"context"
	"sync"

	"github.com/ygrebnov/sequencer/pool"
)

// launcher starts every submitted operation in its own goroutine, drawing an
// execution slot from the pool first. With a fixed pool, Acquire blocks when
// all slots are busy, which is what bounds concurrency. The launcher stops
// early when ctx is canceled; operations not yet launched never run.
//
// In-flight operations are tracked with a WaitGroup owned by the Sequencer so
// shutdown can wait for them.
type launcher[R any] struct {
	items    []pendingItem[R]
	inflight *sync.WaitGroup
	pool     pool.Pool
}

func newLauncher[R any](items []pendingItem[R], inflight *sync.WaitGroup, p pool.Pool) *launcher[R] {
	return &launcher[R]{items: items, inflight: inflight, pool: p}
}

// run launches operations until all are started or ctx is canceled.
func (l *launcher[R]) run(ctx context.Context) {
	for _, it := range l.items {
		slot, ok := l.pool.Acquire(ctx)
		if !ok {
			return
		}
		l.inflight.Add(1)
		go func(rr *runner[R], it pendingItem[R]) {
			defer l.inflight.Done()
			defer l.pool.Release(rr)
			rr.execute(ctx, it)
		}(slot.(*runner[R]), it)
	}
}

package sequencer

import "context"

// runner executes one operation and reports its arrival. Runner objects are
// handed out by the execution-slot pool; with a fixed pool their count bounds
// how many operations run at once.
type runner[R any] struct {
	arrivals chan<- Result[R]
}

func newRunner[R any](arrivals chan<- Result[R]) *runner[R] {
	return &runner[R]{arrivals: arrivals}
}

// execute runs the operation and records the arrival. The arrivals channel is
// sized to the whole submission, so the send never blocks.
func (r *runner[R]) execute(ctx context.Context, it pendingItem[R]) {
	v, err := it.op.run(ctx)
	r.arrivals <- Result[R]{Seq: it.seq, Value: v, Err: err}
}

package sequencer

import (
	"context"
	"fmt"
)

// Operation is the canonical unit of asynchronous work. It takes a context
// and returns a result of type R and an error. Operations are independent of
// one another and may complete after an arbitrary delay; the Sequencer makes
// no assumption about completion order.
//
// An operation should honor ctx cancellation promptly; an operation that
// ignores ctx keeps its slot outstanding until it returns.
type Operation[R any] func(context.Context) (R, error)

// OperationFunc adapts func(ctx) (R, error) to Operation[R].
func OperationFunc[R any](fn func(context.Context) (R, error)) Operation[R] {
	return Operation[R](fn)
}

// OperationValue adapts func(ctx) R to Operation[R].
func OperationValue[R any](fn func(context.Context) R) Operation[R] {
	return func(ctx context.Context) (R, error) { return fn(ctx), nil }
}

// run executes the operation with panic containment. A panic completes the
// slot with ErrOperationPanicked instead of unwinding into the launcher.
func (op Operation[R]) run(ctx context.Context) (result R, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("%w: %v", ErrOperationPanicked, p)
		}
	}()
	return op(ctx)
}

// pendingItem pairs an operation with the sequence number assigned at
// submission time. Sequence numbers are 1-based and gap-free.
type pendingItem[R any] struct {
	seq uint64
	op  Operation[R]
}

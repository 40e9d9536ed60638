package sequencer

import "fmt"

// Result is the outcome of one operation, tagged with the sequence number its
// slot was assigned at submission. A failed operation still occupies its slot:
// Err carries the failure and Value holds the zero value of R. Results are
// delivered in strictly increasing Seq order.
type Result[R any] struct {
	Seq   uint64
	Value R
	Err   error
}

// Failed reports whether the slot completed with an error (including
// ErrStalled markers emitted by the stall policy).
func (r Result[R]) Failed() bool { return r.Err != nil }

// Stats is a point-in-time snapshot of a submission's progress.
// Buffered == Completed - Delivered holds after every flush step.
type Stats struct {
	Total     int
	Completed int
	Delivered int
	Buffered  int
}

// Done reports whether every slot has been delivered.
func (st Stats) Done() bool { return st.Delivered >= st.Total }

// String renders the live status line used while operations are in flight,
// e.g. "(7/12 tasks completed, 3 buffered)".
func (st Stats) String() string {
	return fmt.Sprintf("(%d/%d tasks completed, %d buffered)", st.Completed, st.Total, st.Buffered)
}

// Progress reports the outcome of a single PollOrWait call. Flushed is the
// number of results delivered during that call; Stats reflects the state
// right after its flush step.
type Progress struct {
	Flushed int
	Stats
}

// Package sequencer delivers the results of concurrently executing operations
// strictly in submission order, regardless of the order in which they complete.
//
// A Sequencer is created over a fixed, ordered set of operations. Each
// operation is assigned a sequence number 1..N at submission. Operations run
// concurrently and may finish in any order; results that arrive ahead of the
// cursor are buffered, and each result is released to the bounded output
// window the instant its contiguous prefix is complete. The window keeps the
// most recently delivered min(C, delivered) entries, evicting the oldest
// entry when capacity C is exceeded.
//
// The caller drives delivery with PollOrWait, which waits for at least one
// outstanding operation to complete (up to a timeout), records everything
// that completed during the wait, and runs the flush step. The timeout is an
// observability knob only: it lets a caller refreshing a display regain
// control periodically and never affects correctness or ordering.
//
// Defaults
// Unless overridden, the following defaults apply to a newly created instance:
//   - WindowCapacity: 12
//   - MaxConcurrent: 0 (unbounded, dynamic slot pool)
//   - PollInterval: 100ms (used by Wait)
//   - StallDeadline: 0 (disabled; an operation that never completes blocks
//     the cursor indefinitely)
//   - Metrics: no-op provider
//
// Failure handling
// An operation's error does not jump the queue and is never dropped: it is
// carried in the Result at the operation's own sequence slot. A panicking
// operation completes its slot with ErrOperationPanicked.
//
// Concurrency slots
//   - Dynamic pool (default): execution slots grow as needed via sync.Pool.
//   - Fixed pool: caps the number of concurrently executing operations.
package sequencer

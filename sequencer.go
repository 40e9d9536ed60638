package sequencer

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/ygrebnov/errorc"

	"github.com/ygrebnov/sequencer/metrics"
	"github.com/ygrebnov/sequencer/pool"
)

// Sequencer runs a fixed, ordered set of operations concurrently and exposes
// their results strictly in submission order through a bounded output window.
// Methods are safe for concurrent use. Construct via New.
type Sequencer[R any] struct {
	// noCopy prevents accidental copying of the controller.
	nc noCopy

	config *config

	once      sync.Once
	closeOnce sync.Once

	// internal lifecycle control
	ctx    context.Context
	cancel context.CancelFunc

	items []pendingItem[R]
	total int

	// execution-slot pool and completion stream
	pool     pool.Pool
	arrivals chan Result[R]

	inflight   sync.WaitGroup
	launcherWG sync.WaitGroup

	// pollMu serializes PollOrWait calls so no two record+flush sequences
	// interleave.
	pollMu sync.Mutex

	// mu guards everything below.
	mu        sync.Mutex
	pending   map[uint64]Result[R] // arrived but not yet deliverable
	next      uint64               // next expected sequence number, starts at 1
	completed int
	delivered int
	win       *window[R]
	closed    bool
	startedAt time.Time

	observer func(Result[R])

	mArrivals   metrics.Counter
	mDeliveries metrics.Counter
	mBuffered   metrics.UpDownCounter
	mPollWait   metrics.Histogram
}

// noCopy is a vet-recognized marker to discourage copying types with this
// field embedded. It works with the "-copylocks" analyzer via the presence of
// Lock/Unlock methods.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// New creates a Sequencer over ops, assigning sequence numbers 1..len(ops) in
// the order given. An empty ops slice is rejected with ErrEmptySubmission.
// Unless WithStartImmediately is set, the operations do not run until Start.
func New[R any](ctx context.Context, ops []Operation[R], opts ...Option) (*Sequencer[R], error) {
	if len(ops) == 0 {
		return nil, ErrEmptySubmission
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}
	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}

	s := &Sequencer[R]{}
	if err := s.initialize(ctx, &cfg, ops); err != nil {
		return nil, err
	}
	return s, nil
}

// initialize sets up the controller state from the validated configuration.
func (s *Sequencer[R]) initialize(ctx context.Context, cfg *config, ops []Operation[R]) error {
	items := make([]pendingItem[R], len(ops))
	for i, op := range ops {
		items[i] = pendingItem[R]{seq: uint64(i + 1), op: op}
	}

	if cfg.Observer != nil {
		fn, ok := cfg.Observer.(func(Result[R]))
		if !ok {
			return errorc.With(ErrInvalidConfig,
				errorc.String("", "WithObserver callback does not match the result type"))
		}
		s.observer = fn
	}

	prov := cfg.Metrics
	if prov == nil {
		prov = metrics.NewNoop()
	}

	s.config = cfg
	s.items = items
	s.total = len(ops)
	// Sized to the submission so runner sends never block.
	s.arrivals = make(chan Result[R], len(ops))
	s.pending = make(map[uint64]Result[R])
	s.next = 1
	s.win = newWindow[R](cfg.WindowCapacity)

	s.mArrivals = prov.Counter("sequencer.arrivals",
		metrics.WithDescription("operations completed"), metrics.WithUnit("1"))
	s.mDeliveries = prov.Counter("sequencer.deliveries",
		metrics.WithDescription("results delivered in order"), metrics.WithUnit("1"))
	s.mBuffered = prov.UpDownCounter("sequencer.buffered",
		metrics.WithDescription("results arrived but held for an earlier slot"), metrics.WithUnit("1"))
	s.mPollWait = prov.Histogram("sequencer.poll_wait_seconds",
		metrics.WithDescription("time spent waiting for a completion per poll"), metrics.WithUnit("seconds"))

	if cfg.StartImmediately {
		s.Start(ctx)
	}
	return nil
}

// Start launches the submitted operations. It is idempotent; only the first
// call has effect. The provided ctx bounds the whole submission: canceling it
// abandons operations that honor cancellation.
func (s *Sequencer[R]) Start(ctx context.Context) {
	s.once.Do(func() {
		s.mu.Lock()
		s.ctx, s.cancel = context.WithCancel(ctx)
		s.startedAt = time.Now()
		s.mu.Unlock()

		newRunnerFn := func() interface{} { return newRunner[R](s.arrivals) }
		if s.config.MaxConcurrent > 0 {
			s.pool = pool.NewFixed(s.config.MaxConcurrent, newRunnerFn)
		} else {
			s.pool = pool.NewDynamic(newRunnerFn)
		}

		l := newLauncher[R](s.items, &s.inflight, s.pool)
		s.launcherWG.Add(1)
		go func() {
			defer s.launcherWG.Done()
			l.run(s.ctx)
		}()
	})
}

// PollOrWait waits up to timeout for at least one outstanding operation to
// complete, records every completion that arrived during the wait, and runs
// the flush step: results are moved from the arrival buffer into the window
// while the next expected sequence number is present, rotating the window as
// needed. It returns a Progress describing what this call delivered and the
// totals right after its flush.
//
// Timeout expiry with nothing completed is normal, not an error; the flush
// step still runs (reverting the window's newest mark) and the call returns
// with Flushed == 0. PollOrWait returns ErrInvalidState after Close and
// ctx.Err() when the caller's ctx ends the wait. A duplicate completion for
// an already-recorded sequence number is a broken contract and is surfaced as
// ErrDuplicateArrival.
func (s *Sequencer[R]) PollOrWait(ctx context.Context, timeout time.Duration) (Progress, error) {
	s.pollMu.Lock()
	defer s.pollMu.Unlock()

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return Progress{}, ErrInvalidState
	}
	if s.delivered == s.total {
		p := Progress{Stats: s.statsLocked()}
		s.mu.Unlock()
		return p, nil
	}
	var internalDone <-chan struct{}
	if s.ctx != nil {
		internalDone = s.ctx.Done()
	}
	s.mu.Unlock()

	batch := s.await(ctx, timeout, internalDone)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return Progress{}, ErrInvalidState
	}

	// Record and flush before honoring ctx expiry so drained completions are
	// never lost.
	for _, r := range batch {
		if err := s.recordLocked(r); err != nil {
			return Progress{Stats: s.statsLocked()}, err
		}
	}

	n := s.flushLocked()
	if s.stallExpiredLocked() {
		n += s.forceFlushLocked()
		// Abandon whatever is still running; their slots are already settled.
		s.cancel()
	}
	if err := ctx.Err(); err != nil {
		return Progress{Flushed: n, Stats: s.statsLocked()}, err
	}
	return Progress{Flushed: n, Stats: s.statsLocked()}, nil
}

// await blocks until at least one completion arrives, timeout elapses, ctx is
// done, or the internal context is canceled, then drains everything that is
// immediately available.
func (s *Sequencer[R]) await(ctx context.Context, timeout time.Duration, internalDone <-chan struct{}) []Result[R] {
	started := time.Now()
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	var batch []Result[R]
	select {
	case r := <-s.arrivals:
		batch = append(batch, r)
	case <-timer.C:
	case <-ctx.Done():
	case <-internalDone:
	}
	s.mPollWait.Record(time.Since(started).Seconds())

	for {
		select {
		case r := <-s.arrivals:
			batch = append(batch, r)
		default:
			return batch
		}
	}
}

// recordLocked moves one completion into the arrival buffer. A sequence
// number below the cursor or already buffered means the same slot completed
// twice; that breaks the caller contract and is reported loudly.
func (s *Sequencer[R]) recordLocked(r Result[R]) error {
	if r.Seq < s.next {
		return errorc.With(ErrDuplicateArrival,
			errorc.String("sequence_number", strconv.FormatUint(r.Seq, 10)))
	}
	if _, dup := s.pending[r.Seq]; dup {
		return errorc.With(ErrDuplicateArrival,
			errorc.String("sequence_number", strconv.FormatUint(r.Seq, 10)))
	}
	s.pending[r.Seq] = r
	s.completed++
	s.mArrivals.Add(1)
	s.mBuffered.Add(1)
	return nil
}

// flushLocked drains the contiguous prefix from the arrival buffer into the
// window, advancing the cursor by exactly one per delivery. Returns the number
// of results delivered.
func (s *Sequencer[R]) flushLocked() int {
	s.win.beginFlush()
	n := 0
	for {
		r, ok := s.pending[s.next]
		if !ok {
			break
		}
		delete(s.pending, s.next)
		s.mBuffered.Add(-1)
		s.deliverLocked(r)
		n++
	}
	return n
}

// deliverLocked appends one result to the window and advances the cursor.
func (s *Sequencer[R]) deliverLocked(r Result[R]) {
	s.win.append(r)
	s.next++
	s.delivered++
	s.mDeliveries.Add(1)
	if s.observer != nil {
		s.observer(r)
	}
}

func (s *Sequencer[R]) statsLocked() Stats {
	return Stats{
		Total:     s.total,
		Completed: s.completed,
		Delivered: s.delivered,
		Buffered:  len(s.pending),
	}
}

// Stats returns a snapshot of the submission's progress.
func (s *Sequencer[R]) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.statsLocked()
}

// Window returns a copy of the output window in delivery order. The entry
// appended last by the most recent flush step carries Newest == true.
func (s *Sequencer[R]) Window() []Entry[R] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.win.snapshot()
}

// IsComplete reports whether every submitted operation has been delivered.
func (s *Sequencer[R]) IsComplete() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.delivered == s.total
}

// Wait drives PollOrWait at the configured poll interval until every slot is
// delivered or ctx is done. It returns nil on completion.
func (s *Sequencer[R]) Wait(ctx context.Context) error {
	for {
		p, err := s.PollOrWait(ctx, s.config.PollInterval)
		if err != nil {
			return err
		}
		if p.Done() {
			return nil
		}
	}
}

// Close abandons outstanding operations and freezes the Sequencer's state for
// inspection: no flush runs after Close, and subsequent PollOrWait calls
// return ErrInvalidState. Stats and Window remain readable. Close is
// idempotent and safe for concurrent use; it blocks until in-flight
// operations have returned.
func (s *Sequencer[R]) Close() {
	s.closeOnce.Do(func() {
		s.mu.Lock()
		cancel := s.cancel
		s.mu.Unlock()

		lc := newLifecycle(
			func() {
				s.mu.Lock()
				s.closed = true
				s.mu.Unlock()
			},
			cancel,
			&s.launcherWG,
			&s.inflight,
		)
		lc.shutdown()
	})
}

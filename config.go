package sequencer

import (
	"time"

	"github.com/ygrebnov/errorc"

	"github.com/ygrebnov/sequencer/metrics"
)

// config holds Sequencer configuration.
type config struct {
	// WindowCapacity bounds the output window. When a delivery would exceed
	// it, the oldest entry is evicted.
	// Default: 12.
	WindowCapacity uint

	// MaxConcurrent caps the number of simultaneously running operations.
	// Zero (default) means unbounded.
	MaxConcurrent uint

	// PollInterval is the wait timeout Wait passes to PollOrWait between
	// progress snapshots.
	// Default: 100ms.
	PollInterval time.Duration

	// StallDeadline, when positive, bounds how long the cursor may stay
	// blocked on an operation that has not completed. Once exceeded, the next
	// flush force-delivers every remaining slot in ascending order, emitting
	// ErrStalled markers for slots that never arrived, and abandons
	// outstanding work.
	// Default: 0 (disabled).
	StallDeadline time.Duration

	// StartImmediately launches the operations during New instead of waiting
	// for an explicit Start call.
	// Default: false.
	StartImmediately bool

	// Metrics provides instruments for arrival/delivery counters. Nil means
	// the no-op provider.
	Metrics metrics.Provider

	// Observer holds an optional per-delivery callback (stored as any due to
	// non-generic config; set via WithObserver).
	Observer any
}

// defaultConfig centralizes default values for config.
func defaultConfig() config {
	return config{
		WindowCapacity:   12,
		MaxConcurrent:    0, // dynamic slot pool
		PollInterval:     100 * time.Millisecond,
		StallDeadline:    0,
		StartImmediately: false,
		Metrics:          nil,
		Observer:         nil,
	}
}

// validateConfig performs lightweight invariants checks.
// Per-option validation happens in the options themselves; this is reserved
// for cross-field checks.
func validateConfig(_ *config) error {
	return nil
}

// Option configures a Sequencer. Use New(ctx, ops, opts...) to construct one.
// Options return an error on invalid input instead of panicking.
type Option func(*config) error

// WithWindowCapacity sets the output window capacity (must be > 0).
func WithWindowCapacity(c uint) Option {
	return func(cfg *config) error {
		if c == 0 {
			return errorc.With(ErrInvalidConfig, errorc.String("", "WithWindowCapacity requires c > 0"))
		}
		cfg.WindowCapacity = c
		return nil
	}
}

// WithMaxConcurrent caps the number of simultaneously running operations
// using a fixed execution-slot pool (must be > 0).
func WithMaxConcurrent(n uint) Option {
	return func(cfg *config) error {
		if n == 0 {
			return errorc.With(ErrInvalidConfig, errorc.String("", "WithMaxConcurrent requires n > 0"))
		}
		cfg.MaxConcurrent = n
		return nil
	}
}

// WithPollInterval sets the wait timeout Wait uses between progress
// snapshots (must be > 0). It affects snapshot granularity only, never
// ordering or completeness.
func WithPollInterval(d time.Duration) Option {
	return func(cfg *config) error {
		if d <= 0 {
			return errorc.With(ErrInvalidConfig, errorc.String("", "WithPollInterval requires d > 0"))
		}
		cfg.PollInterval = d
		return nil
	}
}

// WithStallDeadline enables the stall policy: once d has elapsed since Start
// with slots still undelivered, the next flush force-delivers the remainder
// in ascending order, marking never-arrived slots with ErrStalled.
func WithStallDeadline(d time.Duration) Option {
	return func(cfg *config) error {
		if d <= 0 {
			return errorc.With(ErrInvalidConfig, errorc.String("", "WithStallDeadline requires d > 0"))
		}
		cfg.StallDeadline = d
		return nil
	}
}

// WithStartImmediately launches the operations during New.
func WithStartImmediately() Option {
	return func(cfg *config) error { cfg.StartImmediately = true; return nil }
}

// WithMetrics sets the metrics provider used for arrival/delivery
// instrumentation.
func WithMetrics(p metrics.Provider) Option {
	return func(cfg *config) error {
		if p == nil {
			return errorc.With(ErrInvalidConfig, errorc.String("", "WithMetrics requires a non-nil provider"))
		}
		cfg.Metrics = p
		return nil
	}
}

// WithObserver registers a callback invoked synchronously during the flush
// step, once per delivered result, in delivery order. The callback runs while
// the Sequencer holds its internal lock and must not call back into the
// Sequencer. The last WithObserver option wins.
func WithObserver[R any](fn func(Result[R])) Option {
	return func(cfg *config) error {
		if fn == nil {
			return errorc.With(ErrInvalidConfig, errorc.String("", "WithObserver requires a non-nil callback"))
		}
		cfg.Observer = fn
		return nil
	}
}

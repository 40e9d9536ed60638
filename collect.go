package sequencer

import "context"

// Collect runs ops to completion and returns all results in sequence order.
// It owns the lifecycle: construct, Start, drive PollOrWait via Wait, Close.
//
// Results are returned for every slot, including failed ones (Result.Err set);
// inspect Failed() per entry. Collect installs its own delivery observer, so
// any WithObserver option passed in opts is overridden. A non-nil error is
// returned for setup failures (empty submission, invalid options), ctx
// expiry, or an invariant violation; the results gathered so far accompany a
// ctx error.
func Collect[R any](ctx context.Context, ops []Operation[R], opts ...Option) ([]Result[R], error) {
	out := make([]Result[R], 0, len(ops))
	opts = append(opts, WithObserver[R](func(r Result[R]) { out = append(out, r) }))

	s, err := New[R](ctx, ops, opts...)
	if err != nil {
		return nil, err
	}
	s.Start(ctx)
	defer s.Close()

	if err := s.Wait(ctx); err != nil {
		return out, err
	}
	return out, nil
}

// Values runs ops to completion and returns the payload values in sequence
// order. The first failed slot aborts with its error; use Collect when failed
// slots should be inspected instead.
func Values[R any](ctx context.Context, ops []Operation[R], opts ...Option) ([]R, error) {
	results, err := Collect[R](ctx, ops, opts...)
	if err != nil {
		return nil, err
	}
	out := make([]R, 0, len(results))
	for _, r := range results {
		if r.Err != nil {
			return nil, r.Err
		}
		out = append(out, r.Value)
	}
	return out, nil
}

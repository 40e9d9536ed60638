package tests

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ygrebnov/sequencer"
)

func atomicAdd(p *int32, d int32) int32 { return atomic.AddInt32(p, d) }

// gatedOps builds n operations that each complete when their release channel
// is closed, producing the reference payload "worker-N > event N". Releasing
// in an arbitrary order simulates adversarial completion order exactly.
func gatedOps(n int) ([]sequencer.Operation[string], []chan struct{}) {
	ops := make([]sequencer.Operation[string], n)
	releases := make([]chan struct{}, n)
	for i := 0; i < n; i++ {
		seq := i + 1
		release := make(chan struct{})
		releases[i] = release
		ops[i] = func(ctx context.Context) (string, error) {
			select {
			case <-release:
				return fmt.Sprintf("worker-%d > event %d", seq, seq), nil
			case <-ctx.Done():
				return "", ctx.Err()
			}
		}
	}
	return ops, releases
}

// poll drives a single PollOrWait with a generous timeout.
func poll(t *testing.T, s *sequencer.Sequencer[string]) sequencer.Progress {
	t.Helper()
	p, err := s.PollOrWait(context.Background(), 2*time.Second)
	require.NoError(t, err)
	return p
}

// windowSeqs projects the window onto its sequence numbers.
func windowSeqs(s *sequencer.Sequencer[string]) []uint64 {
	win := s.Window()
	out := make([]uint64, 0, len(win))
	for _, e := range win {
		out = append(out, e.Seq)
	}
	return out
}

// permutations returns every ordering of 1..n. Intended for small n.
func permutations(n int) [][]int {
	base := make([]int, n)
	for i := range base {
		base[i] = i + 1
	}
	var out [][]int
	var generate func(k int)
	generate = func(k int) {
		if k == 1 {
			perm := make([]int, n)
			copy(perm, base)
			out = append(out, perm)
			return
		}
		for i := 0; i < k; i++ {
			generate(k - 1)
			if k%2 == 0 {
				base[i], base[k-1] = base[k-1], base[i]
			} else {
				base[0], base[k-1] = base[k-1], base[0]
			}
		}
	}
	generate(n)
	return out
}

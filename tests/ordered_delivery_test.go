package tests

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ygrebnov/sequencer"
)

// TestDeliveryOrder_AllPermutations releases 5 operations in every possible
// completion order and asserts delivery order is always 1..5, each exactly
// once, with the accounting invariant holding after every flush.
func TestDeliveryOrder_AllPermutations(t *testing.T) {
	for _, perm := range permutations(5) {
		perm := perm
		t.Run(fmt.Sprintf("completion_%v", perm), func(t *testing.T) {
			ops, releases := gatedOps(5)

			var deliveredSeqs []uint64
			s, err := sequencer.New[string](context.Background(), ops,
				sequencer.WithStartImmediately(),
				sequencer.WithObserver[string](func(r sequencer.Result[string]) {
					deliveredSeqs = append(deliveredSeqs, r.Seq)
				}),
			)
			require.NoError(t, err)
			defer s.Close()

			for _, k := range perm {
				close(releases[k-1])
				p := poll(t, s)
				require.Equal(t, p.Completed-p.Stats.Delivered, p.Buffered,
					"buffered must equal completed minus delivered")
			}

			require.Equal(t, []uint64{1, 2, 3, 4, 5}, deliveredSeqs)
			require.True(t, s.IsComplete())
		})
	}
}

// TestScenario_31524 walks the reference scenario: completion order
// [3, 1, 5, 2, 4] over five operations.
func TestScenario_31524(t *testing.T) {
	ops, releases := gatedOps(5)
	s, err := sequencer.New[string](context.Background(), ops, sequencer.WithStartImmediately())
	require.NoError(t, err)
	defer s.Close()

	// Op 3 finishes first: buffered, nothing delivered.
	close(releases[2])
	p := poll(t, s)
	require.Equal(t, 0, p.Flushed)
	require.Equal(t, 1, p.Buffered)

	// Op 1 finishes: only item 1 is delivered; 3 stays buffered behind 2.
	close(releases[0])
	p = poll(t, s)
	require.Equal(t, 1, p.Flushed)
	require.Equal(t, []uint64{1}, windowSeqs(s))
	require.Equal(t, 1, p.Buffered)

	// Op 5 finishes: buffered.
	close(releases[4])
	p = poll(t, s)
	require.Equal(t, 0, p.Flushed)
	require.Equal(t, 2, p.Buffered)

	// Ops 2 and 4 finish before the next flush: 2, 3, 4, 5 are all delivered
	// within that single flush step.
	close(releases[1])
	close(releases[3])
	time.Sleep(50 * time.Millisecond) // let both completions reach the arrival stream
	p = poll(t, s)
	require.Equal(t, 4, p.Flushed)
	require.Equal(t, []uint64{1, 2, 3, 4, 5}, windowSeqs(s))
	require.Equal(t, 0, p.Buffered)
	require.True(t, p.Done())
}

// TestScenario_31524_PolledStepwise verifies invariant 2 when each arrival is
// flushed individually: delivery of k happens in the same flush where the
// cursor reaches k, and no later.
func TestScenario_31524_PolledStepwise(t *testing.T) {
	ops, releases := gatedOps(5)
	s, err := sequencer.New[string](context.Background(), ops, sequencer.WithStartImmediately())
	require.NoError(t, err)
	defer s.Close()

	steps := []struct {
		complete    int
		wantFlushed int
		wantWindow  []uint64
	}{
		{complete: 3, wantFlushed: 0, wantWindow: nil},
		{complete: 1, wantFlushed: 1, wantWindow: []uint64{1}},
		{complete: 5, wantFlushed: 0, wantWindow: []uint64{1}},
		{complete: 2, wantFlushed: 2, wantWindow: []uint64{1, 2, 3}},
		{complete: 4, wantFlushed: 2, wantWindow: []uint64{1, 2, 3, 4, 5}},
	}
	for _, step := range steps {
		close(releases[step.complete-1])
		p := poll(t, s)
		require.Equal(t, step.wantFlushed, p.Flushed, "completion of %d", step.complete)
		if step.wantWindow == nil {
			require.Empty(t, windowSeqs(s))
		} else {
			require.Equal(t, step.wantWindow, windowSeqs(s))
		}
	}
}

// TestWindowRotation_CapacityThreeOfFive delivers 1..5 through a capacity-3
// window; the final window must be exactly [3, 4, 5].
func TestWindowRotation_CapacityThreeOfFive(t *testing.T) {
	ops, releases := gatedOps(5)
	s, err := sequencer.New[string](context.Background(), ops,
		sequencer.WithStartImmediately(),
		sequencer.WithWindowCapacity(3),
	)
	require.NoError(t, err)
	defer s.Close()

	for i := 0; i < 5; i++ {
		close(releases[i])
		poll(t, s)
		require.LessOrEqual(t, len(s.Window()), 3, "window must never exceed capacity")
	}

	require.Equal(t, []uint64{3, 4, 5}, windowSeqs(s))
	require.True(t, s.IsComplete())
}

// TestWindow_ContiguousSuffixAfterEviction checks that after rotation the
// window still holds a gap-free increasing suffix of delivered entries.
func TestWindow_ContiguousSuffixAfterEviction(t *testing.T) {
	ops, releases := gatedOps(8)
	s, err := sequencer.New[string](context.Background(), ops,
		sequencer.WithStartImmediately(),
		sequencer.WithWindowCapacity(4),
	)
	require.NoError(t, err)
	defer s.Close()

	// Adversarial: release in reverse order, then flush everything at once.
	for i := 7; i >= 0; i-- {
		close(releases[i])
	}
	for !s.IsComplete() {
		poll(t, s)
	}

	seqs := windowSeqs(s)
	require.Equal(t, []uint64{5, 6, 7, 8}, seqs)
}

// TestNewestFlag_HighlightsLastDeliveryForOneFlushCycle mirrors the rendering
// contract: the last appended entry is distinguishable for exactly one flush
// cycle and reverts on the next.
func TestNewestFlag_HighlightsLastDeliveryForOneFlushCycle(t *testing.T) {
	ops, releases := gatedOps(3)
	s, err := sequencer.New[string](context.Background(), ops, sequencer.WithStartImmediately())
	require.NoError(t, err)
	defer s.Close()

	close(releases[0])
	poll(t, s)
	win := s.Window()
	require.Len(t, win, 1)
	require.True(t, win[0].Newest)

	// A flush cycle with no deliveries reverts the highlight.
	p, err := s.PollOrWait(context.Background(), 20*time.Millisecond)
	require.NoError(t, err)
	require.Equal(t, 0, p.Flushed)
	win = s.Window()
	require.Len(t, win, 1)
	require.False(t, win[0].Newest)

	close(releases[1])
	close(releases[2])
}

// TestStatusLine renders the live status formatting from a Stats snapshot.
func TestStatusLine(t *testing.T) {
	ops, releases := gatedOps(12)
	s, err := sequencer.New[string](context.Background(), ops, sequencer.WithStartImmediately())
	require.NoError(t, err)
	defer s.Close()

	// Complete 2 and 3; both are held behind 1.
	close(releases[1])
	poll(t, s)
	close(releases[2])
	poll(t, s)

	require.Equal(t, "(2/12 tasks completed, 2 buffered)", s.Stats().String())

	for i := range releases {
		if i != 1 && i != 2 {
			close(releases[i])
		}
	}
}

func TestPayloadValuesDeliveredIntact(t *testing.T) {
	ops, releases := gatedOps(3)
	s, err := sequencer.New[string](context.Background(), ops, sequencer.WithStartImmediately())
	require.NoError(t, err)
	defer s.Close()

	for i := range releases {
		close(releases[i])
	}
	for !s.IsComplete() {
		poll(t, s)
	}

	win := s.Window()
	require.Equal(t, "worker-1 > event 1", win[0].Value)
	require.Equal(t, "worker-2 > event 2", win[1].Value)
	require.Equal(t, "worker-3 > event 3", win[2].Value)
}

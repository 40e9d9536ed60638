package sequencer

import "time"

// Stall policy. An operation that never completes starves the cursor forever;
// the reference behavior leaves that unbounded. When a stall deadline is
// configured, a blocked submission is force-flushed instead: every remaining
// slot is delivered in ascending sequence order, with ErrStalled markers
// standing in for slots whose operation never arrived. The ordering invariant
// of the window is preserved; only the "arrived before delivered" property is
// given up, and only for marked slots.

// stallExpiredLocked reports whether the force-flush should run.
func (s *Sequencer[R]) stallExpiredLocked() bool {
	if s.config.StallDeadline <= 0 || s.startedAt.IsZero() {
		return false
	}
	if s.delivered == s.total {
		return false
	}
	return time.Since(s.startedAt) > s.config.StallDeadline
}

// forceFlushLocked settles every remaining slot. Arrived results are
// delivered as-is; missing slots are delivered as ErrStalled markers. Returns
// the number of slots delivered.
func (s *Sequencer[R]) forceFlushLocked() int {
	n := 0
	for s.next <= uint64(s.total) {
		r, ok := s.pending[s.next]
		if ok {
			delete(s.pending, s.next)
			s.mBuffered.Add(-1)
		} else {
			r = Result[R]{Seq: s.next, Err: ErrStalled}
		}
		s.deliverLocked(r)
		n++
	}
	return n
}

package sequencer

// window is the bounded, ordered output sink. Entries appear in strictly
// increasing sequence order and the length never exceeds the capacity; a
// delivery beyond capacity evicts the oldest entry.
//
// window is not safe for concurrent use on its own: the Sequencer owns it and
// guards every mutation and snapshot with its state mutex.
type window[R any] struct {
	capacity uint
	entries  []Result[R]

	// newestSeq is the sequence number appended last during the most recent
	// flush step, or 0 when that flush appended nothing. It backs the Newest
	// flag for UI-highlight purposes and reverts on the next flush.
	newestSeq uint64
}

func newWindow[R any](capacity uint) *window[R] {
	return &window[R]{
		capacity: capacity,
		entries:  make([]Result[R], 0, capacity),
	}
}

// beginFlush opens a flush cycle, reverting the previous cycle's newest mark.
func (w *window[R]) beginFlush() {
	w.newestSeq = 0
}

// append delivers r into the window, rotating out the oldest entry when the
// capacity is exceeded.
func (w *window[R]) append(r Result[R]) {
	if uint(len(w.entries)) == w.capacity {
		copy(w.entries, w.entries[1:])
		w.entries = w.entries[:len(w.entries)-1]
	}
	w.entries = append(w.entries, r)
	w.newestSeq = r.Seq
}

// Entry is a delivered result as seen through the window. Newest is true for
// the entry appended last by the most recent flush step and reverts on the
// next flush.
type Entry[R any] struct {
	Result[R]
	Newest bool
}

// snapshot returns a copy of the current window contents in delivery order.
func (w *window[R]) snapshot() []Entry[R] {
	out := make([]Entry[R], len(w.entries))
	for i, r := range w.entries {
		out[i] = Entry[R]{Result: r, Newest: r.Seq == w.newestSeq && w.newestSeq != 0}
	}
	return out
}

func (w *window[R]) len() int { return len(w.entries) }

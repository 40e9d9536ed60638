package metrics

import (
	"sync"
	"sync/atomic"
)

// Basic is a concurrency-safe in-memory Provider suitable for tests and
// lightweight applications. Instruments are created on first request and
// reused for the same name.
type Basic struct {
	mu         sync.Mutex
	counters   map[string]*BasicCounter
	updowns    map[string]*BasicUpDownCounter
	histograms map[string]*BasicHistogram
	meta       map[string]InstrumentConfig
}

// NewBasic constructs an empty Basic provider.
func NewBasic() *Basic {
	return &Basic{
		counters:   make(map[string]*BasicCounter),
		updowns:    make(map[string]*BasicUpDownCounter),
		histograms: make(map[string]*BasicHistogram),
		meta:       make(map[string]InstrumentConfig),
	}
}

func buildConfig(opts []InstrumentOption) InstrumentConfig {
	var cfg InstrumentConfig
	for _, o := range opts {
		if o != nil {
			o(&cfg)
		}
	}
	return cfg
}

// Counter returns the monotonic counter registered under name, creating it
// on first use.
func (b *Basic) Counter(name string, opts ...InstrumentOption) Counter {
	b.mu.Lock()
	defer b.mu.Unlock()
	if c, ok := b.counters[name]; ok {
		return c
	}
	b.meta[name] = buildConfig(opts)
	c := &BasicCounter{}
	b.counters[name] = c
	return c
}

// UpDownCounter returns the up/down counter registered under name, creating
// it on first use.
func (b *Basic) UpDownCounter(name string, opts ...InstrumentOption) UpDownCounter {
	b.mu.Lock()
	defer b.mu.Unlock()
	if u, ok := b.updowns[name]; ok {
		return u
	}
	b.meta[name] = buildConfig(opts)
	u := &BasicUpDownCounter{}
	b.updowns[name] = u
	return u
}

// Histogram returns the histogram registered under name, creating it on
// first use.
func (b *Basic) Histogram(name string, opts ...InstrumentOption) Histogram {
	b.mu.Lock()
	defer b.mu.Unlock()
	if h, ok := b.histograms[name]; ok {
		return h
	}
	b.meta[name] = buildConfig(opts)
	h := &BasicHistogram{}
	b.histograms[name] = h
	return h
}

// BasicCounter is a thread-safe monotonic counter.
type BasicCounter struct {
	val atomic.Int64
}

func (c *BasicCounter) Add(n int64) { c.val.Add(n) }

// Snapshot returns the current value.
func (c *BasicCounter) Snapshot() int64 { return c.val.Load() }

// BasicUpDownCounter is a thread-safe counter that can move both ways.
type BasicUpDownCounter struct {
	val atomic.Int64
}

func (u *BasicUpDownCounter) Add(n int64) { u.val.Add(n) }

// Snapshot returns the current value.
func (u *BasicUpDownCounter) Snapshot() int64 { return u.val.Load() }

// BasicHistogram tracks count, sum, min, and max of recorded measurements.
// It keeps no buckets; it is a lightweight aggregator, not a full histogram.
type BasicHistogram struct {
	mu    sync.Mutex
	count int64
	sum   float64
	min   float64
	max   float64
}

func (h *BasicHistogram) Record(v float64) {
	h.mu.Lock()
	if h.count == 0 {
		h.min, h.max = v, v
	} else {
		if v < h.min {
			h.min = v
		}
		if v > h.max {
			h.max = v
		}
	}
	h.count++
	h.sum += v
	h.mu.Unlock()
}

// HistSnapshot is an immutable view of a BasicHistogram.
type HistSnapshot struct {
	Count int64
	Sum   float64
	Min   float64
	Max   float64
	Mean  float64
}

// Snapshot returns a copy of the histogram state at the time of the call.
func (h *BasicHistogram) Snapshot() HistSnapshot {
	h.mu.Lock()
	s := HistSnapshot{Count: h.count, Sum: h.sum, Min: h.min, Max: h.max}
	h.mu.Unlock()
	if s.Count > 0 {
		s.Mean = s.Sum / float64(s.Count)
	}
	return s
}

package pool

import (
	"context"
	"sync"
)

// dynamic places no bound on outstanding slots; released slots are reused
// opportunistically through sync.Pool.
type dynamic struct {
	p sync.Pool
}

// NewDynamic creates an unbounded Pool backed by sync.Pool.
func NewDynamic(newFn func() interface{}) Pool {
	return &dynamic{p: sync.Pool{New: newFn}}
}

func (d *dynamic) Acquire(_ context.Context) (interface{}, bool) {
	return d.p.Get(), true
}

func (d *dynamic) Release(el interface{}) {
	d.p.Put(el)
}

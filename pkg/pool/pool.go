package pool

import (
	"fmt"
	"sync"

	"github.com/idudko/go-autoclean/pkg/autoclean"
)

// Resetter is implemented by types that reset themselves, typically through a
// method generated by cleangen.
type Resetter interface {
	Reset() error
}

// Pool is a generic pool of *T values.
//
// Put resets objects before returning them to the pool: through their own
// Reset method when *T implements Resetter, through an autoclean.Cleaner
// otherwise.
type Pool[T any] struct {
	pool    sync.Pool
	cleaner *autoclean.Cleaner
}

// New creates a new Pool[T] with the provided function to create new objects.
// The newFunc is called when the pool is empty and Get is called. opts configure
// the cleaner used for types without a Reset method.
//
// Example:
//
//	type Buffer struct { ... }
//
//	p := pool.New(func() *Buffer {
//	    return &Buffer{}
//	}, autoclean.WithResetOptions(autoclean.DoNotDispose))
func New[T any](newFunc func() *T, opts ...autoclean.Option) *Pool[T] {
	return &Pool[T]{
		pool: sync.Pool{
			New: func() any {
				return newFunc()
			},
		},
		cleaner: autoclean.New(opts...),
	}
}

// Get retrieves an object from the pool.
// If the pool is empty, a new object is created using the newFunc provided to New.
func (p *Pool[T]) Get() *T {
	return p.pool.Get().(*T)
}

// Put resets x and returns it to the pool. If the reset fails the object is
// dropped and the error returned. Putting nil is a no-op.
//
// Example:
//
//	obj := p.Get()
//	// use obj...
//	if err := p.Put(obj); err != nil { ... }
func (p *Pool[T]) Put(x *T) error {
	if x == nil {
		return nil
	}
	if err := p.reset(x); err != nil {
		return fmt.Errorf("reset pooled object: %w", err)
	}
	p.pool.Put(x)
	return nil
}

func (p *Pool[T]) reset(x *T) error {
	if r, ok := any(x).(Resetter); ok {
		return r.Reset()
	}
	return p.cleaner.Reset(x)
}

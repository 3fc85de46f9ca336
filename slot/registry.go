package slot

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/delaneyj/pipeparty/pipe"
)

// ErrInvalidSlot is wrapped by the panics raised when a key does not
// match the registry it is used against: an out-of-range index or a
// type that disagrees with what the slot already holds. Both indicate a
// caller defect, never transient state.
var ErrInvalidSlot = errors.New("slot: invalid field slot")

// Key is the identity of one observable field: a small integer index
// declared once per owning type. The same Key value resolves to the
// same slot on every access, with no name lookup involved.
type Key[T comparable] struct {
	index int
	eq    func(a, b T) bool
}

func At[T comparable](index int) Key[T] {
	if index < 0 {
		panic(fmt.Errorf("%w: negative index %d", ErrInvalidSlot, index))
	}
	return Key[T]{index: index}
}

// WithEquals overrides the == gate used by Set for this field, for
// value types whose equality is not structural.
func (k Key[T]) WithEquals(eq func(a, b T) bool) Key[T] {
	k.eq = eq
	return k
}

func (k Key[T]) Index() int { return k.index }

// channel boxes the typed source so one cell layout serves every field
// type behind a single atomic pointer.
type channel struct {
	source any
}

type cell struct {
	val any
	ch  atomic.Pointer[channel]
}

// Registry holds the field slots of one owning object. Cells are
// allocated up front at the declared field count; notification channels
// are allocated lazily, only by Observe. An owner whose fields are
// never observed pays for the value cells and nothing else.
//
// Get and Set are not internally synchronized: serializing mutations of
// one slot is the caller's job. Observe alone is safe under concurrent
// first use.
type Registry struct {
	initMu sync.Mutex
	cells  []cell
}

func New(fieldCount int) *Registry {
	return &Registry{cells: make([]cell, fieldCount)}
}

func (r *Registry) Fields() int { return len(r.cells) }

func (r *Registry) cell(index int) *cell {
	if index < 0 || index >= len(r.cells) {
		panic(fmt.Errorf("%w: index %d outside %d declared fields", ErrInvalidSlot, index, len(r.cells)))
	}
	return &r.cells[index]
}

// Get returns the slot's current value, the zero value before the first
// Set. It never allocates and never creates a channel.
func Get[T comparable](r *Registry, k Key[T]) T {
	c := r.cell(k.index)
	if c.val == nil {
		var zero T
		return zero
	}
	v, ok := c.val.(T)
	if !ok {
		panic(fmt.Errorf("%w: field %d holds %T", ErrInvalidSlot, k.index, c.val))
	}
	return v
}

// Set stores v if it differs from the current value under the key's
// equality, then pushes it to the slot's channel if one already exists.
// An equal value is a complete no-op, and Set never creates a channel.
func Set[T comparable](r *Registry, k Key[T], v T) {
	c := r.cell(k.index)
	var cur T
	if c.val != nil {
		prev, ok := c.val.(T)
		if !ok {
			panic(fmt.Errorf("%w: field %d holds %T", ErrInvalidSlot, k.index, c.val))
		}
		cur = prev
	}
	if k.eq != nil {
		if k.eq(cur, v) {
			return
		}
	} else if cur == v {
		return
	}
	c.val = v
	if ch := c.ch.Load(); ch != nil {
		sourceOf[T](k.index, ch).Next(v)
	}
}

// Observe returns the slot's change channel, creating it exactly once.
// Two goroutines racing on a never-observed slot get the same instance:
// the atomic load is the fast path and creation is double-checked under
// the registry's init lock.
func Observe[T comparable](r *Registry, k Key[T]) *pipe.Source[T] {
	c := r.cell(k.index)
	if ch := c.ch.Load(); ch != nil {
		return sourceOf[T](k.index, ch)
	}
	r.initMu.Lock()
	defer r.initMu.Unlock()
	if ch := c.ch.Load(); ch != nil {
		return sourceOf[T](k.index, ch)
	}
	src := pipe.NewSource[T]()
	c.ch.Store(&channel{source: src})
	return src
}

// Observed reports whether the slot's channel has been created.
func Observed[T comparable](r *Registry, k Key[T]) bool {
	return r.cell(k.index).ch.Load() != nil
}

func sourceOf[T comparable](index int, ch *channel) *pipe.Source[T] {
	src, ok := ch.source.(*pipe.Source[T])
	if !ok {
		panic(fmt.Errorf("%w: field %d already observed as %T", ErrInvalidSlot, index, ch.source))
	}
	return src
}

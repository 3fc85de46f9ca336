package pipe

import "sync/atomic"

// box is the materialized form of a Stream. Its entry point is the
// stage chain composed at materialization time: typed closures calling
// each other directly, so a delivered value never crosses an interface
// boundary and no per-stage allocation happens after the box is built.
// One box exists per subscription and is never shared.
type box struct {
	// entry holds the head of the composed chain as a func(S) for the
	// source's element type S. The source asserts it back once, at
	// attach time.
	entry      any
	onError    func(error)
	onComplete func()
	src        producer
	done       atomic.Bool
}

// fail terminates this subscription only: the source and its other
// subscribers are unaffected.
func (b *box) fail(err error) {
	if !b.done.CompareAndSwap(false, true) {
		return
	}
	if b.src != nil {
		b.src.detach(b)
	}
	if b.onError != nil {
		b.onError(err)
	}
}

// error and complete pass through from upstream without filtering.
func (b *box) error(err error) {
	if !b.done.CompareAndSwap(false, true) {
		return
	}
	if b.onError != nil {
		b.onError(err)
	}
}

func (b *box) complete() {
	if !b.done.CompareAndSwap(false, true) {
		return
	}
	if b.onComplete != nil {
		b.onComplete()
	}
}

func (b *box) Unsubscribe() {
	if !b.done.CompareAndSwap(false, true) {
		return
	}
	if b.src != nil {
		b.src.detach(b)
	}
}

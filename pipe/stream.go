package pipe

import "fmt"

// Subscription is the handle for one active delivery connection.
// Unsubscribe is idempotent; after it returns no further events reach
// the subscription's callbacks.
type Subscription interface {
	Unsubscribe()
}

// StageError reports a transform stage that failed while evaluating a
// value. It is delivered as the error event of the subscription the
// failing box belongs to.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("pipe: %s stage failed: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

// op is one inert stage description. make composes the stage onto the
// downstream continuation at materialization time: next is the typed
// func(O) of the stage below, the result is the typed func(I) of this
// stage. The two type resolutions happen once per subscription, never
// per value, and every stage gets fresh state per materialization so
// independent subscriptions never share it.
type op struct {
	make func(b *box, next any) any
}

type opNode struct {
	prev *opNode
	op   op
}

// Stream describes a pipeline without materializing anything: the
// ultimate source plus a chain of stage descriptions linked from the
// terminal end back to the source. Streams are immutable values; adding
// a stage returns a new Stream and existing ones stay valid, so chains
// may branch freely.
type Stream[T any] struct {
	src  producer
	tail *opNode
}

func From[T any](src *Source[T]) Stream[T] {
	return Stream[T]{src: src}
}

func extend[O any](src producer, tail *opNode, o op) Stream[O] {
	return Stream[O]{
		src:  src,
		tail: &opNode{prev: tail, op: o},
	}
}

// evalStage runs one stage body, wrapping both returned errors and
// recovered panics as that stage's StageError.
func evalStage[I, O any](name string, f func(I) (O, error), v I) (o O, err error) {
	defer recoverStage(name, &err)
	o, ferr := f(v)
	if ferr != nil {
		return o, &StageError{Stage: name, Err: ferr}
	}
	return o, nil
}

func recoverStage(name string, err *error) {
	if r := recover(); r != nil {
		*err = &StageError{Stage: name, Err: fmt.Errorf("panic: %v", r)}
	}
}

// Map transforms each value with f. An error from f fails the
// subscription with a StageError; panics are recovered and treated the
// same way.
func Map[I, O any](s Stream[I], f func(I) (O, error)) Stream[O] {
	return extend[O](s.src, s.tail, op{
		make: func(b *box, next any) any {
			send := next.(func(O))
			return func(v I) {
				o, err := evalStage("map", f, v)
				if err != nil {
					b.fail(err)
					return
				}
				send(o)
			}
		},
	})
}

// Filter forwards only values p accepts. Error and completion events are
// never filtered; they always pass through to the consumer.
func Filter[T any](s Stream[T], p func(T) (bool, error)) Stream[T] {
	return extend[T](s.src, s.tail, op{
		make: func(b *box, next any) any {
			send := next.(func(T))
			return func(v T) {
				keep, err := evalStage("filter", p, v)
				if err != nil {
					b.fail(err)
					return
				}
				if keep {
					send(v)
				}
			}
		},
	})
}

// Scan folds values into a running accumulator seeded with seed,
// emitting the accumulator after each input. The accumulator lives
// inside the materialized stage closure, so every subscription folds
// its own.
func Scan[I, O any](s Stream[I], seed O, f func(O, I) (O, error)) Stream[O] {
	return extend[O](s.src, s.tail, op{
		make: func(b *box, next any) any {
			send := next.(func(O))
			acc := seed
			fold := func(v I) (O, error) {
				return f(acc, v)
			}
			return func(v I) {
				o, err := evalStage("scan", fold, v)
				if err != nil {
					b.fail(err)
					return
				}
				acc = o
				send(o)
			}
		},
	})
}

// materialize compiles the description into one box, composing the
// typed stage closures from the terminal back to the source so that
// each stage is visited exactly once and a delivered value flows
// through direct typed calls.
func materialize[T any](s Stream[T], onNext func(T), onError func(error), onComplete func()) *box {
	b := &box{
		onError:    onError,
		onComplete: onComplete,
		src:        s.src,
	}
	sink := onNext
	if sink == nil {
		sink = func(T) {}
	}
	var next any = func(v T) {
		if b.done.Load() {
			return
		}
		sink(v)
	}
	for node := s.tail; node != nil; node = node.prev {
		next = node.op.make(b, next)
	}
	b.entry = next
	return b
}

// Subscribe materializes the stream and only then attaches the box to
// the source, so a value emitted mid-construction can never reach a
// partially built chain. Returns ErrAlreadyTerminated if the source has
// completed or errored.
func Subscribe[T any](s Stream[T], onNext func(T), onError func(error), onComplete func()) (Subscription, error) {
	if s.src == nil {
		panic("pipe: stream has no source")
	}
	b := materialize(s, onNext, onError, onComplete)
	if err := s.src.attach(b); err != nil {
		return nil, err
	}
	return b, nil
}

// Publish materializes the stream into a new Source that owns its own
// subscriber list, exposing the chain as a general observable.
func Publish[T any](s Stream[T]) (*Source[T], Subscription, error) {
	out := NewSource[T]()
	sub, err := Subscribe(s, out.Next, out.Error, out.Complete)
	if err != nil {
		return nil, nil, err
	}
	return out, sub, nil
}

package pipe

import (
	"errors"
	"sync"

	mapset "github.com/deckarep/golang-set/v2"
)

var ErrAlreadyTerminated = errors.New("pipe: source already terminated")

// producer is the attachment point a materialized box connects to.
type producer interface {
	attach(b *box) error
	detach(b *box)
}

// fanEntry pairs a subscription with its typed chain entry so a push is
// a direct call, resolved once at attach time.
type fanEntry[T any] struct {
	b    *box
	next func(T)
}

// Source is a broadcast push endpoint: values pushed with Next fan out to
// every attached subscription, synchronously, on the calling goroutine.
// A Source is single-shot: after Error or Complete it accepts no further
// values and no further subscribers.
//
// The fan-out slice is copy-on-write, rebuilt only when a subscription
// attaches or detaches, so Next just walks the current snapshot.
type Source[T any] struct {
	mu    sync.Mutex
	sinks mapset.Set[*box]
	fan   []fanEntry[T]
	done  bool
	err   error
}

func NewSource[T any]() *Source[T] {
	return &Source[T]{
		sinks: mapset.NewSet[*box](),
	}
}

func (s *Source[T]) Next(v T) {
	s.mu.Lock()
	if s.done {
		s.mu.Unlock()
		return
	}
	fan := s.fan
	s.mu.Unlock()

	for i := range fan {
		e := &fan[i]
		if e.b.done.Load() {
			continue
		}
		e.next(v)
	}
}

func (s *Source[T]) Error(err error) {
	fan, ok := s.terminate(err)
	if !ok {
		return
	}
	for i := range fan {
		fan[i].b.error(err)
	}
}

func (s *Source[T]) Complete() {
	fan, ok := s.terminate(nil)
	if !ok {
		return
	}
	for i := range fan {
		fan[i].b.complete()
	}
}

func (s *Source[T]) terminate(err error) ([]fanEntry[T], bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.done {
		return nil, false
	}
	s.done = true
	s.err = err
	fan := s.fan
	s.fan = nil
	s.sinks.Clear()
	return fan, true
}

// Subscribe attaches a plain consumer directly to the source, with no
// intermediate stages. Any callback may be nil.
func (s *Source[T]) Subscribe(onNext func(T), onError func(error), onComplete func()) (Subscription, error) {
	return Subscribe(From(s), onNext, onError, onComplete)
}

func (s *Source[T]) attach(b *box) error {
	entry, ok := b.entry.(func(T))
	if !ok {
		panic("pipe: materialized chain does not match source element type")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.done {
		return ErrAlreadyTerminated
	}
	if !s.sinks.Add(b) {
		return nil
	}
	fan := make([]fanEntry[T], len(s.fan)+1)
	copy(fan, s.fan)
	fan[len(fan)-1] = fanEntry[T]{b: b, next: entry}
	s.fan = fan
	return nil
}

func (s *Source[T]) detach(b *box) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.sinks.Contains(b) {
		return
	}
	s.sinks.Remove(b)
	fan := make([]fanEntry[T], 0, len(s.fan)-1)
	for i := range s.fan {
		if s.fan[i].b != b {
			fan = append(fan, s.fan[i])
		}
	}
	s.fan = fan
}

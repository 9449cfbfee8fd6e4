// Package store provides a single-writer state container.
//
// A Store owns one state value. Effects are queued by any goroutine and
// applied one at a time, in dispatch order, by the store's own goroutine.
// Readers get immutable snapshots through State or Subscribe.
package store

import "sync"

// Reducer computes the next state from the current state and an effect.
// It must not perform I/O or mutate the state it receives.
type Reducer[S, E any] func(S, E) S

type queued[S, E any] struct {
	effect E
	ack    chan S
}

// Store serializes every state transition through one goroutine.
type Store[S, E any] struct {
	reduce Reducer[S, E]

	mu     sync.RWMutex
	state  S
	subs   map[int]chan S
	nextID int

	qmu     sync.Mutex
	queue   []queued[S, E]
	closed  bool
	wake    chan struct{}
	done    chan struct{}
	stopped chan struct{}
}

// New starts a Store holding initial. Call Close to stop it.
func New[S, E any](initial S, reduce Reducer[S, E]) *Store[S, E] {
	s := &Store[S, E]{
		reduce:  reduce,
		state:   initial,
		subs:    make(map[int]chan S),
		wake:    make(chan struct{}, 1),
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
	go s.run()
	return s
}

// Dispatch queues an effect. It never blocks on the reducer or on
// subscribers. Effects dispatched after Close are dropped.
func (s *Store[S, E]) Dispatch(effect E) {
	s.enqueue(queued[S, E]{effect: effect})
}

// DispatchWait queues an effect and returns the state produced by it.
// If the store is closed first, the last state is returned.
func (s *Store[S, E]) DispatchWait(effect E) S {
	ack := make(chan S, 1)
	if !s.enqueue(queued[S, E]{effect: effect, ack: ack}) {
		return s.State()
	}
	select {
	case st := <-ack:
		return st
	case <-s.stopped:
		return s.State()
	}
}

// State returns the current snapshot.
func (s *Store[S, E]) State() S {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Subscribe returns a channel that immediately receives the current snapshot
// and then every new one. Slow receivers only see the latest snapshot.
// The channel is closed by the returned cancel func or by Close.
func (s *Store[S, E]) Subscribe() (<-chan S, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch := make(chan S, 1)
	if s.isClosed() {
		close(ch)
		return ch, func() {}
	}

	id := s.nextID
	s.nextID++
	s.subs[id] = ch
	ch <- s.state

	return ch, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if c, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(c)
		}
	}
}

// Close stops the store goroutine and closes all subscriber channels.
// Effects still queued are discarded.
func (s *Store[S, E]) Close() {
	s.qmu.Lock()
	if s.closed {
		s.qmu.Unlock()
		<-s.stopped
		return
	}
	s.closed = true
	s.queue = nil
	s.qmu.Unlock()

	close(s.done)
	<-s.stopped

	s.mu.Lock()
	for id, ch := range s.subs {
		delete(s.subs, id)
		close(ch)
	}
	s.mu.Unlock()
}

func (s *Store[S, E]) isClosed() bool {
	s.qmu.Lock()
	defer s.qmu.Unlock()
	return s.closed
}

func (s *Store[S, E]) enqueue(q queued[S, E]) bool {
	s.qmu.Lock()
	if s.closed {
		s.qmu.Unlock()
		return false
	}
	s.queue = append(s.queue, q)
	s.qmu.Unlock()

	select {
	case s.wake <- struct{}{}:
	default:
	}
	return true
}

func (s *Store[S, E]) drain() []queued[S, E] {
	s.qmu.Lock()
	defer s.qmu.Unlock()
	items := s.queue
	s.queue = nil
	return items
}

func (s *Store[S, E]) run() {
	defer close(s.stopped)
	for {
		select {
		case <-s.done:
			return
		case <-s.wake:
		}
		for _, q := range s.drain() {
			select {
			case <-s.done:
				return
			default:
			}
			s.apply(q)
		}
	}
}

func (s *Store[S, E]) apply(q queued[S, E]) {
	s.mu.Lock()
	s.state = s.reduce(s.state, q.effect)
	st := s.state
	for _, ch := range s.subs {
		publish(ch, st)
	}
	s.mu.Unlock()

	if q.ack != nil {
		q.ack <- st
	}
}

// publish replaces any unread snapshot with st. Only the store goroutine
// sends, so the second send cannot block.
func publish[S any](ch chan S, st S) {
	select {
	case ch <- st:
	default:
		select {
		case <-ch:
		default:
		}
		ch <- st
	}
}

package pipeline

import "sync"

// Queue is an unbounded FIFO channel between two pipeline stages. A message
// is owned exclusively by the queue between Put and receive; at most one
// worker receives a given message.
type Queue[T any] struct {
	name string

	mu     sync.Mutex
	closed bool

	in  chan T
	out chan T
}

// NewQueue creates a queue and starts its shuttle goroutine.
func NewQueue[T any](name string) *Queue[T] {
	q := &Queue[T]{
		name: name,
		in:   make(chan T),
		out:  make(chan T),
	}
	go q.shuttle()
	return q
}

// Put appends a message at the tail. It reports false after Close, when the
// message is dropped (in-flight loss on shutdown is accepted).
func (q *Queue[T]) Put(msg T) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return false
	}
	// The shuttle drains in promptly, so holding the lock across the send
	// only serializes producers against Close.
	q.in <- msg
	return true
}

// C is the receive side of the queue. It is closed after Close once the
// buffered backlog has drained.
func (q *Queue[T]) C() <-chan T {
	return q.out
}

// Name identifies the queue in logs.
func (q *Queue[T]) Name() string {
	return q.name
}

// Close stops intake. Buffered messages still reach C.
func (q *Queue[T]) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return
	}
	q.closed = true
	close(q.in)
}

// shuttle moves messages from in to out through an unbounded buffer so Put
// never blocks on slow consumers.
func (q *Queue[T]) shuttle() {
	var buf []T
	for {
		if len(buf) == 0 {
			msg, ok := <-q.in
			if !ok {
				close(q.out)
				return
			}
			buf = append(buf, msg)
			continue
		}
		select {
		case msg, ok := <-q.in:
			if !ok {
				for _, pending := range buf {
					q.out <- pending
				}
				close(q.out)
				return
			}
			buf = append(buf, msg)
		case q.out <- buf[0]:
			buf = buf[1:]
		}
	}
}

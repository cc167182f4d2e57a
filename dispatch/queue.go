// Package dispatch provides the control thread of a playback session.
//
// A Queue is a single goroutine executing posted tasks one at a time in FIFO order.
// Player notifications, scheduled actions and lifecycle calls are all posted to the same
// queue, so state owned by the session never needs locking. A Handler is a cancellable
// posting token on a queue: RemoveAll drops every task the handler queued or scheduled.
package dispatch

import (
	"errors"
	"sync"

	"github.com/jonboulle/clockwork"
)

// ErrClosed is returned when posting to a queue that has been closed.
var ErrClosed = errors.New("dispatch: queue closed")

type task struct {
	fn      func()
	handler *Handler
	gen     uint64
}

// Queue is a single control thread.
type Queue struct {
	clock clockwork.Clock

	mu       sync.Mutex
	tasks    []task
	handlers map[*Handler]struct{}
	closed   bool

	wake chan struct{}
	quit chan struct{}
	done chan struct{}
}

// New starts a queue whose delayed tasks are timed by clock.
func New(clock clockwork.Clock) *Queue {
	q := &Queue{
		clock:    clock,
		handlers: make(map[*Handler]struct{}),
		wake:     make(chan struct{}, 1),
		quit:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	go q.loop()
	return q
}

// Clock returns the clock timing delayed tasks.
func (q *Queue) Clock() clockwork.Clock {
	return q.clock
}

// Post queues fn for execution. It reports false if the queue is closed.
func (q *Queue) Post(fn func()) bool {
	return q.enqueue(task{fn: fn})
}

// Sync runs fn on the queue and waits for it to return.
// It must not be called from a task running on the same queue.
func (q *Queue) Sync(fn func()) error {
	ran := make(chan struct{})
	if !q.enqueue(task{fn: func() {
		defer close(ran)
		fn()
	}}) {
		return ErrClosed
	}

	select {
	case <-ran:
		return nil
	case <-q.done:
		select {
		case <-ran:
			return nil
		default:
			return ErrClosed
		}
	}
}

// NewHandler returns a handler posting to this queue.
func (q *Queue) NewHandler() *Handler {
	h := &Handler{queue: q, timers: make(map[clockwork.Timer]struct{})}

	q.mu.Lock()
	q.handlers[h] = struct{}{}
	q.mu.Unlock()

	return h
}

// Close cancels every handler, drops pending tasks and stops the control thread.
// A task that is already running completes first. Close must not be called from the queue.
func (q *Queue) Close() {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		<-q.done
		return
	}
	q.closed = true
	q.tasks = nil
	handlers := q.handlers
	q.handlers = make(map[*Handler]struct{})
	q.mu.Unlock()

	for h := range handlers {
		h.RemoveAll()
	}

	close(q.quit)
	<-q.done
}

func (q *Queue) enqueue(t task) bool {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return false
	}
	q.tasks = append(q.tasks, t)
	q.mu.Unlock()

	select {
	case q.wake <- struct{}{}:
	default:
	}
	return true
}

func (q *Queue) next() (task, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.tasks) == 0 {
		return task{}, false
	}
	t := q.tasks[0]
	q.tasks[0] = task{}
	q.tasks = q.tasks[1:]
	return t, true
}

// track registers h for cancellation on Close. It reports false if the queue is closed.
func (q *Queue) track(h *Handler) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return false
	}
	q.handlers[h] = struct{}{}
	return true
}

// purge drops queued tasks posted by h and forgets h until it schedules again.
func (q *Queue) purge(h *Handler) {
	q.mu.Lock()
	defer q.mu.Unlock()

	delete(q.handlers, h)

	kept := q.tasks[:0]
	for _, t := range q.tasks {
		if t.handler != h {
			kept = append(kept, t)
		}
	}
	q.tasks = kept
}

func (q *Queue) loop() {
	defer close(q.done)

	for {
		select {
		case <-q.quit:
			return
		case <-q.wake:
		}

		for {
			t, ok := q.next()
			if !ok {
				break
			}
			if t.handler != nil && t.handler.gen.Load() != t.gen {
				continue
			}

			t.fn()

			select {
			case <-q.quit:
				return
			default:
			}
		}
	}
}

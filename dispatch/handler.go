package dispatch

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"
)

// Handler posts tasks to a queue and can withdraw all of them at once.
type Handler struct {
	queue *Queue
	gen   atomic.Uint64

	mu     sync.Mutex
	timers map[clockwork.Timer]struct{}
}

// Queue returns the queue this handler posts to.
func (h *Handler) Queue() *Queue {
	return h.queue
}

// Post queues fn. It reports false if the queue is closed.
func (h *Handler) Post(fn func()) bool {
	return h.queue.enqueue(task{fn: fn, handler: h, gen: h.gen.Load()})
}

// PostDelayed queues fn once d has elapsed on the queue clock.
func (h *Handler) PostDelayed(d time.Duration, fn func()) bool {
	if d <= 0 {
		return h.Post(fn)
	}

	if !h.queue.track(h) {
		return false
	}

	gen := h.gen.Load()

	h.mu.Lock()
	defer h.mu.Unlock()

	var timer clockwork.Timer
	timer = h.queue.clock.AfterFunc(d, func() {
		h.mu.Lock()
		delete(h.timers, timer)
		h.mu.Unlock()

		h.queue.enqueue(task{fn: fn, handler: h, gen: gen})
	})
	h.timers[timer] = struct{}{}
	return true
}

// RemoveAll withdraws every task posted through h, queued or still waiting on a timer.
// Tasks are checked against the handler generation on the control thread right before
// they run, so once RemoveAll returns none of them will execute.
func (h *Handler) RemoveAll() {
	h.gen.Add(1)

	h.mu.Lock()
	for timer := range h.timers {
		timer.Stop()
	}
	h.timers = make(map[clockwork.Timer]struct{})
	h.mu.Unlock()

	h.queue.purge(h)
}

// Pending returns the number of delayed tasks still waiting on their timer.
func (h *Handler) Pending() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.timers)
}

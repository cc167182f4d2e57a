// Package schedule runs timed player actions during a playback session.
package schedule

import (
	"sync"

	"github.com/playcheck-cli/playcheck/dispatch"
	"github.com/playcheck-cli/playcheck/player"
	"github.com/samber/mo"
)

// Schedule starts a sequence of actions against a player. Start runs on the control
// queue; every action must be posted through h so the coordinator can withdraw it.
type Schedule interface {
	Start(p player.Player, sel *player.TrackSelector, h *dispatch.Handler)
}

// Coordinator holds the schedule of a session. A schedule set before the session
// starts waits in a pending slot; once armed, a new schedule replaces the active one.
type Coordinator struct {
	mu      sync.Mutex
	pending mo.Option[Schedule]
	armed   bool
	player  player.Player
	sel     *player.TrackSelector
	queue   *dispatch.Queue
	active  *dispatch.Handler
}

// NewCoordinator returns an unarmed coordinator with an empty slot.
func NewCoordinator() *Coordinator {
	return &Coordinator{pending: mo.None[Schedule]()}
}

// Set installs s. Before Arm it replaces the pending schedule; after Arm it cancels
// the actions of the active schedule and starts s on the control queue. A nil
// schedule is ignored.
func (c *Coordinator) Set(s Schedule) {
	if s == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.armed {
		c.pending = mo.Some(s)
		return
	}

	if c.active != nil {
		c.active.RemoveAll()
	}
	h := c.queue.NewHandler()
	c.active = h
	p, sel := c.player, c.sel
	h.Post(func() { s.Start(p, sel, h) })
}

// Arm binds the coordinator to a started session and starts the pending schedule.
func (c *Coordinator) Arm(p player.Player, sel *player.TrackSelector, q *dispatch.Queue) {
	c.mu.Lock()
	c.armed = true
	c.player, c.sel, c.queue = p, sel, q
	pending, ok := c.pending.Get()
	c.pending = mo.None[Schedule]()
	c.mu.Unlock()

	if ok {
		c.Set(pending)
	}
}

// Disarm withdraws every queued and future action of the active schedule.
func (c *Coordinator) Disarm() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.armed = false
	if c.active != nil {
		c.active.RemoveAll()
		c.active = nil
	}
}

// Armed reports whether the coordinator is bound to a running session.
func (c *Coordinator) Armed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.armed
}

// Pending reports whether a schedule waits for the session to start.
func (c *Coordinator) Pending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pending.IsPresent()
}

// Package host drives hosted playback tests: it owns the control queue, starts the
// test on it, polls for completion and runs teardown and verification.
package host

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/playcheck-cli/playcheck/constant"
	"github.com/playcheck-cli/playcheck/dispatch"
	"github.com/playcheck-cli/playcheck/player"
)

// ErrTimeout is returned when a test does not finish before the deadline.
var ErrTimeout = errors.New("hosted test did not finish in time")

// Host is what a hosted test receives when it starts.
type Host interface {
	// Queue returns the control queue every lifecycle call runs on.
	Queue() *dispatch.Queue

	// UserAgent returns the user agent for requests made on behalf of the test.
	UserAgent() string
}

// HostedTest is a test driven by Run. Every method runs on the control queue.
type HostedTest interface {
	OnStart(h Host, surface player.Surface) error
	OnStop()
	IsFinished() bool
	OnFinished() error
}

type host struct {
	queue     *dispatch.Queue
	userAgent string
}

func (h *host) Queue() *dispatch.Queue { return h.queue }
func (h *host) UserAgent() string      { return h.userAgent }

// Option customizes Run.
type Option func(*options)

type options struct {
	surface      player.Surface
	pollInterval time.Duration
	timeout      time.Duration
	clock        clockwork.Clock
	userAgent    string
	onTick       func()
}

// WithSurface sets the surface handed to OnStart.
func WithSurface(surface player.Surface) Option {
	return func(o *options) { o.surface = surface }
}

// WithPollInterval sets how often IsFinished is polled.
func WithPollInterval(d time.Duration) Option {
	return func(o *options) { o.pollInterval = d }
}

// WithTimeout bounds the time the test may take to finish.
func WithTimeout(d time.Duration) Option {
	return func(o *options) { o.timeout = d }
}

// WithClock sets the clock of the control queue and of polling.
func WithClock(clock clockwork.Clock) Option {
	return func(o *options) { o.clock = clock }
}

// WithUserAgent overrides the user agent handed to the test.
func WithUserAgent(userAgent string) Option {
	return func(o *options) { o.userAgent = userAgent }
}

// WithTick sets a function run on the control queue after every poll.
func WithTick(onTick func()) Option {
	return func(o *options) { o.onTick = onTick }
}

// Run starts test, waits for it to finish and returns the verdict of OnFinished.
// If ctx ends or the timeout passes first, the test is stopped and an error wrapping
// ErrTimeout is returned without running OnFinished.
func Run(ctx context.Context, test HostedTest, opts ...Option) error {
	o := options{
		pollInterval: 100 * time.Millisecond,
		clock:        clockwork.NewRealClock(),
		userAgent:    constant.UserAgent,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.pollInterval <= 0 {
		return fmt.Errorf("poll interval must be positive, got %s", o.pollInterval)
	}

	if o.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.timeout)
		defer cancel()
	}

	q := dispatch.New(o.clock)
	defer q.Close()

	h := &host{queue: q, userAgent: o.userAgent}

	var startErr error
	if err := q.Sync(func() { startErr = test.OnStart(h, o.surface) }); err != nil {
		return err
	}
	if startErr != nil {
		return fmt.Errorf("start: %w", startErr)
	}

	ticker := o.clock.NewTicker(o.pollInterval)
	defer ticker.Stop()

	for {
		finished := false
		if err := q.Sync(func() {
			finished = test.IsFinished()
			if o.onTick != nil {
				o.onTick()
			}
		}); err != nil {
			return err
		}
		if finished {
			break
		}

		select {
		case <-ctx.Done():
			if err := q.Sync(test.OnStop); err != nil {
				return err
			}
			return fmt.Errorf("%w: %w", ErrTimeout, ctx.Err())
		case <-ticker.Chan():
		}
	}

	if err := q.Sync(test.OnStop); err != nil {
		return err
	}

	var verdict error
	if err := q.Sync(func() { verdict = test.OnFinished() }); err != nil {
		return err
	}
	return verdict
}

// RunT runs test and fails t with the verdict.
func RunT(t testing.TB, test HostedTest, opts ...Option) {
	t.Helper()
	if err := Run(context.Background(), test, opts...); err != nil {
		t.Fatal(err)
	}
}

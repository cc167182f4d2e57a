package schedule

import (
	"fmt"
	"strings"
	"time"

	"github.com/playcheck-cli/playcheck/dispatch"
	"github.com/playcheck-cli/playcheck/log"
	"github.com/playcheck-cli/playcheck/player"
)

// Step is an action run Delay after the previous step.
type Step struct {
	Delay  time.Duration
	Action Action
}

// ActionSchedule runs its steps one after another on the control queue.
type ActionSchedule struct {
	tag   string
	steps []Step
}

// Steps returns the steps of the schedule.
func (s *ActionSchedule) Steps() []Step {
	return append([]Step(nil), s.steps...)
}

// Start posts the first step. Each step posts the next once it has run.
func (s *ActionSchedule) Start(p player.Player, sel *player.TrackSelector, h *dispatch.Handler) {
	s.post(0, p, sel, h, log.Tag(s.tag))
}

func (s *ActionSchedule) post(i int, p player.Player, sel *player.TrackSelector, h *dispatch.Handler, logger log.Tagged) {
	if i >= len(s.steps) {
		return
	}

	step := s.steps[i]
	h.PostDelayed(step.Delay, func() {
		logger.Infof("action: %s", step.Action)
		if err := step.Action.Do(p, sel); err != nil {
			logger.Errorf("action %s failed: %v", step.Action, err)
		}
		s.post(i+1, p, sel, h, logger)
	})
}

func (s *ActionSchedule) String() string {
	var b strings.Builder
	var at time.Duration
	for _, step := range s.steps {
		at += step.Delay
		fmt.Fprintf(&b, "%8s  %s\n", at, step.Action)
	}
	return b.String()
}

// Builder assembles an ActionSchedule.
type Builder struct {
	tag   string
	delay time.Duration
	steps []Step
}

// NewBuilder returns a builder for a schedule whose actions are logged with tag.
func NewBuilder(tag string) *Builder {
	return &Builder{tag: tag}
}

// Delay postpones the next action by d.
func (b *Builder) Delay(d time.Duration) *Builder {
	b.delay += d
	return b
}

func (b *Builder) add(a Action) *Builder {
	b.steps = append(b.steps, Step{Delay: b.delay, Action: a})
	b.delay = 0
	return b
}

// Seek adds a seek to position.
func (b *Builder) Seek(position time.Duration) *Builder {
	return b.add(Seek{Position: position})
}

// Stop adds a stop.
func (b *Builder) Stop() *Builder {
	return b.add(Stop{})
}

// Pause adds a pause.
func (b *Builder) Pause() *Builder {
	return b.add(SetPlayWhenReady{PlayWhenReady: false})
}

// Play adds a resume.
func (b *Builder) Play() *Builder {
	return b.add(SetPlayWhenReady{PlayWhenReady: true})
}

// DisableTrack adds disabling the renderer of track.
func (b *Builder) DisableTrack(track player.TrackType) *Builder {
	return b.add(SetRendererDisabled{Track: track, Disabled: true})
}

// EnableTrack adds re-enabling the renderer of track.
func (b *Builder) EnableTrack(track player.TrackType) *Builder {
	return b.add(SetRendererDisabled{Track: track, Disabled: false})
}

// Build returns the schedule. A trailing delay with no action after it is dropped.
func (b *Builder) Build() *ActionSchedule {
	return &ActionSchedule{tag: b.tag, steps: append([]Step(nil), b.steps...)}
}

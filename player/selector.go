package player

import (
	"fmt"
	"sync"
)

// SelectionPolicy decides which renderers a session starts with.
type SelectionPolicy struct {
	// Disabled lists the track types whose renderers start disabled.
	Disabled []TrackType
}

// DefaultSelectionPolicy enables every renderer.
func DefaultSelectionPolicy() SelectionPolicy {
	return SelectionPolicy{}
}

// TrackSelector applies a selection policy to a player and lets schedules toggle
// renderers afterwards.
type TrackSelector struct {
	policy SelectionPolicy

	mu       sync.Mutex
	player   Player
	disabled map[TrackType]bool
}

// NewTrackSelector returns a selector applying policy once bound.
func NewTrackSelector(policy SelectionPolicy) *TrackSelector {
	return &TrackSelector{
		policy:   policy,
		disabled: make(map[TrackType]bool),
	}
}

// Policy returns the selection policy.
func (s *TrackSelector) Policy() SelectionPolicy {
	return s.policy
}

// Bind attaches the selector to p and applies the policy.
func (s *TrackSelector) Bind(p Player) error {
	s.mu.Lock()
	s.player = p
	s.mu.Unlock()

	for _, t := range s.policy.Disabled {
		if err := s.SetRendererDisabled(t, true); err != nil {
			return err
		}
	}
	return nil
}

// SetRendererDisabled disables or re-enables the renderer of a track type.
func (s *TrackSelector) SetRendererDisabled(t TrackType, disabled bool) error {
	s.mu.Lock()
	p := s.player
	s.mu.Unlock()

	if p == nil {
		return fmt.Errorf("track selector: not bound to a player")
	}
	if err := p.SetTrackEnabled(t, !disabled); err != nil {
		return fmt.Errorf("set %s renderer disabled=%t: %w", t, disabled, err)
	}

	s.mu.Lock()
	s.disabled[t] = disabled
	s.mu.Unlock()
	return nil
}

// RendererDisabled reports whether the renderer of t was disabled through the selector.
func (s *TrackSelector) RendererDisabled(t TrackType) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.disabled[t]
}

package session

import (
	"errors"
	"fmt"
)

// ErrPlayerFatal is matched by every error raised because the player failed.
var ErrPlayerFatal = errors.New("player fatal error")

// FatalError reports that the player failed during the session.
type FatalError struct {
	Tag string
	Err error
}

func (e *FatalError) Error() string {
	return fmt.Sprintf("%s: %v: %v", e.Tag, ErrPlayerFatal, e.Err)
}

func (e *FatalError) Unwrap() []error {
	return []error{ErrPlayerFatal, e.Err}
}

// AssertionError reports a failed check with the measured and expected values.
type AssertionError struct {
	What     string
	Measured interface{}
	Expected interface{}
	Message  string
}

func (e *AssertionError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("%s: measured %v, expected %v", e.What, e.Measured, e.Expected)
}

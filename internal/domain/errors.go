// Package domain contains the core entities of the Tempo interval timer:
// the phase/timer state, the transition and streak rules, and the settings
// snapshot. These are independent of any external frameworks or
// infrastructure.
package domain

import "errors"

// Common domain errors.
var (
	ErrInvalidState    = errors.New("timer state violates invariant")
	ErrUnexpectedPhase = errors.New("unexpected phase in transition")
)

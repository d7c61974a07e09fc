package node

import (
	pkgerrors "github.com/guijs/guijs-desktop/pkg/errors"
)

// State is the readiness state of a launched server
type State int

const (
	// StateWaitingForReady means no output has been seen yet
	StateWaitingForReady State = iota
	// StateReady means the first line arrived and the host was notified
	StateReady
)

// String returns the state name
func (s State) String() string {
	switch s {
	case StateWaitingForReady:
		return "waiting-for-ready"
	case StateReady:
		return "ready"
	default:
		return "unknown"
	}
}

// Notifier is told once that the server is ready. The host shell implements
// it by dismissing the splash screen.
type Notifier interface {
	CloseSplash() error
}

// Readiness is the one-shot ready flag of a single launch.
// It is owned by the goroutine reading the server output.
type Readiness struct {
	state    State
	notifier Notifier
}

// NewReadiness returns a Readiness in StateWaitingForReady
func NewReadiness(notifier Notifier) *Readiness {
	return &Readiness{notifier: notifier}
}

// State returns the current state
func (r *Readiness) State() State {
	return r.state
}

// Observe records a line of output. The first call moves to StateReady and
// notifies; later calls do nothing. It reports whether this call fired.
func (r *Readiness) Observe() (bool, error) {
	if r.state == StateReady {
		return false, nil
	}
	r.state = StateReady

	if err := r.notifier.CloseSplash(); err != nil {
		return true, pkgerrors.WrapWithCode(err, pkgerrors.ErrorCodeNotifyFailed, "failed to close splash screen")
	}
	return true, nil
}

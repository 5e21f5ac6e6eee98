package linesim

import (
	"errors"
	"fmt"
)

// Standard errors.
var (
	// ErrInputShape is returned by NewTopology when the supplied Config is
	// malformed: parameter vectors of differing lengths, a non-positive N
	// or Lambda, or a non-positive buffer capacity. The simulation never
	// starts when this error is returned.
	ErrInputShape = errors.New("linesim: invalid input shape")

	// ErrInvalidTransition indicates a node was handed an event it cannot
	// handle in its current state: a station receiving triggerMaintenance
	// outside Up, Failed, or Blocked, fail outside Up, repair outside Failed,
	// maintComplete outside Maintenance, or an unknown kind; or a Source or
	// Sink receiving a kind it does not accept. This is a programming fault in the caller wiring
	// events onto the scheduler, not a data problem; it is surfaced with a
	// state dump rather than silently ignored.
	ErrInvalidTransition = errors.New("linesim: invalid station state transition")
)

// InvalidTransitionError carries a state dump alongside ErrInvalidTransition,
// per the error taxonomy in §7: "surface as a hard failure with state dump".
type InvalidTransitionError struct {
	Station string
	State   StationState
	Event   EventKind
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("linesim: station %q received %s while in state %s", e.Station, e.Event, e.State)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

func inputShapeErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInputShape, fmt.Sprintf(format, args...))
}

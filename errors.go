package pe200

import "errors"

var (
	// ErrBadCmd is returned when the pump answers 9: the command is not
	// valid for its current run state.
	ErrBadCmd = errors.New("invalid command for current pump state")

	// ErrBadParam is returned when the pump answers 3 to anything other
	// than a telemetry query: a command argument was rejected.
	ErrBadParam = errors.New("invalid parameter")

	// ErrMethod is returned before any transmission when a caller
	// supplies more than MaxSteps steps.
	ErrMethod = errors.New("method exceeds 10 steps")

	// ErrFatalReset is returned when the reset sequence itself fails.
	// The pump needs a physical power cycle before it will talk again.
	ErrFatalReset = errors.New("reset failed, power cycle the pump")
)

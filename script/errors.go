package script

import (
	"errors"
	"fmt"
)

var (
	// ErrUsage reports a wrong number or format of arguments.
	ErrUsage = errors.New("usage")
	// ErrRange reports a number outside the accepted range.
	ErrRange = errors.New("out of range")
	// ErrHandle reports an unknown handle or one of the wrong kind.
	ErrHandle = errors.New("bad handle")
	// ErrScript marks failures inside bound code or startup scripts. They
	// are fatal to the game loop.
	ErrScript = errors.New("script error")
)

// CommandError is returned by Exec for a failed command.
type CommandError struct {
	Cmd string
	Err error
}

func (e *CommandError) Error() string { return e.Cmd + ": " + e.Err.Error() }

func (e *CommandError) Unwrap() error { return e.Err }

func usagef(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrUsage}, args...)...)
}

package gobblet

import (
	"errors"
	"fmt"
)

// ErrNoSuchPiece is returned by a Dugout asked to consume a size it does
// not know or a stack it has already exhausted.
var ErrNoSuchPiece = errors.New("no such piece")

// ErrOutOfRange is returned for board coordinates outside [0, N).
var ErrOutOfRange = errors.New("out of range")

// InvalidMoveError rejects a proposed move. Reason is human readable and
// stable enough for callers to match on.
type InvalidMoveError struct {
	Reason string
}

func (e *InvalidMoveError) Error() string {
	return fmt.Sprintf("invalid move: %s", e.Reason)
}

func invalidMove(format string, args ...interface{}) error {
	return &InvalidMoveError{Reason: fmt.Sprintf(format, args...)}
}

// IsInvalidMove reports whether err is a move rejection, as opposed to a
// programming or storage error.
func IsInvalidMove(err error) bool {
	var ime *InvalidMoveError
	return errors.As(err, &ime)
}

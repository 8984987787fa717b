package chess

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedMove is returned when move notation cannot be parsed
	ErrMalformedMove = errors.New("malformed move")
	// ErrIllegalMove is returned when a parsed move is not legal in the position
	ErrIllegalMove = errors.New("illegal move")
)

// MoveError describes a rejected move attempt
type MoveError struct {
	Notation string
	Err      error
}

func (e *MoveError) Error() string {
	return fmt.Sprintf("%s: %q", e.Err, e.Notation)
}

func (e *MoveError) Unwrap() error {
	return e.Err
}

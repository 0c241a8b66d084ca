package api

import (
	"errors"
	"fmt"
)

// ErrUnavailable matches every failure to obtain a usable answer from the
// backend: transport errors, non-2xx statuses and undecodable bodies.
var ErrUnavailable = errors.New("backend unavailable")

type Error struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *Error) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: unexpected status: %d", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool { return target == ErrUnavailable }

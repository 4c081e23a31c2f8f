package platform

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned (possibly wrapped) when the platform reports that a
// message, channel or interaction webhook no longer exists.
var ErrNotFound = errors.New("platform: not found")

// Error is a rejected platform request. Callers can use errors.As to get at
// the status and code, or IsNotFound to classify it.
type Error struct {
	Op         string
	StatusCode int
	Code       int
	Message    string
	Missing    bool
}

func (e *Error) Error() string {
	return fmt.Sprintf("platform: %s failed (%d/%d): %s", e.Op, e.StatusCode, e.Code, e.Message)
}

// Is makes errors.Is(err, ErrNotFound) true for errors where the target
// of the request was missing.
func (e *Error) Is(target error) bool {
	return target == ErrNotFound && e.Missing
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

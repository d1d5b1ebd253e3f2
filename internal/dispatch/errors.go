package dispatch

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrRequestInFlight is returned by Submit while another request is
	// still current. Submissions are strictly one at a time.
	ErrRequestInFlight = errors.New("another request is already in flight")

	// ErrNoHost is the cause of an UnavailableError when no notifier is set.
	ErrNoHost = errors.New("no host loop attached")

	// ErrNilOperation is returned by Submit when op is nil.
	ErrNilOperation = errors.New("operation is nil")
	// ErrNilRequest is returned by Await when req is nil.
	ErrNilRequest = errors.New("request is nil")
)

// TimeoutError is returned by Await when no result arrived in time. The
// request may still run on the host; its result is then discarded.
type TimeoutError struct {
	RequestID string
	// After is the timeout that elapsed.
	After time.Duration

	// Cause is set when the wait ended because the context was done.
	Cause error
}

func (e *TimeoutError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("request %s: wait ended: %v", e.RequestID, e.Cause)
	}
	return fmt.Sprintf("request %s: no result within %s", e.RequestID, e.After)
}

func (e *TimeoutError) Unwrap() error {
	return e.Cause
}

// Timeout reports true; it lets callers treat this like other timeout errors.
func (e *TimeoutError) Timeout() bool {
	return true
}

// ExecutionError is returned by Await when the operation ran on the host and
// failed.
type ExecutionError struct {
	RequestID string
	Cause     error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("host operation failed: %v", e.Cause)
}

func (e *ExecutionError) Unwrap() error {
	return e.Cause
}

// UnavailableError is returned by Submit when the host loop cannot be woken.
// Nothing was queued.
type UnavailableError struct {
	Cause error
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("host unavailable: %v", e.Cause)
}

func (e *UnavailableError) Unwrap() error {
	return e.Cause
}

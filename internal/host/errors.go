package host

import (
	"errors"
	"fmt"
)

var (
	// ErrHostStopped is returned by Notify after the loop has been stopped.
	ErrHostStopped = errors.New("host loop stopped")

	// ErrHostNotStarted is returned by Notify before the loop is started.
	ErrHostNotStarted = errors.New("host loop not started")
)

// TransactionError is returned when a transaction body failed and the
// document was rolled back.
type TransactionError struct {
	Label string
	Cause error

	// Panicked is set when the body panicked rather than returning an error.
	Panicked bool
}

func (e *TransactionError) Error() string {
	return fmt.Sprintf("transaction %q rolled back: %v", e.Label, e.Cause)
}

func (e *TransactionError) Unwrap() error {
	return e.Cause
}

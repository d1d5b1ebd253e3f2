package resolver

import (
	"context"
	"errors"
	"fmt"

	provider "github.com/Cyclone1070/archpilot/internal/provider/models"
)

// ErrEmptyPrompt is returned when there is no command to resolve.
var ErrEmptyPrompt = errors.New("prompt is empty")

// ErrRefused is the cause of a RemoteError when the model declined to answer.
var ErrRefused = errors.New("model refused the request")

// RemoteError is returned when the remote model could not produce an action.
type RemoteError struct {
	Model string
	Cause error
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("action resolver (%s): %v", e.Model, e.Cause)
}

func (e *RemoteError) Unwrap() error {
	return e.Cause
}

// Timeout reports whether the remote call ran out of time.
func (e *RemoteError) Timeout() bool {
	if errors.Is(e.Cause, context.DeadlineExceeded) {
		return true
	}
	var providerErr *provider.ProviderError
	return errors.As(e.Cause, &providerErr) && providerErr.Timeout()
}

// Retryable reports whether trying the same prompt again may succeed.
func (e *RemoteError) Retryable() bool {
	return provider.IsRetryable(e.Cause)
}

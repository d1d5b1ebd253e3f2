package models

import (
	"context"
	"time"

	"github.com/Cyclone1070/archpilot/internal/action"
	"github.com/Cyclone1070/archpilot/internal/dispatch"
	"github.com/Cyclone1070/archpilot/internal/document"
	"github.com/Cyclone1070/archpilot/internal/host"
)

// Resolver turns a command into an unvalidated action.
type Resolver interface {
	Resolve(ctx context.Context, prompt string, snap document.Snapshot, timeout time.Duration) (action.Raw, error)
}

// Gate admits or rejects a raw action.
type Gate interface {
	Admit(raw action.Raw) (*action.Action, error)
}

// Preparer binds an admitted action to a host operation.
type Preparer interface {
	Prepare(act *action.Action) (dispatch.Operation[host.Host], error)
}

// Executor runs host operations on the host thread and waits for them.
type Executor interface {
	Execute(ctx context.Context, op dispatch.Operation[host.Host], timeout time.Duration, args ...any) (any, error)
}

// ConfirmService decides whether a mutating action may proceed.
// It encapsulates both the session approvals and the user interaction.
type ConfirmService interface {
	Confirm(ctx context.Context, act *action.Action) error
}

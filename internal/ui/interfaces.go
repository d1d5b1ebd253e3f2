package ui

import (
	"context"

	"github.com/Cyclone1070/archpilot/internal/ui/models"
)

// PermissionDecision represents the user's choice for a permission request
type PermissionDecision string

const (
	DecisionAllow       PermissionDecision = "allow"
	DecisionDeny        PermissionDecision = "deny"
	DecisionAllowAlways PermissionDecision = "allow_always"
)

// UserInterface defines the contract for all user interactions.
// It follows a Read/Write pattern for clarity.
//
// Context Usage:
// All methods accept context.Context for cancellation support.
// If the user cancels (Ctrl+C), the context will be cancelled,
// and implementations should return immediately with context.Canceled error.
type UserInterface interface {
	// ReadInput prompts the user for general text input
	ReadInput(ctx context.Context, prompt string) (string, error)

	// ReadPermission asks the user to confirm a document change
	ReadPermission(ctx context.Context, prompt string, preview *models.ActionPreview) (PermissionDecision, error)

	// WriteStatus displays ephemeral status updates (e.g., "Thinking...")
	WriteStatus(phase string, message string)

	// WriteMessage displays a result or error to the user
	WriteMessage(content string)
}

// UICommand is a slash command forwarded to the session.
type UICommand struct {
	Type string
	Args map[string]string
}

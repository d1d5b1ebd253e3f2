package orchestrator

import (
	"context"
	"fmt"
	"sync"

	"github.com/Cyclone1070/archpilot/internal/action"
	"github.com/Cyclone1070/archpilot/internal/orchestrator/models"
	"github.com/Cyclone1070/archpilot/internal/ui"
	uimodels "github.com/Cyclone1070/archpilot/internal/ui/models"
)

// confirmService implements models.ConfirmService
type confirmService struct {
	ui           ui.UserInterface
	mu           sync.RWMutex // Protects sessionAllow
	sessionAllow map[action.Operation]bool
}

// NewConfirmService creates a new ConfirmService instance
func NewConfirmService(userInterface ui.UserInterface) models.ConfirmService {
	return &confirmService{
		ui:           userInterface,
		sessionAllow: make(map[action.Operation]bool),
	}
}

// Confirm asks before any document change. Read-only operations and
// operations the user approved for the session pass without a prompt.
func (c *confirmService) Confirm(ctx context.Context, act *action.Action) error {
	if act.Operation.ReadOnly() {
		return nil
	}

	c.mu.RLock()
	approved := c.sessionAllow[act.Operation]
	c.mu.RUnlock()
	if approved {
		return nil
	}

	prompt := fmt.Sprintf("%s\nApply this change to the document?", act.Summary())
	decision, err := c.ui.ReadPermission(ctx, prompt, previewFor(act))
	if err != nil {
		return fmt.Errorf("failed to get user confirmation: %w", err)
	}

	switch decision {
	case ui.DecisionAllow:
		return nil
	case ui.DecisionDeny:
		return &DeclinedError{Operation: act.Operation}
	case ui.DecisionAllowAlways:
		c.mu.Lock()
		c.sessionAllow[act.Operation] = true
		c.mu.Unlock()
		return nil
	default:
		return fmt.Errorf("invalid permission decision: %s", decision)
	}
}

func previewFor(act *action.Action) *uimodels.ActionPreview {
	return &uimodels.ActionPreview{
		Operation:           string(act.Operation),
		ElementType:         act.Targets.ElementType,
		Scope:               act.Targets.Scope,
		ElementCount:        act.Targets.ElementCount,
		EstimatedDimensions: act.EstimatedDimensionCount,
		EstimatedTags:       act.EstimatedTagCount,
		Parameters:          act.Parameters,
	}
}

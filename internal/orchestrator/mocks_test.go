package orchestrator

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Cyclone1070/archpilot/internal/action"
	"github.com/Cyclone1070/archpilot/internal/document"
	"github.com/Cyclone1070/archpilot/internal/ui"
	uimodels "github.com/Cyclone1070/archpilot/internal/ui/models"
)

// MockUI implements ui.UserInterface for testing
type MockUI struct {
	ReadInputFunc      func(ctx context.Context, prompt string) (string, error)
	ReadPermissionFunc func(ctx context.Context, prompt string, preview *uimodels.ActionPreview) (ui.PermissionDecision, error)

	mu       sync.Mutex
	Messages []string
	Statuses []string
	Prompts  int
}

func (m *MockUI) ReadInput(ctx context.Context, prompt string) (string, error) {
	if m.ReadInputFunc != nil {
		return m.ReadInputFunc(ctx, prompt)
	}
	return "", errors.New("no input")
}

func (m *MockUI) ReadPermission(ctx context.Context, prompt string, preview *uimodels.ActionPreview) (ui.PermissionDecision, error) {
	m.mu.Lock()
	m.Prompts++
	m.mu.Unlock()
	if m.ReadPermissionFunc != nil {
		return m.ReadPermissionFunc(ctx, prompt, preview)
	}
	return ui.DecisionAllow, nil
}

func (m *MockUI) WriteStatus(phase string, message string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Statuses = append(m.Statuses, phase+": "+message)
}

func (m *MockUI) WriteMessage(content string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Messages = append(m.Messages, content)
}

func (m *MockUI) PromptCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Prompts
}

// MockResolver implements models.Resolver for testing
type MockResolver struct {
	ResolveFunc func(ctx context.Context, prompt string, snap document.Snapshot, timeout time.Duration) (action.Raw, error)
}

func (m *MockResolver) Resolve(ctx context.Context, prompt string, snap document.Snapshot, timeout time.Duration) (action.Raw, error) {
	if m.ResolveFunc != nil {
		return m.ResolveFunc(ctx, prompt, snap, timeout)
	}
	return nil, errors.New("not implemented")
}

// replyWith returns a resolver that always answers raw.
func replyWith(raw action.Raw) *MockResolver {
	return &MockResolver{
		ResolveFunc: func(ctx context.Context, prompt string, snap document.Snapshot, timeout time.Duration) (action.Raw, error) {
			return raw, nil
		},
	}
}

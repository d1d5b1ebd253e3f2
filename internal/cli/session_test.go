package cli

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Cyclone1070/archpilot/internal/logging"
	"github.com/Cyclone1070/archpilot/internal/ui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSession(p *MockProvider) (*session, *MockCommandUI) {
	mockUI := newMockCommandUI()
	s := &session{ui: mockUI, logger: logging.Discard(), ready: make(chan struct{})}
	if p != nil {
		s.setProvider(p)
	}
	return s, mockUI
}

func TestHandleCommand_ListModels(t *testing.T) {
	p := &MockProvider{
		Model: "gemini-2.5-flash",
		ListModelsFunc: func(ctx context.Context) ([]string, error) {
			return []string{"gemini-2.5-pro", "gemini-2.5-flash"}, nil
		},
	}
	s, mockUI := newTestSession(p)

	s.handleCommand(context.Background(), ui.UICommand{Type: "list_models"})

	require.Len(t, mockUI.Lists, 1)
	assert.Equal(t, []string{"gemini-2.5-pro", "gemini-2.5-flash"}, mockUI.Lists[0])
}

func TestHandleCommand_ListModelsError(t *testing.T) {
	p := &MockProvider{
		ListModelsFunc: func(ctx context.Context) ([]string, error) {
			return nil, errors.New("quota exceeded")
		},
	}
	s, mockUI := newTestSession(p)

	s.handleCommand(context.Background(), ui.UICommand{Type: "list_models"})

	assert.Empty(t, mockUI.Lists)
	require.Len(t, mockUI.Messages, 1)
	assert.Contains(t, mockUI.Messages[0], "quota exceeded")
}

func TestHandleCommand_SwitchModel(t *testing.T) {
	p := &MockProvider{Model: "gemini-2.5-flash"}
	s, mockUI := newTestSession(p)

	s.handleCommand(context.Background(), ui.UICommand{
		Type: "switch_model",
		Args: map[string]string{"model": "gemini-2.5-pro"},
	})

	assert.Equal(t, "gemini-2.5-pro", p.GetModel())
	assert.Equal(t, []string{"gemini-2.5-pro"}, mockUI.Models)
	assert.Contains(t, mockUI.Messages[0], "Switched to model: gemini-2.5-pro")
}

func TestHandleCommand_SwitchModelError(t *testing.T) {
	p := &MockProvider{
		Model:        "gemini-2.5-flash",
		SetModelFunc: func(string) error { return errors.New("unknown model") },
	}
	s, mockUI := newTestSession(p)

	s.handleCommand(context.Background(), ui.UICommand{
		Type: "switch_model",
		Args: map[string]string{"model": "nope"},
	})

	assert.Empty(t, mockUI.Models)
	assert.Contains(t, mockUI.Messages[0], "Error switching model")
}

func TestHandleCommands_WaitsForProvider(t *testing.T) {
	s, mockUI := newTestSession(nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		s.handleCommands(ctx)
		close(done)
	}()

	mockUI.commands <- ui.UICommand{Type: "list_models"}
	s.setProvider(&MockProvider{Model: "gemini-test"})

	assert.Eventually(t, func() bool {
		mockUI.mu.Lock()
		defer mockUI.mu.Unlock()
		return len(mockUI.Lists) == 1
	}, time.Second, 10*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("handleCommands did not stop after cancellation")
	}
}

package cli

import (
	"context"
	"errors"
	"strings"
	"sync"

	provider "github.com/Cyclone1070/archpilot/internal/provider/models"
	"github.com/Cyclone1070/archpilot/internal/ui"
)

type MockProvider struct {
	GenerateFunc   func(ctx context.Context, req *provider.GenerateRequest) (*provider.GenerateResponse, error)
	ListModelsFunc func(ctx context.Context) ([]string, error)
	SetModelFunc   func(model string) error
	Model          string
}

func (m *MockProvider) Generate(ctx context.Context, req *provider.GenerateRequest) (*provider.GenerateResponse, error) {
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, req)
	}
	return nil, errors.New("GenerateFunc not set")
}

func (m *MockProvider) SetModel(model string) error {
	if m.SetModelFunc != nil {
		return m.SetModelFunc(model)
	}
	m.Model = model
	return nil
}

func (m *MockProvider) GetModel() string {
	return m.Model
}

func (m *MockProvider) ListModels(ctx context.Context) ([]string, error) {
	if m.ListModelsFunc != nil {
		return m.ListModelsFunc(ctx)
	}
	return []string{m.Model}, nil
}

// replies answers with the JSON registered for the first command found in
// the prompt.
func replies(byCommand map[string]string) *MockProvider {
	return &MockProvider{
		Model: "gemini-test",
		GenerateFunc: func(ctx context.Context, req *provider.GenerateRequest) (*provider.GenerateResponse, error) {
			for command, reply := range byCommand {
				if strings.Contains(req.Prompt, "<prompt>\n"+command+"\n</prompt>") {
					return &provider.GenerateResponse{
						Content: provider.ResponseContent{Type: provider.ResponseTypeText, Text: reply},
					}, nil
				}
			}
			return nil, errors.New("unexpected prompt")
		},
	}
}

type MockCommandUI struct {
	mu       sync.Mutex
	commands chan ui.UICommand
	Messages []string
	Lists    [][]string
	Models   []string
}

func newMockCommandUI() *MockCommandUI {
	return &MockCommandUI{commands: make(chan ui.UICommand, 1)}
}

func (m *MockCommandUI) Commands() <-chan ui.UICommand {
	return m.commands
}

func (m *MockCommandUI) WriteModelList(models []string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Lists = append(m.Lists, models)
}

func (m *MockCommandUI) SetModel(model string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Models = append(m.Models, model)
}

func (m *MockCommandUI) WriteMessage(content string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Messages = append(m.Messages, content)
}

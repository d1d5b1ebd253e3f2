package models

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
)

// Message is one entry in the chat history.
type Message struct {
	Role    string // "user" or "assistant"
	Content string
}

// ActionPreview describes a pending document change for a confirmation
// prompt.
type ActionPreview struct {
	Operation   string
	ElementType string
	Scope       string

	ElementCount        int
	EstimatedDimensions int
	EstimatedTags       int

	Parameters map[string]any
}

// PermissionRequest is a confirmation waiting for a y/n/a key.
type PermissionRequest struct {
	Prompt  string
	Preview *ActionPreview
}

// State is everything the views need to render a frame.
type State struct {
	Width  int
	Height int

	Input    textinput.Model
	Viewport viewport.Model
	Spinner  spinner.Model

	Messages  []Message
	CanSubmit bool

	PendingPermission *PermissionRequest

	StatusPhase   string
	StatusMessage string
	DotCount      int

	CurrentModel string

	ShowModelList  bool
	ModelList      []string
	ModelListIndex int
}

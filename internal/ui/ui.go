package ui

import (
	"context"
	"sync"

	"github.com/Cyclone1070/archpilot/internal/host"
	"github.com/Cyclone1070/archpilot/internal/ui/models"
	"github.com/Cyclone1070/archpilot/internal/ui/services"
	tea "github.com/charmbracelet/bubbletea"
)

// HostPump runs whatever host work is pending. The UI calls it on the Bubble
// Tea event goroutine, which is the session's host thread.
type HostPump func()

// UI implements the UserInterface using Bubble Tea
type UI struct {
	program *tea.Program

	// Orchestrator -> UI channels
	inputReq      chan inputRequest
	inputResp     chan string
	permReq       chan permRequest
	permResp      chan PermissionDecision
	statusChan    chan statusMsg
	messageChan   chan string
	modelListChan chan []string
	setModelChan  chan string

	// UI -> Orchestrator
	commandChan chan UICommand

	// Ready signal, closed by Init
	readyChan chan struct{}

	exitOnce sync.Once
	exited   chan struct{}
}

// Internal message types
type inputRequest struct {
	Prompt string
}

type permRequest struct {
	Prompt  string
	Preview *models.ActionPreview
}

type statusMsg struct {
	Phase   string
	Message string
}

// UIChannels holds the channels for UI communication
type UIChannels struct {
	InputReq      chan inputRequest
	InputResp     chan string
	PermReq       chan permRequest
	PermResp      chan PermissionDecision
	StatusChan    chan statusMsg
	MessageChan   chan string
	ModelListChan chan []string
	SetModelChan  chan string
	CommandChan   chan UICommand
	ReadyChan     chan struct{} // Signals when UI is ready to accept requests
}

// NewUIChannels creates a new UIChannels struct with default buffers
func NewUIChannels() *UIChannels {
	return &UIChannels{
		InputReq:      make(chan inputRequest),
		InputResp:     make(chan string),
		PermReq:       make(chan permRequest),
		PermResp:      make(chan PermissionDecision),
		StatusChan:    make(chan statusMsg, 10),
		MessageChan:   make(chan string, 10),
		ModelListChan: make(chan []string),
		SetModelChan:  make(chan string, 1),
		CommandChan:   make(chan UICommand, 10),
		ReadyChan:     make(chan struct{}),
	}
}

// NewUI creates a new Bubble Tea UI. pump may be nil when no host work is
// routed through the UI.
func NewUI(
	channels *UIChannels,
	renderer services.MarkdownRenderer,
	spinnerFactory SpinnerFactory,
	pump HostPump,
) *UI {
	ui := &UI{
		inputReq:      channels.InputReq,
		inputResp:     channels.InputResp,
		permReq:       channels.PermReq,
		permResp:      channels.PermResp,
		statusChan:    channels.StatusChan,
		messageChan:   channels.MessageChan,
		modelListChan: channels.ModelListChan,
		setModelChan:  channels.SetModelChan,
		commandChan:   channels.CommandChan,
		readyChan:     channels.ReadyChan,
		exited:        make(chan struct{}),
	}

	model := newBubbleTeaModel(
		ui.inputReq,
		ui.inputResp,
		ui.permReq,
		ui.permResp,
		ui.statusChan,
		ui.messageChan,
		ui.modelListChan,
		ui.setModelChan,
		ui.commandChan,
		ui.readyChan,
		renderer,
		spinnerFactory,
		pump,
	)

	ui.program = tea.NewProgram(model, tea.WithAltScreen())

	return ui
}

// Start runs the UI program and blocks until it exits
func (u *UI) Start() error {
	defer u.exitOnce.Do(func() { close(u.exited) })
	_, err := u.program.Run()
	return err
}

// Notify wakes the host thread. It never blocks: the wake-up is delivered
// to the event loop from its own goroutine.
func (u *UI) Notify() error {
	select {
	case <-u.exited:
		return host.ErrHostStopped
	default:
	}
	select {
	case <-u.readyChan:
	default:
		return host.ErrHostNotStarted
	}

	go u.program.Send(hostWakeMsg{})
	return nil
}

// Quit asks the program to exit.
func (u *UI) Quit() {
	u.program.Quit()
}

// Done is closed once the program has exited.
func (u *UI) Done() <-chan struct{} {
	return u.exited
}

// ReadInput prompts the user for input
func (u *UI) ReadInput(ctx context.Context, prompt string) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case u.inputReq <- inputRequest{Prompt: prompt}:
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case response := <-u.inputResp:
			return response, nil
		}
	}
}

// ReadPermission asks the user to confirm a document change
func (u *UI) ReadPermission(ctx context.Context, prompt string, preview *models.ActionPreview) (PermissionDecision, error) {
	select {
	case <-ctx.Done():
		return DecisionDeny, ctx.Err()
	case u.permReq <- permRequest{Prompt: prompt, Preview: preview}:
		select {
		case <-ctx.Done():
			return DecisionDeny, ctx.Err()
		case decision := <-u.permResp:
			return decision, nil
		}
	}
}

// WriteStatus updates the status bar
func (u *UI) WriteStatus(phase string, message string) {
	select {
	case u.statusChan <- statusMsg{Phase: phase, Message: message}:
	default:
		// Drop if channel is full
	}
}

// WriteMessage sends a message to the UI
func (u *UI) WriteMessage(content string) {
	select {
	case u.messageChan <- content:
	default:
		// Drop if channel is full
	}
}

// WriteModelList sends a list of models to the UI
func (u *UI) WriteModelList(models []string) {
	select {
	case u.modelListChan <- models:
	default:
		// Drop if channel is full
	}
}

// SetModel shows the active model in the status bar
func (u *UI) SetModel(model string) {
	select {
	case u.setModelChan <- model:
	default:
	}
}

// Commands returns the command channel
func (u *UI) Commands() <-chan UICommand {
	return u.commandChan
}

// Ready returns a channel that is closed when the UI is ready to accept requests
func (u *UI) Ready() <-chan struct{} {
	return u.readyChan
}

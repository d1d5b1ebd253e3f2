package ui

import (
	"strings"
	"time"

	"github.com/Cyclone1070/archpilot/internal/ui/models"
	"github.com/Cyclone1070/archpilot/internal/ui/services"
	"github.com/Cyclone1070/archpilot/internal/ui/views"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

const helpText = `Describe an annotation task in plain language, for example:

- dimension all rooms on Level 1
- tag every door in this view
- how many windows are on Level 2?

Commands:
- /models - List and switch models
- /help - Show this help`

// BubbleTeaModel implements tea.Model
type BubbleTeaModel struct {
	state models.State

	// Dependencies
	renderer services.MarkdownRenderer
	pump     HostPump

	// Channels for communication with orchestrator
	inputReq      <-chan inputRequest
	inputResp     chan<- string
	permReq       <-chan permRequest
	permResp      chan<- PermissionDecision
	statusChan    <-chan statusMsg
	messageChan   <-chan string
	modelListChan <-chan []string
	setModelChan  <-chan string

	// UI -> Orchestrator
	commandChan chan<- UICommand

	// Ready signal
	readyChan chan<- struct{}
}

// View renders the UI
func (m BubbleTeaModel) View() string {
	return views.RenderRoot(m.state)
}

// SpinnerFactory creates a new spinner
type SpinnerFactory func() spinner.Model

// newBubbleTeaModel creates a new Bubble Tea model
func newBubbleTeaModel(
	inputReq <-chan inputRequest,
	inputResp chan<- string,
	permReq <-chan permRequest,
	permResp chan<- PermissionDecision,
	statusChan <-chan statusMsg,
	messageChan <-chan string,
	modelListChan <-chan []string,
	setModelChan <-chan string,
	commandChan chan<- UICommand,
	readyChan chan<- struct{},
	renderer services.MarkdownRenderer,
	spinnerFactory SpinnerFactory,
	pump HostPump,
) BubbleTeaModel {
	ti := textinput.New()
	ti.Placeholder = "e.g. dimension all rooms on Level 1"
	ti.Focus()

	vp := viewport.New(80, 20)

	return BubbleTeaModel{
		state: models.State{
			Input:    ti,
			Viewport: vp,
			Spinner:  spinnerFactory(),
			Messages: []models.Message{},
		},
		renderer:      renderer,
		pump:          pump,
		inputReq:      inputReq,
		inputResp:     inputResp,
		permReq:       permReq,
		permResp:      permResp,
		statusChan:    statusChan,
		messageChan:   messageChan,
		modelListChan: modelListChan,
		setModelChan:  setModelChan,
		commandChan:   commandChan,
		readyChan:     readyChan,
	}
}

// Internal messages
type tickMsg time.Time
type hostWakeMsg struct{}
type inputRequestMsg inputRequest
type permRequestMsg permRequest
type statusUpdateMsg statusMsg
type messageReceivedMsg string
type modelListReceivedMsg []string
type modelChangedMsg string

// Init initializes the model
func (m BubbleTeaModel) Init() tea.Cmd {
	// Signal that UI is ready
	if m.readyChan != nil {
		close(m.readyChan)
	}

	return tea.Batch(
		textinput.Blink,
		m.state.Spinner.Tick,
		tick(),
		listenForInputRequests(m.inputReq),
		listenForPermRequests(m.permReq),
		listenForStatus(m.statusChan),
		listenForMessages(m.messageChan),
		listenForModelList(m.modelListChan),
		listenForModelChange(m.setModelChan),
	)
}

// Update handles messages
func (m BubbleTeaModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case hostWakeMsg:
		// Host work runs here, between frames, never concurrently with
		// another Update.
		if m.pump != nil {
			m.pump()
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.state.Width = msg.Width
		m.state.Height = msg.Height
		m.state.Viewport.Width = msg.Width
		m.state.Viewport.Height = msg.Height - 6 // Reserve space for input and status
		m.updateViewport()

	case tickMsg:
		m.state.DotCount = (m.state.DotCount + 1) % 4
		return m, tick()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.state.Spinner, cmd = m.state.Spinner.Update(msg)
		return m, cmd

	case inputRequestMsg:
		m.state.CanSubmit = true
		return m, listenForInputRequests(m.inputReq)

	case permRequestMsg:
		m.state.PendingPermission = &models.PermissionRequest{
			Prompt:  msg.Prompt,
			Preview: msg.Preview,
		}
		return m, listenForPermRequests(m.permReq)

	case statusUpdateMsg:
		m.state.StatusPhase = msg.Phase
		m.state.StatusMessage = msg.Message
		return m, listenForStatus(m.statusChan)

	case messageReceivedMsg:
		m.state.Messages = append(m.state.Messages, models.Message{
			Role:    "assistant",
			Content: string(msg),
		})
		m.updateViewport()
		return m, listenForMessages(m.messageChan)

	case modelListReceivedMsg:
		m.state.ModelList = []string(msg)
		m.state.ShowModelList = true
		m.state.ModelListIndex = 0
		return m, listenForModelList(m.modelListChan)

	case modelChangedMsg:
		m.state.CurrentModel = string(msg)
		return m, listenForModelChange(m.setModelChan)
	}

	var cmd tea.Cmd
	m.state.Input, cmd = m.state.Input.Update(msg)
	return m, cmd
}

// handleKeyPress handles keyboard input
func (m BubbleTeaModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	// Handle model popup navigation
	if m.state.ShowModelList {
		switch msg.String() {
		case "up", "k":
			if m.state.ModelListIndex > 0 {
				m.state.ModelListIndex--
			}
		case "down", "j":
			if m.state.ModelListIndex < len(m.state.ModelList)-1 {
				m.state.ModelListIndex++
			}
		case "enter":
			if m.state.ModelListIndex < len(m.state.ModelList) {
				m.sendCommand(UICommand{
					Type: "switch_model",
					Args: map[string]string{
						"model": m.state.ModelList[m.state.ModelListIndex],
					},
				})
			}
			m.state.ShowModelList = false
		case "esc":
			m.state.ShowModelList = false
		}
		return m, nil
	}

	// Handle confirmation prompts
	if m.state.PendingPermission != nil {
		var decision PermissionDecision
		switch msg.String() {
		case "y":
			decision = DecisionAllow
		case "n", "esc":
			decision = DecisionDeny
		case "a":
			decision = DecisionAllowAlways
		default:
			return m, nil
		}
		m.state.PendingPermission = nil
		return m, respondPermission(m.permResp, decision)
	}

	if msg.Type == tea.KeyEnter {
		input := strings.TrimSpace(m.state.Input.Value())
		if input == "" {
			return m, nil
		}
		if strings.HasPrefix(input, "/") {
			return m.handleCommand(input)
		}
		if !m.state.CanSubmit {
			return m, nil
		}

		m.state.Messages = append(m.state.Messages, models.Message{
			Role:    "user",
			Content: input,
		})
		m.updateViewport()

		m.state.Input.SetValue("")
		m.state.CanSubmit = false
		return m, submitInput(m.inputResp, input)
	}

	var cmd tea.Cmd
	m.state.Input, cmd = m.state.Input.Update(msg)
	return m, cmd
}

// handleCommand handles slash commands
func (m BubbleTeaModel) handleCommand(input string) (tea.Model, tea.Cmd) {
	parts := strings.Fields(input)
	m.state.Input.SetValue("")

	switch parts[0] {
	case "/models":
		m.sendCommand(UICommand{Type: "list_models"})
	case "/help":
		m.state.Messages = append(m.state.Messages, models.Message{
			Role:    "assistant",
			Content: helpText,
		})
		m.updateViewport()
	}

	return m, nil
}

func (m BubbleTeaModel) sendCommand(cmd UICommand) {
	select {
	case m.commandChan <- cmd:
	default:
		// Drop if the session is not keeping up
	}
}

// updateViewport updates the viewport content
func (m *BubbleTeaModel) updateViewport() {
	content := views.FormatChatContent(m.state.Messages, m.state.Width-4, m.renderer)
	m.state.Viewport.SetContent(content)
	m.state.Viewport.GotoBottom()
}

// The orchestrator may be busy when a reply is ready, so replies are sent
// from a command rather than from Update itself.
func submitInput(ch chan<- string, input string) tea.Cmd {
	return func() tea.Msg {
		ch <- input
		return nil
	}
}

func respondPermission(ch chan<- PermissionDecision, decision PermissionDecision) tea.Cmd {
	return func() tea.Msg {
		ch <- decision
		return nil
	}
}

// Helper commands for listening to channels
func listenForInputRequests(ch <-chan inputRequest) tea.Cmd {
	return func() tea.Msg {
		return inputRequestMsg(<-ch)
	}
}

func listenForPermRequests(ch <-chan permRequest) tea.Cmd {
	return func() tea.Msg {
		return permRequestMsg(<-ch)
	}
}

func listenForStatus(ch <-chan statusMsg) tea.Cmd {
	return func() tea.Msg {
		return statusUpdateMsg(<-ch)
	}
}

func listenForMessages(ch <-chan string) tea.Cmd {
	return func() tea.Msg {
		return messageReceivedMsg(<-ch)
	}
}

func listenForModelList(ch <-chan []string) tea.Cmd {
	return func() tea.Msg {
		return modelListReceivedMsg(<-ch)
	}
}

func listenForModelChange(ch <-chan string) tea.Cmd {
	return func() tea.Msg {
		return modelChangedMsg(<-ch)
	}
}

func tick() tea.Cmd {
	return tea.Tick(300*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

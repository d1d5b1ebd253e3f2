package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Cyclone1070/archpilot/internal/action"
	"github.com/Cyclone1070/archpilot/internal/config"
	"github.com/Cyclone1070/archpilot/internal/document"
	"github.com/Cyclone1070/archpilot/internal/operation"
	"github.com/Cyclone1070/archpilot/internal/orchestrator/models"
	"github.com/Cyclone1070/archpilot/internal/safety"
	"github.com/Cyclone1070/archpilot/internal/ui"
)

// Settings are the per-session values the pipeline needs.
type Settings struct {
	Standards       document.FirmStandards
	ResolveTimeout  time.Duration
	DispatchTimeout time.Duration
}

// SettingsFromConfig extracts Settings from the loaded configuration.
func SettingsFromConfig(cfg *config.Config) Settings {
	return Settings{
		Standards:       cfg.FirmStandards,
		ResolveTimeout:  cfg.ResolveTimeout(),
		DispatchTimeout: cfg.DispatchTimeout(),
	}
}

// Orchestrator takes one command at a time through snapshot, resolve, admit,
// confirm and execute.
type Orchestrator struct {
	settings Settings
	resolver models.Resolver
	gate     models.Gate
	handlers models.Preparer
	executor models.Executor
	confirm  models.ConfirmService
	ui       ui.UserInterface
	logger   *slog.Logger
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) {
		o.logger = logger
	}
}

// New creates a new Orchestrator instance
func New(
	settings Settings,
	r models.Resolver,
	g models.Gate,
	handlers models.Preparer,
	exec models.Executor,
	confirm models.ConfirmService,
	userInterface ui.UserInterface,
	opts ...Option,
) *Orchestrator {
	o := &Orchestrator{
		settings: settings,
		resolver: r,
		gate:     g,
		handlers: handlers,
		executor: exec,
		confirm:  confirm,
		ui:       userInterface,
		logger:   slog.Default().With("component", "orchestrator"),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Run processes one command. The returned outcome is never nil and records
// how far the command got.
func (o *Orchestrator) Run(ctx context.Context, command string) (*models.Outcome, error) {
	command = strings.TrimSpace(command)
	outcome := &models.Outcome{Command: command}
	if command == "" {
		return outcome, ErrEmptyCommand
	}

	o.ui.WriteStatus("thinking", "Reading project context")
	snap, err := o.snapshot(ctx)
	if err != nil {
		return outcome, fmt.Errorf("reading project context: %w", err)
	}

	o.ui.WriteStatus("thinking", "Interpreting command")
	raw, err := o.resolver.Resolve(ctx, command, snap, o.settings.ResolveTimeout)
	if err != nil {
		return outcome, err
	}

	act, err := o.gate.Admit(raw)
	if err != nil {
		var structural *safety.StructuralError
		if errors.As(err, &structural) {
			if questions := clarificationsOf(raw); len(questions) > 0 {
				return o.clarify(outcome, questions), nil
			}
		}
		o.logger.Info("action rejected", "command", command, "error", err)
		return outcome, err
	}
	outcome.Action = act

	if act.NeedsClarification() {
		return o.clarify(outcome, act.Clarifications), nil
	}

	if err := o.confirm.Confirm(ctx, act); err != nil {
		return outcome, err
	}

	op, err := o.handlers.Prepare(act)
	if err != nil {
		return outcome, err
	}

	o.ui.WriteStatus("executing", act.Summary())
	value, err := o.executor.Execute(ctx, op, o.settings.DispatchTimeout)
	if err != nil {
		o.logger.Warn("execution failed", "action", act.Summary(), "error", err)
		return outcome, err
	}

	result, ok := value.(*operation.Result)
	if !ok {
		return outcome, &UnexpectedResultError{Stage: string(act.Operation), Value: value}
	}
	outcome.Result = result

	o.logger.Info("command executed", "action", act.Summary(), "created", result.Created, "matched", result.Matched)
	o.ui.WriteMessage(FormatOutcome(outcome))
	o.ui.WriteStatus("done", result.Message())
	return outcome, nil
}

// Serve reads commands until the context ends or input fails.
func (o *Orchestrator) Serve(ctx context.Context) error {
	o.ui.WriteStatus("ready", "Ready")
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		command, err := o.ui.ReadInput(ctx, "What would you like to do?")
		if err != nil {
			return err
		}
		if strings.TrimSpace(command) == "" {
			continue
		}

		if _, err := o.Run(ctx, command); err != nil {
			o.ui.WriteMessage(FormatError(err))
			o.ui.WriteStatus("error", "Command failed")
			continue
		}
		o.ui.WriteStatus("ready", "Ready")
	}
}

func (o *Orchestrator) snapshot(ctx context.Context) (document.Snapshot, error) {
	value, err := o.executor.Execute(ctx, operation.Snapshot(o.settings.Standards), o.settings.DispatchTimeout)
	if err != nil {
		return document.Snapshot{}, err
	}
	snap, ok := value.(document.Snapshot)
	if !ok {
		return document.Snapshot{}, &UnexpectedResultError{Stage: "snapshot", Value: value}
	}
	return snap, nil
}

func (o *Orchestrator) clarify(outcome *models.Outcome, questions []string) *models.Outcome {
	outcome.Clarifications = questions
	o.ui.WriteMessage(FormatOutcome(outcome))
	o.ui.WriteStatus("ready", "Waiting for clarification")
	return outcome
}

// clarificationsOf reads questions from a reply the gate could not decode.
func clarificationsOf(raw action.Raw) []string {
	var items []any
	switch v := raw["clarifications"].(type) {
	case []any:
		items = v
	case []string:
		for _, q := range v {
			items = append(items, q)
		}
	}

	var questions []string
	for _, item := range items {
		if q, ok := item.(string); ok && strings.TrimSpace(q) != "" {
			questions = append(questions, q)
		}
	}
	return questions
}

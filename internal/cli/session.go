package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/Cyclone1070/archpilot/internal/config"
	"github.com/Cyclone1070/archpilot/internal/dispatch"
	"github.com/Cyclone1070/archpilot/internal/document"
	"github.com/Cyclone1070/archpilot/internal/host"
	"github.com/Cyclone1070/archpilot/internal/logging"
	provider "github.com/Cyclone1070/archpilot/internal/provider/models"
	"github.com/Cyclone1070/archpilot/internal/secrets"
	"github.com/Cyclone1070/archpilot/internal/ui"
	"github.com/Cyclone1070/archpilot/internal/ui/services"
)

func init() {
	rootCmd.AddCommand(runCmd)
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start an interactive session",
	Long: "Opens the terminal session on the demo document. The session's event loop\n" +
		"is the document's host thread: every change is made there, inside a\n" +
		"transaction, after you confirm it.",
	RunE: runSession,
}

// sessionLogger keeps stderr free while the TUI owns the terminal: without a
// log file the session logs nowhere.
func sessionLogger(cfg config.LoggingConfig) (*slog.Logger, io.Closer, error) {
	if cfg.File == "" {
		return logging.Discard(), io.NopCloser(nil), nil
	}
	return logging.New(cfg)
}

func runSession(cmd *cobra.Command, args []string) error {
	cfg, cfgPath, err := loadConfig()
	if err != nil {
		return err
	}
	logger, closer, err := sessionLogger(cfg.Logging)
	if err != nil {
		return err
	}
	defer closer.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return runInteractive(ctx, cfg, credentialStore(cfgPath), logger)
}

func runInteractive(ctx context.Context, cfg *config.Config, store secrets.Store, logger *slog.Logger) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	docHost := host.NewDocumentHost(document.Demo(), host.WithLogger(logger.With("component", "host")))

	// The UI is both the dispatcher's notifier and the goroutine that drains
	// it, so the dispatcher is bound after the UI exists.
	var dispatcher *dispatch.Dispatcher[host.Host]
	pump := func() {
		dispatcher.RunPending(docHost)
	}
	tui := ui.NewUI(ui.NewUIChannels(), services.NewGlamourRenderer(), func() spinner.Model {
		return spinner.New(spinner.WithSpinner(spinner.Dot))
	}, pump)
	dispatcher = dispatch.New[host.Host](tui, dispatch.WithLogger(logger.With("component", "dispatch")))

	s := &session{ui: tui, logger: logger, ready: make(chan struct{})}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		select {
		case <-tui.Ready():
		case <-gctx.Done():
			return nil
		}

		tui.WriteStatus("thinking", "Connecting to model...")
		p, err := providerFactory(gctx, cfg, store)
		if err != nil {
			// The UI keeps running so the error stays readable.
			tui.WriteStatus("error", "Model unavailable")
			tui.WriteMessage(fmt.Sprintf("Error: %v\n\nPress Ctrl+C to exit.", err))
			return nil
		}
		s.setProvider(p)
		tui.SetModel(p.GetModel())

		orch, err := newOrchestrator(cfg, p, dispatcher, tui, logger)
		if err != nil {
			tui.WriteStatus("error", "Initialization failed")
			tui.WriteMessage(fmt.Sprintf("Error: %v", err))
			return nil
		}

		if err := orch.Serve(gctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		s.handleCommands(gctx)
		return nil
	})

	uiErr := tui.Start()
	cancel()

	if err := g.Wait(); err != nil {
		logger.Error("session ended with error", "error", err)
	}
	if uiErr != nil {
		return fmt.Errorf("running UI: %w", uiErr)
	}
	return nil
}

// commandUI is the part of the UI the slash-command handler uses.
type commandUI interface {
	Commands() <-chan ui.UICommand
	WriteModelList(models []string)
	SetModel(model string)
	WriteMessage(content string)
}

// session holds the state shared by the pipeline and the slash commands.
type session struct {
	ui     commandUI
	logger *slog.Logger

	provider provider.Provider
	ready    chan struct{}
}

// setProvider publishes p to the command handler. It must be called once.
func (s *session) setProvider(p provider.Provider) {
	s.provider = p
	close(s.ready)
}

func (s *session) handleCommands(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case cmd := <-s.ui.Commands():
			select {
			case <-s.ready:
			case <-ctx.Done():
				return
			}
			s.handleCommand(ctx, cmd)
		}
	}
}

func (s *session) handleCommand(ctx context.Context, cmd ui.UICommand) {
	switch cmd.Type {
	case "list_models":
		models, err := s.provider.ListModels(ctx)
		if err != nil {
			s.ui.WriteMessage(fmt.Sprintf("Error listing models: %v", err))
			return
		}
		s.ui.WriteModelList(models)
	case "switch_model":
		model := cmd.Args["model"]
		if err := s.provider.SetModel(model); err != nil {
			s.ui.WriteMessage(fmt.Sprintf("Error switching model: %v", err))
			return
		}
		s.logger.Info("model switched", "model", model)
		s.ui.SetModel(model)
		s.ui.WriteMessage(fmt.Sprintf("Switched to model: %s", model))
	default:
		s.logger.Warn("unknown UI command", "type", cmd.Type)
	}
}

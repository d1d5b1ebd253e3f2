package cli

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Cyclone1070/archpilot/internal/config"
	"github.com/Cyclone1070/archpilot/internal/dispatch"
	"github.com/Cyclone1070/archpilot/internal/document"
	"github.com/Cyclone1070/archpilot/internal/host"
	"github.com/Cyclone1070/archpilot/internal/logging"
	"github.com/Cyclone1070/archpilot/internal/orchestrator"
	provider "github.com/Cyclone1070/archpilot/internal/provider/models"
	"github.com/Cyclone1070/archpilot/internal/ui/services"
)

var (
	execYes   bool
	execPlain bool
)

func init() {
	rootCmd.AddCommand(execCmd)
	execCmd.Flags().BoolVarP(&execYes, "yes", "y", false, "Apply changes without asking for confirmation")
	execCmd.Flags().BoolVar(&execPlain, "plain", false, "Print markdown without rendering it")
}

var execCmd = &cobra.Command{
	Use:   "exec [command]",
	Short: "Run commands headlessly against the demo document",
	Long: "Runs a single command against the demo document and prints the result.\n" +
		"With no argument, commands are read from stdin one per line until EOF.\n\n" +
		"A headless host loop stands in for the design application's main thread.",
	Example: `  archpilot exec "dimension all rooms on Level 1" --yes
  printf 'how many doors are there?\n' | archpilot exec`,
	RunE: runExec,
}

func runExec(cmd *cobra.Command, args []string) error {
	cfg, cfgPath, err := loadConfig()
	if err != nil {
		return err
	}
	logger, closer, err := logging.New(cfg.Logging)
	if err != nil {
		return err
	}
	defer closer.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	var renderer services.MarkdownRenderer
	if !execPlain {
		renderer = services.NewGlamourRenderer()
	}
	console := newConsoleUI(cmd.InOrStdin(), cmd.OutOrStdout(), execYes, renderer, logger)

	p, err := providerFactory(ctx, cfg, credentialStore(cfgPath))
	if err != nil {
		return err
	}
	return execute(ctx, cfg, p, console, strings.Join(args, " "), logger)
}

// execute runs command, or every line of the console's input when command
// is empty, on a headless host loop owning the demo document.
func execute(ctx context.Context, cfg *config.Config, p provider.Provider, console *consoleUI, command string, logger *slog.Logger) error {
	docHost := host.NewDocumentHost(document.Demo(), host.WithLogger(logger.With("component", "host")))
	loop := host.NewLoop(docHost, host.WithLogger(logger.With("component", "host-loop")))
	dispatcher := dispatch.New[host.Host](loop, dispatch.WithLogger(logger.With("component", "dispatch")))

	loop.Start(func(h host.Host) {
		dispatcher.RunPending(h)
	})
	defer loop.Stop()

	orch, err := newOrchestrator(cfg, p, dispatcher, console, logger)
	if err != nil {
		return err
	}

	if command == "" {
		if err := orch.Serve(ctx); err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		return nil
	}

	if _, err := orch.Run(ctx, command); err != nil {
		console.WriteMessage(orchestrator.FormatError(err))
		return &reportedError{err: err}
	}
	return nil
}

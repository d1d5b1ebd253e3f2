package cli

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/Cyclone1070/archpilot/internal/config"
	"github.com/Cyclone1070/archpilot/internal/operation"
	"github.com/Cyclone1070/archpilot/internal/orchestrator"
	orchmodels "github.com/Cyclone1070/archpilot/internal/orchestrator/models"
	"github.com/Cyclone1070/archpilot/internal/provider/gemini"
	provider "github.com/Cyclone1070/archpilot/internal/provider/models"
	"github.com/Cyclone1070/archpilot/internal/resolver"
	"github.com/Cyclone1070/archpilot/internal/safety"
	"github.com/Cyclone1070/archpilot/internal/secrets"
	"github.com/Cyclone1070/archpilot/internal/ui"
)

// ProviderFactory builds the remote model client for a session.
type ProviderFactory func(ctx context.Context, cfg *config.Config, store secrets.Store) (provider.Provider, error)

// providerFactory is replaced in tests.
var providerFactory ProviderFactory = newGeminiProvider

func newGeminiProvider(ctx context.Context, cfg *config.Config, store secrets.Store) (provider.Provider, error) {
	key, err := store.APIKey()
	if err != nil {
		return nil, err
	}

	client, err := gemini.NewClient(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	if cfg.API.Model == "" || cfg.API.Model == config.ModelLatest {
		return gemini.NewGeminiProviderWithLatest(ctx, client)
	}
	return gemini.NewGeminiProvider(ctx, client, cfg.API.Model)
}

// loadConfig reads the config named by --config and returns it with its
// resolved path.
func loadConfig() (*config.Config, string, error) {
	loader := config.NewLoader()
	path, err := loader.Path(configPath)
	if err != nil {
		return nil, "", err
	}
	cfg, err := loader.Load(path)
	if err != nil {
		return nil, path, err
	}
	return cfg, path, nil
}

// credentialStore keeps credentials next to the config file.
func credentialStore(cfgPath string) *secrets.FileStore {
	return secrets.NewFileStore(filepath.Dir(cfgPath))
}

// newGate builds the session's single safety gate.
func newGate(cfg *config.Config, logger *slog.Logger) (*safety.Gate, error) {
	gate, err := safety.NewGate(cfg.Policy(), safety.WithLogger(logger.With("component", "safety")))
	if err != nil {
		return nil, fmt.Errorf("building safety gate: %w", err)
	}
	return gate, nil
}

// newOrchestrator wires the command pipeline. exec runs host operations,
// normally a dispatcher bound to the session's host goroutine.
func newOrchestrator(
	cfg *config.Config,
	p provider.Provider,
	exec orchmodels.Executor,
	userInterface ui.UserInterface,
	logger *slog.Logger,
) (*orchestrator.Orchestrator, error) {
	gate, err := newGate(cfg, logger)
	if err != nil {
		return nil, err
	}
	registry := operation.NewRegistry(cfg.FirmStandards, gate)

	res := resolver.New(p,
		resolver.WithTemperature(cfg.API.Temperature),
		resolver.WithMaxOutputTokens(cfg.API.MaxOutputTokens),
		resolver.WithLogger(logger.With("component", "resolver")),
	)

	return orchestrator.New(
		orchestrator.SettingsFromConfig(cfg),
		res,
		gate,
		registry,
		exec,
		orchestrator.NewConfirmService(userInterface),
		userInterface,
		orchestrator.WithLogger(logger.With("component", "orchestrator")),
	), nil
}

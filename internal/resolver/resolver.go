// Package resolver turns a natural-language command into a raw action using
// a remote language model.
package resolver

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Cyclone1070/archpilot/internal/action"
	"github.com/Cyclone1070/archpilot/internal/document"
	provider "github.com/Cyclone1070/archpilot/internal/provider/models"
)

const defaultMaxOutputTokens = 1024

// Resolver calls the model. It holds no per-call state and is safe for
// concurrent use.
type Resolver struct {
	provider        provider.Provider
	temperature     float32
	maxOutputTokens int32
	logger          *slog.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

func WithTemperature(t float32) Option {
	return func(r *Resolver) {
		r.temperature = t
	}
}

func WithMaxOutputTokens(n int32) Option {
	return func(r *Resolver) {
		if n > 0 {
			r.maxOutputTokens = n
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) {
		r.logger = logger
	}
}

// New creates a resolver backed by p.
func New(p provider.Provider, opts ...Option) *Resolver {
	r := &Resolver{
		provider:        p,
		maxOutputTokens: defaultMaxOutputTokens,
		logger:          slog.Default().With("component", "resolver"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve asks the model for the action described by prompt. A positive
// timeout bounds the remote call. The returned mapping is unvalidated.
func (r *Resolver) Resolve(ctx context.Context, prompt string, snap document.Snapshot, timeout time.Duration) (action.Raw, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return nil, ErrEmptyPrompt
	}

	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	model := r.provider.GetModel()
	temperature := r.temperature
	start := time.Now()

	resp, err := r.provider.Generate(ctx, &provider.GenerateRequest{
		SystemInstruction: SystemPrompt(),
		Prompt:            UserPrompt(prompt, snap),
		Config: &provider.GenerateConfig{
			Temperature:     &temperature,
			MaxOutputTokens: r.maxOutputTokens,
			JSONMode:        true,
		},
	})
	if err != nil {
		r.logger.Warn("resolve failed", "model", model, "error", err, "elapsed", time.Since(start))
		return nil, &RemoteError{Model: model, Cause: err}
	}

	if resp.Content.Type == provider.ResponseTypeRefusal {
		r.logger.Warn("model refused", "model", model, "reason", resp.Content.RefusalReason)
		return nil, &RemoteError{Model: model, Cause: fmt.Errorf("%w: %s", ErrRefused, resp.Content.RefusalReason)}
	}

	raw, err := action.ParseJSON(resp.Content.Text)
	if err != nil {
		r.logger.Warn("unparseable reply", "model", model, "error", err)
		return nil, &RemoteError{Model: model, Cause: err}
	}

	r.logger.Info("command resolved",
		"model", model,
		"operation", raw["operation"],
		"tokens", resp.Metadata.TotalTokens,
		"elapsed", time.Since(start))
	return raw, nil
}

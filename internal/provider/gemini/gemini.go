package gemini

import (
	"context"
	"fmt"
	"regexp"
	"slices"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	provider "github.com/Cyclone1070/archpilot/internal/provider/models"
)

const modelPrefix = "models/"

var versionPattern = regexp.MustCompile(`^models/gemini-(\d+(?:\.\d+)?)`)

// GeminiProvider implements the Provider interface for Google Gemini.
type GeminiProvider struct {
	client    GeminiClient
	mu        sync.RWMutex
	modelName string
	models    []ModelInfo
}

// NewGeminiProvider creates a provider for modelName after checking that the
// model exists. The name may be given with or without the "models/" prefix.
func NewGeminiProvider(ctx context.Context, client GeminiClient, modelName string) (*GeminiProvider, error) {
	models, err := client.ListModels(ctx)
	if err != nil {
		return nil, mapGeminiError(err)
	}

	p := &GeminiProvider{client: client, models: models}
	if err := p.SetModel(modelName); err != nil {
		return nil, err
	}
	return p, nil
}

// NewGeminiProviderWithLatest creates a provider using the newest available
// model.
func NewGeminiProviderWithLatest(ctx context.Context, client GeminiClient) (*GeminiProvider, error) {
	models, err := client.ListModels(ctx)
	if err != nil {
		return nil, mapGeminiError(err)
	}
	if len(models) == 0 {
		return nil, provider.ErrNoModels
	}

	sorted := sortModelsByVersion(models)
	return &GeminiProvider{
		client:    client,
		models:    models,
		modelName: strings.TrimPrefix(sorted[0].Name, modelPrefix),
	}, nil
}

// Generate sends a request to the Gemini API and returns the response.
func (p *GeminiProvider) Generate(ctx context.Context, req *provider.GenerateRequest) (*provider.GenerateResponse, error) {
	model := p.GetModel()

	contents := toGeminiContents(req.Prompt, req.History)
	config := toGeminiConfig(req.SystemInstruction, req.Config)

	start := time.Now()
	resp, err := p.client.GenerateContent(ctx, model, contents, config)
	if err != nil {
		return nil, mapGeminiError(err)
	}

	out, err := fromGeminiResponse(resp, model)
	if out != nil {
		out.Metadata.LatencyMs = time.Since(start).Milliseconds()
	}
	return out, err
}

// SetModel changes the active model. The model must be one of the listed
// models.
func (p *GeminiProvider) SetModel(model string) error {
	name := strings.TrimPrefix(model, modelPrefix)

	p.mu.Lock()
	defer p.mu.Unlock()

	if !slices.ContainsFunc(p.models, func(m ModelInfo) bool { return m.Name == modelPrefix+name }) {
		return fmt.Errorf("%w: %s not found in available models", provider.ErrInvalidModel, model)
	}
	p.modelName = name
	return nil
}

// GetModel returns the currently active model name.
func (p *GeminiProvider) GetModel() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.modelName
}

// ListModels returns the cached model names without the "models/" prefix.
func (p *GeminiProvider) ListModels(ctx context.Context) ([]string, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	names := make([]string, 0, len(p.models))
	for _, m := range p.models {
		names = append(names, strings.TrimPrefix(m.Name, modelPrefix))
	}
	return names, nil
}

// extractVersion parses the version number from a model name such as
// "models/gemini-2.5-flash".
func extractVersion(name string) (float64, bool) {
	m := versionPattern.FindStringSubmatch(name)
	if m == nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// sortModelsByVersion orders models best first: "-latest" aliases, then by
// version descending, then pro before flash. Ties keep their input order.
func sortModelsByVersion(models []ModelInfo) []ModelInfo {
	sorted := slices.Clone(models)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i].Name, sorted[j].Name

		aLatest, bLatest := strings.HasSuffix(a, "-latest"), strings.HasSuffix(b, "-latest")
		if aLatest != bLatest {
			return aLatest
		}

		av, _ := extractVersion(a)
		bv, _ := extractVersion(b)
		if av != bv {
			return av > bv
		}

		aPro, bPro := strings.Contains(a, "-pro"), strings.Contains(b, "-pro")
		if aPro != bPro {
			return aPro
		}
		return false
	})
	return sorted
}

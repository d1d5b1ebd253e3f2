package services

import (
	"sync"

	"github.com/charmbracelet/glamour"
)

// MarkdownRenderer renders markdown for a given terminal width.
type MarkdownRenderer interface {
	Render(content string, width int) (string, error)
}

// GlamourRenderer renders markdown with glamour. Renderers are cached per
// width since building one parses the whole style sheet.
type GlamourRenderer struct {
	style string

	mu    sync.Mutex
	cache map[int]*glamour.TermRenderer
}

// NewGlamourRenderer creates a renderer using the dark standard style.
func NewGlamourRenderer() *GlamourRenderer {
	return &GlamourRenderer{
		style: "dark",
		cache: make(map[int]*glamour.TermRenderer),
	}
}

func (g *GlamourRenderer) Render(content string, width int) (string, error) {
	r, err := g.renderer(width)
	if err != nil {
		return "", err
	}
	return r.Render(content)
}

func (g *GlamourRenderer) renderer(width int) (*glamour.TermRenderer, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if r, ok := g.cache[width]; ok {
		return r, nil
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(g.style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}
	g.cache[width] = r
	return r, nil
}

// RenderMarkdown renders content, treating a non-positive width as 80
// columns.
func RenderMarkdown(content string, width int, renderer MarkdownRenderer) (string, error) {
	if width <= 0 {
		width = 80
	}
	return renderer.Render(content, width)
}

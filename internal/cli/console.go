package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/Cyclone1070/archpilot/internal/ui"
	"github.com/Cyclone1070/archpilot/internal/ui/models"
	"github.com/Cyclone1070/archpilot/internal/ui/services"
)

// consoleUI is a line-oriented ui.UserInterface for headless use. Commands
// and confirmations are read from the same input, one per line.
type consoleUI struct {
	in        *bufio.Reader
	out       io.Writer
	assumeYes bool
	renderer  services.MarkdownRenderer
	logger    *slog.Logger

	mu sync.Mutex
}

// newConsoleUI creates a console. A nil renderer prints markdown as is.
func newConsoleUI(in io.Reader, out io.Writer, assumeYes bool, renderer services.MarkdownRenderer, logger *slog.Logger) *consoleUI {
	return &consoleUI{
		in:        bufio.NewReader(in),
		out:       out,
		assumeYes: assumeYes,
		renderer:  renderer,
		logger:    logger,
	}
}

func (c *consoleUI) ReadInput(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return c.readLine()
}

func (c *consoleUI) ReadPermission(ctx context.Context, prompt string, preview *models.ActionPreview) (ui.PermissionDecision, error) {
	if err := ctx.Err(); err != nil {
		return ui.DecisionDeny, err
	}
	if c.assumeYes {
		return ui.DecisionAllow, nil
	}

	c.mu.Lock()
	fmt.Fprintln(c.out, prompt)
	if p := services.RenderPreview(preview); p != "" {
		fmt.Fprintln(c.out, p)
	}
	fmt.Fprint(c.out, "Proceed? [y]es / [n]o / [a]lways: ")
	c.mu.Unlock()

	answer, err := c.readLine()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return ui.DecisionDeny, nil
		}
		return ui.DecisionDeny, err
	}

	switch strings.ToLower(answer) {
	case "y", "yes":
		return ui.DecisionAllow, nil
	case "a", "always":
		return ui.DecisionAllowAlways, nil
	}
	return ui.DecisionDeny, nil
}

func (c *consoleUI) WriteStatus(phase string, message string) {
	c.logger.Debug("status", "phase", phase, "message", message)
}

func (c *consoleUI) WriteMessage(content string) {
	if c.renderer != nil {
		if rendered, err := services.RenderMarkdown(content, 0, c.renderer); err == nil {
			content = rendered
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintln(c.out, strings.TrimRight(content, "\n"))
}

// readLine returns the next trimmed line. A final line without a newline is
// returned before io.EOF.
func (c *consoleUI) readLine() (string, error) {
	line, err := c.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

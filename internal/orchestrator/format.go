package orchestrator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Cyclone1070/archpilot/internal/dispatch"
	"github.com/Cyclone1070/archpilot/internal/host"
	"github.com/Cyclone1070/archpilot/internal/operation"
	"github.com/Cyclone1070/archpilot/internal/orchestrator/models"
	"github.com/Cyclone1070/archpilot/internal/resolver"
	"github.com/Cyclone1070/archpilot/internal/safety"
)

// maxListedElements caps the table printed for read_elements.
const maxListedElements = 20

// FormatOutcome renders an outcome as markdown.
func FormatOutcome(o *models.Outcome) string {
	var sb strings.Builder

	if len(o.Clarifications) > 0 {
		sb.WriteString("I need a bit more detail before changing anything:\n\n")
		for _, q := range o.Clarifications {
			fmt.Fprintf(&sb, "- %s\n", q)
		}
		return sb.String()
	}

	if o.Result == nil {
		if o.Action != nil {
			return fmt.Sprintf("Not executed: `%s`", o.Action.Summary())
		}
		return "Nothing to do."
	}

	fmt.Fprintf(&sb, "**%s**\n", o.Result.Message())
	if len(o.Result.Elements) > 0 {
		sb.WriteString("\n")
		sb.WriteString(elementTable(o.Result))
	}
	return sb.String()
}

func elementTable(r *operation.Result) string {
	var sb strings.Builder
	sb.WriteString("| ID | Category | Name | Level |\n")
	sb.WriteString("|---:|---|---|---|\n")

	elements := r.Elements
	if len(elements) > maxListedElements {
		elements = elements[:maxListedElements]
	}
	for _, e := range elements {
		fmt.Fprintf(&sb, "| %d | %s | %s | %s |\n", e.ID, e.Category, e.Name, e.Level)
	}
	if more := len(r.Elements) - len(elements); more > 0 {
		fmt.Fprintf(&sb, "\n_…and %d more_\n", more)
	}
	return sb.String()
}

// FormatError turns a pipeline error into a message for the user.
func FormatError(err error) string {
	var (
		rejection   *safety.PolicyRejection
		structural  *safety.StructuralError
		remote      *resolver.RemoteError
		timeout     *dispatch.TimeoutError
		unavailable *dispatch.UnavailableError
		execution   *dispatch.ExecutionError
		declined    *DeclinedError
	)

	switch {
	case errors.As(err, &declined):
		return "Cancelled. The document was not changed."
	case errors.As(err, &execution):
		var txErr *host.TransactionError
		if errors.As(err, &txErr) {
			return fmt.Sprintf("The change failed and was rolled back: %v", txErr.Cause)
		}
		return fmt.Sprintf("The operation failed: %v", execution.Cause)
	case errors.As(err, &rejection):
		return fmt.Sprintf("**Blocked by safety policy.** %s", rejection.Message)
	case errors.As(err, &structural):
		return fmt.Sprintf("The assistant produced an action I cannot use (%s). Try rephrasing the command.", structural.Reason)
	case errors.As(err, &remote):
		if remote.Timeout() {
			return "The assistant did not answer in time. Please try again."
		}
		return fmt.Sprintf("The assistant could not interpret the command: %v", remote.Cause)
	case errors.As(err, &timeout):
		return "The design application did not respond in time. The request was abandoned; if it runs later its result is discarded."
	case errors.As(err, &unavailable):
		return "The design application is not available. Nothing was changed."
	case errors.Is(err, dispatch.ErrRequestInFlight):
		return "Another command is still running. Wait for it to finish."
	case errors.Is(err, ErrEmptyCommand):
		return "Type a command first."
	}
	return fmt.Sprintf("Error: %v", err)
}

package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/Cyclone1070/archpilot/internal/action"
	"github.com/Cyclone1070/archpilot/internal/logging"
	"github.com/Cyclone1070/archpilot/internal/safety"
)

var checkFormat string

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().StringVarP(&checkFormat, "format", "f", "text", "Output format (text|json)")
}

var checkCmd = &cobra.Command{
	Use:   "check <action.json|->",
	Short: "Check an action against the safety policy",
	Long: "Reads an action as JSON (optionally inside a markdown code fence) and\n" +
		"reports whether the configured safety policy would admit it. Nothing is\n" +
		"executed. Exits non-zero when the action is rejected.",
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

// checkReport is the JSON form of a check result.
type checkReport struct {
	Admitted bool   `json:"admitted"`
	Summary  string `json:"summary,omitempty"`
	Kind     string `json:"kind,omitempty"`
	Error    string `json:"error,omitempty"`
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}

	data, err := readActionFile(cmd.InOrStdin(), args[0])
	if err != nil {
		return err
	}

	gate, err := newGate(cfg, logging.Discard())
	if err != nil {
		return err
	}

	report := checkAction(gate, string(data))
	if err := writeCheckReport(cmd.OutOrStdout(), report, checkFormat); err != nil {
		return err
	}
	if !report.Admitted {
		return &reportedError{err: errors.New(report.Error)}
	}
	return nil
}

func readActionFile(stdin io.Reader, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(stdin)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading action file: %w", err)
	}
	return data, nil
}

// checkAction parses text and runs it through the gate.
func checkAction(gate *safety.Gate, text string) checkReport {
	raw, err := action.ParseJSON(text)
	if err != nil {
		return checkReport{Kind: "parse", Error: err.Error()}
	}

	act, err := gate.Admit(raw)
	if err != nil {
		report := checkReport{Error: err.Error()}
		var structural *safety.StructuralError
		var rejection *safety.PolicyRejection
		switch {
		case errors.As(err, &structural):
			report.Kind = "structural"
		case errors.As(err, &rejection):
			report.Kind = string(rejection.Kind)
		}
		return report
	}
	return checkReport{Admitted: true, Summary: act.Summary()}
}

func writeCheckReport(w io.Writer, report checkReport, format string) error {
	switch format {
	case "json":
		out, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(out))
		return err
	case "text", "":
		if report.Admitted {
			_, err := fmt.Fprintf(w, "admitted: %s\n", report.Summary)
			return err
		}
		_, err := fmt.Fprintf(w, "rejected (%s): %s\n", report.Kind, report.Error)
		return err
	}
	return fmt.Errorf("unknown format %q", format)
}

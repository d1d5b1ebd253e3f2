package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Cyclone1070/archpilot/internal/config"
	"github.com/Cyclone1070/archpilot/internal/operation"
	"github.com/Cyclone1070/archpilot/internal/safety"
)

var policyFormat string

func init() {
	rootCmd.AddCommand(policyCmd)
	policyCmd.Flags().StringVarP(&policyFormat, "format", "f", "text", "Output format (text|json)")
}

var policyCmd = &cobra.Command{
	Use:   "policy",
	Short: "Show the effective safety policy",
	RunE:  runPolicy,
}

// policyReport is the effective policy as printed by the policy command.
type policyReport struct {
	Allowed       []string `json:"allowed_operations"`
	Blocked       []string `json:"blocked_operations"`
	Supported     []string `json:"supported_operations"`
	MaxElements   int      `json:"max_elements_per_operation"`
	MaxDimensions int      `json:"max_dimensions_per_operation"`
	MaxTags       int      `json:"max_tags_per_operation"`
	ReadCeiling   int      `json:"read_ceiling"`
	Taggable      []string `json:"taggable_element_types"`
}

func runPolicy(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}
	return writePolicy(cmd.OutOrStdout(), newPolicyReport(cfg, cfg.Policy()), policyFormat)
}

func newPolicyReport(cfg *config.Config, p *safety.Policy) policyReport {
	limits := p.Limits()
	return policyReport{
		Allowed:       p.Allowed(),
		Blocked:       p.Blocked(),
		Supported:     operation.NewRegistry(cfg.FirmStandards, nil).Operations(),
		MaxElements:   limits.MaxElements,
		MaxDimensions: limits.MaxDimensions,
		MaxTags:       limits.MaxTags,
		ReadCeiling:   p.ReadCeiling(),
		Taggable:      p.TaggableTypes(),
	}
}

func writePolicy(w io.Writer, r policyReport, format string) error {
	switch format {
	case "json":
		out, err := json.MarshalIndent(r, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(out))
		return err
	case "text", "":
		var sb strings.Builder
		fmt.Fprintf(&sb, "allowed:     %s\n", strings.Join(r.Allowed, ", "))
		fmt.Fprintf(&sb, "blocked:     %s\n", strings.Join(r.Blocked, ", "))
		fmt.Fprintf(&sb, "supported:   %s\n", strings.Join(r.Supported, ", "))
		fmt.Fprintf(&sb, "taggable:    %s\n", strings.Join(r.Taggable, ", "))
		fmt.Fprintf(&sb, "max elements per operation:   %d\n", r.MaxElements)
		fmt.Fprintf(&sb, "max dimensions per operation: %d\n", r.MaxDimensions)
		fmt.Fprintf(&sb, "max tags per operation:       %d\n", r.MaxTags)
		fmt.Fprintf(&sb, "read ceiling:                 %d\n", r.ReadCeiling)
		_, err := io.WriteString(w, sb.String())
		return err
	}
	return fmt.Errorf("unknown format %q", format)
}

package config

import (
	"fmt"
	"slices"
	"strings"
)

var (
	logLevels  = []string{"debug", "info", "warn", "error"}
	logFormats = []string{"text", "json"}
)

// Validate checks every value and reports all problems at once.
func (c *Config) Validate() error {
	var errs []string

	// API
	if strings.TrimSpace(c.API.Model) == "" {
		errs = append(errs, "api_settings.model must not be empty")
	}
	if c.API.TimeoutSeconds < 1 {
		errs = append(errs, "api_settings.timeout_seconds must be >= 1")
	}
	if c.API.Temperature < 0 || c.API.Temperature > 2 {
		errs = append(errs, "api_settings.temperature must be between 0 and 2")
	}
	if c.API.MaxOutputTokens < 1 {
		errs = append(errs, "api_settings.max_output_tokens must be >= 1")
	}

	// Safety
	if c.Safety.MaxElementsPerOperation < 1 {
		errs = append(errs, "safety.max_elements_per_operation must be >= 1")
	}
	if c.Safety.MaxDimensionsPerOperation < 1 {
		errs = append(errs, "safety.max_dimensions_per_operation must be >= 1")
	}
	if c.Safety.MaxTagsPerOperation < 1 {
		errs = append(errs, "safety.max_tags_per_operation must be >= 1")
	}
	if len(c.Safety.AllowedOperations) == 0 {
		errs = append(errs, "safety.allowed_operations must not be empty")
	}
	for _, op := range append(slices.Clone(c.Safety.AllowedOperations), c.Safety.BlockedOperations...) {
		if strings.TrimSpace(op) == "" {
			errs = append(errs, "safety operation names must not be empty")
			break
		}
	}

	// Dispatch
	if c.Dispatch.TimeoutSeconds < 1 {
		errs = append(errs, "dispatch.timeout_seconds must be >= 1")
	}

	// Firm standards
	if c.FirmStandards.DimensionOffsetMM < 0 || c.FirmStandards.DimensionOffsetMM > 5000 {
		errs = append(errs, "firm_standards.dimension_offset_mm must be between 0 and 5000")
	}
	if strings.TrimSpace(c.FirmStandards.DimensionStyle) == "" {
		errs = append(errs, "firm_standards.dimension_style must not be empty")
	}

	// Logging
	if !slices.Contains(logLevels, strings.ToLower(c.Logging.Level)) {
		errs = append(errs, fmt.Sprintf("logging.level must be one of %s", strings.Join(logLevels, ", ")))
	}
	if !slices.Contains(logFormats, strings.ToLower(c.Logging.Format)) {
		errs = append(errs, fmt.Sprintf("logging.format must be one of %s", strings.Join(logFormats, ", ")))
	}

	if len(errs) > 0 {
		return &ValidationError{Problems: errs}
	}

	return nil
}

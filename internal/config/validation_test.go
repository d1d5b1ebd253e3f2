package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_AllDefaults_Pass(t *testing.T) {
	cfg := DefaultConfig()
	err := cfg.Validate()
	assert.NoError(t, err)
}

func TestValidate_SingleField(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"empty model", func(c *Config) { c.API.Model = " " }, "api_settings.model"},
		{"zero api timeout", func(c *Config) { c.API.TimeoutSeconds = 0 }, "api_settings.timeout_seconds"},
		{"temperature too high", func(c *Config) { c.API.Temperature = 2.5 }, "api_settings.temperature"},
		{"negative temperature", func(c *Config) { c.API.Temperature = -0.1 }, "api_settings.temperature"},
		{"zero output tokens", func(c *Config) { c.API.MaxOutputTokens = 0 }, "max_output_tokens"},
		{"zero element ceiling", func(c *Config) { c.Safety.MaxElementsPerOperation = 0 }, "max_elements_per_operation"},
		{"zero dimension ceiling", func(c *Config) { c.Safety.MaxDimensionsPerOperation = 0 }, "max_dimensions_per_operation"},
		{"zero tag ceiling", func(c *Config) { c.Safety.MaxTagsPerOperation = 0 }, "max_tags_per_operation"},
		{"no allowed operations", func(c *Config) { c.Safety.AllowedOperations = nil }, "allowed_operations"},
		{"blank operation", func(c *Config) { c.Safety.BlockedOperations = []string{""} }, "operation names"},
		{"zero dispatch timeout", func(c *Config) { c.Dispatch.TimeoutSeconds = 0 }, "dispatch.timeout_seconds"},
		{"offset out of range", func(c *Config) { c.FirmStandards.DimensionOffsetMM = 6000 }, "dimension_offset_mm"},
		{"empty style", func(c *Config) { c.FirmStandards.DimensionStyle = "" }, "dimension_style"},
		{"bad log level", func(c *Config) { c.Logging.Level = "verbose" }, "logging.level"},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }, "logging.format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestValidate_ReportsAllProblems(t *testing.T) {
	cfg := DefaultConfig()
	cfg.API.TimeoutSeconds = 0
	cfg.Dispatch.TimeoutSeconds = 0
	cfg.Logging.Format = "xml"

	err := cfg.Validate()

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Len(t, validationErr.Problems, 3)
}

func TestValidate_LogLevelCaseInsensitive(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Logging.Level = "DEBUG"
	assert.NoError(t, cfg.Validate())
}

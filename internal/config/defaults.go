package config

import (
	"github.com/Cyclone1070/archpilot/internal/document"
	"github.com/Cyclone1070/archpilot/internal/safety"
)

// Config holds all application configuration values.
// Defaults are set in DefaultConfig() and overridden by the YAML file.
// NOTE: Values in the file override defaults, including explicit zero values.
// Missing keys are left at their default values.
type Config struct {
	API           APISettings            `yaml:"api_settings"`
	Safety        SafetyConfig           `yaml:"safety"`
	Dispatch      DispatchConfig         `yaml:"dispatch"`
	FirmStandards document.FirmStandards `yaml:"firm_standards"`
	Logging       LoggingConfig          `yaml:"logging"`
}

type APISettings struct {
	// Model is the Gemini model name. "latest" picks the newest available.
	Model           string  `yaml:"model"`             // Default: gemini-2.5-flash
	TimeoutSeconds  int     `yaml:"timeout_seconds"`   // Default: 10
	Temperature     float32 `yaml:"temperature"`       // Default: 0.1
	MaxOutputTokens int32   `yaml:"max_output_tokens"` // Default: 1024
}

type SafetyConfig struct {
	MaxElementsPerOperation   int      `yaml:"max_elements_per_operation"`   // Default: 500
	MaxDimensionsPerOperation int      `yaml:"max_dimensions_per_operation"` // Default: 1000
	MaxTagsPerOperation       int      `yaml:"max_tags_per_operation"`       // Default: 1000
	AllowedOperations         []string `yaml:"allowed_operations"`
	BlockedOperations         []string `yaml:"blocked_operations"`
	TaggableElementTypes      []string `yaml:"taggable_element_types"`
}

type DispatchConfig struct {
	TimeoutSeconds int `yaml:"timeout_seconds"` // Default: 30
}

type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text or json
	// File is the log destination. Empty means stderr.
	File string `yaml:"file"`
}

// ModelLatest asks the provider for the newest model at startup.
const ModelLatest = "latest"

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		API: APISettings{
			Model:           "gemini-2.5-flash",
			TimeoutSeconds:  10,
			Temperature:     0.1,
			MaxOutputTokens: 1024,
		},
		Safety: SafetyConfig{
			MaxElementsPerOperation:   safety.DefaultMaxElements,
			MaxDimensionsPerOperation: safety.DefaultMaxDimensions,
			MaxTagsPerOperation:       safety.DefaultMaxTags,
			AllowedOperations:         operationNames(safety.DefaultAllowed),
			BlockedOperations:         operationNames(safety.DefaultBlocked),
			TaggableElementTypes:      append([]string(nil), safety.DefaultTaggableTypes...),
		},
		Dispatch: DispatchConfig{
			TimeoutSeconds: 30,
		},
		FirmStandards: document.DefaultFirmStandards(),
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

package config

import (
	"errors"
	"os"
	"testing"

	"github.com/Cyclone1070/archpilot/internal/action"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockFileSystem implements FileSystem for testing.
type MockFileSystem struct {
	HomeDir     string
	HomeDirErr  error
	Files       map[string][]byte
	ReadFileErr error
	Env         map[string]string
}

func (m *MockFileSystem) UserHomeDir() (string, error) {
	return m.HomeDir, m.HomeDirErr
}

func (m *MockFileSystem) ReadFile(path string) ([]byte, error) {
	if m.ReadFileErr != nil {
		return nil, m.ReadFileErr
	}
	data, ok := m.Files[path]
	if !ok {
		return nil, os.ErrNotExist
	}
	return data, nil
}

func (m *MockFileSystem) Getenv(key string) string {
	return m.Env[key]
}

const defaultPath = "/home/user/.config/archpilot/firm_defaults.yaml"

// --- HAPPY PATH TESTS ---

func TestLoad_FullFile(t *testing.T) {
	configYAML := `
api_settings:
  model: gemini-2.5-pro
  timeout_seconds: 20
  temperature: 0.3
  max_output_tokens: 2048
safety:
  max_elements_per_operation: 100
  max_dimensions_per_operation: 200
  max_tags_per_operation: 300
  allowed_operations: [read_elements]
  blocked_operations: [delete_elements]
  taggable_element_types: [Door]
dispatch:
  timeout_seconds: 5
firm_standards:
  dimension_offset_mm: 300
  dimension_style: "Linear - 2.5mm Arial"
logging:
  level: debug
  format: json
  file: /tmp/archpilot.log
`
	fs := &MockFileSystem{
		HomeDir: "/home/user",
		Files:   map[string][]byte{defaultPath: []byte(configYAML)},
	}

	cfg, err := NewLoaderWithFS(fs).Load("")

	require.NoError(t, err)
	assert.Equal(t, "gemini-2.5-pro", cfg.API.Model)
	assert.Equal(t, 20, cfg.API.TimeoutSeconds)
	assert.InDelta(t, 0.3, cfg.API.Temperature, 1e-6)
	assert.Equal(t, int32(2048), cfg.API.MaxOutputTokens)
	assert.Equal(t, 100, cfg.Safety.MaxElementsPerOperation)
	assert.Equal(t, []string{"read_elements"}, cfg.Safety.AllowedOperations)
	assert.Equal(t, []string{"Door"}, cfg.Safety.TaggableElementTypes)
	assert.Equal(t, 5, cfg.Dispatch.TimeoutSeconds)
	assert.Equal(t, 300.0, cfg.FirmStandards.DimensionOffsetMM)
	assert.Equal(t, "Linear - 2.5mm Arial", cfg.FirmStandards.DimensionStyle)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "/tmp/archpilot.log", cfg.Logging.File)
}

func TestLoad_PartialOverride_MergesWithDefaults(t *testing.T) {
	fs := &MockFileSystem{
		HomeDir: "/home/user",
		Files: map[string][]byte{
			defaultPath: []byte("firm_standards:\n  dimension_offset_mm: 250\n"),
		},
	}

	cfg, err := NewLoaderWithFS(fs).Load("")

	require.NoError(t, err)
	defaults := DefaultConfig()
	assert.Equal(t, 250.0, cfg.FirmStandards.DimensionOffsetMM)
	assert.Equal(t, defaults.FirmStandards.DimensionStyle, cfg.FirmStandards.DimensionStyle)
	assert.Equal(t, defaults.API, cfg.API)
	assert.Equal(t, defaults.Safety, cfg.Safety)
}

func TestLoad_PathResolution(t *testing.T) {
	body := []byte("dispatch:\n  timeout_seconds: 7\n")

	t.Run("explicit path wins", func(t *testing.T) {
		fs := &MockFileSystem{
			HomeDir: "/home/user",
			Env:     map[string]string{EnvConfigPath: "/env/config.yaml"},
			Files:   map[string][]byte{"/flag/config.yaml": body},
		}
		cfg, err := NewLoaderWithFS(fs).Load("/flag/config.yaml")
		require.NoError(t, err)
		assert.Equal(t, 7, cfg.Dispatch.TimeoutSeconds)
	})

	t.Run("environment before home", func(t *testing.T) {
		fs := &MockFileSystem{
			HomeDir: "/home/user",
			Env:     map[string]string{EnvConfigPath: "/env/config.yaml"},
			Files:   map[string][]byte{"/env/config.yaml": body},
		}
		cfg, err := NewLoaderWithFS(fs).Load("")
		require.NoError(t, err)
		assert.Equal(t, 7, cfg.Dispatch.TimeoutSeconds)
	})

	t.Run("home default", func(t *testing.T) {
		path, err := NewLoaderWithFS(&MockFileSystem{HomeDir: "/home/user"}).Path("")
		require.NoError(t, err)
		assert.Equal(t, defaultPath, path)
	})
}

// --- ERROR TESTS ---

func TestLoad_MissingFile(t *testing.T) {
	fs := &MockFileSystem{HomeDir: "/home/user"}

	_, err := NewLoaderWithFS(fs).Load("")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
	var cfgErr *Error
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, defaultPath, cfgErr.Path)
}

func TestLoad_EmptyFile(t *testing.T) {
	for _, body := range []string{"", "   \n\n"} {
		fs := &MockFileSystem{
			HomeDir: "/home/user",
			Files:   map[string][]byte{defaultPath: []byte(body)},
		}

		_, err := NewLoaderWithFS(fs).Load("")

		assert.ErrorIs(t, err, ErrEmpty, "body %q", body)
	}
}

func TestLoad_MalformedYAML(t *testing.T) {
	fs := &MockFileSystem{
		HomeDir: "/home/user",
		Files:   map[string][]byte{defaultPath: []byte("api_settings: [unclosed")},
	}

	_, err := NewLoaderWithFS(fs).Load("")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid YAML")
}

func TestLoad_UnknownKeyRejected(t *testing.T) {
	fs := &MockFileSystem{
		HomeDir: "/home/user",
		Files:   map[string][]byte{defaultPath: []byte("dispatch:\n  timeout_secs: 5\n")},
	}

	_, err := NewLoaderWithFS(fs).Load("")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "timeout_secs")
}

func TestLoad_PermissionDenied(t *testing.T) {
	fs := &MockFileSystem{
		HomeDir:     "/home/user",
		ReadFileErr: os.ErrPermission,
	}

	_, err := NewLoaderWithFS(fs).Load("")

	assert.ErrorIs(t, err, os.ErrPermission)
}

func TestLoad_HomeDirError(t *testing.T) {
	fs := &MockFileSystem{HomeDirErr: errors.New("no home")}

	_, err := NewLoaderWithFS(fs).Load("")

	var cfgErr *Error
	assert.ErrorAs(t, err, &cfgErr)
}

func TestLoad_InvalidValues(t *testing.T) {
	fs := &MockFileSystem{
		HomeDir: "/home/user",
		Files:   map[string][]byte{defaultPath: []byte("dispatch:\n  timeout_seconds: 0\n")},
	}

	_, err := NewLoaderWithFS(fs).Load("")

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, err.Error(), "dispatch.timeout_seconds")
}

// --- DEFAULTS ---

func TestDefaultConfigYAML_RoundTrips(t *testing.T) {
	data, err := DefaultConfigYAML()
	require.NoError(t, err)

	cfg, err := Parse(data)

	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestPolicy_FromConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Safety.AllowedOperations = []string{"read_elements", "create_tags"}
	cfg.Safety.BlockedOperations = []string{"create_tags"}
	cfg.Safety.MaxElementsPerOperation = 10

	p := cfg.Policy()

	assert.True(t, p.IsAllowed(action.OpReadElements))
	assert.True(t, p.IsBlocked(action.OpCreateTags))
	assert.False(t, p.IsAllowed(action.OpCreateDimensions))
	assert.Equal(t, 10, p.Limits().MaxElements)
	assert.Equal(t, 20, p.ReadCeiling())
}

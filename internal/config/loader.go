package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	// ConfigDir is the directory name under ~/.config
	ConfigDir = "archpilot"
	// ConfigFile is the config file name
	ConfigFile = "firm_defaults.yaml"
	// EnvConfigPath overrides the default location.
	EnvConfigPath = "ARCHPILOT_CONFIG"
)

// FileSystem abstracts file operations for testability
type FileSystem interface {
	UserHomeDir() (string, error)
	ReadFile(path string) ([]byte, error)
	Getenv(key string) string
}

// ConfigFileReader implements FileSystem using the real OS for config loading
type ConfigFileReader struct{}

func (ConfigFileReader) UserHomeDir() (string, error) {
	return os.UserHomeDir()
}

func (ConfigFileReader) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

func (ConfigFileReader) Getenv(key string) string {
	return os.Getenv(key)
}

// Loader handles configuration loading with injected dependencies
type Loader struct {
	fs FileSystem
}

// NewLoader creates a production Loader using the real filesystem
func NewLoader() *Loader {
	return &Loader{fs: ConfigFileReader{}}
}

// NewLoaderWithFS creates a Loader with a custom filesystem (for testing)
func NewLoaderWithFS(fs FileSystem) *Loader {
	return &Loader{fs: fs}
}

// Dir returns the directory holding the config and credentials files.
func (l *Loader) Dir() (string, error) {
	home, err := l.fs.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("locating home directory: %w", err)
	}
	return filepath.Join(home, ".config", ConfigDir), nil
}

// Path resolves the config location: the explicit path if given, then
// $ARCHPILOT_CONFIG, then ~/.config/archpilot/firm_defaults.yaml.
func (l *Loader) Path(explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	if env := l.fs.Getenv(EnvConfigPath); env != "" {
		return env, nil
	}
	dir, err := l.Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ConfigFile), nil
}

// Load reads the YAML file at the resolved path and overlays it on the
// defaults. Unlike a dotfile, the file is required: a missing or empty file
// is an error. Unknown keys are rejected so typos do not silently fall back
// to defaults.
func (l *Loader) Load(explicit string) (*Config, error) {
	path, err := l.Path(explicit)
	if err != nil {
		return nil, &Error{Path: explicit, Cause: err}
	}

	data, err := l.fs.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &Error{Path: path, Cause: ErrNotFound}
		}
		return nil, &Error{Path: path, Cause: err}
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, &Error{Path: path, Cause: err}
	}
	return cfg, nil
}

// Parse decodes YAML over DefaultConfig and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := DefaultConfig()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmpty
		}
		return nil, fmt.Errorf("invalid YAML: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load is a convenience function using the default loader
func Load(explicit string) (*Config, error) {
	return NewLoader().Load(explicit)
}

// DefaultConfigYAML renders DefaultConfig as a starting file.
func DefaultConfigYAML() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("# archpilot firm defaults\n")

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(DefaultConfig()); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Package secrets looks up the API key used by the remote resolver.
package secrets

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// EnvAPIKey overrides any stored key.
	EnvAPIKey = "GEMINI_API_KEY"
	// CredentialsFile is stored next to the config file.
	CredentialsFile = "credentials.yaml"
)

// ErrNotFound is returned when no API key is configured anywhere.
var ErrNotFound = errors.New("API key not found: set " + EnvAPIKey + " or run 'archpilot auth'")

// Store reads and writes the API key.
type Store interface {
	APIKey() (string, error)
	SetAPIKey(key string) error
}

// FileSystem abstracts file operations for testability
type FileSystem interface {
	ReadFile(path string) ([]byte, error)
	WriteFile(path string, data []byte, perm os.FileMode) error
	MkdirAll(path string, perm os.FileMode) error
	Getenv(key string) string
}

type osFileSystem struct{}

func (osFileSystem) ReadFile(path string) ([]byte, error) { return os.ReadFile(path) }

func (osFileSystem) WriteFile(path string, data []byte, perm os.FileMode) error {
	return os.WriteFile(path, data, perm)
}

func (osFileSystem) MkdirAll(path string, perm os.FileMode) error { return os.MkdirAll(path, perm) }

func (osFileSystem) Getenv(key string) string { return os.Getenv(key) }

type credentials struct {
	GeminiAPIKey string `yaml:"gemini_api_key"`
}

// FileStore checks the environment first, then a YAML credentials file.
type FileStore struct {
	dir string
	fs  FileSystem
}

// NewFileStore stores credentials in dir.
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir, fs: osFileSystem{}}
}

// NewFileStoreWithFS creates a FileStore with a custom filesystem (for testing)
func NewFileStoreWithFS(dir string, fs FileSystem) *FileStore {
	return &FileStore{dir: dir, fs: fs}
}

// Path returns the credentials file location.
func (s *FileStore) Path() string {
	return filepath.Join(s.dir, CredentialsFile)
}

func (s *FileStore) APIKey() (string, error) {
	if key := strings.TrimSpace(s.fs.Getenv(EnvAPIKey)); key != "" {
		return key, nil
	}

	data, err := s.fs.ReadFile(s.Path())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("reading %s: %w", s.Path(), err)
	}

	var creds credentials
	if err := yaml.Unmarshal(data, &creds); err != nil {
		return "", fmt.Errorf("parsing %s: %w", s.Path(), err)
	}
	if key := strings.TrimSpace(creds.GeminiAPIKey); key != "" {
		return key, nil
	}
	return "", ErrNotFound
}

// SetAPIKey writes the key to the credentials file, readable only by the
// current user.
func (s *FileStore) SetAPIKey(key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return errors.New("API key must not be empty")
	}

	data, err := yaml.Marshal(credentials{GeminiAPIKey: key})
	if err != nil {
		return err
	}
	if err := s.fs.MkdirAll(s.dir, 0o700); err != nil {
		return fmt.Errorf("creating %s: %w", s.dir, err)
	}
	if err := s.fs.WriteFile(s.Path(), data, 0o600); err != nil {
		return fmt.Errorf("writing %s: %w", s.Path(), err)
	}
	return nil
}

// Mask hides all but the last four characters of a key for display.
func Mask(key string) string {
	if len(key) <= 4 {
		return strings.Repeat("*", len(key))
	}
	return strings.Repeat("*", len(key)-4) + key[len(key)-4:]
}

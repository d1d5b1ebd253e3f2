package cli

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Cyclone1070/archpilot/internal/secrets"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunAuth(t *testing.T) {
	t.Setenv(secrets.EnvAPIKey, "")
	dir := t.TempDir()
	configPath = filepath.Join(dir, "firm_defaults.yaml")
	t.Cleanup(func() { configPath = "" })

	tests := []struct {
		name  string
		args  []string
		stdin string
		want  string
	}{
		{"argument", []string{"key-from-args-1234"}, "", "key-from-args-1234"},
		{"stdin", nil, "key-from-stdin-5678\n", "key-from-stdin-5678"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			authCmd.SetOut(&out)
			authCmd.SetIn(strings.NewReader(tt.stdin))
			t.Cleanup(func() {
				authCmd.SetOut(nil)
				authCmd.SetIn(nil)
			})

			require.NoError(t, runAuth(authCmd, tt.args))

			key, err := secrets.NewFileStore(dir).APIKey()
			require.NoError(t, err)
			assert.Equal(t, tt.want, key)
			assert.Contains(t, out.String(), secrets.Mask(tt.want))
			assert.NotContains(t, out.String(), tt.want)
		})
	}
}

func TestRunAuth_EmptyKey(t *testing.T) {
	configPath = filepath.Join(t.TempDir(), "firm_defaults.yaml")
	t.Cleanup(func() { configPath = "" })
	authCmd.SetIn(strings.NewReader("\n"))
	authCmd.SetOut(&bytes.Buffer{})
	t.Cleanup(func() {
		authCmd.SetOut(nil)
		authCmd.SetIn(nil)
	})

	assert.Error(t, runAuth(authCmd, nil))
}

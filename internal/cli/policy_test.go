package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/Cyclone1070/archpilot/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPolicyReport_Defaults(t *testing.T) {
	cfg := config.DefaultConfig()

	report := newPolicyReport(cfg, cfg.Policy())

	assert.Equal(t, []string{"create_dimensions", "create_tags", "read_elements"}, report.Allowed)
	assert.Contains(t, report.Blocked, "delete_elements")
	assert.Equal(t, []string{"create_dimensions", "create_tags", "read_elements"}, report.Supported)
	assert.Equal(t, 500, report.MaxElements)
	assert.Equal(t, 1000, report.MaxDimensions)
	assert.Equal(t, 1000, report.MaxTags)
	assert.Contains(t, report.Taggable, "Door")
}

func TestNewPolicyReport_FromConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Safety.MaxTagsPerOperation = 25
	cfg.Safety.AllowedOperations = []string{"read_elements"}

	report := newPolicyReport(cfg, cfg.Policy())

	assert.Equal(t, []string{"read_elements"}, report.Allowed)
	assert.Equal(t, 25, report.MaxTags)
}

func TestWritePolicy(t *testing.T) {
	cfg := config.DefaultConfig()
	report := newPolicyReport(cfg, cfg.Policy())

	var text bytes.Buffer
	require.NoError(t, writePolicy(&text, report, "text"))
	assert.Contains(t, text.String(), "allowed:     create_dimensions, create_tags, read_elements")
	assert.Contains(t, text.String(), "max elements per operation:   500")

	var js bytes.Buffer
	require.NoError(t, writePolicy(&js, report, "json"))
	var decoded policyReport
	require.NoError(t, json.Unmarshal(js.Bytes(), &decoded))
	assert.Equal(t, report, decoded)

	assert.Error(t, writePolicy(&js, report, "xml"))
}

package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/Cyclone1070/archpilot/internal/config"
	"github.com/Cyclone1070/archpilot/internal/logging"
	"github.com/Cyclone1070/archpilot/internal/orchestrator"
	"github.com/Cyclone1070/archpilot/internal/safety"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	dimensionRooms = `{"operation": "create_dimensions", "targets": {"element_type": "Room", "scope": "Level 1"}, "estimated_dimension_count": 5}`
	countDoors     = `{"operation": "read_elements", "targets": {"element_type": "Door", "scope": "all"}}`
	deleteWalls    = `{"operation": "delete_elements", "targets": {"element_type": "Wall", "scope": "all"}}`
)

func newTestConsole(input string, assumeYes bool) (*consoleUI, *bytes.Buffer) {
	var out bytes.Buffer
	return newConsoleUI(strings.NewReader(input), &out, assumeYes, nil, logging.Discard()), &out
}

func TestExecute_SingleCommand(t *testing.T) {
	console, out := newTestConsole("", true)
	p := replies(map[string]string{"dimension all rooms on level 1": dimensionRooms})

	err := execute(context.Background(), config.DefaultConfig(), p, console, "dimension all rooms on level 1", logging.Discard())

	require.NoError(t, err)
	assert.Contains(t, out.String(), "Created 5 dimensions for 5 Room elements in Level 1")
}

func TestExecute_ConfirmationDeclined(t *testing.T) {
	console, out := newTestConsole("n\n", false)
	p := replies(map[string]string{"dimension all rooms on level 1": dimensionRooms})

	err := execute(context.Background(), config.DefaultConfig(), p, console, "dimension all rooms on level 1", logging.Discard())

	var declined *orchestrator.DeclinedError
	require.ErrorAs(t, err, &declined)
	var reported *reportedError
	assert.ErrorAs(t, err, &reported)
	assert.Contains(t, out.String(), "Proceed?")
	assert.NotContains(t, out.String(), "Created")
}

func TestExecute_ForbiddenOperation(t *testing.T) {
	console, out := newTestConsole("", true)
	p := replies(map[string]string{"delete every wall": deleteWalls})

	err := execute(context.Background(), config.DefaultConfig(), p, console, "delete every wall", logging.Discard())

	var rejection *safety.PolicyRejection
	require.ErrorAs(t, err, &rejection)
	assert.Equal(t, safety.RejectForbidden, rejection.Kind)
	assert.Contains(t, out.String(), "Blocked by safety policy")
}

func TestExecute_ServesStdinUntilEOF(t *testing.T) {
	console, out := newTestConsole("how many doors are there?\n\ndimension all rooms on level 1\ny\n", false)
	p := replies(map[string]string{
		"how many doors are there?":      countDoors,
		"dimension all rooms on level 1": dimensionRooms,
	})

	err := execute(context.Background(), config.DefaultConfig(), p, console, "", logging.Discard())

	require.NoError(t, err)
	assert.Contains(t, out.String(), "Found 8 Door elements in all")
	assert.Contains(t, out.String(), "Created 5 dimensions")
}

func TestExecute_ServeReportsFailuresAndContinues(t *testing.T) {
	console, out := newTestConsole("delete every wall\nhow many doors are there?\n", true)
	p := replies(map[string]string{
		"delete every wall":         deleteWalls,
		"how many doors are there?": countDoors,
	})

	err := execute(context.Background(), config.DefaultConfig(), p, console, "", logging.Discard())

	require.NoError(t, err)
	assert.Contains(t, out.String(), "Blocked by safety policy")
	assert.Contains(t, out.String(), "Found 8 Door elements")
}

package document

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDemo_Counts(t *testing.T) {
	d := Demo()

	assert.Equal(t, "Level 1 - Floor Plan", d.ActiveView)
	assert.Equal(t, map[string]int{
		CategoryRoom:    9,
		CategoryWall:    16,
		CategoryDoor:    8,
		CategoryWindow:  12,
		CategoryFloor:   2,
		CategoryCeiling: 2,
		CategoryStair:   1,
	}, d.CountByCategory())
}

func TestQuery_Scopes(t *testing.T) {
	d := Demo()

	tests := []struct {
		name     string
		category string
		scope    string
		want     int
	}{
		{name: "current view is level 1", category: CategoryRoom, scope: "current_view", want: 5},
		{name: "empty scope is current view", category: CategoryRoom, scope: "", want: 5},
		{name: "alias", category: CategoryRoom, scope: "current view", want: 5},
		{name: "level 2", category: CategoryRoom, scope: "Level 2", want: 4},
		{name: "all", category: CategoryDoor, scope: "all", want: 8},
		{name: "every category", category: "", scope: "Level 2", want: 24},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := d.Query(tt.category, tt.scope)
			require.NoError(t, err)
			assert.Len(t, got, tt.want)
		})
	}
}

func TestQuery_ViewWithoutLevelShowsEverything(t *testing.T) {
	d := Demo()
	require.NoError(t, d.SetActiveView("3D View"))

	got, err := d.Query(CategoryWall, "current_view")

	require.NoError(t, err)
	assert.Len(t, got, 16)
}

func TestQuery_Selection(t *testing.T) {
	d := Demo()
	doors, err := d.Query(CategoryDoor, "all")
	require.NoError(t, err)
	require.NoError(t, d.Select(doors[0].ID, doors[1].ID))

	got, err := d.Query(CategoryDoor, "selection")
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = d.Query(CategoryWall, "selected")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestQuery_Errors(t *testing.T) {
	d := Demo()

	_, err := d.Query(CategoryRoom, "Level 9")
	var levelErr *UnknownLevelError
	require.True(t, errors.As(err, &levelErr))
	assert.Equal(t, "Level 9", levelErr.Level)

	_, err = d.Query(CategoryRoom, "everywhere")
	var scopeErr *InvalidScopeError
	assert.True(t, errors.As(err, &scopeErr))
}

func TestSelect_UnknownElement(t *testing.T) {
	d := Demo()

	err := d.Select(99999)

	var elemErr *UnknownElementError
	assert.True(t, errors.As(err, &elemErr))
	assert.Empty(t, d.Selection)
}

func TestClone_IsIndependent(t *testing.T) {
	d := Demo()
	rooms, err := d.Query(CategoryRoom, "all")
	require.NoError(t, err)

	c := d.Clone()
	_, err = c.AddDimension(rooms[0].ID, 200, "Linear")
	require.NoError(t, err)
	c.AddElement(CategoryWall, "Extra", "Level 1")
	c.Levels[0] = "Renamed"

	assert.Empty(t, d.Dimensions)
	assert.Len(t, d.Elements, len(c.Elements)-1)
	assert.Equal(t, "Level 1", d.Levels[0])

	// IDs keep advancing independently in the clone.
	e := d.AddElement(CategoryWall, "Other", "Level 1")
	assert.Equal(t, c.Elements[len(c.Elements)-1].ID-1, e.ID)
}

func TestAddTag_HasTag(t *testing.T) {
	d := Demo()
	doors, err := d.Query(CategoryDoor, "current_view")
	require.NoError(t, err)

	assert.False(t, d.HasTag(doors[0].ID))
	tag, err := d.AddTag(doors[0].ID, true)
	require.NoError(t, err)

	assert.True(t, tag.Leader)
	assert.Equal(t, d.ActiveView, tag.View)
	assert.True(t, d.HasTag(doors[0].ID))

	require.NoError(t, d.SetActiveView("Level 2 - Floor Plan"))
	assert.False(t, d.HasTag(doors[0].ID))
}

func TestAddDimension_UnknownElement(t *testing.T) {
	d := Demo()

	_, err := d.AddDimension(-1, 200, "Linear")

	var elemErr *UnknownElementError
	assert.True(t, errors.As(err, &elemErr))
}

func TestSnapshot(t *testing.T) {
	d := Demo()
	rooms, err := d.Query(CategoryRoom, "all")
	require.NoError(t, err)
	require.NoError(t, d.Select(rooms[0].ID))

	snap := d.Snapshot(DefaultFirmStandards())

	assert.Equal(t, "Level 1 - Floor Plan", snap.ViewName)
	assert.Equal(t, []string{"Level 1", "Level 2"}, snap.Levels)
	assert.Equal(t, 9, snap.ElementCounts[CategoryRoom])
	assert.Equal(t, 1, snap.SelectionCount)
	assert.Equal(t, float64(200), snap.Standards.DimensionOffsetMM)

	snap.Levels[0] = "changed"
	assert.Equal(t, "Level 1", d.Levels[0])
}

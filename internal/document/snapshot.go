package document

import "slices"

// FirmStandards are the office defaults applied when a command does not
// specify its own values.
type FirmStandards struct {
	DimensionOffsetMM float64 `yaml:"dimension_offset_mm" json:"dimension_offset_mm"`
	DimensionStyle    string  `yaml:"dimension_style" json:"dimension_style"`
}

// DefaultFirmStandards returns the built-in standards.
func DefaultFirmStandards() FirmStandards {
	return FirmStandards{
		DimensionOffsetMM: 200,
		DimensionStyle:    "Linear - 3mm Arial",
	}
}

// Snapshot is the read-only context handed to the resolver.
type Snapshot struct {
	ViewName       string         `json:"view_name"`
	Levels         []string       `json:"levels"`
	ElementCounts  map[string]int `json:"element_counts"`
	SelectionCount int            `json:"selection_count"`
	Standards      FirmStandards  `json:"firm_standards"`
}

// Snapshot captures the document context. It must run on the host goroutine.
func (d *Document) Snapshot(standards FirmStandards) Snapshot {
	return Snapshot{
		ViewName:       d.ActiveView,
		Levels:         slices.Clone(d.Levels),
		ElementCounts:  d.CountByCategory(),
		SelectionCount: len(d.Selection),
		Standards:      standards,
	}
}

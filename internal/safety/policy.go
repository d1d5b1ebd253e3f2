package safety

import (
	"slices"

	"github.com/Cyclone1070/archpilot/internal/action"
)

const (
	DefaultMaxElements   = 500
	DefaultMaxDimensions = 1000
	DefaultMaxTags       = 1000

	// readCeilingFactor relaxes the element ceiling for read-only operations.
	readCeilingFactor = 2
)

// DefaultAllowed lists the operations permitted when no policy is configured.
var DefaultAllowed = []action.Operation{
	action.OpCreateDimensions,
	action.OpCreateTags,
	action.OpReadElements,
}

// DefaultBlocked lists the destructive operations forbidden by default.
var DefaultBlocked = []action.Operation{
	action.OpDeleteElements,
	action.OpModifyWalls,
	action.OpModifyDoors,
	action.OpModifyRooms,
	action.OpSaveProject,
	action.OpCloseProject,
	action.OpExportData,
	action.OpImportData,
}

// DefaultTaggableTypes lists the element categories that may be tagged.
var DefaultTaggableTypes = []string{"Door", "Window", "Room", "Wall", "Floor", "Ceiling"}

// Limits holds the numeric ceilings of a policy. All ceilings are inclusive.
type Limits struct {
	MaxElements   int
	MaxDimensions int
	MaxTags       int
}

// DefaultLimits returns the built-in ceilings.
func DefaultLimits() Limits {
	return Limits{
		MaxElements:   DefaultMaxElements,
		MaxDimensions: DefaultMaxDimensions,
		MaxTags:       DefaultMaxTags,
	}
}

// Policy is the session's safety configuration. It is immutable once built
// and safe for concurrent use.
type Policy struct {
	allowed  map[action.Operation]struct{}
	blocked  map[action.Operation]struct{}
	taggable []string
	limits   Limits
}

// NewPolicy builds a policy. Empty taggable falls back to DefaultTaggableTypes
// and zero limits fall back to the defaults.
func NewPolicy(allowed, blocked []action.Operation, limits Limits, taggable []string) *Policy {
	p := &Policy{
		allowed:  make(map[action.Operation]struct{}, len(allowed)),
		blocked:  make(map[action.Operation]struct{}, len(blocked)),
		taggable: slices.Clone(taggable),
		limits:   limits,
	}
	for _, op := range allowed {
		p.allowed[op] = struct{}{}
	}
	for _, op := range blocked {
		p.blocked[op] = struct{}{}
	}

	if len(p.taggable) == 0 {
		p.taggable = slices.Clone(DefaultTaggableTypes)
	}

	defaults := DefaultLimits()
	if p.limits.MaxElements <= 0 {
		p.limits.MaxElements = defaults.MaxElements
	}
	if p.limits.MaxDimensions <= 0 {
		p.limits.MaxDimensions = defaults.MaxDimensions
	}
	if p.limits.MaxTags <= 0 {
		p.limits.MaxTags = defaults.MaxTags
	}
	return p
}

// DefaultPolicy returns the built-in policy.
func DefaultPolicy() *Policy {
	return NewPolicy(DefaultAllowed, DefaultBlocked, DefaultLimits(), DefaultTaggableTypes)
}

func (p *Policy) Limits() Limits {
	return p.limits
}

// ReadCeiling is the element ceiling applied to read-only operations.
func (p *Policy) ReadCeiling() int {
	return p.limits.MaxElements * readCeilingFactor
}

func (p *Policy) IsAllowed(op action.Operation) bool {
	_, ok := p.allowed[op]
	return ok
}

func (p *Policy) IsBlocked(op action.Operation) bool {
	_, ok := p.blocked[op]
	return ok
}

// CanTag reports whether elements of the given category may be tagged.
func (p *Policy) CanTag(elementType string) bool {
	return slices.Contains(p.taggable, elementType)
}

// TaggableTypes returns a copy of the taggable categories in configured order.
func (p *Policy) TaggableTypes() []string {
	return slices.Clone(p.taggable)
}

// Allowed returns the allowed operations sorted ascending.
func (p *Policy) Allowed() []string {
	return sortedNames(p.allowed)
}

// Blocked returns the blocked operations sorted ascending.
func (p *Policy) Blocked() []string {
	return sortedNames(p.blocked)
}

func sortedNames(set map[action.Operation]struct{}) []string {
	names := make([]string, 0, len(set))
	for op := range set {
		names = append(names, string(op))
	}
	slices.Sort(names)
	return names
}

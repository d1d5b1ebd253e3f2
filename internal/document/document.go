// Package document is the in-memory design document owned by the host
// goroutine. Nothing in this package is safe for concurrent use; callers
// reach a Document only through the host.
package document

import (
	"slices"
	"sort"

	"github.com/Cyclone1070/archpilot/internal/action"
)

// Element categories present in the document.
const (
	CategoryRoom    = "Room"
	CategoryWall    = "Wall"
	CategoryDoor    = "Door"
	CategoryWindow  = "Window"
	CategoryFloor   = "Floor"
	CategoryCeiling = "Ceiling"
	CategoryStair   = "Stair"
)

// Element is a model element.
type Element struct {
	ID       int
	Category string
	Name     string
	Level    string
}

// View is a plan view. A view without a level shows every element.
type View struct {
	Name  string
	Level string
}

// Dimension is a dimension chain annotating one element.
type Dimension struct {
	ID        int
	ElementID int
	View      string
	OffsetMM  float64
	Style     string
}

// Tag is an annotation tag attached to one element.
type Tag struct {
	ID        int
	ElementID int
	View      string
	Leader    bool
}

// Document holds the elements, views and annotations of one project.
type Document struct {
	Title      string
	Levels     []string
	Views      []View
	ActiveView string
	Elements   []Element
	Selection  []int
	Dimensions []Dimension
	Tags       []Tag

	nextID int
}

// New returns an empty document with the given title.
func New(title string) *Document {
	return &Document{Title: title, nextID: 1}
}

// Clone returns a deep copy.
func (d *Document) Clone() *Document {
	return &Document{
		Title:      d.Title,
		Levels:     slices.Clone(d.Levels),
		Views:      slices.Clone(d.Views),
		ActiveView: d.ActiveView,
		Elements:   slices.Clone(d.Elements),
		Selection:  slices.Clone(d.Selection),
		Dimensions: slices.Clone(d.Dimensions),
		Tags:       slices.Clone(d.Tags),
		nextID:     d.nextID,
	}
}

func (d *Document) allocID() int {
	if d.nextID == 0 {
		d.nextID = 1
	}
	id := d.nextID
	d.nextID++
	return id
}

// AddLevel adds a level if it does not already exist.
func (d *Document) AddLevel(name string) {
	if !slices.Contains(d.Levels, name) {
		d.Levels = append(d.Levels, name)
	}
}

// AddView adds a view. The first view added becomes active.
func (d *Document) AddView(v View) {
	d.Views = append(d.Views, v)
	if d.ActiveView == "" {
		d.ActiveView = v.Name
	}
}

// SetActiveView makes the named view active.
func (d *Document) SetActiveView(name string) error {
	if _, ok := d.view(name); !ok {
		return &UnknownViewError{View: name}
	}
	d.ActiveView = name
	return nil
}

// AddElement adds an element and returns it with its assigned ID.
func (d *Document) AddElement(category, name, level string) Element {
	e := Element{ID: d.allocID(), Category: category, Name: name, Level: level}
	d.Elements = append(d.Elements, e)
	return e
}

// Select replaces the selection. Unknown IDs are an error.
func (d *Document) Select(ids ...int) error {
	for _, id := range ids {
		if _, ok := d.Element(id); !ok {
			return &UnknownElementError{ID: id}
		}
	}
	d.Selection = slices.Clone(ids)
	return nil
}

// Element returns the element with the given ID.
func (d *Document) Element(id int) (Element, bool) {
	for _, e := range d.Elements {
		if e.ID == id {
			return e, true
		}
	}
	return Element{}, false
}

func (d *Document) view(name string) (View, bool) {
	for _, v := range d.Views {
		if v.Name == name {
			return v, true
		}
	}
	return View{}, false
}

// Query returns the elements of category (all categories when empty) within
// scope. Scope accepts the action scope names, their aliases and level scopes;
// an empty scope means the current view.
func (d *Document) Query(category, scope string) ([]Element, error) {
	var match func(Element) bool

	switch s := action.CanonicalScope(scope); s {
	case "", action.ScopeCurrentView:
		v, ok := d.view(d.ActiveView)
		if !ok {
			return nil, &UnknownViewError{View: d.ActiveView}
		}
		match = func(e Element) bool { return v.Level == "" || e.Level == v.Level }
	case action.ScopeSelected:
		match = func(e Element) bool { return slices.Contains(d.Selection, e.ID) }
	case action.ScopeAll:
		match = func(Element) bool { return true }
	default:
		level, ok := action.LevelName(s)
		if !ok {
			return nil, &InvalidScopeError{Scope: scope}
		}
		if !slices.Contains(d.Levels, level) {
			return nil, &UnknownLevelError{Level: level}
		}
		match = func(e Element) bool { return e.Level == level }
	}

	var out []Element
	for _, e := range d.Elements {
		if (category == "" || e.Category == category) && match(e) {
			out = append(out, e)
		}
	}
	return out, nil
}

// CountByCategory returns the number of elements per category.
func (d *Document) CountByCategory() map[string]int {
	counts := make(map[string]int)
	for _, e := range d.Elements {
		counts[e.Category]++
	}
	return counts
}

// Categories returns the categories present, sorted.
func (d *Document) Categories() []string {
	counts := d.CountByCategory()
	out := make([]string, 0, len(counts))
	for c := range counts {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

// AddDimension annotates an element in the active view.
func (d *Document) AddDimension(elementID int, offsetMM float64, style string) (Dimension, error) {
	if _, ok := d.Element(elementID); !ok {
		return Dimension{}, &UnknownElementError{ID: elementID}
	}
	dim := Dimension{
		ID:        d.allocID(),
		ElementID: elementID,
		View:      d.ActiveView,
		OffsetMM:  offsetMM,
		Style:     style,
	}
	d.Dimensions = append(d.Dimensions, dim)
	return dim, nil
}

// AddTag tags an element in the active view.
func (d *Document) AddTag(elementID int, leader bool) (Tag, error) {
	if _, ok := d.Element(elementID); !ok {
		return Tag{}, &UnknownElementError{ID: elementID}
	}
	tag := Tag{
		ID:        d.allocID(),
		ElementID: elementID,
		View:      d.ActiveView,
		Leader:    leader,
	}
	d.Tags = append(d.Tags, tag)
	return tag, nil
}

// HasTag reports whether the element is already tagged in the active view.
func (d *Document) HasTag(elementID int) bool {
	for _, t := range d.Tags {
		if t.ElementID == elementID && t.View == d.ActiveView {
			return true
		}
	}
	return false
}

package document

import "fmt"

// Demo returns a small two-storey project used by the headless and TUI
// sessions when no host application is attached.
func Demo() *Document {
	d := New("Demo House")

	for _, level := range []string{"Level 1", "Level 2"} {
		d.AddLevel(level)
		d.AddView(View{Name: level + " - Floor Plan", Level: level})
	}
	d.AddView(View{Name: "3D View"})

	rooms := map[string][]string{
		"Level 1": {"Living", "Kitchen", "Dining", "Entry", "WC"},
		"Level 2": {"Bedroom 1", "Bedroom 2", "Bathroom", "Study"},
	}
	for _, level := range d.Levels {
		for _, name := range rooms[level] {
			d.AddElement(CategoryRoom, name, level)
		}
		for i := 1; i <= 8; i++ {
			d.AddElement(CategoryWall, fmt.Sprintf("Wall %d", i), level)
		}
		for i := 1; i <= 4; i++ {
			d.AddElement(CategoryDoor, fmt.Sprintf("Door %d", i), level)
		}
		for i := 1; i <= 6; i++ {
			d.AddElement(CategoryWindow, fmt.Sprintf("Window %d", i), level)
		}
		d.AddElement(CategoryFloor, "Floor", level)
		d.AddElement(CategoryCeiling, "Ceiling", level)
	}
	d.AddElement(CategoryStair, "Main Stair", "Level 1")

	return d
}

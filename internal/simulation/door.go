package simulation

import "fmt"

// Content is what sits behind a door.
type Content uint8

const (
	Goat Content = iota
	Prize
)

// String returns the content label.
func (c Content) String() string {
	switch c {
	case Goat:
		return "goat"
	case Prize:
		return "prize"
	}
	return fmt.Sprintf("Content(%d)", uint8(c))
}

// NumDoors is the number of doors on stage.
const NumDoors = 3

// Doors holds the contents of the three doors, indexed by Selection.
// Exactly one slot holds Prize.
type Doors [NumDoors]Content

// NewDoors returns a door set with the prize behind the given door.
func NewDoors(prize Selection) Doors {
	var d Doors
	d[prize.Index()] = Prize
	return d
}

// At returns the content behind door s.
func (d Doors) At(s Selection) Content {
	return d[s.Index()]
}

// PrizeDoor returns the door hiding the prize. A door set without exactly one
// prize is an invariant violation.
func (d Doors) PrizeDoor() Selection {
	found := -1
	for i, c := range d {
		if c != Prize {
			continue
		}
		if found >= 0 {
			panic(InvariantError{Op: "prize door", Detail: fmt.Sprintf("more than one prize in %v", d)})
		}
		found = i
	}
	if found < 0 {
		panic(InvariantError{Op: "prize door", Detail: "no prize behind any door"})
	}
	return SelectionFromIndex(found)
}

// Selection identifies one of the three doors. It is used both for the
// player's pick and for the door the host opens.
type Selection uint8

const (
	Door1 Selection = iota
	Door2
	Door3
)

// Selections lists every door in order.
var Selections = [NumDoors]Selection{Door1, Door2, Door3}

// SelectionFromIndex converts a zero-based index into a Selection.
// It panics for indices outside [0, 3).
func SelectionFromIndex(i int) Selection {
	switch i {
	case 0:
		return Door1
	case 1:
		return Door2
	case 2:
		return Door3
	}
	panic(InvariantError{Op: "selection", Detail: fmt.Sprintf("door index %d outside [0,%d)", i, NumDoors)})
}

// Index returns the zero-based slot index of the door.
func (s Selection) Index() int {
	switch s {
	case Door1, Door2, Door3:
		return int(s)
	}
	panic(InvariantError{Op: "selection", Detail: fmt.Sprintf("unknown selection %d", uint8(s))})
}

// String returns "Door1", "Door2" or "Door3".
func (s Selection) String() string {
	switch s {
	case Door1:
		return "Door1"
	case Door2:
		return "Door2"
	case Door3:
		return "Door3"
	}
	return fmt.Sprintf("Selection(%d)", uint8(s))
}

// InvariantError describes a programming defect in the trial kernel, such as
// a door index outside [0,3) or a host opening that contradicts the rules.
// It is only ever raised through panic.
type InvariantError struct {
	Op     string
	Detail string
}

func (e InvariantError) Error() string {
	return fmt.Sprintf("simulation invariant violated in %s: %s", e.Op, e.Detail)
}

package component

// SeparatorThickness is the size of a separator on its split axis. The
// dividing line sits at half of it.
const (
	SeparatorThickness = 16
	SeparatorHalf      = SeparatorThickness / 2
)

type Orientation int

const (
	// Vertical separators split the map along x.
	Vertical Orientation = iota
	// Horizontal separators split the map along y.
	Horizontal
)

func (o Orientation) String() string {
	if o == Horizontal {
		return "horizontal"
	}
	return "vertical"
}

// Direction4 codes the four cardinal directions.
type Direction4 int

const (
	DirRight Direction4 = iota
	DirUp
	DirLeft
	DirDown
	DirNone Direction4 = -1
)

func (d Direction4) String() string {
	switch d {
	case DirRight:
		return "right"
	case DirUp:
		return "up"
	case DirLeft:
		return "left"
	case DirDown:
		return "down"
	}
	return "none"
}

type SeparatorPhase int

const (
	SeparatorIdle SeparatorPhase = iota
	SeparatorActivating
	SeparatorActivated
)

// Separator partitions the map into rooms. Bounds is in map pixels; one of
// its sides is SeparatorThickness.
type Separator struct {
	Name        string
	X, Y        int
	Width       int
	Height      int
	Orientation Orientation

	// Updated by the camera when it crosses this separator.
	Phase       SeparatorPhase
	Direction   Direction4
	Activations int
}

// Line returns the coordinate of the dividing line on the split axis.
func (s Separator) Line() int {
	if s.Orientation == Horizontal {
		return s.Y + SeparatorHalf
	}
	return s.X + SeparatorHalf
}

func (s Separator) CenterX() int {
	return s.X + s.Width/2
}

func (s Separator) CenterY() int {
	return s.Y + s.Height/2
}

var SeparatorComponent = NewComponent[Separator]()

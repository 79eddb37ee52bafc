package common

import (
	"fmt"

	"github.com/jakecoffman/cp"
)

// Point is an integer position in map coordinates.
type Point struct {
	X, Y int
}

func (p Point) Add(dx, dy int) Point {
	return Point{X: p.X + dx, Y: p.Y + dy}
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Size is an integer width/height pair.
type Size struct {
	Width, Height int
}

// Rect is an axis-aligned rectangle in map coordinates. X/Y is the top-left
// corner.
type Rect struct {
	X, Y          int
	Width, Height int
}

func NewRect(x, y, width, height int) Rect {
	return Rect{X: x, Y: y, Width: width, Height: height}
}

func (r Rect) XY() Point {
	return Point{X: r.X, Y: r.Y}
}

func (r Rect) Size() Size {
	return Size{Width: r.Width, Height: r.Height}
}

// WithXY returns a copy of r moved to p, keeping its size.
func (r Rect) WithXY(p Point) Rect {
	r.X = p.X
	r.Y = p.Y
	return r
}

func (r Rect) Right() int {
	return r.X + r.Width
}

func (r Rect) Bottom() int {
	return r.Y + r.Height
}

func (r Rect) Center() Point {
	return Point{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// Intersects reports whether r and other share a non-empty area.
func (r Rect) Intersects(other Rect) bool {
	return r.X < other.X+other.Width &&
		r.X+r.Width > other.X &&
		r.Y < other.Y+other.Height &&
		r.Y+r.Height > other.Y
}

func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.Right() && p.Y >= r.Y && p.Y < r.Bottom()
}

// BB converts r to a chipmunk bounding box (y grows downward, as on screen).
func (r Rect) BB() cp.BB {
	return cp.NewBBForExtents(
		cp.Vector{X: float64(r.X) + float64(r.Width)/2, Y: float64(r.Y) + float64(r.Height)/2},
		float64(r.Width)/2,
		float64(r.Height)/2,
	)
}

func (r Rect) String() string {
	return fmt.Sprintf("(%d,%d %dx%d)", r.X, r.Y, r.Width, r.Height)
}

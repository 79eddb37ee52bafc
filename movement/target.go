// Package movement provides point-seeking motion used for free camera travel.
package movement

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/roomcam/common"
)

// Clock reports game time in milliseconds.
type Clock interface {
	Now() uint32
}

// Target moves a point in a straight line toward a fixed destination at a
// constant speed in pixels per second. It lands exactly on the destination on
// the update that would reach or pass it.
type Target struct {
	clock    Clock
	pos      cp.Vector
	target   cp.Vector
	speed    float64
	last     uint32
	finished bool
}

// NewTarget creates a movement toward (x, y). The start point defaults to the
// destination; call SetXY before the first Update. A speed <= 0 arrives on
// the next update.
func NewTarget(clock Clock, x, y, speed int) *Target {
	t := &Target{
		clock:  clock,
		target: cp.Vector{X: float64(x), Y: float64(y)},
		speed:  float64(speed),
	}
	t.pos = t.target
	t.last = clock.Now()
	return t
}

// SetXY places the moving point and restarts the elapsed-time reference.
func (t *Target) SetXY(p common.Point) {
	t.pos = cp.Vector{X: float64(p.X), Y: float64(p.Y)}
	t.last = t.clock.Now()
	t.finished = false
}

// Update advances the point by the distance covered since the last update.
func (t *Target) Update() {
	if t.finished {
		return
	}
	now := t.clock.Now()
	elapsed := float64(now - t.last)
	t.last = now

	delta := t.target.Sub(t.pos)
	dist := delta.Length()
	if t.speed <= 0 || dist == 0 {
		t.arrive()
		return
	}

	step := t.speed * elapsed / 1000
	if step <= 0 {
		return
	}
	if dist <= step {
		t.arrive()
		return
	}
	t.pos = t.pos.Add(delta.Mult(step / dist))
}

func (t *Target) arrive() {
	t.pos = t.target
	t.finished = true
}

func (t *Target) IsFinished() bool {
	return t.finished
}

// XY returns the current point rounded to whole pixels.
func (t *Target) XY() common.Point {
	return common.Point{X: int(math.Round(t.pos.X)), Y: int(math.Round(t.pos.Y))}
}

func (t *Target) Destination() common.Point {
	return common.Point{X: int(t.target.X), Y: int(t.target.Y)}
}

func (t *Target) Speed() int {
	return int(t.speed)
}

package system

import (
	"github.com/milk9111/roomcam/camera"
	"github.com/milk9111/roomcam/common"
	"github.com/milk9111/roomcam/ecs"
	"github.com/milk9111/roomcam/ecs/component"
)

// SeparatorSystem starts a camera crossing when the center of the followed
// entity passes the line of a separator. It must run before CameraSystem.
type SeparatorSystem struct {
	camera *camera.Camera

	tracked ecs.Entity
	prev    common.Rect
	seen    bool
}

func NewSeparatorSystem(cam *camera.Camera) *SeparatorSystem {
	return &SeparatorSystem{camera: cam}
}

func (ss *SeparatorSystem) Update(w *ecs.World) {
	if ss.camera == nil || ss.camera.IsMoving() {
		ss.seen = false
		return
	}

	hero := ss.camera.FixedOn()
	rect, ok := entityRect(w, hero)
	if !ok {
		ss.seen = false
		return
	}
	if !ss.seen || hero != ss.tracked {
		ss.tracked = hero
		ss.prev = rect
		ss.seen = true
		return
	}

	swept := ss.prev.BB().Merge(rect.BB())
	from, to := ss.prev.Center(), rect.Center()
	for _, e := range w.Query(component.SeparatorComponent.Kind()) {
		sep, ok := ecs.Get(w, e, component.SeparatorComponent)
		if !ok || !swept.Intersects(common.NewRect(sep.X, sep.Y, sep.Width, sep.Height).BB()) {
			continue
		}
		snap, crossed := crossedLine(sep, from, to)
		if !crossed {
			continue
		}

		// Leave the center one step before the line so the crossing direction
		// follows the movement. The camera nudge carries it over.
		ecs.Update(w, hero, component.TransformComponent, func(t *component.Transform) {
			if sep.Orientation == component.Horizontal {
				t.Y += snap - to.Y
			} else {
				t.X += snap - to.X
			}
		})
		ss.camera.TraverseSeparator(e)
		ss.seen = false
		return
	}
	ss.prev = rect
}

// crossedLine reports whether moving from one center to another passed the
// line of sep, and where the center must be placed for the crossing.
func crossedLine(sep component.Separator, from, to common.Point) (int, bool) {
	line := sep.Line()
	var a, b, other, lo, hi int
	if sep.Orientation == component.Horizontal {
		a, b, other, lo, hi = from.Y, to.Y, to.X, sep.X, sep.X+sep.Width
	} else {
		a, b, other, lo, hi = from.X, to.X, to.Y, sep.Y, sep.Y+sep.Height
	}
	if other < lo || other >= hi {
		return 0, false
	}
	switch {
	case a < line && b >= line:
		return line - 1, true
	case a >= line && b < line:
		return line, true
	}
	return 0, false
}

func entityRect(w *ecs.World, e ecs.Entity) (common.Rect, bool) {
	if !e.Valid() {
		return common.Rect{}, false
	}
	t, ok := ecs.Get(w, e, component.TransformComponent)
	if !ok {
		return common.Rect{}, false
	}
	b, _ := ecs.Get(w, e, component.BodyComponent)
	return common.NewRect(t.X, t.Y, b.Width, b.Height), true
}

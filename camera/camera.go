// Package camera positions the visible rectangle of a map each frame. The
// camera follows the hero, travels to points on request, and scrolls across
// separators instead of jumping over them.
package camera

import (
	"github.com/milk9111/roomcam/common"
	"github.com/milk9111/roomcam/ecs"
	"github.com/milk9111/roomcam/ecs/component"
	"github.com/milk9111/roomcam/movement"
)

const (
	DefaultWidth  = 320
	DefaultHeight = 240
	// DefaultSpeed is the travel speed in pixels per second.
	DefaultSpeed = 120

	// heroNudge moves the hero past the separator line once a crossing
	// starts so the same separator does not trigger again.
	heroNudge = 2
)

// Clock reports game time in milliseconds. Crossings advance one pixel per
// millisecond.
type Clock interface {
	Now() uint32
}

// Notifier receives the map-level camera events.
type Notifier interface {
	// CameraReachedTarget fires when a Move completes.
	CameraReachedTarget()
	// CameraBack fires when a Restore completes and following resumes.
	CameraBack()
}

// NotifierFuncs adapts plain functions to Notifier. Nil fields are skipped.
type NotifierFuncs struct {
	OnReachedTarget func()
	OnBack          func()
}

func (n NotifierFuncs) CameraReachedTarget() {
	if n.OnReachedTarget != nil {
		n.OnReachedTarget()
	}
}

func (n NotifierFuncs) CameraBack() {
	if n.OnBack != nil {
		n.OnBack()
	}
}

type Config struct {
	Width  int
	Height int
	Speed  int
}

// crossing is the scroll state while the camera traverses a separator.
type crossing struct {
	position  common.Point
	target    common.Point
	dx, dy    int
	direction component.Direction4
	separator ecs.Entity
	next      uint32
}

// pendingTravel is a Move or Restore requested while crossing. It starts when
// the crossing arrives.
type pendingTravel struct {
	target  common.Point
	restore bool
}

// Camera owns the viewport. At any time it either follows fixedOn (possibly
// while crossing a separator) or travels with movement.
type Camera struct {
	world    *ecs.World
	clock    Clock
	notifier Notifier

	position  common.Rect
	fixedOn   ecs.Entity
	crossing  *crossing
	pending   *pendingTravel
	restoring bool
	speed     int
	movement  *movement.Target
}

// New creates a camera following the hero of w, if there is one.
func New(w *ecs.World, clock Clock, notifier Notifier, cfg Config) *Camera {
	if cfg.Width <= 0 {
		cfg.Width = DefaultWidth
	}
	if cfg.Height <= 0 {
		cfg.Height = DefaultHeight
	}
	if cfg.Speed <= 0 {
		cfg.Speed = DefaultSpeed
	}
	if notifier == nil {
		notifier = NotifierFuncs{}
	}
	c := &Camera{
		world:    w,
		clock:    clock,
		notifier: notifier,
		position: common.NewRect(0, 0, cfg.Width, cfg.Height),
		speed:    cfg.Speed,
	}
	c.fixedOn = c.hero()
	return c
}

func (c *Camera) Width() int {
	return c.position.Width
}

func (c *Camera) Height() int {
	return c.position.Height
}

// Viewport returns the visible rectangle in map coordinates.
func (c *Camera) Viewport() common.Rect {
	return c.position
}

// FixedOn returns the followed entity, or the zero Entity while traveling.
func (c *Camera) FixedOn() ecs.Entity {
	return c.fixedOn
}

// SetSpeed sets the travel speed in pixels per second. It applies to the
// next Move. A speed <= 0 selects DefaultSpeed.
func (c *Camera) SetSpeed(speed int) {
	if speed <= 0 {
		speed = DefaultSpeed
	}
	c.speed = speed
}

func (c *Camera) Speed() int {
	return c.speed
}

// IsMoving reports whether the camera travels toward a point or scrolls
// across a separator.
func (c *Camera) IsMoving() bool {
	return !c.fixedOn.Valid() || c.crossing != nil
}

func (c *Camera) IsTraversingSeparator() bool {
	return c.crossing != nil
}

// Update recomputes the viewport. Call it once per tick.
func (c *Camera) Update() {
	if c.fixedOn.Valid() {
		c.updateFixedOn()
	} else if c.movement != nil {
		c.updateMoving()
	}
}

func (c *Camera) updateFixedOn() {
	if c.crossing == nil {
		center, ok := c.entityCenter(c.fixedOn)
		if !ok {
			return
		}
		area := common.NewRect(center.X-c.Width()/2, center.Y-c.Height()/2, c.Width(), c.Height())
		c.position = c.applySeparatorsAndMapBounds(area)
		return
	}

	cr := c.crossing
	now := c.clock.Now()
	finished := false
	for !finished && now >= cr.next {
		cr.position = cr.position.Add(cr.dx, cr.dy)
		cr.next++
		finished = cr.position == cr.target
	}

	// Separators are ignored here: the area is crossing one of them.
	c.position = c.applyMapBounds(c.position.WithXY(cr.position))

	if finished {
		c.finishCrossing()
		c.startPending()
	}
}

func (c *Camera) updateMoving() {
	c.movement.Update()
	c.position = c.position.WithXY(c.movement.XY())
	if !c.movement.IsFinished() {
		return
	}

	c.movement = nil
	if c.restoring {
		c.restoring = false
		c.fixedOn = c.hero()
		c.notifier.CameraBack()
		return
	}
	c.notifier.CameraReachedTarget()
}

// Move makes the camera travel until it is centered on (x, y), stopping on
// separators and map edges. Following stops and any previous travel is
// discarded. During a crossing the travel starts once the crossing arrives.
func (c *Camera) Move(x, y int) {
	if c.crossing != nil {
		c.pending = &pendingTravel{target: common.Point{X: x, Y: y}}
		return
	}
	c.startMove(x, y)
}

func (c *Camera) startMove(x, y int) {
	c.movement = nil
	c.fixedOn = 0
	c.restoring = false

	target := c.applySeparatorsAndMapBounds(
		common.NewRect(x-c.Width()/2, y-c.Height()/2, c.Width(), c.Height()),
	)
	c.movement = movement.NewTarget(c.clock, target.X, target.Y, c.speed)
	c.movement.SetXY(c.position.XY())
}

func (c *Camera) MovePoint(p common.Point) {
	c.Move(p.X, p.Y)
}

// MoveToEntity travels to the current center of e. The camera does not track
// e if it moves afterwards. It returns false when e has no position.
func (c *Camera) MoveToEntity(e ecs.Entity) bool {
	center, ok := c.entityCenter(e)
	if !ok {
		return false
	}
	c.MovePoint(center)
	return true
}

// Restore travels back to the hero and resumes following it on arrival. The
// hero is expected to stay still meanwhile. During a crossing the travel
// starts once the crossing arrives.
func (c *Camera) Restore() bool {
	center, ok := c.entityCenter(c.hero())
	if !ok {
		return false
	}
	if c.crossing != nil {
		c.pending = &pendingTravel{restore: true}
		return true
	}
	c.startMove(center.X, center.Y)
	c.restoring = true
	return true
}

func (c *Camera) startPending() {
	p := c.pending
	c.pending = nil
	switch {
	case p == nil:
	case p.restore:
		c.Restore()
	default:
		c.startMove(p.target.X, p.target.Y)
	}
}

// TraverseSeparator starts scrolling the viewport across sep. The followed
// entity must be touching sep. It panics if sep is not a live separator, if
// nothing is followed, or if a crossing is already in progress.
func (c *Camera) TraverseSeparator(sep ecs.Entity) {
	if c.crossing != nil {
		panic("camera: traverse separator: already traversing " + c.crossing.separator.String())
	}
	s, ok := ecs.Get(c.world, sep, component.SeparatorComponent)
	if !ok {
		panic("camera: traverse separator: missing separator " + sep.String())
	}
	hero := c.fixedOn
	center, ok := c.entityCenter(hero)
	if !ok {
		panic("camera: traverse separator: no followed entity")
	}

	cr := &crossing{
		position:  c.position.XY(),
		target:    c.position.XY(),
		separator: sep,
	}
	if s.Orientation == component.Horizontal {
		if center.Y < s.CenterY() {
			cr.direction = component.DirDown
			cr.dy = 1
			cr.target.Y += c.Height()
		} else {
			cr.direction = component.DirUp
			cr.dy = -1
			cr.target.Y -= c.Height()
		}
	} else {
		if center.X < s.CenterX() {
			cr.direction = component.DirRight
			cr.dx = 1
			cr.target.X += c.Width()
		} else {
			cr.direction = component.DirLeft
			cr.dx = -1
			cr.target.X -= c.Width()
		}
	}

	c.notifySeparator(sep, component.SeparatorActivating, cr.direction)
	cr.next = c.clock.Now()
	c.crossing = cr

	ecs.Update(c.world, hero, component.TransformComponent, func(t *component.Transform) {
		t.X += heroNudge * cr.dx
		t.Y += heroNudge * cr.dy
	})
}

func (c *Camera) finishCrossing() {
	cr := c.crossing
	c.crossing = nil
	c.notifySeparator(cr.separator, component.SeparatorActivated, cr.direction)
}

// notifySeparator records the activation phase on the separator and queues
// the matching world event.
func (c *Camera) notifySeparator(sep ecs.Entity, phase component.SeparatorPhase, dir component.Direction4) {
	ecs.Update(c.world, sep, component.SeparatorComponent, func(s *component.Separator) {
		s.Phase = phase
		s.Direction = dir
		if phase == component.SeparatorActivated {
			s.Activations++
		}
	})

	evt := ecs.EventSeparatorActivating
	if phase == component.SeparatorActivated {
		evt = ecs.EventSeparatorActivated
	}
	c.world.Events().Push(ecs.Event{
		Type: evt,
		Data: ecs.SeparatorEvent{Separator: sep, Direction: int(dir)},
	})
}

func (c *Camera) hero() ecs.Entity {
	e, ok := c.world.First(component.HeroTagComponent.Kind())
	if !ok {
		return 0
	}
	return e
}

func (c *Camera) entityCenter(e ecs.Entity) (common.Point, bool) {
	if !e.Valid() {
		return common.Point{}, false
	}
	t, ok := ecs.Get(c.world, e, component.TransformComponent)
	if !ok {
		return common.Point{}, false
	}
	b, _ := ecs.Get(c.world, e, component.BodyComponent)
	return common.NewRect(t.X, t.Y, b.Width, b.Height).Center(), true
}

func (c *Camera) separators() []component.Separator {
	ents := c.world.Query(component.SeparatorComponent.Kind())
	out := make([]component.Separator, 0, len(ents))
	for _, e := range ents {
		if s, ok := ecs.Get(c.world, e, component.SeparatorComponent); ok {
			out = append(out, s)
		}
	}
	return out
}

// mapSize returns the size of the loaded map. Without one, clamping to map
// edges is skipped.
func (c *Camera) mapSize() (common.Size, bool) {
	e, ok := c.world.First(component.MapBoundsComponent.Kind())
	if !ok {
		return common.Size{}, false
	}
	b, ok := ecs.Get(c.world, e, component.MapBoundsComponent)
	if !ok {
		return common.Size{}, false
	}
	return common.Size{Width: b.Width, Height: b.Height}, true
}

func (c *Camera) applyMapBounds(area common.Rect) common.Rect {
	size, ok := c.mapSize()
	if !ok {
		return area
	}
	return ApplyMapBounds(area, size)
}

func (c *Camera) applySeparatorsAndMapBounds(area common.Rect) common.Rect {
	return c.applyMapBounds(ApplySeparators(area, c.separators()))
}

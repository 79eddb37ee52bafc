package ecs

import "github.com/milk9111/roomcam/ecs/component"

// World owns entities, component storage, events, the frame clock and the
// system update order.
type World struct {
	entities entityStore
	stores   map[component.ComponentID]*SparseSet
	systems  []System
	events   EventQueue
	clock    *Clock
}

// NewWorld creates an empty ECS world ticking at DefaultTPS.
func NewWorld() *World {
	return &World{
		stores: make(map[component.ComponentID]*SparseSet),
		clock:  NewClock(DefaultTPS),
	}
}

// CreateEntity allocates a new entity.
func (w *World) CreateEntity() Entity {
	return w.entities.create()
}

// DestroyEntity kills e and drops its components. It returns false when e was
// already dead.
func (w *World) DestroyEntity(e Entity) bool {
	if !w.entities.destroy(e) {
		return false
	}
	for _, s := range w.stores {
		s.Remove(e)
	}
	return true
}

// IsAlive reports whether an entity handle is valid.
func (w *World) IsAlive(e Entity) bool {
	if w == nil {
		return false
	}
	return w.entities.isAlive(e)
}

// Entities returns every live entity.
func (w *World) Entities() []Entity {
	return w.entities.all()
}

func (w *World) store(kind component.Kind, create bool) *SparseSet {
	if w == nil || kind == nil {
		return nil
	}
	s, ok := w.stores[kind.ID()]
	if !ok && create {
		s = newSparseSet()
		w.stores[kind.ID()] = s
	}
	return s
}

// AddComponent sets the component of the given kind on e, replacing any
// previous value.
func (w *World) AddComponent(e Entity, kind component.Kind, value any) error {
	if kind == nil || kind.ID() == 0 {
		return component.ErrInvalidComponentKind
	}
	if !w.IsAlive(e) {
		return component.ErrEntityNotAlive
	}
	w.store(kind, true).Set(e, value)
	return nil
}

func (w *World) GetComponent(e Entity, kind component.Kind) (any, bool) {
	if !w.IsAlive(e) {
		return nil, false
	}
	return w.store(kind, false).Get(e)
}

func (w *World) HasComponent(e Entity, kind component.Kind) bool {
	if !w.IsAlive(e) {
		return false
	}
	return w.store(kind, false).Has(e)
}

func (w *World) RemoveComponent(e Entity, kind component.Kind) bool {
	s := w.store(kind, false)
	if s == nil {
		return false
	}
	return s.Remove(e)
}

// AddSystem appends a system to the update order.
func (w *World) AddSystem(s System) {
	if s == nil {
		return
	}
	w.systems = append(w.systems, s)
}

// Update advances the clock by one tick, then runs all systems once. Events
// pushed during the tick are dropped afterwards.
func (w *World) Update() {
	if w == nil {
		return
	}
	w.clock.Advance()
	for _, s := range w.systems {
		if s != nil {
			s.Update(w)
		}
	}
	w.events.flush()
}

// Events returns the world event queue.
func (w *World) Events() *EventQueue {
	if w == nil {
		return nil
	}
	return &w.events
}

// Clock returns the frame clock advanced by Update.
func (w *World) Clock() *Clock {
	if w == nil {
		return nil
	}
	return w.clock
}

// SetTPS replaces the frame clock with one ticking at tps. Elapsed ticks are
// reset.
func (w *World) SetTPS(tps int) {
	w.clock = NewClock(tps)
}

package ecs

import "github.com/milk9111/roomcam/ecs/component"

// Query returns the live entities owning every given kind, in the dense order
// of the smallest store.
func (w *World) Query(kinds ...component.Kind) []Entity {
	if w == nil || len(kinds) == 0 {
		return nil
	}
	stores := make([]*SparseSet, 0, len(kinds))
	for _, k := range kinds {
		s := w.store(k, false)
		if s == nil || s.Len() == 0 {
			return nil
		}
		stores = append(stores, s)
	}
	// iterate smaller set
	smallest := stores[0]
	for _, s := range stores[1:] {
		if s.Len() < smallest.Len() {
			smallest = s
		}
	}
	out := make([]Entity, 0, smallest.Len())
outer:
	for _, e := range smallest.Entities() {
		if !w.entities.isAlive(e) {
			continue
		}
		for _, s := range stores {
			if !s.Has(e) {
				continue outer
			}
		}
		out = append(out, e)
	}
	return out
}

// First returns the first live entity owning kind.
func (w *World) First(kind component.Kind) (Entity, bool) {
	s := w.store(kind, false)
	for _, e := range s.Entities() {
		if w.entities.isAlive(e) {
			return e, true
		}
	}
	return 0, false
}

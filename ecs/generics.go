package ecs

import "github.com/milk9111/roomcam/ecs/component"

func Add[T any](w *World, e Entity, handle component.ComponentHandle[T], value T) error {
	return w.AddComponent(e, handle.Kind(), value)
}

func Remove[T any](w *World, e Entity, handle component.ComponentHandle[T]) bool {
	return w.RemoveComponent(e, handle.Kind())
}

func Has[T any](w *World, e Entity, handle component.ComponentHandle[T]) bool {
	return w.HasComponent(e, handle.Kind())
}

func Get[T any](w *World, e Entity, handle component.ComponentHandle[T]) (T, bool) {
	var zero T
	value, ok := w.GetComponent(e, handle.Kind())
	if !ok {
		return zero, false
	}
	cast, ok := value.(T)
	if !ok {
		return zero, false
	}
	return cast, true
}

// Update reads the component of e, applies fn and writes the result back.
// It returns false when e has no such component.
func Update[T any](w *World, e Entity, handle component.ComponentHandle[T], fn func(*T)) bool {
	v, ok := Get(w, e, handle)
	if !ok {
		return false
	}
	fn(&v)
	return Add(w, e, handle, v) == nil
}

package entity

import (
	"errors"
	"fmt"

	"github.com/milk9111/roomcam/ecs"
	"github.com/milk9111/roomcam/ecs/component"
)

var ErrInvalidSeparator = errors.New("entity: invalid separator")

// SeparatorOrientation derives the orientation from the separator size: one
// side must be exactly component.SeparatorThickness and the other longer.
func SeparatorOrientation(width, height int) (component.Orientation, error) {
	const t = component.SeparatorThickness
	switch {
	case width == t && height > t:
		return component.Vertical, nil
	case height == t && width > t:
		return component.Horizontal, nil
	}
	return 0, fmt.Errorf("%w: size %dx%d, one side must be %d and the other longer", ErrInvalidSeparator, width, height, t)
}

func NewSeparator(w *ecs.World, name string, x, y, width, height int) (ecs.Entity, error) {
	orientation, err := SeparatorOrientation(width, height)
	if err != nil {
		return 0, fmt.Errorf("separator %q: %w", name, err)
	}
	e := w.CreateEntity()
	if err := ecs.Add(w, e, component.SeparatorComponent, component.Separator{
		Name:        name,
		X:           x,
		Y:           y,
		Width:       width,
		Height:      height,
		Orientation: orientation,
		Direction:   component.DirNone,
	}); err != nil {
		w.DestroyEntity(e)
		return 0, fmt.Errorf("separator %q: add component: %w", name, err)
	}
	return e, nil
}

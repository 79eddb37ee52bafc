package entity

import (
	"fmt"

	"github.com/milk9111/roomcam/ecs"
	"github.com/milk9111/roomcam/ecs/component"
	"github.com/milk9111/roomcam/prefabs"
)

// LoadedMap holds the entities created by LoadMapToWorld.
type LoadedMap struct {
	Bounds     ecs.Entity
	Hero       ecs.Entity
	Separators []ecs.Entity
}

func NewMapBounds(w *ecs.World, width, height int) (ecs.Entity, error) {
	e := w.CreateEntity()
	if err := ecs.Add(w, e, component.MapBoundsComponent, component.MapBounds{Width: width, Height: height}); err != nil {
		return 0, fmt.Errorf("map bounds: %w", err)
	}
	return e, nil
}

// LoadMapToWorld creates the map bounds, separators and hero of spec.
func LoadMapToWorld(w *ecs.World, spec *prefabs.MapSpec) (*LoadedMap, error) {
	if spec == nil {
		return nil, fmt.Errorf("load map: spec is nil")
	}

	bounds, err := NewMapBounds(w, spec.Width, spec.Height)
	if err != nil {
		return nil, fmt.Errorf("load map %q: %w", spec.Name, err)
	}
	loaded := &LoadedMap{Bounds: bounds}

	for i, s := range spec.Separators {
		name := s.Name
		if name == "" {
			name = fmt.Sprintf("separator_%d", i)
		}
		sep, err := NewSeparator(w, name, s.X, s.Y, s.Width, s.Height)
		if err != nil {
			return nil, fmt.Errorf("load map %q: %w", spec.Name, err)
		}
		loaded.Separators = append(loaded.Separators, sep)
	}

	hero, err := NewHeroAt(w, spec.Hero, spec.Spawn.X, spec.Spawn.Y)
	if err != nil {
		return nil, fmt.Errorf("load map %q: hero: %w", spec.Name, err)
	}
	loaded.Hero = hero
	return loaded, nil
}

package entity

import (
	"fmt"

	"github.com/milk9111/roomcam/ecs"
)

const defaultHeroPrefab = "hero.yaml"

// NewHeroAt builds the hero from its prefab and places its top-left corner at
// (x, y).
func NewHeroAt(w *ecs.World, prefab string, x, y int) (ecs.Entity, error) {
	if prefab == "" {
		prefab = defaultHeroPrefab
	}
	hero, err := BuildEntity(w, prefab)
	if err != nil {
		return 0, err
	}
	if err := SetEntityTransform(w, hero, x, y); err != nil {
		return 0, fmt.Errorf("hero: override transform: %w", err)
	}
	return hero, nil
}

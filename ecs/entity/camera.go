package entity

import (
	"github.com/milk9111/roomcam/ecs"
)

// NewCamera creates the entity that mirrors the camera viewport.
func NewCamera(w *ecs.World) (ecs.Entity, error) {
	return BuildEntity(w, "camera_entity.yaml")
}

package system

import (
	"github.com/milk9111/roomcam/camera"
	"github.com/milk9111/roomcam/ecs"
	"github.com/milk9111/roomcam/ecs/component"
)

// CameraSystem advances the camera once per tick and mirrors its viewport
// onto the camera entity.
type CameraSystem struct {
	camera    *camera.Camera
	camEntity ecs.Entity
}

func NewCameraSystem(cam *camera.Camera) *CameraSystem {
	return &CameraSystem{camera: cam}
}

func (cs *CameraSystem) Update(w *ecs.World) {
	if cs.camera == nil {
		return
	}
	cs.camera.Update()

	if !w.IsAlive(cs.camEntity) {
		camEntity, ok := w.First(component.CameraTagComponent.Kind())
		if !ok {
			return
		}
		cs.camEntity = camEntity
	}

	vp := cs.camera.Viewport()
	_ = ecs.Add(w, cs.camEntity, component.ViewportComponent, component.Viewport{
		X:      vp.X,
		Y:      vp.Y,
		Width:  vp.Width,
		Height: vp.Height,
		Moving: cs.camera.IsMoving(),
	})
}

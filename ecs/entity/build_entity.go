package entity

import (
	"fmt"
	"sort"

	"github.com/milk9111/roomcam/ecs"
	"github.com/milk9111/roomcam/ecs/component"
	"github.com/milk9111/roomcam/prefabs"
)

type buildContext struct {
	PrefabPath string
}

type componentBuildFn func(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error

var componentRegistry = map[string]componentBuildFn{
	"hero_tag":   addHeroTag,
	"camera_tag": addCameraTag,
	"transform":  addTransform,
	"body":       addBody,
	"viewport":   addViewport,
}

var componentBuildOrder = []string{
	"hero_tag",
	"camera_tag",
	"transform",
	"body",
	"viewport",
}

// BuildEntity creates an entity from the components listed in a prefab.
func BuildEntity(w *ecs.World, prefabPath string) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build entity: world is nil")
	}

	spec, err := prefabs.LoadEntityBuildSpec(prefabPath)
	if err != nil {
		return 0, fmt.Errorf("build entity: load %q: %w", prefabPath, err)
	}
	if len(spec.Components) == 0 {
		return 0, fmt.Errorf("build entity: prefab %q does not define components", prefabPath)
	}

	e := w.CreateEntity()
	ctx := &buildContext{PrefabPath: prefabPath}

	remaining := make(map[string]any, len(spec.Components))
	for k, v := range spec.Components {
		remaining[k] = v
	}

	for _, name := range componentBuildOrder {
		raw, ok := remaining[name]
		if !ok {
			continue
		}
		if err := componentRegistry[name](w, e, raw, ctx); err != nil {
			w.DestroyEntity(e)
			return 0, fmt.Errorf("build entity: %q: add %q: %w", prefabPath, name, err)
		}
		delete(remaining, name)
	}

	if len(remaining) > 0 {
		names := make([]string, 0, len(remaining))
		for name := range remaining {
			names = append(names, name)
		}
		sort.Strings(names)
		w.DestroyEntity(e)
		return 0, fmt.Errorf("build entity: %q: no builder for components %v", prefabPath, names)
	}

	return e, nil
}

func SetEntityTransform(w *ecs.World, e ecs.Entity, x, y int) error {
	return ecs.Add(w, e, component.TransformComponent, component.Transform{X: x, Y: y})
}

func addHeroTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.HeroTagComponent, component.HeroTag{})
}

func addCameraTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.CameraTagComponent, component.CameraTag{})
}

func addViewport(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.ViewportComponent, component.Viewport{})
}

func addTransform(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.TransformComponentSpec](raw)
	if err != nil {
		return err
	}
	return ecs.Add(w, e, component.TransformComponent, component.Transform{X: spec.X, Y: spec.Y})
}

func addBody(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.BodyComponentSpec](raw)
	if err != nil {
		return err
	}
	if spec.Width < 0 || spec.Height < 0 {
		return fmt.Errorf("negative body size %dx%d", spec.Width, spec.Height)
	}
	return ecs.Add(w, e, component.BodyComponent, component.Body{Width: spec.Width, Height: spec.Height})
}

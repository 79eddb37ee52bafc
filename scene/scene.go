// Package scene assembles a playable map: the world with its entities, the
// camera, the map script and the systems driving them.
package scene

import (
	"fmt"

	"github.com/milk9111/roomcam/camera"
	"github.com/milk9111/roomcam/ecs"
	"github.com/milk9111/roomcam/ecs/entity"
	"github.com/milk9111/roomcam/ecs/system"
	"github.com/milk9111/roomcam/prefabs"
)

type Scene struct {
	Name   string
	Map    *prefabs.MapSpec
	World  *ecs.World
	Camera *camera.Camera
	// Script is nil when the map has none.
	Script  *system.MapScript
	Hero    ecs.Entity
	Loaded  *entity.LoadedMap
	Scripts *system.ScriptSystem
}

// Load builds the named map with the given camera settings. A nil cfg loads
// camera.yaml.
func Load(name string, cfg *prefabs.CameraSpec) (*Scene, error) {
	if cfg == nil {
		spec, err := prefabs.LoadCameraSpec()
		if err != nil {
			return nil, fmt.Errorf("scene: %w", err)
		}
		cfg = spec
	}
	spec, err := prefabs.LoadMapSpec(name)
	if err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}
	return New(spec, cfg)
}

func New(spec *prefabs.MapSpec, cfg *prefabs.CameraSpec) (*Scene, error) {
	if spec == nil || cfg == nil {
		return nil, fmt.Errorf("scene: map and camera specs are required")
	}

	w := ecs.NewWorld()
	w.SetTPS(cfg.TPS)

	loaded, err := entity.LoadMapToWorld(w, spec)
	if err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}
	if _, err := entity.NewCamera(w); err != nil {
		return nil, fmt.Errorf("scene: camera entity: %w", err)
	}

	s := &Scene{Name: spec.Name, Map: spec, World: w, Hero: loaded.Hero, Loaded: loaded}

	var notifier camera.Notifier
	var listener system.SeparatorListener
	if spec.Script != "" {
		script, err := system.LoadMapScript(spec.Script)
		if err != nil {
			return nil, fmt.Errorf("scene: %w", err)
		}
		s.Script = script
		notifier = script
		listener = script
	}

	s.Camera = camera.New(w, w.Clock(), notifier, camera.Config{
		Width:  cfg.Width,
		Height: cfg.Height,
		Speed:  cfg.Speed,
	})
	if s.Script != nil {
		s.Script.Bind(s.Camera)
	}

	s.Scripts = system.NewScriptSystem(listener)
	w.AddSystem(system.NewSeparatorSystem(s.Camera))
	w.AddSystem(system.NewCameraSystem(s.Camera))
	w.AddSystem(s.Scripts)

	// Place the viewport before the first frame is drawn.
	s.Camera.Update()
	return s, nil
}

// Update runs one tick.
func (s *Scene) Update() {
	s.World.Update()
}

// ReloadScript recompiles the map script if name is the one this map uses.
func (s *Scene) ReloadScript(name string) (bool, error) {
	if s.Script == nil || name != s.Script.Name() {
		return false, nil
	}
	src, err := prefabs.LoadScript(name)
	if err != nil {
		return false, fmt.Errorf("scene: reload %s: %w", name, err)
	}
	if err := s.Script.Reload(src); err != nil {
		return false, err
	}
	return true, nil
}

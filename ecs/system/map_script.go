package system

import (
	"fmt"
	"log"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/roomcam/common"
	"github.com/milk9111/roomcam/ecs/component"
	"github.com/milk9111/roomcam/prefabs"
)

// Hook names a map script may define.
const (
	HookCameraReachedTarget = "on_camera_reached_target"
	HookCameraBack          = "on_camera_back"
	HookSeparatorActivating = "on_separator_activating"
	HookSeparatorActivated  = "on_separator_activated"
)

var mapScriptHooks = []string{
	HookCameraReachedTarget,
	HookCameraBack,
	HookSeparatorActivating,
	HookSeparatorActivated,
}

// CameraControl is the part of the camera a map script can drive.
type CameraControl interface {
	Move(x, y int)
	Restore() bool
	SetSpeed(speed int)
	IsMoving() bool
	Viewport() common.Rect
}

// MapScript runs the hooks of a tengo map script. It implements
// camera.Notifier. Scripts keep state across hooks in engine.state.
type MapScript struct {
	name     string
	compiled *tengo.Compiled
	defined  map[string]bool
	state    *tengo.Map
	camera   CameraControl

	// Logf receives engine.log output and hook errors.
	Logf func(format string, args ...any)
}

func LoadMapScript(name string) (*MapScript, error) {
	src, err := prefabs.LoadScript(name)
	if err != nil {
		return nil, fmt.Errorf("map script: load %s: %w", name, err)
	}
	return NewMapScript(name, src)
}

func NewMapScript(name string, src []byte) (*MapScript, error) {
	ms := &MapScript{
		name:  name,
		state: &tengo.Map{Value: map[string]tengo.Object{}},
		Logf:  log.Printf,
	}
	if err := ms.Reload(src); err != nil {
		return nil, err
	}
	return ms, nil
}

// Bind attaches the camera the script controls through its engine object.
func (ms *MapScript) Bind(cam CameraControl) {
	ms.camera = cam
}

func (ms *MapScript) Name() string {
	return ms.name
}

// Defines reports whether the script defines the given hook.
func (ms *MapScript) Defines(hook string) bool {
	return ms.defined[hook]
}

// Reload recompiles the script from src. State kept in engine.state survives.
// On error the previous script stays active.
func (ms *MapScript) Reload(src []byte) error {
	defined, err := definedHooks(src)
	if err != nil {
		return fmt.Errorf("map script: %s: %w", ms.name, err)
	}

	full := string(src) + "\n" + dispatchSource(defined)
	script := tengo.NewScript([]byte(full))
	_ = script.Add("__event", "")
	_ = script.Add("__engine", map[string]any{})
	_ = script.Add("__name", "")
	_ = script.Add("__direction", "")
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return fmt.Errorf("map script: %s: compile: %w", ms.name, err)
	}
	ms.compiled = compiled
	ms.defined = defined
	return nil
}

// definedHooks runs the bare script once to learn which hooks it defines.
func definedHooks(src []byte) (map[string]bool, error) {
	script := tengo.NewScript(src)
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))
	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}
	if err := compiled.Run(); err != nil {
		return nil, fmt.Errorf("run: %w", err)
	}
	defined := make(map[string]bool, len(mapScriptHooks))
	for _, hook := range mapScriptHooks {
		defined[hook] = compiled.IsDefined(hook)
	}
	return defined, nil
}

func dispatchSource(defined map[string]bool) string {
	var b strings.Builder
	for _, hook := range mapScriptHooks {
		if !defined[hook] {
			continue
		}
		args := "__engine"
		if hook == HookSeparatorActivating || hook == HookSeparatorActivated {
			args = "__engine, __name, __direction"
		}
		fmt.Fprintf(&b, "if __event == %q { %s(%s) }\n", hook, hook, args)
	}
	return b.String()
}

func (ms *MapScript) CameraReachedTarget() {
	ms.run(HookCameraReachedTarget, "", component.DirNone)
}

func (ms *MapScript) CameraBack() {
	ms.run(HookCameraBack, "", component.DirNone)
}

func (ms *MapScript) SeparatorActivating(name string, dir component.Direction4) {
	ms.run(HookSeparatorActivating, name, dir)
}

func (ms *MapScript) SeparatorActivated(name string, dir component.Direction4) {
	ms.run(HookSeparatorActivated, name, dir)
}

func (ms *MapScript) run(hook, name string, dir component.Direction4) {
	if ms == nil || ms.compiled == nil || !ms.defined[hook] {
		return
	}
	if err := ms.compiled.Set("__event", hook); err != nil {
		ms.Logf("map script: %s: %s: %v", ms.name, hook, err)
		return
	}
	if err := ms.compiled.Set("__engine", ms.engine()); err != nil {
		ms.Logf("map script: %s: %s: %v", ms.name, hook, err)
		return
	}
	_ = ms.compiled.Set("__name", name)
	_ = ms.compiled.Set("__direction", dir.String())
	if err := ms.compiled.Run(); err != nil {
		ms.Logf("map script: %s: %s: %v", ms.name, hook, err)
	}
}

func (ms *MapScript) engine() *tengo.ImmutableMap {
	values := map[string]tengo.Object{}

	values["state"] = ms.state

	values["log"] = &tengo.UserFunction{Name: "log", Value: func(args ...tengo.Object) (tengo.Object, error) {
		parts := make([]string, 0, len(args))
		for _, a := range args {
			parts = append(parts, objectAsString(a))
		}
		ms.Logf("map script: %s: %s", ms.name, strings.Join(parts, " "))
		return tengo.UndefinedValue, nil
	}}

	values["move_camera"] = &tengo.UserFunction{Name: "move_camera", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if ms.camera == nil || len(args) < 2 {
			return tengo.FalseValue, nil
		}
		x, okX := tengo.ToInt(args[0])
		y, okY := tengo.ToInt(args[1])
		if !okX || !okY {
			return tengo.FalseValue, nil
		}
		ms.camera.Move(x, y)
		return tengo.TrueValue, nil
	}}

	values["restore_camera"] = &tengo.UserFunction{Name: "restore_camera", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if ms.camera == nil || !ms.camera.Restore() {
			return tengo.FalseValue, nil
		}
		return tengo.TrueValue, nil
	}}

	values["set_camera_speed"] = &tengo.UserFunction{Name: "set_camera_speed", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if ms.camera == nil || len(args) < 1 {
			return tengo.FalseValue, nil
		}
		speed, ok := tengo.ToInt(args[0])
		if !ok {
			return tengo.FalseValue, nil
		}
		ms.camera.SetSpeed(speed)
		return tengo.TrueValue, nil
	}}

	values["camera_moving"] = &tengo.UserFunction{Name: "camera_moving", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if ms.camera != nil && ms.camera.IsMoving() {
			return tengo.TrueValue, nil
		}
		return tengo.FalseValue, nil
	}}

	values["camera_position"] = &tengo.UserFunction{Name: "camera_position", Value: func(args ...tengo.Object) (tengo.Object, error) {
		var vp common.Rect
		if ms.camera != nil {
			vp = ms.camera.Viewport()
		}
		return &tengo.Array{Value: []tengo.Object{
			&tengo.Int{Value: int64(vp.X)},
			&tengo.Int{Value: int64(vp.Y)},
			&tengo.Int{Value: int64(vp.Width)},
			&tengo.Int{Value: int64(vp.Height)},
		}}, nil
	}}

	return &tengo.ImmutableMap{Value: values}
}

func objectAsString(obj tengo.Object) string {
	if obj == nil {
		return ""
	}
	switch v := obj.(type) {
	case *tengo.String:
		return v.Value
	default:
		return strings.Trim(v.String(), "\"")
	}
}

package system

import (
	"fmt"
	"testing"

	"github.com/milk9111/roomcam/common"
	"github.com/milk9111/roomcam/ecs/component"
	"github.com/milk9111/roomcam/prefabs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCamera struct {
	moves    []common.Point
	restores int
	speed    int
	moving   bool
}

func (f *fakeCamera) Move(x, y int)         { f.moves = append(f.moves, common.Point{X: x, Y: y}) }
func (f *fakeCamera) Restore() bool         { f.restores++; return true }
func (f *fakeCamera) SetSpeed(speed int)    { f.speed = speed }
func (f *fakeCamera) IsMoving() bool        { return f.moving }
func (f *fakeCamera) Viewport() common.Rect { return common.NewRect(10, 20, 320, 240) }

const testMapScript = `
on_camera_reached_target := func(engine) {
	engine.log("reached", engine.camera_moving())
	engine.move_camera(100, 200)
	engine.set_camera_speed(60)
}

on_camera_back := func(engine) {
	p := engine.camera_position()
	engine.log("back at", p[0], p[1])
	engine.restore_camera()
}

on_separator_activated := func(engine, name, direction) {
	st := engine.state
	n := st[name]
	if is_undefined(n) {
		n = 0
	}
	st[name] = n + 1
	engine.log(name, direction, n + 1)
}
`

func newTestMapScript(t *testing.T, src string) (*MapScript, *fakeCamera, *[]string) {
	t.Helper()
	ms, err := NewMapScript("test", []byte(src))
	require.NoError(t, err)
	logs := &[]string{}
	ms.Logf = func(format string, args ...any) {
		*logs = append(*logs, fmt.Sprintf(format, args...))
	}
	cam := &fakeCamera{}
	ms.Bind(cam)
	return ms, cam, logs
}

func TestMapScriptDefinedHooks(t *testing.T) {
	ms, _, logs := newTestMapScript(t, testMapScript)

	assert.True(t, ms.Defines(HookCameraReachedTarget))
	assert.True(t, ms.Defines(HookCameraBack))
	assert.True(t, ms.Defines(HookSeparatorActivated))
	assert.False(t, ms.Defines(HookSeparatorActivating))

	ms.SeparatorActivating("middle", component.DirLeft)
	assert.Empty(t, *logs)
}

func TestMapScriptEngine(t *testing.T) {
	ms, cam, logs := newTestMapScript(t, testMapScript)

	cam.moving = true
	ms.CameraReachedTarget()
	assert.Equal(t, []common.Point{{X: 100, Y: 200}}, cam.moves)
	assert.Equal(t, 60, cam.speed)

	ms.CameraBack()
	assert.Equal(t, 1, cam.restores)

	assert.Equal(t, []string{
		"map script: test: reached true",
		"map script: test: back at 10 20",
	}, *logs)
}

func TestMapScriptStateSurvivesHooksAndReload(t *testing.T) {
	ms, _, logs := newTestMapScript(t, testMapScript)

	ms.SeparatorActivated("hall", component.DirDown)
	ms.SeparatorActivated("hall", component.DirUp)
	require.NoError(t, ms.Reload([]byte(testMapScript)))
	ms.SeparatorActivated("hall", component.DirDown)
	ms.SeparatorActivated("west", component.DirLeft)

	assert.Equal(t, []string{
		"map script: test: hall down 1",
		"map script: test: hall up 2",
		"map script: test: hall down 3",
		"map script: test: west left 1",
	}, *logs)
}

func TestMapScriptErrors(t *testing.T) {
	t.Run("compile_error", func(t *testing.T) {
		_, err := NewMapScript("broken", []byte("on_camera_back := func("))
		require.Error(t, err)
	})

	t.Run("reload_error_keeps_previous", func(t *testing.T) {
		ms, cam, _ := newTestMapScript(t, testMapScript)
		require.Error(t, ms.Reload([]byte("on_camera_back := func(")))
		ms.CameraReachedTarget()
		assert.Len(t, cam.moves, 1)
	})

	t.Run("runtime_error_is_logged", func(t *testing.T) {
		ms, _, logs := newTestMapScript(t, `on_camera_back := func(engine) { engine.missing() }`)
		ms.CameraBack()
		require.Len(t, *logs, 1)
		assert.Contains(t, (*logs)[0], HookCameraBack)
	})

	t.Run("unbound_camera", func(t *testing.T) {
		ms, err := NewMapScript("unbound", []byte(testMapScript))
		require.NoError(t, err)
		ms.Logf = func(string, ...any) {}
		assert.NotPanics(t, ms.CameraReachedTarget)
	})
}

func TestBundledMapScriptsCompile(t *testing.T) {
	for _, name := range []string{"dungeon.tengo", "corridor.tengo"} {
		t.Run(name, func(t *testing.T) {
			src, err := prefabs.LoadScript(name)
			require.NoError(t, err)
			_, err = NewMapScript(name, src)
			require.NoError(t, err)
		})
	}
}

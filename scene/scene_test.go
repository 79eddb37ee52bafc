package scene

import (
	"fmt"
	"testing"

	"github.com/milk9111/roomcam/common"
	"github.com/milk9111/roomcam/ecs"
	"github.com/milk9111/roomcam/ecs/component"
	"github.com/milk9111/roomcam/prefabs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadDungeon(t *testing.T) (*Scene, *[]string) {
	t.Helper()
	s, err := Load("dungeon", nil)
	require.NoError(t, err)
	require.NotNil(t, s.Script)
	logs := &[]string{}
	s.Script.Logf = func(format string, args ...any) {
		*logs = append(*logs, fmt.Sprintf(format, args...))
	}
	return s, logs
}

func (s *Scene) walk(dx, dy int) {
	ecs.Update(s.World, s.Hero, component.TransformComponent, func(tr *component.Transform) {
		tr.X += dx
		tr.Y += dy
	})
	s.Update()
}

const heroStep = 2

func heroCenter(t *testing.T, s *Scene) common.Point {
	t.Helper()
	tr, ok := ecs.Get(s.World, s.Hero, component.TransformComponent)
	require.True(t, ok)
	b, _ := ecs.Get(s.World, s.Hero, component.BodyComponent)
	return common.NewRect(tr.X, tr.Y, b.Width, b.Height).Center()
}

// walkCenter walks the hero until its center reaches target on one axis,
// holding still while the view scrolls across a separator. Outside crossings
// the viewport may move by at most one hero step per tick.
func walkCenter(t *testing.T, s *Scene, alongX bool, target int) {
	t.Helper()
	for i := 0; i < 2000; i++ {
		c := heroCenter(t, s)
		cur := c.Y
		if alongX {
			cur = c.X
		}
		if s.Camera.IsTraversingSeparator() {
			s.Update()
			continue
		}
		if cur == target {
			return
		}

		before := s.Camera.Viewport()
		step := common.ClampInt(target-cur, -heroStep, heroStep)
		if alongX {
			s.walk(step, 0)
		} else {
			s.walk(0, step)
		}
		if s.Camera.IsTraversingSeparator() {
			continue
		}
		after := s.Camera.Viewport()
		require.LessOrEqual(t, common.AbsInt(after.X-before.X), heroStep, "hero at %v: %v -> %v", c, before, after)
		require.LessOrEqual(t, common.AbsInt(after.Y-before.Y), heroStep, "hero at %v: %v -> %v", c, before, after)
	}
	t.Fatalf("hero center never reached %d", target)
}

func TestDungeonTourNeverJumps(t *testing.T) {
	s, _ := loadDungeon(t)

	walkCenter(t, s, true, 480)  // upper west -> upper middle
	walkCenter(t, s, false, 300) // down the hall into the lower west room
	walkCenter(t, s, true, 160)  // across the lower west room
	walkCenter(t, s, true, 1120) // lower west -> lower east
	walkCenter(t, s, false, 120) // up the hall into the upper east room
	walkCenter(t, s, true, 480)  // upper east -> upper middle
	walkCenter(t, s, true, 160)  // upper middle -> upper west

	assert.Equal(t, common.NewRect(0, 0, 320, 240), s.Camera.Viewport())
	want := map[string]int{"hall": 2, "upper_west": 2, "upper_east": 1, "lower_middle": 1}
	for _, e := range s.Loaded.Separators {
		sep, _ := ecs.Get(s.World, e, component.SeparatorComponent)
		assert.Equal(t, want[sep.Name], sep.Activations, sep.Name)
	}
}

func TestLoadPlacesViewportOnHero(t *testing.T) {
	s, _ := loadDungeon(t)
	assert.Equal(t, common.NewRect(0, 0, 320, 240), s.Camera.Viewport())
	assert.Equal(t, s.Hero, s.Camera.FixedOn())
	assert.Equal(t, 120, s.Camera.Speed())
	assert.Len(t, s.Loaded.Separators, 4)
}

func TestDungeonScriptFollowsCrossingsAndTravel(t *testing.T) {
	s, logs := loadDungeon(t)

	for i := 0; i < 100 && !s.Camera.IsTraversingSeparator(); i++ {
		s.walk(4, 0)
	}
	require.True(t, s.Camera.IsTraversingSeparator())
	for i := 0; i < 100 && s.Camera.IsMoving(); i++ {
		s.Update()
	}
	require.False(t, s.Camera.IsMoving())
	assert.Equal(t, common.NewRect(320, 0, 320, 240), s.Camera.Viewport())

	// The script sends the camera back once it reaches its target.
	s.Camera.Move(800, 360)
	for i := 0; i < 1000 && !s.Camera.FixedOn().Valid(); i++ {
		s.Update()
	}
	assert.Equal(t, s.Hero, s.Camera.FixedOn())
	assert.Equal(t, common.NewRect(320, 0, 320, 240), s.Camera.Viewport())

	assert.Equal(t, []string{
		"map script: dungeon.tengo: crossed upper_west going right (1)",
		"map script: dungeon.tengo: camera reached its target, heading back",
		"map script: dungeon.tengo: camera is following the hero again",
	}, *logs)
}

func TestReloadScript(t *testing.T) {
	s, _ := loadDungeon(t)

	reloaded, err := s.ReloadScript("corridor.tengo")
	require.NoError(t, err)
	assert.False(t, reloaded)

	reloaded, err = s.ReloadScript("dungeon.tengo")
	require.NoError(t, err)
	assert.True(t, reloaded)
}

func TestNewUsesCameraSpec(t *testing.T) {
	spec, err := prefabs.LoadMapSpec("corridor")
	require.NoError(t, err)

	s, err := New(spec, &prefabs.CameraSpec{Width: 160, Height: 120, Speed: 30, TPS: 30})
	require.NoError(t, err)
	assert.Equal(t, 160, s.Camera.Width())
	assert.Equal(t, 120, s.Camera.Height())
	assert.Equal(t, 30, s.Camera.Speed())

	for i := 0; i < 30; i++ {
		s.Update()
	}
	assert.Equal(t, uint32(1000), s.World.Clock().Now())
}

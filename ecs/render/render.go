// Package render draws a map as seen through the camera viewport.
package render

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/roomcam/common"
	"github.com/milk9111/roomcam/ecs"
	"github.com/milk9111/roomcam/ecs/component"
	"github.com/milk9111/roomcam/prefabs"
	"golang.org/x/image/colornames"
)

var (
	defaultBackground = colornames.Midnightblue
	defaultSeparator  = colornames.Goldenrod
	heroColor         = colornames.Crimson
	outsideColor      = colornames.Black
)

type Renderer struct {
	Background      color.Color
	SeparatorColors map[string]color.Color
	Debug           bool

	camEntity ecs.Entity
}

// NewRenderer takes its colors from spec. Missing colors fall back to
// defaults.
func NewRenderer(spec *prefabs.MapSpec, debug bool) *Renderer {
	r := &Renderer{
		Background:      defaultBackground,
		SeparatorColors: map[string]color.Color{},
		Debug:           debug,
	}
	if spec == nil {
		return r
	}
	if spec.Background != nil {
		r.Background = spec.Background.Color
	}
	for _, s := range spec.Separators {
		if s.Color != nil {
			r.SeparatorColors[s.Name] = s.Color.Color
		}
	}
	return r
}

func (r *Renderer) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil || screen == nil {
		return
	}
	if !w.IsAlive(r.camEntity) {
		if camEntity, ok := w.First(component.CameraTagComponent.Kind()); ok {
			r.camEntity = camEntity
		}
	}
	vp, ok := ecs.Get(w, r.camEntity, component.ViewportComponent)
	if !ok {
		return
	}
	camX, camY := float32(vp.X), float32(vp.Y)
	view := common.NewRect(vp.X, vp.Y, vp.Width, vp.Height)

	screen.Fill(outsideColor)
	if e, ok := w.First(component.MapBoundsComponent.Kind()); ok {
		b, _ := ecs.Get(w, e, component.MapBoundsComponent)
		vector.FillRect(screen, -camX, -camY, float32(b.Width), float32(b.Height), r.Background, false)
	}

	var lines []string
	for _, e := range w.Query(component.SeparatorComponent.Kind()) {
		sep, _ := ecs.Get(w, e, component.SeparatorComponent)
		if r.Debug {
			lines = append(lines, fmt.Sprintf("%s: %s x%d", sep.Name, sep.Direction, sep.Activations))
		}
		if !view.Intersects(common.NewRect(sep.X, sep.Y, sep.Width, sep.Height)) {
			continue
		}
		clr, ok := r.SeparatorColors[sep.Name]
		if !ok {
			clr = defaultSeparator
		}
		x, y := float32(sep.X)-camX, float32(sep.Y)-camY
		vector.StrokeRect(screen, x, y, float32(sep.Width), float32(sep.Height), 1, clr, false)
		if sep.Orientation == component.Horizontal {
			ly := float32(sep.Line()) - camY
			vector.StrokeLine(screen, x, ly, x+float32(sep.Width), ly, 1, clr, false)
		} else {
			lx := float32(sep.Line()) - camX
			vector.StrokeLine(screen, lx, y, lx, y+float32(sep.Height), 1, clr, false)
		}
	}

	for _, e := range w.Query(component.HeroTagComponent.Kind(), component.TransformComponent.Kind()) {
		t, _ := ecs.Get(w, e, component.TransformComponent)
		b, _ := ecs.Get(w, e, component.BodyComponent)
		if !view.Intersects(common.NewRect(t.X, t.Y, b.Width, b.Height)) {
			continue
		}
		vector.FillRect(screen, float32(t.X)-camX, float32(t.Y)-camY, float32(b.Width), float32(b.Height), heroColor, false)
	}

	if r.Debug {
		state := "following"
		if vp.Moving {
			state = "moving"
		}
		msg := fmt.Sprintf("camera %d,%d %s  FPS %.1f", vp.X, vp.Y, state, ebiten.ActualFPS())
		for _, l := range lines {
			msg += "\n" + l
		}
		ebitenutil.DebugPrint(screen, msg)
	}
}

package main

import (
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/roomcam/common"
	"github.com/milk9111/roomcam/ecs"
	"github.com/milk9111/roomcam/ecs/component"
	"github.com/milk9111/roomcam/ecs/render"
	"github.com/milk9111/roomcam/prefabs"
	"github.com/milk9111/roomcam/scene"
)

const (
	// heroStep is how far the hero walks per tick.
	heroStep   = 2
	speedDelta = 30
)

type Game struct {
	mapName string
	debug   bool

	cameraSpec *prefabs.CameraSpec
	scene      *scene.Scene
	renderer   *render.Renderer
	watcher    *prefabs.Watcher
}

func NewGame(mapName string, debug, watch bool) (*Game, error) {
	cameraSpec, err := prefabs.LoadCameraSpec()
	if err != nil {
		return nil, err
	}
	g := &Game{mapName: mapName, debug: debug, cameraSpec: cameraSpec}
	if err := g.load(); err != nil {
		return nil, err
	}

	if watch {
		w, err := prefabs.NewWatcher()
		if err != nil {
			log.Printf("hot reload disabled: %v", err)
		} else {
			g.watcher = w
		}
	}
	return g, nil
}

func (g *Game) load() error {
	s, err := scene.Load(g.mapName, g.cameraSpec)
	if err != nil {
		return fmt.Errorf("load map %s: %w", g.mapName, err)
	}
	g.scene = s
	g.renderer = render.NewRenderer(s.Map, g.debug)
	return nil
}

func (g *Game) TPS() int {
	if g.cameraSpec.TPS > 0 {
		return g.cameraSpec.TPS
	}
	return ecs.DefaultTPS
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}

func (g *Game) Update() error {
	g.pollWatcher()
	g.handleInput()
	g.scene.Update()
	return nil
}

func (g *Game) handleInput() {
	cam := g.scene.Camera

	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		g.debug = !g.debug
		g.renderer.Debug = g.debug
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyM) || inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		mx, my := ebiten.CursorPosition()
		screen := common.NewRect(0, 0, cam.Width(), cam.Height())
		if screen.Contains(common.Point{X: mx, Y: my}) {
			vp := cam.Viewport()
			cam.Move(vp.X+mx, vp.Y+my)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		if !cam.Restore() {
			log.Printf("camera: no hero to restore to")
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEqual) || inpututil.IsKeyJustPressed(ebiten.KeyKPAdd) {
		cam.SetSpeed(cam.Speed() + speedDelta)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyMinus) || inpututil.IsKeyJustPressed(ebiten.KeyKPSubtract) {
		cam.SetSpeed(max(speedDelta, cam.Speed()-speedDelta))
	}

	// The hero holds still while the view scrolls across a separator.
	if cam.IsTraversingSeparator() {
		return
	}
	dx, dy := 0, 0
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) || ebiten.IsKeyPressed(ebiten.KeyA) {
		dx -= heroStep
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) || ebiten.IsKeyPressed(ebiten.KeyD) {
		dx += heroStep
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) || ebiten.IsKeyPressed(ebiten.KeyW) {
		dy -= heroStep
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) || ebiten.IsKeyPressed(ebiten.KeyS) {
		dy += heroStep
	}
	if dx == 0 && dy == 0 {
		return
	}
	g.moveHero(dx, dy)
}

// moveHero walks the hero, keeping it inside the map.
func (g *Game) moveHero(dx, dy int) {
	w := g.scene.World
	b, _ := ecs.Get(w, g.scene.Hero, component.BodyComponent)
	ecs.Update(w, g.scene.Hero, component.TransformComponent, func(t *component.Transform) {
		t.X = common.ClampInt(t.X+dx, 0, g.scene.Map.Width-b.Width)
		t.Y = common.ClampInt(t.Y+dy, 0, g.scene.Map.Height-b.Height)
	})
}

func (g *Game) pollWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case change, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			g.applyChange(change)
		case err := <-g.watcher.Errors:
			log.Printf("hot reload: %v", err)
		default:
			return
		}
	}
}

func (g *Game) applyChange(change prefabs.Change) {
	switch change.Kind {
	case prefabs.ChangeCamera:
		spec, err := prefabs.LoadCameraSpec()
		if err != nil {
			log.Printf("hot reload: %v", err)
			return
		}
		g.cameraSpec = spec
		g.scene.Camera.SetSpeed(spec.Speed)
		log.Printf("hot reload: camera speed %d", g.scene.Camera.Speed())
	case prefabs.ChangeScript:
		reloaded, err := g.scene.ReloadScript(change.Name)
		if err != nil {
			log.Printf("hot reload: %v", err)
			return
		}
		if reloaded {
			log.Printf("hot reload: script %s", change.Name)
		}
	case prefabs.ChangeMap, prefabs.ChangePrefab:
		if change.Kind == prefabs.ChangeMap && prefabs.MapSpecPath(change.Name) != prefabs.MapSpecPath(g.mapName) {
			return
		}
		if err := g.load(); err != nil {
			log.Printf("hot reload: %v", err)
			return
		}
		log.Printf("hot reload: %s %s", change.Kind, change.Name)
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.Draw(g.scene.World, screen)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.scene.Camera.Width(), g.scene.Camera.Height()
}

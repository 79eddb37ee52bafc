package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	mapName := flag.String("map", "dungeon", "map name in prefabs/maps/ (basename, .yaml optional)")
	debug := flag.Bool("debug", false, "show camera and separator state")
	scale := flag.Int("scale", 3, "window scale")
	watch := flag.Bool("watch", true, "reload prefabs/ and scripts on change")
	flag.Parse()

	game, err := NewGame(*mapName, *debug, *watch)
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	ebiten.SetTPS(game.TPS())
	ebiten.SetWindowSize(game.scene.Camera.Width()*(*scale), game.scene.Camera.Height()*(*scale))
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowTitle("roomcam - " + *mapName)

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}

package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/locomotion/common"
)

func main() {
	debug := flag.Bool("debug", false, "log every locomotion transition")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	configName := flag.String("config", "locomotion.yaml", "locomotion tuning prefab")
	arenaName := flag.String("arena", "arena.yaml", "arena prefab")
	scriptName := flag.String("script", "", "drive the character from a prefab script instead of the keyboard")
	watch := flag.Bool("watch", true, "reload prefabs from disk when they change")
	flag.Parse()

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(common.BaseWidth, common.BaseHeight)
	ebiten.SetWindowTitle("locomotion")

	game, err := NewGame(GameOptions{
		Config: *configName,
		Arena:  *arenaName,
		Script: *scriptName,
		Debug:  *debug,
		Watch:  *watch,
	})
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}

package main

import (
	"flag"
	"log"

	"github.com/automoto/platcollide/config"
	"github.com/automoto/platcollide/fonts"
	"github.com/automoto/platcollide/sim/core"
	"github.com/automoto/platcollide/viewer"
	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/image/font/gofont/goregular"
)

func main() {
	configPath := flag.String("config", "", "YAML file overriding the default tuning")
	levelDir := flag.String("levels", "", "Directory of .tmx levels (empty = embedded levels)")
	level := flag.String("level", "", "Level name to open (empty = last viewed level)")
	logCollisions := flag.Bool("logcollisions", false, "Log every hit of every body")
	flag.Parse()

	if *configPath != "" {
		if err := config.Load(*configPath); err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
	}
	if *levelDir != "" {
		config.Sim.LevelDir = *levelDir
	}
	config.Debug.LogCollisions = *logCollisions

	if err := fonts.LoadFont(fonts.HUD, goregular.TTF); err != nil {
		log.Fatalf("Failed to load font: %v", err)
	}
	if err := fonts.LoadFontWithSize(fonts.HUDSmall, goregular.TTF, 8); err != nil {
		log.Fatalf("Failed to load font: %v", err)
	}

	levels, err := core.LoadLevelSet(config.Sim.LevelDir)
	if err != nil {
		log.Fatalf("Failed to load levels: %v", err)
	}

	// Initialize persistence and load saved settings
	store, err := viewer.OpenSettingsStore("platcollide")
	if err != nil {
		log.Printf("Warning: Could not initialize persistence: %v", err)
	}
	settings, err := store.Load()
	if err != nil {
		log.Printf("Warning: Could not load settings: %v", err)
	}
	if *level != "" {
		settings.Level = *level
	} else if settings.Level == "" {
		settings.Level = config.Sim.Level
	}

	game := viewer.NewGame(levels, store, settings)

	ebiten.SetWindowTitle("platcollide")
	ebiten.SetWindowSize(game.WindowSize())
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeOnlyFullscreenEnabled)

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}

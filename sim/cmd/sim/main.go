package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	cfg "github.com/automoto/platcollide/config"
	"github.com/automoto/platcollide/sim/core"
)

func main() {
	configPath := flag.String("config", "", "YAML file overriding the default tuning")
	levelDir := flag.String("levels", "", "Directory of .tmx levels (empty = embedded levels)")
	level := flag.String("level", "", "Level name to run (empty = first level)")
	tickRate := flag.Int("tickrate", 0, "Simulation tick rate (0 = config value)")
	ticks := flag.Uint64("ticks", 0, "Stop after this many ticks (0 = run until interrupted)")
	fast := flag.Bool("fast", false, "Run ticks back to back instead of in real time (needs -ticks)")
	autoWalk := flag.Bool("autowalk", true, "Walk the player back and forth between walls")
	autoJump := flag.Bool("autojump", true, "Make the player jump periodically")
	logCollisions := flag.Bool("logcollisions", false, "Log every hit of every body")
	flag.Parse()

	if *configPath != "" {
		if err := cfg.Load(*configPath); err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
	}
	if *levelDir != "" {
		cfg.Sim.LevelDir = *levelDir
	}
	if *level != "" {
		cfg.Sim.Level = *level
	}
	if *tickRate > 0 {
		cfg.Sim.TickRate = *tickRate
	}
	// Flags given explicitly win over the config file.
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "autowalk":
			cfg.Sim.AutoWalk = *autoWalk
		case "autojump":
			cfg.Sim.AutoJumps = *autoJump
		case "logcollisions":
			cfg.Debug.LogCollisions = *logCollisions
		}
	})

	levels, err := core.LoadLevelSet(cfg.Sim.LevelDir)
	if err != nil {
		log.Fatalf("Failed to load levels: %v", err)
	}
	index, err := levels.Index(cfg.Sim.Level)
	if err != nil {
		log.Fatalf("Failed to select level: %v", err)
	}

	sim := core.NewSimulation(levels, index, cfg.Sim.TickRate)
	loop := core.NewGameLoop(sim, cfg.Sim.TickRate, cfg.Sim.LogEvery, *ticks)

	log.Printf("Running level %q (tick rate: %d/s, ticks: %d)", sim.Level(), cfg.Sim.TickRate, *ticks)

	if *fast && *ticks > 0 {
		loop.RunFast()
		log.Print(sim.Summary())
		return
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Println("Shutting down simulation...")
		loop.Stop()
		log.Print(sim.Summary())
		os.Exit(0)
	}()

	loop.Run()
	log.Print(sim.Summary())
}

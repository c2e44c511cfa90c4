package viewer

import (
	"image/color"
	"log"

	"github.com/automoto/platcollide/components"
	cfg "github.com/automoto/platcollide/config"
	"github.com/automoto/platcollide/sim/core"
	"github.com/automoto/platcollide/tags"
	"github.com/hajimehoshi/ebiten/v2"
)

// Game runs a Simulation inside an ebiten window.
type Game struct {
	sim      *core.Simulation
	camera   Camera
	settings Settings
	store    *SettingsStore
}

// NewGame starts the saved level, or the first one when the saved name is
// unknown.
func NewGame(levels *core.LevelSet, store *SettingsStore, settings Settings) *Game {
	g := &Game{
		store:    store,
		settings: settings,
	}
	index, err := levels.Index(settings.Level)
	if err != nil {
		log.Printf("Warning: %v", err)
		index = 0
	}
	g.sim = core.NewSimulation(levels, index, cfg.Sim.TickRate,
		core.WithInput(UpdateInput),
		core.WithRenderers(g.DrawTiles, g.DrawDeadZones, g.DrawBodies, g.DrawGrid, g.DrawGraph, g.DrawHUD),
	)
	g.settings.Level = g.sim.Level()
	g.snapCamera()
	return g
}

func (g *Game) Update() error {
	g.sim.Step()

	entry, ok := components.Input.First(g.sim.ECS().World)
	if !ok {
		return nil
	}
	input := components.Input.Get(entry)

	switch {
	case input.Action(cfg.ActionNextLevel).JustPressed:
		g.sim.SetLevel((g.sim.LevelIndex() + 1) % g.sim.LevelCount())
		g.settings.Level = g.sim.Level()
		g.store.saveQuietly(g.settings)
		g.snapCamera()
		return nil
	case input.Action(cfg.ActionReset).JustPressed:
		g.sim.Reset()
		g.snapCamera()
		return nil
	}

	if g.settings.HandleActions(input) {
		g.applyWindowSize()
		g.store.saveQuietly(g.settings)
	}

	g.followPlayer(false)
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	// Always clear screen to prevent white flashes from OS window background
	screen.Fill(color.Black)
	g.sim.ECS().Draw(screen)
}

func (g *Game) Layout(width, height int) (int, int) {
	return cfg.C.Width, cfg.C.Height
}

// applyWindowSize resizes the window to the selected resolution.
func (g *Game) applyWindowSize() {
	if ebiten.IsFullscreen() {
		return
	}
	res := cfg.Window.ResolutionAt(g.settings.ResolutionIndex)
	ebiten.SetWindowSize(res.Width, res.Height)
}

// WindowSize is the resolution the window should open with.
func (g *Game) WindowSize() (int, int) {
	res := cfg.Window.ResolutionAt(g.settings.ResolutionIndex)
	return res.Width, res.Height
}

func (g *Game) snapCamera() { g.followPlayer(true) }

func (g *Game) followPlayer(snap bool) {
	w := g.sim.ECS().World
	playerEntry, ok := tags.Player.First(w)
	if !ok {
		return
	}
	levelEntry, ok := components.Level.First(w)
	if !ok {
		return
	}
	level := components.Level.Get(levelEntry).CurrentLevel
	if level == nil {
		return
	}

	target := components.Body.Get(playerEntry).Box.Center()
	levelW, levelH := float64(level.MapWidth), float64(level.MapHeight)
	screenW, screenH := float64(cfg.C.Width), float64(cfg.C.Height)
	if snap {
		g.camera.Snap(target, levelW, levelH, screenW, screenH)
		return
	}
	g.camera.Follow(target, levelW, levelH, screenW, screenH)
}

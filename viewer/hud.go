package viewer

import (
	"fmt"

	cfg "github.com/automoto/platcollide/config"
	"github.com/automoto/platcollide/fonts"
	"github.com/automoto/platcollide/sim/core"
	"github.com/automoto/platcollide/systems"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text" //nolint:staticcheck // TODO: migrate to text/v2
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/yohamta/donburi/ecs"
)

const (
	hudMargin     = 6
	hudLineHeight = 12
)

// HUDLines formats the summary shown in the corner of the viewer.
func HUDLines(level string, sum core.Summary, paused bool) []string {
	state := "running"
	if paused {
		state = "paused"
	}
	return []string{
		fmt.Sprintf("%s  tick %d  %s", level, sum.Tick, state),
		fmt.Sprintf("objects %d  movers %d  pairs %d  graph %d",
			sum.Stats.Objects, sum.Stats.Movers, sum.Stats.Pairs, sum.Stats.GraphNodes),
		fmt.Sprintf("carried %d  crushes %d  respawns %d", sum.Stats.Carried, sum.Stats.Crushes, sum.Respawns),
		fmt.Sprintf("player %.1f, %.1f  grounded %v", sum.Player.X, sum.Player.Y, sum.Grounded),
	}
}

// DrawHUD renders tick statistics and key hints in the top-left corner.
func (g *Game) DrawHUD(e *ecs.ECS, screen *ebiten.Image) {
	if !g.settings.ShowHUD {
		return
	}
	paused := systems.GetOrCreatePause(e).IsPaused
	lines := HUDLines(g.sim.Level(), g.sim.Summary(), paused)
	lines = append(lines, "F1 hud  F2 grid  F3 graph  F4 size  P pause  N step  R reset  Tab level")

	vector.FillRect(screen, 0, 0, float32(screen.Bounds().Dx()), float32(hudMargin*2+hudLineHeight*len(lines)), cfg.Viewer.GridColor, false)
	for i, line := range lines {
		face := fonts.HUDSmall.Get()
		if i == 0 {
			face = fonts.HUD.Get()
		}
		text.Draw(screen, line, face, hudMargin, hudMargin+hudLineHeight*(i+1)-2, cfg.Viewer.HUDColor)
	}
}

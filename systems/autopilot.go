package systems

import (
	"github.com/automoto/platcollide/components"
	cfg "github.com/automoto/platcollide/config"
	"github.com/automoto/platcollide/shared/gamemath"
	"github.com/automoto/platcollide/tags"
	"github.com/yohamta/donburi/ecs"
)

const (
	// autoJumpEvery is how many ticks the autopilot waits between jumps.
	autoJumpEvery = 90
	// pitLookAhead and pitDepth size the probe for a gap in front of the
	// player.
	pitLookAhead = 8.0
	pitDepth     = 48.0
)

// UpdateAutopilot drives the player without a keyboard for the headless
// simulation: it walks until blocked, turns around, and jumps now and then
// or when the floor ends in front of it.
func UpdateAutopilot(ecs *ecs.ECS) {
	input := getInput(ecs)
	if input == nil {
		return
	}
	input.Swap()

	playerEntry, ok := tags.Player.First(ecs.World)
	if !ok {
		return
	}
	player := components.Player.Get(playerEntry)
	body := components.Body.Get(playerEntry)

	if cfg.Sim.AutoWalk {
		if body.Hit.Right && player.Direction == cfg.DirectionRight {
			player.Direction = cfg.DirectionLeft
		} else if body.Hit.Left && player.Direction == cfg.DirectionLeft {
			player.Direction = cfg.DirectionRight
		}
		if player.Direction == cfg.DirectionRight {
			input.Current[cfg.ActionMoveRight] = true
		} else {
			input.Current[cfg.ActionMoveLeft] = true
		}
	}

	if cfg.Sim.AutoJumps {
		if clock := getClock(ecs); clock != nil && clock.Tick%autoJumpEvery == 0 {
			input.Current[cfg.ActionJump] = true
		}
		if components.Physics.Get(playerEntry).Grounded && pitAhead(ecs, body, player.Direction) {
			input.Current[cfg.ActionJump] = true
		}
	}
}

// pitAhead casts a ray down just in front of the body and reports whether it
// finds nothing to stand on.
func pitAhead(ecs *ecs.ECS, body *components.BodyData, direction float64) bool {
	engine := getEngine(ecs)
	if engine == nil {
		return false
	}
	x := body.Box.Center().X + direction*(body.Box.Width()/2+pitLookAhead)
	start := gamemath.Vector{X: x, Y: body.Box.Bottom + 1}
	end := gamemath.Vector{X: x, Y: body.Box.Bottom + pitDepth}
	return engine.FreeLineOfSight(start, end, false, body)
}

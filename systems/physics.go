package systems

import (
	"github.com/automoto/platcollide/components"
	cfg "github.com/automoto/platcollide/config"
	"github.com/automoto/platcollide/shared/gamemath"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// UpdatePhysics applies friction, gravity and speed limits, then turns the
// speeds into the movement bodies request for this tick.
func UpdatePhysics(ecs *ecs.ECS) {
	scale := frameScale(ecs)
	components.Physics.Each(ecs.World, func(e *donburi.Entry) {
		physics := components.Physics.Get(e)

		friction := physics.Friction
		if physics.OnIce {
			friction = cfg.Physics.IceFriction
		}
		physics.SpeedX = gamemath.ApplyFriction(physics.SpeedX, friction)
		physics.SpeedX = gamemath.ClampSpeed(physics.SpeedX, physics.MaxSpeed)

		// Apply gravity
		physics.SpeedY += physics.Gravity
		physics.SpeedY = gamemath.Clamp(physics.SpeedY, cfg.Physics.MaxRiseSpeed, cfg.Physics.MaxFallSpeed)

		move := gamemath.Vector{X: physics.SpeedX, Y: physics.SpeedY}.Scale(scale)
		if physics.InWater {
			move = move.Scale(cfg.Physics.WaterDrag)
		}
		if e.HasComponent(components.Body) {
			components.Body.Get(e).Move = move
		}

		// Track last safe ground position for player respawn
		if e.HasComponent(components.Player) && physics.Grounded {
			body := components.Body.Get(e)
			player := components.Player.Get(e)
			player.LastSafe = body.Box.Pos()
		}
	})
}

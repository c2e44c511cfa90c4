package systems

import (
	"github.com/automoto/platcollide/components"
	cfg "github.com/automoto/platcollide/config"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

func UpdatePlayer(ecs *ecs.ECS) {
	input := getInput(ecs)
	if input == nil {
		return
	}
	components.Player.Each(ecs.World, func(playerEntry *donburi.Entry) {
		player := components.Player.Get(playerEntry)
		physics := components.Physics.Get(playerEntry)

		handleJumpInput(input.Action(cfg.ActionJump), player, physics)
		handleMovementInput(input.Action(cfg.ActionMoveLeft), input.Action(cfg.ActionMoveRight), player, physics)
	})
}

func handleJumpInput(jumpAction components.ActionState, player *components.PlayerData, physics *components.PhysicsData) {
	if !jumpAction.JustPressed || !physics.Grounded {
		return
	}
	physics.SpeedY = -player.JumpSpeed
	physics.Grounded = false
	physics.OnGround = nil
}

func handleMovementInput(moveLeftAction, moveRightAction components.ActionState, player *components.PlayerData, physics *components.PhysicsData) {
	if moveRightAction.Pressed {
		physics.SpeedX += physics.AccelX
		player.Direction = cfg.DirectionRight
	}
	if moveLeftAction.Pressed {
		physics.SpeedX -= physics.AccelX
		player.Direction = cfg.DirectionLeft
	}
}

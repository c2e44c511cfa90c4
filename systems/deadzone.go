package systems

import (
	"log"

	"github.com/automoto/platcollide/components"
	"github.com/automoto/platcollide/shared/gamemath"
	"github.com/automoto/platcollide/tags"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// UpdateDeadZones moves every sensor to its body and respawns players, or
// removes crates, that fell into a dead zone.
func UpdateDeadZones(ecs *ecs.ECS) {
	var fallen []*donburi.Entry
	components.Object.Each(ecs.World, func(e *donburi.Entry) {
		if !e.HasComponent(components.Body) {
			return
		}
		obj := components.Object.Get(e).Object
		syncSensor(obj, components.Body.Get(e).Box)
		if checkDeadZone(obj) {
			fallen = append(fallen, e)
		}
	})

	for _, e := range fallen {
		if e.HasComponent(tags.Player) {
			RespawnPlayerNearDeath(ecs, e)
			continue
		}
		log.Printf("%s fell into a dead zone", components.Body.Get(e).Name)
		RemoveBody(ecs, e)
	}
}

func syncSensor(obj *resolv.Object, box gamemath.Rect) {
	obj.X = box.Left
	obj.Y = box.Top
	obj.Update()
}

// checkDeadZone returns true if the object is colliding with a dead zone
func checkDeadZone(obj *resolv.Object) bool {
	check := obj.Check(0, 0, tags.ResolvDeadZone)
	return check != nil
}

// RespawnPlayer resets the player to its spawn point.
func RespawnPlayer(ecs *ecs.ECS, e *donburi.Entry) {
	player := components.Player.Get(e)
	resetPlayerAtPosition(ecs, e, player.Spawn)
}

// RespawnPlayerNearDeath respawns the player at the last place it stood
// safely, or at its spawn point when that place is blocked now.
func RespawnPlayerNearDeath(ecs *ecs.ECS, e *donburi.Entry) {
	player := components.Player.Get(e)
	body := components.Body.Get(e)

	pos := player.LastSafe
	if !isPositionSafe(ecs, body, body.Box.SetPos(pos)) {
		pos = player.Spawn
	}
	resetPlayerAtPosition(ecs, e, pos)
}

func resetPlayerAtPosition(ecs *ecs.ECS, e *donburi.Entry, pos gamemath.Vector) {
	body := components.Body.Get(e)
	body.SetPos(pos.X, pos.Y)
	if engine := getEngine(ecs); engine != nil {
		engine.MoveObject(body)
	}
	if e.HasComponent(components.Object) {
		syncSensor(components.Object.Get(e).Object, body.Box)
	}

	physics := components.Physics.Get(e)
	physics.SpeedX = 0
	physics.SpeedY = 0
	physics.OnGround = nil
	physics.Grounded = false

	player := components.Player.Get(e)
	player.Respawns++
}

// isPositionSafe reports whether r is free of tiles, statics and platforms.
func isPositionSafe(ecs *ecs.ECS, body *components.BodyData, r gamemath.Rect) bool {
	engine := getEngine(ecs)
	if engine == nil {
		return true
	}
	return engine.IsFreeOfTiles(r, false) &&
		engine.IsFreeOfStatics(r, body, false) &&
		engine.IsFreeOfMovingStatics(r, body)
}

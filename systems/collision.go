package systems

import (
	"log"

	"github.com/automoto/platcollide/collision"
	"github.com/automoto/platcollide/components"
	cfg "github.com/automoto/platcollide/config"
	"github.com/automoto/platcollide/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// UpdateCollisions runs one collision tick and feeds the results back into
// the physics of every body.
func UpdateCollisions(ecs *ecs.ECS) {
	engine := getEngine(ecs)
	if engine == nil {
		return
	}
	dt := tickDT(ecs)
	engine.HandleCollisions(dt)
	advanceTilemaps(ecs, dt)

	var crushed []*donburi.Entry
	components.Physics.Each(ecs.World, func(e *donburi.Entry) {
		if !e.HasComponent(components.Body) {
			return
		}
		body := components.Body.Get(e)
		physics := components.Physics.Get(e)
		resolveHit(physics, body.Hit)
		updateGround(engine, physics, body)

		physics.OnIce = body.Attributes&collision.TileIce != 0
		physics.InWater = body.Attributes&collision.TileWater != 0

		if cfg.Debug.LogCollisions && body.Hit.Any() {
			log.Printf("tick %d: %s hit %+v at %.2f,%.2f", engine.Stats().Tick, body.Name, body.Hit, body.Box.Left, body.Box.Top)
		}
		if body.Crushed {
			crushed = append(crushed, e)
		}
	})

	for _, e := range crushed {
		handleCrush(ecs, e)
	}
}

// resolveHit stops the speed component pointing into a surface.
func resolveHit(physics *components.PhysicsData, hit collision.Hit) {
	if hit.Bottom && physics.SpeedY > 0 {
		physics.SpeedY = 0
	}
	if hit.Top && physics.SpeedY < 0 {
		physics.SpeedY = 0
	}
	if hit.Left && physics.SpeedX < 0 {
		physics.SpeedX = 0
	}
	if hit.Right && physics.SpeedX > 0 {
		physics.SpeedX = 0
	}
}

func updateGround(engine *collision.Engine, physics *components.PhysicsData, body *components.BodyData) {
	physics.Grounded = body.OnGround()
	physics.OnGround = nil
	if parent, ok := engine.Parent(body).(*components.BodyData); ok && parent != nil {
		physics.OnGround = parent.Entry
		physics.Grounded = true
	}
}

// handleCrush respawns a crushed player and removes a crushed crate.
func handleCrush(ecs *ecs.ECS, e *donburi.Entry) {
	body := components.Body.Get(e)
	log.Printf("%s crushed at %.1f,%.1f", body.Name, body.Box.Left, body.Box.Top)
	if e.HasComponent(tags.Player) {
		RespawnPlayer(ecs, e)
		return
	}
	RemoveBody(ecs, e)
}

// RemoveBody takes an entity out of the collision engine and the world.
func RemoveBody(ecs *ecs.ECS, e *donburi.Entry) {
	if engine := getEngine(ecs); engine != nil {
		engine.DeleteObject(components.Body.Get(e))
	}
	if e.HasComponent(components.Object) {
		if spaceEntry, ok := components.Space.First(ecs.World); ok {
			components.Space.Get(spaceEntry).Remove(components.Object.Get(e).Object)
		}
	}
	ecs.World.Remove(e.Entity())
}

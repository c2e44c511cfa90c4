package factory

import (
	"github.com/automoto/platcollide/archetypes"
	"github.com/automoto/platcollide/collision"
	"github.com/automoto/platcollide/components"
	cfg "github.com/automoto/platcollide/config"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// CreateSpace creates the resolv sensor space used for trigger zones.
func CreateSpace(ecs *ecs.ECS, width, height, cellWidth, cellHeight int) *donburi.Entry {
	space := archetypes.Space.Spawn(ecs)
	spaceData := resolv.NewSpace(width, height, cellWidth, cellHeight)
	components.Space.Set(space, spaceData)
	return space
}

// EngineOptions converts the collision config into engine options.
func EngineOptions(c cfg.CollisionConfig) collision.Options {
	return collision.Options{
		CellWidth:         c.CellWidth,
		CellHeight:        c.CellHeight,
		QueryMargin:       c.QueryMargin,
		MaxSpeed:          c.MaxSpeed,
		ShiftDelta:        c.ShiftDelta,
		Epsilon:           c.Epsilon,
		Forgiveness:       c.Forgiveness,
		CrushThreshold:    c.CrushThreshold,
		UnisolidTolerance: c.UnisolidTolerance,
	}
}

// CreateCollisionEngine creates the world's collision engine singleton.
func CreateCollisionEngine(ecs *ecs.ECS, width, height float64) *donburi.Entry {
	entry := archetypes.Collision.Spawn(ecs)
	components.Collision.SetValue(entry, components.CollisionData{
		Engine: collision.NewEngine(width, height, EngineOptions(cfg.Collision)),
	})
	return entry
}

// CreateClock creates the simulation clock singleton.
func CreateClock(ecs *ecs.ECS) *donburi.Entry {
	entry := archetypes.Clock.Spawn(ecs)
	components.Clock.SetValue(entry, components.ClockData{
		DT: 1.0 / float64(cfg.Sim.TickRate),
	})
	return entry
}

// CreateInput creates the input singleton.
func CreateInput(ecs *ecs.ECS) *donburi.Entry {
	return archetypes.Input.Spawn(ecs)
}

// engine returns the world's collision engine, or nil before
// CreateCollisionEngine ran.
func engine(ecs *ecs.ECS) *collision.Engine {
	entry, ok := components.Collision.First(ecs.World)
	if !ok {
		return nil
	}
	return components.Collision.Get(entry).Engine
}

// addBody registers the entity's body with the collision engine.
func addBody(ecs *ecs.ECS, entry *donburi.Entry) {
	body := components.Body.Get(entry)
	body.Entry = entry
	if e := engine(ecs); e != nil {
		e.AddObject(body)
	}
}

// addSensor adds a resolv object to the sensor space if it exists.
func addSensor(ecs *ecs.ECS, obj *resolv.Object) {
	if spaceEntry, ok := components.Space.First(ecs.World); ok {
		components.Space.Get(spaceEntry).Add(obj)
	}
}

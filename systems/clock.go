package systems

import (
	"github.com/automoto/platcollide/collision"
	"github.com/automoto/platcollide/components"
	"github.com/yohamta/donburi/ecs"
)

// defaultDT is used when the world has no clock.
const defaultDT = 1.0 / 60.0

// getClock returns the clock singleton, or nil if the world has none.
func getClock(ecs *ecs.ECS) *components.ClockData {
	entry, ok := components.Clock.First(ecs.World)
	if !ok {
		return nil
	}
	return components.Clock.Get(entry)
}

// tickDT returns the length of the current tick in seconds.
func tickDT(ecs *ecs.ECS) float64 {
	if clock := getClock(ecs); clock != nil && clock.DT > 0 {
		return clock.DT
	}
	return defaultDT
}

// frameScale converts per-frame speeds into per-tick movement. Speeds are
// tuned for 60 frames per second.
func frameScale(ecs *ecs.ECS) float64 {
	return tickDT(ecs) * 60
}

// getEngine returns the collision engine, or nil if the world has none.
func getEngine(ecs *ecs.ECS) *collision.Engine {
	entry, ok := components.Collision.First(ecs.World)
	if !ok {
		return nil
	}
	return components.Collision.Get(entry).Engine
}

// getInput returns the input singleton, or nil if the world has none.
func getInput(ecs *ecs.ECS) *components.InputData {
	entry, ok := components.Input.First(ecs.World)
	if !ok {
		return nil
	}
	return components.Input.Get(entry)
}

// AdvanceClock moves the clock to the next tick. It runs last.
func AdvanceClock(ecs *ecs.ECS) {
	clock := getClock(ecs)
	if clock == nil {
		return
	}
	clock.Tick++
	clock.Elapsed += clock.DT
}

// SetTickRate changes the tick length.
func SetTickRate(ecs *ecs.ECS, tickRate int) {
	if clock := getClock(ecs); clock != nil && tickRate > 0 {
		clock.DT = 1.0 / float64(tickRate)
	}
}

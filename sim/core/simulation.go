package core

import (
	"fmt"

	"github.com/automoto/platcollide/collision"
	"github.com/automoto/platcollide/components"
	cfg "github.com/automoto/platcollide/config"
	"github.com/automoto/platcollide/shared/gamemath"
	"github.com/automoto/platcollide/systems"
	"github.com/automoto/platcollide/systems/factory"
	"github.com/automoto/platcollide/tags"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// Simulation owns one ECS world running a level.
type Simulation struct {
	ecs        *ecs.ECS
	levels     *LevelSet
	levelIndex int
	tickRate   int
	input      func(*ecs.ECS)
	renderers  []func(*ecs.ECS, *ebiten.Image)
}

// Option configures a Simulation.
type Option func(*Simulation)

// WithInput replaces the autopilot with another input system. It runs before
// every other system.
func WithInput(system func(*ecs.ECS)) Option {
	return func(s *Simulation) { s.input = system }
}

// WithRenderers adds renderers drawn by ECS().Draw in the given order.
func WithRenderers(renderers ...func(*ecs.ECS, *ebiten.Image)) Option {
	return func(s *Simulation) { s.renderers = append(s.renderers, renderers...) }
}

// NewSimulation builds the world for the level at levelIndex.
func NewSimulation(levels *LevelSet, levelIndex, tickRate int, opts ...Option) *Simulation {
	s := &Simulation{
		levels:     levels,
		levelIndex: levelIndex,
		tickRate:   tickRate,
		input:      systems.UpdateAutopilot,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.Reset()
	return s
}

// Reset rebuilds the world from the level data.
func (s *Simulation) Reset() {
	if s.levelIndex < 0 || s.levelIndex >= len(s.levels.Names) {
		s.levelIndex = 0
	}
	e := ecs.NewECS(donburi.NewWorld())

	// Systems that always run
	e.AddSystem(s.input)
	e.AddSystem(systems.UpdatePause)

	// Game systems wrapped with pause checks
	e.AddSystem(systems.WithGameplayChecks(systems.UpdatePlatforms))
	e.AddSystem(systems.WithGameplayChecks(systems.UpdatePlayer))
	e.AddSystem(systems.WithGameplayChecks(systems.UpdatePhysics))
	e.AddSystem(systems.WithGameplayChecks(systems.UpdateCollisions))
	e.AddSystem(systems.WithGameplayChecks(systems.UpdateDeadZones))
	e.AddSystem(systems.WithGameplayChecks(systems.AdvanceClock))
	e.AddSystem(systems.FinishStep)

	for _, r := range s.renderers {
		e.AddRenderer(cfg.Default, r)
	}

	s.ecs = e
	factory.CreateLevel(e, s.levels.Levels, s.levels.Names, s.levelIndex)
	systems.SetTickRate(e, s.tickRate)
}

// SetLevel switches to the level at index and rebuilds the world.
func (s *Simulation) SetLevel(index int) {
	s.levelIndex = index
	s.Reset()
}

// LevelIndex returns the index of the running level.
func (s *Simulation) LevelIndex() int { return s.levelIndex }

// LevelCount returns how many levels can be selected.
func (s *Simulation) LevelCount() int { return len(s.levels.Names) }

// Step runs one tick.
func (s *Simulation) Step() {
	s.ecs.Update()
}

func (s *Simulation) ECS() *ecs.ECS { return s.ecs }

// Level returns the name of the running level.
func (s *Simulation) Level() string {
	return s.levels.Names[s.levelIndex]
}

// Engine returns the world's collision engine.
func (s *Simulation) Engine() *collision.Engine {
	entry, ok := components.Collision.First(s.ecs.World)
	if !ok {
		return nil
	}
	return components.Collision.Get(entry).Engine
}

// Summary describes the world after the last tick.
type Summary struct {
	Tick     uint64
	Stats    collision.TickStats
	Player   gamemath.Vector
	Grounded bool
	Respawns int
	Bodies   int
}

func (s Summary) String() string {
	return fmt.Sprintf("tick %d: %d bodies, %d objects, %d movers, %d pairs, %d carried, %d crushes; player at (%.1f, %.1f) grounded=%v respawns=%d",
		s.Tick, s.Bodies, s.Stats.Objects, s.Stats.Movers, s.Stats.Pairs, s.Stats.Carried, s.Stats.Crushes,
		s.Player.X, s.Player.Y, s.Grounded, s.Respawns)
}

// Summary reports the state of the world after the last tick.
func (s *Simulation) Summary() Summary {
	var sum Summary
	if entry, ok := components.Clock.First(s.ecs.World); ok {
		sum.Tick = components.Clock.Get(entry).Tick
	}
	if engine := s.Engine(); engine != nil {
		sum.Stats = engine.Stats()
	}
	if p, ok := tags.Player.First(s.ecs.World); ok {
		sum.Player = components.Body.Get(p).Box.Pos()
		sum.Grounded = components.Physics.Get(p).Grounded
		sum.Respawns = components.Player.Get(p).Respawns
	}
	components.Body.Each(s.ecs.World, func(*donburi.Entry) { sum.Bodies++ })
	return sum
}

// TickRate returns the configured ticks per second.
func (s *Simulation) TickRate() int {
	if s.tickRate <= 0 {
		return cfg.Sim.TickRate
	}
	return s.tickRate
}

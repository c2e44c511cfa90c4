package archetypes

import (
	"github.com/automoto/platcollide/components"
	cfg "github.com/automoto/platcollide/config"
	"github.com/automoto/platcollide/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

var (
	Platform = newArchetype(
		tags.Platform,
		components.Body,
		components.Path,
		components.Tween,
	)
	FloatingPlatform = newArchetype(
		tags.FloatingPlatform,
		components.Body,
		components.Path,
		components.Tween,
	)
	Wall = newArchetype(
		tags.Wall,
		components.Body,
	)
	Player = newArchetype(
		tags.Player,
		components.Player,
		components.Body,
		components.Physics,
		components.Object,
	)
	Crate = newArchetype(
		tags.Crate,
		components.Body,
		components.Physics,
		components.Object,
	)
	SolidTiles = newArchetype(
		tags.SolidTiles,
		components.TileMap,
	)
	MovingTiles = newArchetype(
		tags.MovingTiles,
		components.TileMap,
		components.Path,
		components.Tween,
	)
	Space = newArchetype(
		components.Space,
	)
	Collision = newArchetype(
		components.Collision,
	)
	Clock = newArchetype(
		components.Clock,
	)
	Input = newArchetype(
		components.Input,
	)
	Level = newArchetype(
		components.Level,
	)
)

type archetype struct {
	components []donburi.IComponentType
}

func newArchetype(cs ...donburi.IComponentType) *archetype {
	return &archetype{
		components: cs,
	}
}

func (a *archetype) Spawn(ecs *ecs.ECS, cs ...donburi.IComponentType) *donburi.Entry {
	e := ecs.World.Entry(ecs.Create(
		cfg.Default,
		append(a.components, cs...)...,
	))
	return e
}

package factory

import (
	"github.com/automoto/platcollide/archetypes"
	"github.com/automoto/platcollide/collision"
	"github.com/automoto/platcollide/components"
	cfg "github.com/automoto/platcollide/config"
	"github.com/automoto/platcollide/shared/gamemath"
	"github.com/automoto/platcollide/shared/leveldata"
	"github.com/automoto/platcollide/tilemap"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// CreatePlatform creates a solid platform moving back and forth along its
// path. Platforms push whatever is in their way.
func CreatePlatform(ecs *ecs.ECS, spawn leveldata.PlatformSpawn) *donburi.Entry {
	platform := archetypes.Platform.Spawn(ecs)
	setupPlatform(platform, spawn, "platform", false)
	addBody(ecs, platform)
	return platform
}

// CreateFloatingPlatform creates a one-way platform that can be jumped
// through from below.
func CreateFloatingPlatform(ecs *ecs.ECS, spawn leveldata.PlatformSpawn) *donburi.Entry {
	platform := archetypes.FloatingPlatform.Spawn(ecs)
	setupPlatform(platform, spawn, "floating-platform", true)
	addBody(ecs, platform)
	return platform
}

func setupPlatform(platform *donburi.Entry, spawn leveldata.PlatformSpawn, name string, oneWay bool) {
	h := spawn.H
	if h <= 0 {
		h = cfg.Platform.Height
	}
	components.Body.SetValue(platform, components.BodyData{
		Name:           name,
		Box:            gamemath.NewRect(spawn.X, spawn.Y, spawn.W, h),
		CollisionGroup: collision.GroupMovingStatic,
		OneWay:         oneWay,
		Response:       collision.ForceMove,
	})

	delta := gamemath.Vector{X: spawn.DX, Y: spawn.DY}
	if delta.IsZero() {
		delta.Y = -cfg.Platform.Distance
	}
	components.Path.SetValue(platform, components.PathData{
		Origin: gamemath.Vector{X: spawn.X, Y: spawn.Y},
		Delta:  delta,
	})
	components.Tween.Set(platform, pathTween(spawn.Duration))
}

// CreateSolidTiles registers the level's static tile layer.
func CreateSolidTiles(ecs *ecs.ECS, tm *tilemap.TileMap) *donburi.Entry {
	entry := archetypes.SolidTiles.Spawn(ecs)
	components.TileMap.SetValue(entry, components.TileMapData{TileMap: tm})
	return entry
}

// CreateMovingTiles registers a tile layer that travels along a path.
func CreateMovingTiles(ecs *ecs.ECS, tm *tilemap.TileMap, layer *leveldata.TileLayer) *donburi.Entry {
	entry := archetypes.MovingTiles.Spawn(ecs)
	components.TileMap.SetValue(entry, components.TileMapData{TileMap: tm})
	components.Path.SetValue(entry, components.PathData{
		Origin: tm.Offset(),
		Delta:  gamemath.Vector{X: layer.DX, Y: layer.DY},
	})
	components.Tween.Set(entry, pathTween(layer.Duration))
	return entry
}

// pathTween moves the path progress from 0 to 1 and back using a
// *gween.Sequence of tweens.
func pathTween(duration float64) *gween.Sequence {
	if duration <= 0 {
		duration = cfg.Platform.Duration
	}
	d := float32(duration)
	tw := gween.NewSequence()
	tw.Add(
		gween.New(0, 1, d, ease.Linear),
		gween.New(1, 0, d, ease.Linear),
	)
	return tw
}

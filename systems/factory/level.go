package factory

import (
	"log"

	"github.com/automoto/platcollide/archetypes"
	"github.com/automoto/platcollide/collision"
	"github.com/automoto/platcollide/components"
	"github.com/automoto/platcollide/shared/leveldata"
	"github.com/automoto/platcollide/tilemap"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// sensorCell is the resolv cell size of the trigger space.
const sensorCell = 16

// CreateLevel builds the world for the level at levelIndex in names: the
// collision engine, tilemaps, platforms, crates, dead zones and the player.
func CreateLevel(ecs *ecs.ECS, levels map[string]*leveldata.Level, names []string, levelIndex int) *donburi.Entry {
	// Clamp index to valid range
	if levelIndex < 0 || levelIndex >= len(names) {
		levelIndex = 0
	}
	current := levels[names[levelIndex]]

	level := archetypes.Level.Spawn(ecs)
	components.Level.Set(level, &components.LevelData{
		CurrentLevel: current,
		LevelIndex:   levelIndex,
		Names:        names,
		Levels:       levels,
	})

	PopulateLevel(ecs, current)
	return level
}

// PopulateLevel spawns every entity described by a parsed level.
func PopulateLevel(ecs *ecs.ECS, level *leveldata.Level) {
	if _, ok := components.Clock.First(ecs.World); !ok {
		CreateClock(ecs)
	}
	if _, ok := components.Input.First(ecs.World); !ok {
		CreateInput(ecs)
	}
	CreateSpace(ecs, level.MapWidth, level.MapHeight, sensorCell, sensorCell)
	CreateCollisionEngine(ecs, float64(level.MapWidth), float64(level.MapHeight))

	var providers []collision.TileProvider
	for i := range level.Layers {
		layer := &level.Layers[i]
		tm := tilemap.FromLayer(layer, level.TileW, level.TileH)
		if layer.Moving {
			CreateMovingTiles(ecs, tm, layer)
		} else {
			CreateSolidTiles(ecs, tm)
		}
		providers = append(providers, tm)
	}
	engine(ecs).UpdateSolidTilemaps(providers...)

	for _, p := range level.Platforms {
		if p.Floating {
			CreateFloatingPlatform(ecs, p)
		} else {
			CreatePlatform(ecs, p)
		}
	}
	for _, c := range level.Crates {
		CreateCrate(ecs, c.X, c.Y)
	}
	for _, dz := range level.DeadZones {
		CreateDeadZone(ecs, dz.X, dz.Y, dz.W, dz.H)
	}

	if len(level.Spawns) == 0 {
		log.Printf("Warning: level %s has no PlayerSpawn, using the top-left tile", level.Name)
		CreatePlayer(ecs, float64(level.TileW), float64(level.TileH))
		return
	}
	spawn := level.Spawns[0]
	CreatePlayer(ecs, spawn.X, spawn.Y)

	log.Printf("Loaded level %s: %d tile layers, %d platforms, %d crates, %dx%d map",
		level.Name, len(level.Layers), len(level.Platforms), len(level.Crates), level.MapWidth, level.MapHeight)
}

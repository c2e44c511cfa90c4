// Package leveldata parses TMX levels into plain data for the simulation and
// the viewer. It has no dependencies on ebitengine, donburi or resolv.
package leveldata

// SolidLayerName is the tile layer that holds the static level geometry.
const SolidLayerName = "wg-tiles"

// MovingLayerPrefix marks extra tile layers that move as a whole.
const MovingLayerPrefix = "moving-tiles"

// TileKind classifies a tile for collision purposes.
type TileKind int

const (
	TileEmpty TileKind = iota
	TileSolid
	TileUnisolid
	TileSlope
)

// Level holds everything parsed from a TMX level file.
type Level struct {
	Name      string
	MapWidth  int // pixels
	MapHeight int
	TileW     int
	TileH     int
	// Layers holds the solid layer first, followed by moving layers in map
	// order.
	Layers    []TileLayer
	Spawns    []SpawnPoint
	Crates    []SpawnPoint
	Platforms []PlatformSpawn
	DeadZones []Area
}

// SolidLayer returns the static tile layer, or nil if the map has none.
func (l *Level) SolidLayer() *TileLayer {
	for i := range l.Layers {
		if !l.Layers[i].Moving {
			return &l.Layers[i]
		}
	}
	return nil
}

// TileLayer is one grid of tiles, stored row-major.
type TileLayer struct {
	Name  string
	Cols  int
	Rows  int
	Tiles []TileInfo

	OffsetX, OffsetY float64

	// Moving layers travel DX, DY pixels over Duration seconds and back.
	Moving   bool
	DX, DY   float64
	Duration float64
	// Flip marks a layer drawn upside down; slopes on it are mirrored.
	Flip bool
}

// At returns the tile at column x, row y. Out of range is empty.
func (l *TileLayer) At(x, y int) TileInfo {
	if x < 0 || y < 0 || x >= l.Cols || y >= l.Rows {
		return TileInfo{}
	}
	return l.Tiles[y*l.Cols+x]
}

// Count returns the number of non-empty tiles.
func (l *TileLayer) Count() int {
	n := 0
	for _, t := range l.Tiles {
		if t.Kind != TileEmpty {
			n++
		}
	}
	return n
}

// TileInfo is the collision description of one map cell.
type TileInfo struct {
	Kind TileKind
	// Slope is triangle data as understood by gamemath.AATriangle.
	Slope int
	// Attributes are extra tile flags such as "ice" or "water".
	Attributes []string
}

// SpawnPoint represents a spawn location.
type SpawnPoint struct {
	X, Y  float64
	Index int
}

// PlatformSpawn describes a moving platform object.
type PlatformSpawn struct {
	X, Y, W, H float64
	DX, DY     float64
	Duration   float64
	// Floating platforms can be stood on from above only.
	Floating bool
}

// Area is an axis-aligned trigger region.
type Area struct {
	X, Y, W, H float64
}

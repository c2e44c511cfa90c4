package collision

import "github.com/automoto/platcollide/shared/gamemath"

// Tile attribute bits.
const (
	TileSolid    uint32 = 0x0001
	TileUnisolid uint32 = 0x0002
	TileSlope    uint32 = 0x0010

	// Attributes from here on are reported to TileToucher objects.
	TileFirstInteresting uint32 = 0x0100
	TileIce              uint32 = 0x0100
	TileWater            uint32 = 0x0200
	TileHurts            uint32 = 0x0400
	TileFire             uint32 = 0x0800
)

// Flip bits of a tilemap.
const (
	FlipHorizontal uint32 = 1 << iota
	FlipVertical
)

// Tile is a single map cell. Data carries the slope triangle for slope tiles.
type Tile struct {
	Attributes uint32
	Data       int
}

func (t Tile) Solid() bool    { return t.Attributes&TileSolid != 0 }
func (t Tile) Unisolid() bool { return t.Attributes&TileUnisolid != 0 }
func (t Tile) Slope() bool    { return t.Attributes&TileSlope != 0 }

// IsSolidFor decides whether a one-way tile blocks an object. Solid tiles
// always block. A one-way tile blocks only objects that were above it before
// moving and are not moving up relative to it.
func (t Tile) IsSolidFor(tileBBox, objBBox gamemath.Rect, movement gamemath.Vector, tolerance float64) bool {
	if !t.Solid() {
		return false
	}
	if !t.Unisolid() {
		return true
	}
	if movement.Y < 0 {
		return false
	}
	top := tileBBox.Top
	if t.Slope() {
		tri := gamemath.NewAATriangle(tileBBox, t.Data)
		if !tri.IsSouth() {
			return false
		}
		top = tri.SurfaceY(objBBox.Center().X)
	}
	return objBBox.Bottom <= top+tolerance
}

// TileRange is a half-open range of tile indices.
type TileRange struct {
	Left, Top, Right, Bottom int
}

// TileProvider is the view of a solid tilemap the engine needs. Lookups
// outside the map return the zero Tile.
type TileProvider interface {
	TilesOverlapping(r gamemath.Rect) TileRange
	Tile(x, y int) Tile
	TileBBox(x, y int) gamemath.Rect
	// Velocity is the tilemap's own movement in units per second.
	Velocity() gamemath.Vector
	Flip() uint32
}

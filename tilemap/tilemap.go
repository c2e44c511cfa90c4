// Package tilemap turns parsed level layers into tile grids the collision
// engine can query.
package tilemap

import (
	"log"
	"math"

	"github.com/automoto/platcollide/collision"
	"github.com/automoto/platcollide/shared/gamemath"
	"github.com/automoto/platcollide/shared/leveldata"
)

var attributeNames = map[string]uint32{
	"ice":   collision.TileIce,
	"water": collision.TileWater,
	"hurts": collision.TileHurts,
	"fire":  collision.TileFire,
}

// TileMap is a rectangular grid of tiles placed at an offset in the world.
// It implements collision.TileProvider.
type TileMap struct {
	name   string
	cols   int
	rows   int
	tileW  float64
	tileH  float64
	tiles  []collision.Tile
	offset gamemath.Vector
	// velocity is in pixels per second.
	velocity gamemath.Vector
	flip     uint32
}

// New creates an empty map of cols x rows tiles.
func New(name string, cols, rows int, tileW, tileH float64) *TileMap {
	return &TileMap{
		name:  name,
		cols:  cols,
		rows:  rows,
		tileW: tileW,
		tileH: tileH,
		tiles: make([]collision.Tile, cols*rows),
	}
}

// FromLayer builds a TileMap from a parsed level layer.
func FromLayer(layer *leveldata.TileLayer, tileW, tileH int) *TileMap {
	m := New(layer.Name, layer.Cols, layer.Rows, float64(tileW), float64(tileH))
	m.offset = gamemath.Vector{X: layer.OffsetX, Y: layer.OffsetY}
	if layer.Flip {
		m.flip |= collision.FlipVertical
	}
	for i, info := range layer.Tiles {
		m.tiles[i] = Convert(info)
	}
	return m
}

// Convert maps a parsed tile onto engine attribute bits.
func Convert(info leveldata.TileInfo) collision.Tile {
	var t collision.Tile
	switch info.Kind {
	case leveldata.TileEmpty:
	case leveldata.TileSolid:
		t.Attributes = collision.TileSolid
	case leveldata.TileUnisolid:
		t.Attributes = collision.TileSolid | collision.TileUnisolid
	case leveldata.TileSlope:
		t.Attributes = collision.TileSolid | collision.TileSlope
		t.Data = info.Slope
	}
	for _, name := range info.Attributes {
		bit, ok := attributeNames[name]
		if !ok {
			log.Printf("Warning: unknown tile attribute %q", name)
			continue
		}
		t.Attributes |= bit
	}
	return t
}

func (m *TileMap) Name() string { return m.name }
func (m *TileMap) Cols() int    { return m.cols }
func (m *TileMap) Rows() int    { return m.rows }

// TileSize returns the width and height of one tile.
func (m *TileMap) TileSize() (float64, float64) { return m.tileW, m.tileH }

// Set replaces the tile at x, y. Out of range positions are ignored.
func (m *TileMap) Set(x, y int, t collision.Tile) {
	if !m.inside(x, y) {
		return
	}
	m.tiles[y*m.cols+x] = t
}

func (m *TileMap) inside(x, y int) bool {
	return x >= 0 && y >= 0 && x < m.cols && y < m.rows
}

// Bounds is the world rectangle covered by the map.
func (m *TileMap) Bounds() gamemath.Rect {
	return gamemath.NewRect(m.offset.X, m.offset.Y, float64(m.cols)*m.tileW, float64(m.rows)*m.tileH)
}

func (m *TileMap) Offset() gamemath.Vector { return m.offset }

// SetOffset places the map without giving it a velocity.
func (m *TileMap) SetOffset(v gamemath.Vector) { m.offset = v }

// SetVelocity sets the movement the map reports to the engine for the
// coming tick, in pixels per second.
func (m *TileMap) SetVelocity(v gamemath.Vector) { m.velocity = v }

// MoveTo sets the velocity needed to reach target within dt seconds. Call
// Advance after the collision tick to arrive there.
func (m *TileMap) MoveTo(target gamemath.Vector, dt float64) {
	if dt <= 0 {
		m.offset = target
		m.velocity = gamemath.Vector{}
		return
	}
	m.velocity = target.Sub(m.offset).Scale(1 / dt)
}

// Advance moves the map by its velocity over dt seconds.
func (m *TileMap) Advance(dt float64) {
	m.offset = m.offset.Add(m.velocity.Scale(dt))
}

// SetFlip sets the collision.Flip* bits.
func (m *TileMap) SetFlip(flip uint32) { m.flip = flip }

// Each calls fn for every non-empty tile.
func (m *TileMap) Each(fn func(x, y int, t collision.Tile)) {
	for i, t := range m.tiles {
		if t.Attributes == 0 {
			continue
		}
		fn(i%m.cols, i/m.cols, t)
	}
}

// TilesOverlapping returns the tile range touched by r, clipped to the map.
func (m *TileMap) TilesOverlapping(r gamemath.Rect) collision.TileRange {
	left := r.Left - m.offset.X
	top := r.Top - m.offset.Y
	right := r.Right - m.offset.X
	bottom := r.Bottom - m.offset.Y
	return collision.TileRange{
		Left:   max(0, int(math.Floor(left/m.tileW))),
		Top:    max(0, int(math.Floor(top/m.tileH))),
		Right:  min(m.cols, max(0, int(math.Ceil(right/m.tileW)))),
		Bottom: min(m.rows, max(0, int(math.Ceil(bottom/m.tileH)))),
	}
}

func (m *TileMap) Tile(x, y int) collision.Tile {
	if !m.inside(x, y) {
		return collision.Tile{}
	}
	return m.tiles[y*m.cols+x]
}

func (m *TileMap) TileBBox(x, y int) gamemath.Rect {
	return gamemath.NewRect(
		m.offset.X+float64(x)*m.tileW,
		m.offset.Y+float64(y)*m.tileH,
		m.tileW, m.tileH,
	)
}

func (m *TileMap) Velocity() gamemath.Vector { return m.velocity }
func (m *TileMap) Flip() uint32              { return m.flip }

var _ collision.TileProvider = (*TileMap)(nil)

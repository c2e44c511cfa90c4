package components

import (
	"github.com/automoto/platcollide/shared/gamemath"
	"github.com/automoto/platcollide/tilemap"
	"github.com/tanema/gween"
	"github.com/yohamta/donburi"
)

// PathData moves an entity between Origin and Origin+Delta. The tween
// sequence yields the progress along the path, from 0 to 1 and back.
type PathData struct {
	Origin gamemath.Vector
	Delta  gamemath.Vector
}

// At returns the position at progress t.
func (p *PathData) At(t float64) gamemath.Vector {
	return p.Origin.Add(p.Delta.Scale(t))
}

var Path = donburi.NewComponentType[PathData]()

var Tween = donburi.NewComponentType[gween.Sequence]()

// TileMapData is a tile layer taking part in collision.
type TileMapData struct {
	*tilemap.TileMap
}

var TileMap = donburi.NewComponentType[TileMapData]()

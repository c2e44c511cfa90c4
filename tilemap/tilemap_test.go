package tilemap

import (
	"math"
	"testing"

	"github.com/automoto/platcollide/collision"
	"github.com/automoto/platcollide/shared/gamemath"
	"github.com/automoto/platcollide/shared/leveldata"
)

func TestConvert(t *testing.T) {
	tests := []struct {
		name string
		in   leveldata.TileInfo
		want collision.Tile
	}{
		{"empty", leveldata.TileInfo{}, collision.Tile{}},
		{"solid", leveldata.TileInfo{Kind: leveldata.TileSolid}, collision.Tile{Attributes: collision.TileSolid}},
		{"one way", leveldata.TileInfo{Kind: leveldata.TileUnisolid},
			collision.Tile{Attributes: collision.TileSolid | collision.TileUnisolid}},
		{"slope", leveldata.TileInfo{Kind: leveldata.TileSlope, Slope: gamemath.SouthEast},
			collision.Tile{Attributes: collision.TileSolid | collision.TileSlope, Data: gamemath.SouthEast}},
		{"ice floor", leveldata.TileInfo{Kind: leveldata.TileSolid, Attributes: []string{"ice"}},
			collision.Tile{Attributes: collision.TileSolid | collision.TileIce}},
		{"water only", leveldata.TileInfo{Kind: leveldata.TileEmpty, Attributes: []string{"water", "bogus"}},
			collision.Tile{Attributes: collision.TileWater}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Convert(tt.in); got != tt.want {
				t.Errorf("Convert() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestFromLayer(t *testing.T) {
	layer := &leveldata.TileLayer{
		Name:    "moving-tiles-a",
		Cols:    2,
		Rows:    2,
		Tiles:   make([]leveldata.TileInfo, 4),
		OffsetX: 10,
		OffsetY: 20,
		Flip:    true,
	}
	layer.Tiles[3] = leveldata.TileInfo{Kind: leveldata.TileSolid}

	m := FromLayer(layer, 16, 8)
	if m.Name() != "moving-tiles-a" || m.Cols() != 2 || m.Rows() != 2 {
		t.Errorf("header = %s %dx%d", m.Name(), m.Cols(), m.Rows())
	}
	if m.Flip()&collision.FlipVertical == 0 {
		t.Error("flip lost")
	}
	if !m.Tile(1, 1).Solid() || m.Tile(0, 0).Solid() {
		t.Error("tiles not converted in row-major order")
	}
	if got := m.TileBBox(1, 1); got != gamemath.NewRect(26, 28, 16, 8) {
		t.Errorf("TileBBox(1, 1) = %+v", got)
	}
	if got := m.Bounds(); got != gamemath.NewRect(10, 20, 32, 16) {
		t.Errorf("Bounds() = %+v", got)
	}

	var seen []collision.Tile
	m.Each(func(x, y int, tile collision.Tile) {
		if x != 1 || y != 1 {
			t.Errorf("Each visited %d, %d", x, y)
		}
		seen = append(seen, tile)
	})
	if len(seen) != 1 {
		t.Errorf("Each visited %d tiles", len(seen))
	}
}

func TestTilesOverlapping(t *testing.T) {
	m := New("solid", 10, 5, 32, 32)
	m.SetOffset(gamemath.Vector{X: 64})

	tests := []struct {
		name string
		r    gamemath.Rect
		want collision.TileRange
	}{
		{"inside", gamemath.NewRect(64, 0, 32, 32), collision.TileRange{Left: 0, Top: 0, Right: 1, Bottom: 1}},
		{"straddling", gamemath.NewRect(100, 40, 40, 10), collision.TileRange{Left: 1, Top: 1, Right: 3, Bottom: 2}},
		{"left of map", gamemath.NewRect(0, 0, 10, 10), collision.TileRange{Left: 0, Top: 0, Right: 0, Bottom: 1}},
		{"clipped", gamemath.NewRect(300, 100, 200, 200), collision.TileRange{Left: 7, Top: 3, Right: 10, Bottom: 5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := m.TilesOverlapping(tt.r); got != tt.want {
				t.Errorf("TilesOverlapping(%+v) = %+v, want %+v", tt.r, got, tt.want)
			}
		})
	}
}

func TestOutOfRangeIsNoTile(t *testing.T) {
	m := New("solid", 2, 2, 32, 32)
	m.Set(-1, 0, collision.Tile{Attributes: collision.TileSolid})
	m.Set(5, 5, collision.Tile{Attributes: collision.TileSolid})
	for _, p := range [][2]int{{-1, 0}, {0, -1}, {2, 0}, {0, 2}} {
		if got := m.Tile(p[0], p[1]); got != (collision.Tile{}) {
			t.Errorf("Tile(%d, %d) = %+v", p[0], p[1], got)
		}
	}
}

func TestMoveToAndAdvance(t *testing.T) {
	m := New("lift", 1, 1, 32, 32)
	m.MoveTo(gamemath.Vector{X: 3, Y: -6}, 0.5)
	if v := m.Velocity(); v.X != 6 || v.Y != -12 {
		t.Errorf("Velocity() = %+v", v)
	}
	m.Advance(0.5)
	if o := m.Offset(); o.X != 3 || o.Y != -6 {
		t.Errorf("Offset() = %+v", o)
	}

	m.MoveTo(gamemath.Vector{X: 10}, 0)
	if o, v := m.Offset(), m.Velocity(); o.X != 10 || !v.IsZero() {
		t.Errorf("zero dt: offset %+v velocity %+v", o, v)
	}
}

func TestEngineLandsOnLevelTiles(t *testing.T) {
	m := New("solid", 4, 4, 32, 32)
	for x := 0; x < 4; x++ {
		m.Set(x, 3, collision.Tile{Attributes: collision.TileSolid})
	}

	engine := collision.NewEngine(128, 128, collision.DefaultOptions())
	engine.UpdateSolidTilemaps(m)

	box := &faller{bbox: gamemath.NewRect(40, 70, 16, 16)}
	engine.AddObject(box)
	for i := 0; i < 10; i++ {
		engine.HandleCollisions(1.0 / 60)
	}
	if math.Abs(box.bbox.Bottom-96) > 0.01 {
		t.Errorf("box bottom = %v, want resting on the floor at 96", box.bbox.Bottom)
	}
}

type faller struct {
	bbox gamemath.Rect
}

func (f *faller) BBox() gamemath.Rect              { return f.bbox }
func (f *faller) Movement() gamemath.Vector        { return gamemath.Vector{Y: 4} }
func (f *faller) Group() collision.Group           { return collision.GroupMoving }
func (f *faller) Commit(bbox gamemath.Rect)        { f.bbox = bbox }
func (f *faller) CollisionSolid(hit collision.Hit) {}
func (f *faller) Collision(other collision.Object, hit collision.Hit) collision.HitResponse {
	return collision.Continue
}

package collision

import (
	"math"

	"github.com/automoto/platcollide/shared/gamemath"
)

type testObject struct {
	name     string
	bbox     gamemath.Rect
	movement gamemath.Vector
	group    Group
	unisolid bool
	response HitResponse
	veto     bool

	hit        Hit
	solidCalls int
	touched    []Object
	attributes uint32
	crushed    bool
	commits    int
	onSolid    func(o *testObject, hit Hit)
}

func newObject(name string, x, y, w, h float64, group Group) *testObject {
	return &testObject{name: name, bbox: gamemath.NewRect(x, y, w, h), group: group}
}

func (o *testObject) BBox() gamemath.Rect       { return o.bbox }
func (o *testObject) Movement() gamemath.Vector { return o.movement }
func (o *testObject) Group() Group              { return o.group }
func (o *testObject) Unisolid() bool            { return o.unisolid }

func (o *testObject) Commit(bbox gamemath.Rect) {
	o.bbox = bbox
	o.movement = gamemath.Vector{}
	o.commits++
}

func (o *testObject) CollisionSolid(hit Hit) {
	o.hit = o.hit.Union(hit)
	o.solidCalls++
	if hit.Crush {
		o.crushed = true
	}
	if o.onSolid != nil {
		o.onSolid(o, hit)
	}
}

func (o *testObject) Collision(other Object, hit Hit) HitResponse {
	o.touched = append(o.touched, other)
	return o.response
}

func (o *testObject) Collides(other Object, hit Hit) bool { return !o.veto }

func (o *testObject) CollisionTile(attributes uint32) { o.attributes |= attributes }

// testTiles is a fixed grid of square tiles starting at the origin.
type testTiles struct {
	width, height int
	size          float64
	tiles         map[[2]int]Tile
	velocity      gamemath.Vector
	flip          uint32
}

func newTestTiles(width, height int) *testTiles {
	return &testTiles{width: width, height: height, size: 32, tiles: make(map[[2]int]Tile)}
}

func (m *testTiles) set(x, y int, t Tile) *testTiles {
	m.tiles[[2]int{x, y}] = t
	return m
}

func (m *testTiles) TilesOverlapping(r gamemath.Rect) TileRange {
	return TileRange{
		Left:   max(0, int(math.Floor(r.Left/m.size))),
		Top:    max(0, int(math.Floor(r.Top/m.size))),
		Right:  min(m.width, int(math.Ceil(r.Right/m.size))),
		Bottom: min(m.height, int(math.Ceil(r.Bottom/m.size))),
	}
}

func (m *testTiles) Tile(x, y int) Tile { return m.tiles[[2]int{x, y}] }

func (m *testTiles) TileBBox(x, y int) gamemath.Rect {
	return gamemath.NewRect(float64(x)*m.size, float64(y)*m.size, m.size, m.size)
}

func (m *testTiles) Velocity() gamemath.Vector { return m.velocity }
func (m *testTiles) Flip() uint32              { return m.flip }

var solid = Tile{Attributes: TileSolid}

func near(a, b float64) bool {
	return math.Abs(a-b) < 0.01
}

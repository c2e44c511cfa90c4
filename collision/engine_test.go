package collision

import (
	"testing"

	"github.com/automoto/platcollide/shared/gamemath"
)

func newTestEngine(tiles ...TileProvider) *Engine {
	e := NewEngine(1024, 1024, DefaultOptions())
	e.UpdateSolidTilemaps(tiles...)
	return e
}

func TestEngineObjectLandsOnTile(t *testing.T) {
	tiles := newTestTiles(10, 10).set(0, 2, solid)
	e := newTestEngine(tiles)

	obj := newObject("box", 0, 31, 32, 32, GroupMoving)
	// 100 units/s for a 0.1 s tick.
	obj.movement = gamemath.Vector{Y: 100 * 0.1}
	e.AddObject(obj)
	e.HandleCollisions(0.1)

	if !near(obj.bbox.Bottom, 64) {
		t.Errorf("bottom = %v, want 64", obj.bbox.Bottom)
	}
	if obj.bbox.Bottom > 64 {
		t.Errorf("object sank into the tile: bottom %v", obj.bbox.Bottom)
	}
	if !obj.hit.Bottom || obj.hit.Top || obj.hit.Left || obj.hit.Right {
		t.Errorf("hit = %+v, want bottom only", obj.hit)
	}
	if obj.commits != 1 {
		t.Errorf("commits = %d", obj.commits)
	}
}

func TestEngineFreeFall(t *testing.T) {
	e := newTestEngine(newTestTiles(10, 10))
	obj := newObject("box", 0, 0, 32, 32, GroupMoving)
	obj.movement = gamemath.Vector{X: 3, Y: 4}
	e.AddObject(obj)
	e.HandleCollisions(1.0 / 60)

	if obj.bbox != gamemath.NewRect(3, 4, 32, 32) {
		t.Errorf("bbox = %+v", obj.bbox)
	}
	if obj.solidCalls != 0 {
		t.Errorf("CollisionSolid called %d times", obj.solidCalls)
	}
}

func TestEngineClampsMovement(t *testing.T) {
	e := newTestEngine()
	obj := newObject("box", 0, 0, 8, 8, GroupMoving)
	obj.movement = gamemath.Vector{X: 100}
	e.AddObject(obj)
	e.HandleCollisions(1.0 / 60)
	if !near(obj.bbox.Left, e.Options().MaxSpeed) {
		t.Errorf("left = %v, want %v", obj.bbox.Left, e.Options().MaxSpeed)
	}
}

func TestEngineFullSlopeMatchesSolidTile(t *testing.T) {
	run := func(tile Tile) *testObject {
		e := newTestEngine(newTestTiles(10, 10).set(1, 2, tile))
		obj := newObject("box", 40, 31, 16, 32, GroupMoving)
		obj.movement = gamemath.Vector{X: 2, Y: 10}
		e.AddObject(obj)
		e.HandleCollisions(1.0 / 60)
		return obj
	}
	box := run(solid)
	full := run(Tile{Attributes: TileSolid | TileSlope, Data: gamemath.SouthEast | gamemath.Full})
	if box.bbox != full.bbox || box.hit != full.hit {
		t.Errorf("full slope %+v %+v, solid %+v %+v", full.bbox, full.hit, box.bbox, box.hit)
	}
}

func TestEngineSlopeSupportsObject(t *testing.T) {
	slope := Tile{Attributes: TileSolid | TileSlope, Data: gamemath.SouthWest}
	e := newTestEngine(newTestTiles(10, 10).set(0, 2, slope))
	// The surface under x=16 is at y=80; the box ends 3 units below it.
	obj := newObject("box", 16, 65, 8, 8, GroupMoving)
	obj.movement = gamemath.Vector{Y: 10}
	e.AddObject(obj)
	e.HandleCollisions(1.0 / 60)

	if !obj.hit.Bottom {
		t.Fatalf("hit = %+v, want bottom", obj.hit)
	}
	surface := gamemath.NewAATriangle(gamemath.NewRect(0, 64, 32, 32), gamemath.SouthWest).SurfaceY(obj.bbox.Left)
	if obj.bbox.Bottom > surface+0.5 {
		t.Errorf("bottom %v below slope surface %v", obj.bbox.Bottom, surface)
	}
}

func TestEngineOneWayTile(t *testing.T) {
	oneWay := Tile{Attributes: TileSolid | TileUnisolid}

	t.Run("landing from above", func(t *testing.T) {
		e := newTestEngine(newTestTiles(10, 10).set(0, 2, oneWay))
		obj := newObject("box", 0, 31, 32, 32, GroupMoving)
		obj.movement = gamemath.Vector{Y: 10}
		e.AddObject(obj)
		e.HandleCollisions(1.0 / 60)
		if !obj.hit.Bottom || !near(obj.bbox.Bottom, 64) {
			t.Errorf("hit %+v bottom %v", obj.hit, obj.bbox.Bottom)
		}
	})

	t.Run("jumping through from below", func(t *testing.T) {
		e := newTestEngine(newTestTiles(10, 10).set(0, 2, oneWay))
		obj := newObject("box", 0, 100, 32, 32, GroupMoving)
		obj.movement = gamemath.Vector{Y: -10}
		e.AddObject(obj)
		e.HandleCollisions(1.0 / 60)
		if obj.hit.Any() || obj.bbox.Top != 90 {
			t.Errorf("hit %+v top %v", obj.hit, obj.bbox.Top)
		}
	})
}

func TestEngineMovingTilemapCarriesObject(t *testing.T) {
	tiles := newTestTiles(10, 10).set(0, 2, solid).set(1, 2, solid)
	tiles.velocity = gamemath.Vector{X: 20}
	e := newTestEngine(tiles)

	obj := newObject("box", 0, 31.996, 32, 32, GroupMoving)
	obj.movement = gamemath.Vector{Y: 1}
	e.AddObject(obj)
	e.HandleCollisions(0.1)

	if !near(obj.bbox.Left, 2) {
		t.Errorf("left = %v, want 2", obj.bbox.Left)
	}
	if !obj.hit.Bottom {
		t.Errorf("hit = %+v", obj.hit)
	}
}

func TestEngineTilemapsMovingApartSumGround(t *testing.T) {
	right := newTestTiles(10, 10).set(0, 2, solid)
	right.velocity = gamemath.Vector{X: 20}
	left := newTestTiles(10, 10).set(1, 2, solid)
	left.velocity = gamemath.Vector{X: -40}
	e := newTestEngine(right, left)

	obj := newObject("box", 16, 31.996, 32, 32, GroupMoving)
	obj.movement = gamemath.Vector{Y: 1}
	e.AddObject(obj)
	e.HandleCollisions(0.1)

	if !near(obj.bbox.Left, 14) {
		t.Errorf("left = %v, want 14", obj.bbox.Left)
	}
	if !obj.hit.Bottom {
		t.Errorf("hit = %+v", obj.hit)
	}
}

func TestEngineFlippedSlopeTile(t *testing.T) {
	// Upper right corner of the tile: empty for a south west slope, inside
	// the same slope flipped upside down.
	corner := gamemath.NewRect(26, 2, 4, 4)
	slopeWater := Tile{Attributes: TileSlope | TileWater, Data: gamemath.SouthWest}
	slopeSolid := Tile{Attributes: TileSolid | TileSlope, Data: gamemath.SouthWest}

	tests := []struct {
		name string
		flip uint32
		want bool
	}{
		{"upright", 0, false},
		{"flipped", FlipVertical, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			water := newTestTiles(10, 10).set(0, 0, slopeWater)
			water.flip = tt.flip
			e := newTestEngine(water)
			obj := newObject("swimmer", corner.Left, corner.Top, corner.Width(), corner.Height(), GroupMoving)
			e.AddObject(obj)
			e.HandleCollisions(1.0 / 60)
			if got := obj.attributes&TileWater != 0; got != tt.want {
				t.Errorf("touches water = %v, want %v", got, tt.want)
			}

			solidMap := newTestTiles(10, 10).set(0, 0, slopeSolid)
			solidMap.flip = tt.flip
			e = newTestEngine(solidMap)
			if free := e.IsFreeOfTiles(corner, false); free == tt.want {
				t.Errorf("IsFreeOfTiles = %v, want %v", free, !tt.want)
			}
		})
	}
}

func TestEngineStaticObjectBlocks(t *testing.T) {
	e := newTestEngine()
	wall := newObject("wall", 64, 0, 32, 128, GroupStatic)
	obj := newObject("box", 20, 32, 32, 32, GroupMoving)
	obj.movement = gamemath.Vector{X: 16}
	e.AddObject(wall)
	e.AddObject(obj)
	e.HandleCollisions(1.0 / 60)

	if obj.bbox.Right > 64 || !obj.hit.Right {
		t.Errorf("right %v hit %+v", obj.bbox.Right, obj.hit)
	}
	if len(wall.touched) == 0 {
		t.Fatal("wall not told about the hit")
	}
	for _, o := range wall.touched {
		if o != obj {
			t.Errorf("wall touched by %v", o)
		}
	}
}

func TestEngineColliderVeto(t *testing.T) {
	e := newTestEngine()
	wall := newObject("wall", 64, 0, 32, 128, GroupStatic)
	wall.veto = true
	obj := newObject("box", 20, 32, 32, 32, GroupMoving)
	obj.movement = gamemath.Vector{X: 16}
	e.AddObject(wall)
	e.AddObject(obj)
	e.HandleCollisions(1.0 / 60)

	if obj.bbox.Left != 36 || obj.hit.Any() {
		t.Errorf("vetoed wall still blocked: left %v hit %+v", obj.bbox.Left, obj.hit)
	}
}

func TestEngineObjectResponses(t *testing.T) {
	tests := []struct {
		name         string
		respA, respB HitResponse
		moveA, moveB float64
	}{
		{"both continue", Continue, Continue, -4.016, 4.016},
		{"b forces", Continue, ForceMove, -8.016, 0},
		{"a forces", ForceMove, Continue, 0, 8.016},
		{"abort", AbortMove, Continue, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine()
			a := newObject("a", 100, 100, 32, 32, GroupMoving)
			b := newObject("b", 124, 100, 32, 32, GroupMoving)
			a.response, b.response = tt.respA, tt.respB
			e.AddObject(a)
			e.AddObject(b)
			e.HandleCollisions(1.0 / 60)

			if !near(a.bbox.Left-100, tt.moveA) || !near(b.bbox.Left-124, tt.moveB) {
				t.Errorf("a moved %v, b moved %v; want %v, %v",
					a.bbox.Left-100, b.bbox.Left-124, tt.moveA, tt.moveB)
			}
			if len(a.touched) != 1 || len(b.touched) != 1 {
				t.Errorf("callbacks: a %d b %d", len(a.touched), len(b.touched))
			}
		})
	}
}

func TestEngineTouchables(t *testing.T) {
	e := newTestEngine()
	coin := newObject("coin", 40, 0, 16, 16, GroupTouchable)
	obj := newObject("box", 20, 0, 16, 16, GroupMoving)
	obj.movement = gamemath.Vector{X: 10}
	e.AddObject(coin)
	e.AddObject(obj)
	e.HandleCollisions(1.0 / 60)

	if len(obj.touched) != 1 || obj.touched[0] != coin {
		t.Errorf("mover touched %v", obj.touched)
	}
	if len(coin.touched) != 1 {
		t.Errorf("touchable touched %v", coin.touched)
	}
	if obj.bbox.Left != 30 {
		t.Errorf("touchable blocked the mover: left %v", obj.bbox.Left)
	}
}

func TestEngineTileAttributes(t *testing.T) {
	tiles := newTestTiles(10, 10).
		set(0, 0, Tile{Attributes: TileWater}).
		set(3, 2, Tile{Attributes: TileSolid | TileIce})
	e := newTestEngine(tiles)

	swimmer := newObject("swimmer", 4, 4, 16, 16, GroupMoving)
	skater := newObject("skater", 96, 31, 32, 32, GroupMoving)
	e.AddObject(swimmer)
	e.AddObject(skater)
	e.HandleCollisions(1.0 / 60)

	if swimmer.attributes&TileWater == 0 {
		t.Errorf("swimmer attributes = %#x", swimmer.attributes)
	}
	if skater.attributes&TileIce == 0 {
		t.Errorf("skater attributes = %#x", skater.attributes)
	}
}

func TestEngineCrush(t *testing.T) {
	e := newTestEngine()
	floor := newObject("floor", 0, 164, 300, 32, GroupStatic)
	ceiling := newObject("ceiling", 0, 100, 300, 44, GroupStatic)
	obj := newObject("box", 100, 136, 32, 32, GroupMoving)
	obj.movement = gamemath.Vector{Y: 1}
	e.AddObject(floor)
	e.AddObject(ceiling)
	e.AddObject(obj)
	e.HandleCollisions(1.0 / 60)

	if !obj.crushed {
		t.Errorf("object squeezed into a 20 unit gap not crushed, hit %+v", obj.hit)
	}
	if e.Stats().Crushes != 1 {
		t.Errorf("Crushes = %d", e.Stats().Crushes)
	}
}

func TestEnginePlatformCarriesRiders(t *testing.T) {
	e := newTestEngine()
	platform := newObject("platform", 100, 200, 64, 16, GroupMovingStatic)
	platform.movement = gamemath.Vector{X: 5}
	rider := newObject("rider", 100, 200-16-0.004, 16, 16, GroupMoving)
	rider.movement = gamemath.Vector{Y: 1}
	e.AddObject(platform)
	e.AddObject(rider)
	e.HandleCollisions(1.0 / 60)

	if !near(rider.bbox.Left, 105) {
		t.Errorf("rider left = %v, want 105", rider.bbox.Left)
	}
	if !near(rider.bbox.Bottom, 200) || rider.bbox.Bottom > 200 {
		t.Errorf("rider bottom = %v", rider.bbox.Bottom)
	}
	if e.Parent(rider) != platform {
		t.Errorf("Parent(rider) = %v", e.Parent(rider))
	}
	if e.Parent(platform) != nil {
		t.Error("platform reports a parent")
	}
	if riders := e.Riders(platform); len(riders) != 1 || riders[0] != rider {
		t.Errorf("Riders(platform) = %v", riders)
	}
	if e.Stats().Carried != 1 {
		t.Errorf("Carried = %d", e.Stats().Carried)
	}
	if e.Graph().Len() != 0 {
		t.Error("graph not reset after the tick")
	}
}

func TestEngineDefersAddAndDeleteDuringTick(t *testing.T) {
	tiles := newTestTiles(10, 10).set(0, 2, solid)
	e := newTestEngine(tiles)

	spawned := newObject("spawned", 200, 0, 8, 8, GroupMoving)
	obj := newObject("box", 0, 31, 32, 32, GroupMoving)
	obj.movement = gamemath.Vector{Y: 10}
	obj.onSolid = func(o *testObject, hit Hit) {
		e.DeleteObject(o)
		e.AddObject(spawned)
	}
	e.AddObject(obj)
	e.HandleCollisions(1.0 / 60)

	if obj.commits != 0 || obj.bbox.Top != 31 {
		t.Errorf("deleted object committed: commits %d top %v", obj.commits, obj.bbox.Top)
	}
	if _, ok := e.Grid().Handle(obj); ok {
		t.Error("deleted object still in grid")
	}
	if _, ok := e.Grid().Handle(spawned); !ok {
		t.Error("object added during the tick missing")
	}
	if e.Grid().Len() != 1 {
		t.Errorf("Len = %d, want 1", e.Grid().Len())
	}
}

func TestEngineDeleteCancelsAddInSameTick(t *testing.T) {
	tiles := newTestTiles(10, 10).set(0, 2, solid)
	e := newTestEngine(tiles)

	spawned := newObject("spawned", 200, 0, 8, 8, GroupMoving)
	obj := newObject("box", 0, 31, 32, 32, GroupMoving)
	obj.movement = gamemath.Vector{Y: 10}
	obj.onSolid = func(o *testObject, hit Hit) {
		e.AddObject(spawned)
		e.DeleteObject(spawned)
	}
	other := newObject("other", 300, 0, 8, 8, GroupMoving)
	e.AddObject(obj)
	e.AddObject(other)
	e.HandleCollisions(1.0 / 60)

	if _, ok := e.Grid().Handle(spawned); ok {
		t.Error("object added and deleted in one tick is in the grid")
	}
	if e.Grid().Len() != 2 {
		t.Errorf("Len = %d, want 2", e.Grid().Len())
	}
	if obj.commits != 1 {
		t.Errorf("box commits = %d, want 1", obj.commits)
	}
}

func TestEngineQueries(t *testing.T) {
	tiles := newTestTiles(10, 10).set(2, 2, solid)
	e := newTestEngine(tiles)
	block := newObject("block", 200, 64, 32, 32, GroupStatic)
	e.AddObject(block)

	if e.IsFreeOfTiles(gamemath.NewRect(64, 64, 32, 32), false) {
		t.Error("solid tile not detected")
	}
	if !e.IsFreeOfTiles(gamemath.NewRect(0, 0, 32, 32), false) {
		t.Error("empty area reported blocked")
	}
	if e.IsFreeOfStatics(gamemath.NewRect(210, 70, 8, 8), nil, false) {
		t.Error("static object not detected")
	}
	if !e.IsFreeOfStatics(gamemath.NewRect(210, 70, 8, 8), block, false) {
		t.Error("ignored object still blocks")
	}
	if !e.IsFreeOfSpecificallyMovingStatics(gamemath.NewRect(210, 70, 8, 8), nil) {
		t.Error("static counted as moving static")
	}

	start := gamemath.Vector{X: 10, Y: 80}
	if e.FreeLineOfSight(start, gamemath.Vector{X: 150, Y: 80}, true, nil) {
		t.Error("line through a solid tile reported free")
	}
	res := e.FirstLineIntersection(start, gamemath.Vector{X: 150, Y: 80}, false, nil)
	if !res.Valid || res.Tile == nil || res.Box.Left != 64 {
		t.Errorf("first intersection = %+v", res)
	}
	res = e.FirstLineIntersection(gamemath.Vector{X: 150, Y: 80}, gamemath.Vector{X: 300, Y: 80}, false, nil)
	if !res.Valid || res.Object != block {
		t.Errorf("object intersection = %+v", res)
	}
	if !e.FreeLineOfSight(gamemath.Vector{X: 0, Y: 10}, gamemath.Vector{X: 300, Y: 10}, false, nil) {
		t.Error("clear line reported blocked")
	}

	nearby := e.NearbyObjects(gamemath.Vector{X: 180, Y: 80}, 30)
	if len(nearby) != 1 || nearby[0] != block {
		t.Errorf("NearbyObjects = %v", nearby)
	}
	if far := e.NearbyObjects(gamemath.Vector{X: 0, Y: 0}, 30); len(far) != 0 {
		t.Errorf("NearbyObjects far away = %v", far)
	}
}

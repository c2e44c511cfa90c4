package collision

import (
	"math"
	"sort"

	"github.com/automoto/platcollide/shared/gamemath"
)

// RaycastResult is the first thing a line runs into.
type RaycastResult struct {
	Valid bool
	// Tile is set when a tile was hit, Object when an object was.
	Tile   *Tile
	Object Object
	Box    gamemath.Rect
}

// IsFreeOfTiles reports whether no solid tile overlaps rect. Slopes only
// count when rect actually reaches into the triangle.
func (e *Engine) IsFreeOfTiles(rect gamemath.Rect, ignoreUnisolid bool) bool {
	return e.isFreeOfTileType(rect, ignoreUnisolid, TileSolid)
}

func (e *Engine) isFreeOfTileType(rect gamemath.Rect, ignoreUnisolid bool, tileType uint32) bool {
	for _, tm := range e.tilemaps {
		r := tm.TilesOverlapping(rect)
		for x := r.Left; x < r.Right; x++ {
			for y := r.Top; y < r.Bottom; y++ {
				tile := tm.Tile(x, y)
				if tile.Attributes&tileType == 0 {
					continue
				}
				if tile.Unisolid() && ignoreUnisolid {
					continue
				}
				if tile.Slope() {
					scratch := NewConstraints()
					tri := gamemath.NewAATriangle(tm.TileBBox(x, y), tileData(tm, tile))
					if hit, _ := RectangleAATriangle(&scratch, rect, tri, gamemath.Vector{}); !hit {
						continue
					}
				}
				return false
			}
		}
	}
	return true
}

// IsFreeOfStatics reports whether rect is clear of solid tiles and static
// objects other than ignore.
func (e *Engine) IsFreeOfStatics(rect gamemath.Rect, ignore Object, ignoreUnisolid bool) bool {
	if !e.IsFreeOfTiles(rect, ignoreUnisolid) {
		return false
	}
	return e.isFreeOfGroups(rect, ignore, GroupStatic)
}

// IsFreeOfMovingStatics reports whether rect is clear of solid tiles and of
// every object that would block or push a mover.
func (e *Engine) IsFreeOfMovingStatics(rect gamemath.Rect, ignore Object) bool {
	if !e.IsFreeOfTiles(rect, false) {
		return false
	}
	return e.isFreeOfGroups(rect, ignore, GroupMoving, GroupMovingStatic, GroupStatic)
}

// IsFreeOfSpecificallyMovingStatics only looks at moving statics.
func (e *Engine) IsFreeOfSpecificallyMovingStatics(rect gamemath.Rect, ignore Object) bool {
	return e.isFreeOfGroups(rect, ignore, GroupMovingStatic)
}

func (e *Engine) isFreeOfGroups(rect gamemath.Rect, ignore Object, groups ...Group) bool {
	it := e.grid.Query(rect)
	defer it.Close()
	for {
		h, obj, ok := it.Next()
		if !ok {
			return true
		}
		if obj == ignore || !e.active(h) || !groupIn(obj.Group(), groups) {
			continue
		}
		if rect.Overlaps(obj.BBox()) {
			return false
		}
	}
}

func groupIn(g Group, groups []Group) bool {
	for _, x := range groups {
		if g == x {
			return true
		}
	}
	return false
}

// FirstLineIntersection returns the solid tile, or failing that the
// blocking object, closest to start along the segment start-end.
func (e *Engine) FirstLineIntersection(start, end gamemath.Vector, ignoreObjects bool, ignore Object) RaycastResult {
	bounds := gamemath.Rect{
		Left:   math.Min(start.X, end.X),
		Top:    math.Min(start.Y, end.Y),
		Right:  math.Max(start.X, end.X),
		Bottom: math.Max(start.Y, end.Y),
	}

	var result RaycastResult
	best := math.Inf(1)
	for _, tm := range e.tilemaps {
		r := tm.TilesOverlapping(bounds.Grown(1))
		for x := r.Left; x < r.Right; x++ {
			for y := r.Top; y < r.Bottom; y++ {
				tile := tm.Tile(x, y)
				if !tile.Solid() {
					continue
				}
				tb := tm.TileBBox(x, y)
				if !tb.IntersectsLine(start, end) {
					continue
				}
				if d := tb.Distance(start); d < best {
					best = d
					t := tile
					result = RaycastResult{Valid: true, Tile: &t, Box: tb}
				}
			}
		}
	}
	if result.Valid || ignoreObjects {
		return result
	}

	it := e.grid.Query(bounds)
	defer it.Close()
	for {
		h, obj, ok := it.Next()
		if !ok {
			break
		}
		if obj == ignore || !e.active(h) {
			continue
		}
		g := obj.Group()
		if g != GroupMoving && g != GroupMovingStatic && g != GroupStatic {
			continue
		}
		box := obj.BBox()
		if !box.IntersectsLine(start, end) {
			continue
		}
		if d := box.Distance(start); d < best {
			best = d
			result = RaycastResult{Valid: true, Object: obj, Box: box}
		}
	}
	return result
}

func (e *Engine) FreeLineOfSight(start, end gamemath.Vector, ignoreObjects bool, ignore Object) bool {
	return !e.FirstLineIntersection(start, end, ignoreObjects, ignore).Valid
}

// NearbyObjects returns the objects whose box lies within maxDistance of
// center, in slot order.
func (e *Engine) NearbyObjects(center gamemath.Vector, maxDistance float64) []Object {
	area := gamemath.Rect{
		Left:   center.X - maxDistance,
		Top:    center.Y - maxDistance,
		Right:  center.X + maxDistance,
		Bottom: center.Y + maxDistance,
	}
	type found struct {
		slot int
		obj  Object
	}
	var hits []found
	it := e.grid.Query(area)
	for {
		h, obj, ok := it.Next()
		if !ok {
			break
		}
		if e.active(h) && obj.BBox().Distance(center) <= maxDistance {
			hits = append(hits, found{h.Slot(), obj})
		}
	}
	sort.Slice(hits, func(i, j int) bool { return hits[i].slot < hits[j].slot })
	out := make([]Object, len(hits))
	for i, f := range hits {
		out[i] = f.obj
	}
	return out
}

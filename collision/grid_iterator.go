package collision

import (
	"log"
	"math"

	"github.com/automoto/platcollide/shared/gamemath"
)

// GridIterator walks the objects near a rectangle, yielding each object
// once even when it spans several cells. It holds a query session open
// until it is exhausted or closed; grid mutations made meanwhile are
// deferred.
type GridIterator struct {
	grid           *Grid
	x0, y0, x1, y1 int
	x, y, pos      int
	stamp          uint64
	seen           map[uint32]struct{}
	open           bool
}

// Query opens an iterator over the cells around r.
func (g *Grid) Query(r gamemath.Rect) *GridIterator {
	it := &GridIterator{grid: g}
	if !r.Valid() || math.IsNaN(r.Left) || math.IsNaN(r.Top) {
		return it
	}
	x0 := int(math.Floor(r.Left/g.cellW)) - g.margin
	y0 := int(math.Floor(r.Top/g.cellH)) - g.margin
	x1 := int(math.Floor(r.Right/g.cellW)) + 1 + g.margin
	y1 := int(math.Floor(r.Bottom/g.cellH)) + 1 + g.margin
	it.x0, it.x1 = clampInt(x0, 0, g.cellsX), clampInt(x1, 0, g.cellsX)
	it.y0, it.y1 = clampInt(y0, 0, g.cellsY), clampInt(y1, 0, g.cellsY)
	if it.x0 >= it.x1 || it.y0 >= it.y1 {
		return it
	}
	it.x, it.y = it.x0, it.y0

	g.sessions++
	g.timestamp++
	it.stamp = g.timestamp
	if g.sessions > 1 {
		it.seen = make(map[uint32]struct{})
	}
	it.open = true
	return it
}

// Next returns the next object, or false once the region is exhausted.
func (it *GridIterator) Next() (Handle, Object, bool) {
	if !it.open {
		return Handle{}, nil, false
	}
	g := it.grid
	for it.y < it.y1 {
		cell := g.cells[it.y*g.cellsX+it.x]
		for it.pos < len(cell) {
			h := cell[it.pos]
			it.pos++
			w := &g.wrappers[h.index]
			if !w.live || w.disabled || w.gen != h.gen {
				continue
			}
			if it.seen != nil {
				if _, ok := it.seen[h.index]; ok {
					continue
				}
				it.seen[h.index] = struct{}{}
			} else {
				if w.timestamp == it.stamp {
					continue
				}
				w.timestamp = it.stamp
			}
			return h, w.obj, true
		}
		it.pos = 0
		it.x++
		if it.x >= it.x1 {
			it.x = it.x0
			it.y++
		}
	}
	it.Close()
	return Handle{}, nil, false
}

// Close ends the session. Closing twice is a no-op.
func (it *GridIterator) Close() {
	if !it.open {
		return
	}
	it.open = false
	it.grid.endSession()
}

func (g *Grid) endSession() {
	if g.sessions == 0 {
		log.Printf("Warning: collision grid: closing a query session that was never opened")
		return
	}
	g.sessions--
	if g.sessions == 0 && len(g.pending) > 0 {
		g.applyPending()
	}
}

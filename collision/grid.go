package collision

import (
	"log"
	"math"

	"github.com/automoto/platcollide/shared/gamemath"
)

// DefaultQueryMargin is how many cells a query looks beyond its rectangle.
// Objects are linked by their box at the last commit, so the margin must
// cover the largest distance an object can move in one tick.
const DefaultQueryMargin = 2

// Handle identifies a wrapper slot. The generation changes every time the
// slot is reused, so stale handles never resolve to a new object.
type Handle struct {
	index uint32
	gen   uint32
}

func (h Handle) Valid() bool { return h.gen != 0 }

// Slot returns the wrapper slot index. Slots are assigned in insertion order
// and reused after removal.
func (h Handle) Slot() int { return int(h.index) }

type cellRange struct {
	x0, y0, x1, y1 int
}

func (r cellRange) contains(x, y int) bool {
	return x >= r.x0 && x < r.x1 && y >= r.y0 && y < r.y1
}

// wrapper is the grid's per-object record.
type wrapper struct {
	obj       Object
	gen       uint32
	live      bool
	disabled  bool
	timestamp uint64
	cells     cellRange

	dest     gamemath.Rect
	movement gamemath.Vector
	pressure gamemath.Vector
	ground   gamemath.Vector
}

type pendingKind uint8

const (
	pendingAdd pendingKind = iota
	pendingRemove
	pendingMove
)

type pendingOp struct {
	kind pendingKind
	obj  Object
}

// Grid is a uniform broadphase over the world. Every live object is linked
// into each cell its box covers.
type Grid struct {
	width, height float64
	cellW, cellH  float64
	cellsX        int
	cellsY        int
	margin        int

	cells    [][]Handle
	wrappers []wrapper
	free     []uint32
	index    map[Object]Handle

	timestamp uint64
	sessions  int
	pending   []pendingOp
}

func NewGrid(width, height, cellW, cellH float64) *Grid {
	cellsX := int(width/cellW) + 1
	cellsY := int(height/cellH) + 1
	return &Grid{
		width:  width,
		height: height,
		cellW:  cellW,
		cellH:  cellH,
		cellsX: cellsX,
		cellsY: cellsY,
		margin: DefaultQueryMargin,
		cells:  make([][]Handle, cellsX*cellsY),
		index:  make(map[Object]Handle),
	}
}

// SetQueryMargin changes the number of extra cells searched around queries.
func (g *Grid) SetQueryMargin(cells int) {
	if cells < 0 {
		cells = 0
	}
	g.margin = cells
}

func (g *Grid) CellSize() (float64, float64) { return g.cellW, g.cellH }
func (g *Grid) Cells() (int, int)            { return g.cellsX, g.cellsY }

// Len returns the number of live objects.
func (g *Grid) Len() int { return len(g.index) }

// Add registers obj and links it into the cells its box covers. While a
// query is open the insertion is deferred and the zero Handle is returned.
func (g *Grid) Add(obj Object) Handle {
	if h, ok := g.index[obj]; ok {
		log.Printf("Warning: collision grid: object already added (slot %d)", h.index)
		return h
	}
	if g.sessions > 0 {
		g.pending = append(g.pending, pendingOp{kind: pendingAdd, obj: obj})
		return Handle{}
	}

	var idx uint32
	if n := len(g.free); n > 0 {
		idx = g.free[n-1]
		g.free = g.free[:n-1]
	} else {
		idx = uint32(len(g.wrappers))
		g.wrappers = append(g.wrappers, wrapper{})
	}
	w := &g.wrappers[idx]
	gen := w.gen + 1
	*w = wrapper{obj: obj, gen: gen, live: true, dest: obj.BBox()}
	h := Handle{index: idx, gen: gen}
	w.cells = g.cellsFor(w.dest, true)
	g.link(h, w.cells)
	g.index[obj] = h
	return h
}

// Remove unlinks obj. It reports false when obj is unknown.
func (g *Grid) Remove(obj Object) bool {
	h, ok := g.index[obj]
	if !ok {
		if g.dropPendingAdd(obj) {
			return true
		}
		log.Printf("Warning: collision grid: remove of unknown object")
		return false
	}
	if g.sessions > 0 {
		g.wrappers[h.index].disabled = true
		g.pending = append(g.pending, pendingOp{kind: pendingRemove, obj: obj})
		return true
	}
	w := &g.wrappers[h.index]
	g.unlink(h, w.cells)
	delete(g.index, obj)
	w.obj = nil
	w.live = false
	w.disabled = false
	g.free = append(g.free, h.index)
	return true
}

// dropPendingAdd cancels an add of obj still waiting for the sessions to
// close.
func (g *Grid) dropPendingAdd(obj Object) bool {
	for i, op := range g.pending {
		if op.kind == pendingAdd && op.obj == obj {
			g.pending = append(g.pending[:i], g.pending[i+1:]...)
			return true
		}
	}
	return false
}

// Move relinks obj after its box changed, touching only the cells that
// entered or left its coverage.
func (g *Grid) Move(obj Object) bool {
	h, ok := g.index[obj]
	if !ok {
		log.Printf("Warning: collision grid: move of unknown object")
		return false
	}
	if g.sessions > 0 {
		g.pending = append(g.pending, pendingOp{kind: pendingMove, obj: obj})
		return true
	}
	w := &g.wrappers[h.index]
	w.dest = obj.BBox()
	next := g.cellsFor(w.dest, true)
	if next == w.cells {
		return true
	}
	prev := w.cells
	for y := prev.y0; y < prev.y1; y++ {
		for x := prev.x0; x < prev.x1; x++ {
			if !next.contains(x, y) {
				g.removeFromCell(y*g.cellsX+x, h)
			}
		}
	}
	for y := next.y0; y < next.y1; y++ {
		for x := next.x0; x < next.x1; x++ {
			if !prev.contains(x, y) {
				i := y*g.cellsX + x
				g.cells[i] = append(g.cells[i], h)
			}
		}
	}
	w.cells = next
	return true
}

// Handle returns the handle of obj.
func (g *Grid) Handle(obj Object) (Handle, bool) {
	h, ok := g.index[obj]
	return h, ok
}

// Object resolves a handle. Stale handles resolve to nil.
func (g *Grid) Object(h Handle) Object {
	if w := g.wrapper(h); w != nil {
		return w.obj
	}
	return nil
}

// Dest returns the destination box of the tick in progress, or the
// committed box between ticks.
func (g *Grid) Dest(h Handle) gamemath.Rect {
	if w := g.wrapper(h); w != nil {
		return w.dest
	}
	return gamemath.Rect{}
}

func (g *Grid) SetDest(h Handle, r gamemath.Rect) {
	if w := g.wrapper(h); w != nil {
		w.dest = r
	}
}

// Each calls fn for every live object in slot order.
func (g *Grid) Each(fn func(h Handle, obj Object)) {
	for i := range g.wrappers {
		w := &g.wrappers[i]
		if !w.live || w.disabled {
			continue
		}
		fn(Handle{index: uint32(i), gen: w.gen}, w.obj)
	}
}

// CheckCollisions calls fn once for every pair of movers whose
// neighbourhoods overlap. The first handle always has the lower slot.
func (g *Grid) CheckCollisions(fn func(a, b Handle)) {
	for i := range g.wrappers {
		w := &g.wrappers[i]
		if !w.live || w.disabled || !w.obj.Group().mover() {
			continue
		}
		a := Handle{index: uint32(i), gen: w.gen}
		it := g.Query(w.dest)
		for {
			b, other, ok := it.Next()
			if !ok {
				break
			}
			if b.index <= a.index || !other.Group().mover() {
				continue
			}
			fn(a, b)
			if !g.wrappers[i].live || g.wrappers[i].disabled {
				it.Close()
				break
			}
		}
	}
}

func (g *Grid) wrapper(h Handle) *wrapper {
	if !h.Valid() || int(h.index) >= len(g.wrappers) {
		return nil
	}
	w := &g.wrappers[h.index]
	if !w.live || w.gen != h.gen {
		return nil
	}
	return w
}

// cellsFor maps a box to the cells it covers. With link set, boxes outside
// the world are clamped onto the edge cells and reported.
func (g *Grid) cellsFor(r gamemath.Rect, link bool) cellRange {
	x0 := int(math.Floor(r.Left / g.cellW))
	y0 := int(math.Floor(r.Top / g.cellH))
	x1 := int(math.Floor(r.Right/g.cellW)) + 1
	y1 := int(math.Floor(r.Bottom/g.cellH)) + 1
	cr := cellRange{
		x0: clampInt(x0, 0, g.cellsX-1),
		y0: clampInt(y0, 0, g.cellsY-1),
	}
	cr.x1 = clampInt(x1, cr.x0+1, g.cellsX)
	cr.y1 = clampInt(y1, cr.y0+1, g.cellsY)
	if link && (cr.x0 != x0 || cr.y0 != y0 || cr.x1 != x1 || cr.y1 != y1) {
		log.Printf("Warning: collision grid: object at (%.1f, %.1f) outside the %vx%v world, clamped",
			r.Left, r.Top, g.width, g.height)
	}
	return cr
}

func (g *Grid) link(h Handle, cr cellRange) {
	for y := cr.y0; y < cr.y1; y++ {
		for x := cr.x0; x < cr.x1; x++ {
			i := y*g.cellsX + x
			g.cells[i] = append(g.cells[i], h)
		}
	}
}

func (g *Grid) unlink(h Handle, cr cellRange) {
	for y := cr.y0; y < cr.y1; y++ {
		for x := cr.x0; x < cr.x1; x++ {
			g.removeFromCell(y*g.cellsX+x, h)
		}
	}
}

func (g *Grid) removeFromCell(i int, h Handle) {
	cell := g.cells[i]
	for j, c := range cell {
		if c == h {
			copy(cell[j:], cell[j+1:])
			g.cells[i] = cell[:len(cell)-1]
			return
		}
	}
}

// applyPending replays mutations requested while queries were open.
func (g *Grid) applyPending() {
	ops := g.pending
	g.pending = nil
	for _, op := range ops {
		switch op.kind {
		case pendingAdd:
			g.Add(op.obj)
		case pendingRemove:
			if _, ok := g.index[op.obj]; ok {
				g.Remove(op.obj)
			}
		case pendingMove:
			if _, ok := g.index[op.obj]; ok {
				g.Move(op.obj)
			}
		}
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

package collision

import (
	"log"
	"math"

	"github.com/automoto/platcollide/shared/gamemath"
)

// Options tunes the engine. Distances are in world units.
type Options struct {
	CellWidth, CellHeight float64
	QueryMargin           int

	// MaxSpeed caps the length of one tick's movement.
	MaxSpeed   float64
	ShiftDelta float64
	Epsilon    float64
	// Forgiveness lets a moving static pass through a smaller one.
	Forgiveness float64
	// CrushThreshold is the pressure above which a squeezed object is
	// reported as crushed.
	CrushThreshold float64
	// UnisolidTolerance is how far an object may already have sunk into a
	// one-way tile and still land on it.
	UnisolidTolerance float64
}

func DefaultOptions() Options {
	return Options{
		CellWidth:         128,
		CellHeight:        128,
		QueryMargin:       DefaultQueryMargin,
		MaxSpeed:          16,
		ShiftDelta:        7,
		Epsilon:           .002,
		Forgiveness:       256,
		CrushThreshold:    16,
		UnisolidTolerance: 4,
	}
}

// TickStats summarises the last HandleCollisions call.
type TickStats struct {
	Tick       uint64
	Objects    int
	Movers     int
	Pairs      int
	GraphNodes int
	Crushes    int
	Carried    int
}

// Engine moves objects through a tick, resolving them against tilemaps,
// static objects and each other.
type Engine struct {
	opts     Options
	resolver Resolver
	grid     *Grid
	graph    *Graph[Handle]
	tilemaps []TileProvider

	dt            float64
	inTick        bool
	pendingAdd    []Object
	pendingDelete []Object

	parents map[Handle]Handle
	riders  map[Handle][]Handle
	stats   TickStats
}

func NewEngine(width, height float64, opts Options) *Engine {
	g := NewGrid(width, height, opts.CellWidth, opts.CellHeight)
	g.SetQueryMargin(opts.QueryMargin)
	return &Engine{
		opts:     opts,
		resolver: Resolver{ShiftDelta: opts.ShiftDelta, Epsilon: opts.Epsilon},
		grid:     g,
		graph:    NewGraph[Handle](),
		parents:  make(map[Handle]Handle),
		riders:   make(map[Handle][]Handle),
	}
}

func (e *Engine) Grid() *Grid              { return e.grid }
func (e *Engine) Graph() *Graph[Handle]    { return e.graph }
func (e *Engine) Stats() TickStats         { return e.stats }
func (e *Engine) Options() Options         { return e.opts }
func (e *Engine) Tilemaps() []TileProvider { return e.tilemaps }

// AddObject registers obj. During a tick the object joins after commit.
func (e *Engine) AddObject(obj Object) {
	if e.inTick {
		e.pendingAdd = append(e.pendingAdd, obj)
		return
	}
	e.grid.Add(obj)
}

// DeleteObject removes obj. During a tick the object stops colliding at once
// and is unlinked after commit; it is not committed.
func (e *Engine) DeleteObject(obj Object) {
	if !e.inTick {
		e.grid.Remove(obj)
		return
	}
	for i, o := range e.pendingAdd {
		if o == obj {
			e.pendingAdd = append(e.pendingAdd[:i], e.pendingAdd[i+1:]...)
			return
		}
	}
	h, ok := e.grid.Handle(obj)
	if !ok {
		log.Printf("Warning: collision engine: delete of unknown object")
		return
	}
	e.grid.wrappers[h.index].disabled = true
	e.pendingDelete = append(e.pendingDelete, obj)
}

// MoveObject relinks obj after the host placed it somewhere new outside of
// a tick.
func (e *Engine) MoveObject(obj Object) {
	if e.inTick {
		log.Printf("Warning: collision engine: object moved during a tick, ignored until commit")
		return
	}
	e.grid.Move(obj)
}

// UpdateSolidTilemaps replaces the set of tilemaps objects collide with.
func (e *Engine) UpdateSolidTilemaps(tilemaps ...TileProvider) {
	e.tilemaps = append(e.tilemaps[:0], tilemaps...)
}

// Parent returns the platform that carried obj during the last tick.
func (e *Engine) Parent(obj Object) Object {
	h, ok := e.grid.Handle(obj)
	if !ok {
		return nil
	}
	p, ok := e.parents[h]
	if !ok || p == h {
		return nil
	}
	return e.grid.Object(p)
}

// Riders returns what stood on obj, directly or stacked, during the last
// tick.
func (e *Engine) Riders(obj Object) []Object {
	h, ok := e.grid.Handle(obj)
	if !ok {
		return nil
	}
	var out []Object
	for _, r := range e.riders[h] {
		if o := e.grid.Object(r); o != nil {
			out = append(out, o)
		}
	}
	return out
}

// HandleCollisions runs one tick. dt is the tick length in seconds and only
// scales tilemap velocities; object movement is already per tick.
func (e *Engine) HandleCollisions(dt float64) {
	e.inTick = true
	e.dt = dt
	stats := TickStats{Tick: e.stats.Tick + 1}

	var handles []Handle
	e.grid.Each(func(h Handle, obj Object) {
		handles = append(handles, h)
	})
	stats.Objects = len(handles)

	for _, h := range handles {
		w := e.grid.wrapper(h)
		w.movement = gamemath.ClampMovement(w.obj.Movement(), e.opts.MaxSpeed)
		w.dest = w.obj.BBox().Move(w.movement)
		w.pressure = gamemath.Vector{}
		w.ground = gamemath.Vector{}
	}

	for _, h := range handles {
		if !e.active(h) || !e.grid.wrapper(h).obj.Group().movesAgainstStatics() {
			continue
		}
		stats.Movers++
		if e.collisionStaticConstrains(h) {
			stats.Crushes++
		}
	}

	for _, h := range handles {
		if !e.active(h) {
			continue
		}
		w := e.grid.wrapper(h)
		toucher, ok := w.obj.(TileToucher)
		if !ok || !w.obj.Group().movesAgainstStatics() {
			continue
		}
		if attrs := e.collisionTileAttributes(w.dest, w.movement); attrs >= TileFirstInteresting {
			toucher.CollisionTile(attrs)
		}
	}

	for _, h := range handles {
		if e.active(h) && e.grid.wrapper(h).obj.Group().mover() {
			e.collisionTouchables(h)
		}
	}

	e.grid.CheckCollisions(func(a, b Handle) {
		if e.active(a) && e.active(b) && e.collisionObject(a, b) {
			stats.Pairs++
		}
	})

	stats.Carried = e.carryRiders(handles)
	stats.GraphNodes = e.graph.Len()

	for _, h := range handles {
		if !e.active(h) {
			continue
		}
		w := e.grid.wrapper(h)
		w.obj.Commit(w.dest)
		e.grid.Move(w.obj)
	}

	e.graph.Reset()
	e.inTick = false

	deletes := e.pendingDelete
	e.pendingDelete = nil
	for _, obj := range deletes {
		e.grid.Remove(obj)
	}
	adds := e.pendingAdd
	e.pendingAdd = nil
	for _, obj := range adds {
		e.grid.Add(obj)
	}
	e.stats = stats
}

func (e *Engine) active(h Handle) bool {
	w := e.grid.wrapper(h)
	return w != nil && !w.disabled
}

// collisionStaticConstrains resolves one mover against tiles and statics:
// first vertically, then with its full movement, then checks whether it is
// being crushed. It reports a crush.
func (e *Engine) collisionStaticConstrains(h Handle) bool {
	w := e.grid.wrapper(h)
	obj := w.obj
	bbox := obj.BBox()
	movement := w.movement
	eps := e.opts.Epsilon
	crushed := false

	c := NewConstraints()
	for i := 0; i < 2; i++ {
		e.collisionStatic(&c, gamemath.Vector{Y: movement.Y}, h)
		if !c.HasConstraints() {
			break
		}
		if !math.IsInf(c.PositionBottom(), 1) {
			if height := c.Height(); height < bbox.Height() {
				w.pressure.Y += bbox.Height() - height
			} else {
				w.dest.Bottom = c.PositionBottom() - eps
				w.dest.Top = w.dest.Bottom - bbox.Height()
			}
		} else if !math.IsInf(c.PositionTop(), -1) {
			w.dest.Top = c.PositionTop() + eps
			w.dest.Bottom = w.dest.Top + bbox.Height()
		}
	}
	if c.HasConstraints() && (c.Hit.Top || c.Hit.Bottom) {
		if c.Hit.Bottom && !c.GroundMovement.IsZero() {
			w.ground = c.GroundMovement
			w.dest = w.dest.Move(c.GroundMovement)
		}
		c.Hit.Left = false
		c.Hit.Right = false
		obj.CollisionSolid(c.Hit)
	}

	c = NewConstraints()
	for i := 0; i < 2; i++ {
		e.collisionStatic(&c, movement, h)
		if !c.HasConstraints() {
			break
		}
		if width := c.Width(); !math.IsInf(width, 1) {
			if width+e.opts.ShiftDelta < bbox.Width() {
				w.pressure.X += bbox.Width() - width
			} else {
				mid := c.XMidpoint()
				w.dest.Left = mid - bbox.Width()/2
				w.dest.Right = mid + bbox.Width()/2
			}
		} else if !math.IsInf(c.PositionRight(), 1) {
			w.dest.Right = c.PositionRight() - eps
			w.dest.Left = w.dest.Right - bbox.Width()
		} else if !math.IsInf(c.PositionLeft(), -1) {
			w.dest.Left = c.PositionLeft() + eps
			w.dest.Right = w.dest.Left + bbox.Width()
		}
	}
	if c.HasConstraints() && (c.Hit.Any() || c.Hit.Crush) {
		obj.CollisionSolid(c.Hit)
	}

	if w.pressure.Y > 0 {
		c = NewConstraints()
		e.collisionStatic(&c, movement, h)
		if !math.IsInf(c.PositionBottom(), 1) && c.Height()+e.opts.ShiftDelta < bbox.Height() {
			hit := Hit{Top: true, Bottom: true, Crush: w.pressure.Y > e.opts.CrushThreshold}
			crushed = crushed || hit.Crush
			obj.CollisionSolid(hit)
		}
	}
	if w.pressure.X > 0 {
		c = NewConstraints()
		e.collisionStatic(&c, movement, h)
		if !math.IsInf(c.PositionRight(), 1) && c.Width()+e.opts.ShiftDelta < bbox.Width() {
			hit := Hit{Top: true, Bottom: true, Left: true, Right: true, Crush: w.pressure.X > e.opts.CrushThreshold}
			crushed = crushed || hit.Crush
			obj.CollisionSolid(hit)
		}
	}
	return crushed
}

// collisionStatic tightens c with the tiles and static objects the
// destination of h runs into.
func (e *Engine) collisionStatic(c *Constraints, movement gamemath.Vector, h Handle) {
	w := e.grid.wrapper(h)
	obj := w.obj
	dest := w.dest
	e.collisionTilemap(c, movement, dest, obj)

	bbox := obj.BBox()
	size := bbox.Width() * bbox.Height()
	it := e.grid.Query(dest)
	for {
		h2, other, ok := it.Next()
		if !ok {
			break
		}
		if h2 == h || !other.Group().blocks() {
			continue
		}
		obox := other.BBox()
		if obj.Group() == GroupMovingStatic && other.Group() == GroupMovingStatic &&
			size > obox.Width()*obox.Height()+e.opts.Forgiveness {
			continue
		}
		nc := e.checkObjects(movement, dest, obox, obj, other)
		if nc.Hit.Any() {
			e.graph.RegisterCollisionHit(nc.Hit, h, h2)
		}
		c.Merge(nc)
	}
}

// checkObjects resolves a mover against a blocking object, asking both for
// a veto first and telling both about the hit afterwards.
func (e *Engine) checkObjects(movement gamemath.Vector, dest, otherRect gamemath.Rect, obj, other Object) Constraints {
	if !dest.Overlaps(otherRect.Grown(e.opts.Epsilon)) {
		return NewConstraints()
	}
	if !collides(other, obj, Hit{}) || !collides(obj, other, Hit{}) {
		return NewConstraints()
	}
	nc, shiftout := e.resolver.CheckCollisions(movement, dest, otherRect, gamemath.Vector{}, isUnisolid(other))
	if shiftout || !nc.Hit.Any() {
		return nc
	}
	obj.Collision(other, nc.Hit)
	if other.Collision(obj, nc.Hit.Inverted()) == AbortMove {
		return NewConstraints()
	}
	return nc
}

func (e *Engine) collisionTilemap(c *Constraints, movement gamemath.Vector, dest gamemath.Rect, obj Object) {
	var ground, first gamemath.Vector
	grounds := 0
	mixed := false
	for _, tm := range e.tilemaps {
		tileMovement := tm.Velocity().Scale(e.dt)
		mc := NewConstraints()
		r := tm.TilesOverlapping(dest)
		for x := r.Left; x < r.Right; x++ {
			for y := r.Top; y < r.Bottom; y++ {
				tile := tm.Tile(x, y)
				if !tile.Solid() {
					continue
				}
				tb := tm.TileBBox(x, y)
				if tile.Unisolid() && !tile.IsSolidFor(tb, obj.BBox(), movement.Sub(tileMovement), e.opts.UnisolidTolerance) {
					continue
				}
				data := tileData(tm, tile)
				if tile.Slope() && data&gamemath.Full == 0 {
					RectangleAATriangle(&mc, dest, gamemath.NewAATriangle(tb, data), tileMovement)
					continue
				}
				nc, _ := e.resolver.CheckCollisions(movement, dest, tb, tileMovement, false)
				mc.Merge(nc)
			}
		}
		// One contribution per map; maps moving apart are summed.
		if !mc.GroundMovement.IsZero() {
			if grounds == 0 {
				first = mc.GroundMovement
			} else if mc.GroundMovement != first {
				mixed = true
			}
			ground = ground.Add(mc.GroundMovement)
			grounds++
			mc.GroundMovement = gamemath.Vector{}
		}
		c.Merge(mc)
	}
	if grounds == 0 {
		return
	}
	if mixed {
		log.Printf("Warning: collision engine: object stands on tilemaps moving differently, summing ground movement")
	}
	c.GroundMovement = ground
}

// tileData returns the slope data of tile as seen through the map's flip.
func tileData(tm TileProvider, tile Tile) int {
	data := tile.Data
	if tm.Flip()&FlipVertical != 0 {
		data = gamemath.VerticalFlip(data)
	}
	return data
}

// collisionTileAttributes ORs the attributes of every tile dest touches.
// Ice is also picked up just below dest so standing objects notice it.
func (e *Engine) collisionTileAttributes(dest gamemath.Rect, movement gamemath.Vector) uint32 {
	var result uint32
	for _, tm := range e.tilemaps {
		r := tm.TilesOverlapping(dest)
		below := dest
		below.Bottom += e.opts.ShiftDelta
		ice := tm.TilesOverlapping(below)
		for x := r.Left; x < r.Right; x++ {
			y := r.Top
			for ; y < r.Bottom; y++ {
				if tile := tm.Tile(x, y); e.tileTouches(tm, tile, x, y, dest, movement) {
					result |= tile.Attributes
				}
			}
			for ; y < ice.Bottom; y++ {
				if tile := tm.Tile(x, y); e.tileTouches(tm, tile, x, y, dest, movement) {
					result |= tile.Attributes & TileIce
				}
			}
		}
	}
	return result
}

func (e *Engine) tileTouches(tm TileProvider, tile Tile, x, y int, dest gamemath.Rect, movement gamemath.Vector) bool {
	if tile.Attributes == 0 {
		return false
	}
	tb := tm.TileBBox(x, y)
	if tile.Unisolid() && !tile.IsSolidFor(tb, dest.Move(movement.Scale(-1)), movement, e.opts.UnisolidTolerance) {
		return false
	}
	if data := tileData(tm, tile); tile.Slope() && data&gamemath.Full == 0 {
		scratch := NewConstraints()
		hit, _ := RectangleAATriangle(&scratch, dest, gamemath.NewAATriangle(tb, data), gamemath.Vector{})
		return hit
	}
	return true
}

// collisionTouchables tells h and every touchable it overlaps about each
// other. Touchables never block.
func (e *Engine) collisionTouchables(h Handle) {
	w := e.grid.wrapper(h)
	obj := w.obj
	dest := w.dest
	it := e.grid.Query(dest)
	for {
		h2, other, ok := it.Next()
		if !ok {
			break
		}
		if h2 == h || other.Group() != GroupTouchable || !e.active(h2) {
			continue
		}
		odest := e.grid.wrapper(h2).dest
		if !dest.Overlaps(odest) {
			continue
		}
		hit, _ := HitNormal(dest, odest)
		if !collides(obj, other, hit) || !collides(other, obj, hit.Inverted()) {
			continue
		}
		obj.Collision(other, hit)
		other.Collision(obj, hit.Inverted())
	}
}

// collisionObject separates two movers whose destinations overlap. It
// reports whether the pair was resolved.
func (e *Engine) collisionObject(a, b Handle) bool {
	w1 := e.grid.wrapper(a)
	w2 := e.grid.wrapper(b)
	r1, r2 := w1.dest, w2.dest
	if !r1.Overlaps(r2) {
		return false
	}
	// Already resolved against each other in the static phase.
	if e.linked(a, b) {
		return false
	}
	o1, o2 := w1.obj, w2.obj
	if isUnisolid(o1) && r2.Bottom-w2.movement.Y > r1.Top {
		return false
	}
	if isUnisolid(o2) && r1.Bottom-w1.movement.Y > r2.Top {
		return false
	}

	hit, normal := HitNormal(r1, r2)
	if !collides(o1, o2, hit) || !collides(o2, o1, hit.Inverted()) {
		return false
	}
	resp1 := o1.Collision(o2, hit)
	resp2 := o2.Collision(o1, hit.Inverted())
	if resp1 == AbortMove || resp2 == AbortMove {
		return false
	}
	switch {
	case resp1 == Continue && resp2 == Continue:
		n := normal.Scale(0.5 + e.opts.Epsilon)
		w1.dest = w1.dest.Move(n.Scale(-1))
		w2.dest = w2.dest.Move(n)
	case resp1 == Continue && resp2 == ForceMove:
		w1.dest = w1.dest.Move(normal.Scale(-(1 + e.opts.Epsilon)))
	case resp1 == ForceMove && resp2 == Continue:
		w2.dest = w2.dest.Move(normal.Scale(1 + e.opts.Epsilon))
	}
	// Platform contacts are recorded by the static phase; recording the
	// push here would carry the rider a second time.
	if o1.Group() != GroupMovingStatic && o2.Group() != GroupMovingStatic {
		e.graph.RegisterCollisionHit(hit, a, b)
	}
	return true
}

func (e *Engine) linked(a, b Handle) bool {
	for d := DirTop; d <= DirRight; d++ {
		if e.graph.HasEdge(a, b, d) {
			return true
		}
	}
	return false
}

// carryRiders moves everything standing on a moving platform along with
// it. Each rider follows only the platform found as its parent. It returns
// how many riders were carried.
func (e *Engine) carryRiders(handles []Handle) int {
	clear(e.parents)
	clear(e.riders)

	var platforms []Handle
	for _, h := range handles {
		if e.active(h) && e.grid.wrapper(h).obj.Group() == GroupMovingStatic {
			platforms = append(platforms, h)
		}
	}
	if len(platforms) == 0 {
		return 0
	}
	e.graph.ComputeParents(platforms, e.parents)

	carried := 0
	for _, p := range platforms {
		pw := e.grid.wrapper(p)
		riders := e.graph.DirectionalHull(p, DirTop, nil)
		if len(riders) > 0 {
			e.riders[p] = riders
		}
		delta := pw.dest.Pos().Sub(pw.obj.BBox().Pos())
		if delta.IsZero() {
			continue
		}
		for _, r := range riders {
			if e.parents[r] != p || !e.active(r) {
				continue
			}
			rw := e.grid.wrapper(r)
			if rw.obj.Group().blocks() {
				continue
			}
			moved := rw.dest.Move(delta)
			if !rw.ground.IsZero() {
				log.Printf("Warning: collision engine: object carried by a platform and a moving tilemap at once")
			}
			if !e.IsFreeOfTiles(moved, true) {
				continue
			}
			rw.dest = moved
			rw.ground = rw.ground.Add(delta)
			carried++
		}
	}
	return carried
}

package collision

import (
	"testing"

	"github.com/automoto/platcollide/shared/gamemath"
)

func collect(it *GridIterator) []Object {
	var out []Object
	for {
		_, obj, ok := it.Next()
		if !ok {
			return out
		}
		out = append(out, obj)
	}
}

func TestGridAddRemove(t *testing.T) {
	g := NewGrid(1024, 1024, 32, 32)
	a := newObject("a", 10, 10, 16, 16, GroupMoving)

	h := g.Add(a)
	if !h.Valid() || g.Len() != 1 {
		t.Fatalf("Add: handle %+v, len %d", h, g.Len())
	}
	if got, ok := g.Handle(a); !ok || got != h {
		t.Fatalf("Handle = %+v, %v", got, ok)
	}
	if found := collect(g.Query(a.BBox())); len(found) != 1 || found[0] != a {
		t.Fatalf("Query after add = %v", found)
	}

	if !g.Remove(a) {
		t.Fatal("Remove returned false")
	}
	if g.Len() != 0 {
		t.Errorf("Len after remove = %d", g.Len())
	}
	if found := collect(g.Query(a.BBox())); len(found) != 0 {
		t.Errorf("Query after remove = %v", found)
	}
	if g.Object(h) != nil {
		t.Error("stale handle still resolves")
	}
	if g.Remove(a) {
		t.Error("second Remove returned true")
	}

	b := newObject("b", 10, 10, 16, 16, GroupMoving)
	hb := g.Add(b)
	if hb.Slot() != h.Slot() || hb == h {
		t.Errorf("slot reuse: old %+v new %+v", h, hb)
	}
}

func TestGridQueryYieldsEachObjectOnce(t *testing.T) {
	g := NewGrid(1024, 1024, 32, 32)
	big := newObject("big", 0, 0, 100, 100, GroupStatic)
	small := newObject("small", 40, 40, 4, 4, GroupMoving)
	g.Add(big)
	g.Add(small)

	found := collect(g.Query(gamemath.NewRect(0, 0, 128, 128)))
	if len(found) != 2 {
		t.Fatalf("found %d objects, want 2", len(found))
	}
	if found[0] == found[1] {
		t.Error("object yielded twice")
	}
}

func TestGridNestedQueries(t *testing.T) {
	g := NewGrid(1024, 1024, 32, 32)
	a := newObject("a", 0, 0, 80, 80, GroupMoving)
	b := newObject("b", 40, 40, 80, 80, GroupMoving)
	g.Add(a)
	g.Add(b)

	region := gamemath.NewRect(0, 0, 128, 128)
	outer := g.Query(region)
	_, first, ok := outer.Next()
	if !ok {
		t.Fatal("outer query empty")
	}
	if inner := collect(g.Query(region)); len(inner) != 2 {
		t.Fatalf("inner query found %d, want 2", len(inner))
	}
	_, second, ok := outer.Next()
	if !ok {
		t.Fatal("outer query lost its second object after a nested query")
	}
	if first == second {
		t.Error("outer query yielded the same object twice")
	}
	if _, _, ok := outer.Next(); ok {
		t.Error("outer query yielded a third object")
	}
}

func TestGridDefersMutationDuringQuery(t *testing.T) {
	g := NewGrid(1024, 1024, 32, 32)
	a := newObject("a", 0, 0, 16, 16, GroupMoving)
	b := newObject("b", 20, 0, 16, 16, GroupMoving)
	c := newObject("c", 40, 0, 16, 16, GroupMoving)
	g.Add(a)
	g.Add(b)

	it := g.Query(gamemath.NewRect(0, 0, 64, 64))
	_, first, _ := it.Next()
	other := Object(b)
	if first == b {
		other = a
	}
	if !g.Remove(other) {
		t.Fatal("deferred Remove returned false")
	}
	if h := g.Add(c); h.Valid() {
		t.Error("Add during a query should be deferred")
	}
	if g.Len() != 2 {
		t.Errorf("Len during query = %d, want 2", g.Len())
	}
	if rest := collect(it); len(rest) != 0 {
		t.Errorf("removed object still yielded: %v", rest)
	}

	if g.Len() != 2 {
		t.Fatalf("Len after query = %d, want 2", g.Len())
	}
	if _, ok := g.Handle(other); ok {
		t.Error("removed object still indexed")
	}
	if _, ok := g.Handle(c); !ok {
		t.Error("deferred add not applied")
	}
}

func TestGridRemoveCancelsDeferredAdd(t *testing.T) {
	g := NewGrid(1024, 1024, 32, 32)
	a := newObject("a", 0, 0, 16, 16, GroupMoving)
	b := newObject("b", 40, 0, 16, 16, GroupMoving)
	g.Add(a)

	it := g.Query(gamemath.NewRect(0, 0, 64, 64))
	g.Add(b)
	if !g.Remove(b) {
		t.Error("Remove of a deferred add returned false")
	}
	collect(it)

	if g.Len() != 1 {
		t.Errorf("Len = %d, want 1", g.Len())
	}
	if _, ok := g.Handle(b); ok {
		t.Error("cancelled add applied on close")
	}
	if g.Remove(b) {
		t.Error("second Remove succeeded")
	}
}

func TestGridMoveRelinks(t *testing.T) {
	g := NewGrid(1024, 1024, 32, 32)
	a := newObject("a", 0, 0, 16, 16, GroupMoving)
	g.Add(a)

	a.bbox = gamemath.NewRect(800, 800, 16, 16)
	if !g.Move(a) {
		t.Fatal("Move returned false")
	}
	if found := collect(g.Query(gamemath.NewRect(0, 0, 16, 16))); len(found) != 0 {
		t.Errorf("object still found at old position: %v", found)
	}
	if found := collect(g.Query(a.bbox)); len(found) != 1 {
		t.Errorf("object not found at new position")
	}
	if g.Dest(mustHandle(t, g, a)) != a.bbox {
		t.Error("Dest not updated by Move")
	}
}

func TestGridClampsOutOfWorldObjects(t *testing.T) {
	g := NewGrid(256, 256, 32, 32)
	a := newObject("a", -500, -500, 16, 16, GroupMoving)
	g.Add(a)
	if found := collect(g.Query(gamemath.NewRect(0, 0, 8, 8))); len(found) != 1 {
		t.Errorf("clamped object not found in edge cell")
	}
}

func TestGridQueryDegenerateRegions(t *testing.T) {
	g := NewGrid(256, 256, 32, 32)
	g.Add(newObject("a", 0, 0, 16, 16, GroupMoving))

	tests := []struct {
		name string
		r    gamemath.Rect
	}{
		{"inverted", gamemath.Rect{Left: 10, Right: 0, Top: 0, Bottom: 10}},
		{"far right", gamemath.NewRect(5000, 0, 10, 10)},
		{"far above", gamemath.NewRect(0, -5000, 10, 10)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if found := collect(g.Query(tt.r)); len(found) != 0 {
				t.Errorf("found %v", found)
			}
		})
	}
	g.Query(gamemath.Rect{Left: 1, Right: 0}).Close()
	if g.sessions != 0 {
		t.Errorf("sessions = %d after closing an empty iterator", g.sessions)
	}
}

func TestGridCheckCollisionsVisitsPairsOnce(t *testing.T) {
	g := NewGrid(1024, 1024, 32, 32)
	g.Add(newObject("a", 0, 0, 16, 16, GroupMoving))
	g.Add(newObject("b", 8, 0, 16, 16, GroupMoving))
	g.Add(newObject("wall", 4, 0, 16, 16, GroupStatic))
	g.Add(newObject("c", 12, 0, 16, 16, GroupMovingStatic))

	seen := make(map[[2]int]int)
	g.CheckCollisions(func(a, b Handle) {
		if a.Slot() >= b.Slot() {
			t.Errorf("pair out of order: %d, %d", a.Slot(), b.Slot())
		}
		seen[[2]int{a.Slot(), b.Slot()}]++
	})
	if len(seen) != 3 {
		t.Errorf("visited %d pairs, want 3: %v", len(seen), seen)
	}
	for pair, n := range seen {
		if n != 1 {
			t.Errorf("pair %v visited %d times", pair, n)
		}
		if pair[0] == 2 || pair[1] == 2 {
			t.Errorf("static object paired: %v", pair)
		}
	}
}

func mustHandle(t *testing.T, g *Grid, obj Object) Handle {
	t.Helper()
	h, ok := g.Handle(obj)
	if !ok {
		t.Fatalf("object not in grid")
	}
	return h
}

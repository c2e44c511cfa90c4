package collision

import (
	"reflect"
	"testing"
)

func TestGraphRegisterCollisionHitAddsDualEdges(t *testing.T) {
	g := NewGraph[string]()
	g.RegisterCollisionHit(Hit{Bottom: true}, "rider", "platform")

	if !g.HasEdge("rider", "platform", DirBottom) {
		t.Error("missing rider -> platform bottom edge")
	}
	if !g.HasEdge("platform", "rider", DirTop) {
		t.Error("missing platform -> rider top edge")
	}
	if g.InDegree("rider") != 1 || g.InDegree("platform") != 0 {
		t.Errorf("in-degrees rider %d platform %d", g.InDegree("rider"), g.InDegree("platform"))
	}

	g.RegisterCollisionHit(Hit{Bottom: true}, "rider", "platform")
	if g.InDegree("rider") != 1 || len(g.Edges("platform", DirTop)) != 1 {
		t.Error("duplicate hit registered twice")
	}
}

func TestGraphSideHits(t *testing.T) {
	g := NewGraph[int]()
	g.RegisterCollisionHit(Hit{Left: true, Top: true}, 1, 2)

	want := map[Direction][2]int{
		DirLeft:   {1, 2},
		DirRight:  {2, 1},
		DirTop:    {1, 2},
		DirBottom: {2, 1},
	}
	for dir, e := range want {
		if !g.HasEdge(e[0], e[1], dir) {
			t.Errorf("missing %d -> %d %s", e[0], e[1], dir)
		}
	}
	if g.InDegree(2) != 1 {
		t.Errorf("InDegree(2) = %d", g.InDegree(2))
	}
	if g.Len() != 2 {
		t.Errorf("Len = %d", g.Len())
	}
}

func TestGraphDirectionalHull(t *testing.T) {
	g := NewGraph[string]()
	g.RegisterCollisionHit(Hit{Bottom: true}, "a", "p")
	g.RegisterCollisionHit(Hit{Bottom: true}, "b", "a")
	g.RegisterCollisionHit(Hit{Bottom: true}, "c", "p")
	g.RegisterCollisionHit(Hit{Right: true}, "p", "wall")

	got := g.DirectionalHull("p", DirTop, nil)
	want := []string{"a", "c", "b"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("hull = %v, want %v", got, want)
	}
	if hull := g.DirectionalHull("nobody", DirTop, nil); len(hull) != 0 {
		t.Errorf("hull of unknown node = %v", hull)
	}
	if hull := g.DirectionalHull("b", DirTop, nil); len(hull) != 0 {
		t.Errorf("hull above the topmost node = %v", hull)
	}
	if got := g.DirectionalHull("p", DirRight, nil); !reflect.DeepEqual(got, []string{"wall"}) {
		t.Errorf("right hull = %v", got)
	}
}

func TestGraphComputeParents(t *testing.T) {
	g := NewGraph[string]()
	g.RegisterCollisionHit(Hit{Bottom: true}, "x", "p")
	g.RegisterCollisionHit(Hit{Bottom: true}, "y", "x")
	g.RegisterCollisionHit(Hit{Bottom: true}, "z", "ground")

	parents := make(map[string]string)
	g.ComputeParents([]string{"p", "q"}, parents)

	want := map[string]string{"p": "p", "q": "q", "x": "p", "y": "p"}
	if !reflect.DeepEqual(parents, want) {
		t.Errorf("parents = %v, want %v", parents, want)
	}
}

func TestGraphComputeParentsFirstWriterWins(t *testing.T) {
	g := NewGraph[string]()
	g.RegisterCollisionHit(Hit{Bottom: true}, "r", "p1")
	g.RegisterCollisionHit(Hit{Bottom: true}, "r", "p2")

	parents := make(map[string]string)
	g.ComputeParents([]string{"p1", "p2"}, parents)
	if parents["r"] != "p1" {
		t.Errorf("parent of r = %q, want p1", parents["r"])
	}
}

func TestGraphComputeParentsCycle(t *testing.T) {
	g := NewGraph[string]()
	g.RegisterCollisionHit(Hit{Bottom: true}, "a", "b")
	g.RegisterCollisionHit(Hit{Bottom: true}, "b", "a")
	g.RegisterCollisionHit(Hit{Bottom: true}, "x", "p")

	parents := make(map[string]string)
	g.ComputeParents([]string{"p"}, parents)
	if _, ok := parents["a"]; ok {
		t.Error("a in a cycle got a parent")
	}
	if _, ok := parents["b"]; ok {
		t.Error("b in a cycle got a parent")
	}
	if parents["x"] != "p" {
		t.Errorf("parent of x = %q", parents["x"])
	}
}

func TestGraphReset(t *testing.T) {
	g := NewGraph[int]()
	g.RegisterCollisionHit(Hit{Bottom: true}, 1, 2)
	g.Reset()
	if g.Len() != 0 || g.HasEdge(1, 2, DirBottom) || g.InDegree(1) != 0 {
		t.Error("graph not empty after Reset")
	}
	if hull := g.DirectionalHull(2, DirTop, nil); len(hull) != 0 {
		t.Errorf("hull of a node from before Reset = %v", hull)
	}
	g.RegisterCollisionHit(Hit{Top: true}, 3, 4)
	if got := g.Nodes(); !reflect.DeepEqual(got, []int{3, 4}) {
		t.Errorf("nodes after reuse = %v", got)
	}
	if len(g.Edges(3, DirTop)) != 1 {
		t.Error("edge lost after reuse")
	}
}

func TestDirectionOpposite(t *testing.T) {
	for d := DirTop; d <= DirRight; d++ {
		if d.Opposite().Opposite() != d || d.Opposite() == d {
			t.Errorf("Opposite broken for %s", d)
		}
	}
}

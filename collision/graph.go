package collision

import "log"

// Direction is a side of an object in the collision graph.
type Direction uint8

const (
	DirTop Direction = iota
	DirBottom
	DirLeft
	DirRight
)

func (d Direction) Opposite() Direction {
	switch d {
	case DirTop:
		return DirBottom
	case DirBottom:
		return DirTop
	case DirLeft:
		return DirRight
	}
	return DirLeft
}

func (d Direction) String() string {
	switch d {
	case DirTop:
		return "top"
	case DirBottom:
		return "bottom"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	}
	return "unknown"
}

type edgeKey[K comparable] struct {
	from, to K
	dir      Direction
}

type graphNode[K comparable] struct {
	key      K
	edges    [4][]K
	inDegree int
}

// Graph records who blocks whom during one tick. An edge a->b tagged dir
// means a is blocked on side dir by b. Iteration follows insertion order so
// results do not depend on map ordering.
type Graph[K comparable] struct {
	nodes []graphNode[K]
	known map[K]int
	edges map[edgeKey[K]]struct{}
}

func NewGraph[K comparable]() *Graph[K] {
	return &Graph[K]{
		known: make(map[K]int),
		edges: make(map[edgeKey[K]]struct{}),
	}
}

func (g *Graph[K]) node(k K) int {
	if i, ok := g.known[k]; ok {
		return i
	}
	g.nodes = append(g.nodes, graphNode[K]{key: k})
	i := len(g.nodes) - 1
	g.known[k] = i
	return i
}

// Len returns the number of nodes.
func (g *Graph[K]) Len() int { return len(g.nodes) }

// Nodes returns the nodes in insertion order.
func (g *Graph[K]) Nodes() []K {
	out := make([]K, len(g.nodes))
	for i := range g.nodes {
		out[i] = g.nodes[i].key
	}
	return out
}

// RegisterCollisionHit records that a was hit by b on every side set in hit,
// together with the opposite edge from b back to a.
func (g *Graph[K]) RegisterCollisionHit(hit Hit, a, b K) {
	if a == b {
		log.Printf("Warning: collision graph: ignoring self collision")
		return
	}
	if hit.Top {
		g.addPair(a, b, DirTop)
	}
	if hit.Bottom {
		g.addPair(a, b, DirBottom)
	}
	if hit.Left {
		g.addPair(a, b, DirLeft)
	}
	if hit.Right {
		g.addPair(a, b, DirRight)
	}
}

func (g *Graph[K]) addPair(a, b K, dir Direction) {
	g.addEdge(a, b, dir)
	g.addEdge(b, a, dir.Opposite())
}

func (g *Graph[K]) addEdge(from, to K, dir Direction) {
	key := edgeKey[K]{from: from, to: to, dir: dir}
	if _, ok := g.edges[key]; ok {
		return
	}
	g.edges[key] = struct{}{}
	fi := g.node(from)
	ti := g.node(to)
	g.nodes[fi].edges[dir] = append(g.nodes[fi].edges[dir], to)
	if dir == DirTop {
		g.nodes[ti].inDegree++
	}
}

func (g *Graph[K]) HasEdge(from, to K, dir Direction) bool {
	_, ok := g.edges[edgeKey[K]{from: from, to: to, dir: dir}]
	return ok
}

// Edges returns the targets of from's edges tagged dir.
func (g *Graph[K]) Edges(from K, dir Direction) []K {
	i, ok := g.known[from]
	if !ok {
		return nil
	}
	return g.nodes[i].edges[dir]
}

// InDegree counts the top edges pointing at k, i.e. how many objects k
// rests on.
func (g *Graph[K]) InDegree(k K) int {
	i, ok := g.known[k]
	if !ok {
		return 0
	}
	return g.nodes[i].inDegree
}

// DirectionalHull appends to fill every node reachable from start through
// edges tagged dir, in breadth-first order, excluding start.
func (g *Graph[K]) DirectionalHull(start K, dir Direction, fill []K) []K {
	si, ok := g.known[start]
	if !ok {
		return fill
	}
	visited := make([]bool, len(g.nodes))
	visited[si] = true
	queue := []int{si}
	for len(queue) > 0 {
		i := queue[0]
		queue = queue[1:]
		for _, next := range g.nodes[i].edges[dir] {
			ni := g.known[next]
			if visited[ni] {
				continue
			}
			visited[ni] = true
			fill = append(fill, next)
			queue = append(queue, ni)
		}
	}
	return fill
}

// ComputeParents finds, for every node, the platform ultimately carrying
// it. Nodes are processed in topological order over top edges. Platforms
// that rest on nothing are their own parent; every other node takes the
// parent of the first node found beneath it. Nodes without a platform below
// them get no entry. Nodes caught in a cycle of top edges get no entry and
// are reported.
func (g *Graph[K]) ComputeParents(platforms []K, parents map[K]K) {
	isPlatform := make(map[K]bool, len(platforms))
	for _, p := range platforms {
		g.node(p)
		isPlatform[p] = true
	}

	n := len(g.nodes)
	inDegree := make([]int, n)
	assigned := make([]bool, n)
	parent := make([]int, n)
	queue := make([]int, 0, n)
	for i := range g.nodes {
		inDegree[i] = g.nodes[i].inDegree
		parent[i] = -1
		if inDegree[i] == 0 {
			assigned[i] = true
			if isPlatform[g.nodes[i].key] {
				parent[i] = i
			}
			queue = append(queue, i)
		}
	}

	processed := 0
	for head := 0; head < len(queue); head++ {
		i := queue[head]
		processed++
		for _, child := range g.nodes[i].edges[DirTop] {
			ci := g.known[child]
			if !assigned[ci] {
				assigned[ci] = true
				parent[ci] = parent[i]
			}
			inDegree[ci]--
			if inDegree[ci] == 0 {
				queue = append(queue, ci)
			}
		}
	}

	if processed < n {
		log.Printf("Warning: collision graph: %d objects stacked in a cycle, left without a parent", n-processed)
		for i := range g.nodes {
			if inDegree[i] > 0 {
				parent[i] = -1
			}
		}
	}

	for i := range g.nodes {
		if parent[i] >= 0 {
			parents[g.nodes[i].key] = g.nodes[parent[i]].key
		}
	}
}

// Reset drops all nodes and edges, keeping allocated capacity.
func (g *Graph[K]) Reset() {
	g.nodes = g.nodes[:0]
	clear(g.known)
	clear(g.edges)
}

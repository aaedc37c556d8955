package domain

// BFSResult holds the outcome of a breadth-first traversal from a single
// source vertex.
type BFSResult struct {
	Visited map[int]bool
	Parent  map[int]int
	Level   map[int]int
}

// BFS runs a breadth-first search over g's forward edges starting at
// source. It never treats any vertex as special: every vertex reachable
// from source is visited, whichever target the caller is interested in.
func BFS(g *Graph, source int) *BFSResult {
	result := &BFSResult{
		Visited: make(map[int]bool),
		Parent:  make(map[int]int),
		Level:   make(map[int]int),
	}

	if !g.HasVertex(source) {
		return result
	}

	queue := []int{source}
	result.Visited[source] = true
	result.Parent[source] = -1
	result.Level[source] = 0

	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]

		for _, w := range g.Out(v) {
			if result.Visited[w] {
				continue
			}
			result.Visited[w] = true
			result.Parent[w] = v
			result.Level[w] = result.Level[v] + 1
			queue = append(queue, w)
		}
	}

	return result
}

// BFSReachable reports whether target is reachable from source.
func BFSReachable(g *Graph, source, target int) bool {
	if source == target {
		return g.HasVertex(source)
	}
	return BFS(g, source).Visited[target]
}

// BFSReverse runs a breadth-first search over g's reverse edges (i.e.
// which vertices can reach target).
func BFSReverse(g *Graph, target int) *BFSResult {
	result := &BFSResult{
		Visited: make(map[int]bool),
		Parent:  make(map[int]int),
		Level:   make(map[int]int),
	}

	if !g.HasVertex(target) {
		return result
	}

	queue := []int{target}
	result.Visited[target] = true
	result.Parent[target] = -1
	result.Level[target] = 0

	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]

		for _, u := range g.In(v) {
			if result.Visited[u] {
				continue
			}
			result.Visited[u] = true
			result.Parent[u] = v
			result.Level[u] = result.Level[v] + 1
			queue = append(queue, u)
		}
	}

	return result
}

// IsConnected reports whether every vertex is reachable from vertex 1
// when edges are treated as undirected — used as a cheap sanity check
// before building a MILP over a graph that is obviously fragmented.
func IsConnected(g *Graph) bool {
	n := g.VertexCount()
	if n == 0 {
		return true
	}

	visited := make(map[int]bool, n)
	queue := []int{1}
	visited[1] = true

	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]

		neighbors := append(append([]int{}, g.Out(v)...), g.In(v)...)
		for _, w := range neighbors {
			if visited[w] {
				continue
			}
			visited[w] = true
			queue = append(queue, w)
		}
	}

	return len(visited) == n
}

// FindConnectedComponents partitions 1..n into weakly-connected
// components.
func FindConnectedComponents(g *Graph) [][]int {
	n := g.VertexCount()
	visited := make(map[int]bool, n)
	var components [][]int

	for start := 1; start <= n; start++ {
		if visited[start] {
			continue
		}

		var component []int
		queue := []int{start}
		visited[start] = true

		for len(queue) > 0 {
			v := queue[0]
			queue = queue[1:]
			component = append(component, v)

			neighbors := append(append([]int{}, g.Out(v)...), g.In(v)...)
			for _, w := range neighbors {
				if visited[w] {
					continue
				}
				visited[w] = true
				queue = append(queue, w)
			}
		}

		components = append(components, component)
	}

	return components
}

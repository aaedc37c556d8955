package domain

import (
	"testing"
)

func createTestGraph() *Graph {
	g := NewGraph(5)

	// Edges: 1->2->3->5 and 1->4->5
	_ = g.AddEdge(1, 2)
	_ = g.AddEdge(2, 3)
	_ = g.AddEdge(3, 5)
	_ = g.AddEdge(1, 4)
	_ = g.AddEdge(4, 5)

	return g
}

func TestBFS_PathExists(t *testing.T) {
	g := createTestGraph()

	result := BFS(g, 1)

	if !result.Visited[5] {
		t.Error("expected path to be found")
	}
	if result.Parent[5] == -1 {
		t.Error("expected sink to have parent")
	}
	if !result.Visited[1] {
		t.Error("source should be visited")
	}
}

func TestBFS_NoPath(t *testing.T) {
	g := NewGraph(3)
	_ = g.AddEdge(1, 2)
	// No edge to vertex 3

	result := BFS(g, 1)

	if result.Visited[3] {
		t.Error("expected no path")
	}
}

func TestBFSReachable(t *testing.T) {
	g := createTestGraph()

	for i := 1; i <= 5; i++ {
		if !BFSReachable(g, 1, i) {
			t.Errorf("vertex %d should be reachable", i)
		}
	}
}

func TestBFSReachable_Unreachable(t *testing.T) {
	g := NewGraph(3)
	_ = g.AddEdge(1, 2)

	if BFSReachable(g, 1, 3) {
		t.Error("vertex 3 should not be reachable")
	}
}

func TestBFSReverse(t *testing.T) {
	g := createTestGraph()

	result := BFSReverse(g, 5)

	for i := 1; i <= 5; i++ {
		if !result.Visited[i] {
			t.Errorf("vertex %d should reach target 5", i)
		}
	}
}

func TestIsConnected(t *testing.T) {
	g := createTestGraph()

	if !IsConnected(g) {
		t.Error("graph should be connected")
	}

	g2 := NewGraph(3)
	_ = g2.AddEdge(1, 2)

	if IsConnected(g2) {
		t.Error("disconnected graph should return false")
	}
}

func TestFindConnectedComponents(t *testing.T) {
	g := NewGraph(5)

	// Component 1: 1-2
	_ = g.AddEdge(1, 2)

	// Component 2: 3-4
	_ = g.AddEdge(3, 4)

	// Component 3: 5 (isolated)

	components := FindConnectedComponents(g)

	if len(components) != 3 {
		t.Errorf("expected 3 components, got %d", len(components))
	}
}

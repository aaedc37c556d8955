package domain

import "testing"

func TestVertexTensorSharedRightAlignGet(t *testing.T) {
	tensor := NewSharedVertexTensor(map[int]float64{1: 2.5, 2: 3.0})

	if got := tensor.Get(0, 1); got != 2.5 {
		t.Fatalf("Get(0,1) = %v, want 2.5", got)
	}
	if got := tensor.Get(99, 1); got != 2.5 {
		t.Fatalf("shared tensor should ignore agent index, got %v", got)
	}
	if got := tensor.Get(0, 3); got != 0 {
		t.Fatalf("missing vertex should default to 0, got %v", got)
	}
}

func TestVertexTensorPerAgentGet(t *testing.T) {
	tensor := NewPerAgentVertexTensor(map[int]map[int]float64{
		0: {1: 1.0},
		1: {1: 9.0},
	})

	if got := tensor.Get(0, 1); got != 1.0 {
		t.Fatalf("Get(0,1) = %v, want 1.0", got)
	}
	if got := tensor.Get(1, 1); got != 9.0 {
		t.Fatalf("Get(1,1) = %v, want 9.0", got)
	}
}

func TestEdgeTensorSharedRightAlignGet(t *testing.T) {
	tensor := NewSharedEdgeTensor(map[EdgeKey]float64{{From: 1, To: 2}: 4.0})

	if got := tensor.Get(0, 1, 2); got != 4.0 {
		t.Fatalf("Get(0,1,2) = %v, want 4.0", got)
	}
	if got := tensor.Get(7, 1, 2); got != 4.0 {
		t.Fatalf("shared edge tensor should ignore agent index, got %v", got)
	}
}

func TestEdgeTensorPerAgentGet(t *testing.T) {
	tensor := NewPerAgentEdgeTensor(map[int]map[EdgeKey]float64{
		0: {{From: 1, To: 2}: 1.0},
		1: {{From: 1, To: 2}: 5.0},
	})

	if got := tensor.Get(1, 1, 2); got != 5.0 {
		t.Fatalf("Get(1,1,2) = %v, want 5.0", got)
	}
}

func TestVertexTensorValidateNonNegative(t *testing.T) {
	tensor := NewSharedVertexTensor(map[int]float64{1: -1.0})
	if _, _, bad := tensor.ValidateNonNegative(); !bad {
		t.Fatal("expected negative value to be flagged")
	}

	ok := NewSharedVertexTensor(map[int]float64{1: 1.0})
	if _, _, bad := ok.ValidateNonNegative(); bad {
		t.Fatal("did not expect a negative value")
	}
}

func TestNilTensorsDefaultToZero(t *testing.T) {
	var vt *VertexTensor
	var et *EdgeTensor

	if vt.Get(0, 1) != 0 {
		t.Fatal("nil VertexTensor should return 0")
	}
	if et.Get(0, 1, 2) != 0 {
		t.Fatal("nil EdgeTensor should return 0")
	}
}

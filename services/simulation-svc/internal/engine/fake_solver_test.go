package engine

import (
	"context"

	"mapfnet/pkg/domain"
	"mapfnet/services/simulation-svc/internal/solverclient"
)

// fakeSolver answers every Solve call using a function of the request, so
// tests can script deterministic objective values without a live solver-svc.
type fakeSolver struct {
	solve func(req *solverclient.SolveRequest) (*solverclient.SolveResponse, error)
	calls int
}

func (f *fakeSolver) Solve(_ context.Context, req *solverclient.SolveRequest) (*solverclient.SolveResponse, error) {
	f.calls++
	return f.solve(req)
}

// objectiveFromEdgeCost returns a fake solver that reports the sum of
// req.EdgeCost as its objective, with one trivial single-vertex path so
// makespan/playback helpers have something to read.
func objectiveFromEdgeCost() *fakeSolver {
	return &fakeSolver{solve: func(req *solverclient.SolveRequest) (*solverclient.SolveResponse, error) {
		var total float64
		for _, v := range req.EdgeCost {
			total += v
		}
		return &solverclient.SolveResponse{
			Objective: total,
			Paths: map[int]*domain.AgentPath{
				0: {Vertices: []domain.TimedVertex{{Vertex: 0, Time: 0}, {Vertex: 1, Time: 1}}},
			},
		}, nil
	}}
}

func sampleRequest() *solverclient.SolveRequest {
	return &solverclient.SolveRequest{
		Mode:  "continuous",
		Graph: solverclient.GraphDTO{VertexCount: 3, Edges: []solverclient.EdgeDTO{{From: 0, To: 1}, {From: 1, To: 2}}},
		Agents: []solverclient.AgentDTO{
			{Source: 0, Target: 2},
		},
		EdgeCost: map[string]float64{"0:1": 1, "1:2": 2},
	}
}

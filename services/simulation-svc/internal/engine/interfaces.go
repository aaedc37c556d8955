package engine

import (
	"context"

	"mapfnet/services/simulation-svc/internal/solverclient"
)

// Solver abstracts solver-svc's /v1/solve call so engines can be tested
// against a fake without a network round trip.
type Solver interface {
	Solve(ctx context.Context, req *solverclient.SolveRequest) (*solverclient.SolveResponse, error)
}

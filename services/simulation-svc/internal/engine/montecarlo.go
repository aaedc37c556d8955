package engine

import (
	"context"
	"math"
	"math/rand"
	"runtime"
	"sort"
	"sync"

	"mapfnet/services/simulation-svc/internal/solverclient"
)

// Uncertainty describes one parameter to perturb randomly on every Monte
// Carlo iteration: its value is drawn from Normal(current, StdDevFraction *
// current) each trial.
type Uncertainty struct {
	Target         Target `json:"target"`
	VertexID       int    `json:"vertexId,omitempty"`
	EdgeFrom       int    `json:"edgeFrom,omitempty"`
	EdgeTo         int    `json:"edgeTo,omitempty"`
	StdDevFraction float64 `json:"stdDevFraction"`
}

// MonteCarloConfig tunes how RunMonteCarlo spreads work and draws samples.
type MonteCarloConfig struct {
	Iterations int   `json:"iterations,omitempty"`
	Parallel   bool  `json:"parallel,omitempty"`
	MaxWorkers int   `json:"maxWorkers,omitempty"`
	Seed       int64 `json:"seed,omitempty"`
}

// DefaultMonteCarloConfig returns sane defaults.
func DefaultMonteCarloConfig() MonteCarloConfig {
	return MonteCarloConfig{Iterations: 200, Parallel: true, Seed: 1}
}

// MonteCarloOutcome is one trial's solved objective, or the error that
// stopped it from solving.
type MonteCarloOutcome struct {
	Iteration int     `json:"iteration"`
	Objective float64 `json:"objective"`
	Err       error   `json:"-"`
}

// MonteCarloSummary aggregates a completed run's outcomes.
type MonteCarloSummary struct {
	Iterations      int     `json:"iterations"`
	Failed          int     `json:"failed"`
	Mean            float64 `json:"mean"`
	StdDev          float64 `json:"stdDev"`
	Min             float64 `json:"min"`
	Max             float64 `json:"max"`
	P5              float64 `json:"p5"`
	P50             float64 `json:"p50"`
	P95             float64 `json:"p95"`
	ConfidenceLevel float64 `json:"confidenceLevel"`
	CILow           float64 `json:"ciLow"`
	CIHigh          float64 `json:"ciHigh"`
}

// MonteCarloEngine runs many perturbed re-solves of a baseline request
// concurrently, mirroring the teacher's worker-pool-calls-solver-per-
// iteration shape.
type MonteCarloEngine struct {
	solver Solver
}

// NewMonteCarloEngine builds a MonteCarloEngine bound to solver.
func NewMonteCarloEngine(solver Solver) *MonteCarloEngine {
	return &MonteCarloEngine{solver: solver}
}

// Run perturbs baseline according to uncertainties over cfg.Iterations
// trials and returns every outcome plus a summary.
func (e *MonteCarloEngine) Run(ctx context.Context, baseline *solverclient.SolveRequest, uncertainties []Uncertainty, cfg MonteCarloConfig) ([]MonteCarloOutcome, MonteCarloSummary, error) {
	if cfg.Iterations <= 0 {
		cfg.Iterations = 200
	}

	numWorkers := runtime.NumCPU()
	if cfg.MaxWorkers > 0 && cfg.MaxWorkers < numWorkers {
		numWorkers = cfg.MaxWorkers
	}
	if !cfg.Parallel {
		numWorkers = 1
	}

	tasks := make(chan int, cfg.Iterations)
	for i := 0; i < cfg.Iterations; i++ {
		tasks <- i
	}
	close(tasks)

	outcomes := make([]MonteCarloOutcome, cfg.Iterations)
	var wg sync.WaitGroup
	var mu sync.Mutex

	for w := 0; w < numWorkers; w++ {
		wg.Add(1)
		rng := rand.New(rand.NewSource(cfg.Seed + int64(w)))
		go func(rng *rand.Rand) {
			defer wg.Done()
			for i := range tasks {
				if ctx.Err() != nil {
					mu.Lock()
					outcomes[i] = MonteCarloOutcome{Iteration: i, Err: ctx.Err()}
					mu.Unlock()
					continue
				}

				perturbed := perturb(baseline, uncertainties, rng)
				resp, err := e.solver.Solve(ctx, perturbed)

				mu.Lock()
				if err != nil {
					outcomes[i] = MonteCarloOutcome{Iteration: i, Err: err}
				} else {
					outcomes[i] = MonteCarloOutcome{Iteration: i, Objective: resp.Objective}
				}
				mu.Unlock()
			}
		}(rng)
	}
	wg.Wait()

	return outcomes, summarize(outcomes), nil
}

func perturb(baseline *solverclient.SolveRequest, uncertainties []Uncertainty, rng *rand.Rand) *solverclient.SolveRequest {
	mods := make([]Modification, 0, len(uncertainties))
	for _, u := range uncertainties {
		multiplier := 1 + rng.NormFloat64()*u.StdDevFraction
		mods = append(mods, Modification{
			Type:     ModUpdate,
			Target:   u.Target,
			Kind:     ChangeRelative,
			Value:    multiplier,
			VertexID: u.VertexID,
			EdgeFrom: u.EdgeFrom,
			EdgeTo:   u.EdgeTo,
		})
	}
	return ApplyModifications(baseline, mods)
}

func summarize(outcomes []MonteCarloOutcome) MonteCarloSummary {
	values := make([]float64, 0, len(outcomes))
	failed := 0
	for _, o := range outcomes {
		if o.Err != nil {
			failed++
			continue
		}
		values = append(values, o.Objective)
	}
	if len(values) == 0 {
		return MonteCarloSummary{Iterations: len(outcomes), Failed: failed}
	}

	sort.Float64s(values)
	n := len(values)

	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(n)

	var sumSq float64
	for _, v := range values {
		d := v - mean
		sumSq += d * d
	}
	stdDev := math.Sqrt(sumSq / float64(n))

	ciMargin := 1.96 * stdDev / math.Sqrt(float64(n))

	return MonteCarloSummary{
		Iterations:      len(outcomes),
		Failed:          failed,
		Mean:            mean,
		StdDev:          stdDev,
		Min:             values[0],
		Max:             values[n-1],
		P5:              percentile(values, 0.05),
		P50:             percentile(values, 0.50),
		P95:             percentile(values, 0.95),
		ConfidenceLevel: 0.95,
		CILow:           mean - ciMargin,
		CIHigh:          mean + ciMargin,
	}
}

func percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	idx := int(p * float64(len(sorted)-1))
	return sorted[idx]
}

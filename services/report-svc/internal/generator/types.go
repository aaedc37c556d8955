// services/report-svc/internal/generator/types.go
package generator

import (
	"sort"
	"time"

	"mapfnet/pkg/domain"
)

// =====================================================
// Internal data shapes consumed by the format generators
// =====================================================

// GraphSummary reports a solved instance's size.
type GraphSummary struct {
	VertexCount int
	EdgeCount   int
	AgentCount  int
}

// SolveReportData is the headline section of a solve report: the
// objective value, makespan, and per-agent paths of one MAPF solve.
type SolveReportData struct {
	Mode      string
	Objective float64
	Makespan  float64
	Stats     domain.SolveStatistics
}

// AnalyticsReportData is congestion and conflict analysis over a
// solved instance.
type AnalyticsReportData struct {
	TotalWaitCost   float64
	Bottlenecks     []*BottleneckData
	Recommendations []*RecommendationData
	Efficiency      *EfficiencyData
	Stats           *GraphSummary
}

// BottleneckData is one congested vertex or edge — many agents pass
// through it within a short time window. A pure vertex bottleneck sets
// From == To.
type BottleneckData struct {
	From        int
	To          int
	Occupancy   int
	ImpactScore float64
	Severity    string
}

// RecommendationData is one suggested change to reduce congestion or
// conflicts.
type RecommendationData struct {
	Type                 string
	Description          string
	AffectedEdgeFrom     int
	AffectedEdgeTo       int
	EstimatedImprovement float64
	EstimatedCost        float64
}

// EfficiencyData reports how close the solved paths are to each
// agent's unconstrained shortest path.
type EfficiencyData struct {
	OverallEfficiency   float64
	PathOptimalityRatio float64
	UnusedEdges         int
	SaturatedEdges      int
	Grade               string
}

// SimulationReportData is the result of replaying a solved instance
// under perturbation — delayed agents, blocked vertices, or resampled
// costs.
type SimulationReportData struct {
	ScenarioType      string
	BaselineObjective float64
	BaselineMakespan  float64
	Scenarios         []*ScenarioData
	MonteCarlo        *MonteCarloData
	Sensitivity       []*SensitivityData
	Resilience        *ResilienceData
	TimeSteps         []*TimeStepData
}

// ScenarioData is one perturbation's outcome relative to the baseline.
type ScenarioData struct {
	Name                   string
	Objective              float64
	Makespan               float64
	ObjectiveChangePercent float64
	ImpactLevel            string
}

// MonteCarloData is the distribution of makespans across repeated
// randomized replays.
type MonteCarloData struct {
	Iterations      int
	MeanMakespan    float64
	StdDev          float64
	MinMakespan     float64
	MaxMakespan     float64
	P5              float64
	P50             float64
	P95             float64
	ConfidenceLevel float64
	CiLow           float64
	CiHigh          float64
}

// SensitivityData reports how sensitive the objective is to one
// parameter (a cost weight, a wait-time bound, ...).
type SensitivityData struct {
	ParameterID      string
	Elasticity       float64
	SensitivityIndex float64
	Level            string
}

// ResilienceData reports how the instance holds up when a vertex or
// edge is removed.
type ResilienceData struct {
	OverallScore           float64
	SinglePointsOfFailure  int
	WorstCaseMakespanDelta float64
	NMinusOneFeasible      bool
}

// TimeStepData is one step of a step-indexed (discrete-time) solve,
// reported for animation/playback-style reports.
type TimeStepData struct {
	Step             int
	Timestamp        time.Time
	OccupiedVertices int
	ActiveAgents     int
	CongestionLevel  float64
}

// ComparisonItemData is one row of a side-by-side solve comparison.
type ComparisonItemData struct {
	Name       string
	Objective  float64
	Makespan   float64
	Efficiency float64
	Metrics    map[string]float64
}

// AgentPathRow is one agent's solved path, flattened into the
// (agent, step, from, to, arrival, cost) tuple the CSV/Excel/PDF
// generators render as a table row.
type AgentPathRow struct {
	Agent       int
	Step        int
	From        int
	To          int
	ArrivalTime float64
	Cost        float64
}

// PathRows flattens a solved path set into AgentPathRow tuples, sorted
// by agent then step, for tabular rendering.
func PathRows(paths map[int]*domain.AgentPath) []*AgentPathRow {
	agents := make([]int, 0, len(paths))
	for id := range paths {
		agents = append(agents, id)
	}
	sort.Ints(agents)

	var rows []*AgentPathRow
	for _, id := range agents {
		path := paths[id]
		if path == nil {
			continue
		}
		for i, e := range path.Edges {
			rows = append(rows, &AgentPathRow{
				Agent:       id,
				Step:        i,
				From:        e.From,
				To:          e.To,
				ArrivalTime: e.Time,
				Cost:        path.Cost,
			})
		}
	}
	return rows
}

// Makespan returns the latest arrival time across every agent's path —
// the solve's makespan, since domain.SolveStatistics doesn't carry it
// (it is a property of the reconstructed paths, not the MILP model).
func Makespan(paths map[int]*domain.AgentPath) float64 {
	var max float64
	for _, path := range paths {
		if path == nil {
			continue
		}
		if t := path.ArrivalAt(); t > max {
			max = t
		}
	}
	return max
}

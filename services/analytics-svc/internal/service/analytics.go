// Package service implements analytics-svc: congestion and efficiency
// analysis over a solved MAPF instance — wait cost, bottleneck detection,
// path-optimality scoring, and scenario comparison.
package service

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	pkgerrors "mapfnet/pkg/apperror"
	"mapfnet/pkg/domain"
	"mapfnet/pkg/metrics"
	"mapfnet/pkg/telemetry"
	"mapfnet/services/analytics-svc/internal/analysis"
)

// GraphDTO mirrors solver-svc's wire-facing graph shape so the gateway can
// forward one solve request body to both solver-svc and analytics-svc.
type GraphDTO struct {
	VertexCount int       `json:"vertexCount"`
	Edges       []EdgeDTO `json:"edges"`
}

type EdgeDTO struct {
	From int `json:"from"`
	To   int `json:"to"`
}

func (g GraphDTO) toDomain() (*domain.Graph, error) {
	graph := domain.NewGraph(g.VertexCount)
	for _, e := range g.Edges {
		if err := graph.AddEdge(e.From, e.To); err != nil {
			return nil, pkgerrors.Wrap(err, pkgerrors.CodeInvalidArgument, "invalid edge in graph")
		}
	}
	return graph, nil
}

// AgentDTO mirrors solver-svc's agent shape.
type AgentDTO struct {
	Source    int     `json:"source"`
	Target    int     `json:"target"`
	Departure float64 `json:"departure"`
}

// PathDTO mirrors a solved agent path.
type PathDTO struct {
	Vertices []int   `json:"vertices"`
	Times    []float64 `json:"times"`
	Cost     float64 `json:"cost"`
}

func (p PathDTO) toDomain(agent int) *domain.AgentPath {
	ap := &domain.AgentPath{Agent: agent, Cost: p.Cost}
	for i, v := range p.Vertices {
		t := 0.0
		if i < len(p.Times) {
			t = p.Times[i]
		}
		ap.Vertices = append(ap.Vertices, domain.TimedVertex{Vertex: v, Time: t})
		if i > 0 {
			ap.Edges = append(ap.Edges, domain.TimedEdge{From: p.Vertices[i-1], To: v, Time: t})
		}
	}
	return ap
}

func pathsFromDTO(dtos map[int]PathDTO) map[int]*domain.AgentPath {
	paths := make(map[int]*domain.AgentPath, len(dtos))
	for agent, p := range dtos {
		paths[agent] = p.toDomain(agent)
	}
	return paths
}

// AnalyticsService computes congestion analytics over a solved instance.
type AnalyticsService struct {
	metrics *metrics.Metrics
}

// NewAnalyticsService constructs an AnalyticsService.
func NewAnalyticsService() *AnalyticsService {
	return &AnalyticsService{metrics: metrics.Get()}
}

// CalculateCostRequest prices one solved instance's visited vertices and
// traversed edges.
type CalculateCostRequest struct {
	Paths      map[int]PathDTO    `json:"paths"`
	VertexCost map[int]float64    `json:"vertexCost,omitempty"`
	EdgeCost   map[string]float64 `json:"edgeCost,omitempty"`
	Currency   string             `json:"currency,omitempty"`
	Discount   float64            `json:"discountPercent,omitempty"`
	Markup     float64            `json:"markupPercent,omitempty"`
}

// CalculateCost prices a solved instance's wait/congestion cost.
func (s *AnalyticsService) CalculateCost(ctx context.Context, req *CalculateCostRequest) (*analysis.CalculateCostResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "AnalyticsService.CalculateCost")
	defer span.End()

	if len(req.Paths) == 0 {
		return nil, pkgerrors.ErrEmptyGraph
	}

	paths := pathsFromDTO(req.Paths)
	result := analysis.CalculateCost(paths, req.VertexCost, req.EdgeCost, &analysis.CostOptions{
		Currency:        req.Currency,
		DiscountPercent: req.Discount,
		MarkupPercent:   req.Markup,
	})

	telemetry.AddEvent(ctx, "cost_calculated",
		attribute.Float64("total_cost", result.TotalCost),
		attribute.String("currency", result.Currency),
	)
	span.SetAttributes(attribute.Float64("total_cost", result.TotalCost))

	return result, nil
}

// FindBottlenecksRequest asks for the most congested vertices/edges of a
// solved instance.
type FindBottlenecksRequest struct {
	Paths                map[int]PathDTO `json:"paths"`
	UtilizationThreshold float64         `json:"utilizationThreshold,omitempty"`
	TopN                 int             `json:"topN,omitempty"`
}

// FindBottlenecks reports the most congested vertices/edges and suggests
// mitigations for the severe ones.
func (s *AnalyticsService) FindBottlenecks(ctx context.Context, req *FindBottlenecksRequest) (*analysis.FindBottlenecksResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "AnalyticsService.FindBottlenecks",
		trace.WithAttributes(
			attribute.Float64("threshold", req.UtilizationThreshold),
			attribute.Int("top_n", req.TopN),
		),
	)
	defer span.End()

	if len(req.Paths) == 0 {
		return nil, pkgerrors.ErrEmptyGraph
	}

	threshold := req.UtilizationThreshold
	if threshold <= 0 {
		threshold = 0.5
	}

	result := analysis.FindBottlenecks(pathsFromDTO(req.Paths), threshold, req.TopN)

	bottleneckCount := len(result.Bottlenecks)
	span.SetAttributes(attribute.Int("bottlenecks_found", bottleneckCount))
	telemetry.AddEvent(ctx, "bottlenecks_found",
		attribute.Int("count", bottleneckCount),
		attribute.Int("recommendations", len(result.Recommendations)),
	)

	if s.metrics != nil && bottleneckCount > 0 {
		severityCounts := make(map[string]int)
		for _, b := range result.Bottlenecks {
			severityCounts[string(b.Severity)]++
		}
		for severity, count := range severityCounts {
			s.metrics.RecordBottlenecks(severity, count)
		}
	}

	return result, nil
}

// AnalyzeFlowRequest asks for a full sweep (cost + bottlenecks +
// efficiency) over one solved instance.
type AnalyzeFlowRequest struct {
	Graph                GraphDTO           `json:"graph"`
	Agents               []AgentDTO         `json:"agents"`
	Paths                map[int]PathDTO    `json:"paths"`
	VertexCost           map[int]float64    `json:"vertexCost,omitempty"`
	EdgeCost             map[string]float64 `json:"edgeCost,omitempty"`
	UtilizationThreshold float64            `json:"utilizationThreshold,omitempty"`
}

// AnalyzeFlowResponse bundles every analysis dimension for one instance.
type AnalyzeFlowResponse struct {
	Cost        *analysis.CalculateCostResponse   `json:"cost"`
	Bottlenecks *analysis.FindBottlenecksResponse `json:"bottlenecks"`
	Efficiency  *analysis.EfficiencyReport         `json:"efficiency"`
	Stats       *analysis.GraphSummary             `json:"stats"`
}

// AnalyzeFlow runs cost, bottleneck, and efficiency analysis together.
func (s *AnalyticsService) AnalyzeFlow(ctx context.Context, req *AnalyzeFlowRequest) (*AnalyzeFlowResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "AnalyticsService.AnalyzeFlow")
	defer span.End()

	graph, err := req.Graph.toDomain()
	if err != nil {
		telemetry.SetError(ctx, err)
		return nil, err
	}
	if len(req.Paths) == 0 {
		return nil, pkgerrors.ErrEmptyGraph
	}

	agentList := make([]domain.Agent, len(req.Agents))
	for i, a := range req.Agents {
		agentList[i] = domain.Agent{Source: a.Source, Target: a.Target, Departure: a.Departure}
	}
	agents, err := domain.NewAgentSet(agentList)
	if err != nil {
		return nil, pkgerrors.Wrap(err, pkgerrors.CodeInvalidArgument, "invalid agent set")
	}

	paths := pathsFromDTO(req.Paths)

	threshold := req.UtilizationThreshold
	if threshold <= 0 {
		threshold = 0.5
	}

	resp := &AnalyzeFlowResponse{
		Cost:        analysis.CalculateCost(paths, req.VertexCost, req.EdgeCost, nil),
		Bottlenecks: analysis.FindBottlenecks(paths, threshold, 0),
		Efficiency:  analysis.AnalyzeEfficiency(graph, paths, agents, threshold),
		Stats:       analysis.CalculateGraphStatistics(graph, paths),
	}

	span.SetAttributes(
		attribute.Float64("total_cost", resp.Cost.TotalCost),
		attribute.String("efficiency_grade", resp.Efficiency.Grade),
	)

	return resp, nil
}

// ScenarioDTO is one alternative instance to compare against the baseline.
type ScenarioDTO struct {
	Name  string          `json:"name"`
	Paths map[int]PathDTO `json:"paths"`
}

// CompareScenariosRequest asks analytics-svc to rank a set of alternative
// solved instances against a baseline.
type CompareScenariosRequest struct {
	BaselinePaths map[int]PathDTO `json:"baselinePaths"`
	Scenarios     []ScenarioDTO   `json:"scenarios"`
	VertexCost    map[int]float64 `json:"vertexCost,omitempty"`
	EdgeCost      map[string]float64 `json:"edgeCost,omitempty"`
}

// ScenarioResult is one scenario's outcome relative to the baseline.
type ScenarioResult struct {
	Name                  string  `json:"name"`
	TotalCost             float64 `json:"totalCost"`
	AgentCount            int     `json:"agentCount"`
	ImprovementVsBaseline float64 `json:"improvementVsBaseline"`
}

// CompareScenariosResponse ranks every scenario against the baseline.
type CompareScenariosResponse struct {
	Results           []*ScenarioResult `json:"results"`
	BestScenario      string            `json:"bestScenario"`
	ComparisonSummary string            `json:"comparisonSummary"`
}

// CompareScenarios prices the baseline and every scenario, then reports
// which one improves on the baseline the most.
func (s *AnalyticsService) CompareScenarios(ctx context.Context, req *CompareScenariosRequest) (*CompareScenariosResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "AnalyticsService.CompareScenarios",
		trace.WithAttributes(attribute.Int("scenarios_count", len(req.Scenarios))),
	)
	defer span.End()

	if len(req.BaselinePaths) == 0 {
		return nil, pkgerrors.NewWithField(pkgerrors.CodeInvalidArgument, "baseline paths are required", "baselinePaths")
	}

	baselineCost := analysis.CalculateCost(pathsFromDTO(req.BaselinePaths), req.VertexCost, req.EdgeCost, nil)

	results := make([]*ScenarioResult, 0, len(req.Scenarios))
	for _, scenario := range req.Scenarios {
		cost := analysis.CalculateCost(pathsFromDTO(scenario.Paths), req.VertexCost, req.EdgeCost, nil)

		improvement := 0.0
		if baselineCost.TotalCost > 0 {
			improvement = ((baselineCost.TotalCost - cost.TotalCost) / baselineCost.TotalCost) * 100
		}

		results = append(results, &ScenarioResult{
			Name:                  scenario.Name,
			TotalCost:             cost.TotalCost,
			AgentCount:            len(scenario.Paths),
			ImprovementVsBaseline: improvement,
		})

		telemetry.AddEvent(ctx, "scenario_analyzed",
			attribute.String("name", scenario.Name),
			attribute.Float64("improvement", improvement),
		)
	}

	best := ""
	bestImprovement := 0.0
	for _, r := range results {
		if r.ImprovementVsBaseline > bestImprovement {
			bestImprovement = r.ImprovementVsBaseline
			best = r.Name
		}
	}

	span.SetAttributes(attribute.String("best_scenario", best))

	return &CompareScenariosResponse{
		Results:           results,
		BestScenario:      best,
		ComparisonSummary: comparisonSummary(best, bestImprovement, baselineCost.TotalCost),
	}, nil
}

func comparisonSummary(best string, improvement, baselineCost float64) string {
	if best == "" {
		return fmt.Sprintf("no scenario improved on the baseline cost of %.2f", baselineCost)
	}
	return fmt.Sprintf("%s improves on the baseline by %.1f%% (baseline cost %.2f)", best, improvement, baselineCost)
}

// HealthResponse reports liveness for the probe route.
type HealthResponse struct {
	Status string `json:"status"`
}

// Health reports liveness.
func (s *AnalyticsService) Health(ctx context.Context) *HealthResponse {
	return &HealthResponse{Status: "SERVING"}
}

// Package service implements validation-svc's orchestration: it composes
// the individual validators package checks into leveled graph
// validation, standalone solution-conflict validation, and solve-mode
// fit advice, independent of solver-svc's own inline mapf.Config.Validate.
package service

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"mapfnet/pkg/domain"
	"mapfnet/pkg/logger"
	"mapfnet/pkg/telemetry"
	"mapfnet/services/validation-svc/internal/validators"
)

var startTime = time.Now()

// Level controls how many check families ValidateGraph runs.
type Level string

const (
	LevelBasic    Level = "basic"
	LevelStandard Level = "standard"
	LevelStrict   Level = "strict"
	LevelFull     Level = "full"
)

// ValidateGraphRequest is ValidateGraph's input: the config to check,
// the leveled depth to run, and any individual check forced on
// regardless of level.
type ValidateGraphRequest struct {
	Config             *validators.ConfigRequest `json:"config"`
	Level              Level                     `json:"level,omitempty"`
	CheckConnectivity  bool                      `json:"check_connectivity,omitempty"`
	CheckBusinessRules bool                      `json:"check_business_rules,omitempty"`
	CheckTopology      bool                      `json:"check_topology,omitempty"`
}

// ValidateGraphResponse is ValidateGraph's output.
type ValidateGraphResponse struct {
	Result     *validators.ValidationResult   `json:"result"`
	Warnings   []string                       `json:"warnings"`
	Statistics *validators.GraphStatistics    `json:"statistics,omitempty"`
	Metrics    *validators.ValidationMetrics  `json:"metrics"`
}

// ValidateSolutionRequest is ValidateSolution's input: the config the
// solution claims to satisfy, and the proposed per-agent paths.
type ValidateSolutionRequest struct {
	Config *validators.ConfigRequest `json:"config"`
	Paths  map[int]*domain.AgentPath `json:"paths"`
}

// ValidateSolutionResponse is ValidateSolution's output.
type ValidateSolutionResponse struct {
	IsValid    bool                           `json:"is_valid"`
	Violations []*validators.ValidationError  `json:"violations"`
	Summary    *validators.SolutionSummary    `json:"summary"`
}

// ValidateForModeRequest is ValidateForMode's input: the shape a
// would-be solve has, ahead of actually building or dispatching it.
type ValidateForModeRequest struct {
	VertexCount  int    `json:"vertex_count"`
	EdgeCount    int    `json:"edge_count"`
	AgentCount   int    `json:"agent_count"`
	Mode         string `json:"mode"`
	TimeDuration int    `json:"time_duration,omitempty"`
}

// ValidateAllRequest runs ValidateGraph at the given level and, if Mode
// is set, ValidateForMode too.
type ValidateAllRequest struct {
	Config *validators.ConfigRequest `json:"config"`
	Level  Level                     `json:"level,omitempty"`
	Mode   string                    `json:"mode,omitempty"`
}

// ValidateAllResponse is ValidateAllRequest's combined output.
type ValidateAllResponse struct {
	IsValid         bool                              `json:"is_valid"`
	GraphValidation *ValidateGraphResponse             `json:"graph_validation"`
	ModeValidation  *validators.ModeValidationResult   `json:"mode_validation,omitempty"`
	Metrics         *validators.ValidationMetrics      `json:"metrics"`
}

// HealthResponse reports liveness and version, mirrored from
// solver-svc/audit-svc's own health shape.
type HealthResponse struct {
	Status        string `json:"status"`
	Version       string `json:"version"`
	UptimeSeconds int64  `json:"uptime_seconds"`
}

// ValidationService holds no mutable state beyond its version string —
// every check is a pure function of its request.
type ValidationService struct {
	version string
}

// NewValidationService builds a ValidationService.
func NewValidationService(version string) *ValidationService {
	return &ValidationService{version: version}
}

// ValidateGraph runs the structural check unconditionally, then layers
// connectivity/business-rule/topology checks on by level or explicit
// request flag, short-circuiting after a structural failure since every
// later check assumes a graph whose edges are all in range.
func (s *ValidationService) ValidateGraph(ctx context.Context, req *ValidateGraphRequest) (*ValidateGraphResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "ValidationService.ValidateGraph",
		trace.WithAttributes(attribute.String("level", string(req.Level))),
	)
	defer span.End()

	start := time.Now()
	cfg := req.Config

	response := &ValidateGraphResponse{Warnings: []string{}}

	var allErrors []*validators.ValidationError
	var total, passed, failed, warnings int

	structErrs := validators.ValidateStructure(cfg)
	allErrors = append(allErrors, structErrs...)
	total++
	if len(structErrs) > 0 {
		failed += len(structErrs)
		telemetry.AddEvent(ctx, "structure_validation_failed", attribute.Int("errors", len(structErrs)))
		response.Result = &validators.ValidationResult{IsValid: false, Errors: allErrors}
		response.Metrics = buildMetrics(total, passed, failed, warnings, start)
		return response, nil
	}
	passed++

	g := validators.BuildGraph(cfg.Graph)

	level := req.Level
	if level == "" {
		level = LevelStandard
	}

	if req.CheckConnectivity || levelAtLeast(level, LevelStandard) {
		connErrs := validators.ValidateConnectivity(g, cfg.Agents)
		allErrors = append(allErrors, connErrs...)
		total++
		if len(connErrs) > 0 {
			failed += len(connErrs)
		} else {
			passed++
		}
	}

	if req.CheckBusinessRules || levelAtLeast(level, LevelStrict) {
		bizErrs := validators.ValidateBusinessRules(cfg, g)
		allErrors = append(allErrors, bizErrs...)
		total++
		if len(bizErrs) > 0 {
			failed += len(bizErrs)
		} else {
			passed++
		}
	}

	if req.CheckTopology || levelAtLeast(level, LevelFull) {
		topo := validators.ValidateTopology(g)
		allErrors = append(allErrors, topo.Errors...)
		response.Warnings = append(response.Warnings, topo.Warnings...)
		total++
		failed += len(topo.Errors)
		warnings += len(topo.Warnings)
		if len(topo.Errors) == 0 {
			passed++
		}
	}

	response.Statistics = validators.CalculateGraphStatistics(g, len(cfg.Agents))
	isValid := len(allErrors) == 0
	response.Result = &validators.ValidationResult{IsValid: isValid, Errors: allErrors}
	response.Metrics = buildMetrics(total, passed, failed, warnings, start)

	telemetry.SetAttributes(ctx, telemetry.ValidationAttributes(string(level), len(allErrors), isValid)...)

	return response, nil
}

// ValidateSolution checks a proposed solution's conflict-freeness and
// endpoint consistency.
func (s *ValidationService) ValidateSolution(ctx context.Context, req *ValidateSolutionRequest) (*ValidateSolutionResponse, error) {
	_, span := telemetry.StartSpan(ctx, "ValidationService.ValidateSolution")
	defer span.End()

	violations := validators.ValidateSolution(req.Config.Agents, req.Paths, req.Config.SwapConstraint, 0)
	isValid := len(violations) == 0

	span.SetAttributes(attribute.Bool("valid", isValid), attribute.Int("violations", len(violations)))

	return &ValidateSolutionResponse{
		IsValid:    isValid,
		Violations: violations,
		Summary:    validators.CalculateSolutionSummary(req.Paths, isValid),
	}, nil
}

// ValidateForMode estimates a solve mode's variable count against a
// configuration's size and flags combinations likely to time out.
func (s *ValidationService) ValidateForMode(ctx context.Context, req *ValidateForModeRequest) (*validators.ModeValidationResult, error) {
	_, span := telemetry.StartSpan(ctx, "ValidationService.ValidateForMode",
		trace.WithAttributes(attribute.String("mode", req.Mode)),
	)
	defer span.End()

	result := validators.ValidateForMode(req.VertexCount, req.EdgeCount, req.AgentCount, req.Mode, req.TimeDuration)

	span.SetAttributes(attribute.Bool("compatible", result.IsCompatible), attribute.Int("issues", len(result.Issues)))

	return result, nil
}

// ValidateAll runs ValidateGraph and, when Mode is set, ValidateForMode,
// folding both verdicts into one response.
func (s *ValidationService) ValidateAll(ctx context.Context, req *ValidateAllRequest) (*ValidateAllResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "ValidationService.ValidateAll",
		trace.WithAttributes(attribute.String("level", string(req.Level))),
	)
	defer span.End()

	start := time.Now()

	graphResp, err := s.ValidateGraph(ctx, &ValidateGraphRequest{
		Config:             req.Config,
		Level:              req.Level,
		CheckConnectivity:  true,
		CheckBusinessRules: true,
		CheckTopology:      req.Level == LevelFull,
	})
	if err != nil {
		logger.Log.Warn("graph validation failed in ValidateAll", "error", err)
	}

	var modeResp *validators.ModeValidationResult
	if req.Mode != "" && graphResp != nil && graphResp.Statistics != nil {
		modeResp, err = s.ValidateForMode(ctx, &ValidateForModeRequest{
			VertexCount: graphResp.Statistics.VertexCount,
			EdgeCount:   graphResp.Statistics.EdgeCount,
			AgentCount:  graphResp.Statistics.AgentCount,
			Mode:        req.Mode,
		})
		if err != nil {
			logger.Log.Warn("mode validation failed in ValidateAll", "error", err)
		}
	}

	isValid := graphResp != nil && graphResp.Result.IsValid
	if modeResp != nil {
		isValid = isValid && modeResp.IsCompatible
	}

	span.SetAttributes(attribute.Bool("valid", isValid))

	return &ValidateAllResponse{
		IsValid:         isValid,
		GraphValidation: graphResp,
		ModeValidation:  modeResp,
		Metrics:         &validators.ValidationMetrics{DurationMs: float64(time.Since(start).Milliseconds())},
	}, nil
}

// Health reports liveness.
func (s *ValidationService) Health(ctx context.Context) *HealthResponse {
	_, span := telemetry.StartSpan(ctx, "ValidationService.Health")
	defer span.End()

	return &HealthResponse{
		Status:        "SERVING",
		Version:       s.version,
		UptimeSeconds: int64(time.Since(startTime).Seconds()),
	}
}

func levelAtLeast(level, floor Level) bool {
	rank := map[Level]int{LevelBasic: 0, LevelStandard: 1, LevelStrict: 2, LevelFull: 3}
	return rank[level] >= rank[floor]
}

func buildMetrics(total, passed, failed, warnings int, start time.Time) *validators.ValidationMetrics {
	return &validators.ValidationMetrics{
		TotalChecks:   total,
		PassedChecks:  passed,
		FailedChecks:  failed,
		WarningChecks: warnings,
		DurationMs:    float64(time.Since(start).Microseconds()) / 1000.0,
	}
}

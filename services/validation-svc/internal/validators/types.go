// Package validators holds the individual, independently callable checks
// validation-svc composes: structural, connectivity, business-rule,
// topology, solution-conflict, and solve-mode-fit validation over a MAPF
// configuration submitted as wire DTOs, ahead of solver-svc's own inline
// mapf.Config.Validate().
package validators

// GraphDTO is the wire shape of a graph submitted for validation — the
// same shape solver-svc accepts, so a caller can validate and solve from
// one payload without reshaping it twice.
type GraphDTO struct {
	VertexCount int       `json:"vertex_count"`
	Edges       []EdgeDTO `json:"edges"`
}

// EdgeDTO is one directed arc of a GraphDTO.
type EdgeDTO struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// AgentDTO is one agent of a ConfigRequest.
type AgentDTO struct {
	Source    int     `json:"source"`
	Target    int     `json:"target"`
	Departure float64 `json:"departure"`
}

// ConfigRequest is the payload validation-svc checks: a graph, its
// agents, and the cost/wait-time tensors a solve would use.
type ConfigRequest struct {
	Graph          GraphDTO           `json:"graph"`
	Agents         []AgentDTO         `json:"agents"`
	VertexCost     map[int]float64    `json:"vertex_cost,omitempty"`
	EdgeCost       map[string]float64 `json:"edge_cost,omitempty"`
	VertexWaitTime map[int]float64    `json:"vertex_wait_time,omitempty"`
	EdgeWaitTime   map[string]float64 `json:"edge_wait_time,omitempty"`
	Integer        bool               `json:"integer,omitempty"`
	SwapConstraint bool               `json:"swap_constraint,omitempty"`
	BigM           float64            `json:"big_m,omitempty"`
	TimeDuration   int                `json:"time_duration,omitempty"`
}

// ValidationError is one failed check, field-addressed so a caller can
// point a user at the offending part of the request.
type ValidationError struct {
	Field   string `json:"field,omitempty"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ValidationResult bundles the error list from one check family with its
// pass/fail verdict.
type ValidationResult struct {
	IsValid bool               `json:"is_valid"`
	Errors  []*ValidationError `json:"errors"`
}

// ValidationMetrics counts how many check families ran, passed, failed,
// or only raised a warning, plus wall-clock cost.
type ValidationMetrics struct {
	TotalChecks   int     `json:"total_checks"`
	PassedChecks  int     `json:"passed_checks"`
	FailedChecks  int     `json:"failed_checks"`
	WarningChecks int     `json:"warning_checks"`
	DurationMs    float64 `json:"duration_ms"`
}

// GraphStatistics summarizes a graph's shape independent of any solve.
type GraphStatistics struct {
	VertexCount int     `json:"vertex_count"`
	EdgeCount   int      `json:"edge_count"`
	AgentCount  int     `json:"agent_count"`
	Density     float64 `json:"density"`
	IsConnected bool    `json:"is_connected"`
}

// SolutionSummary summarizes a solved set of agent paths, used by
// ValidateSolution's caller to report what it checked.
type SolutionSummary struct {
	AgentsWithPaths int     `json:"agents_with_paths"`
	TotalCost       float64 `json:"total_cost"`
	Makespan        float64 `json:"makespan"`
	ConflictFree    bool    `json:"conflict_free"`
}

// TopologyResult separates topology errors (fatal) from warnings
// (informational, e.g. an isolated vertex no agent ever visits).
type TopologyResult struct {
	Errors   []*ValidationError `json:"errors"`
	Warnings []string           `json:"warnings"`
}

// ModeComplexity is the asymptotic-cost estimate ValidateForMode attaches
// to a solve-mode recommendation.
type ModeComplexity struct {
	TimeComplexity      string `json:"time_complexity"`
	SpaceComplexity     string `json:"space_complexity"`
	EstimatedVariables  int64  `json:"estimated_variables"`
	Recommendation      string `json:"recommendation"`
}

// ModeValidationResult is ValidateForMode's verdict on whether a solve
// mode fits a configuration's size and shape.
type ModeValidationResult struct {
	IsCompatible    bool            `json:"is_compatible"`
	Issues          []string        `json:"issues"`
	Recommendations []string        `json:"recommendations"`
	Complexity      *ModeComplexity `json:"complexity,omitempty"`
}

package service

import (
	"context"
	"testing"

	"mapfnet/pkg/domain"
	"mapfnet/services/validation-svc/internal/validators"
)

func TestNewValidationService(t *testing.T) {
	svc := NewValidationService("1.0.0")

	if svc == nil {
		t.Fatal("expected non-nil service")
	}

	if svc.version != "1.0.0" {
		t.Errorf("version = %s, want 1.0.0", svc.version)
	}
}

func TestValidationService_ValidateGraph(t *testing.T) {
	svc := NewValidationService("1.0.0")
	ctx := context.Background()

	tests := []struct {
		name      string
		request   *ValidateGraphRequest
		wantValid bool
	}{
		{
			name:      "valid_config",
			request:   &ValidateGraphRequest{Config: testConfig(), Level: LevelStandard},
			wantValid: true,
		},
		{
			name:      "empty_graph",
			request:   &ValidateGraphRequest{Config: &validators.ConfigRequest{}, Level: LevelBasic},
			wantValid: false,
		},
		{
			name: "duplicate_source",
			request: &ValidateGraphRequest{
				Config: &validators.ConfigRequest{
					Graph:  validators.GraphDTO{VertexCount: 3, Edges: []validators.EdgeDTO{{From: 1, To: 2}, {From: 2, To: 3}}},
					Agents: []validators.AgentDTO{{Source: 1, Target: 3}, {Source: 1, Target: 2}},
				},
				Level: LevelBasic,
			},
			wantValid: false,
		},
		{
			name: "full_level",
			request: &ValidateGraphRequest{
				Config:             testConfig(),
				Level:              LevelFull,
				CheckConnectivity:  true,
				CheckBusinessRules: true,
				CheckTopology:      true,
			},
			wantValid: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := svc.ValidateGraph(ctx, tt.request)

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if resp.Result.IsValid != tt.wantValid {
				t.Errorf("IsValid = %v, want %v, errors: %+v", resp.Result.IsValid, tt.wantValid, resp.Result.Errors)
			}

			if resp.Metrics == nil {
				t.Error("expected metrics to be set")
			}
		})
	}
}

func TestValidationService_ValidateSolution(t *testing.T) {
	svc := NewValidationService("1.0.0")
	ctx := context.Background()

	cfg := testConfig()
	paths := map[int]*domain.AgentPath{
		0: {
			Agent:    0,
			Vertices: []domain.TimedVertex{{Vertex: 1, Time: 0}, {Vertex: 2, Time: 1}, {Vertex: 3, Time: 2}},
			Edges:    []domain.TimedEdge{{From: 1, To: 2, Time: 0}, {From: 2, To: 3, Time: 1}},
		},
	}

	resp, err := svc.ValidateSolution(ctx, &ValidateSolutionRequest{Config: cfg, Paths: paths})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !resp.IsValid {
		t.Errorf("expected valid solution, violations: %+v", resp.Violations)
	}
	if resp.Summary == nil {
		t.Error("expected summary to be set")
	}
}

func TestValidationService_ValidateForMode(t *testing.T) {
	svc := NewValidationService("1.0.0")
	ctx := context.Background()

	result, err := svc.ValidateForMode(ctx, &ValidateForModeRequest{
		VertexCount: 3, EdgeCount: 2, AgentCount: 1, Mode: validators.ModeContinuous,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.IsCompatible {
		t.Errorf("expected a small continuous config to be compatible: %+v", result)
	}
}

func TestValidationService_ValidateAll(t *testing.T) {
	svc := NewValidationService("1.0.0")
	ctx := context.Background()

	tests := []struct {
		name      string
		request   *ValidateAllRequest
		wantValid bool
	}{
		{
			name:      "all_valid",
			request:   &ValidateAllRequest{Config: testConfig(), Level: LevelStandard, Mode: validators.ModeContinuous},
			wantValid: true,
		},
		{
			name:      "without_mode",
			request:   &ValidateAllRequest{Config: testConfig(), Level: LevelStandard},
			wantValid: true,
		},
		{
			name:      "invalid_config",
			request:   &ValidateAllRequest{Config: &validators.ConfigRequest{}, Level: LevelBasic},
			wantValid: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := svc.ValidateAll(ctx, tt.request)

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if resp.IsValid != tt.wantValid {
				t.Errorf("IsValid = %v, want %v", resp.IsValid, tt.wantValid)
			}

			if resp.GraphValidation == nil {
				t.Error("expected GraphValidation to be set")
			}

			if resp.Metrics == nil {
				t.Error("expected Metrics to be set")
			}
		})
	}
}

func TestValidationService_Health(t *testing.T) {
	svc := NewValidationService("1.0.0")
	ctx := context.Background()

	resp := svc.Health(ctx)

	if resp.Status != "SERVING" {
		t.Errorf("Status = %s, want SERVING", resp.Status)
	}

	if resp.Version != "1.0.0" {
		t.Errorf("Version = %s, want 1.0.0", resp.Version)
	}

	if resp.UptimeSeconds < 0 {
		t.Error("UptimeSeconds should be non-negative")
	}
}

func testConfig() *validators.ConfigRequest {
	return &validators.ConfigRequest{
		Graph: validators.GraphDTO{
			VertexCount: 3,
			Edges:       []validators.EdgeDTO{{From: 1, To: 2}, {From: 2, To: 3}},
		},
		Agents: []validators.AgentDTO{{Source: 1, Target: 3, Departure: 0}},
	}
}

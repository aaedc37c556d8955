package validators

import "testing"

func TestValidateTopology(t *testing.T) {
	tests := []struct {
		name         string
		graph        GraphDTO
		wantWarnings int
	}{
		{
			name:         "fully_touched_connected",
			graph:        GraphDTO{VertexCount: 3, Edges: []EdgeDTO{{From: 1, To: 2}, {From: 2, To: 3}}},
			wantWarnings: 0,
		},
		{
			name:         "isolated_vertex",
			graph:        GraphDTO{VertexCount: 4, Edges: []EdgeDTO{{From: 1, To: 2}, {From: 2, To: 4}}},
			wantWarnings: 1,
		},
		{
			name:         "two_components",
			graph:        GraphDTO{VertexCount: 4, Edges: []EdgeDTO{{From: 1, To: 2}, {From: 3, To: 4}}},
			wantWarnings: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := BuildGraph(tt.graph)
			result := ValidateTopology(g)
			if len(result.Warnings) != tt.wantWarnings {
				t.Errorf("got %d warnings, want %d: %v", len(result.Warnings), tt.wantWarnings, result.Warnings)
			}
		})
	}
}

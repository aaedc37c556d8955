package cache

import (
	"testing"

	"mapfnet/internal/mapf"
	"mapfnet/pkg/domain"
)

func oneAgentLineConfig(t *testing.T, edgeCost float64) *mapf.Config {
	t.Helper()
	g := domain.NewGraph(4)
	if err := g.AddEdge(1, 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := g.AddEdge(2, 4); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	agents, err := domain.NewAgentSet([]domain.Agent{{Source: 1, Target: 4, Departure: 0}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return &mapf.Config{
		Graph:  g,
		Agents: agents,
		VertexCost: domain.NewSharedVertexTensor(nil),
		EdgeCost: domain.NewSharedEdgeTensor(map[domain.EdgeKey]float64{
			{From: 1, To: 2}: edgeCost,
			{From: 2, To: 4}: edgeCost,
		}),
		VertexWaitTime: domain.NewSharedVertexTensor(nil),
		EdgeWaitTime:   domain.NewSharedEdgeTensor(nil),
	}
}

func TestConfigHash(t *testing.T) {
	t.Run("nil config", func(t *testing.T) {
		if hash := ConfigHash(nil); hash != "" {
			t.Errorf("ConfigHash(nil) = %v, want empty string", hash)
		}
	})

	t.Run("same config produces same hash", func(t *testing.T) {
		cfg := oneAgentLineConfig(t, 1)

		hash1 := ConfigHash(cfg)
		hash2 := ConfigHash(cfg)

		if hash1 != hash2 {
			t.Errorf("same config should produce same hash: %v != %v", hash1, hash2)
		}
	})

	t.Run("different edge costs produce different hashes", func(t *testing.T) {
		cfg1 := oneAgentLineConfig(t, 1)
		cfg2 := oneAgentLineConfig(t, 2)

		if ConfigHash(cfg1) == ConfigHash(cfg2) {
			t.Error("different edge costs should produce different hashes")
		}
	})

	t.Run("missing graph produces empty hash", func(t *testing.T) {
		if hash := ConfigHash(&mapf.Config{}); hash != "" {
			t.Errorf("ConfigHash with nil graph = %v, want empty string", hash)
		}
	})
}

func TestBuildSolveKey(t *testing.T) {
	key := BuildSolveKey("abc123", "continuous")
	expected := "solve:continuous:abc123"
	if key != expected {
		t.Errorf("BuildSolveKey() = %v, want %v", key, expected)
	}
}

func TestBuildSolveKeyWithOptions(t *testing.T) {
	tests := []struct {
		name        string
		configHash  string
		mode        string
		optionsHash string
		expected    string
	}{
		{
			name:        "without options",
			configHash:  "abc123",
			mode:        "continuous",
			optionsHash: "",
			expected:    "solve:continuous:abc123",
		},
		{
			name:        "with options",
			configHash:  "abc123",
			mode:        "discrete",
			optionsHash: "opt456",
			expected:    "solve:discrete:abc123:opt456",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key := BuildSolveKeyWithOptions(tt.configHash, tt.mode, tt.optionsHash)
			if key != tt.expected {
				t.Errorf("BuildSolveKeyWithOptions() = %v, want %v", key, tt.expected)
			}
		})
	}
}

func TestQuickHash(t *testing.T) {
	data := []byte("test data")
	hash := QuickHash(data)

	if len(hash) != 64 { // SHA256 hex = 64 chars
		t.Errorf("QuickHash length = %d, want 64", len(hash))
	}

	hash2 := QuickHash(data)
	if hash != hash2 {
		t.Error("same data should produce same hash")
	}
}

func TestShortHash(t *testing.T) {
	data := []byte("test data")
	hash := ShortHash(data)

	if len(hash) != 16 {
		t.Errorf("ShortHash length = %d, want 16", len(hash))
	}
}

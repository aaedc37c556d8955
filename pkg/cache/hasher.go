package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"

	"mapfnet/internal/mapf"
)

// ConfigHash computes a cache key for a MAPF configuration: the graph
// topology, the agent set, and every cost/wait-time tensor the builders
// would otherwise read. Two configs that would build the same MILP
// model hash identically, regardless of map iteration order.
func ConfigHash(cfg *mapf.Config) string {
	if cfg == nil || cfg.Graph == nil {
		return ""
	}

	data := configToCanonical(cfg)
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:16])
}

// configToCanonical builds a deterministic byte representation of a
// configuration's topology, agents and tensors.
func configToCanonical(cfg *mapf.Config) []byte {
	g := cfg.Graph
	var result []byte

	// Tensors may be per-agent, so every agent's row is hashed.
	rows := 1
	if cfg.Agents != nil && cfg.Agents.Len() > 1 {
		rows = cfg.Agents.Len()
	}

	result = append(result, []byte(fmt.Sprintf("v:%d;", g.VertexCount()))...)

	edges := g.Edges()
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].From != edges[j].From {
			return edges[i].From < edges[j].From
		}
		return edges[i].To < edges[j].To
	})
	for _, e := range edges {
		for a := 0; a < rows; a++ {
			result = append(result, []byte(fmt.Sprintf("e:%d:%d:%.6f:%.6f;",
				e.From, e.To, cfg.EdgeCost.Get(a, e.From, e.To), cfg.EdgeWaitTime.Get(a, e.From, e.To)))...)
		}
	}

	if cfg.Agents != nil {
		for a := 0; a < cfg.Agents.Len(); a++ {
			agent := cfg.Agents.Get(a)
			result = append(result, []byte(fmt.Sprintf("a:%d:%d:%d:%.6f;",
				a, agent.Source, agent.Target, agent.Departure))...)
		}
	}

	result = append(result, []byte(fmt.Sprintf("cfg:int=%t,swap=%t,horizon=%d,vb=%d,vv=%d;",
		cfg.Integer, cfg.SwapConstraint, cfg.TimeDuration, cfg.VertexBinding, cfg.VertexVisit))...)

	for v := 1; v <= g.VertexCount(); v++ {
		for a := 0; a < rows; a++ {
			result = append(result, []byte(fmt.Sprintf("vc:%d:%.6f:%.6f;",
				v, cfg.VertexCost.Get(a, v), cfg.VertexWaitTime.Get(a, v)))...)
		}
	}

	return result
}

// BuildSolveKey builds the cache key for one solve mode against a
// config hash — "continuous", "discrete" and "dynamic" never collide.
func BuildSolveKey(configHash, mode string) string {
	return fmt.Sprintf("solve:%s:%s", mode, configHash)
}

// BuildSolveKeyWithOptions builds a solve key further qualified by a
// solver-options hash (e.g. a distinct branch-and-bound tuning).
func BuildSolveKeyWithOptions(configHash, mode, optionsHash string) string {
	if optionsHash == "" {
		return BuildSolveKey(configHash, mode)
	}
	return fmt.Sprintf("solve:%s:%s:%s", mode, configHash, optionsHash)
}

// QuickHash hashes arbitrary data to a full hex SHA-256 digest.
func QuickHash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// ShortHash hashes arbitrary data to a 16-character digest.
func ShortHash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:8])
}

package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"mapfnet/internal/mapf"
	"mapfnet/pkg/domain"
)

// SolverCache caches MILP solve results keyed by configuration and
// solve mode, so an unchanged configuration never re-enters the
// constraint builders.
type SolverCache struct {
	cache      Cache
	defaultTTL time.Duration
}

// CachedSolveResult is the cacheable projection of a PathResult: the
// per-agent paths, the objective value, and the solve statistics.
type CachedSolveResult struct {
	Objective  float64                     `json:"objective"`
	Stats      domain.SolveStatistics      `json:"stats"`
	Paths      map[int]*domain.AgentPath   `json:"paths"`
	ComputedAt time.Time                   `json:"computed_at"`
}

// NewSolverCache creates a cache for solver results.
func NewSolverCache(cache Cache, defaultTTL time.Duration) *SolverCache {
	if defaultTTL <= 0 {
		defaultTTL = 10 * time.Minute
	}
	return &SolverCache{
		cache:      cache,
		defaultTTL: defaultTTL,
	}
}

// Get fetches a cached solve result for cfg under the given solve mode
// ("continuous", "discrete" or "dynamic").
func (sc *SolverCache) Get(ctx context.Context, cfg *mapf.Config, mode string) (*CachedSolveResult, bool, error) {
	key := BuildSolveKey(ConfigHash(cfg), mode)

	data, err := sc.cache.Get(ctx, key)
	if err != nil {
		if err == ErrKeyNotFound {
			return nil, false, nil
		}
		return nil, false, err
	}

	var result CachedSolveResult
	if err := json.Unmarshal(data, &result); err != nil {
		// Corrupted entry — evict it, best effort, and treat as a miss.
		_ = sc.cache.Delete(ctx, key) //nolint:errcheck
		return nil, false, nil
	}

	return &result, true, nil
}

// Set stores a solve result for cfg under the given solve mode.
func (sc *SolverCache) Set(ctx context.Context, cfg *mapf.Config, mode string, result *CachedSolveResult, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = sc.defaultTTL
	}

	key := BuildSolveKey(ConfigHash(cfg), mode)
	result.ComputedAt = time.Now()

	data, err := json.Marshal(result)
	if err != nil {
		return err
	}

	return sc.cache.Set(ctx, key, data, ttl)
}

// SetFromPathResult stores a result produced directly by the solver
// API (internal/mapf/api.Result or internal/mapf.PathResult shaped
// data), sparing callers the CachedSolveResult conversion.
func (sc *SolverCache) SetFromPathResult(ctx context.Context, cfg *mapf.Config, mode string, objective float64, stats domain.SolveStatistics, paths map[int]*domain.AgentPath, ttl time.Duration) error {
	result := &CachedSolveResult{
		Objective: objective,
		Stats:     stats,
		Paths:     paths,
	}
	return sc.Set(ctx, cfg, mode, result, ttl)
}

// Invalidate removes every cached solve mode for cfg.
func (sc *SolverCache) Invalidate(ctx context.Context, cfg *mapf.Config) error {
	pattern := fmt.Sprintf("solve:*:%s", ConfigHash(cfg))
	_, err := sc.cache.DeleteByPattern(ctx, pattern)
	return err
}

// InvalidateAll removes every cached solve result.
func (sc *SolverCache) InvalidateAll(ctx context.Context) (int64, error) {
	return sc.cache.DeleteByPattern(ctx, "solve:*")
}

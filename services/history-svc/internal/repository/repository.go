// Package repository persists solved MAPF calculations so history-svc
// can list, search, and summarize a user's past solves, backed by the
// same audit_logs-adjacent Postgres database as audit-svc.
package repository

import (
	"context"
	"errors"
	"time"
)

var (
	ErrCalculationNotFound = errors.New("calculation not found")
	ErrAccessDenied        = errors.New("access denied")
)

// Calculation is one persisted solve: the request shape, its result,
// and the metadata history-svc's queries are indexed on.
type Calculation struct {
	ID                string
	UserID            string
	Name              string
	Mode              string
	Objective         float64
	Makespan          float64
	ComputationTimeMs float64
	VertexCount       int
	EdgeCount         int
	AgentCount        int
	RequestData       []byte // JSON
	ResponseData      []byte // JSON
	Tags              []string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// CalculationSummary is a Calculation's listing-friendly projection.
type CalculationSummary struct {
	ID                string
	Name              string
	Mode              string
	Objective         float64
	Makespan          float64
	ComputationTimeMs float64
	VertexCount       int
	EdgeCount         int
	AgentCount        int
	Tags              []string
	CreatedAt         time.Time
}

// ListFilter narrows List to a subset of a user's calculations.
type ListFilter struct {
	Mode         string
	Tags         []string
	MinObjective *float64
	MaxObjective *float64
	StartTime    *time.Time
	EndTime      *time.Time
}

// SortOrder controls List's result ordering.
type SortOrder string

const (
	SortByCreatedDesc   SortOrder = "created_desc"
	SortByCreatedAsc    SortOrder = "created_asc"
	SortByObjectiveDesc SortOrder = "objective_desc"
	SortByMakespanDesc  SortOrder = "makespan_desc"
)

// ListOptions paginates and sorts a List call.
type ListOptions struct {
	Limit  int
	Offset int
	Filter *ListFilter
	Sort   SortOrder
}

// UserStatistics rolls up one user's solve history.
type UserStatistics struct {
	TotalCalculations        int
	AverageObjective         float64
	AverageMakespan          float64
	AverageComputationTimeMs float64
	CalculationsByMode       map[string]int
	DailyStats               []DailyStats
}

// DailyStats is one day's bucket of UserStatistics.DailyStats.
type DailyStats struct {
	Date           string // "2024-01-15"
	Count          int
	TotalObjective float64
}

// CalculationRepository persists and queries solved calculations.
type CalculationRepository interface {
	Create(ctx context.Context, calc *Calculation) error
	GetByID(ctx context.Context, id string) (*Calculation, error)
	Delete(ctx context.Context, id string) error

	List(ctx context.Context, userID string, opts *ListOptions) ([]*CalculationSummary, int64, error)

	GetUserStatistics(ctx context.Context, userID string, startTime, endTime *time.Time) (*UserStatistics, error)

	Search(ctx context.Context, userID string, query string, limit int) ([]*CalculationSummary, error)
}

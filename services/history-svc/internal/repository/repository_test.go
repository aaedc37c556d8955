// services/history-svc/internal/repository/repository_test.go

package repository

import (
	"testing"
	"time"
)

func TestCalculation_Fields(t *testing.T) {
	now := time.Now()
	calc := &Calculation{
		ID:                "calc-123",
		UserID:            "user-456",
		Name:              "Test Calculation",
		Mode:              "prioritized",
		Objective:         100.5,
		Makespan:          12,
		ComputationTimeMs: 150.5,
		VertexCount:       10,
		EdgeCount:         20,
		AgentCount:        3,
		RequestData:       []byte(`{"test": "request"}`),
		ResponseData:      []byte(`{"test": "response"}`),
		Tags:              []string{"tag1", "tag2"},
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if calc.ID != "calc-123" {
		t.Errorf("ID = %v, want calc-123", calc.ID)
	}
	if calc.Objective != 100.5 {
		t.Errorf("Objective = %v, want 100.5", calc.Objective)
	}
	if len(calc.Tags) != 2 {
		t.Errorf("Tags length = %d, want 2", len(calc.Tags))
	}
}

func TestCalculationSummary_Fields(t *testing.T) {
	summary := &CalculationSummary{
		ID:                "calc-123",
		Name:              "Summary Test",
		Mode:              "cbs",
		Objective:         200.0,
		Makespan:          18,
		ComputationTimeMs: 250.0,
		VertexCount:       50,
		EdgeCount:         100,
		AgentCount:        6,
		Tags:              []string{"production"},
		CreatedAt:         time.Now(),
	}

	if summary.VertexCount != 50 {
		t.Errorf("VertexCount = %d, want 50", summary.VertexCount)
	}
	if summary.EdgeCount != 100 {
		t.Errorf("EdgeCount = %d, want 100", summary.EdgeCount)
	}
}

func TestListFilter_Fields(t *testing.T) {
	minObjective := 10.0
	maxObjective := 100.0
	startTime := time.Now().Add(-24 * time.Hour)
	endTime := time.Now()

	filter := &ListFilter{
		Mode:         "prioritized",
		Tags:         []string{"tag1", "tag2"},
		MinObjective: &minObjective,
		MaxObjective: &maxObjective,
		StartTime:    &startTime,
		EndTime:      &endTime,
	}

	if filter.Mode != "prioritized" {
		t.Errorf("Mode = %v, want prioritized", filter.Mode)
	}
	if *filter.MinObjective != 10.0 {
		t.Errorf("MinObjective = %v, want 10.0", *filter.MinObjective)
	}
	if len(filter.Tags) != 2 {
		t.Errorf("Tags length = %d, want 2", len(filter.Tags))
	}
}

func TestSortOrder_Values(t *testing.T) {
	tests := []struct {
		order    SortOrder
		expected string
	}{
		{SortByCreatedDesc, "created_desc"},
		{SortByCreatedAsc, "created_asc"},
		{SortByObjectiveDesc, "objective_desc"},
		{SortByMakespanDesc, "makespan_desc"},
	}

	for _, tt := range tests {
		if string(tt.order) != tt.expected {
			t.Errorf("SortOrder = %v, want %v", tt.order, tt.expected)
		}
	}
}

func TestListOptions_Defaults(t *testing.T) {
	opts := &ListOptions{}

	if opts.Limit != 0 {
		t.Errorf("Default Limit = %d, want 0", opts.Limit)
	}
	if opts.Offset != 0 {
		t.Errorf("Default Offset = %d, want 0", opts.Offset)
	}
	if opts.Sort != "" {
		t.Errorf("Default Sort = %v, want empty", opts.Sort)
	}
}

func TestUserStatistics_Fields(t *testing.T) {
	stats := &UserStatistics{
		TotalCalculations:        100,
		AverageObjective:         150.5,
		AverageMakespan:          14.25,
		AverageComputationTimeMs: 200.0,
		CalculationsByMode:       map[string]int{"prioritized": 60, "cbs": 40},
		DailyStats: []DailyStats{
			{Date: "2024-01-15", Count: 10, TotalObjective: 1500.0},
			{Date: "2024-01-14", Count: 8, TotalObjective: 1200.0},
		},
	}

	if stats.TotalCalculations != 100 {
		t.Errorf("TotalCalculations = %d, want 100", stats.TotalCalculations)
	}
	if stats.CalculationsByMode["prioritized"] != 60 {
		t.Errorf("prioritized count = %d, want 60", stats.CalculationsByMode["prioritized"])
	}
	if len(stats.DailyStats) != 2 {
		t.Errorf("DailyStats length = %d, want 2", len(stats.DailyStats))
	}
}

func TestDailyStats_Fields(t *testing.T) {
	ds := DailyStats{
		Date:           "2024-01-15",
		Count:          25,
		TotalObjective: 5000.0,
	}

	if ds.Date != "2024-01-15" {
		t.Errorf("Date = %v, want 2024-01-15", ds.Date)
	}
	if ds.Count != 25 {
		t.Errorf("Count = %d, want 25", ds.Count)
	}
	if ds.TotalObjective != 5000.0 {
		t.Errorf("TotalObjective = %v, want 5000.0", ds.TotalObjective)
	}
}

func TestErrors(t *testing.T) {
	if ErrCalculationNotFound.Error() != "calculation not found" {
		t.Errorf("ErrCalculationNotFound = %v, want 'calculation not found'", ErrCalculationNotFound)
	}
	if ErrAccessDenied.Error() != "access denied" {
		t.Errorf("ErrAccessDenied = %v, want 'access denied'", ErrAccessDenied)
	}
}

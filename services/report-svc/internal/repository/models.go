// services/report-svc/internal/repository/models.go
package repository

import (
	"time"

	"github.com/google/uuid"

	"mapfnet/services/report-svc/internal/generator"
)

// Report is a generated report persisted in the repository.
type Report struct {
	ID          uuid.UUID
	Title       string
	Description string
	Author      string

	ReportType generator.ReportType
	Format     generator.ReportFormat

	Content     []byte
	ContentType string
	Filename    string
	SizeBytes   int64

	CalculationID string
	GraphID       string
	UserID        string

	GenerationTimeMs float64
	Version          string

	Tags         []string
	CustomFields map[string]string

	CreatedAt time.Time
	ExpiresAt *time.Time
	DeletedAt *time.Time
}

// Metadata is the report's wire-facing descriptor, without its content bytes.
type Metadata struct {
	ReportID         string               `json:"reportId"`
	Title            string               `json:"title"`
	Description      string               `json:"description,omitempty"`
	Type             generator.ReportType `json:"type"`
	Format           generator.ReportFormat `json:"format"`
	GeneratedAt      time.Time            `json:"generatedAt"`
	GeneratedBy      string               `json:"generatedBy,omitempty"`
	Version          string               `json:"version,omitempty"`
	SizeBytes        int64                `json:"sizeBytes"`
	GenerationTimeMs float64              `json:"generationTimeMs"`
	CustomFields     map[string]string    `json:"customFields,omitempty"`
	CalculationID    string               `json:"calculationId,omitempty"`
	GraphID          string               `json:"graphId,omitempty"`
	Tags             []string             `json:"tags,omitempty"`
	ExpiresAt        *time.Time           `json:"expiresAt,omitempty"`
}

// ToMetadata projects a Report onto its wire-facing Metadata.
func (r *Report) ToMetadata() *Metadata {
	return &Metadata{
		ReportID:         r.ID.String(),
		Title:            r.Title,
		Description:      r.Description,
		Type:             r.ReportType,
		Format:           r.Format,
		GeneratedAt:      r.CreatedAt,
		GeneratedBy:      r.Author,
		Version:          r.Version,
		SizeBytes:        r.SizeBytes,
		GenerationTimeMs: r.GenerationTimeMs,
		CustomFields:     r.CustomFields,
		CalculationID:    r.CalculationID,
		GraphID:          r.GraphID,
		Tags:             r.Tags,
		ExpiresAt:        r.ExpiresAt,
	}
}

// Content is a report's raw payload, keyed for a file download response.
type Content struct {
	Data        []byte `json:"-"`
	ContentType string `json:"contentType"`
	Filename    string `json:"filename"`
	SizeBytes   int64  `json:"sizeBytes"`
}

// ToContent projects a Report onto its downloadable Content.
func (r *Report) ToContent() *Content {
	return &Content{
		Data:        r.Content,
		ContentType: r.ContentType,
		Filename:    r.Filename,
		SizeBytes:   r.SizeBytes,
	}
}

// CreateParams are the fields needed to persist a newly generated report.
type CreateParams struct {
	Title       string
	Description string
	Author      string

	ReportType generator.ReportType
	Format     generator.ReportFormat

	Content     []byte
	ContentType string
	Filename    string

	CalculationID string
	GraphID       string
	UserID        string

	GenerationTimeMs float64
	Version          string

	Tags         []string
	CustomFields map[string]string

	// TTL is the report's time-to-live; zero means it never expires.
	TTL time.Duration
}

// ListParams filters and paginates a List call.
type ListParams struct {
	Limit  int32
	Offset int32

	ReportType    *generator.ReportType
	Format        *generator.ReportFormat
	CalculationID string
	GraphID       string
	UserID        string
	Tags          []string

	CreatedAfter  *time.Time
	CreatedBefore *time.Time

	OrderBy   string // created_at, size_bytes, title
	OrderDesc bool
}

// ListResult is a page of reports plus the total matching count.
type ListResult struct {
	Reports    []*Report
	TotalCount int64
	HasMore    bool
}

// Stats summarizes the repository's contents.
type Stats struct {
	TotalReports   int64
	TotalSizeBytes int64
	AvgSizeBytes   float64

	ReportsByType   map[string]int64
	ReportsByFormat map[string]int64
	SizeByType      map[string]int64

	OldestReportAt *time.Time
	NewestReportAt *time.Time
	ExpiredReports int64
}

// StatsResponse is Stats' wire-facing shape.
type StatsResponse struct {
	TotalReports    int64            `json:"totalReports"`
	TotalSizeBytes  int64            `json:"totalSizeBytes"`
	AvgSizeBytes    float64          `json:"avgSizeBytes"`
	ReportsByType   map[string]int64 `json:"reportsByType,omitempty"`
	ReportsByFormat map[string]int64 `json:"reportsByFormat,omitempty"`
	SizeByType      map[string]int64 `json:"sizeByType,omitempty"`
	OldestReportAt  *time.Time       `json:"oldestReportAt,omitempty"`
	NewestReportAt  *time.Time       `json:"newestReportAt,omitempty"`
	ExpiredReports  int64            `json:"expiredReports"`
}

// ToResponse converts Stats to its wire shape.
func (s *Stats) ToResponse() *StatsResponse {
	return &StatsResponse{
		TotalReports:    s.TotalReports,
		TotalSizeBytes:  s.TotalSizeBytes,
		AvgSizeBytes:    s.AvgSizeBytes,
		ReportsByType:   s.ReportsByType,
		ReportsByFormat: s.ReportsByFormat,
		SizeByType:      s.SizeByType,
		OldestReportAt:  s.OldestReportAt,
		NewestReportAt:  s.NewestReportAt,
		ExpiredReports:  s.ExpiredReports,
	}
}

// services/report-svc/internal/repository/storage.go
package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrNotFound      = errors.New("report not found")
	ErrAlreadyExists = errors.New("report already exists")
	ErrInvalidID     = errors.New("invalid report ID")
	ErrStorageFull   = errors.New("storage quota exceeded")
)

// Repository persists generated reports.
type Repository interface {
	// Create saves a newly generated report.
	Create(ctx context.Context, params *CreateParams) (*Report, error)

	// Get returns a report by ID, including its content.
	Get(ctx context.Context, id uuid.UUID) (*Report, error)

	// GetContent returns just a report's content bytes.
	GetContent(ctx context.Context, id uuid.UUID) ([]byte, error)

	// List returns a filtered, paginated page of reports.
	List(ctx context.Context, params *ListParams) (*ListResult, error)

	// Delete soft-deletes a report.
	Delete(ctx context.Context, id uuid.UUID) error

	// HardDelete permanently removes a report.
	HardDelete(ctx context.Context, id uuid.UUID) error

	// DeleteExpired removes reports past their TTL.
	DeleteExpired(ctx context.Context) (int64, error)

	// UpdateTags updates a report's tags, appending or replacing.
	UpdateTags(ctx context.Context, id uuid.UUID, tags []string, replace bool) ([]string, error)

	// Stats returns repository-wide statistics.
	Stats(ctx context.Context, userID string) (*Stats, error)

	// Close releases the repository's connections.
	Close() error

	// Ping verifies connectivity.
	Ping(ctx context.Context) error
}

package artifact

import (
	"context"

	"modelhub-backend/internal/domains/artifact/model"
)

// Repository is the catalog contract for artifact versions.
type Repository interface {
	// Create inserts a record. Duplicate version labels are allowed -
	// history is append-only.
	Create(ctx context.Context, a *model.ArtifactVersion) error

	// List returns all records ordered by created_at descending. Every call
	// re-queries; there is no cursor to reuse.
	List(ctx context.Context) ([]model.ArtifactVersion, error)

	// FindByVersion returns a record for the label, or ErrVersionNotFound.
	// When duplicates exist it returns the most recent one.
	FindByVersion(ctx context.Context, version string) (*model.ArtifactVersion, error)
}

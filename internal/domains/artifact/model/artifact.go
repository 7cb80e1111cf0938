package model

import (
	"time"

	"github.com/google/uuid"
)

// ArtifactVersion is one registration event: a stored model file plus its
// catalog metadata. Records are append-only - re-uploading an existing
// version label creates a second record pointing at the new bytes, never an
// overwrite of catalog history.
type ArtifactVersion struct {
	ID          uuid.UUID `db:"id"`
	Version     string    `db:"version"`
	Filename    string    `db:"filename"`
	Description *string   `db:"description"`
	StoragePath string    `db:"storage_path"`
	MirrorPath  *string   `db:"mirror_path"` // nil when mirroring failed or was skipped
	CreatedAt   time.Time `db:"created_at"`
}

// ArtifactVersionDTO is the wire shape: identifiers as strings, timestamps
// as ISO-8601.
type ArtifactVersionDTO struct {
	ID          string  `json:"id"`
	Version     string  `json:"version"`
	Filename    string  `json:"filename"`
	Description *string `json:"description"`
	StoragePath string  `json:"file_path"`
	MirrorPath  *string `json:"mirror_path,omitempty"`
	CreatedAt   string  `json:"created_at"`
}

func (a *ArtifactVersion) ToDTO() ArtifactVersionDTO {
	return ArtifactVersionDTO{
		ID:          a.ID.String(),
		Version:     a.Version,
		Filename:    a.Filename,
		Description: a.Description,
		StoragePath: a.StoragePath,
		MirrorPath:  a.MirrorPath,
		CreatedAt:   a.CreatedAt.Format(time.RFC3339),
	}
}

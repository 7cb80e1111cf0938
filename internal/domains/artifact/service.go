package artifact

import (
	"context"
	"io"

	"modelhub-backend/internal/domains/artifact/model"
)

// UploadRequest carries one inbound model upload.
type UploadRequest struct {
	Version     string // optional; server derives a timestamp label when empty
	Description string
	Filename    string
	Body        io.Reader
}

// UploadResponse is the body of POST /models/upload.
type UploadResponse struct {
	Message  string `json:"message"`
	Version  string `json:"version"`
	Filename string `json:"filename"`
}

// Service orchestrates registration and retrieval of artifact versions.
type Service interface {
	// RegisterUpload runs the strictly ordered registration flow:
	// save bytes -> best-effort mirror -> catalog insert. There is no
	// rollback on later-step failure.
	RegisterUpload(ctx context.Context, req UploadRequest) (*model.ArtifactVersion, error)

	ListVersions(ctx context.Context) ([]model.ArtifactVersionDTO, error)

	// GetVersion returns ErrVersionNotFound for unknown labels.
	GetVersion(ctx context.Context, version string) (*model.ArtifactVersionDTO, error)
}

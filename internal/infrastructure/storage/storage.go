package storage

import (
	"context"
	"io"
)

// ArtifactStore persists uploaded model bytes under a version-scoped key and
// returns a stable locator. The locator is opaque to callers; only the store
// that produced it can interpret it.
type ArtifactStore interface {
	Save(ctx context.Context, version, filename string, r io.Reader) (string, error)
}

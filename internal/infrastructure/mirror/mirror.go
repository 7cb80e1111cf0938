package mirror

import "context"

// Adapter mirrors a stored artifact into an external content-versioning
// tool. Mirroring is strictly best-effort: callers log and swallow errors,
// and a failure never rolls back the prior save.
type Adapter interface {
	// Mirror tracks and snapshots the file at storagePath, returning the
	// locator inside the versioning tool.
	Mirror(ctx context.Context, storagePath string) (string, error)
}

// Noop skips mirroring entirely. Registration behaves identically except
// that the mirror locator is never populated.
type Noop struct{}

func (Noop) Mirror(ctx context.Context, storagePath string) (string, error) {
	return "", nil
}

package artifact

import "errors"

var (
	// ErrVersionNotFound - no catalog record for the requested label.
	ErrVersionNotFound = errors.New("version not found")

	// ErrStorageWrite - the artifact bytes could not be persisted. No
	// catalog record is written after this failure.
	ErrStorageWrite = errors.New("failed to store artifact file")

	// ErrCatalogWrite - the metadata insert failed after the file was
	// already written. The file stays on disk as an accepted orphan; there
	// is no compensating cleanup.
	ErrCatalogWrite = errors.New("failed to record artifact metadata")
)

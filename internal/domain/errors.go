package domain

import "errors"

// Sentinel errors returned by repositories. Usecases translate them into
// apperror values with the right HTTP code; the delivery layer never sees
// driver errors.
var (
	// ErrNotFound means the requested row does not exist.
	ErrNotFound = errors.New("resource not found")

	// ErrDuplicate means a unique constraint rejected the write.
	ErrDuplicate = errors.New("resource already exists")

	// ErrVersionConflict means a compare-and-swap write missed because the
	// row changed since it was read.
	ErrVersionConflict = errors.New("resource was modified concurrently")
)

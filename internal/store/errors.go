package store

import (
	"errors"
	"fmt"
)

// StorageError indicates the underlying persistence is unavailable or
// rejected an operation. It is surfaced to the caller as-is; retry and
// fallback policy belong to the caller, never this layer.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// IsStorageError reports whether err is (or wraps) a StorageError.
func IsStorageError(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}

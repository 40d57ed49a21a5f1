// internal/repository/errors.go
package repository

import "errors"

var (
	ErrNotFound        = errors.New("NOT_FOUND")
	ErrStatusConflict  = errors.New("STATUS_CONFLICT")
	ErrLockNotAcquired = errors.New("LOCK_NOT_ACQUIRED")
)

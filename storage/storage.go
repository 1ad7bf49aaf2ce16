// Package storage provides abstractions for persisting descsync data.
package storage

import (
	"context"
	"errors"
	"fmt"
)

// Sentinel errors for common storage conditions.
var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("storage: not found")
	// ErrInvalidInput indicates invalid or malformed input was provided.
	ErrInvalidInput = errors.New("storage: invalid input")
	// ErrStorageCorrupt indicates data corruption was detected.
	ErrStorageCorrupt = errors.New("storage: data corruption detected")
	// ErrLockTimeout indicates a timeout acquiring a file lock.
	ErrLockTimeout = errors.New("storage: lock acquisition timeout")
)

// StorageError wraps storage errors with operation and entity context.
// Use errors.As() to extract this error type and get operation details:
//
//	var storErr *storage.StorageError
//	if errors.As(err, &storErr) {
//		fmt.Printf("Failed to %s %s %s: %v\n", storErr.Op, storErr.Entity, storErr.ID, storErr.Err)
//	}
type StorageError struct {
	// Op is the operation that failed ("append", "read", "lock", ...).
	Op string
	// Entity is the entity type ("push", "store", "file").
	Entity string
	// ID is the entity ID if applicable.
	ID string
	// Err is the underlying error that occurred.
	Err error
}

// Error returns a string representation of the storage error.
func (e *StorageError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("storage: %s %s %s: %v", e.Op, e.Entity, e.ID, e.Err)
	}
	return fmt.Sprintf("storage: %s %s: %v", e.Op, e.Entity, e.Err)
}

// Unwrap returns the underlying error for use with errors.Is() and errors.As().
func (e *StorageError) Unwrap() error { return e.Err }

// HistoryStore records every description push applied to a remote video.
// Implementations must be safe for concurrent use.
type HistoryStore interface {
	// AppendPush saves a new push record.
	AppendPush(ctx context.Context, rec *PushRecord) error
	// ListPushes retrieves all push records, oldest first.
	ListPushes(ctx context.Context) ([]*PushRecord, error)
	// ListPushesByVideo retrieves push records for one video, oldest first.
	ListPushesByVideo(ctx context.Context, videoID string) ([]*PushRecord, error)
	// LastPush retrieves the most recent push for a video.
	LastPush(ctx context.Context, videoID string) (*PushRecord, error)

	// Close releases any resources held by the store.
	Close() error
}

package descsync

import (
	"descsync/auth"
	"descsync/catalog"
	"descsync/retry"
	"descsync/storage"
	"descsync/youtube"
)

// Type aliases for convenient error handling.
type (
	// AuthError wraps errors during credential acquisition.
	AuthError = auth.AuthError
	// UpdateError wraps errors during a description push.
	UpdateError = youtube.UpdateError
	// RetryableError wraps errors that occurred after retries were exhausted.
	RetryableError = retry.RetryableError
	// StorageError wraps errors during storage operations.
	StorageError = storage.StorageError
)

// Sentinel errors exported from sub-packages.
var (
	// ErrNoClientSecret indicates the OAuth application credentials file is missing.
	ErrNoClientSecret = auth.ErrNoClientSecret
	// ErrNoToken indicates no cached OAuth token exists.
	ErrNoToken = auth.ErrNoToken

	// ErrNoDescriptions indicates no generated description files were found.
	ErrNoDescriptions = catalog.ErrNoDescriptions
	// ErrDescriptionMissing indicates a video's description file is absent.
	ErrDescriptionMissing = catalog.ErrDescriptionMissing

	// ErrVideoNotFound indicates the remote video does not exist.
	ErrVideoNotFound = youtube.ErrVideoNotFound
	// ErrQuotaExceeded indicates the estimated API quota reserve was hit.
	ErrQuotaExceeded = youtube.ErrQuotaExceeded
	// ErrNetworkTimeout indicates a network timeout occurred.
	ErrNetworkTimeout = youtube.ErrNetworkTimeout

	// ErrNotFound indicates an entity was not found in storage.
	ErrNotFound = storage.ErrNotFound
	// ErrStorageCorrupt indicates data corruption was detected.
	ErrStorageCorrupt = storage.ErrStorageCorrupt
	// ErrLockTimeout indicates a timeout acquiring a file lock.
	ErrLockTimeout = storage.ErrLockTimeout
)

// IsRetryable determines if an error should be retried.
func IsRetryable(err error) bool {
	return retry.IsRetryable(err)
}

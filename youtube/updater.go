package youtube

import (
	"context"
	"fmt"
	"log"
)

// PushResult is the outcome of a description push.
type PushResult int

const (
	// PushUnchanged means the remote description already matched and no
	// update call was issued.
	PushUnchanged PushResult = iota
	// PushUpdated means the update call was issued and succeeded.
	PushUpdated
)

// String returns a human-readable result name.
func (r PushResult) String() string {
	switch r {
	case PushUnchanged:
		return "unchanged"
	case PushUpdated:
		return "updated"
	default:
		return fmt.Sprintf("PushResult(%d)", int(r))
	}
}

// UpdateError wraps errors during a description push.
type UpdateError struct {
	// VideoID is the video the push targeted.
	VideoID string
	// Op is the remote call that failed ("get" or "update").
	Op string
	// Err is the underlying error.
	Err error
}

// Error returns a string representation of the update error.
func (e *UpdateError) Error() string {
	return fmt.Sprintf("youtube: %s video %s: %v", e.Op, e.VideoID, e.Err)
}

// Unwrap returns the underlying error for use with errors.Is() and errors.As().
func (e *UpdateError) Unwrap() error { return e.Err }

// Updater pushes new descriptions to remote videos.
type Updater struct {
	api SnippetService
}

// NewUpdater creates an updater over the given snippet service.
func NewUpdater(api SnippetService) *Updater {
	return &Updater{api: api}
}

// Push sets a video's remote description to description.
//
// The current snippet is fetched first; when the remote description already
// equals the new one the push short-circuits without issuing an update call.
// Otherwise only the description changes: title, category and tags are
// written back exactly as fetched.
func (u *Updater) Push(ctx context.Context, videoID, description string) (PushResult, *Snippet, error) {
	snippet, err := u.api.GetSnippet(ctx, videoID)
	if err != nil {
		return PushUnchanged, nil, &UpdateError{VideoID: videoID, Op: "get", Err: err}
	}

	if snippet.Description == description {
		log.Printf("youtube: video %s already up to date", videoID)
		return PushUnchanged, snippet, nil
	}

	updated := *snippet
	updated.Description = description

	if err := u.api.UpdateSnippet(ctx, &updated); err != nil {
		return PushUnchanged, snippet, &UpdateError{VideoID: videoID, Op: "update", Err: err}
	}

	log.Printf("youtube: video %s description updated (%d bytes)", videoID, len(description))
	return PushUpdated, &updated, nil
}

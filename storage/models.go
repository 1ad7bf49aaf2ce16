package storage

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// PushRecord is one applied description update.
// The description body itself is not stored, only its digest; the body lives
// in the generated description file it was read from.
type PushRecord struct {
	// ID is the internal unique identifier (UUID).
	ID string `json:"id"`
	// VideoID is the YouTube video ID the description was pushed to.
	VideoID string `json:"video_id"`
	// TrackSlug is the track the video was selected from.
	TrackSlug string `json:"track_slug"`
	// Slug is the description-file slug the body was read from.
	Slug string `json:"slug"`
	// DescriptionSHA is the hex SHA-256 of the pushed description body.
	DescriptionSHA string `json:"description_sha256"`
	// PushedAt is when the update call succeeded.
	PushedAt time.Time `json:"pushed_at"`
}

// DescriptionDigest returns the hex SHA-256 digest stored in PushRecord.DescriptionSHA.
func DescriptionDigest(body string) string {
	sum := sha256.Sum256([]byte(body))
	return hex.EncodeToString(sum[:])
}

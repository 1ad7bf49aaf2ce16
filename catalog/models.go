// Package catalog loads the track/video metadata and the generated
// description files that feed the update workflow.
package catalog

import "errors"

// Sentinel errors for catalog operations.
var (
	// ErrNoDescriptions indicates no generated description files were found.
	ErrNoDescriptions = errors.New("catalog: no description files found")
	// ErrDescriptionMissing indicates the description file for a video is absent.
	ErrDescriptionMissing = errors.New("catalog: description file missing")
)

// Video describes one video from the catalog metadata.
// Records are read-only; the metadata file is the source of truth.
type Video struct {
	// ID is the YouTube video ID.
	ID string `json:"id"`
	// Title is the video title as shown on the site.
	Title string `json:"title"`
	// URL is the canonical site URL; its leading segment is the track slug.
	URL string `json:"url"`
	// Slug is the description-file slug (the part before "_<id>.txt").
	Slug string `json:"slug"`
	// Language is the spoken-language tag used by the site's filters.
	Language string `json:"lang,omitempty"`
	// Topic is the topic tag used by the site's filters.
	Topic string `json:"topic,omitempty"`
}

// TrackInfo names a track in the metadata file.
type TrackInfo struct {
	Slug  string `json:"slug"`
	Title string `json:"title"`
}

// Track is a named grouping of videos, built transiently from metadata on
// each run. Only videos with a description file on disk are included.
type Track struct {
	Slug   string
	Title  string
	Videos []Video
}

// Metadata is the parsed content of metadata.json.
type Metadata struct {
	Tracks []TrackInfo `json:"tracks"`
	Videos []Video     `json:"videos"`
}

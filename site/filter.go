package site

import "descsync/catalog"

// FilterVideos returns the videos whose tags pass the filter. The default
// all/all filter returns the input slice unchanged.
func FilterVideos(videos []catalog.Video, filter TagFilter) []catalog.Video {
	if filter.IsDefault() {
		return videos
	}

	filtered := make([]catalog.Video, 0, len(videos))
	for _, v := range videos {
		if filter.Matches(v.Language, v.Topic) {
			filtered = append(filtered, v)
		}
	}
	return filtered
}

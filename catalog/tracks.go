package catalog

import "strings"

// ChallengesSlug is the slug of the synthetic track that collects videos
// whose canonical URL places them in the challenges category.
const ChallengesSlug = "challenges"

// ChallengesTitle is the display title of the synthetic challenges track.
const ChallengesTitle = "Challenges"

// BuildTracks groups catalog videos into offerable tracks.
//
// Videos are grouped by the leading segment of their canonical URL; videos
// under "challenges" go to a synthetic Challenges track. Videos for which
// offerable returns false are skipped, and tracks left with zero videos are
// dropped. Track order follows the metadata's track list, then first
// appearance, with Challenges always last.
func BuildTracks(meta *Metadata, offerable func(Video) bool) []Track {
	titles := make(map[string]string, len(meta.Tracks))
	order := make([]string, 0, len(meta.Tracks))
	for _, t := range meta.Tracks {
		titles[t.Slug] = t.Title
		order = append(order, t.Slug)
	}

	grouped := make(map[string][]Video)
	for _, v := range meta.Videos {
		if offerable != nil && !offerable(v) {
			continue
		}
		slug := trackSlug(v)
		if _, seen := grouped[slug]; !seen && !contains(order, slug) {
			order = append(order, slug)
		}
		grouped[slug] = append(grouped[slug], v)
	}

	tracks := make([]Track, 0, len(grouped))
	appendTrack := func(slug string) {
		videos := grouped[slug]
		if len(videos) == 0 {
			return
		}
		title := titles[slug]
		if title == "" {
			title = slug
		}
		if slug == ChallengesSlug {
			title = ChallengesTitle
		}
		tracks = append(tracks, Track{Slug: slug, Title: title, Videos: videos})
	}

	for _, slug := range order {
		if slug == ChallengesSlug {
			continue // Challenges goes last
		}
		appendTrack(slug)
	}
	appendTrack(ChallengesSlug)

	return tracks
}

// trackSlug derives the grouping slug from a video's canonical URL.
func trackSlug(v Video) string {
	url := strings.TrimPrefix(v.URL, "/")
	if strings.HasPrefix(url, ChallengesSlug) {
		return ChallengesSlug
	}
	if i := strings.Index(url, "/"); i > 0 {
		return url[:i]
	}
	return url
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

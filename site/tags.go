package site

import (
	"fmt"
	"strings"
)

const (
	// TagAll matches every value of a tag dimension.
	TagAll = "all"

	// filterSegment is the path segment index holding the filter token.
	filterSegment = 2

	langPrefix  = "lang:"
	topicPrefix = "topic:"
)

// TagFilter is the selected language/topic pair parsed from an index page URL.
type TagFilter struct {
	Language string
	Topic    string
}

// DefaultTagFilter matches every video.
var DefaultTagFilter = TagFilter{Language: TagAll, Topic: TagAll}

// TagParseError describes a filter segment that contains a "+" but does not
// follow the "lang:<value>+topic:<value>" form.
type TagParseError struct {
	// Segment is the malformed path segment.
	Segment string
	// Reason describes what was missing.
	Reason string
}

// Error returns a string representation of the parse error.
func (e *TagParseError) Error() string {
	return fmt.Sprintf("site: malformed tag filter %q: %s", e.Segment, e.Reason)
}

// ParseSelectedTags extracts the "lang:<value>+topic:<value>" filter token
// from an index page path. The token sits at the third path segment; paths
// without that segment, or whose segment carries no "+", fail closed to
// DefaultTagFilter. A segment containing "+" but missing the expected
// prefixes returns a TagParseError rather than guessing.
func ParseSelectedTags(path string) (TagFilter, error) {
	segments := strings.Split(strings.Trim(path, "/"), "/")
	if len(segments) <= filterSegment {
		return DefaultTagFilter, nil
	}

	segment := segments[filterSegment]
	if !strings.Contains(segment, "+") {
		return DefaultTagFilter, nil
	}

	langPart, topicPart, _ := strings.Cut(segment, "+")

	lang, ok := strings.CutPrefix(langPart, langPrefix)
	if !ok || lang == "" {
		return DefaultTagFilter, &TagParseError{Segment: segment, Reason: "missing lang: prefix"}
	}

	topic, ok := strings.CutPrefix(topicPart, topicPrefix)
	if !ok || topic == "" {
		return DefaultTagFilter, &TagParseError{Segment: segment, Reason: "missing topic: prefix"}
	}

	return TagFilter{Language: lang, Topic: topic}, nil
}

// Matches reports whether a video's tags pass the filter. TagAll matches
// every value, including empty tags.
func (f TagFilter) Matches(language, topic string) bool {
	if f.Language != TagAll && f.Language != language {
		return false
	}
	if f.Topic != TagAll && f.Topic != topic {
		return false
	}
	return true
}

// IsDefault reports whether the filter matches everything.
func (f TagFilter) IsDefault() bool {
	return f.Language == TagAll && f.Topic == TagAll
}

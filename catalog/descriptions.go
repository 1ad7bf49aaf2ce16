package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DescriptionSet is the set of generated description files found in a
// directory. Files are keyed by "<slug>_<videoID>"; anything that does not
// match the naming scheme is ignored.
type DescriptionSet struct {
	dir   string
	files map[string]string // key -> file name
}

// DiscoverDescriptions scans dir for generated description files.
// It returns ErrNoDescriptions if none are present: without candidate files
// there is nothing the updater could offer.
func DiscoverDescriptions(dir string) (*DescriptionSet, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read descriptions dir: %w", err)
	}

	set := &DescriptionSet{
		dir:   dir,
		files: make(map[string]string),
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		key, ok := descriptionKey(name)
		if !ok {
			continue
		}
		set.files[key] = name
	}

	if len(set.files) == 0 {
		return nil, ErrNoDescriptions
	}

	return set, nil
}

// descriptionKey extracts the "<slug>_<videoID>" key from a file name.
// The video ID is the part after the last underscore; slugs may themselves
// contain underscores.
func descriptionKey(name string) (string, bool) {
	base, ok := strings.CutSuffix(name, ".txt")
	if !ok {
		return "", false
	}
	i := strings.LastIndex(base, "_")
	if i <= 0 || i == len(base)-1 {
		return "", false
	}
	return base, true
}

// Has reports whether a description file exists for the slug/video pair.
func (s *DescriptionSet) Has(slug, videoID string) bool {
	_, ok := s.files[slug+"_"+videoID]
	return ok
}

// Read returns the description body for the slug/video pair.
func (s *DescriptionSet) Read(slug, videoID string) (string, error) {
	name, ok := s.files[slug+"_"+videoID]
	if !ok {
		return "", fmt.Errorf("%w: %s_%s.txt", ErrDescriptionMissing, slug, videoID)
	}

	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("read description %s: %w", name, err)
	}
	return string(data), nil
}

// Len returns the number of discovered description files.
func (s *DescriptionSet) Len() int {
	return len(s.files)
}

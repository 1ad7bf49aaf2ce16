// Package site provides the pure data-shaping helpers behind the static
// site's video index pages: image map construction, tag-filter parsing from
// a URL path, and tag-based video filtering.
package site

import "sync"

// ImageData is the processed image payload embedded in a catalog node.
type ImageData struct {
	Src    string `json:"src"`
	SrcSet string `json:"srcSet,omitempty"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// ImageNode is one record from the site's image catalog. Properties carries
// the node's scalar fields keyed by property name.
type ImageNode struct {
	Properties map[string]string
	Image      ImageData
}

// ImageIndexer builds a key -> image payload map from an ordered node list.
// The result is memoized against the (nodes, keyProperty) identity pair:
// repeated calls with the same backing slice and key return the same map
// without recomputation.
type ImageIndexer struct {
	mu        sync.Mutex
	lastNodes []ImageNode
	lastKey   string
	lastIndex map[string]ImageData
}

// Build returns a mapping from each node's key-property value to its image
// payload. Key values are expected to be unique; when duplicates occur the
// later entry silently overwrites the earlier one.
func (ix *ImageIndexer) Build(nodes []ImageNode, keyProperty string) map[string]ImageData {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	if ix.lastIndex != nil && keyProperty == ix.lastKey && sameSlice(nodes, ix.lastNodes) {
		return ix.lastIndex
	}

	index := make(map[string]ImageData, len(nodes))
	for _, node := range nodes {
		key, ok := node.Properties[keyProperty]
		if !ok {
			continue
		}
		index[key] = node.Image
	}

	ix.lastNodes = nodes
	ix.lastKey = keyProperty
	ix.lastIndex = index
	return index
}

// sameSlice reports whether two slices share length and backing array.
// Empty slices carry no element to compare, so they never match and empty
// inputs are rebuilt every time.
func sameSlice(a, b []ImageNode) bool {
	if len(a) != len(b) || len(a) == 0 {
		return false
	}
	return &a[0] == &b[0]
}

// BuildImageIndex is the non-memoized form of ImageIndexer.Build.
func BuildImageIndex(nodes []ImageNode, keyProperty string) map[string]ImageData {
	var ix ImageIndexer
	return ix.Build(nodes, keyProperty)
}

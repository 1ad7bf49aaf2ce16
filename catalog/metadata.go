package catalog

import (
	"encoding/json"
	"fmt"
	"os"
)

// LoadMetadata reads and parses the track/video catalog at path.
func LoadMetadata(path string) (*Metadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read metadata: %w", err)
	}

	meta := &Metadata{}
	if err := json.Unmarshal(data, meta); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return meta, nil
}

package storage

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	schemaVersion = "1.0"
	lockTimeout   = 5 * time.Second
)

// JSONHistory implements HistoryStore using a single JSON file.
type JSONHistory struct {
	path string
	lock *FileLock
	data *historyData
	mu   sync.RWMutex
}

// historyData is the top-level JSON structure.
type historyData struct {
	Version   string        `json:"version"`
	UpdatedAt time.Time     `json:"updated_at"`
	Pushes    []*PushRecord `json:"pushes"`
	Indexes   *indexes      `json:"indexes"`
}

// indexes maintains lookup tables for efficient queries.
type indexes struct {
	PushesByVideo map[string][]int `json:"pushes_by_video"` // video_id -> positions in Pushes
}

// NewJSONHistory creates a new JSON file store at the given path.
// If the file exists, it is loaded; otherwise an empty store is created.
func NewJSONHistory(path string) (*JSONHistory, error) {
	s := &JSONHistory{
		path: path,
		lock: NewFileLock(path),
	}

	if err := s.lock.Lock(lockTimeout); err != nil {
		return nil, err
	}

	if err := s.load(); err != nil {
		s.lock.Unlock()
		return nil, err
	}

	return s, nil
}

// load reads the JSON file into memory. Creates empty data if file doesn't exist.
func (s *JSONHistory) load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.data = newHistoryData()
			// Save immediately to catch permission errors early
			return s.save()
		}
		return &StorageError{Op: "read", Entity: "store", Err: err}
	}

	s.data = &historyData{}
	if err := json.Unmarshal(data, s.data); err != nil {
		return &StorageError{Op: "read", Entity: "store", Err: ErrStorageCorrupt}
	}

	// Ensure indexes exist
	if s.data.Indexes == nil {
		s.data.Indexes = newIndexes()
		for i, rec := range s.data.Pushes {
			s.data.Indexes.PushesByVideo[rec.VideoID] = append(
				s.data.Indexes.PushesByVideo[rec.VideoID], i)
		}
	}

	return nil
}

// save persists the data to disk atomically.
func (s *JSONHistory) save() error {
	s.data.UpdatedAt = time.Now()

	writer, err := NewAtomicWriter(s.path)
	if err != nil {
		return &StorageError{Op: "write", Entity: "store", Err: err}
	}

	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(s.data); err != nil {
		writer.Abort()
		return &StorageError{Op: "write", Entity: "store", Err: err}
	}

	if err := writer.Commit(); err != nil {
		return &StorageError{Op: "write", Entity: "store", Err: err}
	}

	return nil
}

// Close releases resources held by the store.
func (s *JSONHistory) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lock.Unlock()
}

func newHistoryData() *historyData {
	return &historyData{
		Version:   schemaVersion,
		UpdatedAt: time.Now(),
		Indexes:   newIndexes(),
	}
}

func newIndexes() *indexes {
	return &indexes{
		PushesByVideo: make(map[string][]int),
	}
}

// AppendPush saves a new push record.
func (s *JSONHistory) AppendPush(ctx context.Context, rec *PushRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if rec.VideoID == "" {
		return &StorageError{Op: "append", Entity: "push", Err: ErrInvalidInput}
	}

	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.PushedAt.IsZero() {
		rec.PushedAt = time.Now()
	}

	s.data.Pushes = append(s.data.Pushes, rec)
	s.data.Indexes.PushesByVideo[rec.VideoID] = append(
		s.data.Indexes.PushesByVideo[rec.VideoID], len(s.data.Pushes)-1)

	return s.save()
}

// ListPushes retrieves all push records, oldest first.
func (s *JSONHistory) ListPushes(ctx context.Context) ([]*PushRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	pushes := make([]*PushRecord, len(s.data.Pushes))
	copy(pushes, s.data.Pushes)
	return pushes, nil
}

// ListPushesByVideo retrieves push records for one video, oldest first.
func (s *JSONHistory) ListPushesByVideo(ctx context.Context, videoID string) ([]*PushRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	positions := s.data.Indexes.PushesByVideo[videoID]
	pushes := make([]*PushRecord, 0, len(positions))
	for _, i := range positions {
		if i >= 0 && i < len(s.data.Pushes) {
			pushes = append(pushes, s.data.Pushes[i])
		}
	}
	return pushes, nil
}

// LastPush retrieves the most recent push for a video.
func (s *JSONHistory) LastPush(ctx context.Context, videoID string) (*PushRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	positions := s.data.Indexes.PushesByVideo[videoID]
	if len(positions) == 0 {
		return nil, &StorageError{Op: "read", Entity: "push", ID: videoID, Err: ErrNotFound}
	}

	i := positions[len(positions)-1]
	if i < 0 || i >= len(s.data.Pushes) {
		return nil, &StorageError{Op: "read", Entity: "push", ID: videoID, Err: ErrStorageCorrupt}
	}
	return s.data.Pushes[i], nil
}

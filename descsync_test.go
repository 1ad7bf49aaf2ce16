package descsync

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"descsync/catalog"
	"descsync/config"
	"descsync/storage"
	"descsync/youtube"
)

// fakeAPI implements youtube.SnippetService in memory.
type fakeAPI struct {
	snippets    map[string]*youtube.Snippet
	updateCalls int
}

func (f *fakeAPI) GetSnippet(ctx context.Context, videoID string) (*youtube.Snippet, error) {
	s, ok := f.snippets[videoID]
	if !ok {
		return nil, youtube.ErrVideoNotFound
	}
	copied := *s
	return &copied, nil
}

func (f *fakeAPI) UpdateSnippet(ctx context.Context, s *youtube.Snippet) error {
	f.updateCalls++
	f.snippets[s.VideoID] = s
	return nil
}

// trackingSelector counts selection calls.
type trackingSelector struct {
	trackCalls int
	videoCalls int
}

func (s *trackingSelector) SelectTrack(tracks []catalog.Track) (int, error) {
	s.trackCalls++
	return 0, nil
}

func (s *trackingSelector) SelectVideo(track catalog.Track) (int, error) {
	s.videoCalls++
	return 0, nil
}

// pickFirst selects the first track and first video.
type pickFirst struct{}

func (pickFirst) SelectTrack(tracks []catalog.Track) (int, error) { return 0, nil }
func (pickFirst) SelectVideo(track catalog.Track) (int, error)    { return 0, nil }

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()

	cfg := config.DefaultConfig()
	cfg.CredentialsDir = filepath.Join(dir, "google-credentials")
	cfg.DescriptionsDir = filepath.Join(dir, "_descriptions")
	cfg.HistoryPath = filepath.Join(dir, "history.json")

	if err := os.MkdirAll(cfg.DescriptionsDir, 0755); err != nil {
		t.Fatal(err)
	}

	metadata := `{
		"tracks": [{"slug": "go-basics", "title": "Go Basics"}],
		"videos": [
			{"id": "vid1", "title": "Intro", "url": "go-basics/intro", "slug": "intro"},
			{"id": "vid2", "title": "No description", "url": "go-basics/missing", "slug": "missing"}
		]
	}`
	if err := os.WriteFile(cfg.MetadataPath(), []byte(metadata), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(cfg.DescriptionsDir, "intro_vid1.txt"), []byte("fresh body"), 0644); err != nil {
		t.Fatal(err)
	}

	return cfg
}

func TestSessionRun_PushesAndRecords(t *testing.T) {
	cfg := testConfig(t)
	api := &fakeAPI{
		snippets: map[string]*youtube.Snippet{
			"vid1": {VideoID: "vid1", Title: "Intro", Description: "stale body", CategoryID: "27"},
		},
	}

	session := &Session{
		Config:   cfg,
		Selector: pickFirst{},
		API:      api,
	}

	if err := session.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if api.updateCalls != 1 {
		t.Errorf("update calls = %d, want 1", api.updateCalls)
	}
	if got := api.snippets["vid1"].Description; got != "fresh body" {
		t.Errorf("remote description = %q, want %q", got, "fresh body")
	}
	if got := api.snippets["vid1"].Title; got != "Intro" {
		t.Errorf("remote title = %q, want preserved %q", got, "Intro")
	}

	// The push must be recorded in the history store.
	history, err := storage.NewJSONHistory(cfg.HistoryPath)
	if err != nil {
		t.Fatalf("NewJSONHistory() error = %v", err)
	}
	defer history.Close()

	last, err := history.LastPush(context.Background(), "vid1")
	if err != nil {
		t.Fatalf("LastPush() error = %v", err)
	}
	if last.TrackSlug != "go-basics" {
		t.Errorf("recorded track = %q, want %q", last.TrackSlug, "go-basics")
	}
	if last.DescriptionSHA != storage.DescriptionDigest("fresh body") {
		t.Errorf("recorded digest does not match pushed body")
	}
}

func TestSessionRun_AlreadyUpToDate(t *testing.T) {
	cfg := testConfig(t)
	api := &fakeAPI{
		snippets: map[string]*youtube.Snippet{
			"vid1": {VideoID: "vid1", Description: "fresh body"},
		},
	}

	session := &Session{
		Config:   cfg,
		Selector: pickFirst{},
		API:      api,
	}

	if err := session.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if api.updateCalls != 0 {
		t.Errorf("update calls = %d, want 0 (idempotent short-circuit)", api.updateCalls)
	}

	// Nothing recorded when nothing was pushed.
	history, err := storage.NewJSONHistory(cfg.HistoryPath)
	if err != nil {
		t.Fatalf("NewJSONHistory() error = %v", err)
	}
	defer history.Close()

	if _, err := history.LastPush(context.Background(), "vid1"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("LastPush() error = %v, want ErrNotFound", err)
	}
}

func TestSessionRun_NoDescriptions(t *testing.T) {
	cfg := testConfig(t)
	if err := os.Remove(filepath.Join(cfg.DescriptionsDir, "intro_vid1.txt")); err != nil {
		t.Fatal(err)
	}

	session := &Session{
		Config:   cfg,
		Selector: pickFirst{},
		API:      &fakeAPI{snippets: map[string]*youtube.Snippet{}},
	}

	err := session.Run(context.Background())
	if !errors.Is(err, ErrNoDescriptions) {
		t.Errorf("Run() error = %v, want ErrNoDescriptions", err)
	}
}

func TestCandidates_OnlyOffersVideosWithFiles(t *testing.T) {
	cfg := testConfig(t)

	tracks, descriptions, err := Candidates(cfg)
	if err != nil {
		t.Fatalf("Candidates() error = %v", err)
	}

	if len(tracks) != 1 {
		t.Fatalf("tracks = %d, want 1", len(tracks))
	}
	if len(tracks[0].Videos) != 1 {
		t.Fatalf("offerable videos = %d, want 1 (vid2 has no file)", len(tracks[0].Videos))
	}
	if tracks[0].Videos[0].ID != "vid1" {
		t.Errorf("offered video = %q, want vid1", tracks[0].Videos[0].ID)
	}
	if !descriptions.Has("intro", "vid1") {
		t.Error("description set missing intro_vid1")
	}
}

func TestSessionRun_AuthorizesBeforeSelection(t *testing.T) {
	cfg := testConfig(t)
	sel := &trackingSelector{}

	// No injected API and no client secret on disk: authorization must fail
	// before any selection prompt runs.
	session := &Session{
		Config:   cfg,
		Selector: sel,
	}

	err := session.Run(context.Background())
	if !errors.Is(err, ErrNoClientSecret) {
		t.Fatalf("Run() error = %v, want ErrNoClientSecret", err)
	}
	if sel.trackCalls != 0 || sel.videoCalls != 0 {
		t.Errorf("selection ran before authorization (track calls = %d, video calls = %d)",
			sel.trackCalls, sel.videoCalls)
	}
}

func TestAuthorize_MissingClientSecret(t *testing.T) {
	cfg := testConfig(t)

	_, err := Authorize(context.Background(), cfg, nil, false)
	if !errors.Is(err, ErrNoClientSecret) {
		t.Errorf("Authorize() error = %v, want ErrNoClientSecret", err)
	}
}

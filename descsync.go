package descsync

import (
	"context"
	"fmt"
	"log"

	"descsync/auth"
	"descsync/catalog"
	"descsync/config"
	"descsync/storage"
	"descsync/youtube"
)

// Selector chooses a track and a video during the interactive workflow.
type Selector interface {
	// SelectTrack returns the index of the chosen track.
	SelectTrack(tracks []catalog.Track) (int, error)
	// SelectVideo returns the index of the chosen video within the track.
	SelectVideo(track catalog.Track) (int, error)
}

// Session runs the end-to-end update workflow: authorize, discover
// candidates, select, push, record.
type Session struct {
	// Config is the process-wide configuration.
	Config *config.Config
	// Prompter obtains the authorization code during first-run auth.
	Prompter auth.CodePrompter
	// Selector picks the track and video to update.
	Selector Selector
	// ForceAuth runs the interactive authorization even with a cached token.
	ForceAuth bool

	// API overrides the Data API client; when nil the session authorizes
	// and builds one. Tests inject a fake here.
	API youtube.SnippetService
	// History overrides the push-history store; when nil the session opens
	// the configured one.
	History storage.HistoryStore
}

// NewSession creates a session with console prompts.
func NewSession(cfg *config.Config) *Session {
	return &Session{
		Config:   cfg,
		Prompter: auth.NewConsolePrompter(),
	}
}

// Authorize runs the credential acquisition protocol and returns the
// snippet service. The cached token is used when present unless force is set.
func Authorize(ctx context.Context, cfg *config.Config, prompter auth.CodePrompter, force bool) (*youtube.DataAPI, error) {
	oauthCfg, err := auth.LoadClientSecret(cfg.ClientSecretPath(), youtube.Scope)
	if err != nil {
		return nil, err
	}

	authorizer := &auth.Authorizer{
		Config:   oauthCfg,
		Cache:    auth.NewTokenCache(cfg.TokenCachePath()),
		Prompter: prompter,
		Force:    force,
	}

	client, err := authorizer.Client(ctx)
	if err != nil {
		return nil, err
	}

	api, err := youtube.NewDataAPI(ctx, client, cfg.QuotaReserve)
	if err != nil {
		return nil, err
	}
	retryCfg := cfg.RetryConfig()
	api.RetryConfig = &retryCfg
	return api, nil
}

// Candidates loads the catalog and groups the videos that have a description
// file on disk into offerable tracks.
func Candidates(cfg *config.Config) ([]catalog.Track, *catalog.DescriptionSet, error) {
	descriptions, err := catalog.DiscoverDescriptions(cfg.DescriptionsDir)
	if err != nil {
		return nil, nil, err
	}

	meta, err := catalog.LoadMetadata(cfg.MetadataPath())
	if err != nil {
		return nil, nil, err
	}

	tracks := catalog.BuildTracks(meta, func(v catalog.Video) bool {
		return descriptions.Has(v.Slug, v.ID)
	})
	if len(tracks) == 0 {
		return nil, nil, fmt.Errorf("%w: none of the %d files matches a catalog video", catalog.ErrNoDescriptions, descriptions.Len())
	}

	return tracks, descriptions, nil
}

// Run executes the full interactive workflow. Authorization happens first:
// a missing client secret or a failed token exchange surfaces before the
// user is walked through any selection prompts.
func (s *Session) Run(ctx context.Context) error {
	api := s.API
	if api == nil {
		authorized, err := Authorize(ctx, s.Config, s.Prompter, s.ForceAuth)
		if err != nil {
			return err
		}
		api = authorized
	}

	tracks, descriptions, err := Candidates(s.Config)
	if err != nil {
		return err
	}

	trackIdx, err := s.Selector.SelectTrack(tracks)
	if err != nil {
		return fmt.Errorf("select track: %w", err)
	}
	if trackIdx < 0 || trackIdx >= len(tracks) {
		return fmt.Errorf("select track: index %d out of range", trackIdx)
	}
	track := tracks[trackIdx]

	videoIdx, err := s.Selector.SelectVideo(track)
	if err != nil {
		return fmt.Errorf("select video: %w", err)
	}
	if videoIdx < 0 || videoIdx >= len(track.Videos) {
		return fmt.Errorf("select video: index %d out of range", videoIdx)
	}
	video := track.Videos[videoIdx]

	description, err := descriptions.Read(video.Slug, video.ID)
	if err != nil {
		return err
	}

	result, _, err := youtube.NewUpdater(api).Push(ctx, video.ID, description)
	if err != nil {
		return err
	}
	if result == youtube.PushUnchanged {
		log.Printf("descsync: %q already up to date, nothing pushed", video.Title)
		return nil
	}

	if err := s.recordPush(ctx, track, video, description); err != nil {
		// The push itself succeeded; a history failure should not fail the run.
		log.Printf("descsync: failed to record push: %v", err)
	}

	log.Printf("descsync: %q updated", video.Title)
	return nil
}

// recordPush appends the applied update to the push history.
func (s *Session) recordPush(ctx context.Context, track catalog.Track, video catalog.Video, description string) error {
	history := s.History
	if history == nil {
		opened, err := storage.NewJSONHistory(s.Config.HistoryPath)
		if err != nil {
			return err
		}
		defer opened.Close()
		history = opened
	}

	return history.AppendPush(ctx, &storage.PushRecord{
		VideoID:        video.ID,
		TrackSlug:      track.Slug,
		Slug:           video.Slug,
		DescriptionSHA: storage.DescriptionDigest(description),
	})
}

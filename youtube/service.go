// Package youtube pushes description updates to videos through the YouTube
// Data API v3.
package youtube

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"google.golang.org/api/option"
	yt "google.golang.org/api/youtube/v3"

	"descsync/retry"
)

// Scope is the OAuth scope required for snippet updates.
const Scope = yt.YoutubeScope

// Sentinel errors for Data API operations.
var (
	ErrVideoNotFound  = errors.New("youtube: video not found")
	ErrQuotaExceeded  = errors.New("youtube: quota exceeded")
	ErrNetworkTimeout = errors.New("youtube: network timeout")
)

// Quota unit costs per Data API call.
const (
	quotaCostList   = 1
	quotaCostUpdate = 50
	dailyQuota      = 10000
)

// Snippet is the subset of a video's remote metadata the updater touches.
// Title, category and tags ride along unchanged so an update call never
// clobbers them.
type Snippet struct {
	VideoID     string
	Title       string
	Description string
	CategoryID  string
	Tags        []string
}

// SnippetService abstracts the two Data API calls the updater issues.
type SnippetService interface {
	// GetSnippet fetches the current remote snippet for a video.
	GetSnippet(ctx context.Context, videoID string) (*Snippet, error)
	// UpdateSnippet writes the snippet back to the remote video.
	UpdateSnippet(ctx context.Context, s *Snippet) error
}

// DataAPI implements SnippetService using YouTube Data API v3.
// Quota usage is tracked per call so the updater can refuse to dip below a
// configured reserve.
type DataAPI struct {
	service      *yt.Service
	quotaReserve int

	mu             sync.Mutex
	estimatedQuota int
	lastQuotaReset time.Time

	RetryConfig *retry.Config
}

// NewDataAPI creates a Data API client over an authenticated HTTP client.
// quotaReserve specifies the minimum quota units to keep in reserve (default 0).
func NewDataAPI(ctx context.Context, client *http.Client, quotaReserve int) (*DataAPI, error) {
	if client == nil {
		return nil, fmt.Errorf("authenticated client required")
	}

	service, err := yt.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("create youtube service: %w", err)
	}

	cfg := retry.DefaultConfig()
	return &DataAPI{
		service:        service,
		quotaReserve:   quotaReserve,
		estimatedQuota: dailyQuota,
		lastQuotaReset: time.Now(),
		RetryConfig:    &cfg,
	}, nil
}

// GetSnippet fetches the current snippet for a video (videos.list, 1 unit).
func (a *DataAPI) GetSnippet(ctx context.Context, videoID string) (*Snippet, error) {
	if err := a.checkQuota(quotaCostList); err != nil {
		return nil, err
	}

	var snippet *Snippet
	err := retry.Do(ctx, a.retryConfig(), apiErrorClassifier, func(ctx context.Context) error {
		resp, err := a.service.Videos.List([]string{"snippet"}).
			Id(videoID).
			Context(ctx).
			Do()
		if err != nil {
			if ctx.Err() != nil {
				return ErrNetworkTimeout
			}
			return err
		}

		a.trackQuotaUsage(quotaCostList)

		if len(resp.Items) == 0 {
			return fmt.Errorf("%w: %s", ErrVideoNotFound, videoID)
		}

		item := resp.Items[0]
		snippet = &Snippet{
			VideoID:     item.Id,
			Title:       item.Snippet.Title,
			Description: item.Snippet.Description,
			CategoryID:  item.Snippet.CategoryId,
			Tags:        item.Snippet.Tags,
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return snippet, nil
}

// UpdateSnippet writes the snippet back to the video (videos.update, 50 units).
func (a *DataAPI) UpdateSnippet(ctx context.Context, s *Snippet) error {
	if err := a.checkQuota(quotaCostUpdate); err != nil {
		return err
	}

	video := &yt.Video{
		Id: s.VideoID,
		Snippet: &yt.VideoSnippet{
			Title:       s.Title,
			Description: s.Description,
			CategoryId:  s.CategoryID,
			Tags:        s.Tags,
		},
	}

	return retry.Do(ctx, a.retryConfig(), apiErrorClassifier, func(ctx context.Context) error {
		_, err := a.service.Videos.Update([]string{"snippet"}, video).
			Context(ctx).
			Do()
		if err != nil {
			if ctx.Err() != nil {
				return ErrNetworkTimeout
			}
			return err
		}

		a.trackQuotaUsage(quotaCostUpdate)
		return nil
	})
}

func (a *DataAPI) retryConfig() retry.Config {
	if a.RetryConfig != nil {
		return *a.RetryConfig
	}
	return retry.DefaultConfig()
}

// checkQuota refuses a call that would dip below the configured reserve.
func (a *DataAPI) checkQuota(units int) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.maybeResetQuota()

	if a.estimatedQuota-units < a.quotaReserve {
		return fmt.Errorf("%w: %d units remaining, reserve %d", ErrQuotaExceeded, a.estimatedQuota, a.quotaReserve)
	}
	return nil
}

// trackQuotaUsage updates the estimated remaining quota.
func (a *DataAPI) trackQuotaUsage(units int) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.maybeResetQuota()
	a.estimatedQuota -= units
	log.Printf("youtube: quota usage - remaining: %d units", a.estimatedQuota)
}

// maybeResetQuota resets the daily estimate. Callers must hold a.mu.
func (a *DataAPI) maybeResetQuota() {
	if time.Since(a.lastQuotaReset) > 24*time.Hour {
		a.estimatedQuota = dailyQuota
		a.lastQuotaReset = time.Now()
		log.Printf("youtube: quota reset (new day)")
	}
}

// EstimatedQuota returns the estimated remaining quota units.
func (a *DataAPI) EstimatedQuota() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.estimatedQuota
}

// apiErrorClassifier determines if a Data API error is retryable.
func apiErrorClassifier(err error) bool {
	if err == nil {
		return false
	}

	// Don't retry permanent sentinel errors
	if errors.Is(err, ErrVideoNotFound) || errors.Is(err, ErrQuotaExceeded) {
		return false
	}

	// Rate limit errors are retryable
	if strings.Contains(err.Error(), "quotaExceeded") {
		return true
	}
	if strings.Contains(err.Error(), "rateLimitExceeded") {
		return true
	}

	// Timeout errors are retryable
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, ErrNetworkTimeout) {
		return true
	}

	// Default to retryable for unknown errors
	return true
}

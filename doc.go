// Package descsync keeps YouTube video descriptions in sync with locally
// generated description files.
//
// Overview
//
// descsync is built around one interactive workflow: authorize against the
// YouTube Data API, discover the generated description files on disk, let
// the user pick a track and a video, and push the new description. The push
// is idempotent: when the remote description already matches, no update call
// is issued (and no API quota is spent on the write).
//
// Quick Start
//
// Run the full workflow with console prompts:
//
//	cfg, err := config.Load()
//	if err != nil {
//		log.Fatal(err)
//	}
//	session := descsync.NewSession(cfg)
//	if err := session.Run(context.Background()); err != nil {
//		log.Fatal(err)
//	}
//
// Configuration
//
// descsync uses a configuration system that loads settings from multiple
// sources:
//
//   1. Environment variables (highest priority)
//   2. Config file (descsync.json or ~/.config/descsync/descsync.json)
//   3. Default values (lowest priority)
//
// Environment variables:
//
//   - DESCSYNC_CREDENTIALS_DIR: Directory with client_secret.json and the token cache
//   - DESCSYNC_DESCRIPTIONS_DIR: Directory with metadata.json and generated descriptions
//   - DESCSYNC_HISTORY_PATH: Path of the push-history store
//   - DESCSYNC_QUOTA_RESERVE: Minimum API quota units to keep in reserve
//   - DESCSYNC_MAX_RETRIES: Maximum retry attempts
//   - DESCSYNC_INITIAL_BACKOFF: Initial retry backoff duration
//   - DESCSYNC_MAX_BACKOFF: Maximum retry backoff duration
//
// Error Handling
//
// All operations return errors that implement standard Go error handling:
//
//	if errors.Is(err, descsync.ErrNoDescriptions) {
//		fmt.Println("Generate descriptions first")
//	}
//
//	var updateErr *descsync.UpdateError
//	if errors.As(err, &updateErr) {
//		fmt.Printf("Pushing to %s failed: %v\n", updateErr.VideoID, updateErr.Err)
//	}
//
// Sub-packages
//
// For more control, use the sub-packages directly:
//
//   - auth: OAuth token acquisition and caching
//   - catalog: Track/video metadata and description-file discovery
//   - youtube: Snippet fetch/update against the Data API
//   - site: Pure helpers behind the static site's video index pages
//   - config: Configuration management
//   - storage: Push history and file primitives
//   - retry: Exponential backoff retry logic
package descsync

package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"golang.org/x/oauth2"

	"descsync/storage"
)

const cacheLockTimeout = 5 * time.Second

// TokenCache persists the OAuth token between runs. Reads and writes go
// through an advisory file lock and an atomic writer so concurrent runs
// cannot tear the token file during a refresh.
type TokenCache struct {
	path string
}

// NewTokenCache creates a token cache backed by the file at path.
func NewTokenCache(path string) *TokenCache {
	return &TokenCache{path: path}
}

// Path returns the cache file path.
func (c *TokenCache) Path() string {
	return c.path
}

// Load reads the cached token. It returns ErrNoToken when no cache exists.
func (c *TokenCache) Load() (*oauth2.Token, error) {
	lock := storage.NewFileLock(c.path)
	if err := lock.Lock(cacheLockTimeout); err != nil {
		return nil, err
	}
	defer lock.Unlock()

	data, err := os.ReadFile(c.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNoToken
		}
		return nil, fmt.Errorf("read token cache: %w", err)
	}

	tok := &oauth2.Token{}
	if err := json.Unmarshal(data, tok); err != nil {
		return nil, fmt.Errorf("parse token cache %s: %w", c.path, err)
	}
	if tok.AccessToken == "" && tok.RefreshToken == "" {
		return nil, ErrNoToken
	}
	return tok, nil
}

// Save writes the token atomically under the cache lock.
func (c *TokenCache) Save(tok *oauth2.Token) error {
	lock := storage.NewFileLock(c.path)
	if err := lock.Lock(cacheLockTimeout); err != nil {
		return err
	}
	defer lock.Unlock()

	writer, err := storage.NewAtomicWriter(c.path)
	if err != nil {
		return fmt.Errorf("write token cache: %w", err)
	}

	encoder := json.NewEncoder(writer)
	if err := encoder.Encode(tok); err != nil {
		writer.Abort()
		return fmt.Errorf("encode token: %w", err)
	}
	if err := writer.Commit(); err != nil {
		return fmt.Errorf("write token cache: %w", err)
	}
	return nil
}

package auth

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"golang.org/x/oauth2"
)

func TestTokenCache_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.json")
	cache := NewTokenCache(path)

	tok := &oauth2.Token{
		AccessToken:  "access-123",
		RefreshToken: "refresh-456",
		TokenType:    "Bearer",
		Expiry:       time.Now().Add(time.Hour).Round(time.Second),
	}
	if err := cache.Save(tok); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := cache.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.AccessToken != tok.AccessToken {
		t.Errorf("AccessToken = %q, want %q", loaded.AccessToken, tok.AccessToken)
	}
	if loaded.RefreshToken != tok.RefreshToken {
		t.Errorf("RefreshToken = %q, want %q", loaded.RefreshToken, tok.RefreshToken)
	}
}

func TestTokenCache_LoadMissing(t *testing.T) {
	cache := NewTokenCache(filepath.Join(t.TempDir(), "credentials.json"))

	_, err := cache.Load()
	if !errors.Is(err, ErrNoToken) {
		t.Errorf("Load() error = %v, want ErrNoToken", err)
	}
}

func TestTokenCache_LoadEmptyToken(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.json")
	if err := os.WriteFile(path, []byte("{}"), 0600); err != nil {
		t.Fatal(err)
	}

	cache := NewTokenCache(path)
	_, err := cache.Load()
	if !errors.Is(err, ErrNoToken) {
		t.Errorf("Load() error = %v, want ErrNoToken", err)
	}
}

func TestTokenCache_LoadCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.json")
	if err := os.WriteFile(path, []byte("{not json"), 0600); err != nil {
		t.Fatal(err)
	}

	cache := NewTokenCache(path)
	_, err := cache.Load()
	if err == nil || errors.Is(err, ErrNoToken) {
		t.Errorf("Load() error = %v, want parse error", err)
	}
}

func TestTokenCache_SaveOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.json")
	cache := NewTokenCache(path)

	if err := cache.Save(&oauth2.Token{AccessToken: "old"}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := cache.Save(&oauth2.Token{AccessToken: "new"}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := cache.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.AccessToken != "new" {
		t.Errorf("AccessToken = %q, want %q", loaded.AccessToken, "new")
	}
}

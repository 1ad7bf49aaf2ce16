// Package auth implements the two-phase credential acquisition protocol used
// by the updater: load a cached OAuth token, and on absence perform an
// out-of-band user authorization and cache the result. The console I/O is
// behind the CodePrompter interface so the flow is testable without a user.
package auth

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// Sentinel errors for authorization operations.
var (
	// ErrNoClientSecret indicates the OAuth application credentials file is missing.
	ErrNoClientSecret = errors.New("auth: client secret not found")
	// ErrNoToken indicates no cached token exists.
	ErrNoToken = errors.New("auth: no cached token")
	// ErrEmptyCode indicates the user supplied an empty authorization code.
	ErrEmptyCode = errors.New("auth: empty authorization code")
)

// AuthError wraps authorization failures with step context.
type AuthError struct {
	// Step is the protocol step that failed ("load-secret", "prompt", "exchange", "cache").
	Step string
	// Err is the underlying error.
	Err error
}

// Error returns a string representation of the authorization error.
func (e *AuthError) Error() string {
	return fmt.Sprintf("auth: %s: %v", e.Step, e.Err)
}

// Unwrap returns the underlying error for use with errors.Is() and errors.As().
func (e *AuthError) Unwrap() error { return e.Err }

// CodePrompter obtains the out-of-band authorization code from the user.
type CodePrompter interface {
	// PromptCode displays the authorization URL and returns the code the
	// user pasted back.
	PromptCode(authURL string) (string, error)
}

// ConsolePrompter implements CodePrompter over stdio.
type ConsolePrompter struct {
	In  io.Reader
	Out io.Writer
}

// NewConsolePrompter returns a prompter reading stdin and writing stderr.
func NewConsolePrompter() *ConsolePrompter {
	return &ConsolePrompter{In: os.Stdin, Out: os.Stderr}
}

// PromptCode prints the authorization URL and blocks for the pasted code.
func (p *ConsolePrompter) PromptCode(authURL string) (string, error) {
	fmt.Fprintf(p.Out, "Open the following URL in your browser, authorize the app,\nthen paste the code here:\n\n%s\n\nCode: ", authURL)

	var code string
	if _, err := fmt.Fscan(p.In, &code); err != nil {
		return "", fmt.Errorf("read code: %w", err)
	}
	return strings.TrimSpace(code), nil
}

// LoadClientSecret reads the OAuth application credentials file and builds
// the oauth2 config for the given scopes.
func LoadClientSecret(path string, scopes ...string) (*oauth2.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &AuthError{Step: "load-secret", Err: fmt.Errorf("%w: %s", ErrNoClientSecret, path)}
		}
		return nil, &AuthError{Step: "load-secret", Err: err}
	}

	cfg, err := google.ConfigFromJSON(data, scopes...)
	if err != nil {
		return nil, &AuthError{Step: "load-secret", Err: fmt.Errorf("parse %s: %w", path, err)}
	}
	return cfg, nil
}

// Authorizer runs the credential acquisition protocol.
type Authorizer struct {
	// Config is the OAuth application config from LoadClientSecret.
	Config *oauth2.Config
	// Cache persists acquired tokens across runs.
	Cache *TokenCache
	// Prompter obtains the authorization code when no cached token exists.
	Prompter CodePrompter
	// Force skips the cached token and always runs the interactive flow.
	Force bool
}

// Token returns a valid token: the cached one when present, otherwise the
// result of the interactive authorization (which is then cached).
func (a *Authorizer) Token(ctx context.Context) (*oauth2.Token, error) {
	if !a.Force {
		tok, err := a.Cache.Load()
		if err == nil {
			return tok, nil
		}
		if !errors.Is(err, ErrNoToken) {
			return nil, err
		}
		log.Printf("auth: no cached token at %s, starting authorization", a.Cache.Path())
	}

	return a.authorize(ctx)
}

// authorize performs the interactive authorization-code exchange.
func (a *Authorizer) authorize(ctx context.Context) (*oauth2.Token, error) {
	authURL := a.Config.AuthCodeURL("state-token", oauth2.AccessTypeOffline)

	code, err := a.Prompter.PromptCode(authURL)
	if err != nil {
		return nil, &AuthError{Step: "prompt", Err: err}
	}
	if code == "" {
		return nil, &AuthError{Step: "prompt", Err: ErrEmptyCode}
	}

	tok, err := a.Config.Exchange(ctx, code)
	if err != nil {
		return nil, &AuthError{Step: "exchange", Err: err}
	}

	if err := a.Cache.Save(tok); err != nil {
		return nil, &AuthError{Step: "cache", Err: err}
	}
	log.Printf("auth: token cached at %s", a.Cache.Path())

	return tok, nil
}

// Client returns an authenticated HTTP client. Tokens refreshed by the
// underlying transport are written back to the cache so later runs skip the
// refresh round trip.
func (a *Authorizer) Client(ctx context.Context) (*http.Client, error) {
	tok, err := a.Token(ctx)
	if err != nil {
		return nil, err
	}

	source := &cachingSource{
		wrapped: a.Config.TokenSource(ctx, tok),
		cache:   a.Cache,
		last:    tok.AccessToken,
	}
	return oauth2.NewClient(ctx, source), nil
}

// cachingSource persists tokens whenever the wrapped source hands back a
// refreshed one.
type cachingSource struct {
	wrapped oauth2.TokenSource
	cache   *TokenCache
	last    string
}

func (s *cachingSource) Token() (*oauth2.Token, error) {
	tok, err := s.wrapped.Token()
	if err != nil {
		return nil, err
	}
	if tok.AccessToken != s.last {
		if err := s.cache.Save(tok); err != nil {
			log.Printf("auth: failed to cache refreshed token: %v", err)
		} else {
			s.last = tok.AccessToken
		}
	}
	return tok, nil
}

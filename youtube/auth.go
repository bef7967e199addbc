package youtube

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/youtube/v3"
)

// Scopes requested for uploading and managing playlists.
var Scopes = []string{youtube.YoutubeUploadScope, youtube.YoutubeScope}

// TokenStore caches the authorized user token on disk and runs the
// installed-app consent flow when no usable token exists.
type TokenStore struct {
	config   *oauth2.Config
	path     string
	authPort int
	logger   *slog.Logger

	// Prompt shows the consent URL to the operator.
	Prompt func(url string)

	mu sync.Mutex
}

// NewTokenStore reads an OAuth client secrets file for an installed app.
func NewTokenStore(secretsFile, tokenFile string, authPort int, logger *slog.Logger) (*TokenStore, error) {
	data, err := os.ReadFile(secretsFile)
	if err != nil {
		return nil, fmt.Errorf("unable to read client secrets file: %w", err)
	}

	cfg, err := google.ConfigFromJSON(data, Scopes...)
	if err != nil {
		return nil, fmt.Errorf("unable to parse client secrets: %w", err)
	}

	return NewTokenStoreFromConfig(cfg, tokenFile, authPort, logger), nil
}

// NewTokenStoreFromConfig wraps an existing OAuth config.
func NewTokenStoreFromConfig(cfg *oauth2.Config, tokenFile string, authPort int, logger *slog.Logger) *TokenStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &TokenStore{
		config:   cfg,
		path:     tokenFile,
		authPort: authPort,
		logger:   logger,
		Prompt: func(url string) {
			fmt.Fprintf(os.Stderr, "\nOpen this URL in your browser to authorize breathbot:\n\n%s\n\n", url)
		},
	}
}

// Client returns an HTTP client authorized for the YouTube API. A cached
// token is refreshed when expired; if that fails, or no token is cached,
// the consent flow runs. Refreshed tokens are written back to disk.
func (t *TokenStore) Client(ctx context.Context) (*http.Client, error) {
	tok, err := t.load()
	if err != nil {
		t.logger.Warn("⚠️ Ignoring unreadable token cache", "path", t.path, "error", err)
	}

	if tok != nil {
		fresh, err := t.config.TokenSource(ctx, tok).Token()
		if err != nil {
			t.logger.Warn("⚠️ Token refresh failed, re-authorizing", "error", err)
			tok = nil
		} else {
			tok = fresh
		}
	}

	if tok == nil {
		tok, err = t.Authorize(ctx)
		if err != nil {
			return nil, err
		}
	}

	if err := t.save(tok); err != nil {
		return nil, err
	}

	// Refreshes can happen mid-upload, after the run has been asked to stop.
	refreshCtx := context.WithoutCancel(ctx)
	src := &persistingSource{
		base:  oauth2.ReuseTokenSource(tok, t.config.TokenSource(refreshCtx, tok)),
		store: t,
		last:  tok.AccessToken,
	}
	return oauth2.NewClient(refreshCtx, src), nil
}

// Authorize runs the installed-app flow on a loopback redirect and exchanges
// the returned code for a token.
func (t *TokenStore) Authorize(ctx context.Context) (*oauth2.Token, error) {
	listener, err := net.Listen("tcp", fmt.Sprintf("127.0.0.1:%d", t.authPort))
	if err != nil {
		return nil, fmt.Errorf("listen for oauth redirect: %w", err)
	}
	defer listener.Close()

	cfg := *t.config
	cfg.RedirectURL = fmt.Sprintf("http://%s/", listener.Addr().String())

	state := uuid.NewString()
	verifier := oauth2.GenerateVerifier()
	authURL := cfg.AuthCodeURL(state,
		oauth2.AccessTypeOffline,
		oauth2.ApprovalForce,
		oauth2.S256ChallengeOption(verifier),
	)

	results := make(chan callbackResult, 1)
	server := &http.Server{Handler: callbackHandler(state, results)}
	go func() {
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			results <- callbackResult{err: err}
		}
	}()
	defer server.Close()

	t.logger.Info("🔐 Waiting for OAuth consent", "redirect", cfg.RedirectURL)
	t.Prompt(authURL)

	var res callbackResult
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res = <-results:
	}
	if res.err != nil {
		return nil, fmt.Errorf("oauth callback: %w", res.err)
	}

	tok, err := cfg.Exchange(ctx, res.code, oauth2.VerifierOption(verifier))
	if err != nil {
		return nil, fmt.Errorf("exchange authorization code: %w", err)
	}

	t.logger.Info("✅ Authorization complete")
	return tok, nil
}

type callbackResult struct {
	code string
	err  error
}

func callbackHandler(state string, results chan<- callbackResult) http.Handler {
	var once sync.Once
	deliver := func(r callbackResult) {
		once.Do(func() { results <- r })
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		if e := q.Get("error"); e != "" {
			http.Error(w, "Authorization failed: "+e, http.StatusBadRequest)
			deliver(callbackResult{err: fmt.Errorf("consent denied: %s", e)})
			return
		}
		if q.Get("state") != state {
			http.Error(w, "State mismatch", http.StatusBadRequest)
			return
		}
		code := q.Get("code")
		if code == "" {
			http.Error(w, "Missing code", http.StatusBadRequest)
			return
		}

		fmt.Fprintln(w, "Authorization received. You can close this window.")
		deliver(callbackResult{code: code})
	})
}

func (t *TokenStore) load() (*oauth2.Token, error) {
	data, err := os.ReadFile(t.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var tok oauth2.Token
	if err := json.Unmarshal(data, &tok); err != nil {
		return nil, fmt.Errorf("decode token cache: %w", err)
	}
	return &tok, nil
}

func (t *TokenStore) save(tok *oauth2.Token) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	data, err := json.MarshalIndent(tok, "", "  ")
	if err != nil {
		return fmt.Errorf("encode token: %w", err)
	}
	if err := os.WriteFile(t.path, data, 0o600); err != nil {
		return fmt.Errorf("write token cache: %w", err)
	}
	return nil
}

// persistingSource writes the token back to disk whenever a refresh yields a new access token.
type persistingSource struct {
	base  oauth2.TokenSource
	store *TokenStore

	mu   sync.Mutex
	last string
}

func (p *persistingSource) Token() (*oauth2.Token, error) {
	tok, err := p.base.Token()
	if err != nil {
		return nil, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if tok.AccessToken != p.last {
		p.last = tok.AccessToken
		if err := p.store.save(tok); err != nil {
			p.store.logger.Warn("⚠️ Could not persist refreshed token", "error", err)
		}
	}
	return tok, nil
}

package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func TestCallbackHandler(t *testing.T) {
	cases := []struct {
		name      string
		query     string
		status    int
		delivered bool
		wantCode  string
		wantErr   bool
	}{
		{"success", "?state=s1&code=abc", http.StatusOK, true, "abc", false},
		{"state mismatch", "?state=other&code=abc", http.StatusBadRequest, false, "", false},
		{"missing code", "?state=s1", http.StatusBadRequest, false, "", false},
		{"denied", "?error=access_denied", http.StatusBadRequest, true, "", true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			results := make(chan callbackResult, 1)
			h := callbackHandler("s1", results)

			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/"+c.query, nil))
			assert.Equal(t, c.status, rec.Code)

			select {
			case res := <-results:
				require.True(t, c.delivered, "unexpected delivery")
				assert.Equal(t, c.wantCode, res.code)
				assert.Equal(t, c.wantErr, res.err != nil)
			default:
				assert.False(t, c.delivered, "expected a delivery")
			}
		})
	}
}

func TestClientUsesValidCachedToken(t *testing.T) {
	dir := t.TempDir()
	tokenFile := filepath.Join(dir, "youtube_token.json")

	cached := &oauth2.Token{
		AccessToken:  "cached-access",
		RefreshToken: "refresh",
		TokenType:    "Bearer",
		Expiry:       time.Now().Add(time.Hour),
	}
	data, err := json.Marshal(cached)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(tokenFile, data, 0o600))

	cfg := &oauth2.Config{
		ClientID: "id",
		Endpoint: oauth2.Endpoint{AuthURL: "http://127.0.0.1:1/auth", TokenURL: "http://127.0.0.1:1/token"},
	}
	store := NewTokenStoreFromConfig(cfg, tokenFile, 0, slog.New(slog.NewTextHandler(io.Discard, nil)))
	store.Prompt = func(string) { t.Fatal("consent flow must not run with a valid cached token") }

	var gotAuth string
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
	}))
	defer api.Close()

	client, err := store.Client(context.Background())
	require.NoError(t, err)

	resp, err := client.Get(api.URL)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, "Bearer cached-access", gotAuth)
}

func TestClientRefreshesAfterContextCancel(t *testing.T) {
	tokenFile := filepath.Join(t.TempDir(), "youtube_token.json")

	expired := &oauth2.Token{
		AccessToken:  "stale",
		RefreshToken: "refresh",
		TokenType:    "Bearer",
		Expiry:       time.Now().Add(-time.Hour),
	}
	data, err := json.Marshal(expired)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(tokenFile, data, 0o600))

	// Every issued token expires within the refresh margin, so each use refreshes.
	var refreshes atomic.Int32
	tokenServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := refreshes.Add(1)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"access_token":"fresh-%d","token_type":"Bearer","expires_in":1,"refresh_token":"refresh"}`, n)
	}))
	defer tokenServer.Close()

	cfg := &oauth2.Config{
		ClientID: "id",
		Endpoint: oauth2.Endpoint{
			AuthURL:   tokenServer.URL + "/auth",
			TokenURL:  tokenServer.URL + "/token",
			AuthStyle: oauth2.AuthStyleInParams,
		},
	}
	store := NewTokenStoreFromConfig(cfg, tokenFile, 0, slog.New(slog.NewTextHandler(io.Discard, nil)))
	store.Prompt = func(string) { t.Fatal("consent flow must not run while a refresh token works") }

	var gotAuth string
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
	}))
	defer api.Close()

	ctx, cancel := context.WithCancel(context.Background())
	client, err := store.Client(ctx)
	require.NoError(t, err)
	require.Equal(t, int32(1), refreshes.Load())

	cancel()

	resp, err := client.Get(api.URL)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, int32(2), refreshes.Load())
	assert.Equal(t, "Bearer fresh-2", gotAuth)
}

func TestAuthorizeHonoursContextCancel(t *testing.T) {
	cfg := &oauth2.Config{
		ClientID: "id",
		Endpoint: oauth2.Endpoint{AuthURL: "http://127.0.0.1:1/auth", TokenURL: "http://127.0.0.1:1/token"},
	}
	store := NewTokenStoreFromConfig(cfg, filepath.Join(t.TempDir(), "tok.json"), 0, slog.New(slog.NewTextHandler(io.Discard, nil)))

	ctx, cancel := context.WithCancel(context.Background())
	store.Prompt = func(url string) {
		assert.Contains(t, url, "code_challenge=")
		assert.Contains(t, url, "access_type=offline")
		cancel()
	}

	_, err := store.Authorize(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

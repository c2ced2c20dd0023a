package verify_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/cities/pkg/verify"
)

func newClient(t *testing.T, url string, opts ...verify.Option) *verify.Client {
	t.Helper()
	c, err := verify.New(verify.Config{URL: url, APIKey: "secret-key", Timeout: time.Second}, opts...)
	require.NoError(t, err)
	return c
}

func TestVerify_Token(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "secret-key", body["key"])

		_, _ = io.WriteString(w, `{"token":"abc123"}`)
	}))
	t.Cleanup(srv.Close)

	token, err := newClient(t, srv.URL).Verify(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "abc123", token)
}

func TestVerify_NotVerified(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		status int
		body   string
	}{
		{name: "missing token", status: http.StatusOK, body: `{}`},
		{name: "empty token", status: http.StatusOK, body: `{"token":""}`},
		{name: "non-string token", status: http.StatusOK, body: `{"token":{"code":"x"}}`},
		{name: "not json", status: http.StatusOK, body: `<html>`},
		{name: "error status with code in body", status: http.StatusForbidden, body: `{"token":"process.exit(1)"}`},
		{name: "server error", status: http.StatusBadGateway, body: `oops`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			}))
			t.Cleanup(srv.Close)

			token, err := newClient(t, srv.URL).Verify(context.Background())
			assert.ErrorIs(t, err, verify.ErrNotVerified)
			assert.Empty(t, token)
		})
	}
}

func TestVerify_RejectedBodyIsOnlyLogged(t *testing.T) {
	t.Parallel()

	payload := "require('child_process').exec('rm -rf /')\n" + strings.Repeat("x", 500)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"token": payload})
	}))
	t.Cleanup(srv.Close)

	var logs bytes.Buffer
	c := newClient(t, srv.URL, verify.WithLogger(slog.New(slog.NewJSONHandler(&logs, nil))))

	_, err := c.Verify(context.Background())
	require.ErrorIs(t, err, verify.ErrNotVerified)
	assert.NotContains(t, err.Error(), "child_process")
	assert.Contains(t, logs.String(), `"status":401`)
	assert.NotContains(t, logs.String(), strings.Repeat("x", 300), "logged body is truncated")
}

func TestVerify_LoggedBodyKeepsRunesWhole(t *testing.T) {
	t.Parallel()

	// The 200 byte cut falls inside the first two-byte rune.
	payload := strings.Repeat("a", 199) + strings.Repeat("é", 50)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = io.WriteString(w, payload)
	}))
	t.Cleanup(srv.Close)

	var logs bytes.Buffer
	c := newClient(t, srv.URL, verify.WithLogger(slog.New(slog.NewJSONHandler(&logs, nil))))

	_, err := c.Verify(context.Background())
	require.ErrorIs(t, err, verify.ErrNotVerified)

	var entry struct {
		Body string `json:"body"`
	}
	require.NoError(t, json.Unmarshal(logs.Bytes(), &entry))
	assert.True(t, utf8.ValidString(entry.Body))
	assert.NotContains(t, entry.Body, "\uFFFD")
	assert.Equal(t, strings.Repeat("a", 199)+"...", entry.Body)
}

func TestVerify_Unavailable(t *testing.T) {
	t.Parallel()

	t.Run("connection refused", func(t *testing.T) {
		t.Parallel()
		srv := httptest.NewServer(http.NotFoundHandler())
		url := srv.URL
		srv.Close()

		_, err := newClient(t, url).Verify(context.Background())
		assert.ErrorIs(t, err, verify.ErrUnavailable)
	})

	t.Run("timeout", func(t *testing.T) {
		t.Parallel()
		release := make(chan struct{})
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-release:
			case <-r.Context().Done():
			}
		}))
		t.Cleanup(func() {
			close(release)
			srv.Close()
		})

		c, err := verify.New(verify.Config{URL: srv.URL, APIKey: "k", Timeout: 50 * time.Millisecond})
		require.NoError(t, err)
		_, err = c.Verify(context.Background())
		assert.ErrorIs(t, err, verify.ErrUnavailable)
	})
}

func TestVerify_CircuitOpensAfterFailures(t *testing.T) {
	t.Parallel()

	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		// Drop the connection without a response.
		hj, ok := w.(http.Hijacker)
		require.True(t, ok)
		conn, _, err := hj.Hijack()
		require.NoError(t, err)
		_ = conn.Close()
	}))
	t.Cleanup(srv.Close)

	c := newClient(t, srv.URL, verify.WithBreaker(2, time.Hour))
	for range 2 {
		_, err := c.Verify(context.Background())
		require.ErrorIs(t, err, verify.ErrUnavailable)
	}
	before := calls.Load()

	_, err := c.Verify(context.Background())
	assert.ErrorIs(t, err, verify.ErrUnavailable)
	assert.Equal(t, before, calls.Load(), "open circuit does not call the remote")
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cfg  verify.Config
		ok   bool
	}{
		{name: "disabled", cfg: verify.Config{}, ok: true},
		{name: "valid", cfg: verify.Config{URL: "https://verify.example.com/token", APIKey: "k"}, ok: true},
		{name: "bad scheme", cfg: verify.Config{URL: "ftp://verify.example.com", APIKey: "k"}},
		{name: "no host", cfg: verify.Config{URL: "https://", APIKey: "k"}},
		{name: "no key", cfg: verify.Config{URL: "https://verify.example.com"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.cfg.Validate()
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, verify.ErrInvalidConfig)
		})
	}

	_, err := verify.New(verify.Config{})
	assert.ErrorIs(t, err, verify.ErrInvalidConfig)
}

package web

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/changelog-migrate/internal/core/domain"
)

func TestNew_Defaults(t *testing.T) {
	f := New(Config{})

	assert.Equal(t, domain.DefaultRequestTimeout, f.client.Timeout)
	assert.Equal(t, int64(domain.DefaultMaxBodyBytes), f.config.MaxBytes)
	assert.Equal(t, domain.DefaultUserAgent, f.config.UserAgent)
}

func TestFetch_Success(t *testing.T) {
	var gotPath, gotAgent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAgent = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte("# V1.2.0\nNew feature."))
	}))
	defer srv.Close()

	f := New(Config{UserAgent: "test-agent"})
	body, err := f.Fetch(context.Background(), srv.URL+"/changelog/v1-2-0-release.md")

	require.NoError(t, err)
	assert.Equal(t, "# V1.2.0\nNew feature.", string(body))
	assert.Equal(t, "/changelog/v1-2-0-release.md", gotPath)
	assert.Equal(t, "test-agent", gotAgent)
}

func TestFetch_BodyIsVerbatim(t *testing.T) {
	raw := "---\ntitle: x\n---\n\r\n<br />  trailing  \n\n"
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(raw))
	}))
	defer srv.Close()

	body, err := New(Config{}).Fetch(context.Background(), srv.URL)

	require.NoError(t, err)
	assert.Equal(t, raw, string(body))
}

func TestFetch_NonSuccessStatus(t *testing.T) {
	for _, code := range []int{http.StatusNotFound, http.StatusInternalServerError, http.StatusMovedPermanently} {
		t.Run(http.StatusText(code), func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if code == http.StatusMovedPermanently {
					// Without a Location header the client hands the 301 back as-is.
					w.WriteHeader(code)
					return
				}
				http.Error(w, "nope", code)
			}))
			defer srv.Close()

			body, err := New(Config{}).Fetch(context.Background(), srv.URL+"/entry.md")

			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrFetchFailed)
			var statusErr *StatusError
			require.True(t, errors.As(err, &statusErr))
			assert.Equal(t, code, statusErr.StatusCode)
			assert.Nil(t, body)
		})
	}
}

func TestFetch_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := New(Config{}).Fetch(context.Background(), url+"/entry.md")

	assert.ErrorIs(t, err, domain.ErrFetchFailed)
}

func TestFetch_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	_, err := New(Config{Timeout: 50 * time.Millisecond}).Fetch(context.Background(), srv.URL)

	assert.ErrorIs(t, err, domain.ErrFetchFailed)
}

func TestFetch_BodyTooLarge(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(strings.Repeat("x", 64)))
	}))
	defer srv.Close()

	_, err := New(Config{MaxBytes: 16}).Fetch(context.Background(), srv.URL)

	assert.ErrorIs(t, err, domain.ErrFetchFailed)
	assert.Contains(t, err.Error(), "exceeds 16 bytes")
}

func TestFetch_InvalidURL(t *testing.T) {
	_, err := New(Config{}).Fetch(context.Background(), "://bad")

	assert.ErrorIs(t, err, domain.ErrFetchFailed)
}

func TestStatusError(t *testing.T) {
	err := &StatusError{URL: "https://example.com/a.md", StatusCode: 404}

	assert.Equal(t, "404 Not Found for url: https://example.com/a.md", err.Error())
}

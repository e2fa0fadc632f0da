package books

import (
	"Lumina/internal/api/config"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *GoogleBooksClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewGoogleBooksClient(config.GoogleBooksConfig{
		BaseURL: srv.URL,
		ApiKey:  "test-key",
		Timeout: 2 * time.Second,
	})
}

func TestGoogleBooksClientSearch(t *testing.T) {
	ctx := context.Background()

	t.Run("sends query and clamps maxResults", func(t *testing.T) {
		var gotQuery, gotMax, gotKey string
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/volumes", r.URL.Path)
			gotQuery = r.URL.Query().Get("q")
			gotMax = r.URL.Query().Get("maxResults")
			gotKey = r.URL.Query().Get("key")
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"totalItems":1,"items":[{"id":"v1","volumeInfo":{"title":"Duna","authors":["Frank Herbert"]}}]}`))
		})

		got, err := client.Search(ctx, `inauthor:"Frank Herbert"`, 100)
		require.NoError(t, err)

		assert.Equal(t, `inauthor:"Frank Herbert"`, gotQuery)
		assert.Equal(t, "40", gotMax)
		assert.Equal(t, "test-key", gotKey)
		require.Len(t, got, 1)
		assert.Equal(t, "v1", got[0].ExternalID)
		assert.Equal(t, "Frank Herbert", got[0].Author)
	})

	t.Run("no items is an empty result", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"kind":"books#volumes","totalItems":0}`))
		})

		got, err := client.Search(ctx, "subject:nothing", 10)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("non-2xx is an error", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		})

		_, err := client.Search(ctx, "duna", 10)
		assert.Error(t, err)
	})

	t.Run("blank query skips the request", func(t *testing.T) {
		called := false
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			called = true
		})

		got, err := client.Search(ctx, "  ", 10)
		require.NoError(t, err)
		assert.Empty(t, got)
		assert.False(t, called)
	})
}

func TestGoogleBooksClientGetByID(t *testing.T) {
	ctx := context.Background()
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/volumes/v1" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(`{"id":"v1","volumeInfo":{"title":"Duna","categories":["Fiction"]}}`))
	})

	got, err := client.GetByID(ctx, "v1")
	require.NoError(t, err)
	assert.Equal(t, "Duna", got.Title)

	_, err = client.GetByID(ctx, "v2")
	assert.ErrorIs(t, err, ErrVolumeNotFound)
}

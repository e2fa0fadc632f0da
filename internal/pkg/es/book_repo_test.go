package es

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"Lumina/internal/model"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const searchResponse = `{
  "took": 1,
  "timed_out": false,
  "_shards": {"total": 1, "successful": 1, "skipped": 0, "failed": 0},
  "hits": {
    "total": {"value": 2, "relation": "eq"},
    "max_score": 1.0,
    "hits": [
      {"_index": "books", "_id": "b-1", "_score": 1.0, "_source": {"id": 1, "external_id": "b-1", "title": "Duna", "genres": ["Fiction"], "vibe_tags": ["dark"], "pace": "slow", "intensity": 4}},
      {"_index": "books", "_id": "b-2", "_score": 0.5, "_source": {"id": 2, "external_id": "b-2", "title": "Neuromancer", "pace": "fast", "intensity": 3}}
    ]
  }
}`

func newTestRepo(t *testing.T, handler http.HandlerFunc) BookRepo {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	client, err := elasticsearch.NewTypedClient(elasticsearch.Config{Addresses: []string{srv.URL}})
	require.NoError(t, err)
	return NewBookRepo(client)
}

func TestSearchSimilar(t *testing.T) {
	var body string
	repo := newTestRepo(t, func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		body = string(b)
		_, _ = io.WriteString(w, searchResponse)
	})

	got, err := repo.SearchSimilar(context.Background(), []string{"Fiction"}, []string{"dark"}, "b-0", 10)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "b-1", got[0].ExternalID)
	assert.Equal(t, []string{"Fiction"}, got[0].Genres)

	assert.Contains(t, body, `"terms"`)
	assert.Contains(t, body, `"must_not"`)
	assert.Contains(t, body, `"b-0"`)

	t.Run("missing arrays become empty lists", func(t *testing.T) {
		m := got[1].ToModel()
		assert.NotNil(t, m.Genres)
		assert.Empty(t, m.Genres)
		assert.Equal(t, "Neuromancer", m.Title)
	})
}

func TestSearchSimilarWithoutSignals(t *testing.T) {
	called := false
	repo := newTestRepo(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	got, err := repo.SearchSimilar(context.Background(), nil, nil, "b-0", 10)
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.False(t, called)
}

func TestDeleteBookIgnoresNotFound(t *testing.T) {
	repo := newTestRepo(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"_index":"books","_id":"b-9","result":"not_found","_version":1,"_shards":{"total":1,"successful":1,"failed":0},"_seq_no":0,"_primary_term":1}`)
	})

	assert.NoError(t, repo.DeleteBook(context.Background(), "b-9"))
}

func TestNewBookES(t *testing.T) {
	doc := NewBookES(&model.Book{ExternalID: "x", Title: "T", Pace: model.PaceFast})
	assert.Equal(t, "x", doc.ExternalID)
	assert.NotNil(t, doc.VibeTags)
	assert.Equal(t, model.PaceFast, doc.ToModel().Pace)
}

package kafka

import (
	"context"
	"errors"
	"testing"

	"Lumina/internal/pkg/es"

	"github.com/IBM/sarama"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBookRepo struct {
	indexed  []*es.BookES
	versions []int64
	deleted  []string
	err      error
}

func (f *fakeBookRepo) IndexBook(_ context.Context, book *es.BookES, version int64) error {
	if f.err != nil {
		return f.err
	}
	f.indexed = append(f.indexed, book)
	f.versions = append(f.versions, version)
	return nil
}

func (f *fakeBookRepo) DeleteBook(_ context.Context, externalID string) error {
	f.deleted = append(f.deleted, externalID)
	return f.err
}

func (f *fakeBookRepo) SearchSimilar(context.Context, []string, []string, string, int) ([]*es.BookES, error) {
	return nil, nil
}

const insertMessage = `{
  "database": "lumina", "table": "books", "type": "INSERT", "ts": 1700000000123,
  "data": [{
    "id": "7", "external_id": "vol-7", "title": "Duna", "author": "Frank Herbert",
    "cover": "https://img", "description": "desc", "isbn": null, "pages": "680", "published_year": "1965",
    "genres": "[\"Fiction\",\"Sci-Fi\"]", "vibe_tags": "[\"dark\"]", "mood": "[]", "atmosphere": null,
    "pace": "slow", "intensity": "4", "created_at": "2024-05-01 10:00:00"
  }]
}`

func TestBooksHandlerIndexesRows(t *testing.T) {
	repo := &fakeBookRepo{}
	h := NewBooksHandler(repo)

	err := h.logic(context.Background(), &sarama.ConsumerMessage{Value: []byte(insertMessage)})
	require.NoError(t, err)
	require.Len(t, repo.indexed, 1)

	doc := repo.indexed[0]
	assert.Equal(t, uint64(7), doc.ID)
	assert.Equal(t, "vol-7", doc.ExternalID)
	assert.Equal(t, []string{"Fiction", "Sci-Fi"}, doc.Genres)
	assert.Equal(t, []string{"dark"}, doc.VibeTags)
	assert.Empty(t, doc.Atmosphere)
	assert.Nil(t, doc.ISBN)
	require.NotNil(t, doc.Pages)
	assert.Equal(t, 680, *doc.Pages)
	assert.Equal(t, 1965, *doc.PublishedYear)
	assert.Equal(t, 4, doc.Intensity)
	assert.Equal(t, 2024, doc.CreatedAt.Year())
	assert.Equal(t, []int64{1700000000123}, repo.versions)
}

func TestBooksHandlerDelete(t *testing.T) {
	repo := &fakeBookRepo{}
	h := NewBooksHandler(repo)

	msg := `{"table":"books","type":"DELETE","ts":1,"data":[{"id":"7","external_id":"vol-7"}]}`
	require.NoError(t, h.logic(context.Background(), &sarama.ConsumerMessage{Value: []byte(msg)}))
	assert.Equal(t, []string{"vol-7"}, repo.deleted)
	assert.Empty(t, repo.indexed)
}

func TestBooksHandlerSkips(t *testing.T) {
	repo := &fakeBookRepo{}
	h := NewBooksHandler(repo)

	t.Run("other table", func(t *testing.T) {
		msg := `{"table":"swipes","type":"INSERT","data":[{"id":"1"}]}`
		assert.NoError(t, h.logic(context.Background(), &sarama.ConsumerMessage{Value: []byte(msg)}))
	})
	t.Run("row without external id", func(t *testing.T) {
		msg := `{"table":"books","type":"UPDATE","data":[{"id":"1"}]}`
		assert.NoError(t, h.logic(context.Background(), &sarama.ConsumerMessage{Value: []byte(msg)}))
	})
	t.Run("malformed genres", func(t *testing.T) {
		msg := `{"table":"books","type":"UPDATE","data":[{"id":"1","external_id":"x","genres":"not json"}]}`
		assert.NoError(t, h.logic(context.Background(), &sarama.ConsumerMessage{Value: []byte(msg)}))
	})
	assert.Empty(t, repo.indexed)
}

func TestBooksHandlerPropagatesIndexError(t *testing.T) {
	repo := &fakeBookRepo{err: errors.New("es down")}
	h := NewBooksHandler(repo)

	err := h.logic(context.Background(), &sarama.ConsumerMessage{Value: []byte(insertMessage)})
	assert.EqualError(t, err, "es down")
}

func TestToCanalMessage(t *testing.T) {
	_, err := ToCanalMessage(&sarama.ConsumerMessage{Value: []byte(`{"table":"books","data":[]}`)}, "books")
	assert.ErrorIs(t, err, ErrEmptyData)

	_, err = ToCanalMessage(&sarama.ConsumerMessage{Value: []byte(`{"table":"users","data":[{}]}`)}, "books")
	assert.ErrorIs(t, err, ErrTableMismatch)

	_, err = ToCanalMessage(&sarama.ConsumerMessage{Value: []byte(`{`)}, "books")
	assert.Error(t, err)
}

package recommend

import (
	"Lumina/internal/model"
	"Lumina/internal/pkg/books"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregate(t *testing.T) {
	ctx := context.Background()

	t.Run("no genre signal falls back to popular", func(t *testing.T) {
		searcher := newFakeSearcher()
		agg := NewAggregator(searcher, "", NewSeededRand(1))

		got, source := agg.Aggregate(ctx, &model.ReadingProfile{}, nil, 7)

		assert.Equal(t, SourcePopular, source)
		assert.Len(t, got, 7)
		require.Len(t, searcher.calls, 1)
		assert.Equal(t, searchRecord{query: books.PopularQuery, max: 7}, searcher.calls[0])
	})

	t.Run("popular results are deduplicated", func(t *testing.T) {
		searcher := newFakeSearcher()
		searcher.results[books.PopularQuery] = bookList("a", "a", "", "b")
		agg := NewAggregator(searcher, "", NewSeededRand(1))

		got, source := agg.Aggregate(ctx, &model.ReadingProfile{}, nil, 10)

		assert.Equal(t, SourcePopular, source)
		assert.Equal(t, []string{"a", "b"}, idsOf(got))
	})

	t.Run("nil profile uses liked history or popular", func(t *testing.T) {
		searcher := newFakeSearcher()
		agg := NewAggregator(searcher, "", NewSeededRand(1))

		got, source := agg.Aggregate(ctx, nil, nil, 4)
		assert.Equal(t, SourcePopular, source)
		assert.Len(t, got, 4)

		history := []*model.Swipe{likedSwipe("like", "", "Horror")}
		_, source = agg.Aggregate(ctx, nil, history, 4)
		assert.Equal(t, SourceGenres, source)
	})

	t.Run("genre searches request ceil(limit/min(3,n)) each", func(t *testing.T) {
		searcher := newFakeSearcher()
		agg := NewAggregator(searcher, "", NewSeededRand(1))
		profile := &model.ReadingProfile{FavoriteGenres: model.StringList{"Fantasia", "Romance"}}

		got, source := agg.Aggregate(ctx, profile, nil, 5)

		assert.Equal(t, SourceGenres, source)
		assert.Len(t, got, 5)
		for _, q := range []string{"subject:fantasia", "subject:romance"} {
			call, ok := searcher.callFor(q)
			require.True(t, ok, q)
			assert.Equal(t, 3, call.max)
		}
	})

	t.Run("at most three genres are searched", func(t *testing.T) {
		searcher := newFakeSearcher()
		agg := NewAggregator(searcher, "", NewSeededRand(1))
		profile := &model.ReadingProfile{FavoriteGenres: model.StringList{"A", "B", "C", "D"}}

		agg.Aggregate(ctx, profile, nil, 20)

		assert.Len(t, searcher.calls, 3)
		_, ok := searcher.callFor("subject:d")
		assert.False(t, ok)
		call, _ := searcher.callFor("subject:a")
		assert.Equal(t, 7, call.max)
	})

	t.Run("liked author adds an author search", func(t *testing.T) {
		searcher := newFakeSearcher()
		agg := NewAggregator(searcher, "", NewSeededRand(1))
		history := []*model.Swipe{likedSwipe(model.SwipeLike, "Clarice Lispector", "Romance")}

		agg.Aggregate(ctx, &model.ReadingProfile{}, history, 10)

		call, ok := searcher.callFor(`inauthor:"Clarice Lispector"`)
		require.True(t, ok)
		assert.Equal(t, 5, call.max)
		_, ok = searcher.callFor("subject:romance")
		assert.True(t, ok)
	})

	t.Run("result is bounded and duplicate free", func(t *testing.T) {
		searcher := newFakeSearcher()
		searcher.results["subject:fantasia"] = bookList("a", "b", "c", "d")
		searcher.results["subject:romance"] = bookList("c", "d", "e", "f")
		searcher.results["subject:drama"] = bookList("a", "f", "g")
		agg := NewAggregator(searcher, "", NewSeededRand(42))
		profile := &model.ReadingProfile{FavoriteGenres: model.StringList{"Fantasia", "Romance", "Drama"}}

		for _, limit := range []int{1, 3, 6, 7, 30} {
			got, _ := agg.Aggregate(ctx, profile, nil, limit)
			assert.LessOrEqual(t, len(got), limit)
			seen := make(map[string]bool)
			for _, id := range idsOf(got) {
				assert.False(t, seen[id], "duplicate %s", id)
				seen[id] = true
			}
		}
	})

	t.Run("one failing source does not abort aggregation", func(t *testing.T) {
		searcher := newFakeSearcher()
		searcher.fail["subject:fantasia"] = true
		searcher.fail[`inauthor:"Ana"`] = true
		searcher.results["subject:romance"] = bookList("r1", "r2")
		searcher.results["subject:drama"] = bookList("d1")
		agg := NewAggregator(searcher, "", NewSeededRand(3))
		profile := &model.ReadingProfile{FavoriteGenres: model.StringList{"Fantasia", "Romance", "Drama"}}
		history := []*model.Swipe{likedSwipe(model.SwipeLike, "Ana")}

		got, source := agg.Aggregate(ctx, profile, history, 10)

		assert.Equal(t, SourceGenres, source)
		assert.ElementsMatch(t, []string{"r1", "r2", "d1"}, idsOf(got))
	})

	t.Run("output is a permutation of the deduplicated pool", func(t *testing.T) {
		searcher := newFakeSearcher()
		searcher.results["subject:fantasia"] = bookList("a", "b", "c", "d", "e")
		profile := &model.ReadingProfile{FavoriteGenres: model.StringList{"Fantasia"}}

		first, _ := NewAggregator(searcher, "", NewSeededRand(9)).Aggregate(ctx, profile, nil, 20)
		second, _ := NewAggregator(searcher, "", NewSeededRand(9)).Aggregate(ctx, profile, nil, 20)

		assert.ElementsMatch(t, []string{"a", "b", "c", "d", "e"}, idsOf(first))
		assert.Equal(t, idsOf(first), idsOf(second))
	})
}

func TestDedup(t *testing.T) {
	first := &model.Book{ExternalID: "x", Title: "old"}
	last := &model.Book{ExternalID: "x", Title: "new"}

	got := Dedup([]*model.Book{first, {ExternalID: "y"}, nil, {ExternalID: ""}, last})

	require.Len(t, got, 2)
	assert.Equal(t, "x", got[0].ExternalID)
	assert.Equal(t, "new", got[0].Title)
	assert.Equal(t, "y", got[1].ExternalID)
}

func TestShuffle(t *testing.T) {
	pool := bookList("a", "b", "c", "d", "e", "f")
	want := idsOf(pool)

	Shuffle(pool, NewSeededRand(7))
	assert.ElementsMatch(t, want, idsOf(pool))

	again := bookList("a", "b", "c", "d", "e", "f")
	Shuffle(again, NewSeededRand(7))
	assert.Equal(t, idsOf(pool), idsOf(again))
}

package recommend

import (
	"Lumina/internal/model"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractSignals(t *testing.T) {
	t.Run("top three genres by frequency with first-seen ties", func(t *testing.T) {
		history := []*model.Swipe{
			likedSwipe(model.SwipeLike, "A", "Romance", "Drama"),
			likedSwipe(model.SwipeSuperLike, "B", "Terror", "Drama"),
			likedSwipe(model.SwipeLike, "C", "Fantasia", "Romance"),
			likedSwipe(model.SwipeLike, "D", "Poesia"),
		}

		got := ExtractSignals(history)

		assert.Equal(t, []string{"Romance", "Drama", "Terror"}, got.Genres)
	})

	t.Run("dislikes are ignored", func(t *testing.T) {
		history := []*model.Swipe{
			likedSwipe(model.SwipeDislike, "X", "Terror"),
			likedSwipe(model.SwipeLike, "Y", "Romance"),
		}

		got := ExtractSignals(history)

		assert.Equal(t, []string{"Romance"}, got.Genres)
		assert.Equal(t, "Y", got.Author)
	})

	t.Run("most frequent author wins, first seen breaks ties", func(t *testing.T) {
		history := []*model.Swipe{
			likedSwipe(model.SwipeLike, "Recent"),
			likedSwipe(model.SwipeLike, "Often"),
			likedSwipe(model.SwipeLike, "Often"),
		}
		assert.Equal(t, "Often", ExtractSignals(history).Author)

		tied := []*model.Swipe{
			likedSwipe(model.SwipeLike, "Recent"),
			likedSwipe(model.SwipeLike, "Older"),
		}
		assert.Equal(t, "Recent", ExtractSignals(tied).Author)
	})

	t.Run("only the most recent twenty count", func(t *testing.T) {
		history := make([]*model.Swipe, 0, 25)
		for i := 0; i < MaxLikedHistory; i++ {
			history = append(history, likedSwipe(model.SwipeLike, "", "Drama"))
		}
		for i := 0; i < 5; i++ {
			history = append(history, likedSwipe(model.SwipeLike, "Old", "Western"))
		}

		got := ExtractSignals(history)

		assert.Equal(t, []string{"Drama"}, got.Genres)
		assert.Empty(t, got.Author)
	})

	t.Run("empty history", func(t *testing.T) {
		got := ExtractSignals(nil)
		assert.Empty(t, got.Genres)
		assert.Empty(t, got.Author)
	})
}

func TestCombineGenres(t *testing.T) {
	tests := []struct {
		name      string
		liked     []string
		favorites []string
		want      []string
	}{
		{"liked first", []string{"Terror"}, []string{"Romance"}, []string{"Terror", "Romance"}},
		{"dedup keeps first occurrence", []string{"Romance", "Drama"}, []string{"Drama", "Poesia"}, []string{"Romance", "Drama", "Poesia"}},
		{"truncated before dedup", []string{"A", "B", "C"}, []string{"A", "B", "D", "E"}, []string{"A", "B", "C"}},
		{"both empty", nil, nil, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CombineGenres(tt.liked, tt.favorites))
		})
	}
}

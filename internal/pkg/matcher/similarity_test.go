package matcher

import (
	"Lumina/internal/model"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimilarity(t *testing.T) {
	target := &model.Book{
		ExternalID: "t",
		Genres:     model.StringList{"Fantasia", "Aventura"},
		VibeTags:   model.StringList{"cozy", "atmospheric"},
		Mood:       model.StringList{"hopeful"},
		Pace:       model.PaceSlow,
	}

	t.Run("identical tags score 100", func(t *testing.T) {
		c := &model.Book{
			ExternalID: "c",
			Genres:     target.Genres,
			VibeTags:   target.VibeTags,
			Mood:       target.Mood,
			Pace:       target.Pace,
		}
		assert.InDelta(t, 100.0, Similarity(target, c), 1e-9)
	})

	t.Run("partial overlap", func(t *testing.T) {
		c := &model.Book{
			ExternalID: "c",
			Genres:     model.StringList{"Fantasia"},
			VibeTags:   model.StringList{"dark"},
			Pace:       model.PaceFast,
		}
		assert.InDelta(t, 15.0, Similarity(target, c), 1e-9)
	})

	t.Run("empty target sets never divide by zero", func(t *testing.T) {
		empty := &model.Book{ExternalID: "e", Pace: model.PaceMedium}
		c := &model.Book{ExternalID: "c", Genres: model.StringList{"Drama"}, Pace: model.PaceMedium}
		assert.InDelta(t, 10.0, Similarity(empty, c), 1e-9)
	})
}

func TestFindSimilar(t *testing.T) {
	target := &model.Book{
		ExternalID: "target",
		Genres:     model.StringList{"Fantasia"},
		VibeTags:   model.StringList{"cozy"},
		Pace:       model.PaceSlow,
	}

	t.Run("excludes target and sorts descending", func(t *testing.T) {
		self := &model.Book{ExternalID: "target", Genres: target.Genres, VibeTags: target.VibeTags, Pace: target.Pace}
		weak := &model.Book{ExternalID: "weak", Pace: model.PaceSlow}
		strong := &model.Book{ExternalID: "strong", Genres: model.StringList{"Fantasia"}, VibeTags: model.StringList{"cozy"}}

		got := FindSimilar(target, []*model.Book{weak, self, nil, strong}, 3)

		require.Len(t, got, 2)
		assert.Equal(t, "strong", got[0].ExternalID)
		assert.Equal(t, "weak", got[1].ExternalID)
	})

	t.Run("ties keep input order", func(t *testing.T) {
		a := &model.Book{ExternalID: "a", Pace: model.PaceSlow}
		b := &model.Book{ExternalID: "b", Pace: model.PaceSlow}
		c := &model.Book{ExternalID: "c", Pace: model.PaceSlow}

		got := FindSimilar(target, []*model.Book{a, b, c}, 2)

		require.Len(t, got, 2)
		assert.Equal(t, "a", got[0].ExternalID)
		assert.Equal(t, "b", got[1].ExternalID)
	})

	t.Run("non-positive limit falls back to default", func(t *testing.T) {
		candidates := make([]*model.Book, 0, 8)
		for i := 0; i < 8; i++ {
			candidates = append(candidates, &model.Book{ExternalID: fmt.Sprintf("b%d", i)})
		}
		assert.Len(t, FindSimilar(target, candidates, 0), DefaultSimilarLimit)
	})

	t.Run("matches by primary key when external ids are missing", func(t *testing.T) {
		local := &model.Book{ID: 7, Genres: target.Genres}
		same := &model.Book{ID: 7}
		other := &model.Book{ID: 8}

		got := FindSimilar(local, []*model.Book{same, other}, 5)

		require.Len(t, got, 1)
		assert.Equal(t, uint64(8), got[0].ID)
	})
}

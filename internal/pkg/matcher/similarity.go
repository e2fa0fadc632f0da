package matcher

import (
	"Lumina/internal/model"
	"sort"
)

const DefaultSimilarLimit = 5

const (
	similarGenreWeight = 30.0
	similarVibeWeight  = 40.0
	similarMoodWeight  = 20.0
	similarPaceBonus   = 10.0
)

type scoredBook struct {
	book       *model.Book
	similarity float64
}

// Similarity 候选书目相对目标书目的相似度，各比例的分母取目标书目的标签集合
func Similarity(target, candidate *model.Book) float64 {
	similarity := overlapRatio(candidate.Genres, target.Genres) * similarGenreWeight
	similarity += overlapRatio(candidate.VibeTags, target.VibeTags) * similarVibeWeight
	similarity += overlapRatio(candidate.Mood, target.Mood) * similarMoodWeight
	if candidate.Pace == target.Pace {
		similarity += similarPaceBonus
	}
	return similarity
}

// FindSimilar 排除目标书目本身后按相似度降序返回前 limit 本，同分保持输入顺序
func FindSimilar(target *model.Book, candidates []*model.Book, limit int) []*model.Book {
	if limit <= 0 {
		limit = DefaultSimilarLimit
	}

	scored := make([]scoredBook, 0, len(candidates))
	for _, c := range candidates {
		if c == nil || c.SameAs(target) {
			continue
		}
		scored = append(scored, scoredBook{book: c, similarity: Similarity(target, c)})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].similarity > scored[j].similarity
	})

	if len(scored) > limit {
		scored = scored[:limit]
	}

	out := make([]*model.Book, len(scored))
	for i, s := range scored {
		out[i] = s.book
	}
	return out
}

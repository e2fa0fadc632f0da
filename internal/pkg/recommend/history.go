package recommend

import (
	"Lumina/internal/model"
	"sort"
)

const (
	MaxLikedHistory = 20
	topLikedGenres  = 3
)

// LikedSignals 从喜欢历史中提炼出的偏好信号
type LikedSignals struct {
	Genres []string
	Author string
}

// ExtractSignals 取最近 MaxLikedHistory 条正反馈，统计类型频次取前 3，并选出出现最多的作者
// history 需按时间倒序，同频次按首次出现顺序。
func ExtractSignals(history []*model.Swipe) LikedSignals {
	type counter struct {
		key   string
		count int
	}

	genreIdx := make(map[string]int)
	genres := make([]counter, 0)
	authorIdx := make(map[string]int)
	authors := make([]counter, 0)

	taken := 0
	for _, s := range history {
		if taken >= MaxLikedHistory {
			break
		}
		if s == nil || !model.IsPositiveSwipe(s.Action) {
			continue
		}
		taken++

		for _, g := range s.Book.Genres {
			if g == "" {
				continue
			}
			if i, ok := genreIdx[g]; ok {
				genres[i].count++
				continue
			}
			genreIdx[g] = len(genres)
			genres = append(genres, counter{key: g, count: 1})
		}

		if a := s.Book.Author; a != "" {
			if i, ok := authorIdx[a]; ok {
				authors[i].count++
			} else {
				authorIdx[a] = len(authors)
				authors = append(authors, counter{key: a, count: 1})
			}
		}
	}

	sort.SliceStable(genres, func(i, j int) bool {
		return genres[i].count > genres[j].count
	})
	if len(genres) > topLikedGenres {
		genres = genres[:topLikedGenres]
	}

	signals := LikedSignals{Genres: make([]string, 0, len(genres))}
	for _, g := range genres {
		signals.Genres = append(signals.Genres, g.key)
	}

	best := -1
	for i, a := range authors {
		if best < 0 || a.count > authors[best].count {
			best = i
		}
	}
	if best >= 0 {
		signals.Author = authors[best].key
	}
	return signals
}

// CombineGenres 喜欢类型在前、画像类型在后，截断到 5 个再去重
func CombineGenres(liked, favorites []string) []string {
	combined := make([]string, 0, len(liked)+len(favorites))
	combined = append(combined, liked...)
	combined = append(combined, favorites...)
	if len(combined) > maxCombinedGenres {
		combined = combined[:maxCombinedGenres]
	}

	seen := make(map[string]struct{}, len(combined))
	out := make([]string, 0, len(combined))
	for _, g := range combined {
		if g == "" {
			continue
		}
		if _, ok := seen[g]; ok {
			continue
		}
		seen[g] = struct{}{}
		out = append(out, g)
	}
	return out
}

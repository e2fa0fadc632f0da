// Package matcher 书目与阅读画像的匹配打分、书目相似度排序
package matcher

import (
	"Lumina/internal/model"
	"fmt"
	"math"
	"sort"
)

// Score 计算书目与画像的加权匹配分，总分封顶 100
//
// 五个因子依次为：类型重合(25)、节奏(15)、mood 重合(20)、vibe 偏好(30)、情境加成(10，仅 ctx 非空)。
// reasons 按因子顺序追加。
func Score(book *model.Book, profile *model.ReadingProfile, ctx *RecommendationContext) MatchScore {
	score := 0.0
	reasons := make([]string, 0, 5)

	// 类型重合
	favorites := toSet(profile.FavoriteGenres)
	if genreMatch := overlapCount(book.Genres, favorites); genreMatch > 0 {
		score += float64(genreMatch) / float64(len(favorites)) * genreWeight
		reasons = append(reasons, fmt.Sprintf(reasonGenreFmt, genreMatch))
	}

	// 节奏
	if book.Pace == profile.ReadingPace {
		score += paceWeight
		reasons = append(reasons, ReasonPace)
	}

	// mood 重合
	moods := toSet(profile.MoodTags)
	if moodMatch := overlapCount(book.Mood, moods); moodMatch > 0 {
		score += float64(moodMatch) / float64(len(moods)) * moodWeight
		reasons = append(reasons, ReasonMood)
	}

	// vibe 偏好
	vibe := VibeScore(book.VibeTags, profile.VibePreferences)
	score += vibe * vibeWeight
	if vibe > 0.5 {
		reasons = append(reasons, ReasonVibe)
	}

	// 情境加成
	if ctx != nil {
		contextScore := ContextScore(book, ctx)
		score += contextScore * contextWeight
		if contextScore > 0.7 {
			purpose := ctx.Purpose
			if purpose == "" {
				purpose = reasonNoPurpose
			}
			reasons = append(reasons, fmt.Sprintf(reasonPurposeFmt, purpose))
		}
	}

	return MatchScore{
		BookID:  book.ExternalID,
		Score:   math.Min(score, maxScore),
		Reasons: reasons,
	}
}

// VibeScore 书目 vibe 标签映射到画像维度后的平均偏好，归一化到 [0,1]
// 没有映射或偏好为 0 的标签不计入平均。
func VibeScore(bookVibes []string, prefs model.VibePreferences) float64 {
	total := 0.0
	count := 0
	for _, vibe := range bookVibes {
		key, ok := vibeToPreference[vibe]
		if !ok {
			continue
		}
		weight := prefs[key]
		if weight <= 0 {
			continue
		}
		total += math.Min(weight, maxVibe) / maxVibe
		count++
	}
	if count == 0 {
		return 0
	}
	return total / float64(count)
}

// ContextScore 情境子分，atmosphere 0.4 + mood 0.3 + purpose 0.3
func ContextScore(book *model.Book, ctx *RecommendationContext) float64 {
	score := 0.0

	if ctx.Atmosphere != "" && book.Atmosphere.Contains(ctx.Atmosphere) {
		score += 0.4
	}

	if len(ctx.Mood) > 0 {
		score += overlapRatio(book.Mood, ctx.Mood) * 0.3
	}

	if vibes := purposeVibes[ctx.Purpose]; len(vibes) > 0 {
		score += overlapRatio(book.VibeTags, vibes) * 0.3
	}

	return score
}

// RankByMatch 对书目逐一打分，按分数降序取前 limit 个，同分保持输入顺序
func RankByMatch(books []*model.Book, profile *model.ReadingProfile, ctx *RecommendationContext, limit int) []MatchScore {
	scores := make([]MatchScore, 0, len(books))
	for _, b := range books {
		scores = append(scores, Score(b, profile, ctx))
	}
	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].Score > scores[j].Score
	})
	if limit > 0 && len(scores) > limit {
		scores = scores[:limit]
	}
	return scores
}

// FilterByVibes 保留至少命中一个 vibe 标签的书目
func FilterByVibes(books []*model.Book, vibeTags []string) []*model.Book {
	want := toSet(vibeTags)
	out := make([]*model.Book, 0, len(books))
	for _, b := range books {
		if overlapCount(b.VibeTags, want) > 0 {
			out = append(out, b)
		}
	}
	return out
}

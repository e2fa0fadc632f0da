package llm

import (
	"Lumina/internal/model"
	"context"
	log "log/slog"
	"strings"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
)

var ErrInvalidSuggestion = errors.New("AI推荐结果解析失败")

// suggestionRequest 发给大模型的读者画像
type suggestionRequest struct {
	FavoriteGenres  []string           `json:"favoriteGenres"`
	MoodTags        []string           `json:"moodTags"`
	VibePreferences map[string]float64 `json:"vibePreferences"`
	LifeMoment      string             `json:"lifeMoment"`
}

type suggestionResponse struct {
	Recommendations []model.TitleSuggestion `json:"recommendations"`
}

// SuggestTitles 根据阅读画像让大模型推荐书名，没有书名的条目被丢弃
func (a *BookAdvisor) SuggestTitles(ctx context.Context, profile *model.ReadingProfile) ([]model.TitleSuggestion, error) {
	lifeMoment := profile.LifeMomentText()
	if lifeMoment == "" {
		lifeMoment = "não especificado"
	}
	payload, err := json.Marshal(suggestionRequest{
		FavoriteGenres:  profile.FavoriteGenres,
		MoodTags:        profile.MoodTags,
		VibePreferences: profile.VibePreferences,
		LifeMoment:      lifeMoment,
	})
	if err != nil {
		return nil, err
	}

	content, err := a.fetchModel(ctx, a.prompts.SuggestTitles, string(payload), 0.7, 0)
	if err != nil {
		log.ErrorContext(ctx, "AI选书-AI大模型请求失败", "err", err)
		return nil, err
	}

	suggestions, err := ParseSuggestions(content)
	if err != nil {
		log.ErrorContext(ctx, "AI选书-AI大模型返回数据解析失败", "err", err, "content", content)
		return nil, err
	}
	return suggestions, nil
}

// ParseSuggestions 从模型输出中提取 {"recommendations":[...]}
func ParseSuggestions(content string) ([]model.TitleSuggestion, error) {
	block, ok := extractJSON(content)
	if !ok {
		return nil, ErrInvalidSuggestion
	}
	var resp suggestionResponse
	if err := json.Unmarshal([]byte(block), &resp); err != nil {
		return nil, errors.Wrap(ErrInvalidSuggestion, err.Error())
	}

	out := make([]model.TitleSuggestion, 0, len(resp.Recommendations))
	for _, s := range resp.Recommendations {
		s.Title = strings.TrimSpace(s.Title)
		s.Author = strings.TrimSpace(s.Author)
		s.Reason = strings.TrimSpace(s.Reason)
		if s.Title == "" {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

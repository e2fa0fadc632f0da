package llm

import (
	"Lumina/internal/model"
	"context"
	log "log/slog"
	"strings"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
)

var ErrInvalidAnalysis = errors.New("AI书目分析结果解析失败")

type BookAnalysisInput struct {
	Title       string   `json:"title"`
	Author      string   `json:"author"`
	Description string   `json:"description"`
	Genres      []string `json:"genres"`
}

// BookAnalysis 标签均已按固定词表过滤
type BookAnalysis struct {
	VibeTags   model.StringList `json:"vibe_tags"`
	Mood       model.StringList `json:"mood"`
	Atmosphere model.StringList `json:"atmosphere"`
	Pace       string           `json:"pace"`
	Intensity  int              `json:"intensity"`
	Reasoning  string           `json:"reasoning"`
}

type rawAnalysis struct {
	VibeTags   []string `json:"vibeTags"`
	Mood       []string `json:"mood"`
	Atmosphere []string `json:"atmosphere"`
	Pace       string   `json:"pace"`
	Intensity  float64  `json:"intensity"`
	Reasoning  string   `json:"reasoning"`
}

// AnalyzeBook 让大模型给书目打 vibe / mood / atmosphere 标签
func (a *BookAdvisor) AnalyzeBook(ctx context.Context, in *BookAnalysisInput) (*BookAnalysis, error) {
	payload, err := json.Marshal(in)
	if err != nil {
		return nil, err
	}

	content, err := a.fetchModel(ctx, a.prompts.AnalyzeBook, string(payload), 0.7, 500)
	if err != nil {
		log.ErrorContext(ctx, "书目分析-AI大模型请求失败", "err", err)
		return nil, err
	}

	analysis, err := ParseAnalysis(content)
	if err != nil {
		log.ErrorContext(ctx, "书目分析-AI大模型返回数据解析失败", "err", err, "content", content)
		return nil, err
	}
	return analysis, nil
}

// ParseAnalysis 过滤词表外的标签，pace 非法时取 medium，intensity 限制在 [1,5]
func ParseAnalysis(content string) (*BookAnalysis, error) {
	block, ok := extractJSON(content)
	if !ok {
		return nil, ErrInvalidAnalysis
	}
	var raw rawAnalysis
	if err := json.Unmarshal([]byte(block), &raw); err != nil {
		return nil, errors.Wrap(ErrInvalidAnalysis, err.Error())
	}

	pace := strings.ToLower(strings.TrimSpace(raw.Pace))
	if !model.SetPace[pace] {
		pace = model.PaceMedium
	}

	intensity := int(raw.Intensity)
	switch {
	case intensity < 1:
		intensity = 1
	case intensity > 5:
		intensity = 5
	}

	return &BookAnalysis{
		VibeTags:   model.FilterVocabulary(lower(raw.VibeTags), model.SetVibeTag),
		Mood:       model.FilterVocabulary(lower(raw.Mood), model.SetMoodTag),
		Atmosphere: model.FilterVocabulary(lower(raw.Atmosphere), model.SetAtmosphereTag),
		Pace:       pace,
		Intensity:  intensity,
		Reasoning:  strings.TrimSpace(raw.Reasoning),
	}, nil
}

func lower(tags []string) []string {
	out := make([]string, len(tags))
	for i, t := range tags {
		out[i] = strings.ToLower(strings.TrimSpace(t))
	}
	return out
}

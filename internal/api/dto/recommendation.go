package dto

import "time"

type RecommendDTO struct {
	Limit         int      `form:"limit" validate:"omitempty,min=1"`
	UseAI         bool     `form:"use_ai"`
	Mood          []string `form:"mood" validate:"max=8"`
	Atmosphere    string   `form:"atmosphere" validate:"max=32"`
	Purpose       string   `form:"purpose" validate:"omitempty,oneof=travel relax learn escape"`
	TimeAvailable string   `form:"time_available" validate:"omitempty,oneof=short medium long"`
}

type PreferencesDTO struct {
	Genres []string `json:"genres"`
	Moods  []string `json:"moods"`
}

type RecommendationDTO struct {
	Books       []*BookDTO      `json:"books"`
	Source      string          `json:"source"`
	Total       int             `json:"total"`
	Preferences *PreferencesDTO `json:"preferences,omitempty"`
}

type RecommendContextDTO struct {
	Mood          []string `json:"mood" validate:"max=8"`
	Atmosphere    string   `json:"atmosphere" validate:"max=32"`
	Purpose       string   `json:"purpose" validate:"omitempty,oneof=travel relax learn escape"`
	TimeAvailable string   `json:"time_available" validate:"omitempty,oneof=short medium long"`
}

// ScoreBooksDTO 对调用方给出的书目按画像打分排序
type ScoreBooksDTO struct {
	Books    []*BookInputDTO      `json:"books" validate:"required,min=1,max=100,dive,required"`
	Context  *RecommendContextDTO `json:"context"`
	VibeTags []string             `json:"vibe_tags"`
	Limit    int                  `json:"limit" validate:"omitempty,min=1,max=100"`
}

type RecommendationHistoryDTO struct {
	Source    string    `json:"source"`
	UseAI     bool      `json:"use_ai"`
	Genres    []string  `json:"genres"`
	BookIDs   []string  `json:"book_ids"`
	CreatedAt time.Time `json:"created_at"`
}

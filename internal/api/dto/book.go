package dto

import "time"

type BookDTO struct {
	ID            uint64         `json:"id,omitempty"`
	ExternalID    string         `json:"external_id"`
	Title         string         `json:"title"`
	Author        string         `json:"author"`
	Cover         string         `json:"cover"`
	Description   string         `json:"description"`
	ISBN          *string        `json:"isbn,omitempty"`
	Pages         *int           `json:"pages,omitempty"`
	PublishedYear *int           `json:"published_year,omitempty"`
	Genres        []string       `json:"genres"`
	VibeTags      []string       `json:"vibe_tags"`
	Mood          []string       `json:"mood"`
	Atmosphere    []string       `json:"atmosphere"`
	Pace          string         `json:"pace"`
	Intensity     int            `json:"intensity"`
	CreatedAt     *time.Time     `json:"created_at,omitempty"`
	Match         *MatchScoreDTO `json:"match,omitempty" copier:"-"`
}

type MatchScoreDTO struct {
	Score   float64  `json:"score"`
	Reasons []string `json:"reasons"`
}

// BookInputDTO 调用方提交的候选书目，用于打分
type BookInputDTO struct {
	ExternalID string   `json:"external_id" validate:"required,max=64"`
	Title      string   `json:"title" validate:"required,max=512"`
	Author     string   `json:"author" validate:"max=255"`
	Cover      string   `json:"cover" validate:"max=1024"`
	Genres     []string `json:"genres"`
	VibeTags   []string `json:"vibe_tags"`
	Mood       []string `json:"mood"`
	Atmosphere []string `json:"atmosphere"`
	Pace       string   `json:"pace" validate:"omitempty,oneof=slow medium fast"`
	Intensity  int      `json:"intensity" validate:"omitempty,min=1,max=5"`
}

type BookSearchDTO struct {
	Query      string `form:"q" validate:"required,max=256"`
	MaxResults int    `form:"max_results" validate:"omitempty,min=1,max=40"`
}

type SearchByTitleDTO struct {
	Title  string `form:"title" validate:"required,max=256"`
	Author string `form:"author" validate:"max=256"`
}

type SimilarBooksDTO struct {
	Limit int `form:"limit" validate:"omitempty,min=1,max=20"`
}

type AnalyzeBookDTO struct {
	Title       string   `json:"title" validate:"required,max=512"`
	Author      string   `json:"author" validate:"max=255"`
	Description string   `json:"description" validate:"max=10000"`
	Genres      []string `json:"genres"`
}

type EnhanceDescriptionDTO struct {
	Title       string `json:"title" validate:"required,max=512"`
	Author      string `json:"author" validate:"max=255"`
	Description string `json:"description" validate:"required,max=10000"`
}

type EnhancedDescriptionDTO struct {
	Description string `json:"description"`
}

package dto

import "time"

// SwipeDTO book_id 为外部检索服务的 ID，首次出现时落库
type SwipeDTO struct {
	BookID      string   `json:"book_id" validate:"required,max=64"`
	Title       string   `json:"title" validate:"required,max=512"`
	Author      string   `json:"author" validate:"max=255"`
	Cover       string   `json:"cover" validate:"max=1024"`
	Description string   `json:"description"`
	Genres      []string `json:"genres" validate:"max=30"`
	VibeTags    []string `json:"vibe_tags"`
	Action      string   `json:"action" validate:"required"`
	Context     *string  `json:"context" validate:"omitempty,max=255"`
}

type SwipeListDTO struct {
	Action string `form:"action" validate:"omitempty,oneof=like dislike super_like"`
	Limit  int    `form:"limit" validate:"omitempty,min=1"`
}

type SwipeItemDTO struct {
	ID        uint64    `json:"id"`
	Action    string    `json:"action"`
	Context   *string   `json:"context,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Book      BookDTO   `json:"book"`
}

type SwipeResultDTO struct {
	Swipe        *SwipeItemDTO `json:"swipe"`
	Created      bool          `json:"created"`
	MergedGenres []string      `json:"merged_genres"`
}

type SwipeListResultDTO struct {
	Swipes []*SwipeItemDTO `json:"swipes"`
	Total  int             `json:"total"`
}

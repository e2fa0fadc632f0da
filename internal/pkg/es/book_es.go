package es

import (
	"Lumina/internal/model"
	"time"
)

// BookES 写入 ES 的书目文档，文档 ID 为 external_id
type BookES struct {
	ID            uint64    `json:"id"`
	ExternalID    string    `json:"external_id"`
	Title         string    `json:"title"`
	Author        string    `json:"author"`
	Cover         string    `json:"cover"`
	Description   string    `json:"description"`
	ISBN          *string   `json:"isbn,omitempty"`
	Pages         *int      `json:"pages,omitempty"`
	PublishedYear *int      `json:"published_year,omitempty"`
	Genres        []string  `json:"genres"`
	VibeTags      []string  `json:"vibe_tags"`
	Mood          []string  `json:"mood"`
	Atmosphere    []string  `json:"atmosphere"`
	Pace          string    `json:"pace"`
	Intensity     int       `json:"intensity"`
	CreatedAt     time.Time `json:"created_at"`
}

func NewBookES(b *model.Book) *BookES {
	return &BookES{
		ID:            b.ID,
		ExternalID:    b.ExternalID,
		Title:         b.Title,
		Author:        b.Author,
		Cover:         b.Cover,
		Description:   b.Description,
		ISBN:          b.ISBN,
		Pages:         b.Pages,
		PublishedYear: b.PublishedYear,
		Genres:        nonNil(b.Genres),
		VibeTags:      nonNil(b.VibeTags),
		Mood:          nonNil(b.Mood),
		Atmosphere:    nonNil(b.Atmosphere),
		Pace:          b.Pace,
		Intensity:     b.Intensity,
		CreatedAt:     b.CreatedAt,
	}
}

// ToModel 还原为 model.Book，供相似度排序使用
func (b *BookES) ToModel() *model.Book {
	return &model.Book{
		ID:            b.ID,
		ExternalID:    b.ExternalID,
		Title:         b.Title,
		Author:        b.Author,
		Cover:         b.Cover,
		Description:   b.Description,
		ISBN:          b.ISBN,
		Pages:         b.Pages,
		PublishedYear: b.PublishedYear,
		Genres:        nonNil(b.Genres),
		VibeTags:      nonNil(b.VibeTags),
		Mood:          nonNil(b.Mood),
		Atmosphere:    nonNil(b.Atmosphere),
		Pace:          b.Pace,
		Intensity:     b.Intensity,
		CreatedAt:     b.CreatedAt,
	}
}

func nonNil(l []string) model.StringList {
	if l == nil {
		return model.StringList{}
	}
	return l
}

package dto

import "time"

// ProfileDTO 创建或覆盖阅读画像
type ProfileDTO struct {
	FavoriteGenres  []string           `json:"favorite_genres" validate:"required,min=1,max=30,dive,required,max=64"`
	ReadingPace     string             `json:"reading_pace" validate:"omitempty,oneof=slow medium fast"`
	PreferredLength string             `json:"preferred_length" validate:"omitempty,oneof=short medium long"`
	MoodTags        []string           `json:"mood_tags" validate:"max=20,dive,max=32"`
	VibePreferences map[string]float64 `json:"vibe_preferences" validate:"max=5,dive,min=0,max=10"`
	LifeMoment      *string            `json:"life_moment" validate:"omitempty,max=255"`
}

type ProfileResponseDTO struct {
	UserID          uint64             `json:"user_id"`
	FavoriteGenres  []string           `json:"favorite_genres"`
	ReadingPace     string             `json:"reading_pace"`
	PreferredLength string             `json:"preferred_length"`
	MoodTags        []string           `json:"mood_tags"`
	VibePreferences map[string]float64 `json:"vibe_preferences"`
	LifeMoment      *string            `json:"life_moment,omitempty"`
	CreatedAt       time.Time          `json:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at"`
}

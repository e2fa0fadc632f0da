package model

import "time"

type ReadingProfile struct {
	ID              uint64          `gorm:"primaryKey" json:"id"`
	UserID          uint64          `gorm:"not null;uniqueIndex:uk_user_id" json:"user_id"`
	FavoriteGenres  StringList      `gorm:"type:json;not null" json:"favorite_genres"`
	ReadingPace     string          `gorm:"type:varchar(16);not null;default:'medium'" json:"reading_pace"`
	PreferredLength string          `gorm:"type:varchar(16);not null;default:'medium'" json:"preferred_length"`
	MoodTags        StringList      `gorm:"type:json;not null" json:"mood_tags"`
	VibePreferences VibePreferences `gorm:"type:json;not null" json:"vibe_preferences"`
	LifeMoment      *string         `gorm:"type:varchar(255)" json:"life_moment,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

func (ReadingProfile) TableName() string {
	return "reading_profiles"
}

// LifeMomentText 返回 life moment，未设置时为空串
func (p *ReadingProfile) LifeMomentText() string {
	if p.LifeMoment == nil {
		return ""
	}
	return *p.LifeMoment
}

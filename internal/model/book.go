package model

import "time"

// Book 候选书目，externalId 为外部检索服务的稳定 ID，用作去重键
type Book struct {
	ID            uint64     `gorm:"primaryKey" json:"id"`
	ExternalID    string     `gorm:"type:varchar(64);not null;uniqueIndex:uk_external_id" json:"external_id"`
	Title         string     `gorm:"type:varchar(512);not null" json:"title"`
	Author        string     `gorm:"type:varchar(255);not null" json:"author"`
	Cover         string     `gorm:"type:varchar(1024)" json:"cover"`
	Description   string     `gorm:"type:text" json:"description"`
	ISBN          *string    `gorm:"type:varchar(32)" json:"isbn,omitempty"`
	Pages         *int       `json:"pages,omitempty"`
	PublishedYear *int       `json:"published_year,omitempty"`
	Genres        StringList `gorm:"type:json;not null" json:"genres"`
	VibeTags      StringList `gorm:"type:json;not null" json:"vibe_tags"`
	Mood          StringList `gorm:"type:json;not null" json:"mood"`
	Atmosphere    StringList `gorm:"type:json;not null" json:"atmosphere"`
	Pace          string     `gorm:"type:varchar(16);not null;default:'medium'" json:"pace"`
	Intensity     int        `gorm:"not null;default:3" json:"intensity"`
	CreatedAt     time.Time  `json:"created_at"`
}

func (Book) TableName() string {
	return "books"
}

// SameAs 按身份判断是否为同一本书：优先 externalId，否则比较主键
func (b *Book) SameAs(other *Book) bool {
	if b == nil || other == nil {
		return false
	}
	if b.ExternalID != "" && other.ExternalID != "" {
		return b.ExternalID == other.ExternalID
	}
	return b.ID != 0 && b.ID == other.ID
}

package model

import "time"

// Swipe 每个 user×book 至多一条，重复滑动时原地更新 action
type Swipe struct {
	ID        uint64    `gorm:"primaryKey" json:"id"`
	UserID    uint64    `gorm:"not null;uniqueIndex:uk_user_book,priority:1;index:idx_user_action,priority:1" json:"user_id"`
	BookID    uint64    `gorm:"not null;uniqueIndex:uk_user_book,priority:2" json:"book_id"`
	Action    string    `gorm:"type:varchar(16);not null;index:idx_user_action,priority:2" json:"action"`
	Context   *string   `gorm:"type:varchar(255)" json:"context,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// 关联关系
	Book Book `gorm:"foreignKey:BookID;references:ID" json:"book"`
}

func (Swipe) TableName() string {
	return "swipes"
}

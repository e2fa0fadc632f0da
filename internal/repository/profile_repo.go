package repository

import (
	"Lumina/internal/model"
	"context"
	"errors"

	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProfileRepo interface {
	GetByUserID(ctx context.Context, userID uint64) (*model.ReadingProfile, error)
	Upsert(ctx context.Context, profile *model.ReadingProfile) error
	UpdateFavoriteGenres(ctx context.Context, userID uint64, genres model.StringList) error
}

type ProfileRepoImpl struct {
	db *gorm.DB
}

func NewProfileRepo(db *gorm.DB) ProfileRepo {
	return &ProfileRepoImpl{db: db}
}

// GetByUserID 获取阅读画像，不存在时返回 nil
func (s *ProfileRepoImpl) GetByUserID(ctx context.Context, userID uint64) (*model.ReadingProfile, error) {
	var profile model.ReadingProfile
	result := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&profile)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, pkgerrors.Wrap(result.Error, "get reading profile")
	}
	return &profile, nil
}

// Upsert 按 user_id 创建或整体覆盖画像
func (s *ProfileRepoImpl) Upsert(ctx context.Context, profile *model.ReadingProfile) error {
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"favorite_genres", "reading_pace", "preferred_length",
				"mood_tags", "vibe_preferences", "life_moment", "updated_at",
			}),
		}).
		Create(profile).Error
	return pkgerrors.Wrap(err, "upsert reading profile")
}

// UpdateFavoriteGenres 仅覆写 favorite_genres
func (s *ProfileRepoImpl) UpdateFavoriteGenres(ctx context.Context, userID uint64, genres model.StringList) error {
	err := s.db.WithContext(ctx).
		Model(&model.ReadingProfile{}).
		Where("user_id = ?", userID).
		Update("favorite_genres", genres).Error
	return pkgerrors.Wrap(err, "update favorite genres")
}

package repository

import (
	"Lumina/internal/model"
	"context"
	"errors"

	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SwipeRepo interface {
	Get(ctx context.Context, userID, bookID uint64) (*model.Swipe, error)
	// Upsert 每个 user×book 只保留一条，返回是否为首次滑动
	Upsert(ctx context.Context, swipe *model.Swipe) (bool, error)
	// ListLiked 最近的 like / super_like，带 Book
	ListLiked(ctx context.Context, userID uint64, limit int) ([]*model.Swipe, error)
	// List 滑动历史，按时间倒序，action 为空时不过滤
	List(ctx context.Context, userID uint64, action string, limit int) ([]*model.Swipe, error)
}

type SwipeRepoImpl struct {
	db *gorm.DB
}

func NewSwipeRepo(db *gorm.DB) SwipeRepo {
	return &SwipeRepoImpl{db: db}
}

func (s *SwipeRepoImpl) Get(ctx context.Context, userID, bookID uint64) (*model.Swipe, error) {
	var swipe model.Swipe
	result := s.db.WithContext(ctx).
		Where("user_id = ? AND book_id = ?", userID, bookID).
		First(&swipe)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, pkgerrors.Wrap(result.Error, "get swipe")
	}
	return &swipe, nil
}

func (s *SwipeRepoImpl) Upsert(ctx context.Context, swipe *model.Swipe) (bool, error) {
	existing, err := s.Get(ctx, swipe.UserID, swipe.BookID)
	if err != nil {
		return false, err
	}

	if existing != nil {
		result := s.db.WithContext(ctx).
			Model(existing).
			Updates(map[string]interface{}{"action": swipe.Action, "context": swipe.Context})
		if result.Error != nil {
			return false, pkgerrors.Wrap(result.Error, "update swipe")
		}
		swipe.ID = existing.ID
		swipe.CreatedAt = existing.CreatedAt
		return false, nil
	}

	// 并发下另一请求先插入时按唯一键更新
	result := s.db.WithContext(ctx).
		Omit("Book").
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "book_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"action", "context", "updated_at"}),
		}).
		Create(swipe)
	if result.Error != nil {
		return false, pkgerrors.Wrap(result.Error, "create swipe")
	}
	// MySQL ON DUPLICATE KEY UPDATE 插入时影响 1 行，更新时 2 行
	return result.RowsAffected == 1, nil
}

func (s *SwipeRepoImpl) ListLiked(ctx context.Context, userID uint64, limit int) ([]*model.Swipe, error) {
	list := make([]*model.Swipe, 0)
	result := s.db.WithContext(ctx).
		Preload("Book").
		Where("user_id = ? AND action IN ?", userID, []string{model.SwipeLike, model.SwipeSuperLike}).
		Order("created_at desc").
		Limit(limit).
		Find(&list)
	if result.Error != nil {
		return nil, pkgerrors.Wrap(result.Error, "list liked swipes")
	}
	return list, nil
}

func (s *SwipeRepoImpl) List(ctx context.Context, userID uint64, action string, limit int) ([]*model.Swipe, error) {
	list := make([]*model.Swipe, 0)
	query := s.db.WithContext(ctx).
		Preload("Book").
		Where("user_id = ?", userID)
	if action != "" {
		query = query.Where("action = ?", action)
	}
	result := query.
		Order("created_at desc").
		Limit(limit).
		Find(&list)
	if result.Error != nil {
		return nil, pkgerrors.Wrap(result.Error, "list swipes")
	}
	return list, nil
}

package repository

import (
	"Lumina/internal/model"
	"context"
	"errors"

	"github.com/goccy/go-json"
	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"
)

type BookRepo interface {
	// FirstOrCreate 按 external_id 物化书目，返回库中记录及是否新建
	FirstOrCreate(ctx context.Context, book *model.Book) (*model.Book, bool, error)
	GetByExternalID(ctx context.Context, externalID string) (*model.Book, error)
	// ListByGenres 与给定 genres 有交集的书目，排除 excludeID
	ListByGenres(ctx context.Context, genres []string, excludeID uint64, limit int) ([]*model.Book, error)
}

type BookRepoImpl struct {
	db *gorm.DB
}

func NewBookRepo(db *gorm.DB) BookRepo {
	return &BookRepoImpl{db: db}
}

func (s *BookRepoImpl) FirstOrCreate(ctx context.Context, book *model.Book) (*model.Book, bool, error) {
	var found model.Book
	result := s.db.WithContext(ctx).
		Where("external_id = ?", book.ExternalID).
		Attrs(book).
		FirstOrCreate(&found)
	if result.Error != nil {
		// 并发物化同一本书时另一方已写入，重读即可
		if isDuplicateError(result.Error) {
			existing, err := s.GetByExternalID(ctx, book.ExternalID)
			if err == nil && existing != nil {
				return existing, false, nil
			}
		}
		return nil, false, pkgerrors.Wrap(result.Error, "first or create book")
	}
	return &found, result.RowsAffected > 0, nil
}

// GetByExternalID 不存在时返回 nil
func (s *BookRepoImpl) GetByExternalID(ctx context.Context, externalID string) (*model.Book, error) {
	var book model.Book
	result := s.db.WithContext(ctx).
		Where("external_id = ?", externalID).
		First(&book)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, pkgerrors.Wrap(result.Error, "get book")
	}
	return &book, nil
}

func (s *BookRepoImpl) ListByGenres(ctx context.Context, genres []string, excludeID uint64, limit int) ([]*model.Book, error) {
	list := make([]*model.Book, 0)
	if len(genres) == 0 {
		return list, nil
	}
	raw, err := json.Marshal(genres)
	if err != nil {
		return nil, err
	}

	result := s.db.WithContext(ctx).
		Where("JSON_OVERLAPS(genres, ?)", string(raw)).
		Where("id <> ?", excludeID).
		Order("id desc").
		Limit(limit).
		Find(&list)
	if result.Error != nil {
		return nil, pkgerrors.Wrap(result.Error, "list books by genres")
	}
	return list, nil
}

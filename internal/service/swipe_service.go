package service

import (
	"Lumina/internal/api/dto"
	"Lumina/internal/model"
	"Lumina/internal/pkg/books"
	"Lumina/internal/pkg/consts"
	"Lumina/internal/pkg/redis"
	"Lumina/internal/pkg/util"
	"Lumina/internal/repository"
	"context"
	log "log/slog"
	"strings"
)

type SwipeService interface {
	RecordSwipe(ctx context.Context, userID uint64, req *dto.SwipeDTO) (*dto.SwipeResultDTO, error)
	ListSwipes(ctx context.Context, userID uint64, req *dto.SwipeListDTO) (*dto.SwipeListResultDTO, error)
}

type SwipeServiceImpl struct {
	bookRepo   repository.BookRepo
	swipeRepo  repository.SwipeRepo
	profileSvc ProfileService
}

func NewSwipeService(bookRepo repository.BookRepo, swipeRepo repository.SwipeRepo, profileSvc ProfileService) SwipeService {
	return &SwipeServiceImpl{
		bookRepo:   bookRepo,
		swipeRepo:  swipeRepo,
		profileSvc: profileSvc,
	}
}

func (s *SwipeServiceImpl) RecordSwipe(ctx context.Context, userID uint64, req *dto.SwipeDTO) (*dto.SwipeResultDTO, error) {
	if !model.SetSwipeAction[req.Action] {
		return nil, ErrSwipeActionInvalid
	}
	if strings.TrimSpace(req.BookID) == "" || strings.TrimSpace(req.Title) == "" {
		return nil, ErrParamInvalid
	}

	genres := model.FilterBlankDistinct(req.Genres)
	book, _, err := s.bookRepo.FirstOrCreate(ctx, newSwipedBook(req, genres))
	if err != nil {
		return nil, err
	}

	swipe := &model.Swipe{
		UserID:  userID,
		BookID:  book.ID,
		Action:  req.Action,
		Context: req.Context,
	}
	created, err := s.swipeRepo.Upsert(ctx, swipe)
	if err != nil {
		return nil, err
	}
	swipe.Book = *book

	merged := []string{}
	// 只有首次的正反馈才扩充画像
	if created && model.IsPositiveSwipe(req.Action) && len(genres) > 0 {
		added, err := s.profileSvc.MergeFavoriteGenres(ctx, userID, genres)
		if err != nil {
			log.WarnContext(ctx, "merge favorite genres error", "user_id", userID, "err", err)
		} else {
			merged = added
		}
	}

	if err = redis.DeleteKey(ctx, recommendationCacheKey(userID)); err != nil {
		log.WarnContext(ctx, "invalidate recommendation cache error", "user_id", userID, "err", err)
	}

	return &dto.SwipeResultDTO{
		Swipe:        toSwipeDTO(swipe),
		Created:      created,
		MergedGenres: merged,
	}, nil
}

func (s *SwipeServiceImpl) ListSwipes(ctx context.Context, userID uint64, req *dto.SwipeListDTO) (*dto.SwipeListResultDTO, error) {
	if req.Action != "" && !model.SetSwipeAction[req.Action] {
		return nil, ErrSwipeActionInvalid
	}
	limit := util.ClampLimit(req.Limit, consts.DefaultSwipeListLimit, consts.MaxSwipeListLimit)

	list, err := s.swipeRepo.List(ctx, userID, req.Action, limit)
	if err != nil {
		return nil, err
	}

	items := make([]*dto.SwipeItemDTO, 0, len(list))
	for _, sw := range list {
		items = append(items, toSwipeDTO(sw))
	}
	return &dto.SwipeListResultDTO{Swipes: items, Total: len(items)}, nil
}

// newSwipedBook 首次出现的书目按检索边界的默认值物化
func newSwipedBook(req *dto.SwipeDTO, genres model.StringList) *model.Book {
	author := strings.TrimSpace(req.Author)
	if author == "" {
		author = books.UnknownAuthor
	}
	cover := req.Cover
	if cover == "" {
		cover = books.DefaultCover
	}
	return &model.Book{
		ExternalID:  strings.TrimSpace(req.BookID),
		Title:       strings.TrimSpace(req.Title),
		Author:      author,
		Cover:       cover,
		Description: req.Description,
		Genres:      genres,
		VibeTags:    model.FilterVocabulary(req.VibeTags, model.SetVibeTag),
		Mood:        model.StringList{},
		Atmosphere:  model.StringList{},
		Pace:        model.PaceMedium,
		Intensity:   3,
	}
}

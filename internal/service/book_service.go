package service

import (
	"Lumina/internal/api/dto"
	"Lumina/internal/model"
	"Lumina/internal/pkg/books"
	"Lumina/internal/pkg/consts"
	"Lumina/internal/pkg/es"
	"Lumina/internal/pkg/llm"
	"Lumina/internal/pkg/matcher"
	"Lumina/internal/pkg/recommend"
	"Lumina/internal/repository"
	"context"
	"errors"
	log "log/slog"
	"strings"
)

// BookAdvisor AI 分析与润色协作方
type BookAdvisor interface {
	AnalyzeBook(ctx context.Context, in *llm.BookAnalysisInput) (*llm.BookAnalysis, error)
	EnhanceDescription(ctx context.Context, title, author, description string) string
}

type BookService interface {
	Search(ctx context.Context, req *dto.BookSearchDTO) ([]*dto.BookDTO, error)
	SearchByTitle(ctx context.Context, req *dto.SearchByTitleDTO) ([]*dto.BookDTO, error)
	FindSimilar(ctx context.Context, externalID string, limit int) ([]*dto.BookDTO, error)
	Analyze(ctx context.Context, req *dto.AnalyzeBookDTO) (*llm.BookAnalysis, error)
	Enhance(ctx context.Context, req *dto.EnhanceDescriptionDTO) (*dto.EnhancedDescriptionDTO, error)
	// ScoreBooks 按画像为给定书目打分，分数降序（稳定）取前 limit 条
	ScoreBooks(ctx context.Context, userID uint64, req *dto.ScoreBooksDTO) ([]*dto.BookDTO, error)
}

type BookServiceImpl struct {
	catalog    books.Catalog
	bookRepo   repository.BookRepo
	bookESRepo es.BookRepo
	advisor    BookAdvisor
	profileSvc ProfileService
}

func NewBookService(
	catalog books.Catalog,
	bookRepo repository.BookRepo,
	bookESRepo es.BookRepo,
	advisor BookAdvisor,
	profileSvc ProfileService,
) BookService {
	return &BookServiceImpl{
		catalog:    catalog,
		bookRepo:   bookRepo,
		bookESRepo: bookESRepo,
		advisor:    advisor,
		profileSvc: profileSvc,
	}
}

// Search 外部检索失败时返回空列表
func (s *BookServiceImpl) Search(ctx context.Context, req *dto.BookSearchDTO) ([]*dto.BookDTO, error) {
	query := strings.TrimSpace(req.Query)
	if query == "" {
		return nil, ErrParamInvalid
	}
	maxResults := req.MaxResults
	if maxResults <= 0 {
		maxResults = books.DefaultResults
	}

	found, err := s.catalog.Search(ctx, query, maxResults)
	if err != nil {
		log.WarnContext(ctx, "book search failed", "query", query, "err", err)
		return []*dto.BookDTO{}, nil
	}
	return toBookDTOs(found), nil
}

func (s *BookServiceImpl) SearchByTitle(ctx context.Context, req *dto.SearchByTitleDTO) ([]*dto.BookDTO, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, ErrParamInvalid
	}
	query := books.TitleAuthorQuery(title, strings.TrimSpace(req.Author))

	found, err := s.catalog.Search(ctx, query, consts.SearchByTitleResults)
	if err != nil {
		log.WarnContext(ctx, "book search by title failed", "query", query, "err", err)
		return []*dto.BookDTO{}, nil
	}
	return toBookDTOs(found), nil
}

func (s *BookServiceImpl) FindSimilar(ctx context.Context, externalID string, limit int) ([]*dto.BookDTO, error) {
	target, err := s.loadTarget(ctx, externalID)
	if err != nil {
		return nil, err
	}

	candidates := s.similarCandidates(ctx, target)
	if limit <= 0 {
		limit = matcher.DefaultSimilarLimit
	}
	return toBookDTOs(matcher.FindSimilar(target, candidates, limit)), nil
}

// loadTarget 优先读库，库中没有时按外部 ID 查询
func (s *BookServiceImpl) loadTarget(ctx context.Context, externalID string) (*model.Book, error) {
	if strings.TrimSpace(externalID) == "" {
		return nil, ErrParamInvalid
	}
	target, err := s.bookRepo.GetByExternalID(ctx, externalID)
	if err != nil {
		return nil, err
	}
	if target != nil {
		return target, nil
	}

	target, err = s.catalog.GetByID(ctx, externalID)
	if err != nil {
		if errors.Is(err, books.ErrVolumeNotFound) {
			return nil, ErrBookNotFound
		}
		return nil, err
	}
	return target, nil
}

// similarCandidates ES 不可用时退回到库中同类型书目
func (s *BookServiceImpl) similarCandidates(ctx context.Context, target *model.Book) []*model.Book {
	if s.bookESRepo != nil {
		docs, err := s.bookESRepo.SearchSimilar(ctx, target.Genres, target.VibeTags, target.ExternalID, es.MaxSimilarCandidates)
		if err == nil {
			out := make([]*model.Book, 0, len(docs))
			for _, d := range docs {
				out = append(out, d.ToModel())
			}
			return out
		}
		log.WarnContext(ctx, "similar search on es failed, fallback to db", "external_id", target.ExternalID, "err", err)
	}

	list, err := s.bookRepo.ListByGenres(ctx, target.Genres, target.ID, es.MaxSimilarCandidates)
	if err != nil {
		log.WarnContext(ctx, "similar search on db failed", "external_id", target.ExternalID, "err", err)
		return []*model.Book{}
	}
	return list
}

func (s *BookServiceImpl) Analyze(ctx context.Context, req *dto.AnalyzeBookDTO) (*llm.BookAnalysis, error) {
	if s.advisor == nil {
		return nil, ErrAIUnavailable
	}
	return s.advisor.AnalyzeBook(ctx, &llm.BookAnalysisInput{
		Title:       req.Title,
		Author:      req.Author,
		Description: req.Description,
		Genres:      model.FilterBlankDistinct(req.Genres),
	})
}

// Enhance AI 不可用时原样返回
func (s *BookServiceImpl) Enhance(ctx context.Context, req *dto.EnhanceDescriptionDTO) (*dto.EnhancedDescriptionDTO, error) {
	if s.advisor == nil {
		return &dto.EnhancedDescriptionDTO{Description: req.Description}, nil
	}
	return &dto.EnhancedDescriptionDTO{
		Description: s.advisor.EnhanceDescription(ctx, req.Title, req.Author, req.Description),
	}, nil
}

func (s *BookServiceImpl) ScoreBooks(ctx context.Context, userID uint64, req *dto.ScoreBooksDTO) ([]*dto.BookDTO, error) {
	profile, err := s.profileSvc.LoadProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	candidates := make([]*model.Book, 0, len(req.Books))
	for _, in := range req.Books {
		candidates = append(candidates, bookFromInput(in))
	}
	candidates = recommend.Dedup(candidates)
	if len(req.VibeTags) > 0 {
		candidates = matcher.FilterByVibes(candidates, req.VibeTags)
	}

	byID := make(map[string]*model.Book, len(candidates))
	for _, b := range candidates {
		byID[b.ExternalID] = b
	}

	scores := matcher.RankByMatch(candidates, profile, toMatchContext(req.Context), req.Limit)
	out := make([]*dto.BookDTO, 0, len(scores))
	for _, ms := range scores {
		out = append(out, withMatch(toBookDTO(byID[ms.BookID]), ms))
	}
	return out, nil
}

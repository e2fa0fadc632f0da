package service

import (
	"Lumina/internal/api/config"
	"Lumina/internal/api/dto"
	"Lumina/internal/model"
	"Lumina/internal/pkg/logger"
	"Lumina/internal/pkg/matcher"
	"Lumina/internal/pkg/mongo"
	"Lumina/internal/pkg/recommend"
	"Lumina/internal/pkg/redis"
	"Lumina/internal/pkg/util"
	"Lumina/internal/repository"
	"context"
	"fmt"
	log "log/slog"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

const (
	auditTimeout        = 5 * time.Second
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

// Recommender 推荐流水线
type Recommender interface {
	Run(ctx context.Context, req recommend.Request) *recommend.Result
}

type RecommendationService interface {
	Recommend(ctx context.Context, userID uint64, req *dto.RecommendDTO) (*dto.RecommendationDTO, error)
	History(ctx context.Context, userID uint64, limit int) ([]*dto.RecommendationHistoryDTO, error)
}

type RecommendationServiceImpl struct {
	cfg         config.RecommendConfig
	pipeline    Recommender
	profileSvc  ProfileService
	swipeRepo   repository.SwipeRepo
	logRepo     mongo.RecommendationLogRepo
	asyncAudits bool
	shuffle     func(items []*dto.BookDTO)
}

func NewRecommendationService(
	cfg config.RecommendConfig,
	pipeline Recommender,
	profileSvc ProfileService,
	swipeRepo repository.SwipeRepo,
	logRepo mongo.RecommendationLogRepo,
) RecommendationService {
	return &RecommendationServiceImpl{
		cfg:         cfg,
		pipeline:    pipeline,
		profileSvc:  profileSvc,
		swipeRepo:   swipeRepo,
		logRepo:     logRepo,
		asyncAudits: true,
		shuffle:     shuffleBooks,
	}
}

func (s *RecommendationServiceImpl) Recommend(ctx context.Context, userID uint64, req *dto.RecommendDTO) (*dto.RecommendationDTO, error) {
	profile, err := s.profileSvc.LoadProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	limit := util.ClampLimit(req.Limit, s.cfg.DefaultLimit, s.cfg.MaxLimit)
	rctx := &matcher.RecommendationContext{
		Mood:          req.Mood,
		Atmosphere:    req.Atmosphere,
		Purpose:       req.Purpose,
		TimeAvailable: req.TimeAvailable,
	}

	cacheKey := recommendationCacheKey(userID)
	field := cacheField(limit, req)
	if cached := s.loadCached(ctx, cacheKey, field); cached != nil {
		// 类型路径的结果本身是随机的，命中缓存时重新打乱
		if cached.Source == recommend.SourceGenres {
			s.shuffle(cached.Books)
		}
		return cached, nil
	}

	history, err := s.swipeRepo.ListLiked(ctx, userID, s.cfg.LikedHistory)
	if err != nil {
		// 历史缺失时只按画像推荐
		log.WarnContext(ctx, "load liked history error", "user_id", userID, "err", err)
		history = nil
	}

	result := s.pipeline.Run(ctx, recommend.Request{
		Profile:      profile,
		LikedHistory: history,
		Limit:        limit,
		UseAI:        req.UseAI,
	})

	// 只附加分数，保持流水线给出的顺序
	items := make([]*dto.BookDTO, 0, len(result.Books))
	for _, b := range result.Books {
		items = append(items, withMatch(toBookDTO(b), matcher.Score(b, profile, rctx)))
	}

	resp := &dto.RecommendationDTO{
		Books:  items,
		Source: result.Source,
		Total:  len(items),
	}
	if result.Source != recommend.SourcePopular {
		resp.Preferences = &dto.PreferencesDTO{
			Genres: profile.FavoriteGenres,
			Moods:  profile.MoodTags,
		}
	}

	s.storeCached(ctx, cacheKey, field, resp)
	s.audit(ctx, userID, req, limit, profile, resp)
	return resp, nil
}

func (s *RecommendationServiceImpl) History(ctx context.Context, userID uint64, limit int) ([]*dto.RecommendationHistoryDTO, error) {
	if s.logRepo == nil {
		return []*dto.RecommendationHistoryDTO{}, nil
	}
	limit = util.ClampLimit(limit, defaultHistoryLimit, maxHistoryLimit)

	logs, err := s.logRepo.ListByUser(ctx, userID, int64(limit))
	if err != nil {
		return nil, err
	}
	out := make([]*dto.RecommendationHistoryDTO, 0, len(logs))
	for _, l := range logs {
		ids := make([]string, 0, len(l.Items))
		for _, it := range l.Items {
			ids = append(ids, it.ExternalID)
		}
		out = append(out, &dto.RecommendationHistoryDTO{
			Source:    l.Source,
			UseAI:     l.UseAI,
			Genres:    l.Genres,
			BookIDs:   ids,
			CreatedAt: l.CreatedAt,
		})
	}
	return out, nil
}

func (s *RecommendationServiceImpl) loadCached(ctx context.Context, key, field string) *dto.RecommendationDTO {
	raw, err := redis.HGetValue(ctx, key, field)
	if err != nil {
		log.WarnContext(ctx, "read recommendation cache error", "err", err)
		return nil
	}
	if raw == "" {
		return nil
	}
	var resp dto.RecommendationDTO
	if err = json.Unmarshal([]byte(raw), &resp); err != nil {
		log.WarnContext(ctx, "corrupted recommendation cache", "err", err)
		return nil
	}
	return &resp
}

// storeCached 空结果不缓存
func (s *RecommendationServiceImpl) storeCached(ctx context.Context, key, field string, resp *dto.RecommendationDTO) {
	if len(resp.Books) == 0 || s.cfg.CacheTTL <= 0 {
		return
	}
	raw, err := json.Marshal(resp)
	if err != nil {
		return
	}
	if err = redis.HSetWithExpiration(ctx, key, field, raw, s.cfg.CacheTTL); err != nil {
		log.WarnContext(ctx, "write recommendation cache error", "err", err)
	}
}

// audit 写审计日志失败只记录，不影响响应
func (s *RecommendationServiceImpl) audit(ctx context.Context, userID uint64, req *dto.RecommendDTO, limit int, profile *model.ReadingProfile, resp *dto.RecommendationDTO) {
	if s.logRepo == nil {
		return
	}
	entry := &mongo.RecommendationLog{
		UserID:      userID,
		TraceID:     logger.TraceID(ctx),
		Source:      resp.Source,
		UseAI:       req.UseAI,
		Limit:       limit,
		Genres:      append([]string{}, profile.FavoriteGenres...),
		Items:       make([]mongo.LoggedBook, 0, len(resp.Books)),
		ContextMood: req.Mood,
		Purpose:     req.Purpose,
		CreatedAt:   time.Now(),
	}
	for _, b := range resp.Books {
		item := mongo.LoggedBook{ExternalID: b.ExternalID, Title: b.Title}
		if b.Match != nil {
			item.Score = b.Match.Score
		}
		entry.Items = append(entry.Items, item)
	}

	write := func() {
		auditCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), auditTimeout)
		defer cancel()
		if err := s.logRepo.Create(auditCtx, entry); err != nil {
			log.WarnContext(auditCtx, "write recommendation log error", "user_id", userID, "err", err)
		}
	}
	if s.asyncAudits {
		go write()
		return
	}
	write()
}

func shuffleBooks(items []*dto.BookDTO) {
	rand.Shuffle(len(items), func(i, j int) {
		items[i], items[j] = items[j], items[i]
	})
}

func cacheField(limit int, req *dto.RecommendDTO) string {
	return fmt.Sprintf("%d|%t|%s|%s|%s", limit, req.UseAI, strings.Join(req.Mood, ","), req.Atmosphere, req.Purpose)
}

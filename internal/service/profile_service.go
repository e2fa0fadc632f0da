package service

import (
	"Lumina/internal/api/dto"
	"Lumina/internal/model"
	"Lumina/internal/pkg/consts"
	"Lumina/internal/pkg/redis"
	"Lumina/internal/repository"
	"context"
	log "log/slog"
	"strconv"
	"time"

	"github.com/goccy/go-json"
)

const (
	profileCacheTTL = 30 * time.Minute
	maxMergedGenres = 3
)

type ProfileService interface {
	// LoadProfile 画像不存在时返回 ErrProfileNotFound
	LoadProfile(ctx context.Context, userID uint64) (*model.ReadingProfile, error)
	GetProfile(ctx context.Context, userID uint64) (*dto.ProfileResponseDTO, error)
	UpsertProfile(ctx context.Context, userID uint64, req *dto.ProfileDTO) (*dto.ProfileResponseDTO, error)
	// MergeFavoriteGenres 追加至多 3 个新类型，返回实际追加的类型
	MergeFavoriteGenres(ctx context.Context, userID uint64, genres []string) ([]string, error)
}

type ProfileServiceImpl struct {
	profileRepo repository.ProfileRepo
}

func NewProfileService(profileRepo repository.ProfileRepo) ProfileService {
	return &ProfileServiceImpl{profileRepo: profileRepo}
}

func (s *ProfileServiceImpl) LoadProfile(ctx context.Context, userID uint64) (*model.ReadingProfile, error) {
	key := profileCacheKey(userID)
	if cached, err := redis.GetValue(ctx, key); err == nil && cached != "" {
		var profile model.ReadingProfile
		if err = json.Unmarshal([]byte(cached), &profile); err == nil {
			return &profile, nil
		}
		log.WarnContext(ctx, "corrupted profile cache", "user_id", userID, "err", err)
	}

	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, ErrProfileNotFound
	}

	if raw, err := json.Marshal(profile); err == nil {
		if err = redis.SetWithExpiration(ctx, key, raw, profileCacheTTL); err != nil {
			log.WarnContext(ctx, "cache profile error", "user_id", userID, "err", err)
		}
	}
	return profile, nil
}

func (s *ProfileServiceImpl) GetProfile(ctx context.Context, userID uint64) (*dto.ProfileResponseDTO, error) {
	profile, err := s.LoadProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toProfileDTO(profile), nil
}

func (s *ProfileServiceImpl) UpsertProfile(ctx context.Context, userID uint64, req *dto.ProfileDTO) (*dto.ProfileResponseDTO, error) {
	genres := model.FilterBlankDistinct(req.FavoriteGenres)
	if len(genres) == 0 {
		return nil, ErrParamInvalid
	}
	vibes := model.VibePreferences{}
	for dim, weight := range req.VibePreferences {
		if !model.SetVibeDimension[dim] || weight < 0 || weight > 10 {
			return nil, ErrParamInvalid
		}
		vibes[dim] = weight
	}

	pace := req.ReadingPace
	if pace == "" {
		pace = model.PaceMedium
	}
	length := req.PreferredLength
	if length == "" {
		length = model.LengthMedium
	}
	var lifeMoment *string
	if req.LifeMoment != nil && *req.LifeMoment != "" {
		lifeMoment = req.LifeMoment
	}

	now := time.Now()
	profile := &model.ReadingProfile{
		UserID:          userID,
		FavoriteGenres:  genres,
		ReadingPace:     pace,
		PreferredLength: length,
		MoodTags:        model.FilterBlankDistinct(req.MoodTags),
		VibePreferences: vibes,
		LifeMoment:      lifeMoment,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.profileRepo.Upsert(ctx, profile); err != nil {
		return nil, err
	}
	s.invalidate(ctx, userID)

	// 重新读取以拿到已存在画像的 created_at
	stored, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil || stored == nil {
		return toProfileDTO(profile), nil
	}
	return toProfileDTO(stored), nil
}

func (s *ProfileServiceImpl) MergeFavoriteGenres(ctx context.Context, userID uint64, genres []string) ([]string, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return []string{}, nil
	}

	known := profile.FavoriteGenres.Set()
	added := make([]string, 0, maxMergedGenres)
	for _, g := range model.FilterBlankDistinct(genres) {
		if _, ok := known[g]; ok {
			continue
		}
		added = append(added, g)
		if len(added) == maxMergedGenres {
			break
		}
	}
	if len(added) == 0 {
		return added, nil
	}

	merged := append(append(model.StringList{}, profile.FavoriteGenres...), added...)
	if err = s.profileRepo.UpdateFavoriteGenres(ctx, userID, merged); err != nil {
		return nil, err
	}
	s.invalidate(ctx, userID)
	return added, nil
}

// invalidate 画像变化后推荐缓存一并失效
func (s *ProfileServiceImpl) invalidate(ctx context.Context, userID uint64) {
	if err := redis.DeleteKey(ctx, profileCacheKey(userID), recommendationCacheKey(userID)); err != nil {
		log.WarnContext(ctx, "invalidate profile cache error", "user_id", userID, "err", err)
	}
}

func profileCacheKey(userID uint64) string {
	return consts.ProfileCacheKey + strconv.FormatUint(userID, 10)
}

func recommendationCacheKey(userID uint64) string {
	return consts.RecommendationKey + strconv.FormatUint(userID, 10)
}

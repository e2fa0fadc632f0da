package job

import (
	"Lumina/internal/pkg/books"
	"Lumina/internal/pkg/consts"
	"Lumina/internal/pkg/logger"
	"Lumina/internal/pkg/redis"
	"context"
	log "log/slog"
	"time"

	"github.com/google/uuid"
)

const (
	popularWarmTimeout = 30 * time.Second
	popularWarmLockTTL = time.Minute
)

// PopularWarmJob 定时执行 popular 查询，让缓存中的兜底书单保持可用
type PopularWarmJob struct {
	searcher books.Searcher
	query    string
	limit    int
}

func NewPopularWarmJob(searcher books.Searcher, query string, limit int) *PopularWarmJob {
	if query == "" {
		query = books.PopularQuery
	}
	return &PopularWarmJob{
		searcher: searcher,
		query:    query,
		limit:    books.ClampResults(limit),
	}
}

func (s *PopularWarmJob) Run() {
	ctx, cancel := context.WithTimeout(logger.WithTraceID(context.Background()), popularWarmTimeout)
	defer cancel()

	if _, err := s.Warm(ctx); err != nil {
		log.ErrorContext(ctx, "warm popular shelf error", "err", err)
	}
}

// Warm 多实例下只有抢到锁的实例执行，返回是否执行
func (s *PopularWarmJob) Warm(ctx context.Context) (bool, error) {
	owner := uuid.NewString()
	ok, err := redis.TryLock(ctx, consts.PopularWarmLock, owner, popularWarmLockTTL, 1)
	if err != nil {
		return false, err
	}
	if !ok {
		log.InfoContext(ctx, "popular shelf warm skipped, lock held")
		return false, nil
	}
	defer redis.UnLock(ctx, consts.PopularWarmLock, owner)

	found, err := s.searcher.Search(ctx, s.query, s.limit)
	if err != nil {
		return true, err
	}
	log.InfoContext(ctx, "popular shelf warmed", "query", s.query, "count", len(found))
	return true, nil
}

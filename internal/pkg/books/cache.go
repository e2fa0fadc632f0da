package books

import (
	"Lumina/internal/model"
	"Lumina/internal/pkg/consts"
	"context"
	"errors"
	"fmt"
	log "log/slog"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

// CachedSearcher 以 Redis 缓存检索结果，缓存异常时直接请求下游，空结果不缓存
type CachedSearcher struct {
	next Catalog
	rdb  *redis.Client
	ttl  time.Duration
}

func NewCachedSearcher(next Catalog, rdb *redis.Client, ttl time.Duration) *CachedSearcher {
	return &CachedSearcher{next: next, rdb: rdb, ttl: ttl}
}

func SearchCacheKey(query string, maxResults int) string {
	return fmt.Sprintf("%s%d:%s", consts.BookSearchKey, maxResults, query)
}

func (s *CachedSearcher) Search(ctx context.Context, query string, maxResults int) ([]*model.Book, error) {
	key := SearchCacheKey(query, maxResults)

	var cached []*model.Book
	if s.load(ctx, key, &cached) {
		return cached, nil
	}

	found, err := s.next.Search(ctx, query, maxResults)
	if err != nil {
		return nil, err
	}
	if len(found) > 0 {
		s.store(ctx, key, found)
	}
	return found, nil
}

func (s *CachedSearcher) GetByID(ctx context.Context, volumeID string) (*model.Book, error) {
	key := consts.BookVolumeKey + volumeID

	var cached model.Book
	if s.load(ctx, key, &cached) {
		return &cached, nil
	}

	book, err := s.next.GetByID(ctx, volumeID)
	if err != nil {
		return nil, err
	}
	s.store(ctx, key, book)
	return book, nil
}

// Invalidate 删除某个查询的缓存
func (s *CachedSearcher) Invalidate(ctx context.Context, query string, maxResults int) error {
	return s.rdb.Del(ctx, SearchCacheKey(query, maxResults)).Err()
}

func (s *CachedSearcher) load(ctx context.Context, key string, dst any) bool {
	raw, err := s.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.WarnContext(ctx, "book cache read failed", "key", key, "err", err)
		}
		return false
	}
	if err = json.Unmarshal(raw, dst); err != nil {
		log.WarnContext(ctx, "book cache payload corrupted", "key", key, "err", err)
		_ = s.rdb.Del(ctx, key).Err()
		return false
	}
	return true
}

func (s *CachedSearcher) store(ctx context.Context, key string, value any) {
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err = s.rdb.Set(ctx, key, raw, s.ttl).Err(); err != nil {
		log.WarnContext(ctx, "book cache write failed", "key", key, "err", err)
	}
}

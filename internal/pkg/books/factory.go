package books

import (
	"Lumina/internal/api/config"
	log "log/slog"

	"github.com/redis/go-redis/v9"
)

// NewCatalog 根据配置组装检索链：Google Books（限流熔断）或内置书库，外层套 Redis 缓存
// 未配置 API Key 或 use_fixture=true 时使用内置书库
func NewCatalog(cfg config.GoogleBooksConfig, rdb *redis.Client) (Catalog, error) {
	var catalog Catalog
	if cfg.UseFixture || cfg.ApiKey == "" {
		fixture, err := NewFixtureSearcher()
		if err != nil {
			return nil, err
		}
		log.Info("Google Books API key not configured, using local fixture catalog", "books", len(fixture.books))
		catalog = fixture
	} else {
		catalog = NewGuardedSearcher(NewGoogleBooksClient(cfg), GuardOptions{
			RatePerSecond:   cfg.RatePerSecond,
			Burst:           cfg.Burst,
			Timeout:         cfg.Timeout,
			BreakerFailures: cfg.BreakerFailures,
			BreakerTimeout:  cfg.BreakerTimeout,
		})
	}

	if rdb != nil && cfg.CacheTTL > 0 {
		catalog = NewCachedSearcher(catalog, rdb, cfg.CacheTTL)
	}
	return catalog, nil
}

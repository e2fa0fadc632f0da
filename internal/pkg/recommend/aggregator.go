// Package recommend 候选书目聚合与推荐流水线
package recommend

import (
	"Lumina/internal/model"
	"Lumina/internal/pkg/books"
	"context"
	log "log/slog"
	"math"
	"math/rand/v2"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
)

const (
	DefaultLimit       = 20
	maxCombinedGenres  = 5
	maxGenreSearches   = 3
	authorSearchResult = 5
)

// 推荐来源
const (
	SourceAI      = "ai"
	SourceGenres  = "genres"
	SourcePopular = "popular"
)

// Aggregator 按画像类型、喜欢历史中的类型和作者发起检索，合并去重后打乱
type Aggregator struct {
	searcher     books.Searcher
	popularQuery string

	mu  sync.Mutex
	rng *rand.Rand
}

func NewAggregator(searcher books.Searcher, popularQuery string, rng *rand.Rand) *Aggregator {
	if popularQuery == "" {
		popularQuery = books.PopularQuery
	}
	if rng == nil {
		rng = NewRand()
	}
	return &Aggregator{
		searcher:     searcher,
		popularQuery: popularQuery,
		rng:          rng,
	}
}

// Aggregate 返回至多 limit 本候选及其来源（genres 或 popular）
func (a *Aggregator) Aggregate(ctx context.Context, profile *model.ReadingProfile, history []*model.Swipe, limit int) ([]*model.Book, string) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	signals := ExtractSignals(history)
	var favorites []string
	if profile != nil {
		favorites = profile.FavoriteGenres
	}
	genres := CombineGenres(signals.Genres, favorites)

	// 没有任何类型信号时返回热门书目
	if len(genres) == 0 {
		popular, err := a.searcher.Search(ctx, a.popularQuery, limit)
		if err != nil {
			log.WarnContext(ctx, "popular search failed", "query", a.popularQuery, "err", err)
			return []*model.Book{}, SourcePopular
		}
		popular = Dedup(popular)
		if len(popular) > limit {
			popular = popular[:limit]
		}
		return popular, SourcePopular
	}

	if len(genres) > maxGenreSearches {
		genres = genres[:maxGenreSearches]
	}
	perGenre := int(math.Ceil(float64(limit) / float64(len(genres))))

	queries := make([]searchCall, 0, len(genres)+1)
	if signals.Author != "" {
		queries = append(queries, searchCall{query: books.AuthorQuery(signals.Author), max: authorSearchResult})
	}
	for _, g := range genres {
		queries = append(queries, searchCall{query: books.SubjectQuery(strings.ToLower(g)), max: perGenre})
	}

	// 作者结果排在类型结果之前
	pool := make([]*model.Book, 0, limit+authorSearchResult)
	for _, res := range a.searchAll(ctx, queries) {
		pool = append(pool, res...)
	}

	pool = Dedup(pool)
	a.shuffle(pool)
	if len(pool) > limit {
		pool = pool[:limit]
	}
	return pool, SourceGenres
}

type searchCall struct {
	query string
	max   int
}

// searchAll 并发检索，等待全部结束，单个失败只记录日志；结果按 calls 顺序返回
func (a *Aggregator) searchAll(ctx context.Context, calls []searchCall) [][]*model.Book {
	results := make([][]*model.Book, len(calls))
	var g errgroup.Group
	for i, c := range calls {
		g.Go(func() error {
			found, err := a.searcher.Search(ctx, c.query, c.max)
			if err != nil {
				log.WarnContext(ctx, "candidate search failed", "query", c.query, "err", err)
				return nil
			}
			results[i] = found
			return nil
		})
	}
	_ = g.Wait()
	return results
}

func (a *Aggregator) shuffle(pool []*model.Book) {
	a.mu.Lock()
	defer a.mu.Unlock()
	Shuffle(pool, a.rng)
}

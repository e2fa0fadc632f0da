package recommend

import (
	"Lumina/internal/model"
	"Lumina/internal/pkg/books"
	"context"
	log "log/slog"

	"golang.org/x/sync/errgroup"
)

const DefaultAISuggestions = 5

// Suggester AI 选书协作方
type Suggester interface {
	SuggestTitles(ctx context.Context, profile *model.ReadingProfile) ([]model.TitleSuggestion, error)
}

type Request struct {
	Profile      *model.ReadingProfile
	LikedHistory []*model.Swipe
	Limit        int
	UseAI        bool
}

type Result struct {
	Books  []*model.Book
	Source string
}

// Pipeline 依次尝试 AI 推荐、类型推荐（内含热门兜底）
type Pipeline struct {
	aggregator     *Aggregator
	searcher       books.Searcher
	suggester      Suggester
	maxSuggestions int
}

func NewPipeline(aggregator *Aggregator, searcher books.Searcher, suggester Suggester, maxSuggestions int) *Pipeline {
	if maxSuggestions <= 0 {
		maxSuggestions = DefaultAISuggestions
	}
	return &Pipeline{
		aggregator:     aggregator,
		searcher:       searcher,
		suggester:      suggester,
		maxSuggestions: maxSuggestions,
	}
}

// Run 不返回错误，上游失败时逐级降级
func (p *Pipeline) Run(ctx context.Context, req Request) *Result {
	limit := req.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}

	// 没有画像时 AI 无从推荐，直接走类型/热门路径
	if req.UseAI && p.suggester != nil && req.Profile != nil {
		found, err := p.fromAI(ctx, req.Profile, limit)
		switch {
		case err != nil:
			log.WarnContext(ctx, "AI recommendations failed, falling back to genres", "err", err)
		case len(found) == 0:
			log.InfoContext(ctx, "AI recommendations resolved no books, falling back to genres")
		default:
			return &Result{Books: found, Source: SourceAI}
		}
	}

	found, source := p.aggregator.Aggregate(ctx, req.Profile, req.LikedHistory, limit)
	return &Result{Books: found, Source: source}
}

// fromAI 取前 maxSuggestions 条建议并发检索，每条取第一本，保持 AI 给出的顺序
func (p *Pipeline) fromAI(ctx context.Context, profile *model.ReadingProfile, limit int) ([]*model.Book, error) {
	suggestions, err := p.suggester.SuggestTitles(ctx, profile)
	if err != nil {
		return nil, err
	}
	if len(suggestions) > p.maxSuggestions {
		suggestions = suggestions[:p.maxSuggestions]
	}

	resolved := make([]*model.Book, len(suggestions))
	var g errgroup.Group
	for i, s := range suggestions {
		g.Go(func() error {
			query := s.Title + " " + s.Author
			found, err := p.searcher.Search(ctx, query, 1)
			if err != nil {
				log.WarnContext(ctx, "resolve AI suggestion failed", "query", query, "err", err)
				return nil
			}
			if len(found) > 0 {
				resolved[i] = found[0]
			}
			return nil
		})
	}
	_ = g.Wait()

	out := Dedup(resolved)
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

package books

import (
	"Lumina/internal/model"
	"context"
	log "log/slog"
	"time"

	"github.com/pkg/errors"
	"github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"
)

// ErrUpstreamUnavailable 熔断打开或限流等待超时
var ErrUpstreamUnavailable = errors.New("book search upstream unavailable")

type GuardOptions struct {
	RatePerSecond   float64
	Burst           int
	Timeout         time.Duration
	BreakerFailures uint32
	BreakerTimeout  time.Duration
}

// GuardedSearcher 限流 + 熔断 + 单次调用超时
type GuardedSearcher struct {
	next    Catalog
	limiter *rate.Limiter
	timeout time.Duration
	search  *gobreaker.CircuitBreaker[[]*model.Book]
	lookup  *gobreaker.CircuitBreaker[*model.Book]
}

func NewGuardedSearcher(next Catalog, opts GuardOptions) *GuardedSearcher {
	limit := rate.Inf
	if opts.RatePerSecond > 0 {
		limit = rate.Limit(opts.RatePerSecond)
	}
	burst := opts.Burst
	if burst <= 0 {
		burst = 1
	}

	return &GuardedSearcher{
		next:    next,
		limiter: rate.NewLimiter(limit, burst),
		timeout: opts.Timeout,
		search:  gobreaker.NewCircuitBreaker[[]*model.Book](breakerSettings("google-books-search", opts)),
		lookup:  gobreaker.NewCircuitBreaker[*model.Book](breakerSettings("google-books-volume", opts)),
	}
}

func breakerSettings(name string, opts GuardOptions) gobreaker.Settings {
	failures := opts.BreakerFailures
	if failures == 0 {
		failures = 5
	}
	return gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     opts.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
		// 找不到单本书不算上游故障
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrVolumeNotFound)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("book search circuit breaker state changed", "name", name, "from", from.String(), "to", to.String())
		},
	}
}

func (g *GuardedSearcher) Search(ctx context.Context, query string, maxResults int) ([]*model.Book, error) {
	if err := g.limiter.Wait(ctx); err != nil {
		return nil, errors.Wrap(ErrUpstreamUnavailable, err.Error())
	}
	found, err := g.search.Execute(func() ([]*model.Book, error) {
		callCtx, cancel := g.withTimeout(ctx)
		defer cancel()
		return g.next.Search(callCtx, query, maxResults)
	})
	if err != nil {
		return nil, g.translate(err)
	}
	return found, nil
}

func (g *GuardedSearcher) GetByID(ctx context.Context, volumeID string) (*model.Book, error) {
	if err := g.limiter.Wait(ctx); err != nil {
		return nil, errors.Wrap(ErrUpstreamUnavailable, err.Error())
	}
	book, err := g.lookup.Execute(func() (*model.Book, error) {
		callCtx, cancel := g.withTimeout(ctx)
		defer cancel()
		return g.next.GetByID(callCtx, volumeID)
	})
	if err != nil {
		return nil, g.translate(err)
	}
	return book, nil
}

func (g *GuardedSearcher) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if g.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, g.timeout)
}

func (g *GuardedSearcher) translate(err error) error {
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return errors.Wrap(ErrUpstreamUnavailable, err.Error())
	}
	return err
}

package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"Lumina/internal/model"
	"Lumina/internal/pkg/books"
	"Lumina/internal/pkg/es"
	"Lumina/internal/pkg/llm"
	"Lumina/internal/pkg/mongo"
	"Lumina/internal/pkg/recommend"
	"Lumina/internal/pkg/redis"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
)

func setupRedis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	redis.Rdb = client
	t.Cleanup(func() { _ = client.Close() })
	return mr
}

type fakeProfileRepo struct {
	mu       sync.Mutex
	profiles map[uint64]*model.ReadingProfile
	reads    int
	err      error
}

func newFakeProfileRepo(profiles ...*model.ReadingProfile) *fakeProfileRepo {
	r := &fakeProfileRepo{profiles: map[uint64]*model.ReadingProfile{}}
	for _, p := range profiles {
		r.profiles[p.UserID] = p
	}
	return r
}

func (r *fakeProfileRepo) GetByUserID(_ context.Context, userID uint64) (*model.ReadingProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reads++
	if r.err != nil {
		return nil, r.err
	}
	p, ok := r.profiles[userID]
	if !ok {
		return nil, nil
	}
	cp := *p
	cp.FavoriteGenres = append(model.StringList{}, p.FavoriteGenres...)
	return &cp, nil
}

func (r *fakeProfileRepo) Upsert(_ context.Context, profile *model.ReadingProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if old, ok := r.profiles[profile.UserID]; ok {
		profile.CreatedAt = old.CreatedAt
	}
	cp := *profile
	r.profiles[profile.UserID] = &cp
	return nil
}

func (r *fakeProfileRepo) UpdateFavoriteGenres(_ context.Context, userID uint64, genres model.StringList) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.profiles[userID]; ok {
		p.FavoriteGenres = genres
	}
	return nil
}

type fakeBookRepo struct {
	byExternal map[string]*model.Book
	nextID     uint64
	genreHits  []*model.Book
	genreErr   error
}

func newFakeBookRepo(seed ...*model.Book) *fakeBookRepo {
	r := &fakeBookRepo{byExternal: map[string]*model.Book{}}
	for _, b := range seed {
		r.nextID++
		if b.ID == 0 {
			b.ID = r.nextID
		}
		r.byExternal[b.ExternalID] = b
	}
	return r
}

func (r *fakeBookRepo) FirstOrCreate(_ context.Context, book *model.Book) (*model.Book, bool, error) {
	if b, ok := r.byExternal[book.ExternalID]; ok {
		return b, false, nil
	}
	r.nextID++
	cp := *book
	cp.ID = r.nextID
	r.byExternal[book.ExternalID] = &cp
	return &cp, true, nil
}

func (r *fakeBookRepo) GetByExternalID(_ context.Context, externalID string) (*model.Book, error) {
	return r.byExternal[externalID], nil
}

func (r *fakeBookRepo) ListByGenres(_ context.Context, _ []string, _ uint64, _ int) ([]*model.Book, error) {
	return r.genreHits, r.genreErr
}

type swipeKey struct{ user, book uint64 }

type fakeSwipeRepo struct {
	swipes  map[swipeKey]*model.Swipe
	liked   []*model.Swipe
	likeErr error
	listed  struct {
		action string
		limit  int
	}
}

func newFakeSwipeRepo() *fakeSwipeRepo {
	return &fakeSwipeRepo{swipes: map[swipeKey]*model.Swipe{}}
}

func (r *fakeSwipeRepo) Get(_ context.Context, userID, bookID uint64) (*model.Swipe, error) {
	return r.swipes[swipeKey{userID, bookID}], nil
}

func (r *fakeSwipeRepo) Upsert(_ context.Context, swipe *model.Swipe) (bool, error) {
	k := swipeKey{swipe.UserID, swipe.BookID}
	if existing, ok := r.swipes[k]; ok {
		existing.Action = swipe.Action
		swipe.ID = existing.ID
		return false, nil
	}
	swipe.ID = uint64(len(r.swipes) + 1)
	cp := *swipe
	r.swipes[k] = &cp
	return true, nil
}

func (r *fakeSwipeRepo) ListLiked(_ context.Context, _ uint64, _ int) ([]*model.Swipe, error) {
	return r.liked, r.likeErr
}

func (r *fakeSwipeRepo) List(_ context.Context, userID uint64, action string, limit int) ([]*model.Swipe, error) {
	r.listed.action = action
	r.listed.limit = limit
	out := make([]*model.Swipe, 0)
	for _, s := range r.swipes {
		if s.UserID == userID && (action == "" || s.Action == action) {
			out = append(out, s)
		}
	}
	return out, nil
}

type fakeESRepo struct {
	docs []*es.BookES
	err  error
}

func (f *fakeESRepo) IndexBook(context.Context, *es.BookES, int64) error { return nil }
func (f *fakeESRepo) DeleteBook(context.Context, string) error         { return nil }
func (f *fakeESRepo) SearchSimilar(context.Context, []string, []string, string, int) ([]*es.BookES, error) {
	return f.docs, f.err
}

type fakeAdvisor struct {
	analysis *llm.BookAnalysis
	err      error
}

func (f *fakeAdvisor) AnalyzeBook(context.Context, *llm.BookAnalysisInput) (*llm.BookAnalysis, error) {
	return f.analysis, f.err
}

func (f *fakeAdvisor) EnhanceDescription(_ context.Context, _, _, description string) string {
	return "✨ " + description
}

type fakeRecommender struct {
	calls  int
	last   recommend.Request
	result *recommend.Result
}

func (f *fakeRecommender) Run(_ context.Context, req recommend.Request) *recommend.Result {
	f.calls++
	f.last = req
	return f.result
}

type fakeLogRepo struct {
	mu      sync.Mutex
	entries []*mongo.RecommendationLog
	err     error
}

func (f *fakeLogRepo) Create(_ context.Context, entry *mongo.RecommendationLog) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.entries = append(f.entries, entry)
	return nil
}

func (f *fakeLogRepo) ListByUser(_ context.Context, userID uint64, _ int64) ([]*mongo.RecommendationLog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*mongo.RecommendationLog, 0)
	for _, e := range f.entries {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

type stubCatalog struct {
	results   []*model.Book
	volumes   map[string]*model.Book
	lastQuery string
	lastMax   int
}

func (c *stubCatalog) Search(_ context.Context, query string, maxResults int) ([]*model.Book, error) {
	c.lastQuery = query
	c.lastMax = maxResults
	return c.results, nil
}

func (c *stubCatalog) GetByID(_ context.Context, id string) (*model.Book, error) {
	if b, ok := c.volumes[id]; ok {
		return b, nil
	}
	return nil, books.ErrVolumeNotFound
}

type failingCatalog struct{}

func (failingCatalog) Search(context.Context, string, int) ([]*model.Book, error) {
	return nil, errors.New("upstream down")
}

func (failingCatalog) GetByID(context.Context, string) (*model.Book, error) {
	return nil, errors.New("upstream down")
}

func testProfile(userID uint64, genres ...string) *model.ReadingProfile {
	return &model.ReadingProfile{
		UserID:          userID,
		FavoriteGenres:  genres,
		ReadingPace:     model.PaceMedium,
		PreferredLength: model.LengthMedium,
		MoodTags:        model.StringList{"hopeful"},
		VibePreferences: model.VibePreferences{},
	}
}

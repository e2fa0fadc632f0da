package job

import (
	"context"
	"errors"
	"testing"
	"time"

	"Lumina/internal/model"
	"Lumina/internal/pkg/consts"
	"Lumina/internal/pkg/redis"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSearcher struct {
	queries []string
	sizes   []int
	err     error
}

func (r *recordingSearcher) Search(_ context.Context, query string, maxResults int) ([]*model.Book, error) {
	r.queries = append(r.queries, query)
	r.sizes = append(r.sizes, maxResults)
	if r.err != nil {
		return nil, r.err
	}
	return []*model.Book{{ExternalID: "p-1"}}, nil
}

func setupRedis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	redis.Rdb = goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = redis.Rdb.Close() })
	return mr
}

func TestPopularWarmJob(t *testing.T) {
	mr := setupRedis(t)
	searcher := &recordingSearcher{}
	j := NewPopularWarmJob(searcher, "", 20)

	ran, err := j.Warm(context.Background())
	require.NoError(t, err)
	assert.True(t, ran)
	assert.Equal(t, []string{"bestseller fiction"}, searcher.queries)
	assert.Equal(t, []int{20}, searcher.sizes)
	assert.False(t, mr.Exists(consts.PopularWarmLock), "lock released")
}

func TestPopularWarmJobSkipsWhenLocked(t *testing.T) {
	mr := setupRedis(t)
	require.NoError(t, mr.Set(consts.PopularWarmLock, "other"))
	mr.SetTTL(consts.PopularWarmLock, time.Minute)

	searcher := &recordingSearcher{}
	ran, err := NewPopularWarmJob(searcher, "classics", 10).Warm(context.Background())
	require.NoError(t, err)
	assert.False(t, ran)
	assert.Empty(t, searcher.queries)
}

func TestPopularWarmJobSearchError(t *testing.T) {
	setupRedis(t)
	searcher := &recordingSearcher{err: errors.New("boom")}

	ran, err := NewPopularWarmJob(searcher, "classics", 10).Warm(context.Background())
	assert.True(t, ran)
	assert.EqualError(t, err, "boom")
}

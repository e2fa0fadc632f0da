package recommend

import (
	"Lumina/internal/model"
	"math/rand/v2"
	"time"
)

// NewRand 生产环境使用的随机源
func NewRand() *rand.Rand {
	now := uint64(time.Now().UnixNano())
	return rand.New(rand.NewPCG(now, now>>1|1))
}

// NewSeededRand 固定种子，测试用
func NewSeededRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Shuffle 原地均匀打乱，rng 为 nil 时使用全局随机源
func Shuffle(books []*model.Book, rng *rand.Rand) {
	swap := func(i, j int) { books[i], books[j] = books[j], books[i] }
	if rng == nil {
		rand.Shuffle(len(books), swap)
		return
	}
	rng.Shuffle(len(books), swap)
}

// Dedup 按 externalId 去重，位置取首次出现，内容取最后一次出现；没有 externalId 的记录丢弃
func Dedup(books []*model.Book) []*model.Book {
	index := make(map[string]int, len(books))
	out := make([]*model.Book, 0, len(books))
	for _, b := range books {
		if b == nil || b.ExternalID == "" {
			continue
		}
		if i, ok := index[b.ExternalID]; ok {
			out[i] = b
			continue
		}
		index[b.ExternalID] = len(out)
		out = append(out, b)
	}
	return out
}

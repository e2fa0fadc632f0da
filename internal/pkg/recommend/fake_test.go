package recommend

import (
	"Lumina/internal/model"
	"context"
	"errors"
	"fmt"
	"sync"
)

type searchRecord struct {
	query string
	max   int
}

// fakeSearcher 每个 query 返回预置结果，未预置的按 max 生成 <query>#<i>
type fakeSearcher struct {
	mu      sync.Mutex
	calls   []searchRecord
	results map[string][]*model.Book
	fail    map[string]bool
}

func newFakeSearcher() *fakeSearcher {
	return &fakeSearcher{
		results: make(map[string][]*model.Book),
		fail:    make(map[string]bool),
	}
}

func (f *fakeSearcher) Search(_ context.Context, query string, maxResults int) ([]*model.Book, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, searchRecord{query: query, max: maxResults})
	if f.fail[query] {
		return nil, errors.New("upstream unavailable")
	}
	if res, ok := f.results[query]; ok {
		if len(res) > maxResults {
			res = res[:maxResults]
		}
		return res, nil
	}
	out := make([]*model.Book, 0, maxResults)
	for i := 0; i < maxResults; i++ {
		out = append(out, &model.Book{ExternalID: fmt.Sprintf("%s#%d", query, i)})
	}
	return out, nil
}

func (f *fakeSearcher) callFor(query string) (searchRecord, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.calls {
		if c.query == query {
			return c, true
		}
	}
	return searchRecord{}, false
}

type fakeSuggester struct {
	suggestions []model.TitleSuggestion
	err         error
	calls       int
}

func (f *fakeSuggester) SuggestTitles(_ context.Context, _ *model.ReadingProfile) ([]model.TitleSuggestion, error) {
	f.calls++
	return f.suggestions, f.err
}

func likedSwipe(action, author string, genres ...string) *model.Swipe {
	return &model.Swipe{
		Action: action,
		Book: model.Book{
			ExternalID: author + fmt.Sprint(genres),
			Author:     author,
			Genres:     model.StringList(genres),
		},
	}
}

func bookList(ids ...string) []*model.Book {
	out := make([]*model.Book, 0, len(ids))
	for _, id := range ids {
		out = append(out, &model.Book{ExternalID: id})
	}
	return out
}

func idsOf(list []*model.Book) []string {
	out := make([]string, 0, len(list))
	for _, b := range list {
		out = append(out, b.ExternalID)
	}
	return out
}

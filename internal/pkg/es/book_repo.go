package es

import (
	"context"
	"errors"
	"strconv"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/typedapi/core/search"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types/enums/versiontype"
	"github.com/goccy/go-json"
)

const MaxSimilarCandidates = 100

type BookRepo interface {
	IndexBook(ctx context.Context, book *BookES, version int64) error
	DeleteBook(ctx context.Context, externalID string) error
	// SearchSimilar 按 genres / vibe_tags 命中召回候选，排除 excludeID 本身
	SearchSimilar(ctx context.Context, genres, vibeTags []string, excludeID string, size int) ([]*BookES, error)
}

type BookRepoImpl struct {
	client *elasticsearch.TypedClient
}

func NewBookRepo(client *elasticsearch.TypedClient) BookRepo {
	return &BookRepoImpl{client: client}
}

func (s *BookRepoImpl) IndexBook(ctx context.Context, book *BookES, version int64) error {
	_, err := s.client.Index(BookIndex).
		Id(book.ExternalID).
		Document(book).
		Version(strconv.FormatInt(version, 10)).
		VersionType(versiontype.External).
		Do(ctx)

	if err != nil {
		var e *types.ElasticsearchError
		if errors.As(err, &e) {
			// 旧版本的 binlog 晚到，直接忽略
			if e.Status == ConflictCode {
				return nil
			}
		}
		return err
	}

	return nil
}

func (s *BookRepoImpl) DeleteBook(ctx context.Context, externalID string) error {
	_, err := s.client.Delete(BookIndex, externalID).Do(ctx)

	if err != nil {
		var e *types.ElasticsearchError
		if errors.As(err, &e) {
			if e.Status == NotFoundCode {
				return nil
			}
		}
		return err
	}

	return nil
}

func (s *BookRepoImpl) SearchSimilar(ctx context.Context, genres, vibeTags []string, excludeID string, size int) ([]*BookES, error) {
	if len(genres) == 0 && len(vibeTags) == 0 {
		return []*BookES{}, nil
	}
	if size <= 0 || size > MaxSimilarCandidates {
		size = MaxSimilarCandidates
	}

	should := make([]types.Query, 0, 2)
	if len(genres) > 0 {
		should = append(should, types.Query{
			Terms: &types.TermsQuery{TermsQuery: map[string]types.TermsQueryField{"genres": genres}},
		})
	}
	if len(vibeTags) > 0 {
		should = append(should, types.Query{
			Terms: &types.TermsQuery{TermsQuery: map[string]types.TermsQueryField{"vibe_tags": vibeTags}},
		})
	}

	minimumShould := types.MinimumShouldMatch(1)
	boolQuery := &types.BoolQuery{
		Should:             should,
		MinimumShouldMatch: minimumShould,
	}
	if excludeID != "" {
		boolQuery.MustNot = []types.Query{{
			Term: map[string]types.TermQuery{"external_id": {Value: excludeID}},
		}}
	}

	req := s.client.Search().
		Index(BookIndex).
		Query(&types.Query{Bool: boolQuery}).
		Size(size)

	return s.executeSearch(ctx, req)
}

func (s *BookRepoImpl) executeSearch(ctx context.Context, req *search.Search) ([]*BookES, error) {
	resp, err := req.Do(ctx)
	if err != nil {
		return nil, err
	}

	results := make([]*BookES, 0, len(resp.Hits.Hits))
	for _, hit := range resp.Hits.Hits {
		if hit.Source_ == nil {
			continue
		}
		var book BookES
		if err = json.Unmarshal(hit.Source_, &book); err != nil {
			continue
		}
		results = append(results, &book)
	}
	return results, nil
}

package books

import (
	"Lumina/internal/model"
	"context"
	_ "embed"
	"regexp"
	"strings"
)

//go:embed catalog.json
var catalogJSON []byte

// subjectAliases 葡语类型名到样例书库英文分类
var subjectAliases = map[string]string{
	"fantasia":          "fantasy",
	"ficção científica": "science fiction",
	"ficcao cientifica": "science fiction",
	"terror":            "horror",
	"mistério":          "mystery",
	"misterio":          "mystery",
	"suspense":          "thriller",
	"clássicos":         "classics",
	"classicos":         "classics",
	"filosofia":         "philosophy",
	"história":          "history",
	"historia":          "history",
	"biografia":         "biography",
	"autoajuda":         "self-help",
	"aventura":          "adventure",
	"distopia":          "dystopia",
	"psicologia":        "psychology",
	"ciência":           "science",
	"ficção":            "fiction",
	"jovem adulto":      "young adult",
	"negócios":          "business",
}

var operatorPattern = regexp.MustCompile(`(?i)\b(subject|inauthor|intitle):`)

// FixtureSearcher 未配置 Google Books API Key 时使用的内置样例书库
type FixtureSearcher struct {
	books []*model.Book
}

// NewFixtureSearcher 加载内置书库，books 为空时使用 catalog.json
func NewFixtureSearcher(books ...*model.Book) (*FixtureSearcher, error) {
	if len(books) == 0 {
		parsed, err := ParseVolumeList(catalogJSON)
		if err != nil {
			return nil, err
		}
		books = parsed
	}
	return &FixtureSearcher{books: books}, nil
}

func (f *FixtureSearcher) Search(_ context.Context, query string, maxResults int) ([]*model.Book, error) {
	maxResults = ClampResults(maxResults)
	q := parseQuery(query)

	out := make([]*model.Book, 0, maxResults)
	for _, b := range f.books {
		if len(out) >= maxResults {
			break
		}
		if q.popular || q.matches(b) {
			out = append(out, copyBook(b))
		}
	}
	return out, nil
}

func (f *FixtureSearcher) GetByID(_ context.Context, volumeID string) (*model.Book, error) {
	for _, b := range f.books {
		if b.ExternalID == volumeID {
			return copyBook(b), nil
		}
	}
	return nil, ErrVolumeNotFound
}

type fixtureQuery struct {
	popular bool
	subject string
	author  string
	title   string
	terms   []string
}

// parseQuery 每个操作符的取值延伸到下一个操作符之前，引号会被去掉
func parseQuery(raw string) fixtureQuery {
	raw = strings.TrimSpace(raw)
	if strings.EqualFold(raw, PopularQuery) {
		return fixtureQuery{popular: true}
	}

	var q fixtureQuery
	locs := operatorPattern.FindAllStringSubmatchIndex(raw, -1)
	free := raw
	if len(locs) > 0 {
		free = raw[:locs[0][0]]
	}
	for i, loc := range locs {
		end := len(raw)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		value := normalize(strings.Trim(strings.TrimSpace(raw[loc[1]:end]), `"`))
		switch strings.ToLower(raw[loc[2]:loc[3]]) {
		case "subject":
			if alias, ok := subjectAliases[value]; ok {
				value = alias
			}
			q.subject = value
		case "inauthor":
			q.author = value
		case "intitle":
			q.title = value
		}
	}
	q.terms = strings.Fields(normalize(free))
	return q
}

func (q fixtureQuery) matches(b *model.Book) bool {
	if q.subject != "" && !hasCategory(b.Genres, q.subject) {
		return false
	}
	if q.author != "" && !strings.Contains(normalize(b.Author), q.author) {
		return false
	}
	if q.title != "" && !strings.Contains(normalize(b.Title), q.title) {
		return false
	}
	if len(q.terms) == 0 {
		return q.subject != "" || q.author != "" || q.title != ""
	}
	haystack := normalize(b.Title + " " + b.Author + " " + strings.Join(b.Genres, " "))
	for _, t := range q.terms {
		if !strings.Contains(haystack, t) {
			return false
		}
	}
	return true
}

func hasCategory(genres []string, subject string) bool {
	for _, g := range genres {
		if normalize(g) == subject {
			return true
		}
	}
	return false
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// copyBook 调用方可能修改返回值，标签切片一并复制
func copyBook(b *model.Book) *model.Book {
	c := *b
	c.Genres = append(model.StringList{}, b.Genres...)
	c.VibeTags = append(model.StringList{}, b.VibeTags...)
	c.Mood = append(model.StringList{}, b.Mood...)
	c.Atmosphere = append(model.StringList{}, b.Atmosphere...)
	return &c
}

// Package books 外部图书检索：Google Books 客户端、本地样例书库、缓存与熔断限流装饰
package books

import (
	"Lumina/internal/model"
	"context"
	"errors"
	"fmt"
	"strings"
)

// PopularQuery 没有任何偏好信号时使用的热门查询
const PopularQuery = "bestseller fiction"

const (
	MinResults     = 1
	MaxResults     = 40
	DefaultResults = 10
)

var (
	ErrVolumeNotFound = errors.New("volume not found")
	ErrInvalidVolume  = errors.New("invalid volume")
)

// Searcher 按查询语句检索书目，无结果返回空切片而非错误
// 查询语法：自由文本、subject:<genre>、inauthor:"<name>"、intitle:<title>，可组合
type Searcher interface {
	Search(ctx context.Context, query string, maxResults int) ([]*model.Book, error)
}

// Catalog 在检索之外支持按外部 ID 取单本
type Catalog interface {
	Searcher
	GetByID(ctx context.Context, volumeID string) (*model.Book, error)
}

func SubjectQuery(genre string) string {
	return "subject:" + genre
}

func AuthorQuery(author string) string {
	return fmt.Sprintf("inauthor:%q", author)
}

// TitleAuthorQuery author 为空时只按书名检索
func TitleAuthorQuery(title, author string) string {
	q := "intitle:" + strings.TrimSpace(title)
	if author = strings.TrimSpace(author); author != "" {
		q += " inauthor:" + author
	}
	return q
}

// ClampResults 把 maxResults 限制在 Google Books 接受的 [1,40]
func ClampResults(n int) int {
	if n < MinResults {
		return MinResults
	}
	if n > MaxResults {
		return MaxResults
	}
	return n
}

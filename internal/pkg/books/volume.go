package books

import (
	"Lumina/internal/model"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/goccy/go-json"
)

const (
	UnknownAuthor    = "Autor Desconhecido"
	NoDescription    = "Descrição não disponível"
	DefaultCover     = "https://images.unsplash.com/photo-1544947950-fa07a98d237f?w=400"
	defaultIntensity = 3

	isbn13 = "ISBN_13"
	isbn10 = "ISBN_10"
)

// VolumeList Google Books /volumes 响应
type VolumeList struct {
	TotalItems int      `json:"totalItems"`
	Items      []Volume `json:"items"`
}

type Volume struct {
	ID         string     `json:"id"`
	VolumeInfo VolumeInfo `json:"volumeInfo"`
}

type VolumeInfo struct {
	Title               string               `json:"title"`
	Authors             []string             `json:"authors"`
	Description         string               `json:"description"`
	PublishedDate       string               `json:"publishedDate"`
	PageCount           int                  `json:"pageCount"`
	Categories          []string             `json:"categories"`
	ImageLinks          *ImageLinks          `json:"imageLinks"`
	IndustryIdentifiers []IndustryIdentifier `json:"industryIdentifiers"`
}

type ImageLinks struct {
	Thumbnail      string `json:"thumbnail"`
	SmallThumbnail string `json:"smallThumbnail"`
}

type IndustryIdentifier struct {
	Type       string `json:"type"`
	Identifier string `json:"identifier"`
}

// ParseVolumeList 解析 /volumes 响应体，不合格的条目直接丢弃
func ParseVolumeList(body []byte) ([]*model.Book, error) {
	var list VolumeList
	if err := json.Unmarshal(body, &list); err != nil {
		return nil, err
	}
	out := make([]*model.Book, 0, len(list.Items))
	for i := range list.Items {
		b, err := ToBook(&list.Items[i])
		if err != nil {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

// ToBook 将外部 volume 转为 Book；缺少 id 或书名的 volume 视为无效
// vibe / mood / atmosphere 留空，由 AI 分析补全
func ToBook(v *Volume) (*model.Book, error) {
	id := strings.TrimSpace(v.ID)
	title := strings.TrimSpace(v.VolumeInfo.Title)
	if id == "" || title == "" {
		return nil, ErrInvalidVolume
	}
	info := v.VolumeInfo

	book := &model.Book{
		ExternalID:  id,
		Title:       title,
		Author:      joinAuthors(info.Authors),
		Cover:       coverURL(info.ImageLinks),
		Description: cleanDescription(info.Description),
		ISBN:        isbnOf(info.IndustryIdentifiers),
		Genres:      model.FilterBlankDistinct(info.Categories),
		VibeTags:    model.StringList{},
		Mood:        model.StringList{},
		Atmosphere:  model.StringList{},
		Pace:        model.PaceMedium,
		Intensity:   defaultIntensity,
	}
	if info.PageCount > 0 {
		pages := info.PageCount
		book.Pages = &pages
	}
	book.PublishedYear = publishedYear(info.PublishedDate)
	return book, nil
}

func joinAuthors(authors []string) string {
	names := model.FilterBlankDistinct(authors)
	if len(names) == 0 {
		return UnknownAuthor
	}
	return strings.Join(names, ", ")
}

func coverURL(links *ImageLinks) string {
	if links == nil {
		return DefaultCover
	}
	u := links.Thumbnail
	if u == "" {
		u = links.SmallThumbnail
	}
	if u == "" {
		return DefaultCover
	}
	return strings.Replace(u, "http://", "https://", 1)
}

// cleanDescription 去掉 HTML 标签并压缩空白
func cleanDescription(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return NoDescription
	}
	text := raw
	if doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw)); err == nil {
		text = doc.Text()
	}
	text = strings.Join(strings.Fields(text), " ")
	if text == "" {
		return NoDescription
	}
	return text
}

func isbnOf(ids []IndustryIdentifier) *string {
	var fallback string
	for _, id := range ids {
		switch id.Type {
		case isbn13:
			v := id.Identifier
			return &v
		case isbn10:
			fallback = id.Identifier
		}
	}
	if fallback == "" {
		return nil
	}
	return &fallback
}

// publishedYear 取 publishedDate 第一个 '-' 之前的年份，"-500" 这类公元前年份返回 nil
func publishedYear(date string) *int {
	head, _, _ := strings.Cut(strings.TrimSpace(date), "-")
	if head == "" {
		return nil
	}
	year, err := strconv.Atoi(head)
	if err != nil {
		return nil
	}
	return &year
}

package books

import (
	"Lumina/internal/api/config"
	"Lumina/internal/model"
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/goccy/go-json"
	"github.com/pkg/errors"
)

// GoogleBooksClient Google Books v1 API
type GoogleBooksClient struct {
	http   *resty.Client
	apiKey string
}

func NewGoogleBooksClient(cfg config.GoogleBooksConfig) *GoogleBooksClient {
	client := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout).
		SetHeader("Accept", "application/json")

	return &GoogleBooksClient{
		http:   client,
		apiKey: cfg.ApiKey,
	}
}

// Search GET /volumes?q=&maxResults=，maxResults 限制在 [1,40]
func (c *GoogleBooksClient) Search(ctx context.Context, query string, maxResults int) ([]*model.Book, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []*model.Book{}, nil
	}

	req := c.http.R().
		SetContext(ctx).
		SetQueryParam("q", query).
		SetQueryParam("maxResults", strconv.Itoa(ClampResults(maxResults)))
	if c.apiKey != "" {
		req.SetQueryParam("key", c.apiKey)
	}

	resp, err := req.Get("/volumes")
	if err != nil {
		return nil, errors.Wrap(err, "google books search")
	}
	if resp.IsError() {
		return nil, errors.Errorf("google books search: unexpected status %d", resp.StatusCode())
	}

	found, err := ParseVolumeList(resp.Body())
	if err != nil {
		return nil, errors.Wrap(err, "google books search: decode")
	}
	return found, nil
}

// GetByID GET /volumes/{id}
func (c *GoogleBooksClient) GetByID(ctx context.Context, volumeID string) (*model.Book, error) {
	volumeID = strings.TrimSpace(volumeID)
	if volumeID == "" {
		return nil, ErrVolumeNotFound
	}

	req := c.http.R().
		SetContext(ctx).
		SetPathParam("id", volumeID)
	if c.apiKey != "" {
		req.SetQueryParam("key", c.apiKey)
	}

	resp, err := req.Get("/volumes/{id}")
	if err != nil {
		return nil, errors.Wrap(err, "google books get volume")
	}
	if resp.StatusCode() == http.StatusNotFound {
		return nil, ErrVolumeNotFound
	}
	if resp.IsError() {
		return nil, errors.Errorf("google books get volume: unexpected status %d", resp.StatusCode())
	}

	var volume Volume
	if err = json.Unmarshal(resp.Body(), &volume); err != nil {
		return nil, errors.Wrap(err, "google books get volume: decode")
	}
	book, err := ToBook(&volume)
	if err != nil {
		return nil, errors.Wrapf(err, "google books get volume %s", volumeID)
	}
	return book, nil
}

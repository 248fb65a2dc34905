package blogmates

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/blogmates/blogmates-tui/app"
)

// searchService implements app.SearchService against the blogmates API.
type searchService struct {
	client *Client
}

// NewSearchService creates a SearchService backed by the given client.
func NewSearchService(client *Client) *searchService {
	return &searchService{client: client}
}

func (s *searchService) Search(ctx context.Context, query string, userPage, userSize, blogPage, blogSize int) (app.SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return app.SearchResult{}, fmt.Errorf("empty search query")
	}

	var out struct {
		Users       pagePayload[userPayload] `json:"users"`
		BlogEntries pagePayload[postPayload] `json:"blog_entries"`
	}
	path := fmt.Sprintf("/search/?q=%s&user_page=%d&user_page_size=%d&blog_page=%d&blog_page_size=%d",
		url.QueryEscape(query), userPage, userSize, blogPage, blogSize)
	if err := s.client.get(ctx, path, &out); err != nil {
		return app.SearchResult{}, fmt.Errorf("searching %q: %w", query, err)
	}

	return app.SearchResult{
		Users: toPage(out.Users, userPage, userSize, userPayload.toDomain),
		Posts: toPage(out.BlogEntries, blogPage, blogSize, postPayload.toDomain),
	}, nil
}

// Package feed fetches and parses RSS 2.0 and Atom feeds.
package feed

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/calmfeed/calmfeed/pkg/domain"
)

// Parser parses RSS/Atom feeds
type Parser struct {
	client    *http.Client
	userAgent string
}

// NewParser creates a new feed parser with a bounded fetch timeout
func NewParser(timeout time.Duration, userAgent string) *Parser {
	return &Parser{
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		userAgent: userAgent,
	}
}

// Parse fetches a feed URL and returns its entries. RSS 2.0 and Atom are
// both handled; per entry it picks the title, primary or alternate link,
// publish-or-updated date and description-or-summary.
func (p *Parser) Parse(ctx context.Context, feedURL string) ([]domain.FeedItem, error) {
	body, err := p.fetch(ctx, feedURL)
	if err != nil {
		return nil, fmt.Errorf("fetch feed: %w", err)
	}
	defer body.Close()

	parsed, err := gofeed.NewParser().Parse(body)
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}

	items := make([]domain.FeedItem, 0, len(parsed.Items))
	for _, it := range parsed.Items {
		item := domain.FeedItem{
			Title:       it.Title,
			Link:        it.Link,
			Description: it.Description,
		}
		if item.Description == "" {
			item.Description = it.Content
		}

		if it.PublishedParsed != nil {
			item.Published = it.PublishedParsed
		} else if it.UpdatedParsed != nil {
			item.Published = it.UpdatedParsed
		}

		items = append(items, item)
	}

	return items, nil
}

// fetch retrieves feed content from a URL
func (p *Parser) fetch(ctx context.Context, feedURL string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", p.userAgent)
	req.Header.Set("Accept", "application/rss+xml, application/atom+xml, application/xml;q=0.9, */*;q=0.8")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch URL: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	return resp.Body, nil
}

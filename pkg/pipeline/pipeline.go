// Package pipeline runs the two batch jobs: feed ingestion and batched
// classification. Both are invoked by an external scheduler, hold no state
// between runs, and treat per-source/per-item/per-batch failures as
// non-fatal.
package pipeline

import (
	"context"
	"time"

	"github.com/calmfeed/calmfeed/pkg/domain"
	"github.com/calmfeed/calmfeed/pkg/llm"
)

//go:generate moq -out mocks/source_store.go -pkg mocks -skip-ensure -fmt goimports . SourceStore
//go:generate moq -out mocks/item_store.go -pkg mocks -skip-ensure -fmt goimports . ItemStore
//go:generate moq -out mocks/score_store.go -pkg mocks -skip-ensure -fmt goimports . ScoreStore
//go:generate moq -out mocks/pref_store.go -pkg mocks -skip-ensure -fmt goimports . PrefStore
//go:generate moq -out mocks/feed_parser.go -pkg mocks -skip-ensure -fmt goimports . FeedParser
//go:generate moq -out mocks/article_fetcher.go -pkg mocks -skip-ensure -fmt goimports . ArticleFetcher
//go:generate moq -out mocks/classifier.go -pkg mocks -skip-ensure -fmt goimports . Classifier

// SourceStore lists feed sources
type SourceStore interface {
	GetEnabled(ctx context.Context) ([]domain.Source, error)
}

// ItemStore persists items and selects classification candidates
type ItemStore interface {
	CreateItem(ctx context.Context, item *domain.Item) error
	UpdateItemExtraction(ctx context.Context, itemID int64, rawText string, paywalled bool) error
	GetUnscoredItems(ctx context.Context, window time.Duration, limit int) ([]domain.UnscoredItem, error)
}

// ScoreStore persists score batches
type ScoreStore interface {
	UpsertScores(ctx context.Context, scores []domain.Score) error
}

// PrefStore provides the reader profile and thresholds
type PrefStore interface {
	Get(ctx context.Context) (domain.Preferences, error)
}

// FeedParser fetches and parses one feed
type FeedParser interface {
	Parse(ctx context.Context, feedURL string) ([]domain.FeedItem, error)
}

// ArticleFetcher fetches article pages and extracts readable text
type ArticleFetcher interface {
	FetchPage(ctx context.Context, pageURL string) (body string, status int, err error)
	ExtractText(html string) string
}

// Classifier scores one batch of items
type Classifier interface {
	Classify(ctx context.Context, req llm.ClassifyRequest) ([]llm.Assessment, error)
}

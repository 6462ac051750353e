package pipeline

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"

	"github.com/go-pkgz/lgr"
	"github.com/microcosm-cc/bluemonday"

	"github.com/calmfeed/calmfeed/pkg/content"
	"github.com/calmfeed/calmfeed/pkg/domain"
	"github.com/calmfeed/calmfeed/pkg/repository"
	"github.com/calmfeed/calmfeed/pkg/urlnorm"
)

// maxExcerptLen bounds the stored excerpt, in runes
const maxExcerptLen = 800

// Ingestor walks enabled sources, inserts newly seen items and fetches their
// article text. Sources are processed strictly sequentially; a failure for
// one source or article is logged and skipped, never aborting the run.
type Ingestor struct {
	sources  SourceStore
	items    ItemStore
	parser   FeedParser
	fetcher  ArticleFetcher
	sanitize *bluemonday.Policy
}

// NewIngestor creates an ingestion job
func NewIngestor(sources SourceStore, items ItemStore, parser FeedParser, fetcher ArticleFetcher) *Ingestor {
	return &Ingestor{
		sources:  sources,
		items:    items,
		parser:   parser,
		fetcher:  fetcher,
		sanitize: bluemonday.StrictPolicy(),
	}
}

// Run executes one ingestion pass over all enabled sources
func (ing *Ingestor) Run(ctx context.Context) error {
	sources, err := ing.sources.GetEnabled(ctx)
	if err != nil {
		return fmt.Errorf("get enabled sources: %w", err)
	}
	if len(sources) == 0 {
		lgr.Printf("[INFO] no enabled sources")
		return nil
	}

	for _, src := range sources {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		ing.ingestSource(ctx, src)
	}
	return nil
}

// ingestSource fetches one feed and processes its items in order
func (ing *Ingestor) ingestSource(ctx context.Context, src domain.Source) {
	feedItems, err := ing.parser.Parse(ctx, src.FeedURL)
	if err != nil {
		lgr.Printf("[WARN] feed fetch failed for %s (%s): %v", src.Name, src.FeedURL, err)
		return
	}
	if len(feedItems) == 0 {
		lgr.Printf("[INFO] no items parsed from %s", src.Name)
		return
	}

	added := 0
	for _, fi := range feedItems {
		if fi.Title == "" || fi.Link == "" {
			continue
		}
		if ing.processItem(ctx, src, fi) {
			added++
		}
	}
	lgr.Printf("[INFO] ingested %s: %d new of %d items", src.Name, added, len(feedItems))
}

// processItem inserts one feed entry and, for newly seen items, fetches and
// extracts the article text. Returns true when the item was new.
func (ing *Ingestor) processItem(ctx context.Context, src domain.Source, fi domain.FeedItem) bool {
	canonical := urlnorm.Canonicalize(fi.Link)
	hash := urlnorm.DedupKey(canonical)

	item := &domain.Item{
		SourceID:    src.ID,
		Title:       fi.Title,
		URL:         canonical,
		URLHash:     hash[:],
		PublishedAt: fi.Published,
		Excerpt:     ing.makeExcerpt(fi.Description),
	}

	err := ing.items.CreateItem(ctx, item)
	if errors.Is(err, repository.ErrAlreadyExists) {
		return false // already known, the constraint rejection is not a failure
	}
	if err != nil {
		lgr.Printf("[WARN] create item failed for %s (%s): %v", fi.Title, canonical, err)
		return false
	}

	body, status, err := ing.fetcher.FetchPage(ctx, canonical)
	if err != nil {
		// leave raw_text empty, classification still works on title+excerpt
		lgr.Printf("[WARN] article fetch failed for %s: %v", canonical, err)
		return true
	}

	text := ing.fetcher.ExtractText(body)
	paywalled := content.IsPaywalled(text, status)
	if err := ing.items.UpdateItemExtraction(ctx, item.ID, text, paywalled); err != nil {
		lgr.Printf("[WARN] update extraction failed for item %d: %v", item.ID, err)
	}
	if paywalled {
		lgr.Printf("[DEBUG] paywalled: %s", canonical)
	}
	return true
}

// makeExcerpt strips markup and entities from a feed description and bounds
// its length
func (ing *Ingestor) makeExcerpt(description string) string {
	text := strings.TrimSpace(html.UnescapeString(ing.sanitize.Sanitize(description)))
	if r := []rune(text); len(r) > maxExcerptLen {
		return string(r[:maxExcerptLen])
	}
	return text
}

package domain

import "time"

// Item represents a stored news item. Created once on first sighting of a
// canonical URL; RawText and Paywalled are set exactly once by the
// extraction step and never mutated again.
type Item struct {
	ID          int64
	SourceID    int64
	Title       string
	URL         string
	URLHash     []byte // 16-byte digest of the canonical URL, unique
	PublishedAt *time.Time
	Excerpt     string
	RawText     string
	Paywalled   bool
	CreatedAt   time.Time
}

// EffectiveTime returns the publication time when known, creation time otherwise
func (i *Item) EffectiveTime() time.Time {
	if i.PublishedAt != nil && !i.PublishedAt.IsZero() {
		return *i.PublishedAt
	}
	return i.CreatedAt
}

// UnscoredItem is an item selected for classification, joined with its source name
type UnscoredItem struct {
	ID         int64
	Title      string
	URL        string
	SourceName string
	Excerpt    string
	RawText    string
}

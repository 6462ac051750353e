package domain

import "time"

// Source represents a feed source, seeded by the operator
type Source struct {
	ID      int64
	Name    string
	FeedURL string
	Enabled bool
}

// FeedItem is a single entry parsed out of an RSS/Atom feed,
// before canonicalization and storage
type FeedItem struct {
	Title       string
	Link        string
	Description string
	Published   *time.Time
}

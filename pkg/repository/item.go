package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/calmfeed/calmfeed/pkg/domain"
)

// ErrAlreadyExists signals a dedup-key conflict on insert. The constraint
// rejection means "already known" and is not treated as a failure by the
// ingestion coordinator.
var ErrAlreadyExists = errors.New("item already exists")

// ItemRepository handles item-related database operations
type ItemRepository struct {
	db *sqlx.DB
}

// itemSQL represents an item row
type itemSQL struct {
	ID          int64      `db:"id"`
	SourceID    int64      `db:"source_id"`
	Title       string     `db:"title"`
	URL         string     `db:"url"`
	URLHash     []byte     `db:"url_hash"`
	PublishedAt *time.Time `db:"published_at"`
	Excerpt     string     `db:"excerpt"`
	RawText     string     `db:"raw_text"`
	Paywalled   bool       `db:"paywalled"`
	CreatedAt   time.Time  `db:"created_at"`
}

// unscoredSQL is the classification selection row
type unscoredSQL struct {
	ID         int64  `db:"id"`
	Title      string `db:"title"`
	URL        string `db:"url"`
	Excerpt    string `db:"excerpt"`
	RawText    string `db:"raw_text"`
	SourceName string `db:"source_name"`
}

// NewItemRepository creates a new item repository
func NewItemRepository(db *sqlx.DB) *ItemRepository {
	return &ItemRepository{db: db}
}

// CreateItem inserts a new item on first sighting of its canonical URL and
// sets item.ID. A second sighting of the same dedup key returns
// ErrAlreadyExists, raised by the storage uniqueness constraint.
func (r *ItemRepository) CreateItem(ctx context.Context, item *domain.Item) error {
	query := `
		INSERT INTO items (source_id, title, url, url_hash, published_at, excerpt, created_at)
		VALUES (?, ?, ?, ?, ?, ?, datetime('now'))
	`

	var published *string
	if item.PublishedAt != nil {
		p := sqlTime(*item.PublishedAt)
		published = &p
	}

	err := withLockRetry(ctx, func() error {
		result, err := r.db.ExecContext(ctx, query,
			item.SourceID, item.Title, item.URL, item.URLHash, published, item.Excerpt)
		if err != nil {
			return err
		}
		id, err := result.LastInsertId()
		if err != nil {
			return err
		}
		item.ID = id
		return nil
	})
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return ErrAlreadyExists
		}
		return fmt.Errorf("create item: %w", err)
	}
	return nil
}

// GetItem retrieves an item by ID
func (r *ItemRepository) GetItem(ctx context.Context, id int64) (*domain.Item, error) {
	var row itemSQL
	err := r.db.GetContext(ctx, &row, "SELECT * FROM items WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("item %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}
	return r.toDomainItem(&row), nil
}

// UpdateItemExtraction records the extraction outcome for a freshly created
// item. When the page is paywalled the raw text is discarded so teaser
// fragments never reach classification; title and excerpt remain available.
// Called exactly once per item, shortly after creation.
func (r *ItemRepository) UpdateItemExtraction(ctx context.Context, itemID int64, rawText string, paywalled bool) error {
	if paywalled {
		rawText = ""
	}
	err := withLockRetry(ctx, func() error {
		_, err := r.db.ExecContext(ctx,
			"UPDATE items SET raw_text = ?, paywalled = ? WHERE id = ?", rawText, paywalled, itemID)
		return err
	})
	if err != nil {
		return fmt.Errorf("update item extraction: %w", err)
	}
	return nil
}

// GetUnscoredItems selects items eligible for classification: no score yet,
// not paywalled, created within the window, newest first, bounded. Failed
// batches reappear here on the next run, which is what makes retry
// idempotent by construction.
func (r *ItemRepository) GetUnscoredItems(ctx context.Context, window time.Duration, limit int) ([]domain.UnscoredItem, error) {
	query := `
		SELECT i.id, i.title, i.url, i.excerpt, i.raw_text, s.name AS source_name
		FROM items i
		JOIN sources s ON s.id = i.source_id
		LEFT JOIN scores sc ON sc.item_id = i.id
		WHERE i.paywalled = 0
		  AND sc.item_id IS NULL
		  AND i.created_at >= ?
		ORDER BY i.created_at DESC
		LIMIT ?
	`
	cutoff := sqlTime(time.Now().Add(-window))

	var rows []unscoredSQL
	if err := r.db.SelectContext(ctx, &rows, query, cutoff, limit); err != nil {
		return nil, fmt.Errorf("get unscored items: %w", err)
	}

	items := make([]domain.UnscoredItem, len(rows))
	for i, row := range rows {
		items[i] = domain.UnscoredItem{
			ID:         row.ID,
			Title:      row.Title,
			URL:        row.URL,
			Excerpt:    row.Excerpt,
			RawText:    row.RawText,
			SourceName: row.SourceName,
		}
	}
	return items, nil
}

// toDomainItem converts itemSQL to domain.Item
func (r *ItemRepository) toDomainItem(row *itemSQL) *domain.Item {
	return &domain.Item{
		ID:          row.ID,
		SourceID:    row.SourceID,
		Title:       row.Title,
		URL:         row.URL,
		URLHash:     row.URLHash,
		PublishedAt: row.PublishedAt,
		Excerpt:     row.Excerpt,
		RawText:     row.RawText,
		Paywalled:   row.Paywalled,
		CreatedAt:   row.CreatedAt,
	}
}

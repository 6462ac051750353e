package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/calmfeed/calmfeed/pkg/domain"
)

// SourceRepository handles feed source operations
type SourceRepository struct {
	db *sqlx.DB
}

// sourceSQL represents a source row
type sourceSQL struct {
	ID      int64  `db:"id"`
	Name    string `db:"name"`
	FeedURL string `db:"feed_url"`
	Enabled bool   `db:"enabled"`
}

// NewSourceRepository creates a new source repository
func NewSourceRepository(db *sqlx.DB) *SourceRepository {
	return &SourceRepository{db: db}
}

// GetEnabled returns all enabled sources in id order
func (r *SourceRepository) GetEnabled(ctx context.Context) ([]domain.Source, error) {
	var rows []sourceSQL
	err := r.db.SelectContext(ctx, &rows,
		"SELECT id, name, feed_url, enabled FROM sources WHERE enabled = 1 ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("get enabled sources: %w", err)
	}

	sources := make([]domain.Source, len(rows))
	for i, row := range rows {
		sources[i] = domain.Source{ID: row.ID, Name: row.Name, FeedURL: row.FeedURL, Enabled: row.Enabled}
	}
	return sources, nil
}

// Seed upserts operator-provided sources by name, idempotent
func (r *SourceRepository) Seed(ctx context.Context, sources []domain.Source) error {
	query := `
		INSERT INTO sources (name, feed_url, enabled) VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET feed_url = excluded.feed_url, enabled = excluded.enabled
	`
	for _, src := range sources {
		if err := withLockRetry(ctx, func() error {
			_, err := r.db.ExecContext(ctx, query, src.Name, src.FeedURL, src.Enabled)
			return err
		}); err != nil {
			return fmt.Errorf("seed source %s: %w", src.Name, err)
		}
	}
	return nil
}

// SetEnabled enables or disables a source
func (r *SourceRepository) SetEnabled(ctx context.Context, id int64, enabled bool) error {
	if err := withLockRetry(ctx, func() error {
		_, err := r.db.ExecContext(ctx, "UPDATE sources SET enabled = ? WHERE id = ?", enabled, id)
		return err
	}); err != nil {
		return fmt.Errorf("set source %d enabled: %w", id, err)
	}
	return nil
}

package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// ReadRepository handles the append-only read marks. The core batch jobs
// never touch this table; only the explicit reset collaborator removes rows.
type ReadRepository struct {
	db *sqlx.DB
}

// NewReadRepository creates a new read repository
func NewReadRepository(db *sqlx.DB) *ReadRepository {
	return &ReadRepository{db: db}
}

// MarkRead records an item as viewed, idempotent
func (r *ReadRepository) MarkRead(ctx context.Context, itemID int64) error {
	if err := withLockRetry(ctx, func() error {
		_, err := r.db.ExecContext(ctx, "INSERT OR IGNORE INTO reads (item_id) VALUES (?)", itemID)
		return err
	}); err != nil {
		return fmt.Errorf("mark read %d: %w", itemID, err)
	}
	return nil
}

// MarkAllRead marks every accepted item as viewed
func (r *ReadRepository) MarkAllRead(ctx context.Context) error {
	if err := withLockRetry(ctx, func() error {
		_, err := r.db.ExecContext(ctx,
			"INSERT OR IGNORE INTO reads (item_id) SELECT item_id FROM scores WHERE should_read = 1")
		return err
	}); err != nil {
		return fmt.Errorf("mark all read: %w", err)
	}
	return nil
}

// ResetReads drops all read marks
func (r *ReadRepository) ResetReads(ctx context.Context) error {
	if err := withLockRetry(ctx, func() error {
		_, err := r.db.ExecContext(ctx, "DELETE FROM reads")
		return err
	}); err != nil {
		return fmt.Errorf("reset reads: %w", err)
	}
	return nil
}

// IsRead reports whether an item was viewed
func (r *ReadRepository) IsRead(ctx context.Context, itemID int64) (bool, error) {
	var read bool
	err := r.db.GetContext(ctx, &read, "SELECT EXISTS(SELECT 1 FROM reads WHERE item_id = ?)", itemID)
	if err != nil {
		return false, fmt.Errorf("check read %d: %w", itemID, err)
	}
	return read, nil
}

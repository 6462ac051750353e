package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/calmfeed/calmfeed/pkg/domain"
)

// PrefRepository handles the singleton reader preferences row (id=1)
type PrefRepository struct {
	db *sqlx.DB
}

// NewPrefRepository creates a new preferences repository
func NewPrefRepository(db *sqlx.DB) *PrefRepository {
	return &PrefRepository{db: db}
}

// Get returns the reader profile and thresholds. Stored threshold values
// override defaults knob by knob; missing or malformed JSON falls back to
// defaults entirely.
func (r *PrefRepository) Get(ctx context.Context) (domain.Preferences, error) {
	var row struct {
		ProfileText    string `db:"profile_text"`
		ThresholdsJSON string `db:"thresholds_json"`
	}

	prefs := domain.Preferences{Thresholds: domain.DefaultThresholds()}

	err := r.db.GetContext(ctx, &row, "SELECT profile_text, thresholds_json FROM prefs WHERE id = 1")
	if errors.Is(err, sql.ErrNoRows) {
		return prefs, nil
	}
	if err != nil {
		return prefs, fmt.Errorf("get preferences: %w", err)
	}

	prefs.ProfileText = row.ProfileText
	if row.ThresholdsJSON != "" {
		// unmarshal over defaults so absent knobs keep their stock values
		if err := json.Unmarshal([]byte(row.ThresholdsJSON), &prefs.Thresholds); err != nil {
			prefs.Thresholds = domain.DefaultThresholds()
		}
	}
	return prefs, nil
}

// SetProfile stores the free-form reader profile text
func (r *PrefRepository) SetProfile(ctx context.Context, profile string) error {
	query := `
		INSERT INTO prefs (id, profile_text) VALUES (1, ?)
		ON CONFLICT(id) DO UPDATE SET profile_text = excluded.profile_text
	`
	if err := withLockRetry(ctx, func() error {
		_, err := r.db.ExecContext(ctx, query, profile)
		return err
	}); err != nil {
		return fmt.Errorf("set profile: %w", err)
	}
	return nil
}

// SetThresholds stores the full set of decision knobs
func (r *PrefRepository) SetThresholds(ctx context.Context, th domain.Thresholds) error {
	data, err := json.Marshal(th)
	if err != nil {
		return fmt.Errorf("marshal thresholds: %w", err)
	}

	query := `
		INSERT INTO prefs (id, thresholds_json) VALUES (1, ?)
		ON CONFLICT(id) DO UPDATE SET thresholds_json = excluded.thresholds_json
	`
	if err := withLockRetry(ctx, func() error {
		_, err := r.db.ExecContext(ctx, query, string(data))
		return err
	}); err != nil {
		return fmt.Errorf("set thresholds: %w", err)
	}
	return nil
}

package repository

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/calmfeed/calmfeed/pkg/domain"
)

// TimelineMode selects which scored rows feed the display projection
type TimelineMode string

// display modes
const (
	ModeUnread   TimelineMode = "unread"   // accepted and not yet read
	ModeAll      TimelineMode = "all"      // all accepted
	ModeRejected TimelineMode = "rejected" // rejected only
)

// TimelineQuery bounds the scored-item selection for the timeline
type TimelineQuery struct {
	Mode            TimelineMode
	Limit           int
	CreatedWindow   time.Duration // items newer than this by creation
	EffectiveWindow time.Duration // and by publish-or-creation time
}

// ScoreRepository handles score-related database operations
type ScoreRepository struct {
	db *sqlx.DB
}

// topicsSQL is a JSON array of topic strings for SQL operations
type topicsSQL []string

// Value implements driver.Valuer for database storage
func (t topicsSQL) Value() (driver.Value, error) {
	if t == nil {
		return "[]", nil
	}
	return json.Marshal(t)
}

// Scan implements sql.Scanner for database retrieval
func (t *topicsSQL) Scan(value interface{}) error {
	if value == nil {
		*t = topicsSQL{}
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		*t = topicsSQL{}
		return nil
	}

	return json.Unmarshal(data, t)
}

// scoredSQL is the items+scores+reads join row for the timeline
type scoredSQL struct {
	ID          int64      `db:"id"`
	SourceName  string     `db:"source_name"`
	Title       string     `db:"title"`
	URL         string     `db:"url"`
	PublishedAt *time.Time `db:"published_at"`
	CreatedAt   time.Time  `db:"created_at"`
	Relevance   int        `db:"relevance"`
	Ragebait    int        `db:"ragebait"`
	CultureWar  int        `db:"culture_war"`
	Novelty     int        `db:"novelty"`
	Tone        string     `db:"tone"`
	Perspective string     `db:"perspective"`
	ClusterKey  string     `db:"cluster_key"`
	CalmReason  string     `db:"calm_reason"`
	ShouldRead  bool       `db:"should_read"`
	Read        bool       `db:"read"`
}

// NewScoreRepository creates a new score repository
func NewScoreRepository(db *sqlx.DB) *ScoreRepository {
	return &ScoreRepository{db: db}
}

// UpsertScores writes a batch of scores in a single transaction: insert, or
// overwrite every field including created_at on conflict. All-or-nothing —
// a failed batch must leave no partial rows behind.
func (r *ScoreRepository) UpsertScores(ctx context.Context, scores []domain.Score) error {
	if len(scores) == 0 {
		return nil
	}

	query := `
		INSERT INTO scores (
			item_id, relevance, ragebait, culture_war, novelty, topics, cluster_key,
			calm_reason, should_read, tone, challenge_value, perspective, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, datetime('now'))
		ON CONFLICT(item_id) DO UPDATE SET
			relevance = excluded.relevance,
			ragebait = excluded.ragebait,
			culture_war = excluded.culture_war,
			novelty = excluded.novelty,
			topics = excluded.topics,
			cluster_key = excluded.cluster_key,
			calm_reason = excluded.calm_reason,
			should_read = excluded.should_read,
			tone = excluded.tone,
			challenge_value = excluded.challenge_value,
			perspective = excluded.perspective,
			created_at = excluded.created_at
	`

	err := withLockRetry(ctx, func() error {
		tx, err := r.db.BeginTxx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin transaction: %w", err)
		}

		for _, s := range scores {
			if _, err := tx.ExecContext(ctx, query,
				s.ItemID, s.Relevance, s.Ragebait, s.CultureWar, s.Novelty,
				topicsSQL(s.Topics), s.ClusterKey, s.CalmReason, s.ShouldRead,
				s.Tone, s.ChallengeValue, s.Perspective); err != nil {
				if rbErr := tx.Rollback(); rbErr != nil {
					return fmt.Errorf("upsert score for item %d: %w (rollback also failed: %s)", s.ItemID, err, rbErr.Error())
				}
				return fmt.Errorf("upsert score for item %d: %w", s.ItemID, err)
			}
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit scores: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("upsert %d scores: %w", len(scores), err)
	}
	return nil
}

// GetScore retrieves the score for one item, nil when not yet classified
func (r *ScoreRepository) GetScore(ctx context.Context, itemID int64) (*domain.Score, error) {
	var row struct {
		ItemID         int64     `db:"item_id"`
		Relevance      int       `db:"relevance"`
		Ragebait       int       `db:"ragebait"`
		CultureWar     int       `db:"culture_war"`
		Novelty        int       `db:"novelty"`
		Topics         topicsSQL `db:"topics"`
		ClusterKey     string    `db:"cluster_key"`
		CalmReason     string    `db:"calm_reason"`
		ShouldRead     bool      `db:"should_read"`
		Tone           string    `db:"tone"`
		ChallengeValue int       `db:"challenge_value"`
		Perspective    string    `db:"perspective"`
		CreatedAt      time.Time `db:"created_at"`
	}

	err := r.db.GetContext(ctx, &row, "SELECT * FROM scores WHERE item_id = ?", itemID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get score: %w", err)
	}

	return &domain.Score{
		ItemID:         row.ItemID,
		Relevance:      row.Relevance,
		Ragebait:       row.Ragebait,
		CultureWar:     row.CultureWar,
		Novelty:        row.Novelty,
		Topics:         row.Topics,
		ClusterKey:     row.ClusterKey,
		CalmReason:     row.CalmReason,
		ShouldRead:     row.ShouldRead,
		Tone:           row.Tone,
		ChallengeValue: row.ChallengeValue,
		Perspective:    row.Perspective,
		CreatedAt:      row.CreatedAt,
	}, nil
}

// GetScoredItems returns the items+scores+reads join feeding the timeline
// selector, ordered by effective time then relevance, both descending. Row
// order matters downstream: primary selection and the diversity cap are
// order-sensitive.
func (r *ScoreRepository) GetScoredItems(ctx context.Context, q TimelineQuery) ([]domain.ScoredItem, error) {
	where := "sc.should_read = 1"
	switch q.Mode {
	case ModeUnread:
		where = "sc.should_read = 1 AND rd.item_id IS NULL"
	case ModeRejected:
		where = "sc.should_read = 0"
	case ModeAll:
		where = "sc.should_read = 1"
	}

	query := fmt.Sprintf(`
		SELECT i.id, i.title, i.url, i.published_at, i.created_at,
		       sc.relevance, sc.ragebait, sc.culture_war, sc.novelty, sc.tone,
		       sc.perspective, sc.cluster_key, sc.calm_reason, sc.should_read,
		       s.name AS source_name,
		       CASE WHEN rd.item_id IS NULL THEN 0 ELSE 1 END AS read
		FROM items i
		JOIN sources s ON s.id = i.source_id
		JOIN scores sc ON sc.item_id = i.id
		LEFT JOIN reads rd ON rd.item_id = i.id
		WHERE %s
		  AND i.created_at >= ?
		  AND COALESCE(i.published_at, i.created_at) >= ?
		ORDER BY COALESCE(i.published_at, i.created_at) DESC, sc.relevance DESC
		LIMIT ?
	`, where)

	now := time.Now()
	var rows []scoredSQL
	err := r.db.SelectContext(ctx, &rows, query,
		sqlTime(now.Add(-q.CreatedWindow)), sqlTime(now.Add(-q.EffectiveWindow)), q.Limit)
	if err != nil {
		return nil, fmt.Errorf("get scored items: %w", err)
	}

	items := make([]domain.ScoredItem, len(rows))
	for i, row := range rows {
		items[i] = domain.ScoredItem{
			ID:          row.ID,
			SourceName:  row.SourceName,
			Title:       row.Title,
			URL:         row.URL,
			PublishedAt: row.PublishedAt,
			CreatedAt:   row.CreatedAt,
			Relevance:   row.Relevance,
			Ragebait:    row.Ragebait,
			CultureWar:  row.CultureWar,
			Novelty:     row.Novelty,
			Tone:        row.Tone,
			Perspective: row.Perspective,
			ClusterKey:  row.ClusterKey,
			CalmReason:  row.CalmReason,
			ShouldRead:  row.ShouldRead,
			Read:        row.Read,
		}
	}
	return items, nil
}

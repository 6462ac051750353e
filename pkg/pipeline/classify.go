package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/calmfeed/calmfeed/pkg/domain"
	"github.com/calmfeed/calmfeed/pkg/llm"
)

// EngineConfig bounds one classification run
type EngineConfig struct {
	BatchSize int           // items per oracle call
	Pause     time.Duration // delay between batches
	Window    time.Duration // only items created within this window
	Limit     int           // max items per run
}

// Engine scores unclassified items in fixed-size batches, strictly in order.
// A failed batch writes nothing and does not stop later batches; its items
// stay unscored and are picked up again on the next run.
type Engine struct {
	items      ItemStore
	scores     ScoreStore
	prefs      PrefStore
	classifier Classifier
	cfg        EngineConfig
}

// NewEngine creates a classification job
func NewEngine(items ItemStore, scores ScoreStore, prefs PrefStore, classifier Classifier, cfg EngineConfig) *Engine {
	if cfg.BatchSize == 0 {
		cfg.BatchSize = 25
	}
	if cfg.Pause == 0 {
		cfg.Pause = 500 * time.Millisecond
	}
	if cfg.Window == 0 {
		cfg.Window = 7 * 24 * time.Hour
	}
	if cfg.Limit == 0 {
		cfg.Limit = 500
	}
	return &Engine{items: items, scores: scores, prefs: prefs, classifier: classifier, cfg: cfg}
}

// Run executes one classification pass
func (e *Engine) Run(ctx context.Context) error {
	prefs, err := e.prefs.Get(ctx)
	if err != nil {
		return fmt.Errorf("get preferences: %w", err)
	}

	items, err := e.items.GetUnscoredItems(ctx, e.cfg.Window, e.cfg.Limit)
	if err != nil {
		return fmt.Errorf("get unscored items: %w", err)
	}
	if len(items) == 0 {
		lgr.Printf("[INFO] no items to classify")
		return nil
	}

	batches := chunkItems(items, e.cfg.BatchSize)
	lgr.Printf("[INFO] classifying %d items in %d batches, thresholds rel>=%d rage<=%d cw<=%d",
		len(items), len(batches), prefs.Thresholds.Relevance, prefs.Thresholds.Ragebait, prefs.Thresholds.CultureWar)

	totalAccepted, totalRejected := 0, 0
	for i, batch := range batches {
		if i > 0 {
			// fixed pause between batches for external rate limits
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(e.cfg.Pause):
			}
		}

		accepted, rejected, err := e.processBatch(ctx, batch, prefs)
		if err != nil {
			lgr.Printf("[WARN] batch %d/%d failed, items stay unscored: %v", i+1, len(batches), err)
			continue
		}
		totalAccepted += accepted
		totalRejected += rejected
		lgr.Printf("[DEBUG] batch %d/%d: %d accepted, %d rejected", i+1, len(batches), accepted, rejected)
	}

	lgr.Printf("[INFO] classification done: %d accepted, %d rejected", totalAccepted, totalRejected)
	return nil
}

// processBatch sends one batch to the oracle and persists the resulting
// scores atomically. Any failure leaves the whole batch unwritten.
func (e *Engine) processBatch(ctx context.Context, batch []domain.UnscoredItem, prefs domain.Preferences) (accepted, rejected int, err error) {
	assessments, err := e.classifier.Classify(ctx, llm.ClassifyRequest{
		Items:      batch,
		Profile:    prefs.ProfileText,
		Thresholds: prefs.Thresholds,
	})
	if err != nil {
		return 0, 0, fmt.Errorf("classify: %w", err)
	}

	scores := make([]domain.Score, 0, len(assessments))
	for _, a := range assessments {
		shouldRead, reason := Decide(a, prefs.Thresholds)
		if shouldRead {
			accepted++
			lgr.Printf("[DEBUG] accept item %d (%s)", a.ItemID, reason)
		} else {
			rejected++
		}
		scores = append(scores, domain.Score{
			ItemID:         a.ItemID,
			Relevance:      a.Relevance,
			Ragebait:       a.Ragebait,
			CultureWar:     a.CultureWar,
			Novelty:        a.Novelty,
			Topics:         a.Topics,
			ClusterKey:     clusterKeyOrDefault(a.ClusterKey),
			CalmReason:     a.CalmReason,
			ShouldRead:     shouldRead,
			Tone:           a.Tone,
			ChallengeValue: a.ChallengeValue,
			Perspective:    a.Perspective,
		})
	}

	if err := e.scores.UpsertScores(ctx, scores); err != nil {
		return 0, 0, fmt.Errorf("upsert scores: %w", err)
	}
	return accepted, rejected, nil
}

// clusterKeyOrDefault maps an empty cluster key to the catch-all bucket
func clusterKeyOrDefault(key string) string {
	if key == "" {
		return "other/misc"
	}
	return key
}

// chunkItems splits items into batches of at most size
func chunkItems(items []domain.UnscoredItem, size int) [][]domain.UnscoredItem {
	var batches [][]domain.UnscoredItem
	for len(items) > size {
		batches = append(batches, items[:size])
		items = items[size:]
	}
	if len(items) > 0 {
		batches = append(batches, items)
	}
	return batches
}

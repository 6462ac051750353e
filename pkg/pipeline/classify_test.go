package pipeline

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calmfeed/calmfeed/pkg/domain"
	"github.com/calmfeed/calmfeed/pkg/llm"
	"github.com/calmfeed/calmfeed/pkg/pipeline/mocks"
)

func testPrefStore() *mocks.PrefStoreMock {
	return &mocks.PrefStoreMock{
		GetFunc: func(ctx context.Context) (domain.Preferences, error) {
			return domain.Preferences{ProfileText: "calm tech news", Thresholds: domain.DefaultThresholds()}, nil
		},
	}
}

func unscored(n int) []domain.UnscoredItem {
	items := make([]domain.UnscoredItem, n)
	for i := range items {
		items[i] = domain.UnscoredItem{ID: int64(i + 1), Title: fmt.Sprintf("item %d", i+1), SourceName: "src"}
	}
	return items
}

func TestEngine_Run_Batching(t *testing.T) {
	items := &mocks.ItemStoreMock{
		GetUnscoredItemsFunc: func(ctx context.Context, window time.Duration, limit int) ([]domain.UnscoredItem, error) {
			assert.Equal(t, 7*24*time.Hour, window)
			assert.Equal(t, 500, limit)
			return unscored(5), nil
		},
	}
	classifier := &mocks.ClassifierMock{
		ClassifyFunc: func(ctx context.Context, req llm.ClassifyRequest) ([]llm.Assessment, error) {
			assert.Equal(t, "calm tech news", req.Profile)
			out := make([]llm.Assessment, len(req.Items))
			for i, it := range req.Items {
				out[i] = llm.Assessment{ItemID: it.ID, Relevance: 70, Ragebait: 10, CultureWar: 5, ClusterKey: "t/k", Tone: "neutral", Perspective: "neutral"}
			}
			return out, nil
		},
	}
	scores := &mocks.ScoreStoreMock{
		UpsertScoresFunc: func(ctx context.Context, s []domain.Score) error { return nil },
	}

	e := NewEngine(items, scores, testPrefStore(), classifier, EngineConfig{BatchSize: 2, Pause: time.Millisecond})
	require.NoError(t, e.Run(context.Background()))

	require.Len(t, classifier.ClassifyCalls(), 3, "5 items in batches of 2")
	assert.Len(t, classifier.ClassifyCalls()[0].Req.Items, 2)
	assert.Len(t, classifier.ClassifyCalls()[2].Req.Items, 1)
	require.Len(t, scores.UpsertScoresCalls(), 3, "one atomic write per batch")
}

func TestEngine_Run_DecisionRecomputed(t *testing.T) {
	items := &mocks.ItemStoreMock{
		GetUnscoredItemsFunc: func(ctx context.Context, window time.Duration, limit int) ([]domain.UnscoredItem, error) {
			return unscored(2), nil
		},
	}
	classifier := &mocks.ClassifierMock{
		ClassifyFunc: func(ctx context.Context, req llm.ClassifyRequest) ([]llm.Assessment, error) {
			return []llm.Assessment{
				// model says read it, local thresholds say otherwise
				{ItemID: 1, Relevance: 5, Ragebait: 95, CultureWar: 95, ShouldRead: true, ClusterKey: ""},
				// model says skip, local thresholds accept
				{ItemID: 2, Relevance: 80, Ragebait: 5, CultureWar: 5, ShouldRead: false, ClusterKey: "ai/releases"},
			}, nil
		},
	}
	scores := &mocks.ScoreStoreMock{
		UpsertScoresFunc: func(ctx context.Context, s []domain.Score) error { return nil },
	}

	e := NewEngine(items, scores, testPrefStore(), classifier, EngineConfig{Pause: time.Millisecond})
	require.NoError(t, e.Run(context.Background()))

	require.Len(t, scores.UpsertScoresCalls(), 1)
	written := scores.UpsertScoresCalls()[0].Scores
	require.Len(t, written, 2)
	assert.False(t, written[0].ShouldRead, "model suggestion must not be trusted")
	assert.Equal(t, "other/misc", written[0].ClusterKey, "empty cluster key maps to the catch-all")
	assert.True(t, written[1].ShouldRead)
	assert.Equal(t, "ai/releases", written[1].ClusterKey)
}

func TestEngine_Run_FailedBatchSkipped(t *testing.T) {
	items := &mocks.ItemStoreMock{
		GetUnscoredItemsFunc: func(ctx context.Context, window time.Duration, limit int) ([]domain.UnscoredItem, error) {
			return unscored(4), nil
		},
	}
	call := 0
	classifier := &mocks.ClassifierMock{
		ClassifyFunc: func(ctx context.Context, req llm.ClassifyRequest) ([]llm.Assessment, error) {
			call++
			if call == 1 {
				return nil, fmt.Errorf("rate limited")
			}
			out := make([]llm.Assessment, len(req.Items))
			for i, it := range req.Items {
				out[i] = llm.Assessment{ItemID: it.ID, Relevance: 50, Ragebait: 10, CultureWar: 10, ClusterKey: "t/k"}
			}
			return out, nil
		},
	}
	scores := &mocks.ScoreStoreMock{
		UpsertScoresFunc: func(ctx context.Context, s []domain.Score) error { return nil },
	}

	e := NewEngine(items, scores, testPrefStore(), classifier, EngineConfig{BatchSize: 2, Pause: time.Millisecond})
	require.NoError(t, e.Run(context.Background()), "a failed batch never fails the run")

	assert.Len(t, classifier.ClassifyCalls(), 2, "second batch still runs")
	require.Len(t, scores.UpsertScoresCalls(), 1, "nothing written for the failed batch")
	assert.Equal(t, int64(3), scores.UpsertScoresCalls()[0].Scores[0].ItemID)
}

func TestEngine_Run_UpsertFailureSkipped(t *testing.T) {
	items := &mocks.ItemStoreMock{
		GetUnscoredItemsFunc: func(ctx context.Context, window time.Duration, limit int) ([]domain.UnscoredItem, error) {
			return unscored(2), nil
		},
	}
	classifier := &mocks.ClassifierMock{
		ClassifyFunc: func(ctx context.Context, req llm.ClassifyRequest) ([]llm.Assessment, error) {
			out := make([]llm.Assessment, len(req.Items))
			for i, it := range req.Items {
				out[i] = llm.Assessment{ItemID: it.ID, Relevance: 50, Ragebait: 10, CultureWar: 10, ClusterKey: "t/k"}
			}
			return out, nil
		},
	}
	upserts := 0
	scores := &mocks.ScoreStoreMock{
		UpsertScoresFunc: func(ctx context.Context, s []domain.Score) error {
			upserts++
			if upserts == 1 {
				return fmt.Errorf("database is locked")
			}
			return nil
		},
	}

	e := NewEngine(items, scores, testPrefStore(), classifier, EngineConfig{BatchSize: 1, Pause: time.Millisecond})
	require.NoError(t, e.Run(context.Background()))
	assert.Equal(t, 2, upserts, "write failure on one batch does not stop the next")
}

func TestEngine_Run_NoItems(t *testing.T) {
	items := &mocks.ItemStoreMock{
		GetUnscoredItemsFunc: func(ctx context.Context, window time.Duration, limit int) ([]domain.UnscoredItem, error) {
			return nil, nil
		},
	}
	classifier := &mocks.ClassifierMock{}

	e := NewEngine(items, &mocks.ScoreStoreMock{}, testPrefStore(), classifier, EngineConfig{})
	require.NoError(t, e.Run(context.Background()))
	assert.Empty(t, classifier.ClassifyCalls())
}

func TestEngine_Run_PrefsError(t *testing.T) {
	prefs := &mocks.PrefStoreMock{
		GetFunc: func(ctx context.Context) (domain.Preferences, error) {
			return domain.Preferences{}, fmt.Errorf("no database")
		},
	}

	e := NewEngine(&mocks.ItemStoreMock{}, &mocks.ScoreStoreMock{}, prefs, &mocks.ClassifierMock{}, EngineConfig{})
	require.Error(t, e.Run(context.Background()))
}

func TestChunkItems(t *testing.T) {
	assert.Len(t, chunkItems(unscored(5), 2), 3)
	assert.Len(t, chunkItems(unscored(4), 2), 2)
	assert.Len(t, chunkItems(unscored(1), 25), 1)
	assert.Empty(t, chunkItems(nil, 25))
}

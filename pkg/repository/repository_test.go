package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calmfeed/calmfeed/pkg/domain"
	"github.com/calmfeed/calmfeed/pkg/urlnorm"
)

func setupTestDB(t *testing.T) (*Repositories, func()) {
	t.Helper()

	cfg := Config{
		DSN:          ":memory:",
		MaxOpenConns: 1, // in-memory db must stay on a single connection
	}

	repos, err := NewRepositories(context.Background(), cfg)
	require.NoError(t, err)

	return repos, func() {
		require.NoError(t, repos.Close())
	}
}

func seedSource(t *testing.T, repos *Repositories, name string) int64 {
	t.Helper()
	ctx := context.Background()

	err := repos.Source.Seed(ctx, []domain.Source{{Name: name, FeedURL: "https://example.com/" + name + ".xml", Enabled: true}})
	require.NoError(t, err)

	sources, err := repos.Source.GetEnabled(ctx)
	require.NoError(t, err)
	for _, s := range sources {
		if s.Name == name {
			return s.ID
		}
	}
	t.Fatalf("source %s not found after seeding", name)
	return 0
}

func makeItem(sourceID int64, rawURL string) *domain.Item {
	canonical := urlnorm.Canonicalize(rawURL)
	hash := urlnorm.DedupKey(canonical)
	return &domain.Item{
		SourceID: sourceID,
		Title:    "title for " + rawURL,
		URL:      canonical,
		URLHash:  hash[:],
		Excerpt:  "excerpt",
	}
}

func TestSourceRepository_SeedIdempotent(t *testing.T) {
	repos, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	seed := []domain.Source{
		{Name: "Hacker News", FeedURL: "https://hnrss.org/frontpage", Enabled: true},
		{Name: "Lobsters", FeedURL: "https://lobste.rs/rss", Enabled: true},
	}
	require.NoError(t, repos.Source.Seed(ctx, seed))
	require.NoError(t, repos.Source.Seed(ctx, seed)) // second run is a no-op upsert

	sources, err := repos.Source.GetEnabled(ctx)
	require.NoError(t, err)
	assert.Len(t, sources, 2)

	// disabling removes from the enabled set
	require.NoError(t, repos.Source.SetEnabled(ctx, sources[0].ID, false))
	sources, err = repos.Source.GetEnabled(ctx)
	require.NoError(t, err)
	assert.Len(t, sources, 1)
}

func TestItemRepository_CreateItem_Duplicate(t *testing.T) {
	repos, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()
	srcID := seedSource(t, repos, "src")

	item := makeItem(srcID, "https://example.com/story?utm_source=x")
	require.NoError(t, repos.Item.CreateItem(ctx, item))
	assert.NotZero(t, item.ID)

	// same canonical URL sighted again: rejected by the dedup constraint
	dup := makeItem(srcID, "https://example.com/story#comments")
	err := repos.Item.CreateItem(ctx, dup)
	require.ErrorIs(t, err, ErrAlreadyExists)

	// the original row is untouched
	stored, err := repos.Item.GetItem(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, item.Title, stored.Title)
}

func TestItemRepository_UpdateItemExtraction(t *testing.T) {
	repos, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()
	srcID := seedSource(t, repos, "src")

	open := makeItem(srcID, "https://example.com/open")
	require.NoError(t, repos.Item.CreateItem(ctx, open))
	require.NoError(t, repos.Item.UpdateItemExtraction(ctx, open.ID, "full article text", false))

	stored, err := repos.Item.GetItem(ctx, open.ID)
	require.NoError(t, err)
	assert.Equal(t, "full article text", stored.RawText)
	assert.False(t, stored.Paywalled)

	// paywalled page: text is discarded, flag set
	gated := makeItem(srcID, "https://example.com/gated")
	require.NoError(t, repos.Item.CreateItem(ctx, gated))
	require.NoError(t, repos.Item.UpdateItemExtraction(ctx, gated.ID, "teaser text", true))

	stored, err = repos.Item.GetItem(ctx, gated.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.RawText, "paywalled raw text must not be persisted")
	assert.True(t, stored.Paywalled)
}

func TestItemRepository_GetUnscoredItems(t *testing.T) {
	repos, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()
	srcID := seedSource(t, repos, "src")

	plain := makeItem(srcID, "https://example.com/a")
	require.NoError(t, repos.Item.CreateItem(ctx, plain))

	gated := makeItem(srcID, "https://example.com/b")
	require.NoError(t, repos.Item.CreateItem(ctx, gated))
	require.NoError(t, repos.Item.UpdateItemExtraction(ctx, gated.ID, "x", true))

	scored := makeItem(srcID, "https://example.com/c")
	require.NoError(t, repos.Item.CreateItem(ctx, scored))
	require.NoError(t, repos.Score.UpsertScores(ctx, []domain.Score{{ItemID: scored.ID, Relevance: 50, ClusterKey: "t/k", Tone: "neutral", Perspective: "neutral"}}))

	unscored, err := repos.Item.GetUnscoredItems(ctx, 7*24*time.Hour, 500)
	require.NoError(t, err)
	require.Len(t, unscored, 1, "paywalled and already-scored items are excluded")
	assert.Equal(t, plain.ID, unscored[0].ID)
	assert.Equal(t, "src", unscored[0].SourceName)

	// zero window excludes everything
	unscored, err = repos.Item.GetUnscoredItems(ctx, 0, 500)
	require.NoError(t, err)
	assert.Empty(t, unscored)
}

func TestScoreRepository_UpsertIdempotent(t *testing.T) {
	repos, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()
	srcID := seedSource(t, repos, "src")

	item := makeItem(srcID, "https://example.com/story")
	require.NoError(t, repos.Item.CreateItem(ctx, item))

	score := domain.Score{
		ItemID:         item.ID,
		Relevance:      72,
		Ragebait:       15,
		CultureWar:     5,
		Novelty:        60,
		Topics:         []string{"ai", "tools"},
		ClusterKey:     "ai/releases",
		CalmReason:     "relevant and calm",
		ShouldRead:     true,
		Tone:           "analysis",
		ChallengeValue: 20,
		Perspective:    "neutral",
	}
	require.NoError(t, repos.Score.UpsertScores(ctx, []domain.Score{score}))

	first, err := repos.Score.GetScore(ctx, item.ID)
	require.NoError(t, err)
	require.NotNil(t, first)

	// re-running with identical input overwrites every field in place
	require.NoError(t, repos.Score.UpsertScores(ctx, []domain.Score{score}))

	second, err := repos.Score.GetScore(ctx, item.ID)
	require.NoError(t, err)
	require.NotNil(t, second)

	firstNoTime, secondNoTime := *first, *second
	firstNoTime.CreatedAt, secondNoTime.CreatedAt = time.Time{}, time.Time{}
	assert.Equal(t, firstNoTime, secondNoTime, "re-classification must be identical except the timestamp")

	// still exactly one row
	var count int
	require.NoError(t, repos.DB.Get(&count, "SELECT COUNT(*) FROM scores WHERE item_id = ?", item.ID))
	assert.Equal(t, 1, count)
}

func TestScoreRepository_UpsertAtomic(t *testing.T) {
	repos, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()
	srcID := seedSource(t, repos, "src")

	item := makeItem(srcID, "https://example.com/story")
	require.NoError(t, repos.Item.CreateItem(ctx, item))

	batch := []domain.Score{
		{ItemID: item.ID, Relevance: 50, ClusterKey: "a/b", Tone: "neutral", Perspective: "neutral"},
		{ItemID: 99999, Relevance: 50, ClusterKey: "a/b", Tone: "neutral", Perspective: "neutral"}, // violates FK
	}
	err := repos.Score.UpsertScores(ctx, batch)
	require.Error(t, err)

	// nothing from the failed batch may persist
	var count int
	require.NoError(t, repos.DB.Get(&count, "SELECT COUNT(*) FROM scores"))
	assert.Zero(t, count, "failed batch must write nothing")
}

func TestReadRepository(t *testing.T) {
	repos, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()
	srcID := seedSource(t, repos, "src")

	item := makeItem(srcID, "https://example.com/story")
	require.NoError(t, repos.Item.CreateItem(ctx, item))

	require.NoError(t, repos.Read.MarkRead(ctx, item.ID))
	require.NoError(t, repos.Read.MarkRead(ctx, item.ID)) // idempotent

	read, err := repos.Read.IsRead(ctx, item.ID)
	require.NoError(t, err)
	assert.True(t, read)

	var count int
	require.NoError(t, repos.DB.Get(&count, "SELECT COUNT(*) FROM reads"))
	assert.Equal(t, 1, count, "mark-read must never duplicate")

	require.NoError(t, repos.Read.ResetReads(ctx))
	read, err = repos.Read.IsRead(ctx, item.ID)
	require.NoError(t, err)
	assert.False(t, read)
}

func TestReadRepository_MarkAllRead(t *testing.T) {
	repos, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()
	srcID := seedSource(t, repos, "src")

	accepted := makeItem(srcID, "https://example.com/accepted")
	require.NoError(t, repos.Item.CreateItem(ctx, accepted))
	rejected := makeItem(srcID, "https://example.com/rejected")
	require.NoError(t, repos.Item.CreateItem(ctx, rejected))

	require.NoError(t, repos.Score.UpsertScores(ctx, []domain.Score{
		{ItemID: accepted.ID, Relevance: 70, ShouldRead: true, ClusterKey: "a/b", Tone: "neutral", Perspective: "neutral"},
		{ItemID: rejected.ID, Relevance: 10, ShouldRead: false, ClusterKey: "a/b", Tone: "neutral", Perspective: "neutral"},
	}))

	require.NoError(t, repos.Read.MarkAllRead(ctx))

	read, err := repos.Read.IsRead(ctx, accepted.ID)
	require.NoError(t, err)
	assert.True(t, read)

	read, err = repos.Read.IsRead(ctx, rejected.ID)
	require.NoError(t, err)
	assert.False(t, read, "mark-all-read covers accepted items only")
}

func TestPrefRepository(t *testing.T) {
	repos, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	// defaults before anything is stored
	prefs, err := repos.Pref.Get(ctx)
	require.NoError(t, err)
	assert.Empty(t, prefs.ProfileText)
	assert.Equal(t, domain.DefaultThresholds(), prefs.Thresholds)

	require.NoError(t, repos.Pref.SetProfile(ctx, "interested in space and compilers"))

	custom := domain.DefaultThresholds()
	custom.Relevance = 55
	require.NoError(t, repos.Pref.SetThresholds(ctx, custom))

	prefs, err = repos.Pref.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "interested in space and compilers", prefs.ProfileText)
	assert.Equal(t, 55, prefs.Thresholds.Relevance)
	assert.Equal(t, 65, prefs.Thresholds.Ragebait, "untouched knobs keep defaults")
}

func TestScoreRepository_GetScoredItems_Modes(t *testing.T) {
	repos, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()
	srcID := seedSource(t, repos, "src")

	accepted := makeItem(srcID, "https://example.com/accepted")
	require.NoError(t, repos.Item.CreateItem(ctx, accepted))
	acceptedRead := makeItem(srcID, "https://example.com/accepted-read")
	require.NoError(t, repos.Item.CreateItem(ctx, acceptedRead))
	rejected := makeItem(srcID, "https://example.com/rejected")
	require.NoError(t, repos.Item.CreateItem(ctx, rejected))

	require.NoError(t, repos.Score.UpsertScores(ctx, []domain.Score{
		{ItemID: accepted.ID, Relevance: 70, ShouldRead: true, ClusterKey: "a/b", Tone: "neutral", Perspective: "neutral"},
		{ItemID: acceptedRead.ID, Relevance: 60, ShouldRead: true, ClusterKey: "c/d", Tone: "neutral", Perspective: "neutral"},
		{ItemID: rejected.ID, Relevance: 10, ShouldRead: false, ClusterKey: "e/f", Tone: "outrage", Perspective: "neutral"},
	}))
	require.NoError(t, repos.Read.MarkRead(ctx, acceptedRead.ID))

	q := TimelineQuery{Limit: 100, CreatedWindow: 7 * 24 * time.Hour, EffectiveWindow: 14 * 24 * time.Hour}

	q.Mode = ModeAll
	rows, err := repos.Score.GetScoredItems(ctx, q)
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	q.Mode = ModeUnread
	rows, err = repos.Score.GetScoredItems(ctx, q)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, accepted.ID, rows[0].ID)

	q.Mode = ModeRejected
	rows, err = repos.Score.GetScoredItems(ctx, q)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, rejected.ID, rows[0].ID)
	assert.Equal(t, "src", rows[0].SourceName)
}

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, `
llm:
  api_key: test-key
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Listen)
	assert.Equal(t, 30*time.Second, cfg.Server.Timeout)
	assert.Equal(t, "file:calmfeed.db?cache=shared&mode=rwc&_txlock=immediate", cfg.Database.DSN)
	assert.Equal(t, 10, cfg.Database.MaxOpenConns)

	assert.Equal(t, 20*time.Second, cfg.Ingest.FeedTimeout)
	assert.Equal(t, "calmfeed/1.0", cfg.Ingest.UserAgent)

	assert.Equal(t, "gpt-4o-mini", cfg.LLM.Model)
	assert.InDelta(t, 0.3, cfg.LLM.Temperature, 0.001)
	assert.Equal(t, 90*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, 25, cfg.LLM.Classification.BatchSize)
	assert.Equal(t, 500*time.Millisecond, cfg.LLM.Classification.Pause)
	assert.Equal(t, 7*24*time.Hour, cfg.LLM.Classification.Window)
	assert.Equal(t, 500, cfg.LLM.Classification.Limit)

	assert.Equal(t, 30*time.Minute, cfg.Schedule.IngestInterval)
	assert.Equal(t, 10*time.Minute, cfg.Schedule.ClassifyInterval)

	assert.Equal(t, defaultTrustedSources, cfg.Timeline.TrustedSources)
	assert.Equal(t, 3, cfg.Timeline.MaxPerSource)
	assert.Equal(t, 200, cfg.Timeline.Limit)
	assert.Equal(t, 14*24*time.Hour, cfg.Timeline.EffectiveWindow)
}

func TestLoad_Overrides(t *testing.T) {
	path := writeConfig(t, `
server:
  listen: ":9090"
  timeout: 60s
llm:
  api_key: test-key
  model: llama3
  endpoint: http://localhost:11434/v1
  classification:
    batch_size: 10
    pause: 1s
timeline:
  trusted_sources:
    - My Feed
  max_per_source: 2
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Listen)
	assert.Equal(t, "llama3", cfg.LLM.Model)
	assert.Equal(t, "http://localhost:11434/v1", cfg.LLM.Endpoint)
	assert.Equal(t, 10, cfg.LLM.Classification.BatchSize)
	assert.Equal(t, time.Second, cfg.LLM.Classification.Pause)
	assert.Equal(t, []string{"My Feed"}, cfg.Timeline.TrustedSources)
	assert.Equal(t, 2, cfg.Timeline.MaxPerSource)
}

func TestLoad_Sources(t *testing.T) {
	path := writeConfig(t, `
llm:
  api_key: test-key
sources:
  - name: Hacker News
    feed_url: https://hnrss.org/frontpage
  - name: Old Blog
    feed_url: https://example.com/feed.xml
    disabled: true
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Len(t, cfg.Sources, 2)
	assert.Equal(t, "Hacker News", cfg.Sources[0].Name)
	assert.False(t, cfg.Sources[0].Disabled)
	assert.True(t, cfg.Sources[1].Disabled)
}

func TestLoad_SourceMissingURL(t *testing.T) {
	path := writeConfig(t, `
llm:
  api_key: test-key
sources:
  - name: Hacker News
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sources[0].feed_url is required")
}

func TestLoad_EnvExpansion(t *testing.T) {
	t.Setenv("CALMFEED_TEST_KEY", "secret-from-env")
	path := writeConfig(t, `
llm:
  api_key: ${CALMFEED_TEST_KEY}
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "secret-from-env", cfg.LLM.APIKey)
}

func TestLoad_MissingAPIKey(t *testing.T) {
	path := writeConfig(t, `
llm:
  model: gpt-4o-mini
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "llm.api_key is required")
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name: "temperature out of range",
			yaml: `
llm:
  api_key: k
  temperature: 3.0
`,
			wantErr: "llm.temperature must be between 0 and 2",
		},
		{
			name: "negative batch size",
			yaml: `
llm:
  api_key: k
  classification:
    batch_size: -1
`,
			wantErr: "llm.classification.batch_size must be at least 1",
		},
		{
			name: "bad max per source",
			yaml: `
llm:
  api_key: k
timeline:
  max_per_source: -2
`,
			wantErr: "timeline.max_per_source must be at least 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad_FileMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	require.Error(t, err)
}

func TestGenerateSchema(t *testing.T) {
	schema, err := GenerateSchema()
	require.NoError(t, err)
	require.NotNil(t, schema)
}

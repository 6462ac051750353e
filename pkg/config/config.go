package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

//go:generate go run ../../cmd/schema/main.go schema.json

// Config holds the application configuration
type Config struct {
	Server struct {
		Listen  string        `yaml:"listen" json:"listen" jsonschema:"default=:8080,description=HTTP server listen address"`
		Timeout time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=HTTP server timeout"`
	} `yaml:"server" json:"server" jsonschema:"description=Server configuration"`

	Database struct {
		DSN             string `yaml:"dsn" json:"dsn" jsonschema:"default=file:calmfeed.db?cache=shared&mode=rwc,description=Database connection string"`
		MaxOpenConns    int    `yaml:"max_open_conns" json:"max_open_conns" jsonschema:"default=10,description=Maximum number of open connections"`
		MaxIdleConns    int    `yaml:"max_idle_conns" json:"max_idle_conns" jsonschema:"default=5,description=Maximum number of idle connections"`
		ConnMaxLifetime int    `yaml:"conn_max_lifetime" json:"conn_max_lifetime" jsonschema:"default=3600,description=Connection maximum lifetime in seconds"`
	} `yaml:"database" json:"database" jsonschema:"description=Database configuration"`

	Sources []SourceConfig `yaml:"sources" json:"sources" jsonschema:"description=Feed sources seeded into the database on ingest"`

	Ingest IngestConfig `yaml:"ingest" json:"ingest" jsonschema:"description=Feed ingestion configuration"`

	LLM LLMConfig `yaml:"llm" json:"llm" jsonschema:"description=LLM configuration for item scoring"`

	Timeline TimelineConfig `yaml:"timeline" json:"timeline" jsonschema:"description=Timeline clustering configuration"`

	Schedule ScheduleConfig `yaml:"schedule" json:"schedule" jsonschema:"description=Intervals for the combined run mode"`
}

// ScheduleConfig holds intervals for the combined run mode
type ScheduleConfig struct {
	IngestInterval   time.Duration `yaml:"ingest_interval" json:"ingest_interval" jsonschema:"default=30m,description=Time between ingestion passes"`
	ClassifyInterval time.Duration `yaml:"classify_interval" json:"classify_interval" jsonschema:"default=10m,description=Time between classification passes"`
}

// SourceConfig declares a single feed source. Sources are seeded into the
// database by name, re-running ingest with an updated list adds new ones and
// updates feed URLs of existing ones.
type SourceConfig struct {
	Name     string `yaml:"name" json:"name" jsonschema:"required,description=Source display name"`
	FeedURL  string `yaml:"feed_url" json:"feed_url" jsonschema:"required,description=RSS/Atom feed URL"`
	Disabled bool   `yaml:"disabled" json:"disabled" jsonschema:"default=false,description=Skip this source during ingestion"`
}

// IngestConfig holds feed and article fetching settings
type IngestConfig struct {
	FeedTimeout    time.Duration `yaml:"feed_timeout" json:"feed_timeout" jsonschema:"default=20s,description=Timeout per feed fetch"`
	ArticleTimeout time.Duration `yaml:"article_timeout" json:"article_timeout" jsonschema:"default=20s,description=Timeout per article fetch"`
	UserAgent      string        `yaml:"user_agent" json:"user_agent" jsonschema:"default=calmfeed/1.0,description=User agent for HTTP requests"`
}

// ClassificationConfig holds batch scoring settings
type ClassificationConfig struct {
	BatchSize int           `yaml:"batch_size" json:"batch_size" jsonschema:"default=25,minimum=1,description=Number of items to score in one request"`
	Pause     time.Duration `yaml:"pause" json:"pause" jsonschema:"default=500ms,description=Pause between batches"`
	Window    time.Duration `yaml:"window" json:"window" jsonschema:"default=168h,description=Only items created within this window are scored"`
	Limit     int           `yaml:"limit" json:"limit" jsonschema:"default=500,minimum=1,description=Maximum items per scoring run"`
}

// LLMConfig holds LLM configuration for item scoring
type LLMConfig struct {
	Endpoint       string               `yaml:"endpoint" json:"endpoint" jsonschema:"description=OpenAI-compatible API endpoint"`
	APIKey         string               `yaml:"api_key" json:"api_key" jsonschema:"required,description=API key (can use environment variable)"`
	Model          string               `yaml:"model" json:"model" jsonschema:"default=gpt-4o-mini,description=Model name"`
	Temperature    float64              `yaml:"temperature" json:"temperature" jsonschema:"default=0.3,description=Temperature for response generation"`
	MaxTokens      int                  `yaml:"max_tokens" json:"max_tokens" jsonschema:"default=4096,description=Maximum tokens in response"`
	Timeout        time.Duration        `yaml:"timeout" json:"timeout" jsonschema:"default=90s,description=Request timeout"`
	Classification ClassificationConfig `yaml:"classification" json:"classification" jsonschema:"description=Batch scoring settings"`
}

// TimelineConfig holds clustering and diversity settings
type TimelineConfig struct {
	TrustedSources  []string      `yaml:"trusted_sources" json:"trusted_sources" jsonschema:"description=Source names whose items win cluster primary selection"`
	MaxPerSource    int           `yaml:"max_per_source" json:"max_per_source" jsonschema:"default=3,minimum=1,description=Maximum clusters fronted by a single source"`
	Limit           int           `yaml:"limit" json:"limit" jsonschema:"default=200,minimum=1,description=Maximum scored rows fed to clustering"`
	CreatedWindow   time.Duration `yaml:"created_window" json:"created_window" jsonschema:"default=168h,description=Only items created within this window are shown"`
	EffectiveWindow time.Duration `yaml:"effective_window" json:"effective_window" jsonschema:"default=336h,description=Only items published within this window are shown"`
	MaxAlternates   int           `yaml:"max_alternates" json:"max_alternates" jsonschema:"default=3,description=Alternate sources shown per cluster before overflow count"`
}

// defaultTrustedSources front their clusters ahead of any other source
var defaultTrustedSources = []string{"Hacker News", "Hacker News Best", "Hacker News Newest 50+", "Lobsters"}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // file path comes from CLI flag
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// expand environment variables
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	// set defaults for server
	if cfg.Server.Listen == "" {
		cfg.Server.Listen = ":8080"
	}
	if cfg.Server.Timeout == 0 {
		cfg.Server.Timeout = 30 * time.Second
	}

	// set defaults for database
	if cfg.Database.DSN == "" {
		cfg.Database.DSN = "file:calmfeed.db?cache=shared&mode=rwc&_txlock=immediate"
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 10
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 5
	}
	if cfg.Database.ConnMaxLifetime == 0 {
		cfg.Database.ConnMaxLifetime = 3600
	}

	// set defaults for ingestion
	if cfg.Ingest.FeedTimeout == 0 {
		cfg.Ingest.FeedTimeout = 20 * time.Second
	}
	if cfg.Ingest.ArticleTimeout == 0 {
		cfg.Ingest.ArticleTimeout = 20 * time.Second
	}
	if cfg.Ingest.UserAgent == "" {
		cfg.Ingest.UserAgent = "calmfeed/1.0"
	}

	// set defaults for LLM
	if cfg.LLM.Model == "" {
		cfg.LLM.Model = "gpt-4o-mini"
	}
	if cfg.LLM.Temperature == 0 {
		cfg.LLM.Temperature = 0.3
	}
	if cfg.LLM.MaxTokens == 0 {
		cfg.LLM.MaxTokens = 4096
	}
	if cfg.LLM.Timeout == 0 {
		cfg.LLM.Timeout = 90 * time.Second
	}
	if cfg.LLM.Classification.BatchSize == 0 {
		cfg.LLM.Classification.BatchSize = 25
	}
	if cfg.LLM.Classification.Pause == 0 {
		cfg.LLM.Classification.Pause = 500 * time.Millisecond
	}
	if cfg.LLM.Classification.Window == 0 {
		cfg.LLM.Classification.Window = 7 * 24 * time.Hour
	}
	if cfg.LLM.Classification.Limit == 0 {
		cfg.LLM.Classification.Limit = 500
	}

	// set defaults for timeline
	if len(cfg.Timeline.TrustedSources) == 0 {
		cfg.Timeline.TrustedSources = defaultTrustedSources
	}
	if cfg.Timeline.MaxPerSource == 0 {
		cfg.Timeline.MaxPerSource = 3
	}
	if cfg.Timeline.Limit == 0 {
		cfg.Timeline.Limit = 200
	}
	if cfg.Timeline.CreatedWindow == 0 {
		cfg.Timeline.CreatedWindow = 7 * 24 * time.Hour
	}
	if cfg.Timeline.EffectiveWindow == 0 {
		cfg.Timeline.EffectiveWindow = 14 * 24 * time.Hour
	}
	if cfg.Timeline.MaxAlternates == 0 {
		cfg.Timeline.MaxAlternates = 3
	}

	// set defaults for schedule
	if cfg.Schedule.IngestInterval == 0 {
		cfg.Schedule.IngestInterval = 30 * time.Minute
	}
	if cfg.Schedule.ClassifyInterval == 0 {
		cfg.Schedule.ClassifyInterval = 10 * time.Minute
	}

	// validate configuration
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	// verify against embedded schema
	if err := VerifyAgainstEmbeddedSchema(&cfg); err != nil {
		// log warning but don't fail - schema validation is supplementary
		fmt.Printf("warning: schema validation failed: %v\n", err)
	}

	return &cfg, nil
}

// validate checks configuration for correctness
func validate(cfg *Config) error {

	// validate LLM config, the api key is the only hard credential requirement
	if cfg.LLM.APIKey == "" {
		return fmt.Errorf("llm.api_key is required")
	}
	if cfg.LLM.Temperature < 0 || cfg.LLM.Temperature > 2 {
		return fmt.Errorf("llm.temperature must be between 0 and 2")
	}
	if cfg.LLM.Classification.BatchSize < 1 {
		return fmt.Errorf("llm.classification.batch_size must be at least 1")
	}
	if cfg.LLM.Classification.Limit < 1 {
		return fmt.Errorf("llm.classification.limit must be at least 1")
	}

	// validate sources
	for i, src := range cfg.Sources {
		if src.Name == "" {
			return fmt.Errorf("sources[%d].name is required", i)
		}
		if src.FeedURL == "" {
			return fmt.Errorf("sources[%d].feed_url is required", i)
		}
	}

	// validate timeline config
	if cfg.Timeline.MaxPerSource < 1 {
		return fmt.Errorf("timeline.max_per_source must be at least 1")
	}

	// validate server config
	if cfg.Server.Timeout < time.Second {
		return fmt.Errorf("server timeout must be at least 1 second")
	}

	return nil
}

// GetServerConfig returns server configuration
func (c *Config) GetServerConfig() (listen string, timeout time.Duration) {
	return c.Server.Listen, c.Server.Timeout
}

// GetLLMConfig returns LLM configuration
func (c *Config) GetLLMConfig() LLMConfig {
	return c.LLM
}

// GetTimelineConfig returns timeline configuration
func (c *Config) GetTimelineConfig() TimelineConfig {
	return c.Timeline
}

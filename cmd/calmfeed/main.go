package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"
	"github.com/jessevdk/go-flags"

	"github.com/calmfeed/calmfeed/pkg/config"
	"github.com/calmfeed/calmfeed/pkg/content"
	"github.com/calmfeed/calmfeed/pkg/domain"
	"github.com/calmfeed/calmfeed/pkg/feed"
	"github.com/calmfeed/calmfeed/pkg/llm"
	"github.com/calmfeed/calmfeed/pkg/pipeline"
	"github.com/calmfeed/calmfeed/pkg/repository"
	"github.com/calmfeed/calmfeed/pkg/scheduler"
	"github.com/calmfeed/calmfeed/server"
)

// Opts with all CLI options
type Opts struct {
	Config string `short:"f" long:"config" env:"CONFIG" default:"config.yml" description:"config file path"`

	IngestCmd   struct{} `command:"ingest" description:"fetch feeds, store new items and extract article text"`
	ClassifyCmd struct{} `command:"classify" description:"score pending items and record accept decisions"`
	ServerCmd   struct{} `command:"server" description:"serve the timeline JSON API"`
	RunCmd      struct{} `command:"run" description:"serve the API with ingest and classify on a schedule"`

	// Common options
	Debug   bool `long:"dbg" env:"DEBUG" description:"debug mode"`
	Version bool `short:"V" long:"version" description:"show version info"`
	NoColor bool `long:"no-color" env:"NO_COLOR" description:"disable color output"`
}

var revision = "unknown"

func main() {
	var opts Opts
	parser := flags.NewParser(&opts, flags.Default)
	parser.SubcommandsOptional = true
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if opts.Version {
		fmt.Printf("Version: %s\nGolang: %s\n", revision, runtime.Version())
		os.Exit(0)
	}

	if opts.NoColor {
		color.NoColor = true
	}
	setupLog(opts.Debug)

	if parser.Active == nil {
		parser.WriteHelp(os.Stderr)
		os.Exit(1)
	}

	cfg, err := config.Load(opts.Config)
	if err != nil {
		log.Printf("[ERROR] can't load config: %v", err)
		os.Exit(1)
	}
	setupLog(opts.Debug, cfg.LLM.APIKey) // re-setup with the key masked

	log.Printf("[INFO] starting calmfeed %s version %s", parser.Active.Name, revision)

	ctx, cancel := context.WithCancel(context.Background())

	// handle termination signals
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan
		log.Print("[INFO] termination signal received")
		cancel()
	}()

	switch parser.Active.Name {
	case "ingest":
		err = runIngest(ctx, cfg)
	case "classify":
		err = runClassify(ctx, cfg)
	case "server":
		err = runServer(ctx, cfg, opts.Debug)
	case "run":
		err = runAll(ctx, cfg, opts.Debug)
	}
	cancel()

	if err != nil {
		log.Printf("[ERROR] %s failed: %v", parser.Active.Name, err)
		os.Exit(1)
	}

	log.Print("[INFO] completed")
}

// runIngest seeds configured sources and executes one ingestion pass
func runIngest(ctx context.Context, cfg *config.Config) error {
	repos, err := openRepositories(ctx, cfg)
	if err != nil {
		return err
	}
	defer repos.Close()

	if err := seedSources(ctx, cfg, repos); err != nil {
		return err
	}
	return newIngestor(cfg, repos).Run(ctx)
}

// runClassify executes one scoring pass over unscored items
func runClassify(ctx context.Context, cfg *config.Config) error {
	repos, err := openRepositories(ctx, cfg)
	if err != nil {
		return err
	}
	defer repos.Close()

	return newEngine(cfg, repos).Run(ctx)
}

// runServer starts the timeline API server, blocks until termination
func runServer(ctx context.Context, cfg *config.Config, debug bool) error {
	repos, err := openRepositories(ctx, cfg)
	if err != nil {
		return err
	}
	defer repos.Close()

	srv := server.New(cfg, repos.Score, repos.Read, repos.Pref, revision, debug)
	return srv.Run(ctx)
}

// runAll starts the scheduler alongside the API server, the single-binary
// deployment mode
func runAll(ctx context.Context, cfg *config.Config, debug bool) error {
	repos, err := openRepositories(ctx, cfg)
	if err != nil {
		return err
	}
	defer repos.Close()

	if err := seedSources(ctx, cfg, repos); err != nil {
		return err
	}

	sched := scheduler.NewScheduler(newIngestor(cfg, repos), newEngine(cfg, repos), scheduler.Config{
		IngestInterval:   cfg.Schedule.IngestInterval,
		ClassifyInterval: cfg.Schedule.ClassifyInterval,
	})
	sched.Start(ctx)
	defer sched.Stop()

	srv := server.New(cfg, repos.Score, repos.Read, repos.Pref, revision, debug)
	return srv.Run(ctx)
}

// seedSources upserts the configured feed sources, no-op when none declared
func seedSources(ctx context.Context, cfg *config.Config, repos *repository.Repositories) error {
	if len(cfg.Sources) == 0 {
		return nil
	}
	seed := make([]domain.Source, len(cfg.Sources))
	for i, src := range cfg.Sources {
		seed[i] = domain.Source{Name: src.Name, FeedURL: src.FeedURL, Enabled: !src.Disabled}
	}
	if err := repos.Source.Seed(ctx, seed); err != nil {
		return fmt.Errorf("seed sources: %w", err)
	}
	return nil
}

func newIngestor(cfg *config.Config, repos *repository.Repositories) *pipeline.Ingestor {
	parser := feed.NewParser(cfg.Ingest.FeedTimeout, cfg.Ingest.UserAgent)
	extractor := content.NewExtractor(cfg.Ingest.ArticleTimeout, cfg.Ingest.UserAgent)
	return pipeline.NewIngestor(repos.Source, repos.Item, parser, extractor)
}

func newEngine(cfg *config.Config, repos *repository.Repositories) *pipeline.Engine {
	classifier := llm.NewClassifier(cfg.GetLLMConfig())
	return pipeline.NewEngine(repos.Item, repos.Score, repos.Pref, classifier, pipeline.EngineConfig{
		BatchSize: cfg.LLM.Classification.BatchSize,
		Pause:     cfg.LLM.Classification.Pause,
		Window:    cfg.LLM.Classification.Window,
		Limit:     cfg.LLM.Classification.Limit,
	})
}

func openRepositories(ctx context.Context, cfg *config.Config) (*repository.Repositories, error) {
	repos, err := repository.NewRepositories(ctx, repository.Config{
		DSN:             cfg.Database.DSN,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Database.ConnMaxLifetime) * time.Second,
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return repos, nil
}

func setupLog(dbg bool, secs ...string) {
	logOpts := []lgr.Option{lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError}
	if dbg {
		logOpts = []lgr.Option{lgr.Debug, lgr.CallerFile, lgr.CallerFunc, lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError}
	}

	colorizer := lgr.Mapper{
		ErrorFunc:  func(s string) string { return color.New(color.FgHiRed).Sprint(s) },
		WarnFunc:   func(s string) string { return color.New(color.FgRed).Sprint(s) },
		InfoFunc:   func(s string) string { return color.New(color.FgYellow).Sprint(s) },
		DebugFunc:  func(s string) string { return color.New(color.FgWhite).Sprint(s) },
		CallerFunc: func(s string) string { return color.New(color.FgBlue).Sprint(s) },
		TimeFunc:   func(s string) string { return color.New(color.FgCyan).Sprint(s) },
	}
	logOpts = append(logOpts, lgr.Map(colorizer))
	if len(secs) > 0 {
		logOpts = append(logOpts, lgr.Secret(secs...))
	}
	lgr.SetupStdLogger(logOpts...)
	lgr.Setup(logOpts...)
}

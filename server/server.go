// Package server exposes the read-side JSON API: the clustered timeline,
// read marks and reader preferences.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"
	"github.com/go-pkgz/rest/logger"
	"github.com/go-pkgz/routegroup"

	"github.com/calmfeed/calmfeed/pkg/config"
	"github.com/calmfeed/calmfeed/pkg/domain"
	"github.com/calmfeed/calmfeed/pkg/repository"
)

//go:generate moq -out mocks/config.go -pkg mocks -skip-ensure -fmt goimports . ConfigProvider
//go:generate moq -out mocks/score_reader.go -pkg mocks -skip-ensure -fmt goimports . ScoreReader
//go:generate moq -out mocks/read_store.go -pkg mocks -skip-ensure -fmt goimports . ReadStore
//go:generate moq -out mocks/pref_store.go -pkg mocks -skip-ensure -fmt goimports . PrefStore

// Server represents HTTP server instance
type Server struct {
	config  ConfigProvider
	scores  ScoreReader
	reads   ReadStore
	prefs   PrefStore
	version string
	debug   bool

	lock       sync.Mutex
	httpServer *http.Server
	router     *routegroup.Bundle
}

// ScoreReader provides scored rows for the timeline
type ScoreReader interface {
	GetScoredItems(ctx context.Context, q repository.TimelineQuery) ([]domain.ScoredItem, error)
}

// ReadStore manages read marks
type ReadStore interface {
	MarkRead(ctx context.Context, itemID int64) error
	MarkAllRead(ctx context.Context) error
	ResetReads(ctx context.Context) error
}

// PrefStore manages the reader profile and thresholds
type PrefStore interface {
	Get(ctx context.Context) (domain.Preferences, error)
	SetProfile(ctx context.Context, profile string) error
	SetThresholds(ctx context.Context, th domain.Thresholds) error
}

// ConfigProvider provides server configuration
type ConfigProvider interface {
	GetServerConfig() (listen string, timeout time.Duration)
	GetTimelineConfig() config.TimelineConfig
}

// New initializes a new server instance
func New(cfg ConfigProvider, scores ScoreReader, reads ReadStore, prefs PrefStore, version string, debug bool) *Server {
	s := &Server{
		config:  cfg,
		scores:  scores,
		reads:   reads,
		prefs:   prefs,
		version: version,
		debug:   debug,
		router:  routegroup.New(http.NewServeMux()),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// Run starts the HTTP server and handles graceful shutdown
func (s *Server) Run(ctx context.Context) error {
	listen, timeout := s.config.GetServerConfig()
	lgr.Printf("[INFO] starting server on %s", listen)

	s.lock.Lock()
	s.httpServer = &http.Server{
		Addr:         listen,
		Handler:      s.router,
		ReadTimeout:  timeout,
		WriteTimeout: timeout,
	}
	s.lock.Unlock()

	go func() {
		<-ctx.Done()
		lgr.Printf("[INFO] shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			lgr.Printf("[WARN] server shutdown error: %v", err)
		}
	}()

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server error: %w", err)
	}

	return nil
}

// setupMiddleware configures standard middleware for the server
func (s *Server) setupMiddleware() {
	s.router.Use(rest.AppInfo("calmfeed", "calmfeed", s.version))
	s.router.Use(rest.Ping)

	if s.debug {
		s.router.Use(logger.New(logger.Log(lgr.Default()), logger.Prefix("[DEBUG]")).Handler)
	}

	s.router.Use(rest.Recoverer(lgr.Default()))
	s.router.Use(rest.Throttle(100))
	s.router.Use(rest.SizeLimit(64 * 1024)) // 64K, payloads are small
}

// setupRoutes configures application routes
func (s *Server) setupRoutes() {
	s.router.Mount("/api/v1").Route(func(r *routegroup.Bundle) {
		r.HandleFunc("GET /status", s.statusHandler)
		r.HandleFunc("GET /timeline", s.timelineHandler)
		r.HandleFunc("POST /items/{id}/read", s.markReadHandler)
		r.HandleFunc("POST /reads/all", s.markAllReadHandler)
		r.HandleFunc("DELETE /reads", s.resetReadsHandler)
		r.HandleFunc("GET /prefs", s.getPrefsHandler)
		r.HandleFunc("PUT /prefs", s.updatePrefsHandler)
	})
}

// statusHandler returns server status
func (s *Server) statusHandler(w http.ResponseWriter, r *http.Request) {
	status := map[string]interface{}{
		"status":  "ok",
		"version": s.version,
		"time":    time.Now().UTC(),
	}
	renderJSON(w, r, http.StatusOK, status)
}

// renderJSON sends JSON response
func renderJSON(w http.ResponseWriter, _ *http.Request, code int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			lgr.Printf("[ERROR] can't encode response to JSON: %v", err)
		}
	}
}

// renderError sends error response as JSON
func renderError(w http.ResponseWriter, r *http.Request, err error, code int) {
	errMsg := "unknown error"
	if err != nil {
		errMsg = err.Error()
	}
	renderJSON(w, r, code, map[string]string{"error": errMsg})
}

package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"

	"github.com/calmfeed/calmfeed/pkg/domain"
	"github.com/calmfeed/calmfeed/pkg/repository"
	"github.com/calmfeed/calmfeed/pkg/timeline"
)

// timelineHandler returns the clustered, time-bucketed timeline.
// Query params: mode=unread|all|rejected (default unread), limit
func (s *Server) timelineHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	tcfg := s.config.GetTimelineConfig()

	mode := repository.ModeUnread
	switch r.URL.Query().Get("mode") {
	case "", "unread":
	case "all":
		mode = repository.ModeAll
	case "rejected":
		mode = repository.ModeRejected
	default:
		renderError(w, r, fmt.Errorf("invalid mode"), http.StatusBadRequest)
		return
	}

	limit := tcfg.Limit
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		l, err := strconv.Atoi(limitStr)
		if err != nil || l < 1 {
			renderError(w, r, fmt.Errorf("invalid limit"), http.StatusBadRequest)
			return
		}
		limit = l
	}

	rows, err := s.scores.GetScoredItems(ctx, repository.TimelineQuery{
		Mode:            mode,
		Limit:           limit,
		CreatedWindow:   tcfg.CreatedWindow,
		EffectiveWindow: tcfg.EffectiveWindow,
	})
	if err != nil {
		lgr.Printf("[ERROR] failed to get scored items: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}

	tl := timeline.Build(rows, timeline.Options{
		TrustedSources: tcfg.TrustedSources,
		MaxPerSource:   tcfg.MaxPerSource,
		MaxAlternates:  tcfg.MaxAlternates,
	})
	renderJSON(w, r, http.StatusOK, tl)
}

// markReadHandler marks one item as read
func (s *Server) markReadHandler(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		renderError(w, r, fmt.Errorf("invalid item ID"), http.StatusBadRequest)
		return
	}

	if err := s.reads.MarkRead(r.Context(), id); err != nil {
		lgr.Printf("[ERROR] failed to mark item %d read: %v", id, err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	renderJSON(w, r, http.StatusOK, rest.JSON{"status": "ok"})
}

// markAllReadHandler marks every accepted item as read
func (s *Server) markAllReadHandler(w http.ResponseWriter, r *http.Request) {
	if err := s.reads.MarkAllRead(r.Context()); err != nil {
		lgr.Printf("[ERROR] failed to mark all read: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	renderJSON(w, r, http.StatusOK, rest.JSON{"status": "ok"})
}

// resetReadsHandler drops all read marks
func (s *Server) resetReadsHandler(w http.ResponseWriter, r *http.Request) {
	if err := s.reads.ResetReads(r.Context()); err != nil {
		lgr.Printf("[ERROR] failed to reset reads: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	renderJSON(w, r, http.StatusOK, rest.JSON{"status": "ok"})
}

// prefsPayload is the preferences representation on the wire
type prefsPayload struct {
	ProfileText string             `json:"profile_text"`
	Thresholds  *domain.Thresholds `json:"thresholds,omitempty"`
}

// getPrefsHandler returns the reader profile and thresholds
func (s *Server) getPrefsHandler(w http.ResponseWriter, r *http.Request) {
	prefs, err := s.prefs.Get(r.Context())
	if err != nil {
		lgr.Printf("[ERROR] failed to get preferences: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	renderJSON(w, r, http.StatusOK, prefsPayload{ProfileText: prefs.ProfileText, Thresholds: &prefs.Thresholds})
}

// updatePrefsHandler stores the reader profile and, when provided, the
// decision thresholds
func (s *Server) updatePrefsHandler(w http.ResponseWriter, r *http.Request) {
	var payload prefsPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		renderError(w, r, fmt.Errorf("invalid request body"), http.StatusBadRequest)
		return
	}

	if payload.Thresholds != nil {
		if err := validateThresholds(*payload.Thresholds); err != nil {
			renderError(w, r, err, http.StatusBadRequest)
			return
		}
	}

	ctx := r.Context()
	if err := s.prefs.SetProfile(ctx, payload.ProfileText); err != nil {
		lgr.Printf("[ERROR] failed to set profile: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}
	if payload.Thresholds != nil {
		if err := s.prefs.SetThresholds(ctx, *payload.Thresholds); err != nil {
			lgr.Printf("[ERROR] failed to set thresholds: %v", err)
			renderError(w, r, err, http.StatusInternalServerError)
			return
		}
	}
	renderJSON(w, r, http.StatusOK, rest.JSON{"status": "ok"})
}

// validateThresholds checks all knobs are within 0..100
func validateThresholds(th domain.Thresholds) error {
	for _, v := range []int{th.Relevance, th.Ragebait, th.CultureWar, th.ChallengeValue, th.ChallengeRagebait, th.ChallengeCultureWar} {
		if v < 0 || v > 100 {
			return fmt.Errorf("thresholds must be between 0 and 100")
		}
	}
	return nil
}

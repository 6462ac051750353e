package domain

import "time"

// accept reasons recorded with a positive decision
const (
	ReasonPrimary    = "primary"
	ReasonBorderline = "borderline"
	ReasonChallenge  = "challenge"
)

// Score holds the classification result for a single item, one-to-one with
// Item. ShouldRead is always the locally recomputed decision, never the
// oracle's raw suggestion.
type Score struct {
	ItemID         int64
	Relevance      int
	Ragebait       int
	CultureWar     int
	Novelty        int
	Topics         []string
	ClusterKey     string
	CalmReason     string
	ShouldRead     bool
	Tone           string
	ChallengeValue int
	Perspective    string
	CreatedAt      time.Time
}

// ScoredItem is an item joined with its score and read state, the input row
// of the timeline selector
type ScoredItem struct {
	ID          int64      `json:"id"`
	SourceName  string     `json:"source"`
	Title       string     `json:"title"`
	URL         string     `json:"url"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	Relevance   int        `json:"relevance"`
	Ragebait    int        `json:"ragebait"`
	CultureWar  int        `json:"culture_war"`
	Novelty     int        `json:"novelty"`
	Tone        string     `json:"tone,omitempty"`
	Perspective string     `json:"perspective,omitempty"`
	ClusterKey  string     `json:"cluster_key"`
	CalmReason  string     `json:"calm_reason,omitempty"`
	ShouldRead  bool       `json:"should_read"`
	Read        bool       `json:"read"`
}

// EffectiveTime returns the publication time when known, creation time otherwise
func (s *ScoredItem) EffectiveTime() time.Time {
	if s.PublishedAt != nil && !s.PublishedAt.IsZero() {
		return *s.PublishedAt
	}
	return s.CreatedAt
}

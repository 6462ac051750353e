package pipeline

import (
	"github.com/calmfeed/calmfeed/pkg/domain"
	"github.com/calmfeed/calmfeed/pkg/llm"
)

// borderline lane constants, fixed rather than threshold-driven
const (
	borderlineRelevance  = 35
	borderlineRagebait   = 60
	borderlineCultureWar = 40
)

// Decide recomputes the accept decision from the raw scores and the active
// thresholds. The model's own should_read suggestion is deliberately ignored
// so the decision stays deterministic and auditable against stored scores.
// Returns the accept flag and the lane that matched; reason is empty on
// reject.
func Decide(a llm.Assessment, th domain.Thresholds) (shouldRead bool, reason string) {
	switch {
	case a.Relevance >= th.Relevance && a.Ragebait <= th.Ragebait && a.CultureWar <= th.CultureWar:
		return true, domain.ReasonPrimary
	case a.Relevance >= borderlineRelevance && (a.Ragebait <= borderlineRagebait || a.CultureWar <= borderlineCultureWar):
		return true, domain.ReasonBorderline
	case a.ChallengeValue >= th.ChallengeValue && a.Ragebait <= th.ChallengeRagebait && a.CultureWar <= th.ChallengeCultureWar:
		return true, domain.ReasonChallenge
	}
	return false, ""
}

package domain

// Thresholds are the numeric knobs of the acceptance decision. Zero values
// are replaced with defaults by DefaultThresholds / the prefs repository.
type Thresholds struct {
	Relevance           int `json:"relevance"`
	Ragebait            int `json:"ragebait"`
	CultureWar          int `json:"culture_war"`
	ChallengeValue      int `json:"challenge_value"`
	ChallengeRagebait   int `json:"challenge_ragebait"`
	ChallengeCultureWar int `json:"challenge_culture_war"`
}

// DefaultThresholds returns the stock decision knobs
func DefaultThresholds() Thresholds {
	return Thresholds{
		Relevance:           45,
		Ragebait:            65,
		CultureWar:          45,
		ChallengeValue:      60,
		ChallengeRagebait:   50,
		ChallengeCultureWar: 45,
	}
}

// Preferences is the singleton reader profile consumed read-only by the
// classification engine
type Preferences struct {
	ProfileText string
	Thresholds  Thresholds
}

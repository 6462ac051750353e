package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/calmfeed/calmfeed/pkg/domain"
	"github.com/calmfeed/calmfeed/pkg/llm"
)

func TestDecide(t *testing.T) {
	th := domain.DefaultThresholds() // rel>=45 rage<=65 cw<=45, challenge 60/50/45

	tests := []struct {
		name       string
		assessment llm.Assessment
		want       bool
		wantReason string
	}{
		{
			name:       "clean relevant item accepted primary",
			assessment: llm.Assessment{Relevance: 70, Ragebait: 10, CultureWar: 5},
			want:       true,
			wantReason: domain.ReasonPrimary,
		},
		{
			name:       "primary thresholds are inclusive",
			assessment: llm.Assessment{Relevance: 45, Ragebait: 65, CultureWar: 45},
			want:       true,
			wantReason: domain.ReasonPrimary,
		},
		{
			name:       "high ragebait falls through to borderline on low culture war",
			assessment: llm.Assessment{Relevance: 50, Ragebait: 70, CultureWar: 30},
			want:       true,
			wantReason: domain.ReasonBorderline,
		},
		{
			name:       "borderline needs relevance of at least 35",
			assessment: llm.Assessment{Relevance: 34, Ragebait: 10, CultureWar: 10, ChallengeValue: 0},
			want:       false,
		},
		{
			name:       "borderline rejected when both rage and culture war are high",
			assessment: llm.Assessment{Relevance: 40, Ragebait: 61, CultureWar: 41},
			want:       false,
		},
		{
			name:       "low relevance rescued by challenge lane",
			assessment: llm.Assessment{Relevance: 10, Ragebait: 40, CultureWar: 30, ChallengeValue: 70},
			want:       true,
			wantReason: domain.ReasonChallenge,
		},
		{
			name:       "challenge lane blocked by ragebait",
			assessment: llm.Assessment{Relevance: 10, Ragebait: 51, CultureWar: 30, ChallengeValue: 70},
			want:       false,
		},
		{
			name:       "outrage churn rejected",
			assessment: llm.Assessment{Relevance: 10, Ragebait: 90, CultureWar: 80, ChallengeValue: 0},
			want:       false,
		},
		{
			name:       "model should_read suggestion is ignored",
			assessment: llm.Assessment{Relevance: 5, Ragebait: 95, CultureWar: 95, ShouldRead: true},
			want:       false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, reason := Decide(tt.assessment, th)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantReason, reason)
		})
	}
}

func TestDecide_CustomThresholds(t *testing.T) {
	th := domain.Thresholds{Relevance: 80, Ragebait: 20, CultureWar: 20, ChallengeValue: 90, ChallengeRagebait: 10, ChallengeCultureWar: 10}

	// passes default thresholds but not the stricter custom ones; still lands
	// in the borderline lane, which uses fixed constants
	got, reason := Decide(llm.Assessment{Relevance: 50, Ragebait: 30, CultureWar: 30}, th)
	assert.True(t, got)
	assert.Equal(t, domain.ReasonBorderline, reason)

	got, _ = Decide(llm.Assessment{Relevance: 85, Ragebait: 10, CultureWar: 10}, th)
	assert.True(t, got)
}

package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vitasports/backend/internal/model"
)

func TestMatchingScore(t *testing.T) {
	weak := newMatchProfile([]model.TestResult{
		{TestID: "push-ups", MLAnalysis: &model.MLAnalysis{FormScore: 60, PoseAccuracy: 70, CheatDetected: true}},
		{TestID: "plank", MLAnalysis: &model.MLAnalysis{FormScore: 65, PoseAccuracy: 75}},
	})
	strong := newMatchProfile([]model.TestResult{
		{TestID: "squats", MLAnalysis: &model.MLAnalysis{FormScore: 92, PoseAccuracy: 95}},
	})

	tests := []struct {
		name    string
		mentor  model.Mentor
		profile matchProfile
		want    float64
	}{
		{
			name:    "rating only without results",
			mentor:  model.Mentor{Rating: 4.8, Categories: []string{CategoryFormCorrection}},
			profile: newMatchProfile(nil),
			want:    9.6,
		},
		{
			name:    "form correction for weak form",
			mentor:  model.Mentor{Rating: 4.5, Categories: []string{CategoryFormCorrection}},
			profile: weak,
			want:    39,
		},
		{
			name:    "every weakness and a test type, capped",
			mentor:  model.Mentor{Rating: 5, Categories: []string{CategoryFormCorrection, CategoryTechniqueSpecialist, CategoryPostureExpert, "push-ups"}},
			profile: weak,
			want:    100,
		},
		{
			name:    "test type categories add once each",
			mentor:  model.Mentor{Rating: 4, Categories: []string{"plank-coach", "push-ups", "rowing"}},
			profile: weak,
			want:    38,
		},
		{
			name:    "strong user gets no weakness bonus",
			mentor:  model.Mentor{Rating: 4, Categories: []string{CategoryFormCorrection, CategoryPostureExpert}},
			profile: strong,
			want:    8,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, matchingScore(tt.mentor, tt.profile), 0.001)
		})
	}
}

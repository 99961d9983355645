package mlserver

import (
	"math"
	"math/rand/v2"
	"sync"
	"time"
)

const DefaultExercise = "pushup"

type Analysis struct {
	GoodFormPercentage float64 `json:"good_form_percentage"`
	AverageSpeed       float64 `json:"average_speed"`
	ConsistencyScore   float64 `json:"consistency_score"`
}

type AnalysisResult struct {
	Success      bool      `json:"success"`
	ExerciseType string    `json:"exercise_type"`
	Repetitions  int       `json:"repetitions"`
	FormScore    float64   `json:"form_score"`
	Duration     float64   `json:"duration"`
	Analysis     Analysis  `json:"analysis"`
	VideoKey     string    `json:"video_key,omitempty"`
	Message      string    `json:"message"`
	Timestamp    time.Time `json:"timestamp"`
}

// simulator draws the fake metrics. rand.Rand is not safe for concurrent
// use, hence the mutex.
type simulator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func newSimulator(src rand.Source) *simulator {
	return &simulator{rng: rand.New(src)}
}

func (s *simulator) analyze(exercise string, at time.Time) AnalysisResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	return AnalysisResult{
		Success:      true,
		ExerciseType: exercise,
		Repetitions:  10 + s.rng.IntN(20),
		FormScore:    s.between(70, 100),
		Duration:     s.between(30, 60),
		Analysis: Analysis{
			GoodFormPercentage: s.between(70, 100),
			AverageSpeed:       s.between(1, 3),
			ConsistencyScore:   s.between(60, 90),
		},
		Message:   "Video analysis completed (simulation mode)",
		Timestamp: at,
	}
}

// between returns a value in [lo, hi] rounded to one decimal.
func (s *simulator) between(lo, hi float64) float64 {
	return math.Round((lo+s.rng.Float64()*(hi-lo))*10) / 10
}

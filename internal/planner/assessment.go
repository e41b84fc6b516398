package planner

import (
	"errors"
	"fmt"
	"math"
	"time"

	"runcoach/backend/internal/model"
)

var ErrInvalidDaysPerWeek = errors.New("daysPerWeek must be at least 1")

const (
	synthesisWindowDays  = 21
	maxSyntheticRuns     = 10
	minSyntheticDistance = 1.0
	paceJitter           = 0.5
)

var workoutPaceOffset = map[model.RunType]float64{
	model.RunTypeTempo:    -1.0,
	model.RunTypeInterval: -1.5,
	model.RunTypeLong:     0.5,
}

// Synthesizer fabricates a recent run history from a fitness assessment so
// the profiler and scheduler see the same input shape either way.
type Synthesizer struct {
	rng RandomSource
}

func NewSynthesizer(rng RandomSource) *Synthesizer {
	if rng == nil {
		rng = NewSeededSource(0)
	}
	return &Synthesizer{rng: rng}
}

// AssessmentToRuns walks back over the last 21 days from now, keeping each
// day with probability daysPerWeek/7. The most recent day is always kept.
// Runs are returned most recent first.
func (s *Synthesizer) AssessmentToRuns(a model.FitnessAssessment, now time.Time) ([]model.Run, error) {
	if a.DaysPerWeek < 1 {
		return nil, ErrInvalidDaysPerWeek
	}
	days := clampInt(a.DaysPerWeek, 1, 7)
	limit := min(days*2, maxSyntheticRuns)
	avgMiles := math.Max(a.WeeklyMileage, 0) / float64(days)
	easyPace := AssessmentEasyPace(a)
	keep := float64(days) / 7

	runs := make([]model.Run, 0, limit)
	for daysAgo := 0; daysAgo < synthesisWindowDays && len(runs) < limit; daysAgo++ {
		if len(runs) > 0 && s.rng.Float64() >= keep {
			continue
		}
		runType, distance := s.pickWorkout(a, avgMiles)
		distance = math.Max(round1(distance), minSyntheticDistance)
		pace := easyPace + workoutPaceOffset[runType] + (s.rng.Float64()-0.5)*paceJitter
		pace = round1(clamp(pace, minPace, maxPace))

		day := now.UTC().AddDate(0, 0, -daysAgo)
		runs = append(runs, model.Run{
			ID:                    fmt.Sprintf("synthetic-%d", len(runs)),
			Date:                  time.Date(day.Year(), day.Month(), day.Day(), 8+s.rng.Intn(4), 0, 0, 0, time.UTC),
			DistanceMiles:         distance,
			DurationSeconds:       int(math.Round(distance * pace * 60)),
			AveragePaceMinPerMile: pace,
			Type:                  runType,
		})
	}
	return runs, nil
}

// pickWorkout checks tempo first, so advanced athletes never draw an
// interval.
func (s *Synthesizer) pickWorkout(a model.FitnessAssessment, avgMiles float64) (model.RunType, float64) {
	roll := s.rng.Float64()
	switch {
	case a.FitnessLevel == model.FitnessAdvanced && roll < 0.2:
		return model.RunTypeTempo, avgMiles * 0.8
	case a.FitnessLevel != model.FitnessBeginner && roll < 0.1:
		return model.RunTypeInterval, avgMiles * 0.7
	case roll < 0.15 && a.LongestRunMiles != nil && *a.LongestRunMiles > 0:
		return model.RunTypeLong, math.Min(*a.LongestRunMiles*0.9, avgMiles*1.5)
	}
	return model.RunTypeEasy, avgMiles * (0.8 + s.rng.Float64()*0.4)
}

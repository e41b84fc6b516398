package planner

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"runcoach/backend/internal/model"
)

type fixedSource struct {
	value float64
}

func (f fixedSource) Float64() float64 { return f.value }
func (f fixedSource) Intn(int) int     { return 0 }

func TestAssessmentToRunsRejectsZeroDays(t *testing.T) {
	s := NewSynthesizer(rand.New(rand.NewSource(1)))

	runs, err := s.AssessmentToRuns(model.FitnessAssessment{DaysPerWeek: 0, WeeklyMileage: 20}, testNow)

	assert.ErrorIs(t, err, ErrInvalidDaysPerWeek)
	assert.Nil(t, runs)
}

func TestAssessmentToRunsDailyRunner(t *testing.T) {
	a := model.FitnessAssessment{
		FitnessLevel:            model.FitnessIntermediate,
		WeeklyMileage:           35,
		DaysPerWeek:             7,
		RecentRunningExperience: model.ExperienceRegular,
	}
	s := NewSynthesizer(rand.New(rand.NewSource(7)))

	runs, err := s.AssessmentToRuns(a, testNow)
	require.NoError(t, err)
	require.NotEmpty(t, runs)
	assert.LessOrEqual(t, len(runs), maxSyntheticRuns)

	var distances []float64
	for i, r := range runs {
		distances = append(distances, r.DistanceMiles)
		assert.GreaterOrEqual(t, r.AveragePaceMinPerMile, minPace)
		assert.LessOrEqual(t, r.AveragePaceMinPerMile, maxPace)
		assert.Greater(t, r.DurationSeconds, 0)
		assert.False(t, r.Date.Before(testNow.AddDate(0, 0, -synthesisWindowDays)))
		if i > 0 {
			assert.True(t, r.Date.Before(runs[i-1].Date), "runs must be most recent first")
		}
	}
	assert.InDelta(t, 5.0, mean(distances), 1.5)
}

func TestAssessmentToRunsAlwaysKeepsFirstDay(t *testing.T) {
	a := model.FitnessAssessment{
		FitnessLevel:            model.FitnessBeginner,
		WeeklyMileage:           9,
		DaysPerWeek:             3,
		RecentRunningExperience: model.ExperienceNone,
	}
	s := NewSynthesizer(fixedSource{value: 0.99})

	runs, err := s.AssessmentToRuns(a, testNow)
	require.NoError(t, err)
	require.Len(t, runs, 1)

	r := runs[0]
	assert.Equal(t, "synthetic-0", r.ID)
	assert.Equal(t, model.RunTypeEasy, r.Type)
	assert.Equal(t, time.Date(2026, time.March, 4, 8, 0, 0, 0, time.UTC), r.Date)
	assert.InDelta(t, 3.6, r.DistanceMiles, 0.001)
}

func TestAssessmentToRunsMinimumDistance(t *testing.T) {
	a := model.FitnessAssessment{
		FitnessLevel:            model.FitnessBeginner,
		WeeklyMileage:           0,
		DaysPerWeek:             2,
		RecentRunningExperience: model.ExperienceNone,
	}
	runs, err := NewSynthesizer(rand.New(rand.NewSource(3))).AssessmentToRuns(a, testNow)
	require.NoError(t, err)

	for _, r := range runs {
		assert.Equal(t, minSyntheticDistance, r.DistanceMiles)
	}
}

func TestAssessmentToRunsSeededIsRepeatable(t *testing.T) {
	a := model.FitnessAssessment{
		FitnessLevel:            model.FitnessAdvanced,
		WeeklyMileage:           40,
		DaysPerWeek:             5,
		RecentRunningExperience: model.ExperienceRegular,
		LongestRunMiles:         floatPtr(14),
	}

	first, err := NewSynthesizer(rand.New(rand.NewSource(99))).AssessmentToRuns(a, testNow)
	require.NoError(t, err)
	second, err := NewSynthesizer(rand.New(rand.NewSource(99))).AssessmentToRuns(a, testNow)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestAssessmentToRunsWorkoutMix(t *testing.T) {
	tests := []struct {
		name    string
		level   model.FitnessLevel
		roll    float64
		longest *float64
		want    model.RunType
	}{
		{"advanced tempo", model.FitnessAdvanced, 0.15, nil, model.RunTypeTempo},
		{"advanced never intervals", model.FitnessAdvanced, 0.05, nil, model.RunTypeTempo},
		{"intermediate interval", model.FitnessIntermediate, 0.05, nil, model.RunTypeInterval},
		{"intermediate long", model.FitnessIntermediate, 0.12, floatPtr(12), model.RunTypeLong},
		{"intermediate without longest", model.FitnessIntermediate, 0.12, nil, model.RunTypeEasy},
		{"beginner long", model.FitnessBeginner, 0.05, floatPtr(8), model.RunTypeLong},
		{"beginner easy", model.FitnessBeginner, 0.05, nil, model.RunTypeEasy},
		{"advanced easy", model.FitnessAdvanced, 0.5, floatPtr(15), model.RunTypeEasy},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := model.FitnessAssessment{
				FitnessLevel:            tt.level,
				WeeklyMileage:           28,
				DaysPerWeek:             7,
				RecentRunningExperience: model.ExperienceRegular,
				LongestRunMiles:         tt.longest,
			}
			runs, err := NewSynthesizer(fixedSource{value: tt.roll}).AssessmentToRuns(a, testNow)
			require.NoError(t, err)
			require.NotEmpty(t, runs)
			for _, r := range runs {
				assert.Equal(t, tt.want, r.Type)
			}
		})
	}
}

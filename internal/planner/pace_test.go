package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"runcoach/backend/internal/model"
)

func TestInferPaceProfileDefaults(t *testing.T) {
	profile := InferPaceProfile(nil, nil, nil)

	assert.Equal(t, model.PaceProfile{
		EasyPaceRange: model.PaceRange{9.0, 10.0},
		ThresholdPace: 8.0,
		FitnessTrend:  model.TrendStable,
	}, profile)
}

func TestInferPaceProfileEasyRuns(t *testing.T) {
	profile := InferPaceProfile(easyRuns(5, 3, 9.0), nil, nil)

	assert.InDelta(t, 8.7, profile.EasyPaceRange[0], 0.001)
	assert.InDelta(t, 9.5, profile.EasyPaceRange[1], 0.001)
	assert.InDelta(t, 8.35, profile.ThresholdPace, 0.06)
	assert.Less(t, profile.ThresholdPace, 9.0)
	assert.Equal(t, model.TrendStable, profile.FitnessTrend)
}

func TestInferPaceProfileUsesFiveMostRecent(t *testing.T) {
	runs := easyRuns(5, 3, 9.0)
	runs = append(runs, run(30, 3, 12.0, model.RunTypeEasy), run(31, 3, 12.0, model.RunTypeEasy))

	profile := InferPaceProfile(runs, nil, nil)

	assert.InDelta(t, 8.7, profile.EasyPaceRange[0], 0.001)
}

func TestInferPaceProfileWithoutEasyRuns(t *testing.T) {
	runs := []model.Run{
		run(1, 5, 8.0, model.RunTypeLong),
		run(3, 4, 8.0, model.RunTypeRace),
	}

	profile := InferPaceProfile(runs, nil, nil)

	assert.InDelta(t, 9.0, profile.EasyPaceRange[0], 0.001)
	assert.InDelta(t, 10.0, profile.EasyPaceRange[1], 0.001)
	assert.Less(t, profile.ThresholdPace, profile.EasyPaceRange.Midpoint())
}

func TestInferPaceProfileThresholdSources(t *testing.T) {
	t.Run("tempo", func(t *testing.T) {
		runs := append(easyRuns(3, 4, 9.0), run(5, 5, 7.5, model.RunTypeTempo))
		assert.InDelta(t, 7.5, InferPaceProfile(runs, nil, nil).ThresholdPace, 0.001)
	})
	t.Run("interval", func(t *testing.T) {
		runs := append(easyRuns(3, 4, 9.0), run(5, 4, 7.0, model.RunTypeInterval))
		assert.InDelta(t, 7.5, InferPaceProfile(runs, nil, nil).ThresholdPace, 0.001)
	})
	t.Run("tempo slower than easy", func(t *testing.T) {
		runs := append(easyRuns(3, 4, 9.0), run(5, 5, 9.6, model.RunTypeTempo))
		profile := InferPaceProfile(runs, nil, nil)
		assert.Less(t, profile.ThresholdPace, profile.EasyPaceRange.Midpoint())
	})
}

func TestInferPaceProfileGoalPull(t *testing.T) {
	goal := halfMarathonGoal(84)
	baseline := InferPaceProfile(easyRuns(5, 3, 9.0), nil, nil)
	pulled := InferPaceProfile(easyRuns(5, 3, 9.0), &goal, nil)

	assert.Less(t, pulled.ThresholdPace, baseline.ThresholdPace)
	assert.GreaterOrEqual(t, pulled.ThresholdPace, round1(goal.Pace()+goalPullMargin))
	assert.InDelta(t, baseline.ThresholdPace*GoalPullFactor, pulled.ThresholdPace, 0.1)
	assert.Equal(t, baseline.EasyPaceRange, pulled.EasyPaceRange)
}

func TestInferPaceProfileSlowGoalDoesNotPull(t *testing.T) {
	goal := model.Goal{RaceDate: testNow.AddDate(0, 0, 30), Distance: 3.1, TargetTimeMinutes: 40}

	baseline := InferPaceProfile(easyRuns(5, 3, 9.0), nil, nil)
	withGoal := InferPaceProfile(easyRuns(5, 3, 9.0), &goal, nil)

	assert.Equal(t, baseline, withGoal)
}

func TestGoalJustFasterThanThresholdDoesNotSlowIt(t *testing.T) {
	goal := model.Goal{RaceDate: testNow.AddDate(0, 0, 60), Distance: 10, TargetTimeMinutes: 79}

	assert.InDelta(t, 8.0, pullTowardGoal(8.0, &goal), 0.0001)

	baseline := InferPaceProfile(easyRuns(5, 3, 9.0), nil, nil)
	goal.TargetTimeMinutes = (baseline.ThresholdPace - 0.1) * goal.Distance
	withGoal := InferPaceProfile(easyRuns(5, 3, 9.0), &goal, nil)
	assert.Equal(t, baseline.ThresholdPace, withGoal.ThresholdPace)
}

func TestInferPaceProfileFromAssessment(t *testing.T) {
	t.Run("reported easy pace", func(t *testing.T) {
		a := model.FitnessAssessment{
			FitnessLevel:            model.FitnessIntermediate,
			RecentRunningExperience: model.ExperienceRegular,
			DaysPerWeek:             4,
			EasyPaceMinPerMile:      floatPtr(10.0),
		}
		profile := InferPaceProfile(nil, nil, &a)
		assert.InDelta(t, 9.7, profile.EasyPaceRange[0], 0.001)
		assert.InDelta(t, 10.5, profile.EasyPaceRange[1], 0.001)
		assert.InDelta(t, 9.25, profile.ThresholdPace, 0.06)
	})
	t.Run("derived from level and experience", func(t *testing.T) {
		a := model.FitnessAssessment{
			FitnessLevel:            model.FitnessBeginner,
			RecentRunningExperience: model.ExperienceSome,
			DaysPerWeek:             3,
		}
		assert.InDelta(t, 12.0, AssessmentEasyPace(a), 0.001)
		profile := InferPaceProfile(nil, nil, &a)
		assert.InDelta(t, 12.1, profile.EasyPaceRange.Midpoint(), 0.06)
	})
	t.Run("clamped", func(t *testing.T) {
		a := model.FitnessAssessment{
			FitnessLevel:            model.FitnessAdvanced,
			RecentRunningExperience: model.ExperienceRegular,
			EasyPaceMinPerMile:      floatPtr(4.0),
		}
		assert.InDelta(t, 7.0, AssessmentEasyPace(a), 0.001)
	})
}

func TestAssessmentEasyPaceMileageTiers(t *testing.T) {
	tests := []struct {
		level  model.FitnessLevel
		weekly float64
		want   float64
	}{
		{model.FitnessBeginner, 20, 10.0},
		{model.FitnessBeginner, 10, 10.0},
		{model.FitnessBeginner, 5, 11.5},
		{model.FitnessIntermediate, 30, 8.5},
		{model.FitnessIntermediate, 20, 8.5},
		{model.FitnessIntermediate, 12, 9.0},
		{model.FitnessAdvanced, 50, 7.0},
		{model.FitnessAdvanced, 25, 7.5},
	}
	for _, tt := range tests {
		a := model.FitnessAssessment{
			FitnessLevel:            tt.level,
			WeeklyMileage:           tt.weekly,
			DaysPerWeek:             4,
			RecentRunningExperience: model.ExperienceRegular,
		}
		assert.InDelta(t, tt.want, AssessmentEasyPace(a), 0.001, "%s at %.0f mi/week", tt.level, tt.weekly)
	}
}

func TestAssessmentEasyPaceAddsExperiencePenalty(t *testing.T) {
	a := model.FitnessAssessment{
		FitnessLevel:            model.FitnessIntermediate,
		WeeklyMileage:           25,
		DaysPerWeek:             4,
		RecentRunningExperience: model.ExperienceNone,
	}
	assert.InDelta(t, 10.0, AssessmentEasyPace(a), 0.001)

	a.RecentRunningExperience = model.ExperienceSome
	assert.InDelta(t, 9.0, AssessmentEasyPace(a), 0.001)
}

func TestFitnessTrend(t *testing.T) {
	improving := []model.Run{
		run(1, 4, 8.0, model.RunTypeEasy),
		run(2, 4, 8.0, model.RunTypeEasy),
		run(3, 4, 9.0, model.RunTypeEasy),
		run(4, 4, 9.0, model.RunTypeEasy),
	}
	declining := []model.Run{
		run(1, 4, 9.0, model.RunTypeEasy),
		run(2, 4, 9.0, model.RunTypeEasy),
		run(3, 4, 8.0, model.RunTypeEasy),
		run(4, 4, 8.0, model.RunTypeEasy),
	}

	assert.Equal(t, model.TrendImproving, InferPaceProfile(improving, nil, nil).FitnessTrend)
	assert.Equal(t, model.TrendDeclining, InferPaceProfile(declining, nil, nil).FitnessTrend)
	assert.Equal(t, model.TrendStable, InferPaceProfile(improving[:3], nil, nil).FitnessTrend)
}

func TestInferPaceProfileExtremePacesClamped(t *testing.T) {
	for _, pace := range []float64{3.0, 20.0} {
		profile := InferPaceProfile(easyRuns(4, 3, pace), nil, nil)
		assert.GreaterOrEqual(t, profile.EasyPaceRange[0], minPace)
		assert.LessOrEqual(t, profile.EasyPaceRange[1], maxPace)
		assert.Less(t, profile.EasyPaceRange[0], profile.EasyPaceRange[1])
		assert.Less(t, profile.ThresholdPace, profile.EasyPaceRange.Midpoint())
	}
}

package planner

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"runcoach/backend/internal/model"
)

func assertMacrocycleShape(t *testing.T, plans []model.WeeklyPlan, goal model.Goal) {
	t.Helper()
	require.Len(t, plans, MacrocycleWeeks)
	for i, plan := range plans {
		assert.Equal(t, time.Monday, plan.WeekStartDate.Weekday())
		assert.InDelta(t, round1(sumDistance(plan.Days)), plan.TotalMiles, 0.0001)
		assertWellFormedWeek(t, plan.Days)
		if i > 0 {
			assert.Equal(t, plans[i-1].WeekStartDate.AddDate(0, 0, 7), plan.WeekStartDate)
		}
		if i > 0 && i < buildWeeks {
			assert.GreaterOrEqual(t, plan.TotalMiles+reconcileTolerance, plans[i-1].TotalMiles, "build week %d", i)
		}
		if i > buildWeeks {
			assert.LessOrEqual(t, plan.TotalMiles-reconcileTolerance, plans[i-1].TotalMiles, "taper week %d", i)
		}
	}
	last := plans[MacrocycleWeeks-1].WeekStartDate
	assert.False(t, last.After(goal.RaceDate))
	assert.True(t, last.AddDate(0, 0, 7).After(goal.RaceDate), "race %s falls after the last planned week %s", goal.RaceDate, last)
}

func TestGenerateTwelveWeekPlanIncludesRaceWeek(t *testing.T) {
	monday := time.Date(2026, time.June, 1, 9, 0, 0, 0, time.UTC)
	for offset := 0; offset < 7; offset++ {
		goal := model.Goal{RaceDate: monday.AddDate(0, 0, offset), Distance: 13.1, TargetTimeMinutes: 110}
		pc, err := NewPlanningContext(goal, Historical{Runs: easyRuns(5, 4, 9.5)}, testNow, nil)
		require.NoError(t, err)

		plans := GenerateTwelveWeekPlan(pc)

		assertMacrocycleShape(t, plans, goal)
		raceWeek := plans[MacrocycleWeeks-1]
		assert.Equal(t, MondayOf(goal.RaceDate), raceWeek.WeekStartDate, goal.RaceDate.Weekday().String())
		assert.Equal(t, MondayOf(goal.RaceDate).AddDate(0, 0, -77), plans[0].WeekStartDate)
		assert.LessOrEqual(t, raceWeek.Days[longRunIndex].DistanceMiles, LongRunCap(goal, 7), goal.RaceDate.Weekday().String())
	}
}

func TestGenerateTwelveWeekPlanHalfMarathonScenario(t *testing.T) {
	goal := halfMarathonGoal(84)
	pc, err := NewPlanningContext(goal, Historical{Runs: easyRuns(5, 3, 9.0)}, testNow, nil)
	require.NoError(t, err)

	plans := GenerateTwelveWeekPlan(pc)

	assertMacrocycleShape(t, plans, goal)
	first := plans[0]
	assert.LessOrEqual(t, first.Days[longRunIndex].DistanceMiles, 0.75*13.1)
	for _, d := range first.Days {
		if d.RunType == model.RunTypeTempo {
			assert.GreaterOrEqual(t, d.PaceRangeMinPerMile.Midpoint(), 8.25)
		}
	}
	assert.InDelta(t, 16.5, first.TotalMiles, reconcileTolerance)
	assert.InDelta(t, 40.0, plans[buildWeeks-1].TotalMiles, reconcileTolerance)
	assert.InDelta(t, 20.0, plans[MacrocycleWeeks-1].TotalMiles, reconcileTolerance)
}

func TestGenerateTwelveWeekPlanNoHistory(t *testing.T) {
	goal := model.Goal{RaceDate: testNow.AddDate(0, 0, 90), Distance: 26.2, TargetTimeMinutes: 240}
	pc, err := NewPlanningContext(goal, NoHistory{}, testNow, nil)
	require.NoError(t, err)

	assertMacrocycleShape(t, GenerateTwelveWeekPlan(pc), goal)
}

func TestGenerateTwelveWeekPlanSynthesized(t *testing.T) {
	goal := model.Goal{RaceDate: testNow.AddDate(0, 0, 100), Distance: 6.2, TargetTimeMinutes: 50}
	a := model.FitnessAssessment{
		FitnessLevel:            model.FitnessIntermediate,
		WeeklyMileage:           20,
		DaysPerWeek:             4,
		RecentRunningExperience: model.ExperienceSome,
	}
	pc, err := NewPlanningContext(goal, Synthesized{Assessment: a}, testNow, NewSynthesizer(fixedSource{value: 0.5}))
	require.NoError(t, err)

	assertMacrocycleShape(t, GenerateTwelveWeekPlan(pc), goal)
}

func TestWeeklyMileageTargets(t *testing.T) {
	targets := WeeklyMileageTargets(15, 40)

	assert.InDelta(t, 16.5, targets[0], 0.001)
	assert.InDelta(t, 40.0, targets[7], 0.001)
	for i := 1; i < buildWeeks; i++ {
		assert.Greater(t, targets[i], targets[i-1])
	}
	assert.Equal(t, []float64{32, 28, 24, 20}, targets[buildWeeks:])

	capped := WeeklyMileageTargets(60, 40)
	assert.InDelta(t, 24.0, capped[0], 0.001)

	floored := WeeklyMileageTargets(0, 55)
	assert.InDelta(t, 15.0, floored[0], 0.001)
}

func TestPeakWeeklyMiles(t *testing.T) {
	assert.Equal(t, 55.0, PeakWeeklyMiles(26.2))
	assert.Equal(t, 40.0, PeakWeeklyMiles(13.1))
	assert.Equal(t, 30.0, PeakWeeklyMiles(6.2))
	assert.Equal(t, 25.0, PeakWeeklyMiles(3.1))
}

func TestPaceProgress(t *testing.T) {
	assert.InDelta(t, 0.0, PaceProgress(0), 0.0001)
	assert.InDelta(t, 0.85, PaceProgress(8), 0.0001)
	assert.InDelta(t, 0.925, PaceProgress(11), 0.0001)
}

func TestProgressiveProfileConverges(t *testing.T) {
	base := model.PaceProfile{EasyPaceRange: model.PaceRange{9.7, 10.5}, ThresholdPace: 9.3, FitnessTrend: model.TrendStable}
	goalPace := 7.0
	current := 10.0

	week0 := ProgressiveProfile(base, goalPace, current, 0)
	assert.Equal(t, base, week0)

	previous := week0
	for week := 1; week < MacrocycleWeeks; week++ {
		p := ProgressiveProfile(base, goalPace, current, week)
		assert.LessOrEqual(t, p.ThresholdPace, previous.ThresholdPace)
		assert.LessOrEqual(t, p.EasyPaceRange[0], previous.EasyPaceRange[0])
		assert.GreaterOrEqual(t, p.ThresholdPace, goalPace+thresholdGoalFloor)
		assert.GreaterOrEqual(t, p.EasyPaceRange[0], goalPace+easyLowGoalFloor)
		assert.Less(t, p.ThresholdPace, p.EasyPaceRange.Midpoint())
		previous = p
	}
}

func TestProgressiveProfileNeverSlowsFasterAthlete(t *testing.T) {
	base := model.PaceProfile{EasyPaceRange: model.PaceRange{8.0, 8.8}, ThresholdPace: 7.0}

	p := ProgressiveProfile(base, 9.0, 8.4, 6)

	assert.Equal(t, base.EasyPaceRange, p.EasyPaceRange)
	assert.InDelta(t, 7.0, p.ThresholdPace, 0.001)
}

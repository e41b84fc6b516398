package planner

import (
	"math"

	"runcoach/backend/internal/model"
)

const (
	MacrocycleWeeks = 12
	buildWeeks      = 8

	startingMileageGrowth = 1.1
	startingMileageFloor  = 15.0
	startingMileageShare  = 0.6

	easyConvergence      = 0.2
	thresholdConvergence = 0.6
	thresholdGoalFloor   = 0.2
	easyLowGoalFloor     = 2.0
	easyHighGoalFloor    = 2.5
)

var taperFactors = [MacrocycleWeeks - buildWeeks]float64{0.8, 0.7, 0.6, 0.5}

// PeakWeeklyMiles is the build-phase peak for a race distance in miles.
func PeakWeeklyMiles(goalDistance float64) float64 {
	switch {
	case goalDistance >= 26:
		return 55
	case goalDistance >= 13:
		return 40
	case goalDistance >= 6:
		return 30
	}
	return 25
}

// WeeklyMileageTargets ramps linearly from a starting volume to peak over
// the build weeks, then tapers.
func WeeklyMileageTargets(recentWeeklyMiles, peak float64) [MacrocycleWeeks]float64 {
	start := math.Min(math.Max(recentWeeklyMiles*startingMileageGrowth, startingMileageFloor), peak*startingMileageShare)
	var targets [MacrocycleWeeks]float64
	for week := range targets {
		if week < buildWeeks {
			targets[week] = round1(start + (peak-start)*float64(week)/float64(buildWeeks-1))
		} else {
			targets[week] = round1(peak * taperFactors[week-buildWeeks])
		}
	}
	return targets
}

// PaceProgress is how far paces have converged toward goal pace by week.
func PaceProgress(week int) float64 {
	if week < buildWeeks {
		return float64(week) / buildWeeks * 0.85
	}
	return 0.85 + float64(week-buildWeeks)/float64(MacrocycleWeeks-buildWeeks)*0.1
}

// ProgressiveProfile moves base toward goalPace for the given week.
// currentPace is the athlete's recent average pace; nothing moves when it is
// already at or below goal pace.
func ProgressiveProfile(base model.PaceProfile, goalPace, currentPace float64, week int) model.PaceProfile {
	gap := math.Max(0, currentPace-goalPace)
	progress := PaceProgress(week)
	easyShift := gap * easyConvergence * progress
	thresholdShift := gap * thresholdConvergence * progress

	easy := model.PaceRange{
		shiftToward(base.EasyPaceRange[0], easyShift, goalPace+easyLowGoalFloor),
		shiftToward(base.EasyPaceRange[1], easyShift, goalPace+easyHighGoalFloor),
	}
	threshold := shiftToward(base.ThresholdPace, thresholdShift, goalPace+thresholdGoalFloor)
	return finalizeProfile(easy, threshold, base.FitnessTrend)
}

// shiftToward speeds pace up by shift but not past floor. A pace already
// faster than floor is left alone.
func shiftToward(pace, shift, floor float64) float64 {
	if pace <= floor {
		return pace
	}
	return math.Max(pace-shift, floor)
}

// GenerateTwelveWeekPlan builds the macrocycle ending in race week: the
// last plan starts on the Monday of the week containing the race.
func GenerateTwelveWeekPlan(pc PlanningContext) []model.WeeklyPlan {
	recent := defaultWeeklyMiles
	if len(pc.Runs) > 0 {
		recent = WeeklyMiles(pc.Runs, pc.Now, 7)
	}
	targets := WeeklyMileageTargets(recent, PeakWeeklyMiles(pc.Goal.Distance))
	first := MondayOf(pc.Goal.RaceDate).AddDate(0, 0, -(MacrocycleWeeks-1)*7)
	goalPace := pc.Goal.Pace()
	current := currentAveragePace(pc)

	plans := make([]model.WeeklyPlan, 0, MacrocycleWeeks)
	for week, target := range targets {
		monday := first.AddDate(0, 0, week*7)
		in := pc.WeekInput(monday, ProgressiveProfile(pc.Baseline, goalPace, current, week))
		in.WeeklyMileage = target
		in.AvgMilesPerRun = target / float64(in.DaysPerWeek)
		days := AdjustDistancesToTarget(ScheduleWeek(in), target, pc.Goal)
		plans = append(plans, NewWeeklyPlan(monday, days))
	}
	return plans
}

func currentAveragePace(pc PlanningContext) float64 {
	recent := mostRecent(pc.Runs, recentRunWindow)
	if len(recent) == 0 {
		return pc.Baseline.EasyPaceRange.Midpoint()
	}
	return mean(paces(recent))
}

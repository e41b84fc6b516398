package planner

import (
	"fmt"
	"math"
	"time"

	"runcoach/backend/internal/model"
)

// WeekInput is what ScheduleWeek needs for one week.
type WeekInput struct {
	Goal           model.Goal
	Mode           ScheduleMode
	WeekStart      time.Time
	Profile        model.PaceProfile
	DaysToGoal     int
	DaysPerWeek    int
	FitnessLevel   model.FitnessLevel
	AvgMilesPerRun float64
	WeeklyMileage  float64
}

const (
	longRunIndex     = 5
	sharpeningDays   = 21
	maxLongRunMiles  = 22.0
	minLongRunMiles  = 6.0
	longRunPaceDelta = 0.5
	workoutPaceBand  = 0.2
)

var (
	qualitySlots   = []int{1, 3}
	easyFillOrder  = []int{6, 2, 4, 3, 1, 0}
	coldStartRest  = map[int]bool{0: true, 3: true, 6: true}
	easyVariation  = [3]float64{0.8, 0.9, 1.0}
	defaultQuality = qualityShare{tempo: 0.20, interval: 0.10}
)

type qualityShare struct {
	tempo    float64
	interval float64
}

var levelQuality = map[model.FitnessLevel]qualityShare{
	model.FitnessBeginner:     {tempo: 0.15, interval: 0.05},
	model.FitnessIntermediate: {tempo: 0.20, interval: 0.10},
	model.FitnessAdvanced:     {tempo: 0.20, interval: 0.15},
}

var longRunShare = map[model.FitnessLevel]float64{
	model.FitnessBeginner:     0.25,
	model.FitnessIntermediate: 0.30,
	model.FitnessAdvanced:     0.35,
}

// ScheduleWeek lays out seven days starting on the Monday of in.WeekStart.
func ScheduleWeek(in WeekInput) []model.WeeklyPlanDay {
	monday := MondayOf(in.WeekStart)
	types := allocateWeek(in)
	days := make([]model.WeeklyPlanDay, len(types))
	for i, t := range types {
		days[i] = buildDay(in, i, monday.AddDate(0, 0, i), t)
	}
	return days
}

func allocateWeek(in WeekInput) [7]model.RunType {
	var types [7]model.RunType
	for i := range types {
		types[i] = model.RunTypeRest
	}
	if in.Mode == ModeColdStart {
		for i := range types {
			if !coldStartRest[i] {
				types[i] = model.RunTypeEasy
			}
		}
		return types
	}

	remaining := clampInt(in.DaysPerWeek, 1, 7) - 1
	types[longRunIndex] = model.RunTypeLong
	for i, t := range qualityWorkouts(in, remaining) {
		types[qualitySlots[i]] = t
		remaining--
	}
	for _, idx := range easyFillOrder {
		if remaining == 0 {
			break
		}
		if types[idx] != model.RunTypeRest {
			continue
		}
		types[idx] = model.RunTypeEasy
		remaining--
	}
	return types
}

// qualityWorkouts picks at most two tempo/interval sessions, and never more
// than budget. Inside the sharpening window every session is an interval.
func qualityWorkouts(in WeekInput, budget int) []model.RunType {
	share, ok := levelQuality[in.FitnessLevel]
	if !ok {
		share = defaultQuality
	}
	days := float64(clampInt(in.DaysPerWeek, 1, 7))
	tempo := int(math.Floor(days * share.tempo))
	interval := int(math.Floor(days * share.interval))
	if tempo+interval == 0 {
		tempo = 1
	}
	count := min(tempo+interval, len(qualitySlots), budget)
	if count <= 0 {
		return nil
	}
	sharpening := in.DaysToGoal <= sharpeningDays
	out := make([]model.RunType, count)
	for i := range out {
		if sharpening || i >= tempo {
			out[i] = model.RunTypeInterval
		} else {
			out[i] = model.RunTypeTempo
		}
	}
	return out
}

func buildDay(in WeekInput, index int, date time.Time, runType model.RunType) model.WeeklyPlanDay {
	day := model.WeeklyPlanDay{
		Date:      date,
		DayOfWeek: dayNames[index],
		RunType:   runType,
	}
	profile := in.Profile
	goalPace := in.Goal.Pace()

	var distance float64
	var paceRange model.PaceRange
	switch runType {
	case model.RunTypeRest:
		day.CoachingIntent = restIntent(in.DaysToGoal)
		return day
	case model.RunTypeEasy:
		if in.Mode == ModeColdStart {
			distance = coldStartMiles
			day.CoachingIntent = "Easy run at conversational pace. Build consistency before adding intensity."
		} else {
			distance = clamp(in.AvgMilesPerRun*easyVariation[index%len(easyVariation)], 2.0, 8.0)
			day.CoachingIntent = easyIntent(index, profile.EasyPaceRange)
		}
		paceRange = profile.EasyPaceRange
	case model.RunTypeTempo:
		distance = clamp(in.AvgMilesPerRun*0.9, 3.0, 8.0)
		paceRange = model.PaceRange{profile.ThresholdPace - workoutPaceBand, profile.ThresholdPace + workoutPaceBand}
		day.CoachingIntent = fmt.Sprintf("Tempo run around %.1f min/mi. Comfortably hard, steady effort to raise your threshold.", profile.ThresholdPace)
	case model.RunTypeInterval:
		center := math.Max(goalPace-0.3, profile.ThresholdPace-0.5)
		distance = clamp(in.AvgMilesPerRun*0.7, 2.5, 6.0)
		paceRange = model.PaceRange{center - workoutPaceBand, center + workoutPaceBand}
		day.CoachingIntent = intervalIntent(in.DaysToGoal, center)
	case model.RunTypeLong:
		distance = longRunDistance(in)
		paceRange = model.PaceRange{profile.EasyPaceRange[0] + longRunPaceDelta, profile.EasyPaceRange[1] + longRunPaceDelta}
		day.CoachingIntent = longIntent(in.DaysToGoal, distance)
	}

	day.DistanceMiles = round1(distance)
	day.PaceRangeMinPerMile = SanitizePaceRange(paceRange)
	return day
}

// LongRunCap is the most a long run may cover for goal, tapered as the
// race gets close.
func LongRunCap(goal model.Goal, daysToGoal int) float64 {
	return longRunLimit(goal) * taperFactor(daysToGoal)
}

func longRunLimit(goal model.Goal) float64 {
	var limit float64
	switch {
	case goal.Distance >= 26:
		limit = 22
	case goal.Distance >= 13:
		limit = 20
	default:
		limit = 0.9 * goal.Distance
	}
	return math.Min(limit, maxLongRunMiles)
}

func taperFactor(daysToGoal int) float64 {
	switch {
	case daysToGoal <= 7:
		return 0.5
	case daysToGoal <= 14:
		return 0.7
	}
	return 1.0
}

// longRunDistance caps the level's share of weekly mileage, then tapers
// the capped distance, then applies the floor.
func longRunDistance(in WeekInput) float64 {
	share, ok := longRunShare[in.FitnessLevel]
	if !ok {
		share = longRunShare[model.FitnessIntermediate]
	}
	distance := math.Min(in.WeeklyMileage*share, longRunLimit(in.Goal)) * taperFactor(in.DaysToGoal)
	return math.Max(distance, minLongRunMiles)
}

func restIntent(daysToGoal int) string {
	if daysToGoal <= 7 {
		return "Rest. Stay off your feet and let the taper work."
	}
	return "Rest day. Recovery is where adaptation happens."
}

func easyIntent(index int, easy model.PaceRange) string {
	switch index {
	case 6:
		return fmt.Sprintf("Recovery run after the long run. Keep it between %.1f and %.1f min/mi.", easy[0], easy[1])
	case 0:
		return "Short shakeout to start the week. Easy effort only."
	}
	return fmt.Sprintf("Easy aerobic miles between %.1f and %.1f min/mi. You should be able to hold a conversation.", easy[0], easy[1])
}

func intervalIntent(daysToGoal int, center float64) string {
	if daysToGoal <= sharpeningDays {
		return fmt.Sprintf("Race-specific intervals around %.1f min/mi with full recoveries. Sharpen, don't exhaust.", center)
	}
	return fmt.Sprintf("Intervals around %.1f min/mi with easy jogs between repeats to build speed.", center)
}

func longIntent(daysToGoal int, distance float64) string {
	switch {
	case daysToGoal <= 7:
		return "Short long run at easy effort. Keep the legs moving without adding fatigue."
	case daysToGoal <= 14:
		return fmt.Sprintf("Taper long run of %.1f miles. Relaxed and controlled.", round1(distance))
	}
	return fmt.Sprintf("Long run of %.1f miles at an easy effort to build endurance.", round1(distance))
}

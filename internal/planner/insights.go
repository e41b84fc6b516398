package planner

import (
	"fmt"
	"math"
	"time"

	"runcoach/backend/internal/model"
)

// WeeklyMiles sums distances of runs dated within days before now.
func WeeklyMiles(runs []model.Run, now time.Time, days int) float64 {
	cutoff := now.AddDate(0, 0, -days)
	total := 0.0
	for _, r := range runs {
		if !r.Date.Before(cutoff) {
			total += r.DistanceMiles
		}
	}
	return round1(total)
}

type LoadTrend string

const (
	LoadIncreasing LoadTrend = "increasing"
	LoadStable     LoadTrend = "stable"
	LoadDecreasing LoadTrend = "decreasing"
)

type TrainingLoad struct {
	Trend         LoadTrend `json:"trend"`
	Last7Days     float64   `json:"last7Days"`
	Previous7Days float64   `json:"previous7Days"`
	ChangePercent float64   `json:"changePercent"`
}

// TrainingLoadTrend compares the last seven days of volume with the seven
// before. A change of more than ten percent either way counts as a trend.
func TrainingLoadTrend(runs []model.Run, now time.Time) TrainingLoad {
	last := WeeklyMiles(runs, now, 7)
	previous := round1(WeeklyMiles(runs, now, 14) - last)
	load := TrainingLoad{Trend: LoadStable, Last7Days: last, Previous7Days: previous}
	if previous == 0 {
		if last > 0 {
			load.Trend = LoadIncreasing
		}
		return load
	}
	load.ChangePercent = round1((last - previous) / previous * 100)
	switch {
	case load.ChangePercent > 10:
		load.Trend = LoadIncreasing
	case load.ChangePercent < -10:
		load.Trend = LoadDecreasing
	}
	return load
}

// DaysToGoal counts calendar days from now until race day, never negative.
func DaysToGoal(goal model.Goal, now time.Time) int {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	race := goal.RaceDate.UTC()
	raceDay := time.Date(race.Year(), race.Month(), race.Day(), 0, 0, 0, 0, time.UTC)
	return max(0, DaysUntil(today, raceDay))
}

type PaceDistribution struct {
	Easy     []float64 `json:"easy"`
	Tempo    []float64 `json:"tempo"`
	Interval []float64 `json:"interval"`
	Long     []float64 `json:"long"`
	Other    []float64 `json:"other"`
}

// RecentPaceDistribution buckets paces of runs from the last days by type.
func RecentPaceDistribution(runs []model.Run, now time.Time, days int) PaceDistribution {
	cutoff := now.AddDate(0, 0, -days)
	var dist PaceDistribution
	for _, r := range runs {
		if r.Date.Before(cutoff) {
			continue
		}
		switch {
		case r.IsEasy():
			dist.Easy = append(dist.Easy, r.AveragePaceMinPerMile)
		case r.Type == model.RunTypeTempo:
			dist.Tempo = append(dist.Tempo, r.AveragePaceMinPerMile)
		case r.Type == model.RunTypeInterval:
			dist.Interval = append(dist.Interval, r.AveragePaceMinPerMile)
		case r.Type == model.RunTypeLong:
			dist.Long = append(dist.Long, r.AveragePaceMinPerMile)
		default:
			dist.Other = append(dist.Other, r.AveragePaceMinPerMile)
		}
	}
	return dist
}

type Confidence string

const (
	ConfidenceLow    Confidence = "low"
	ConfidenceMedium Confidence = "medium"
	ConfidenceHigh   Confidence = "high"
)

var confidenceRank = map[Confidence]int{ConfidenceLow: 0, ConfidenceMedium: 1, ConfidenceHigh: 2}

const (
	minPlausiblePace = 5.0
	maxPlausiblePace = 15.0
)

// ValidatePredictedTime rejects finish times implying a pace outside
// 5-15 min/mi and replaces them with the nearest plausible time.
func ValidatePredictedTime(predictedMinutes, distance float64) (float64, bool, Confidence) {
	if distance <= 0 || predictedMinutes <= 0 {
		return 0, false, ConfidenceLow
	}
	pace := predictedMinutes / distance
	switch {
	case pace < minPlausiblePace:
		return round1(minPlausiblePace * distance), false, ConfidenceLow
	case pace > maxPlausiblePace:
		return round1(maxPlausiblePace * distance), false, ConfidenceLow
	}
	return predictedMinutes, true, ConfidenceHigh
}

// FormatFinishTime renders minutes as "1h 35m" or "42m".
func FormatFinishTime(minutes float64) string {
	total := int(math.Round(minutes))
	if total < 60 {
		return fmt.Sprintf("%dm", total)
	}
	return fmt.Sprintf("%dh %dm", total/60, total%60)
}

type StatusKPIs struct {
	DaysToGoal           int          `json:"daysToGoal"`
	GoalPace             float64      `json:"goalPace"`
	PredictedTimeMinutes float64      `json:"predictedTimeMinutes"`
	EstimatedFinishTime  string       `json:"estimatedFinishTime"`
	Confidence           Confidence   `json:"confidence"`
	TrainingLoad         TrainingLoad `json:"trainingLoad"`
	WeeklyMiles          float64      `json:"weeklyMiles"`
}

// ComputeStatusKPIs predicts a finish time from race-relevant runs (long,
// tempo, or at least half the goal distance) and summarizes recent load.
func ComputeStatusKPIs(goal model.Goal, runs []model.Run, now time.Time) StatusKPIs {
	kpis := StatusKPIs{
		DaysToGoal:   DaysToGoal(goal, now),
		GoalPace:     round1(goal.Pace()),
		TrainingLoad: TrainingLoadTrend(runs, now),
		WeeklyMiles:  WeeklyMiles(runs, now, 7),
		Confidence:   ConfidenceLow,
	}

	predicted := goal.TargetTimeMinutes
	if len(runs) >= 3 {
		var relevant []float64
		for _, r := range runs {
			if r.Type == model.RunTypeLong || r.Type == model.RunTypeTempo || r.DistanceMiles >= goal.Distance/2 {
				relevant = append(relevant, r.AveragePaceMinPerMile)
			}
		}
		if len(relevant) > 0 {
			predicted = mean(relevant) * goal.Distance
			kpis.Confidence = ConfidenceMedium
			if len(relevant) >= 3 {
				kpis.Confidence = ConfidenceHigh
			}
		}
	}

	adjusted, valid, confidence := ValidatePredictedTime(predicted, goal.Distance)
	if !valid || confidenceRank[confidence] < confidenceRank[kpis.Confidence] {
		kpis.Confidence = confidence
	}
	kpis.PredictedTimeMinutes = round1(adjusted)
	kpis.EstimatedFinishTime = FormatFinishTime(adjusted)
	return kpis
}

package model

import "time"

type FitnessTrend string

const (
	TrendImproving FitnessTrend = "improving"
	TrendStable    FitnessTrend = "stable"
	TrendDeclining FitnessTrend = "declining"
)

// PaceRange is a [low, high] pair in minutes per mile.
type PaceRange [2]float64

func (r PaceRange) Midpoint() float64 {
	return (r[0] + r[1]) / 2
}

type PaceProfile struct {
	EasyPaceRange PaceRange    `json:"easyPaceRange"`
	ThresholdPace float64      `json:"thresholdPace"`
	FitnessTrend  FitnessTrend `json:"fitnessTrend"`
}

type WeeklyPlanDay struct {
	Date                time.Time `json:"date"`
	DayOfWeek           string    `json:"dayOfWeek"`
	RunType             RunType   `json:"runType"`
	DistanceMiles       float64   `json:"distanceMiles"`
	PaceRangeMinPerMile PaceRange `json:"paceRangeMinPerMile"`
	CoachingIntent      string    `json:"coachingIntent"`
}

// WeeklyPlan always holds seven days, Monday first.
type WeeklyPlan struct {
	WeekStartDate time.Time       `json:"weekStartDate"`
	Days          []WeeklyPlanDay `json:"days"`
	TotalMiles    float64         `json:"totalMiles"`
}

package model

import (
	"errors"
	"time"
)

var (
	ErrInvalidGoalDistance = errors.New("goal distance must be greater than zero")
	ErrInvalidTargetTime   = errors.New("goal target time must be greater than zero")
	ErrInvalidRaceDate     = errors.New("goal race date is missing or malformed")
)

type Goal struct {
	RaceDate          time.Time `json:"raceDate"`
	Distance          float64   `json:"distance"`
	TargetTimeMinutes float64   `json:"targetTimeMinutes"`
}

// Pace returns the goal pace in minutes per mile.
func (g Goal) Pace() float64 {
	if g.Distance <= 0 {
		return 0
	}
	return g.TargetTimeMinutes / g.Distance
}

func (g Goal) Validate() error {
	if g.Distance <= 0 {
		return ErrInvalidGoalDistance
	}
	if g.TargetTimeMinutes <= 0 {
		return ErrInvalidTargetTime
	}
	if g.RaceDate.IsZero() {
		return ErrInvalidRaceDate
	}
	return nil
}

type FitnessLevel string

const (
	FitnessBeginner     FitnessLevel = "beginner"
	FitnessIntermediate FitnessLevel = "intermediate"
	FitnessAdvanced     FitnessLevel = "advanced"
)

type RunningExperience string

const (
	ExperienceNone    RunningExperience = "none"
	ExperienceSome    RunningExperience = "some"
	ExperienceRegular RunningExperience = "regular"
)

// FitnessAssessment is the self-reported alternative to a run history.
type FitnessAssessment struct {
	FitnessLevel            FitnessLevel      `json:"fitnessLevel"`
	WeeklyMileage           float64           `json:"weeklyMileage"`
	DaysPerWeek             int               `json:"daysPerWeek"`
	EasyPaceMinPerMile      *float64          `json:"easyPaceMinPerMile,omitempty"`
	RecentRunningExperience RunningExperience `json:"recentRunningExperience"`
	LongestRunMiles         *float64          `json:"longestRunMiles,omitempty"`
	CompletedAt             time.Time         `json:"completedAt"`
}

func (a FitnessAssessment) Validate() error {
	switch a.FitnessLevel {
	case FitnessBeginner, FitnessIntermediate, FitnessAdvanced:
	default:
		return errors.New("fitnessLevel must be beginner, intermediate or advanced")
	}
	switch a.RecentRunningExperience {
	case ExperienceNone, ExperienceSome, ExperienceRegular:
	default:
		return errors.New("recentRunningExperience must be none, some or regular")
	}
	if a.DaysPerWeek < 1 || a.DaysPerWeek > 7 {
		return errors.New("daysPerWeek must be between 1 and 7")
	}
	if a.WeeklyMileage < 0 {
		return errors.New("weeklyMileage must not be negative")
	}
	return nil
}

package service

import (
	"math"
	"strings"
	"time"

	"runcoach/backend/internal/model"
)

// GoalInput is the wire form of a goal. RaceDate may be a plain date or an
// RFC 3339 timestamp.
type GoalInput struct {
	RaceDate          string  `json:"raceDate"`
	Distance          float64 `json:"distance"`
	TargetTimeMinutes float64 `json:"targetTimeMinutes"`
}

func (in GoalInput) ToGoal() (model.Goal, error) {
	raceDate, ok := parseDate(in.RaceDate)
	if !ok {
		return model.Goal{}, model.ErrInvalidRaceDate
	}
	goal := model.Goal{RaceDate: raceDate, Distance: in.Distance, TargetTimeMinutes: in.TargetTimeMinutes}
	if err := goal.Validate(); err != nil {
		return model.Goal{}, err
	}
	return goal, nil
}

type RunInput struct {
	Date            string        `json:"date"`
	DistanceMiles   float64       `json:"distanceMiles"`
	DurationSeconds int           `json:"durationSeconds"`
	Type            model.RunType `json:"type"`
	ElevationFeet   *float64      `json:"elevationFeet"`
	Notes           string        `json:"notes"`
	Effort          *int          `json:"effort"`
}

func parseDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.UTC(), true
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, true
	}
	return time.Time{}, false
}

func paceOf(distanceMiles float64, durationSeconds int) float64 {
	return math.Round(float64(durationSeconds)/60/distanceMiles*100) / 100
}

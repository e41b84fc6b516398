package model

import "time"

type RunType string

const (
	RunTypeEasy     RunType = "easy"
	RunTypeTempo    RunType = "tempo"
	RunTypeInterval RunType = "interval"
	RunTypeLong     RunType = "long"
	RunTypeRace     RunType = "race"
	RunTypeRecovery RunType = "recovery"
	RunTypeRest     RunType = "rest"
)

// Run is a completed (or synthesized) run. AveragePaceMinPerMile is expected
// to match DurationSeconds/60/DistanceMiles but is not enforced.
type Run struct {
	ID                    string    `json:"id"`
	Date                  time.Time `json:"date"`
	DistanceMiles         float64   `json:"distanceMiles"`
	DurationSeconds       int       `json:"durationSeconds"`
	AveragePaceMinPerMile float64   `json:"averagePaceMinPerMile"`
	Type                  RunType   `json:"type,omitempty"`
	ElevationFeet         *float64  `json:"elevationFeet,omitempty"`
	Notes                 string    `json:"notes,omitempty"`
	Effort                *int      `json:"effort,omitempty"`
}

// IsEasy reports whether the run counts toward easy pace inference.
func (r Run) IsEasy() bool {
	return r.Type == RunTypeEasy || r.Type == RunTypeRecovery
}

func ValidRunType(t RunType) bool {
	switch t {
	case RunTypeEasy, RunTypeTempo, RunTypeInterval, RunTypeLong, RunTypeRace, RunTypeRecovery:
		return true
	}
	return false
}

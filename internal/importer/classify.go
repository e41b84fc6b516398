package importer

import (
	"strings"

	"runcoach/backend/internal/model"
)

const longRunMiles = 10.0

var (
	raceWords     = []string{"race", "5k", "10k", "half", "marathon"}
	tempoWords    = []string{"tempo", "threshold"}
	intervalWords = []string{"interval", "track", "speed"}
)

// ClassifyRun guesses a run type from the activity name, treating anything
// of ten miles or more as a long run unless the name says otherwise.
func ClassifyRun(name string, miles float64) model.RunType {
	lower := strings.ToLower(name)
	switch {
	case containsAny(lower, raceWords):
		return model.RunTypeRace
	case containsAny(lower, tempoWords):
		return model.RunTypeTempo
	case containsAny(lower, intervalWords):
		return model.RunTypeInterval
	case miles >= longRunMiles:
		return model.RunTypeLong
	case strings.Contains(lower, "recovery"):
		return model.RunTypeRecovery
	}
	return model.RunTypeEasy
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

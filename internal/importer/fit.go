package importer

import (
	"bytes"
	"fmt"

	"github.com/tormoder/fit"

	"runcoach/backend/internal/model"
)

// ParseFIT reads the first running session of a FIT activity file.
func ParseFIT(data []byte) (model.Run, error) {
	decoded, err := fit.Decode(bytes.NewReader(data))
	if err != nil {
		return model.Run{}, fmt.Errorf("decode fit: %w", err)
	}
	activity, err := decoded.Activity()
	if err != nil {
		return model.Run{}, fmt.Errorf("fit activity: %w", err)
	}
	session := runningSession(activity.Sessions)
	if session == nil {
		return model.Run{}, ErrNotARun
	}
	return runFromSession(session)
}

func runningSession(sessions []*fit.SessionMsg) *fit.SessionMsg {
	for _, s := range sessions {
		if s != nil && s.Sport == fit.SportRunning {
			return s
		}
	}
	return nil
}

func runFromSession(s *fit.SessionMsg) (model.Run, error) {
	seconds := s.GetTotalTimerTimeScaled()
	if seconds <= 0 {
		seconds = s.GetTotalElapsedTimeScaled()
	}
	var ascent *float64
	if s.TotalAscent != 0 && s.TotalAscent != ^uint16(0) {
		meters := float64(s.TotalAscent)
		ascent = &meters
	}
	name := fmt.Sprintf("Run %s", s.StartTime.UTC().Format("2006-01-02"))
	return newRun(name, s.StartTime, s.GetTotalDistanceScaled(), seconds, ascent)
}

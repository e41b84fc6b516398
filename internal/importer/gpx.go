package importer

import (
	"fmt"
	"time"

	"github.com/tkrajina/gpxgo/gpx"

	"runcoach/backend/internal/model"
)

// ParseGPX reads a GPX track. Moving distance and time are preferred so
// stops at lights don't slow the recorded pace.
func ParseGPX(data []byte) (model.Run, error) {
	g, err := gpx.ParseBytes(data)
	if err != nil {
		return model.Run{}, fmt.Errorf("parse gpx: %w", err)
	}

	moving := g.MovingData()
	meters, seconds := moving.MovingDistance, moving.MovingTime
	if !(meters > 0) || !(seconds > 0) {
		meters, seconds = g.Length2D(), g.Duration()
	}

	var start time.Time
	if bounds := g.TimeBounds(); !bounds.StartTime.IsZero() {
		start = bounds.StartTime
	} else if g.Time != nil {
		start = *g.Time
	}

	name := g.Name
	if name == "" && len(g.Tracks) > 0 {
		name = g.Tracks[0].Name
	}

	ascent := g.UphillDownhill().Uphill
	return newRun(name, start, meters, seconds, &ascent)
}

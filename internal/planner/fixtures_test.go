package planner

import (
	"fmt"
	"time"

	"runcoach/backend/internal/model"
)

var testNow = time.Date(2026, time.March, 4, 12, 0, 0, 0, time.UTC)

func run(daysAgo int, miles, pace float64, runType model.RunType) model.Run {
	return model.Run{
		ID:                    fmt.Sprintf("run-%d", daysAgo),
		Date:                  testNow.AddDate(0, 0, -daysAgo),
		DistanceMiles:         miles,
		DurationSeconds:       int(miles * pace * 60),
		AveragePaceMinPerMile: pace,
		Type:                  runType,
	}
}

func easyRuns(n int, miles, pace float64) []model.Run {
	runs := make([]model.Run, 0, n)
	for i := 1; i <= n; i++ {
		runs = append(runs, run(i, miles, pace, model.RunTypeEasy))
	}
	return runs
}

func halfMarathonGoal(daysOut int) model.Goal {
	return model.Goal{
		RaceDate:          testNow.AddDate(0, 0, daysOut),
		Distance:          13.1,
		TargetTimeMinutes: 95,
	}
}

func floatPtr(v float64) *float64 { return &v }

// Package planner turns a goal race and a run history (or a fitness
// assessment) into weekly training plans and a twelve-week macrocycle.
// Everything here is pure computation over values; the only state is the
// RandomSource handed to a Synthesizer.
package planner

import (
	"time"

	"runcoach/backend/internal/model"
)

// NewWeeklyPlan wraps seven scheduled days with their Monday and total.
func NewWeeklyPlan(monday time.Time, days []model.WeeklyPlanDay) model.WeeklyPlan {
	return model.WeeklyPlan{
		WeekStartDate: MondayOf(monday),
		Days:          days,
		TotalMiles:    round1(sumDistance(days)),
	}
}

// GenerateWeeklyPlan schedules the week containing weekStart and, when
// target is positive, reconciles it to that many miles.
func GenerateWeeklyPlan(pc PlanningContext, weekStart time.Time, target float64) model.WeeklyPlan {
	monday := MondayOf(weekStart)
	days := ScheduleWeek(pc.WeekInput(monday, pc.Profile))
	if target > 0 {
		days = AdjustDistancesToTarget(days, target, pc.Goal)
	}
	return NewWeeklyPlan(monday, days)
}

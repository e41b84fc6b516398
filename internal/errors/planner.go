package errors

import (
	stderrors "errors"

	"runcoach/backend/internal/model"
	"runcoach/backend/internal/planner"
)

// FromPlanner maps engine validation errors to 400s. Anything else is
// treated as internal.
func FromPlanner(err error) *APIError {
	switch {
	case err == nil:
		return nil
	case stderrors.Is(err, model.ErrInvalidGoalDistance),
		stderrors.Is(err, model.ErrInvalidTargetTime),
		stderrors.Is(err, model.ErrInvalidRaceDate):
		return BadRequest("invalid_goal", err.Error())
	case stderrors.Is(err, planner.ErrInvalidWeekStart):
		return BadRequest("invalid_week_start", err.Error())
	case stderrors.Is(err, planner.ErrInvalidDaysPerWeek):
		return BadRequest("invalid_assessment", err.Error())
	}
	return Internal("")
}

package repository

import (
	"context"
	"database/sql"
	"fmt"

	"runcoach/backend/internal/model"
)

type AssessmentRepository struct {
	db *sql.DB
}

func NewAssessmentRepository(db *sql.DB) *AssessmentRepository {
	return &AssessmentRepository{db: db}
}

// Insert keeps every submitted assessment; GetLatest reads the newest.
func (r *AssessmentRepository) Insert(ctx context.Context, id, userID string, a model.FitnessAssessment) error {
	var easyPace interface{}
	if a.EasyPaceMinPerMile != nil {
		easyPace = *a.EasyPaceMinPerMile
	}
	var longest interface{}
	if a.LongestRunMiles != nil {
		longest = *a.LongestRunMiles
	}

	_, err := r.db.ExecContext(
		ctx,
		`INSERT INTO fitness_assessments (
			id, user_id, fitness_level, weekly_mileage, days_per_week,
			easy_pace_min_per_mile, recent_running_experience, longest_run_miles, completed_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id,
		userID,
		string(a.FitnessLevel),
		a.WeeklyMileage,
		a.DaysPerWeek,
		easyPace,
		string(a.RecentRunningExperience),
		longest,
		formatTime(a.CompletedAt),
	)
	if err != nil {
		return fmt.Errorf("insert assessment: %w", err)
	}
	return nil
}

func (r *AssessmentRepository) GetLatest(ctx context.Context, userID string) (*model.FitnessAssessment, error) {
	row := r.db.QueryRowContext(
		ctx,
		`SELECT fitness_level, weekly_mileage, days_per_week, easy_pace_min_per_mile,
		        recent_running_experience, longest_run_miles, completed_at
		 FROM fitness_assessments
		 WHERE user_id = ?
		 ORDER BY completed_at DESC
		 LIMIT 1`,
		userID,
	)

	var a model.FitnessAssessment
	var level, experience, completedAt string
	var easyPace, longest sql.NullFloat64
	if err := row.Scan(&level, &a.WeeklyMileage, &a.DaysPerWeek, &easyPace, &experience, &longest, &completedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get latest assessment: %w", err)
	}

	a.FitnessLevel = model.FitnessLevel(level)
	a.RecentRunningExperience = model.RunningExperience(experience)
	if easyPace.Valid {
		value := easyPace.Float64
		a.EasyPaceMinPerMile = &value
	}
	if longest.Valid {
		value := longest.Float64
		a.LongestRunMiles = &value
	}
	parsedCompletedAt, err := parseTime(completedAt)
	if err != nil {
		return nil, fmt.Errorf("parse assessment completed_at: %w", err)
	}
	a.CompletedAt = parsedCompletedAt
	return &a, nil
}

package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"runcoach/backend/internal/model"
)

type GoalRepository struct {
	db *sql.DB
}

func NewGoalRepository(db *sql.DB) *GoalRepository {
	return &GoalRepository{db: db}
}

// Upsert stores the user's single active goal, replacing any previous one.
func (r *GoalRepository) Upsert(ctx context.Context, userID string, goal model.Goal) error {
	_, err := r.db.ExecContext(
		ctx,
		`INSERT INTO goals (user_id, race_date, distance_miles, target_time_minutes, updated_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT (user_id) DO UPDATE SET
		     race_date = excluded.race_date,
		     distance_miles = excluded.distance_miles,
		     target_time_minutes = excluded.target_time_minutes,
		     updated_at = excluded.updated_at`,
		userID,
		formatTime(goal.RaceDate),
		goal.Distance,
		goal.TargetTimeMinutes,
		formatTime(time.Now()),
	)
	if err != nil {
		return fmt.Errorf("upsert goal: %w", err)
	}
	return nil
}

func (r *GoalRepository) Get(ctx context.Context, userID string) (*model.Goal, error) {
	row := r.db.QueryRowContext(
		ctx,
		`SELECT race_date, distance_miles, target_time_minutes
		 FROM goals
		 WHERE user_id = ?`,
		userID,
	)

	var goal model.Goal
	var raceDate string
	if err := row.Scan(&raceDate, &goal.Distance, &goal.TargetTimeMinutes); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get goal: %w", err)
	}

	parsedRaceDate, err := parseTime(raceDate)
	if err != nil {
		return nil, fmt.Errorf("parse goal race_date: %w", err)
	}
	goal.RaceDate = parsedRaceDate
	return &goal, nil
}

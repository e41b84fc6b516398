package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"runcoach/backend/internal/model"
)

type RunRepository struct {
	db *sql.DB
}

func NewRunRepository(db *sql.DB) *RunRepository {
	return &RunRepository{db: db}
}

func (r *RunRepository) BeginTx(ctx context.Context) (*sql.Tx, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	return tx, nil
}

func (r *RunRepository) Insert(ctx context.Context, userID string, run *model.Run) error {
	return insertRun(ctx, r.db, userID, run)
}

// InsertTx lets an import write several runs atomically.
func (r *RunRepository) InsertTx(ctx context.Context, tx *sql.Tx, userID string, run *model.Run) error {
	return insertRun(ctx, tx, userID, run)
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

func insertRun(ctx context.Context, db execer, userID string, run *model.Run) error {
	var runType interface{}
	if run.Type != "" {
		runType = string(run.Type)
	}
	var elevation interface{}
	if run.ElevationFeet != nil {
		elevation = *run.ElevationFeet
	}
	var notes interface{}
	if run.Notes != "" {
		notes = run.Notes
	}
	var effort interface{}
	if run.Effort != nil {
		effort = *run.Effort
	}

	_, err := db.ExecContext(
		ctx,
		`INSERT INTO runs (
			id, user_id, run_date, distance_miles, duration_seconds, average_pace,
			run_type, elevation_feet, notes, effort, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID,
		userID,
		formatTime(run.Date),
		run.DistanceMiles,
		run.DurationSeconds,
		run.AveragePaceMinPerMile,
		runType,
		elevation,
		notes,
		effort,
		formatTime(time.Now()),
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

// ListRecent returns the user's runs, most recent first.
func (r *RunRepository) ListRecent(ctx context.Context, userID string, limit int) ([]model.Run, error) {
	rows, err := r.db.QueryContext(
		ctx,
		`SELECT id, run_date, distance_miles, duration_seconds, average_pace,
		        run_type, elevation_feet, notes, effort
		 FROM runs
		 WHERE user_id = ?
		 ORDER BY run_date DESC
		 LIMIT ?`,
		userID,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	runs := make([]model.Run, 0, limit)
	for rows.Next() {
		run, scanErr := scanRun(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		runs = append(runs, *run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}

	return runs, nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanRun(s scanner) (*model.Run, error) {
	run := model.Run{}
	var runDate string
	var runType sql.NullString
	var elevation sql.NullFloat64
	var notes sql.NullString
	var effort sql.NullInt64
	err := s.Scan(
		&run.ID,
		&runDate,
		&run.DistanceMiles,
		&run.DurationSeconds,
		&run.AveragePaceMinPerMile,
		&runType,
		&elevation,
		&notes,
		&effort,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan run: %w", err)
	}

	parsedDate, err := parseTime(runDate)
	if err != nil {
		return nil, fmt.Errorf("parse run run_date: %w", err)
	}
	run.Date = parsedDate

	if runType.Valid {
		run.Type = model.RunType(runType.String)
	}
	if elevation.Valid {
		value := elevation.Float64
		run.ElevationFeet = &value
	}
	if notes.Valid {
		run.Notes = notes.String
	}
	if effort.Valid {
		value := int(effort.Int64)
		run.Effort = &value
	}
	return &run, nil
}

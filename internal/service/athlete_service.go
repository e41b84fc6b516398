package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	apperrors "runcoach/backend/internal/errors"
	"runcoach/backend/internal/importer"
	"runcoach/backend/internal/model"
	"runcoach/backend/internal/observability"
	"runcoach/backend/internal/planner"
	"runcoach/backend/internal/repository"
)

const maxImportFiles = 20

type AthleteService struct {
	goals       *repository.GoalRepository
	runs        *repository.RunRepository
	assessments *repository.AssessmentRepository
	now         func() time.Time
}

func NewAthleteService(
	goals *repository.GoalRepository,
	runs *repository.RunRepository,
	assessments *repository.AssessmentRepository,
) *AthleteService {
	return &AthleteService{
		goals:       goals,
		runs:        runs,
		assessments: assessments,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

func (s *AthleteService) GetGoal(ctx context.Context, userID string) (*model.Goal, *apperrors.APIError) {
	goal, err := s.goals.Get(ctx, userID)
	if err == repository.ErrNotFound {
		return nil, apperrors.NotFound("goal_not_found", "no race goal set")
	}
	if err != nil {
		return nil, apperrors.Internal("failed to load goal")
	}
	return goal, nil
}

func (s *AthleteService) SaveGoal(ctx context.Context, userID string, in GoalInput) (*model.Goal, *apperrors.APIError) {
	goal, err := in.ToGoal()
	if err != nil {
		return nil, apperrors.FromPlanner(err)
	}
	if err := s.goals.Upsert(ctx, userID, goal); err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("save goal failed")
		return nil, apperrors.Internal("failed to save goal")
	}
	return &goal, nil
}

func (s *AthleteService) GetAssessment(ctx context.Context, userID string) (*model.FitnessAssessment, *apperrors.APIError) {
	a, err := s.assessments.GetLatest(ctx, userID)
	if err == repository.ErrNotFound {
		return nil, apperrors.NotFound("assessment_not_found", "no fitness assessment submitted")
	}
	if err != nil {
		return nil, apperrors.Internal("failed to load fitness assessment")
	}
	return a, nil
}

func (s *AthleteService) SaveAssessment(ctx context.Context, userID string, a model.FitnessAssessment) (*model.FitnessAssessment, *apperrors.APIError) {
	if err := a.Validate(); err != nil {
		return nil, apperrors.BadRequest("invalid_assessment", err.Error())
	}
	if a.CompletedAt.IsZero() {
		a.CompletedAt = s.now()
	}
	if err := s.assessments.Insert(ctx, uuid.NewString(), userID, a); err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("save assessment failed")
		return nil, apperrors.Internal("failed to save fitness assessment")
	}
	return &a, nil
}

func (s *AthleteService) ListRuns(ctx context.Context, userID string, limit int) ([]model.Run, *apperrors.APIError) {
	if limit <= 0 || limit > maxHistoryRuns {
		limit = maxHistoryRuns
	}
	runs, err := s.runs.ListRecent(ctx, userID, limit)
	if err != nil {
		return nil, apperrors.Internal("failed to list runs")
	}
	return runs, nil
}

func (s *AthleteService) AddRun(ctx context.Context, userID string, in RunInput) (*model.Run, *apperrors.APIError) {
	date, ok := parseDate(in.Date)
	if !ok {
		return nil, apperrors.BadRequest("invalid_run", "date must be an ISO date or timestamp")
	}
	if in.DistanceMiles <= 0 || in.DurationSeconds <= 0 {
		return nil, apperrors.BadRequest("invalid_run", "distanceMiles and durationSeconds must be greater than zero")
	}
	if in.Type != "" && !model.ValidRunType(in.Type) {
		return nil, apperrors.BadRequest("invalid_run", "unknown run type")
	}
	if in.Effort != nil && (*in.Effort < 1 || *in.Effort > 10) {
		return nil, apperrors.BadRequest("invalid_run", "effort must be between 1 and 10")
	}

	run := model.Run{
		ID:                    uuid.NewString(),
		Date:                  date,
		DistanceMiles:         in.DistanceMiles,
		DurationSeconds:       in.DurationSeconds,
		AveragePaceMinPerMile: paceOf(in.DistanceMiles, in.DurationSeconds),
		Type:                  in.Type,
		ElevationFeet:         in.ElevationFeet,
		Notes:                 in.Notes,
		Effort:                in.Effort,
	}
	if run.Type == "" {
		run.Type = importer.ClassifyRun(in.Notes, in.DistanceMiles)
	}
	if err := s.runs.Insert(ctx, userID, &run); err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("save run failed")
		return nil, apperrors.Internal("failed to save run")
	}
	return &run, nil
}

type UploadedFile struct {
	Name string
	Data []byte
}

type ImportFailure struct {
	File  string `json:"file"`
	Error string `json:"error"`
}

type ImportResult struct {
	Imported []model.Run     `json:"imported"`
	Failed   []ImportFailure `json:"failed"`
}

// ImportRuns parses every file and stores the runs that parsed in one
// transaction. Unparseable files are reported, not fatal.
func (s *AthleteService) ImportRuns(ctx context.Context, userID string, files []UploadedFile) (*ImportResult, *apperrors.APIError) {
	if len(files) == 0 {
		return nil, apperrors.BadRequest("no_files", "upload at least one GPX or FIT file")
	}
	if len(files) > maxImportFiles {
		return nil, apperrors.BadRequest("too_many_files", "too many files in one upload")
	}

	result := &ImportResult{Imported: []model.Run{}, Failed: []ImportFailure{}}
	formats := make([]importer.Format, 0, len(files))
	for _, f := range files {
		run, format, err := importer.Parse(f.Name, f.Data)
		if err != nil {
			if format != "" {
				observability.RecordImportFailure(string(format))
			}
			log.Warn().Err(err).Str("user_id", userID).Str("file", f.Name).Msg("activity import skipped")
			result.Failed = append(result.Failed, ImportFailure{File: f.Name, Error: err.Error()})
			continue
		}
		run.ID = uuid.NewString()
		result.Imported = append(result.Imported, run)
		formats = append(formats, format)
	}

	if len(result.Imported) == 0 {
		return nil, apperrors.UnprocessableEntity("import_failed", "no runs could be read from the upload", result.Failed)
	}

	tx, err := s.runs.BeginTx(ctx)
	if err != nil {
		return nil, apperrors.Internal("failed to start transaction")
	}
	defer tx.Rollback()

	for i := range result.Imported {
		if err := s.runs.InsertTx(ctx, tx, userID, &result.Imported[i]); err != nil {
			log.Error().Err(err).Str("user_id", userID).Msg("store imported run failed")
			return nil, apperrors.Internal("failed to save imported runs")
		}
	}
	if err := tx.Commit(); err != nil {
		return nil, apperrors.Internal("failed to commit transaction")
	}

	for _, format := range formats {
		observability.RecordRunsImported(string(format), 1)
	}
	log.Info().Str("user_id", userID).Int("imported", len(result.Imported)).Int("failed", len(result.Failed)).Msg("activities imported")
	return result, nil
}

func (s *AthleteService) Status(ctx context.Context, userID string) (*planner.StatusKPIs, *apperrors.APIError) {
	goal, apiErr := s.GetGoal(ctx, userID)
	if apiErr != nil {
		return nil, apiErr
	}
	runs, err := s.runs.ListRecent(ctx, userID, maxHistoryRuns)
	if err != nil {
		return nil, apperrors.Internal("failed to load runs")
	}
	kpis := planner.ComputeStatusKPIs(*goal, runs, s.now())
	return &kpis, nil
}

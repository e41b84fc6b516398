package service

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	apperrors "runcoach/backend/internal/errors"
	"runcoach/backend/internal/model"
	"runcoach/backend/internal/observability"
	"runcoach/backend/internal/planner"
	"runcoach/backend/internal/repository"
)

const maxHistoryRuns = 50

type PlanService struct {
	goals       *repository.GoalRepository
	runs        *repository.RunRepository
	assessments *repository.AssessmentRepository
	seed        int64
	now         func() time.Time
}

func NewPlanService(
	goals *repository.GoalRepository,
	runs *repository.RunRepository,
	assessments *repository.AssessmentRepository,
	seed int64,
) *PlanService {
	return &PlanService{
		goals:       goals,
		runs:        runs,
		assessments: assessments,
		seed:        seed,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// PlanRequest fields are all optional; anything missing is filled from
// the athlete's stored goal, runs and assessment, in that order.
type PlanRequest struct {
	Goal              *GoalInput               `json:"goal"`
	Runs              []model.Run              `json:"runs"`
	Assessment        *model.FitnessAssessment `json:"assessment"`
	WeekStart         string                   `json:"weekStart"`
	TargetWeeklyMiles *float64                 `json:"targetWeeklyMiles"`
}

type WeekPlanResult struct {
	Plan       model.WeeklyPlan   `json:"plan"`
	DataSource planner.SourceKind `json:"dataSource"`
}

type TwelveWeekPlanResult struct {
	Weeks      []model.WeeklyPlan `json:"weeks"`
	DataSource planner.SourceKind `json:"dataSource"`
}

func (s *PlanService) WeekPlan(ctx context.Context, userID string, req PlanRequest) (*WeekPlanResult, *apperrors.APIError) {
	started := time.Now()
	pc, apiErr := s.planningContext(ctx, userID, req)
	if apiErr != nil {
		return nil, apiErr
	}

	weekStart := pc.Now
	if req.WeekStart != "" {
		parsed, err := planner.ParseWeekStart(req.WeekStart)
		if err != nil {
			return nil, apperrors.FromPlanner(err)
		}
		weekStart = parsed
	}

	var target float64
	if req.TargetWeeklyMiles != nil {
		if *req.TargetWeeklyMiles < 0 {
			return nil, apperrors.BadRequest("invalid_target", "targetWeeklyMiles must not be negative")
		}
		target = *req.TargetWeeklyMiles
	}

	plan := planner.GenerateWeeklyPlan(pc, weekStart, target)
	observability.RecordPlanGenerated("week", string(pc.Source), time.Since(started))
	log.Info().
		Str("user_id", userID).
		Str("source", string(pc.Source)).
		Str("mode", pc.Mode.String()).
		Float64("total_miles", plan.TotalMiles).
		Msg("weekly plan generated")

	return &WeekPlanResult{Plan: plan, DataSource: pc.Source}, nil
}

func (s *PlanService) TwelveWeekPlan(ctx context.Context, userID string, req PlanRequest) (*TwelveWeekPlanResult, *apperrors.APIError) {
	started := time.Now()
	pc, apiErr := s.planningContext(ctx, userID, req)
	if apiErr != nil {
		return nil, apiErr
	}

	weeks := planner.GenerateTwelveWeekPlan(pc)
	observability.RecordPlanGenerated("twelve_week", string(pc.Source), time.Since(started))
	log.Info().
		Str("user_id", userID).
		Str("source", string(pc.Source)).
		Int("weeks", len(weeks)).
		Time("first_week", weeks[0].WeekStartDate).
		Msg("twelve week plan generated")

	return &TwelveWeekPlanResult{Weeks: weeks, DataSource: pc.Source}, nil
}

func (s *PlanService) planningContext(ctx context.Context, userID string, req PlanRequest) (planner.PlanningContext, *apperrors.APIError) {
	goal, apiErr := s.resolveGoal(ctx, userID, req.Goal)
	if apiErr != nil {
		return planner.PlanningContext{}, apiErr
	}
	source, apiErr := s.resolveSource(ctx, userID, req)
	if apiErr != nil {
		return planner.PlanningContext{}, apiErr
	}

	// *rand.Rand is not safe to share, so each request gets its own.
	synth := planner.NewSynthesizer(planner.NewSeededSource(s.seed))
	pc, err := planner.NewPlanningContext(goal, source, s.now(), synth)
	if err != nil {
		return planner.PlanningContext{}, apperrors.FromPlanner(err)
	}
	return pc, nil
}

func (s *PlanService) resolveGoal(ctx context.Context, userID string, in *GoalInput) (model.Goal, *apperrors.APIError) {
	if in != nil {
		goal, err := in.ToGoal()
		if err != nil {
			return model.Goal{}, apperrors.FromPlanner(err)
		}
		return goal, nil
	}

	stored, err := s.goals.Get(ctx, userID)
	if err == repository.ErrNotFound {
		return model.Goal{}, apperrors.BadRequest("goal_required", "set a race goal or include one in the request")
	}
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("load goal failed")
		return model.Goal{}, apperrors.Internal("failed to load goal")
	}
	return *stored, nil
}

func (s *PlanService) resolveSource(ctx context.Context, userID string, req PlanRequest) (planner.DataSource, *apperrors.APIError) {
	if len(req.Runs) > 0 {
		return planner.Historical{Runs: req.Runs}, nil
	}
	if req.Assessment != nil {
		if err := req.Assessment.Validate(); err != nil {
			return nil, apperrors.BadRequest("invalid_assessment", err.Error())
		}
		return planner.Synthesized{Assessment: *req.Assessment}, nil
	}

	runs, err := s.runs.ListRecent(ctx, userID, maxHistoryRuns)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("load runs failed")
		return nil, apperrors.Internal("failed to load runs")
	}
	if len(runs) > 0 {
		return planner.Historical{Runs: runs}, nil
	}

	assessment, err := s.assessments.GetLatest(ctx, userID)
	if err == repository.ErrNotFound {
		return planner.NoHistory{}, nil
	}
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("load assessment failed")
		return nil, apperrors.Internal("failed to load fitness assessment")
	}
	return planner.Synthesized{Assessment: *assessment}, nil
}

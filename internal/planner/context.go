package planner

import (
	"time"

	"runcoach/backend/internal/model"
)

type SourceKind string

const (
	SourceHistorical  SourceKind = "historical"
	SourceSynthesized SourceKind = "synthesized"
	SourceNone        SourceKind = "none"
)

// DataSource is one of Historical, Synthesized or NoHistory.
type DataSource interface {
	Kind() SourceKind
}

type Historical struct {
	Runs []model.Run
}

func (Historical) Kind() SourceKind { return SourceHistorical }

type Synthesized struct {
	Assessment model.FitnessAssessment
}

func (Synthesized) Kind() SourceKind { return SourceSynthesized }

type NoHistory struct{}

func (NoHistory) Kind() SourceKind { return SourceNone }

// ScheduleMode selects between the conservative cold-start week and the
// full workout allocation.
type ScheduleMode int

const (
	ModeColdStart ScheduleMode = iota
	ModeStructured
)

func (m ScheduleMode) String() string {
	if m == ModeStructured {
		return "structured"
	}
	return "cold_start"
}

const (
	defaultDaysPerWeek   = 4
	defaultWeeklyMiles   = 15.0
	coldStartMiles       = 3.0
	minStructuredRuns    = 2
	beginnerMileageLimit = 15.0
	advancedMileageFloor = 30.0
)

// PlanningContext is everything the scheduler and macrocycle planner need,
// resolved once per request from a goal and a data source.
type PlanningContext struct {
	Goal       model.Goal
	Source     SourceKind
	Mode       ScheduleMode
	Now        time.Time
	Runs       []model.Run
	Assessment *model.FitnessAssessment

	// Profile includes the pull toward goal pace; Baseline does not.
	Profile  model.PaceProfile
	Baseline model.PaceProfile

	FitnessLevel   model.FitnessLevel
	DaysPerWeek    int
	WeeklyMileage  float64
	AvgMilesPerRun float64
}

// NewPlanningContext validates goal and resolves source into a context.
// synth is only used for Synthesized sources and may be nil.
func NewPlanningContext(goal model.Goal, source DataSource, now time.Time, synth *Synthesizer) (PlanningContext, error) {
	if err := goal.Validate(); err != nil {
		return PlanningContext{}, err
	}
	pc := PlanningContext{Goal: goal, Now: now.UTC()}

	switch src := source.(type) {
	case Historical:
		pc.Source = SourceHistorical
		pc.Runs = usableRuns(src.Runs)
		pc.Mode = ModeColdStart
		if len(pc.Runs) >= minStructuredRuns {
			pc.Mode = ModeStructured
		}
		pc.AvgMilesPerRun = coldStartMiles
		if len(pc.Runs) > 0 {
			var distances []float64
			for _, r := range mostRecent(pc.Runs, recentRunWindow) {
				distances = append(distances, r.DistanceMiles)
			}
			pc.AvgMilesPerRun = mean(distances)
		}
		pc.DaysPerWeek = historicalDaysPerWeek(pc.Runs)
		pc.WeeklyMileage = WeeklyMiles(pc.Runs, pc.Now, 7)
		if pc.WeeklyMileage == 0 {
			pc.WeeklyMileage = pc.AvgMilesPerRun * float64(pc.DaysPerWeek)
		}
		pc.FitnessLevel = levelForMileage(pc.WeeklyMileage)
		pc.Baseline = InferPaceProfile(pc.Runs, nil, nil)
		pc.Profile = InferPaceProfile(pc.Runs, &pc.Goal, nil)

	case Synthesized:
		a := src.Assessment
		if synth == nil {
			synth = NewSynthesizer(nil)
		}
		runs, err := synth.AssessmentToRuns(a, pc.Now)
		if err != nil {
			return PlanningContext{}, err
		}
		pc.Source = SourceSynthesized
		pc.Runs = runs
		pc.Assessment = &a
		pc.Mode = ModeStructured
		pc.DaysPerWeek = clampInt(a.DaysPerWeek, 1, 7)
		pc.WeeklyMileage = a.WeeklyMileage
		pc.AvgMilesPerRun = a.WeeklyMileage / float64(pc.DaysPerWeek)
		pc.FitnessLevel = a.FitnessLevel
		pc.Baseline = InferPaceProfile(runs, nil, &a)
		pc.Profile = InferPaceProfile(runs, &pc.Goal, &a)

	default:
		pc.Source = SourceNone
		pc.Mode = ModeColdStart
		pc.DaysPerWeek = defaultDaysPerWeek
		pc.WeeklyMileage = defaultWeeklyMiles
		pc.AvgMilesPerRun = coldStartMiles
		pc.FitnessLevel = model.FitnessBeginner
		pc.Baseline = DefaultPaceProfile()
		pc.Profile = DefaultPaceProfile()
	}
	return pc, nil
}

// WeekInput builds scheduler input for the week starting at monday.
func (pc PlanningContext) WeekInput(monday time.Time, profile model.PaceProfile) WeekInput {
	return WeekInput{
		Goal:           pc.Goal,
		Mode:           pc.Mode,
		WeekStart:      monday,
		Profile:        profile,
		DaysToGoal:     DaysUntil(monday, pc.Goal.RaceDate),
		DaysPerWeek:    clampInt(pc.DaysPerWeek, 1, 7),
		FitnessLevel:   pc.FitnessLevel,
		AvgMilesPerRun: pc.AvgMilesPerRun,
		WeeklyMileage:  pc.WeeklyMileage,
	}
}

// usableRuns drops runs the profiler cannot learn from and sorts the rest.
func usableRuns(runs []model.Run) []model.Run {
	out := make([]model.Run, 0, len(runs))
	for _, r := range runs {
		if r.DistanceMiles <= 0 || r.AveragePaceMinPerMile <= 0 || r.Date.IsZero() {
			continue
		}
		out = append(out, r)
	}
	return sortedByDateDesc(out)
}

// historicalDaysPerWeek counts distinct running days in the seven days
// ending at the most recent run.
func historicalDaysPerWeek(runs []model.Run) int {
	if len(runs) == 0 {
		return defaultDaysPerWeek
	}
	latest := runs[0].Date.UTC()
	cutoff := time.Date(latest.Year(), latest.Month(), latest.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, -6)
	seen := make(map[string]struct{})
	for _, r := range runs {
		if r.Date.Before(cutoff) {
			break
		}
		seen[r.Date.UTC().Format("2006-01-02")] = struct{}{}
	}
	return clampInt(len(seen), 3, 7)
}

func levelForMileage(weekly float64) model.FitnessLevel {
	switch {
	case weekly < beginnerMileageLimit:
		return model.FitnessBeginner
	case weekly < advancedMileageFloor:
		return model.FitnessIntermediate
	}
	return model.FitnessAdvanced
}

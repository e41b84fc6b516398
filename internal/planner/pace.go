package planner

import (
	"math"

	"runcoach/backend/internal/model"
)

// GoalPullFactor is how far a single pull moves threshold pace toward a
// faster goal. It is a coaching parameter: the guarantee is only that the
// pulled threshold stays at least goalPullMargin slower than goal pace.
const GoalPullFactor = 0.95

const (
	goalPullMargin    = 0.3
	recentRunWindow   = 5
	trendThreshold    = 0.2
	thresholdOffset   = 0.75
	intervalToTempo   = 0.5
	minAssessmentPace = 7.0
)

var defaultProfile = model.PaceProfile{
	EasyPaceRange: model.PaceRange{9.0, 10.0},
	ThresholdPace: 8.0,
	FitnessTrend:  model.TrendStable,
}

// DefaultPaceProfile is used when there is neither history nor an assessment.
func DefaultPaceProfile() model.PaceProfile {
	return defaultProfile
}

// levelEasyPace holds each level's easy pace and the slower pace used when
// weekly mileage is under that level's base.
var levelEasyPace = map[model.FitnessLevel]struct {
	pace, lowVolumePenalty, baseMileage float64
}{
	model.FitnessBeginner:     {10.0, 1.5, 10},
	model.FitnessIntermediate: {8.5, 0.5, 20},
	model.FitnessAdvanced:     {7.0, 0.5, 30},
}

var experiencePenalty = map[model.RunningExperience]float64{
	model.ExperienceNone: 1.5,
	model.ExperienceSome: 0.5,
}

// AssessmentEasyPace returns the self-reported easy pace, or one derived
// from fitness level, weekly mileage and recent experience when none was
// given.
func AssessmentEasyPace(a model.FitnessAssessment) float64 {
	if a.EasyPaceMinPerMile != nil && *a.EasyPaceMinPerMile > 0 {
		return clamp(*a.EasyPaceMinPerMile, minAssessmentPace, maxPace)
	}
	tier, ok := levelEasyPace[a.FitnessLevel]
	if !ok {
		tier = levelEasyPace[model.FitnessIntermediate]
	}
	pace := tier.pace
	if a.WeeklyMileage < tier.baseMileage {
		pace += tier.lowVolumePenalty
	}
	pace += experiencePenalty[a.RecentRunningExperience]
	return clamp(pace, minAssessmentPace, maxPace)
}

// InferPaceProfile estimates easy and threshold paces from the five most
// recent runs. With no runs it falls back to the assessment, then to
// DefaultPaceProfile. A goal faster than the inferred threshold pulls the
// threshold toward it.
func InferPaceProfile(runs []model.Run, goal *model.Goal, assessment *model.FitnessAssessment) model.PaceProfile {
	recent := mostRecent(runs, recentRunWindow)
	if len(recent) == 0 {
		if assessment == nil {
			return DefaultPaceProfile()
		}
		easy := AssessmentEasyPace(*assessment)
		threshold := pullTowardGoal(clamp(easy-thresholdOffset, minThreshold, maxThreshold), goal)
		return finalizeProfile(model.PaceRange{easy - 0.3, easy + 0.5}, threshold, model.TrendStable)
	}

	var easy, tempo, interval []float64
	for _, r := range recent {
		switch {
		case r.IsEasy():
			easy = append(easy, r.AveragePaceMinPerMile)
		case r.Type == model.RunTypeTempo:
			tempo = append(tempo, r.AveragePaceMinPerMile)
		case r.Type == model.RunTypeInterval:
			interval = append(interval, r.AveragePaceMinPerMile)
		}
	}

	var easyRange model.PaceRange
	if len(easy) >= 2 {
		avg := mean(easy)
		easyRange = model.PaceRange{avg - 0.3, avg + 0.5}
	} else {
		avg := mean(paces(recent))
		easyRange = model.PaceRange{avg + 1.0, avg + 2.0}
	}
	easyRange = orderedRange(easyRange)

	var threshold float64
	switch {
	case len(tempo) > 0:
		threshold = mean(tempo)
	case len(interval) > 0:
		threshold = mean(interval) + intervalToTempo
	default:
		threshold = easyRange.Midpoint() - thresholdOffset
	}
	threshold = pullTowardGoal(clamp(threshold, minThreshold, maxThreshold), goal)

	return finalizeProfile(easyRange, threshold, fitnessTrend(recent))
}

func pullTowardGoal(threshold float64, goal *model.Goal) float64 {
	if goal == nil {
		return threshold
	}
	goalPace := goal.Pace()
	if goalPace <= 0 || goalPace >= threshold {
		return threshold
	}
	return math.Min(threshold, math.Max(goalPace+goalPullMargin, threshold*GoalPullFactor))
}

// orderedRange clamps an easy range to trainable paces and keeps low < high.
func orderedRange(r model.PaceRange) model.PaceRange {
	lo := clamp(r[0], minPace, maxPace)
	hi := clamp(r[1], minPace, maxPace)
	if hi-lo < 0.1 {
		if lo+0.5 <= maxPace {
			hi = lo + 0.5
		} else {
			lo = hi - 0.5
		}
	}
	return model.PaceRange{lo, hi}
}

// finalizeProfile rounds everything to a tenth and keeps threshold faster
// than the easy midpoint after rounding.
func finalizeProfile(easy model.PaceRange, threshold float64, trend model.FitnessTrend) model.PaceProfile {
	easy = orderedRange(easy)
	easy = model.PaceRange{round1(easy[0]), round1(easy[1])}
	threshold = round1(clamp(threshold, minThreshold, maxThreshold))
	if threshold >= easy.Midpoint() {
		threshold = round1(clamp(easy.Midpoint()-thresholdOffset, minThreshold, maxThreshold))
	}
	return model.PaceProfile{EasyPaceRange: easy, ThresholdPace: threshold, FitnessTrend: trend}
}

func fitnessTrend(recent []model.Run) model.FitnessTrend {
	if len(recent) < 4 {
		return model.TrendStable
	}
	latest := mean(paces(recent[:2]))
	previous := mean(paces(recent[2:4]))
	switch diff := latest - previous; {
	case diff < -trendThreshold:
		return model.TrendImproving
	case diff > trendThreshold:
		return model.TrendDeclining
	}
	return model.TrendStable
}

package planner

import (
	"math"
	"sort"

	"runcoach/backend/internal/model"
)

const (
	minPace      = 5.0
	maxPace      = 14.0
	minThreshold = 5.0
	maxThreshold = 12.0
)

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// SanitizePaceRange clamps both bounds to [5,14] min/mi, orders them and
// widens a degenerate range by half a minute.
func SanitizePaceRange(r model.PaceRange) model.PaceRange {
	lo := clamp(r[0], minPace, maxPace)
	hi := clamp(r[1], minPace, maxPace)
	if lo > hi {
		lo, hi = hi, lo
	}
	if lo == hi {
		if hi+0.5 <= maxPace {
			hi += 0.5
		} else {
			lo -= 0.5
		}
	}
	return model.PaceRange{round1(lo), round1(hi)}
}

// sortedByDateDesc returns a copy of runs, most recent first.
func sortedByDateDesc(runs []model.Run) []model.Run {
	out := make([]model.Run, len(runs))
	copy(out, runs)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	return out
}

func mostRecent(runs []model.Run, n int) []model.Run {
	sorted := sortedByDateDesc(runs)
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

func paces(runs []model.Run) []float64 {
	out := make([]float64, 0, len(runs))
	for _, r := range runs {
		out = append(out, r.AveragePaceMinPerMile)
	}
	return out
}

func sumDistance(days []model.WeeklyPlanDay) float64 {
	total := 0.0
	for _, d := range days {
		total += d.DistanceMiles
	}
	return total
}

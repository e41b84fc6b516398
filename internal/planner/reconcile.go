package planner

import (
	"math"

	"runcoach/backend/internal/model"
)

const (
	reconcileTolerance = 0.5
	maxEasyMiles       = 8.0
	minEasyMiles       = 2.0
)

// AdjustDistancesToTarget returns a copy of days scaled toward target
// weekly miles. Growth goes to the long run first, up to its cap, then
// evenly across easy days. Shrinking only touches easy days. Tempo and
// interval distances are never changed.
func AdjustDistancesToTarget(days []model.WeeklyPlanDay, target float64, goal model.Goal) []model.WeeklyPlanDay {
	out := make([]model.WeeklyPlanDay, len(days))
	copy(out, days)
	if len(out) == 0 || target <= 0 {
		return out
	}
	current := sumDistance(out)
	if math.Abs(target-current) < reconcileTolerance {
		return out
	}

	longIdx := -1
	var easyIdx []int
	for i, d := range out {
		switch d.RunType {
		case model.RunTypeLong:
			longIdx = i
		case model.RunTypeEasy:
			easyIdx = append(easyIdx, i)
		}
	}

	var longFloor, longCeil float64
	if longIdx >= 0 {
		longFloor = out[longIdx].DistanceMiles
		longCeil = math.Max(longFloor, LongRunCap(goal, DaysUntil(out[0].Date, goal.RaceDate)))
	}

	if target > current {
		surplus := target - current
		if longIdx >= 0 {
			add := math.Min(surplus, longCeil-longFloor)
			out[longIdx].DistanceMiles += add
			surplus -= add
		}
		spread(out, easyIdx, surplus, maxEasyMiles)
	} else {
		spread(out, easyIdx, target-current, minEasyMiles)
	}

	for _, i := range easyIdx {
		out[i].DistanceMiles = round1(out[i].DistanceMiles)
	}
	if longIdx >= 0 {
		out[longIdx].DistanceMiles = round1(out[longIdx].DistanceMiles)
	}
	absorbResidue(out, target, longIdx, longFloor, longCeil, easyIdx)
	return out
}

// spread distributes delta evenly over idx without crossing bound, which
// is a ceiling when delta is positive and a floor when negative. Days that
// hit the bound drop out and the rest share what is left.
func spread(days []model.WeeklyPlanDay, idx []int, delta, bound float64) {
	open := append([]int(nil), idx...)
	for math.Abs(delta) > 1e-9 && len(open) > 0 {
		share := delta / float64(len(open))
		applied := 0.0
		var next []int
		for _, i := range open {
			cur := days[i].DistanceMiles
			updated := cur + share
			if (delta > 0 && updated >= bound) || (delta < 0 && updated <= bound) {
				updated = bound
			} else {
				next = append(next, i)
			}
			if (delta > 0 && updated < cur) || (delta < 0 && updated > cur) {
				updated = cur
			}
			applied += updated - cur
			days[i].DistanceMiles = updated
		}
		delta -= applied
		open = next
	}
}

// absorbResidue moves the tenth-of-a-mile rounding leftover into the long
// run if it has room, otherwise into the first easy day that does.
func absorbResidue(days []model.WeeklyPlanDay, target float64, longIdx int, longFloor, longCeil float64, easyIdx []int) {
	residue := round1(target - sumDistance(days))
	if residue == 0 || math.Abs(residue) >= reconcileTolerance {
		return
	}
	if longIdx >= 0 {
		candidate := round1(days[longIdx].DistanceMiles + residue)
		if candidate >= longFloor && candidate <= longCeil {
			days[longIdx].DistanceMiles = candidate
			return
		}
	}
	for _, i := range easyIdx {
		candidate := round1(days[i].DistanceMiles + residue)
		if candidate >= minEasyMiles && candidate <= maxEasyMiles {
			days[i].DistanceMiles = candidate
			return
		}
	}
}

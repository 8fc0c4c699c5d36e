package planner

import (
	"math"

	"fertiplan/entities"
)

// Reconcile carries each recorded deviation (actual - planned) onto the nearest later
// event of the same sector and valve. Deviations are read from the input snapshot, so
// a record adjusted during the pass does not propagate its own correction. The input
// slice is not modified; order and identity are preserved in the result. Records
// without an estimated date neither give nor receive a correction.
func Reconcile(records []entities.Application) ([]entities.Application, []entities.Adjustment) {
	out := make([]entities.Application, len(records))
	for i, r := range records {
		out[i] = r
		if r.PlannedLiters != nil {
			v := *r.PlannedLiters
			out[i].PlannedLiters = &v
		}
	}

	var adjustments []entities.Adjustment
	for i, r := range records {
		if r.ActualLiters == nil || math.IsNaN(*r.ActualLiters) || r.Date.IsZero() {
			continue
		}
		planned := 0.0
		if r.PlannedLiters != nil && !math.IsNaN(*r.PlannedLiters) {
			planned = *r.PlannedLiters
		}
		delta := *r.ActualLiters - planned
		if delta == 0 {
			continue
		}
		j := nextEvent(records, i)
		if j < 0 {
			continue
		}
		base := 0.0
		if p := out[j].PlannedLiters; p != nil && !math.IsNaN(*p) {
			base = *p
		}
		v := base + delta
		out[j].PlannedLiters = &v
		adjustments = append(adjustments, entities.Adjustment{
			SourceID: r.ID,
			TargetID: records[j].ID,
			Sector:   r.Sector,
			Valve:    r.Valve,
			Delta:    delta,
		})
	}
	return out, adjustments
}

// nextEvent finds the chronologically nearest record strictly after records[i] with
// the same sector and valve; among equal dates the first in table order wins.
func nextEvent(records []entities.Application, i int) int {
	src := records[i]
	best := -1
	for j, r := range records {
		if j == i || r.Date.IsZero() || r.Sector != src.Sector || r.Valve != src.Valve {
			continue
		}
		if !r.Date.After(src.Date) {
			continue
		}
		if best < 0 || r.Date.Before(records[best].Date) {
			best = j
		}
	}
	return best
}

// Package workorder selects the applications due for a field crew and renders them
// as a printable PDF or HTML sheet.
package workorder

import (
	"sort"
	"time"

	"fertiplan/entities"
)

// Filter narrows the tracking table; zero values match everything.
type Filter struct {
	Date    *time.Time
	Sector  string
	Vintage *int
}

type Line struct {
	Date    time.Time
	Sector  string
	Vintage int
	Valve   string
	Product string
	Liters  *float64
}

type Order struct {
	Issued time.Time
	Filter Filter
	Lines  []Line
}

// Select keeps the rows matching f, ordered by estimated date then valve.
func Select(rows []entities.Application, f Filter) []Line {
	var out []Line
	for _, r := range rows {
		if f.Date != nil && !sameDay(r.Date, *f.Date) {
			continue
		}
		if f.Sector != "" && r.Sector != f.Sector {
			continue
		}
		if f.Vintage != nil && r.Vintage != *f.Vintage {
			continue
		}
		out = append(out, Line{
			Date:    r.Date,
			Sector:  r.Sector,
			Vintage: r.Vintage,
			Valve:   r.Valve,
			Product: r.Product,
			Liters:  r.PlannedLiters,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].Valve < out[j].Valve
	})
	return out
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

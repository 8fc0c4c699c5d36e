package planner

import (
	"log"
	"math"
	"sort"
	"strings"
	"time"

	"fertiplan/entities"
	"fertiplan/pkg/plan/types"
)

const (
	DateLayout = "2006-01-02"

	// DefaultLimitKgHa applies when a nutrient has no per-application limit.
	DefaultLimitKgHa = 40.0

	splitTolerance = 1e-9
)

type WeeklyInput struct {
	Monthly   []entities.MonthlyPlanRow
	Products  []entities.FertilizerProduct
	Valves    []entities.ValveCoverage
	Limits    []entities.NutrientLimit
	StartDate string // YYYY-MM-DD
}

// GenerateWeeklySchedule splits every monthly row into weekly applications capped by
// the nutrient limit and spreads each application over the vintage's active valves.
// The error is always a *types.Diagnostic.
func GenerateWeeklySchedule(in WeeklyInput) (events []entities.ScheduleEvent, err error) {
	if len(in.Monthly) == 0 {
		return nil, types.Failed("a valid monthly plan is required")
	}
	defer func() {
		if r := recover(); r != nil {
			events, err = nil, types.Failed("weekly schedule: %v", r)
		}
	}()

	start, perr := time.Parse(DateLayout, strings.TrimSpace(in.StartDate))
	if perr != nil {
		return nil, types.Failed("invalid plan start date %q: %v", in.StartDate, perr)
	}

	limits := map[types.Nutrient]float64{}
	for _, l := range in.Limits {
		n, err := types.ParseNutrient(l.Nutrient)
		if err != nil || l.LimitKgHa <= 0 {
			continue
		}
		limits[n] = l.LimitKgHa
	}
	products := map[string]entities.FertilizerProduct{}
	for _, p := range in.Products {
		if _, dup := products[p.Name]; !dup {
			products[p.Name] = p
		}
	}
	valves := activeValves(in.Valves)

	for _, row := range in.Monthly {
		n, err := types.ParseNutrient(row.Nutrient)
		if err != nil {
			log.Printf("[weekly] skip %s/%d %s: %v", row.Sector, row.Vintage, row.Period, err)
			continue
		}
		limit, ok := limits[n]
		if !ok {
			limit = DefaultLimitKgHa
		}
		prod, ok := products[row.Product]
		if !ok {
			continue
		}
		conc := n.Concentration(prod)
		if !positive(conc) || !positive(prod.Density) {
			continue
		}
		vs := valves[row.Vintage]
		if len(vs) == 0 {
			continue
		}
		monthlyKgHa := row.DoseKgHa * *conc
		splits := SplitCount(monthlyKgHa, limit)
		if splits == 0 {
			continue
		}
		perAppKgHa := row.DoseKgHa / float64(splits)

		period, err := types.ParsePeriod(row.Period)
		if err != nil {
			log.Printf("[weekly] skip %s/%d %s: %v", row.Sector, row.Vintage, row.Product, err)
			continue
		}
		dates := WeeklyDates(EffectiveStart(start, period), splits)

		for _, v := range vs {
			liters := perAppKgHa * *v.AreaHa / *prod.Density
			for _, d := range dates {
				events = append(events, entities.ScheduleEvent{
					Sector:        row.Sector,
					Vintage:       row.Vintage,
					Period:        row.Period,
					Product:       row.Product,
					Nutrient:      row.Nutrient,
					Valve:         v.Valve,
					Date:          d,
					PlannedLiters: liters,
				})
			}
		}
	}

	if len(events) == 0 {
		return nil, types.Empty("no schedule events were generated")
	}
	sort.SliceStable(events, func(i, j int) bool {
		if !events[i].Date.Equal(events[j].Date) {
			return events[i].Date.Before(events[j].Date)
		}
		return events[i].Valve < events[j].Valve
	})
	return events, nil
}

// SplitCount is the number of applications needed so none exceeds limitKgHa of pure
// nutrient. Zero means nothing to apply.
func SplitCount(monthlyKgHa, limitKgHa float64) int {
	if math.IsNaN(monthlyKgHa) || monthlyKgHa <= 0 {
		return 0
	}
	if limitKgHa <= 0 {
		limitKgHa = DefaultLimitKgHa
	}
	c := int(math.Ceil(monthlyKgHa/limitKgHa - splitTolerance))
	if c < 1 {
		c = 1
	}
	return c
}

// EffectiveStart is the later of the plan start and the first day of the period's
// month, counted from the plan start's month.
func EffectiveStart(planStart time.Time, p types.Period) time.Time {
	first := time.Date(planStart.Year(), planStart.Month(), 1, 0, 0, 0, 0, planStart.Location())
	theoretical := first.AddDate(0, p.MonthOffset(), 0)
	if planStart.After(theoretical) {
		return planStart
	}
	return theoretical
}

// WeeklyDates returns n Mondays, the first being on or after from.
func WeeklyDates(from time.Time, n int) []time.Time {
	shift := (int(time.Monday) - int(from.Weekday()) + 7) % 7
	d := from.AddDate(0, 0, shift)
	out := make([]time.Time, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, d.AddDate(0, 0, 7*i))
	}
	return out
}

// activeValves groups valves with a positive area by vintage, keeping table order.
// Only the first row for a (vintage, valve) pair counts, active or not.
func activeValves(rows []entities.ValveCoverage) map[int][]entities.ValveCoverage {
	type key struct {
		vintage int
		valve   string
	}
	seen := map[key]bool{}
	out := map[int][]entities.ValveCoverage{}
	for _, v := range rows {
		k := key{v.Vintage, v.Valve}
		if seen[k] {
			continue
		}
		seen[k] = true
		if !positive(v.AreaHa) {
			continue
		}
		out[v.Vintage] = append(out[v.Vintage], v)
	}
	return out
}

// Package dashboard summarizes recorded applications against the plan.
package dashboard

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"fertiplan/entities"
)

// Filter applies to applied records only; Month is YYYY-MM of the actual date.
type Filter struct {
	Sector  string
	Vintage *int
	Month   string
}

type Volume struct {
	Name    string  `json:"name"`
	Planned float64 `json:"planned_liters"`
	Actual  float64 `json:"actual_liters"`
}

type Cost struct {
	Product string  `json:"product"`
	Cost    float64 `json:"cost"`
}

type Summary struct {
	ActualLiters  float64 `json:"actual_liters"`
	PlannedLiters float64 `json:"planned_liters"`
	Difference    float64 `json:"difference_liters"`
	CostDeviation float64 `json:"cost_deviation"`

	// Compliance is nil when the filter leaves no applied record.
	Compliance *float64 `json:"compliance_pct"`
	Applied    int      `json:"applied"`
	Due        int      `json:"due"`
	ByProduct  []Volume `json:"by_product"`
	BySector   []Volume `json:"by_sector"`
	CostShare  []Cost   `json:"cost_by_product"`
}

type Input struct {
	Applications []entities.Application
	Events       []entities.ScheduleEvent
	Products     []entities.FertilizerProduct
	Now          time.Time
}

type group struct {
	planned, actual, cost decimal.Decimal
}

// Compute aggregates the applied records (those with an actual date). Compliance
// compares every applied record with the weekly events already due, regardless of
// the filter.
func Compute(in Input, f Filter) Summary {
	s := Summary{ByProduct: []Volume{}, BySector: []Volume{}, CostShare: []Cost{}}

	var applied []entities.Application
	for _, a := range in.Applications {
		if a.ActualDate != nil {
			applied = append(applied, a)
		}
	}
	if len(applied) == 0 {
		zero := 0.0
		s.Compliance = &zero
		return s
	}

	var selected []entities.Application
	for _, a := range applied {
		if f.Sector != "" && a.Sector != f.Sector {
			continue
		}
		if f.Vintage != nil && a.Vintage != *f.Vintage {
			continue
		}
		if f.Month != "" && a.ActualDate.Format("2006-01") != f.Month {
			continue
		}
		selected = append(selected, a)
	}
	if len(selected) == 0 {
		return s
	}

	unitCost := make(map[string]decimal.Decimal, len(in.Products))
	for _, p := range in.Products {
		if p.Density == nil || p.Price == nil {
			continue
		}
		unitCost[p.Name] = decimal.NewFromFloat(*p.Density).Mul(decimal.NewFromFloat(*p.Price))
	}

	var actual, planned, actualCost, plannedCost decimal.Decimal
	byProduct := map[string]*group{}
	bySector := map[string]*group{}
	for _, a := range selected {
		act, plan := liters(a.ActualLiters), liters(a.PlannedLiters)
		unit := unitCost[a.Product]
		actual = actual.Add(act)
		planned = planned.Add(plan)
		actualCost = actualCost.Add(act.Mul(unit))
		plannedCost = plannedCost.Add(plan.Mul(unit))

		accumulate(bySector, a.Sector, plan, act)
		accumulate(byProduct, a.Product, plan, act)
		byProduct[a.Product].cost = byProduct[a.Product].cost.Add(act.Mul(unit))
	}

	s.ActualLiters = round(actual)
	s.PlannedLiters = round(planned)
	s.Difference = round(actual.Sub(planned))
	s.CostDeviation = round(actualCost.Sub(plannedCost))
	s.ByProduct = volumes(byProduct)
	s.BySector = volumes(bySector)
	for _, name := range sortedKeys(byProduct) {
		s.CostShare = append(s.CostShare, Cost{Product: name, Cost: round(byProduct[name].cost)})
	}

	s.Applied = len(applied)
	for _, e := range in.Events {
		if !e.Date.After(in.Now) {
			s.Due++
		}
	}
	pct := 0.0
	if s.Due > 0 {
		pct = round(decimal.NewFromInt(int64(s.Applied)).Mul(decimal.NewFromInt(100)).Div(decimal.NewFromInt(int64(s.Due))))
	}
	s.Compliance = &pct
	return s
}

func accumulate(m map[string]*group, key string, planned, actual decimal.Decimal) {
	g := m[key]
	if g == nil {
		g = &group{}
		m[key] = g
	}
	g.planned = g.planned.Add(planned)
	g.actual = g.actual.Add(actual)
}

func liters(v *float64) decimal.Decimal {
	if v == nil {
		return decimal.Zero
	}
	return decimal.NewFromFloat(*v)
}

func round(d decimal.Decimal) float64 { return d.Round(2).InexactFloat64() }

func volumes(m map[string]*group) []Volume {
	out := make([]Volume, 0, len(m))
	for _, k := range sortedKeys(m) {
		out = append(out, Volume{Name: k, Planned: round(m[k].planned), Actual: round(m[k].actual)})
	}
	return out
}

func sortedKeys(m map[string]*group) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

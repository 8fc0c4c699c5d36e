package catalog

import (
	"fmt"

	"fertiplan/entities"
	"fertiplan/pkg/plan/types"
)

// DefaultEarlyVintages use the early distribution curve.
var DefaultEarlyVintages = []int{2011, 2012, 2016, 2017}

func fp(v float64) *float64 { return &v }

// Defaults is the farm configuration the planner ships with.
func Defaults() Snapshot {
	s := Snapshot{EarlyVintages: append([]int(nil), DefaultEarlyVintages...)}

	reqs := []struct {
		sector          string
		vintage         int
		ha, n, p, k, mg float64
	}{
		{"Chacra Vieja", 2011, 11, 180, 70, 240, 30},
		{"Chacra Pivot", 2012, 38, 200, 65, 230, 25},
		{"Chacra Isla", 2016, 30, 190, 60, 230, 20},
		{"Chacra Isla", 2017, 34, 180, 45, 180, 18},
		{"Chacra Isla", 2018, 14, 170, 40, 140, 15},
		{"Chacra Isla", 2019, 55, 140, 30, 120, 15},
	}
	for _, r := range reqs {
		s.Requirements = append(s.Requirements, entities.SectorRequirement{
			Sector: r.sector, Vintage: r.vintage,
			AreaHa: fp(r.ha), N: fp(r.n), P: fp(r.p), K: fp(r.k), Mg: fp(r.mg),
		})
	}

	s.Products = []entities.FertilizerProduct{
		{Name: "BIOINICIO", N: fp(0.03), P2O5: fp(0.20), K2O: fp(0), S: fp(0), MgO: fp(0), Density: fp(1.188), Price: fp(2.5)},
		{Name: "NITRON", N: fp(0.28), P2O5: fp(0), K2O: fp(0), S: fp(0.03), MgO: fp(0), Density: fp(1.320), Price: fp(1.8)},
		{Name: "BIOPRODUCCION", N: fp(0), P2O5: fp(0), K2O: fp(0.20), S: fp(0.08), MgO: fp(0), Density: fp(1.250), Price: fp(2.0)},
		{Name: "BIOPREMIUM", N: fp(0), P2O5: fp(0), K2O: fp(0), S: fp(0.06), MgO: fp(0.06), Density: fp(1.350), Price: fp(3.0)},
	}

	s.EarlyCurve = curve(entities.CurveEarly, [5][4]float64{
		{0.10, 0, 0, 0},
		{0.27, 0, 0.25, 0.30},
		{0.33, 0.70, 0.45, 0.30},
		{0.15, 0, 0.10, 0.15},
		{0.15, 0.30, 0.20, 0.25},
	})
	s.LateCurve = curve(entities.CurveLate, [5][4]float64{
		{0.10, 0, 0, 0},
		{0.35, 0, 0.20, 0.30},
		{0.35, 0.70, 0.50, 0.30},
		{0.10, 0.10, 0.15, 0.15},
		{0.10, 0.20, 0.15, 0.25},
	})

	// nil marks a valve that does not serve the vintage
	valves := []struct {
		vintage int
		areas   [4]*float64
	}{
		{2011, [4]*float64{fp(12), fp(26), nil, nil}},
		{2012, [4]*float64{fp(4.6), fp(6.4), nil, nil}},
		{2016, [4]*float64{fp(8.0), fp(9.1), fp(8.5), fp(9.7)}},
		{2017, [4]*float64{fp(5), fp(5), fp(5), fp(5)}},
		{2018, [4]*float64{fp(7.8), fp(7.7), fp(10.4), fp(8.8)}},
		{2019, [4]*float64{fp(11), fp(12), fp(12), fp(10)}},
	}
	for _, v := range valves {
		for i, a := range v.areas {
			s.Valves = append(s.Valves, entities.ValveCoverage{Vintage: v.vintage, Valve: ValveName(i + 1), AreaHa: a})
		}
	}

	s.Limits = []entities.NutrientLimit{
		{Nutrient: "N", LimitKgHa: 40},
		{Nutrient: "P", LimitKgHa: 20},
		{Nutrient: "K", LimitKgHa: 35},
		{Nutrient: "Mg", LimitKgHa: 5},
	}
	return s
}

// ValveName is the label of the i-th valve column (1-based).
func ValveName(i int) string { return fmt.Sprintf("Valvula_%d", i) }

func curve(name string, rows [5][4]float64) []entities.DistributionRow {
	labels := types.PeriodLabels()
	out := make([]entities.DistributionRow, 0, len(rows))
	for i, r := range rows {
		out = append(out, entities.DistributionRow{
			Curve: name, Period: labels[i],
			N: fp(r[0]), P: fp(r[1]), K: fp(r[2]), Mg: fp(r[3]),
		})
	}
	return out
}

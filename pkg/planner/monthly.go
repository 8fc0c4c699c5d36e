package planner

import (
	"math"

	"fertiplan/entities"
	"fertiplan/pkg/plan/types"
)

// MonthlyInput is everything the monthly plan needs; nothing is read from globals.
type MonthlyInput struct {
	Requirements  []entities.SectorRequirement
	Products      []entities.FertilizerProduct
	EarlyCurve    []entities.DistributionRow
	LateCurve     []entities.DistributionRow
	EarlyVintages []int
}

// GenerateMonthlyPlan picks, for every sector/vintage/period/nutrient with a positive
// requirement, the product with the lowest total cost. Ties keep the product that
// comes first in the catalog. The error is always a *types.Diagnostic.
func GenerateMonthlyPlan(in MonthlyInput) (rows []entities.MonthlyPlanRow, err error) {
	defer func() {
		if r := recover(); r != nil {
			rows, err = nil, types.Failed("monthly plan: %v", r)
		}
	}()

	early := make(map[int]bool, len(in.EarlyVintages))
	for _, v := range in.EarlyVintages {
		early[v] = true
	}

	for _, req := range in.Requirements {
		if req.Vintage == 0 || !positive(req.AreaHa) {
			continue
		}
		area := *req.AreaHa
		curve := in.LateCurve
		if early[req.Vintage] {
			curve = in.EarlyCurve
		}
		for _, period := range curve {
			for _, n := range types.Nutrients {
				annual, frac := n.Requirement(req), n.Fraction(period)
				if annual == nil || frac == nil {
					continue
				}
				need := *annual * *frac
				if math.IsNaN(need) || need <= 0 {
					continue
				}
				best, ok := cheapest(in.Products, n, need, area)
				if !ok {
					continue
				}
				row := best
				row.Sector = req.Sector
				row.Vintage = req.Vintage
				row.Period = period.Period
				row.Nutrient = string(n)
				rows = append(rows, row)
			}
		}
	}
	if len(rows) == 0 {
		return nil, types.Empty("no plan options were generated")
	}
	return rows, nil
}

// cheapest evaluates every catalog product carrying n and returns the cost figures
// of the winner.
func cheapest(products []entities.FertilizerProduct, n types.Nutrient, needKgHa, areaHa float64) (entities.MonthlyPlanRow, bool) {
	var best entities.MonthlyPlanRow
	found := false
	minCost := math.Inf(1)
	for _, p := range products {
		conc := n.Concentration(p)
		if !positive(conc) {
			continue
		}
		if !positive(p.Price) || !positive(p.Density) {
			continue
		}
		dose := needKgHa / *conc
		cost := dose * *p.Price * areaHa
		if cost < minCost {
			minCost = cost
			found = true
			best = entities.MonthlyPlanRow{
				Product:   p.Name,
				DoseKgHa:  dose,
				TotalKg:   dose * areaHa,
				DoseLtHa:  dose / *p.Density,
				TotalLt:   dose * areaHa / *p.Density,
				CostPerHa: dose * *p.Price,
				TotalCost: cost,
			}
		}
	}
	return best, found
}

func positive(v *float64) bool {
	return v != nil && !math.IsNaN(*v) && *v > 0
}

package catalog

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"fertiplan/entities"
	"fertiplan/pkg/plan/types"
)

// Snapshot is the full editable configuration the generators read from.
type Snapshot struct {
	Requirements  []entities.SectorRequirement `json:"requirements"`
	Products      []entities.FertilizerProduct `json:"fertilizers"`
	EarlyCurve    []entities.DistributionRow   `json:"early_curve"`
	LateCurve     []entities.DistributionRow   `json:"late_curve"`
	Valves        []entities.ValveCoverage     `json:"valves"`
	Limits        []entities.NutrientLimit     `json:"limits"`
	EarlyVintages []int                        `json:"early_vintages"`
	StartDate     string                       `json:"start_date"`
	CurveWarnings []string                     `json:"curve_warnings,omitempty"`
}

const curveTolerance = 1e-3

// CurveWarnings reports every curve column whose fractions do not add up to 1.
// Nothing is rejected; a curve that under- or over-allocates is still planned as given.
func CurveWarnings(s Snapshot) []string {
	var out []string
	check := func(name string, rows []entities.DistributionRow) {
		if len(rows) == 0 {
			return
		}
		for _, n := range types.Nutrients {
			sum := 0.0
			for _, r := range rows {
				if v := n.Fraction(r); v != nil && !math.IsNaN(*v) {
					sum += *v
				}
			}
			if math.Abs(sum-1) > curveTolerance {
				out = append(out, fmt.Sprintf("%s curve: %s fractions sum to %.3f", name, n, sum))
			}
		}
	}
	check(entities.CurveEarly, s.EarlyCurve)
	check(entities.CurveLate, s.LateCurve)
	return out
}

// FormatVintages stores a vintage list as a comma separated setting.
func FormatVintages(vs []int) string {
	parts := make([]string, 0, len(vs))
	for _, v := range vs {
		parts = append(parts, strconv.Itoa(v))
	}
	return strings.Join(parts, ",")
}

// ParseVintages reads the comma separated setting back; unparseable items are dropped.
func ParseVintages(s string) []int {
	seen := map[int]bool{}
	var out []int
	for _, p := range strings.Split(s, ",") {
		v, ok := ParseVintage(p)
		if !ok || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	sort.Ints(out)
	return out
}

// ParseVintage accepts "2016" and "2016.0" but not "2018.1"; such rows describe a
// secondary block and never match an integer planting year.
func ParseVintage(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	return int(f), true
}

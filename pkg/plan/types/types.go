package types

import (
	"errors"
	"fmt"
	"strings"

	"fertiplan/entities"
)

type Nutrient string

const (
	N  Nutrient = "N"
	P  Nutrient = "P"
	K  Nutrient = "K"
	Mg Nutrient = "Mg"
)

// Nutrients is the fixed evaluation order of every plan.
var Nutrients = []Nutrient{N, P, K, Mg}

func ParseNutrient(s string) (Nutrient, error) {
	for _, n := range Nutrients {
		if strings.EqualFold(strings.TrimSpace(s), string(n)) {
			return n, nil
		}
	}
	return "", fmt.Errorf("unknown nutrient %q", s)
}

// Requirement returns the annual kg/ha of n for a sector planting.
func (n Nutrient) Requirement(r entities.SectorRequirement) *float64 {
	switch n {
	case N:
		return r.N
	case P:
		return r.P
	case K:
		return r.K
	case Mg:
		return r.Mg
	}
	return nil
}

// Fraction returns the share of the annual requirement applied in a curve period.
func (n Nutrient) Fraction(d entities.DistributionRow) *float64 {
	switch n {
	case N:
		return d.N
	case P:
		return d.P
	case K:
		return d.K
	case Mg:
		return d.Mg
	}
	return nil
}

// Concentration maps the nutrient to the catalog column that carries it
// (P as P2O5, K as K2O, Mg as MgO).
func (n Nutrient) Concentration(f entities.FertilizerProduct) *float64 {
	switch n {
	case N:
		return f.N
	case P:
		return f.P2O5
	case K:
		return f.K2O
	case Mg:
		return f.MgO
	}
	return nil
}

// Period is a season slot; its value is the month offset from the season start.
type Period int

const (
	PeriodOctober Period = iota
	PeriodNovember
	PeriodDecember
	PeriodJanuary
	PeriodFebruaryMarch
)

var periodLabels = [...]string{"Octubre", "Noviembre", "Diciembre", "Enero", "Febrero/Marzo"}

var periodAliases = map[string]Period{
	"october":        PeriodOctober,
	"november":       PeriodNovember,
	"december":       PeriodDecember,
	"january":        PeriodJanuary,
	"february/march": PeriodFebruaryMarch,
}

func (p Period) String() string {
	if p < PeriodOctober || p > PeriodFebruaryMarch {
		return fmt.Sprintf("Period(%d)", int(p))
	}
	return periodLabels[p]
}

func (p Period) MonthOffset() int { return int(p) }

func PeriodLabels() []string { return append([]string(nil), periodLabels[:]...) }

func ParsePeriod(label string) (Period, error) {
	l := strings.ToLower(strings.TrimSpace(label))
	for i, s := range periodLabels {
		if strings.ToLower(s) == l {
			return Period(i), nil
		}
	}
	if p, ok := periodAliases[l]; ok {
		return p, nil
	}
	return 0, fmt.Errorf("unknown period %q", label)
}

type DiagnosticKind string

const (
	DiagnosticEmpty DiagnosticKind = "empty"
	DiagnosticError DiagnosticKind = "error"
)

// Diagnostic stands in for a result set when a generator produced nothing usable.
type Diagnostic struct {
	Kind    DiagnosticKind `json:"kind"`
	Message string         `json:"message"`
}

func (d *Diagnostic) Error() string { return string(d.Kind) + ": " + d.Message }

func Empty(msg string) *Diagnostic { return &Diagnostic{Kind: DiagnosticEmpty, Message: msg} }

func Failed(format string, args ...any) *Diagnostic {
	return &Diagnostic{Kind: DiagnosticError, Message: fmt.Sprintf(format, args...)}
}

// AsDiagnostic extracts a Diagnostic from err, wrapping foreign errors as failures.
func AsDiagnostic(err error) *Diagnostic {
	if err == nil {
		return nil
	}
	var d *Diagnostic
	if errors.As(err, &d) {
		return d
	}
	return Failed("%v", err)
}

func IsEmpty(err error) bool {
	var d *Diagnostic
	return errors.As(err, &d) && d.Kind == DiagnosticEmpty
}

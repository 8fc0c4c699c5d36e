package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"fertiplan/entities"
	"fertiplan/pkg/tabular"
)

// Seed file names looked up under the seed directory.
const (
	RequirementsFile = "requerimientos.csv"
	FertilizersFile  = "fertilizantes.csv"
	EarlyCurveFile   = "distribucion_1.csv"
	LateCurveFile    = "distribucion_2.csv"
	ValvesFile       = "valvulas.csv"
	LimitsFile       = "limites_nutrientes.csv"
	StartDateFile    = "fecha_inicio_riego.txt"
)

// LoadSeeds starts from Defaults and replaces every table that has a readable,
// non-empty seed file in dir. Broken files are logged and the default is kept.
func LoadSeeds(dir string) Snapshot {
	s := Defaults()
	if dir == "" {
		return s
	}
	try := func(name string, load func(table) (int, error)) {
		path := filepath.Join(dir, name)
		t, err := readCSV(path)
		if errors.Is(err, os.ErrNotExist) || errors.Is(err, io.EOF) {
			return
		}
		if err != nil {
			log.Printf("[cfg] seed %s: %v", path, err)
			return
		}
		n, err := load(t)
		if err != nil {
			log.Printf("[cfg] seed %s: %v", path, err)
			return
		}
		log.Printf("[cfg] seed %s: %d rows", path, n)
	}

	try(RequirementsFile, func(t table) (int, error) {
		v, err := parseRequirements(t)
		if err == nil {
			s.Requirements = v
		}
		return len(v), err
	})
	try(FertilizersFile, func(t table) (int, error) {
		v, err := parseFertilizers(t)
		if err == nil {
			s.Products = v
		}
		return len(v), err
	})
	try(EarlyCurveFile, func(t table) (int, error) {
		v, err := parseCurve(entities.CurveEarly, t)
		if err == nil {
			s.EarlyCurve = v
		}
		return len(v), err
	})
	try(LateCurveFile, func(t table) (int, error) {
		v, err := parseCurve(entities.CurveLate, t)
		if err == nil {
			s.LateCurve = v
		}
		return len(v), err
	})
	try(ValvesFile, func(t table) (int, error) {
		v, err := parseValves(t)
		if err == nil {
			s.Valves = v
		}
		return len(v), err
	})
	try(LimitsFile, func(t table) (int, error) {
		v, err := parseLimits(t)
		if err == nil {
			s.Limits = v
		}
		return len(v), err
	})

	if b, err := os.ReadFile(filepath.Join(dir, StartDateFile)); err == nil {
		if d := tabular.ParseOptionalDate(string(b)); d != nil {
			s.StartDate = d.Format("2006-01-02")
		}
	}
	return s
}

type table struct {
	titles []string
	h      tabular.Header
	rows   [][]string
}

func readCSV(path string) (table, error) {
	f, err := os.Open(path)
	if err != nil {
		return table{}, err
	}
	defer f.Close()

	cr := csv.NewReader(f)
	cr.FieldsPerRecord = -1
	head, err := cr.Read()
	if err != nil {
		return table{}, err
	}
	rows, err := cr.ReadAll()
	if err != nil {
		return table{}, err
	}
	return table{titles: head, h: tabular.NewHeader(head), rows: rows}, nil
}

func required(h tabular.Header, what string, aliases ...string) (int, error) {
	i := h.Find(aliases...)
	if i < 0 {
		return -1, fmt.Errorf("missing %s column (any of %s)", what, strings.Join(aliases, ", "))
	}
	return i, nil
}

func parseRequirements(t table) ([]entities.SectorRequirement, error) {
	cSector, err := required(t.h, "sector", "Sector", "sector_name")
	if err != nil {
		return nil, err
	}
	cYear, err := required(t.h, "vintage", "Anio", "Año", "vintage", "year", "planting_year")
	if err != nil {
		return nil, err
	}
	cArea := t.h.Find("Sup_ha", "area_ha", "area", "ha", "superficie")
	cN, cP, cK, cMg := t.h.Find("N"), t.h.Find("P"), t.h.Find("K"), t.h.Find("Mg")

	var out []entities.SectorRequirement
	for _, rec := range t.rows {
		sector := tabular.Cell(rec, cSector)
		if sector == "" {
			continue
		}
		vintage, _ := ParseVintage(tabular.Cell(rec, cYear))
		out = append(out, entities.SectorRequirement{
			Sector:  sector,
			Vintage: vintage,
			AreaHa:  tabular.ParseOptionalFloat(tabular.Cell(rec, cArea)),
			N:       tabular.ParseOptionalFloat(tabular.Cell(rec, cN)),
			P:       tabular.ParseOptionalFloat(tabular.Cell(rec, cP)),
			K:       tabular.ParseOptionalFloat(tabular.Cell(rec, cK)),
			Mg:      tabular.ParseOptionalFloat(tabular.Cell(rec, cMg)),
		})
	}
	if len(out) == 0 {
		return nil, errors.New("no rows")
	}
	return out, nil
}

func parseFertilizers(t table) ([]entities.FertilizerProduct, error) {
	cName, err := required(t.h, "product", "Producto", "product", "name")
	if err != nil {
		return nil, err
	}
	col := func(aliases ...string) int { return t.h.Find(aliases...) }
	cN, cP, cK, cS, cMg := col("N"), col("P2O5"), col("K2O"), col("S"), col("MgO")
	cDens, cPrice := col("Densidad", "density"), col("Precio", "price")

	seen := map[string]bool{}
	var out []entities.FertilizerProduct
	for _, rec := range t.rows {
		name := tabular.Cell(rec, cName)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		out = append(out, entities.FertilizerProduct{
			Name:    name,
			N:       tabular.ParseOptionalFloat(tabular.Cell(rec, cN)),
			P2O5:    tabular.ParseOptionalFloat(tabular.Cell(rec, cP)),
			K2O:     tabular.ParseOptionalFloat(tabular.Cell(rec, cK)),
			S:       tabular.ParseOptionalFloat(tabular.Cell(rec, cS)),
			MgO:     tabular.ParseOptionalFloat(tabular.Cell(rec, cMg)),
			Density: tabular.ParseOptionalFloat(tabular.Cell(rec, cDens)),
			Price:   tabular.ParseOptionalFloat(tabular.Cell(rec, cPrice)),
		})
	}
	if len(out) == 0 {
		return nil, errors.New("no rows")
	}
	return out, nil
}

func parseCurve(name string, t table) ([]entities.DistributionRow, error) {
	cPeriod, err := required(t.h, "period", "Mes", "period", "month")
	if err != nil {
		return nil, err
	}
	cN, cP, cK, cMg := t.h.Find("N"), t.h.Find("P"), t.h.Find("K"), t.h.Find("Mg")

	var out []entities.DistributionRow
	for _, rec := range t.rows {
		period := tabular.Cell(rec, cPeriod)
		if period == "" {
			continue
		}
		out = append(out, entities.DistributionRow{
			Curve:  name,
			Period: period,
			N:      tabular.ParseOptionalFloat(tabular.Cell(rec, cN)),
			P:      tabular.ParseOptionalFloat(tabular.Cell(rec, cP)),
			K:      tabular.ParseOptionalFloat(tabular.Cell(rec, cK)),
			Mg:     tabular.ParseOptionalFloat(tabular.Cell(rec, cMg)),
		})
	}
	if len(out) == 0 {
		return nil, errors.New("no rows")
	}
	return out, nil
}

// parseValves reads the wide layout (one row per vintage, one column per valve).
// Rows whose vintage is not an integer year are dropped.
func parseValves(t table) ([]entities.ValveCoverage, error) {
	cYear, err := required(t.h, "vintage", "Año", "Anio", "vintage", "year")
	if err != nil {
		return nil, err
	}
	type valveCol struct {
		idx  int
		name string
	}
	var cols []valveCol
	for i, title := range t.titles {
		title = strings.TrimSpace(strings.TrimPrefix(title, "\uFEFF"))
		if i == cYear || title == "" {
			continue
		}
		cols = append(cols, valveCol{idx: i, name: title})
	}
	if len(cols) == 0 {
		return nil, errors.New("no valve columns")
	}

	var out []entities.ValveCoverage
	for _, rec := range t.rows {
		vintage, ok := ParseVintage(tabular.Cell(rec, cYear))
		if !ok {
			continue
		}
		for _, c := range cols {
			out = append(out, entities.ValveCoverage{
				Vintage: vintage,
				Valve:   c.name,
				AreaHa:  tabular.ParseOptionalFloat(tabular.Cell(rec, c.idx)),
			})
		}
	}
	if len(out) == 0 {
		return nil, errors.New("no rows")
	}
	return out, nil
}

func parseLimits(t table) ([]entities.NutrientLimit, error) {
	cNut, err := required(t.h, "nutrient", "Nutriente", "nutrient")
	if err != nil {
		return nil, err
	}
	cLim, err := required(t.h, "limit", "Limite_kg_ha_app", "limit_kg_ha", "limit")
	if err != nil {
		return nil, err
	}
	var out []entities.NutrientLimit
	for _, rec := range t.rows {
		n := tabular.Cell(rec, cNut)
		v := tabular.ParseOptionalFloat(tabular.Cell(rec, cLim))
		if n == "" || v == nil {
			continue
		}
		out = append(out, entities.NutrientLimit{Nutrient: n, LimitKgHa: *v})
	}
	if len(out) == 0 {
		return nil, errors.New("no rows")
	}
	return out, nil
}

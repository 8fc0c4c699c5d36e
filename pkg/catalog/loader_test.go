package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fertiplan/entities"
)

func writeSeed(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
}

func TestDefaults(t *testing.T) {
	s := Defaults()
	assert.Len(t, s.Requirements, 6)
	assert.Len(t, s.Products, 4)
	assert.Len(t, s.EarlyCurve, 5)
	assert.Len(t, s.LateCurve, 5)
	assert.Len(t, s.Valves, 24)
	assert.Equal(t, []int{2011, 2012, 2016, 2017}, s.EarlyVintages)
	assert.Empty(t, s.StartDate)
	assert.Empty(t, CurveWarnings(s), "shipped curves each sum to 1")

	inactive := 0
	for _, v := range s.Valves {
		if v.AreaHa == nil {
			inactive++
			assert.Contains(t, []int{2011, 2012}, v.Vintage)
		}
	}
	assert.Equal(t, 4, inactive)
	assert.Equal(t, "Valvula_3", s.Valves[2].Valve)
	assert.Equal(t, entities.NutrientLimit{Nutrient: "Mg", LimitKgHa: 5}, s.Limits[3])
}

func TestLoadSeedsOverridesPresentFiles(t *testing.T) {
	dir := t.TempDir()
	writeSeed(t, dir, RequirementsFile, "\uFEFFSector,Anio,Sup_ha,N,P,K,Mg\nLote 1,2016,10,100,,abc,5\n,2017,3,1,1,1,1\nLote 2,2018.0,4,50,10,20,2\n")
	writeSeed(t, dir, FertilizersFile, "Producto,N,P2O5,K2O,S,MgO,Densidad,Precio\nUREA,0.46,0,0,0,0,1.3,0.9\nUREA,0.1,0,0,0,0,1,1\n")
	writeSeed(t, dir, ValvesFile, "Año,Valvula_1,Valvula_2\n2016,5,\n2018.1,6,7\n2018,3,4\n")
	writeSeed(t, dir, LimitsFile, "Nutriente,Limite_kg_ha_app\nN,30\nK,n/a\n")
	writeSeed(t, dir, LateCurveFile, "")
	writeSeed(t, dir, EarlyCurveFile, "Nothing,Here\n1,2\n")
	writeSeed(t, dir, StartDateFile, "2024-10-15\n")

	s := LoadSeeds(dir)

	require.Len(t, s.Requirements, 2)
	r := s.Requirements[0]
	assert.Equal(t, "Lote 1", r.Sector)
	assert.Equal(t, 2016, r.Vintage)
	require.NotNil(t, r.AreaHa)
	assert.Equal(t, 10.0, *r.AreaHa)
	assert.Nil(t, r.P)
	assert.Nil(t, r.K)
	assert.Equal(t, 2018, s.Requirements[1].Vintage)

	require.Len(t, s.Products, 1, "duplicate names keep the first")
	assert.Equal(t, 0.46, *s.Products[0].N)

	require.Len(t, s.Valves, 4, "fractional vintage rows are dropped")
	assert.Equal(t, "Valvula_1", s.Valves[0].Valve)
	assert.Nil(t, s.Valves[1].AreaHa)
	assert.Equal(t, 2018, s.Valves[2].Vintage)

	assert.Equal(t, []entities.NutrientLimit{{Nutrient: "N", LimitKgHa: 30}}, s.Limits)
	assert.Equal(t, "2024-10-15", s.StartDate)

	// empty and malformed files fall back to the defaults
	assert.Equal(t, Defaults().LateCurve, s.LateCurve)
	assert.Equal(t, Defaults().EarlyCurve, s.EarlyCurve)
}

func TestLoadSeedsWithoutDirectory(t *testing.T) {
	assert.Equal(t, Defaults(), LoadSeeds(""))
	assert.Equal(t, Defaults(), LoadSeeds(filepath.Join(t.TempDir(), "missing")))
}

func TestCurveWarnings(t *testing.T) {
	s := Defaults()
	s.LateCurve[0].N = fp(0.5)
	s.EarlyCurve = nil
	w := CurveWarnings(s)
	require.Len(t, w, 1)
	assert.Contains(t, w[0], "late curve: N")
	assert.Contains(t, w[0], "1.400")
}

func TestVintageSetting(t *testing.T) {
	assert.Equal(t, "2011,2016", FormatVintages([]int{2011, 2016}))
	assert.Equal(t, []int{2011, 2016, 2017}, ParseVintages(" 2017, 2011,x,2016.0,2016, 2018.5"))
	assert.Nil(t, ParseVintages(""))

	_, ok := ParseVintage("2018.1")
	assert.False(t, ok)
	v, ok := ParseVintage("2019")
	assert.True(t, ok)
	assert.Equal(t, 2019, v)
}

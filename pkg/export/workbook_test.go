package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"fertiplan/entities"
)

func reopen(t *testing.T, f *excelize.File) *excelize.File {
	t.Helper()
	b, err := Bytes(f)
	require.NoError(t, err)
	out, err := excelize.OpenReader(bytes.NewReader(b))
	require.NoError(t, err)
	t.Cleanup(func() { out.Close() })
	return out
}

func TestMonthlyWorkbook(t *testing.T) {
	f, err := MonthlyWorkbook([]entities.MonthlyPlanRow{{
		Sector: "Chacra Isla", Vintage: 2016, Period: "Octubre", Nutrient: "N", Product: "NITRON",
		DoseKgHa: 35.714285, TotalKg: 357.14285, DoseLtHa: 27.056, TotalLt: 270.5628,
		CostPerHa: 64.2857, TotalCost: 642.857142,
	}})
	require.NoError(t, err)
	x := reopen(t, f)

	assert.Equal(t, []string{MonthlySheet}, x.GetSheetList())
	rows, err := x.GetRows(MonthlySheet)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Sector", rows[0][0])
	assert.Equal(t, "Total cost", rows[0][10])
	assert.Equal(t, []string{"Chacra Isla", "2016", "Octubre", "N", "NITRON"}, rows[1][:5])
	assert.Equal(t, "35.71", rows[1][5])
	assert.Equal(t, "642.86", rows[1][10])
}

func TestWeeklyWorkbook(t *testing.T) {
	d := time.Date(2024, 10, 21, 0, 0, 0, 0, time.UTC)
	f, err := WeeklyWorkbook([]entities.ScheduleEvent{
		{Date: d, Sector: "A", Vintage: 2018, Period: "Octubre", Nutrient: "N", Product: "NITRON", Valve: "Valvula_1", PlannedLiters: 135.2814},
		{Date: d.AddDate(0, 0, 7), Sector: "A", Vintage: 2018, Period: "Octubre", Nutrient: "N", Product: "NITRON", Valve: "Valvula_1", PlannedLiters: 135.2814},
	})
	require.NoError(t, err)
	x := reopen(t, f)

	rows, err := x.GetRows(WeeklySheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Liters to apply", rows[0][7])
	assert.Equal(t, "2024-10-28", rows[2][0])
	assert.Equal(t, "135.28", rows[1][7])

	typ, err := x.GetCellType(WeeklySheet, "H2")
	require.NoError(t, err)
	assert.NotEqual(t, excelize.CellTypeSharedString, typ, "liters are numeric cells")
}

func TestEmptyWorkbookKeepsHeader(t *testing.T) {
	f, err := WeeklyWorkbook(nil)
	require.NoError(t, err)
	rows, err := reopen(t, f).GetRows(WeeklySheet)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestFileName(t *testing.T) {
	v := 2016
	assert.Equal(t, "plan_monthly_2016.xlsx", FileName("monthly", &v))
	assert.Equal(t, "plan_weekly_all.xlsx", FileName("weekly", nil))
}

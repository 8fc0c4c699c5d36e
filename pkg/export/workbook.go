// Package export renders plan tables as xlsx workbooks.
package export

import (
	"bytes"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"fertiplan/entities"
)

const (
	MonthlySheet = "Monthly Plan"
	WeeklySheet  = "Weekly Plan"

	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var (
	monthlyHeader = []any{"Sector", "Vintage", "Period", "Nutrient", "Product",
		"Dose (kg/ha)", "Total (kg)", "Dose (L/ha)", "Total (L)", "Cost per ha", "Total cost"}
	weeklyHeader = []any{"Estimated date", "Sector", "Vintage", "Period", "Nutrient",
		"Product", "Valve", "Liters to apply"}
)

// FileName is plan_<kind>_<vintage|all>.xlsx.
func FileName(kind string, vintage *int) string {
	v := "all"
	if vintage != nil {
		v = fmt.Sprint(*vintage)
	}
	return fmt.Sprintf("plan_%s_%s.xlsx", kind, v)
}

func round2(v float64) float64 { return decimal.NewFromFloat(v).Round(2).InexactFloat64() }

func MonthlyWorkbook(rows []entities.MonthlyPlanRow) (*excelize.File, error) {
	f, err := newBook(MonthlySheet, monthlyHeader)
	if err != nil {
		return nil, err
	}
	for i, r := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		vals := []any{r.Sector, r.Vintage, r.Period, r.Nutrient, r.Product,
			round2(r.DoseKgHa), round2(r.TotalKg), round2(r.DoseLtHa), round2(r.TotalLt),
			round2(r.CostPerHa), round2(r.TotalCost)}
		if err := f.SetSheetRow(MonthlySheet, cell, &vals); err != nil {
			f.Close()
			return nil, fmt.Errorf("write row %d: %w", i+2, err)
		}
	}
	return f, nil
}

func WeeklyWorkbook(events []entities.ScheduleEvent) (*excelize.File, error) {
	f, err := newBook(WeeklySheet, weeklyHeader)
	if err != nil {
		return nil, err
	}
	for i, e := range events {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		vals := []any{e.Date.Format("2006-01-02"), e.Sector, e.Vintage, e.Period, e.Nutrient,
			e.Product, e.Valve, round2(e.PlannedLiters)}
		if err := f.SetSheetRow(WeeklySheet, cell, &vals); err != nil {
			f.Close()
			return nil, fmt.Errorf("write row %d: %w", i+2, err)
		}
	}
	return f, nil
}

// Bytes serializes and closes the workbook.
func Bytes(f *excelize.File) ([]byte, error) {
	defer f.Close()
	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func newBook(sheet string, header []any) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		f.Close()
		return nil, err
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		f.Close()
		return nil, err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		f.Close()
		return nil, err
	}
	last, _ := excelize.CoordinatesToCellName(len(header), 1)
	if err := f.SetCellStyle(sheet, "A1", last, bold); err != nil {
		f.Close()
		return nil, err
	}
	lastCol, _ := excelize.ColumnNumberToName(len(header))
	if err := f.SetColWidth(sheet, "A", lastCol, 16); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}

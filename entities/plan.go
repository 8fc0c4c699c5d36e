package entities

import "time"

const (
	RunMonthly   = "monthly"
	RunWeekly    = "weekly"
	RunReconcile = "reconcile"

	OutcomeOK    = "ok"
	OutcomeEmpty = "empty"
	OutcomeError = "error"
)

// MonthlyPlanRow is the cheapest product chosen for one sector/vintage/period/nutrient.
type MonthlyPlanRow struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	RunID     string  `gorm:"index" json:"run_id"`
	Sector    string  `json:"sector"`
	Vintage   int     `gorm:"index" json:"vintage"`
	Period    string  `json:"period"`
	Nutrient  string  `json:"nutrient"`
	Product   string  `json:"product"`
	DoseKgHa  float64 `json:"dose_kg_ha"`
	TotalKg   float64 `json:"total_kg"`
	DoseLtHa  float64 `json:"dose_lt_ha"`
	TotalLt   float64 `json:"total_lt"`
	CostPerHa float64 `json:"cost_per_ha"`
	TotalCost float64 `json:"total_cost"`
}

// PlanRun records one generation or reconciliation action.
type PlanRun struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	Kind      string    `gorm:"index" json:"kind"`    // monthly|weekly|reconcile
	Outcome   string    `json:"outcome"`              // ok|empty|error
	Message   string    `json:"message,omitempty"`
	Rows      int       `json:"rows"`
	CreatedAt time.Time `json:"created_at"`
}

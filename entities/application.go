package entities

import "time"

// Application is a schedule event overlaid with what was actually applied.
type Application struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	EventID       uint       `gorm:"index" json:"event_id"`
	Sector        string     `gorm:"index" json:"sector"`
	Vintage       int        `gorm:"index" json:"vintage"`
	Period        string     `json:"period"`
	Product       string     `json:"product"`
	Nutrient      string     `json:"nutrient"`
	Valve         string     `json:"valve"`
	Date          time.Time  `gorm:"index" json:"date"`
	PlannedLiters *float64   `json:"planned_liters"`
	ActualLiters  *float64   `json:"actual_liters"`
	ActualDate    *time.Time `json:"actual_date"`
	Notes         string     `json:"notes"`

	UpdatedAt time.Time `json:"-"`
}

// Adjustment is one forward carry of a plan/actual deviation.
type Adjustment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	RunID     string    `gorm:"index" json:"run_id"`
	SourceID  uint      `json:"source_id"`
	TargetID  uint      `json:"target_id"`
	Sector    string    `json:"sector"`
	Valve     string    `json:"valve"`
	Delta     float64   `json:"delta"`
	CreatedAt time.Time `json:"created_at"`
}

package entities

import "time"

// ScheduleEvent is one dated application of a product on one valve.
type ScheduleEvent struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	RunID         string    `gorm:"index" json:"run_id"`
	Sector        string    `gorm:"index" json:"sector"`
	Vintage       int       `gorm:"index" json:"vintage"`
	Period        string    `json:"period"`
	Product       string    `json:"product"`
	Nutrient      string    `json:"nutrient"`
	Valve         string    `json:"valve"`
	Date          time.Time `gorm:"index" json:"date"`
	PlannedLiters float64   `json:"planned_liters"`
}

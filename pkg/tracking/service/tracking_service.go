package service

import (
	"fertiplan/entities"
	"fertiplan/pkg/tabular"
)

type TrackingService interface {
	// Load returns the tracking table, copying the weekly schedule into it on first use.
	Load() ([]entities.Application, error)
	// SaveAndAdjust stores the edited table after carrying deviations forward.
	SaveAndAdjust(rows []ApplicationInput) (*SaveResult, error)
	// RecordActual updates one record without adjusting later ones.
	RecordActual(id uint, patch ApplicationPatch) (*entities.Application, error)
}

// ApplicationInput is one edited row. Volumes and dates are accepted in any shape;
// anything unparseable is stored blank.
type ApplicationInput struct {
	ID            uint               `json:"id"`
	EventID       uint               `json:"event_id"`
	Sector        string             `json:"sector"`
	Vintage       int                `json:"vintage"`
	Period        string             `json:"period"`
	Product       string             `json:"product"`
	Nutrient      string             `json:"nutrient"`
	Valve         string             `json:"valve"`
	Date          tabular.LooseDate  `json:"date"`
	PlannedLiters tabular.LooseFloat `json:"planned_liters"`
	ActualLiters  tabular.LooseFloat `json:"actual_liters"`
	ActualDate    tabular.LooseDate  `json:"actual_date"`
	Notes         string             `json:"notes"`
}

type ApplicationPatch struct {
	ActualLiters tabular.LooseFloat `json:"actual_liters"`
	ActualDate   tabular.LooseDate  `json:"actual_date"`
	Notes        *string            `json:"notes"`
}

type SaveResult struct {
	RunID        string                 `json:"run_id"`
	Applications []entities.Application `json:"applications"`
	Adjustments  []entities.Adjustment  `json:"adjustments"`
}

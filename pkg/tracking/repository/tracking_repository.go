package repository

import "fertiplan/entities"

type TrackingRepository interface {
	Count() (int64, error)
	// List returns the table ordered by estimated date, then valve.
	List() ([]entities.Application, error)
	FindByID(id uint) (*entities.Application, error)
	Update(a *entities.Application) error
	MaxID() (uint, error)
	// ReplaceAll swaps the whole table and records the adjustments in one transaction.
	ReplaceAll(rows []entities.Application, adjustments []entities.Adjustment) error
	ListAdjustments(runID string) ([]entities.Adjustment, error)
}

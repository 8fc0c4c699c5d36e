package repository

import "fertiplan/entities"

// PlanRepository keeps only the latest monthly plan and weekly schedule; every
// generation replaces the previous rows.
type PlanRepository interface {
	CreateRun(r *entities.PlanRun) error
	LatestRun(kind string) (*entities.PlanRun, error)
	ReplaceMonthly(runID string, rows []entities.MonthlyPlanRow) error
	ListMonthly(vintage *int) ([]entities.MonthlyPlanRow, error)
	ReplaceWeekly(runID string, events []entities.ScheduleEvent) error
	ListWeekly(vintage *int) ([]entities.ScheduleEvent, error)
}

package service

import (
	"fertiplan/entities"
	"fertiplan/pkg/plan/types"
)

// MonthlyResult carries either the generated rows or a diagnostic, never both.
type MonthlyResult struct {
	Run        *entities.PlanRun         `json:"run"`
	Rows       []entities.MonthlyPlanRow `json:"rows,omitempty"`
	Diagnostic *types.Diagnostic         `json:"diagnostic,omitempty"`
}

type WeeklyResult struct {
	Run        *entities.PlanRun        `json:"run"`
	Events     []entities.ScheduleEvent `json:"events,omitempty"`
	Diagnostic *types.Diagnostic        `json:"diagnostic,omitempty"`
}

type PlanService interface {
	GenerateMonthly() (*MonthlyResult, error)
	GenerateWeekly() (*WeeklyResult, error)
	ListMonthly(vintage *int) ([]entities.MonthlyPlanRow, error)
	ListWeekly(vintage *int) ([]entities.ScheduleEvent, error)
	// LatestRun is nil when nothing of that kind has run yet.
	LatestRun(kind string) (*entities.PlanRun, error)
}

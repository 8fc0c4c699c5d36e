package serviceImp

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"fertiplan/entities"
	"fertiplan/pkg/catalog"
	"fertiplan/pkg/metrics"
	planrepo "fertiplan/pkg/plan/repository"
	"fertiplan/pkg/plan/service"
	"fertiplan/pkg/plan/types"
	"fertiplan/pkg/planner"
)

type configSource interface {
	Get() (*catalog.Snapshot, error)
}

type PlanSvc struct {
	config  configSource
	repo    planrepo.PlanRepository
	metrics *metrics.Metrics
	now     func() time.Time
}

var _ service.PlanService = (*PlanSvc)(nil)

func NewPlanService(cfg configSource, r planrepo.PlanRepository, m *metrics.Metrics) *PlanSvc {
	return &PlanSvc{config: cfg, repo: r, metrics: m, now: time.Now}
}

func (s *PlanSvc) GenerateMonthly() (*service.MonthlyResult, error) {
	started := time.Now()
	snap, err := s.config.Get()
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}

	rows, genErr := planner.GenerateMonthlyPlan(planner.MonthlyInput{
		Requirements:  snap.Requirements,
		Products:      snap.Products,
		EarlyCurve:    snap.EarlyCurve,
		LateCurve:     snap.LateCurve,
		EarlyVintages: snap.EarlyVintages,
	})
	run := s.newRun(entities.RunMonthly, len(rows), genErr)

	// a diagnostic replaces the stored plan so the weekly step sees no valid plan
	if err := s.repo.ReplaceMonthly(run.ID, rows); err != nil {
		return nil, err
	}
	if err := s.repo.CreateRun(run); err != nil {
		return nil, fmt.Errorf("record run: %w", err)
	}
	s.metrics.ObserveRun(run.Kind, run.Outcome, run.Rows, started)
	log.Printf("[plan] monthly run %s: %s (%d rows)", run.ID, run.Outcome, run.Rows)

	res := &service.MonthlyResult{Run: run, Diagnostic: types.AsDiagnostic(genErr)}
	if genErr == nil {
		if res.Rows, err = s.repo.ListMonthly(nil); err != nil {
			return nil, err
		}
	}
	return res, nil
}

func (s *PlanSvc) GenerateWeekly() (*service.WeeklyResult, error) {
	started := time.Now()
	snap, err := s.config.Get()
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}
	monthly, err := s.repo.ListMonthly(nil)
	if err != nil {
		return nil, fmt.Errorf("load monthly plan: %w", err)
	}

	events, genErr := planner.GenerateWeeklySchedule(planner.WeeklyInput{
		Monthly:   monthly,
		Products:  snap.Products,
		Valves:    snap.Valves,
		Limits:    snap.Limits,
		StartDate: snap.StartDate,
	})
	run := s.newRun(entities.RunWeekly, len(events), genErr)

	// an empty result clears the stored schedule; a failed one keeps it
	if genErr == nil || types.IsEmpty(genErr) {
		if err := s.repo.ReplaceWeekly(run.ID, events); err != nil {
			return nil, err
		}
	}
	if err := s.repo.CreateRun(run); err != nil {
		return nil, fmt.Errorf("record run: %w", err)
	}
	s.metrics.ObserveRun(run.Kind, run.Outcome, run.Rows, started)
	log.Printf("[plan] weekly run %s: %s (%d events)", run.ID, run.Outcome, run.Rows)

	res := &service.WeeklyResult{Run: run, Diagnostic: types.AsDiagnostic(genErr)}
	if genErr == nil {
		if res.Events, err = s.repo.ListWeekly(nil); err != nil {
			return nil, err
		}
	}
	return res, nil
}

func (s *PlanSvc) ListMonthly(vintage *int) ([]entities.MonthlyPlanRow, error) {
	return s.repo.ListMonthly(vintage)
}

func (s *PlanSvc) ListWeekly(vintage *int) ([]entities.ScheduleEvent, error) {
	return s.repo.ListWeekly(vintage)
}

func (s *PlanSvc) LatestRun(kind string) (*entities.PlanRun, error) {
	run, err := s.repo.LatestRun(kind)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return run, err
}

func (s *PlanSvc) newRun(kind string, rows int, genErr error) *entities.PlanRun {
	run := &entities.PlanRun{
		ID:        uuid.NewString(),
		Kind:      kind,
		Outcome:   entities.OutcomeOK,
		Rows:      rows,
		CreatedAt: s.now(),
	}
	if d := types.AsDiagnostic(genErr); d != nil {
		run.Outcome = string(d.Kind)
		run.Message = d.Message
		run.Rows = 0
	}
	return run
}

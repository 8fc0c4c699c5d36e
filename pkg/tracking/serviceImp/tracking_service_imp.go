package serviceImp

import (
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"fertiplan/entities"
	"fertiplan/pkg/metrics"
	"fertiplan/pkg/planner"
	"fertiplan/pkg/tracking/repository"
	"fertiplan/pkg/tracking/service"
)

type scheduleSource interface {
	ListWeekly(vintage *int) ([]entities.ScheduleEvent, error)
}

type runRecorder interface {
	CreateRun(r *entities.PlanRun) error
}

type TrackingSvc struct {
	repo     repository.TrackingRepository
	schedule scheduleSource
	runs     runRecorder
	metrics  *metrics.Metrics
	now      func() time.Time
}

var _ service.TrackingService = (*TrackingSvc)(nil)

func NewTrackingService(r repository.TrackingRepository, schedule scheduleSource, runs runRecorder, m *metrics.Metrics) *TrackingSvc {
	return &TrackingSvc{repo: r, schedule: schedule, runs: runs, metrics: m, now: time.Now}
}

func (s *TrackingSvc) WithClock(now func() time.Time) *TrackingSvc {
	s.now = now
	return s
}

func (s *TrackingSvc) Load() ([]entities.Application, error) {
	n, err := s.repo.Count()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		events, err := s.schedule.ListWeekly(nil)
		if err != nil {
			return nil, fmt.Errorf("load weekly schedule: %w", err)
		}
		if len(events) > 0 {
			rows := make([]entities.Application, 0, len(events))
			for i, ev := range events {
				planned := ev.PlannedLiters
				rows = append(rows, entities.Application{
					ID:            uint(i + 1),
					EventID:       ev.ID,
					Sector:        ev.Sector,
					Vintage:       ev.Vintage,
					Period:        ev.Period,
					Product:       ev.Product,
					Nutrient:      ev.Nutrient,
					Valve:         ev.Valve,
					Date:          ev.Date,
					PlannedLiters: &planned,
				})
			}
			if err := s.repo.ReplaceAll(rows, nil); err != nil {
				return nil, err
			}
			log.Printf("[tracking] seeded %d records from the weekly schedule", len(rows))
		}
	}
	return s.repo.List()
}

func (s *TrackingSvc) SaveAndAdjust(inputs []service.ApplicationInput) (*service.SaveResult, error) {
	started := time.Now()
	next, err := s.repo.MaxID()
	if err != nil {
		return nil, err
	}

	// new and repeated rows get ids above every id already stored or submitted
	for _, in := range inputs {
		if in.ID > next {
			next = in.ID
		}
	}
	rows := make([]entities.Application, 0, len(inputs))
	seen := make(map[uint]bool, len(inputs))
	for _, in := range inputs {
		a := fromInput(in)
		if a.ID == 0 || seen[a.ID] {
			next++
			a.ID = next
		}
		seen[a.ID] = true
		rows = append(rows, a)
	}

	adjusted, adjustments := planner.Reconcile(rows)
	runID := uuid.NewString()
	for i := range adjustments {
		adjustments[i].RunID = runID
	}
	if err := s.repo.ReplaceAll(adjusted, adjustments); err != nil {
		return nil, err
	}

	run := &entities.PlanRun{
		ID:        runID,
		Kind:      entities.RunReconcile,
		Outcome:   entities.OutcomeOK,
		Rows:      len(adjustments),
		CreatedAt: s.now(),
	}
	if err := s.runs.CreateRun(run); err != nil {
		return nil, fmt.Errorf("record run: %w", err)
	}
	s.metrics.ObserveRun(run.Kind, run.Outcome, run.Rows, started)
	s.metrics.AddAdjustments(len(adjustments))
	log.Printf("[tracking] saved %d records, %d adjustments (run %s)", len(adjusted), len(adjustments), runID)

	stored, err := s.repo.List()
	if err != nil {
		return nil, err
	}
	if adjustments == nil {
		adjustments = []entities.Adjustment{}
	}
	return &service.SaveResult{RunID: runID, Applications: stored, Adjustments: adjustments}, nil
}

// RecordActual applies only the fields present in the patch.
func (s *TrackingSvc) RecordActual(id uint, patch service.ApplicationPatch) (*entities.Application, error) {
	a, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if patch.ActualLiters.Set {
		a.ActualLiters = patch.ActualLiters.Value
	}
	if patch.ActualDate.Set {
		a.ActualDate = patch.ActualDate.Value
	}
	if patch.Notes != nil {
		a.Notes = *patch.Notes
	}
	if err := s.repo.Update(a); err != nil {
		return nil, err
	}
	if a.ActualLiters != nil {
		s.metrics.ActualRecorded()
	}
	return a, nil
}

func fromInput(in service.ApplicationInput) entities.Application {
	a := entities.Application{
		ID:            in.ID,
		EventID:       in.EventID,
		Sector:        in.Sector,
		Vintage:       in.Vintage,
		Period:        in.Period,
		Product:       in.Product,
		Nutrient:      in.Nutrient,
		Valve:         in.Valve,
		PlannedLiters: in.PlannedLiters.Value,
		ActualLiters:  in.ActualLiters.Value,
		ActualDate:    in.ActualDate.Value,
		Notes:         in.Notes,
	}
	if in.Date.Value != nil {
		a.Date = *in.Date.Value
	}
	return a
}

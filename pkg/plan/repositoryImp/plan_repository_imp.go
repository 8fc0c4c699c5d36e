package repositoryImp

import (
	"fmt"

	"gorm.io/gorm"

	"fertiplan/entities"
	"fertiplan/pkg/plan/repository"
)

type planRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.PlanRepository { return &planRepo{db} }

func (r *planRepo) CreateRun(p *entities.PlanRun) error { return r.db.Create(p).Error }

func (r *planRepo) LatestRun(kind string) (*entities.PlanRun, error) {
	var p entities.PlanRun
	if err := r.db.Where("kind = ?", kind).Order("created_at DESC").First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *planRepo) ReplaceMonthly(runID string, rows []entities.MonthlyPlanRow) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&entities.MonthlyPlanRow{}).Error; err != nil {
			return fmt.Errorf("clear monthly plan: %w", err)
		}
		if len(rows) == 0 {
			return nil
		}
		out := make([]entities.MonthlyPlanRow, len(rows))
		for i, row := range rows {
			row.ID, row.RunID = 0, runID
			out[i] = row
		}
		if err := tx.CreateInBatches(&out, 200).Error; err != nil {
			return fmt.Errorf("save monthly plan: %w", err)
		}
		return nil
	})
}

func (r *planRepo) ListMonthly(vintage *int) ([]entities.MonthlyPlanRow, error) {
	q := r.db.Model(&entities.MonthlyPlanRow{})
	if vintage != nil {
		q = q.Where("vintage = ?", *vintage)
	}
	var out []entities.MonthlyPlanRow
	if err := q.Order("id ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *planRepo) ReplaceWeekly(runID string, events []entities.ScheduleEvent) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&entities.ScheduleEvent{}).Error; err != nil {
			return fmt.Errorf("clear weekly schedule: %w", err)
		}
		if len(events) == 0 {
			return nil
		}
		out := make([]entities.ScheduleEvent, len(events))
		for i, ev := range events {
			ev.ID, ev.RunID = 0, runID
			out[i] = ev
		}
		if err := tx.CreateInBatches(&out, 200).Error; err != nil {
			return fmt.Errorf("save weekly schedule: %w", err)
		}
		return nil
	})
}

func (r *planRepo) ListWeekly(vintage *int) ([]entities.ScheduleEvent, error) {
	q := r.db.Model(&entities.ScheduleEvent{})
	if vintage != nil {
		q = q.Where("vintage = ?", *vintage)
	}
	var out []entities.ScheduleEvent
	if err := q.Order("date ASC, valve ASC, id ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

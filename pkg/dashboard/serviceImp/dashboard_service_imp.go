package serviceImp

import (
	"fmt"
	"time"

	"fertiplan/entities"
	"fertiplan/pkg/catalog"
	"fertiplan/pkg/dashboard"
	"fertiplan/pkg/dashboard/service"
)

type applicationSource interface {
	Load() ([]entities.Application, error)
}

type scheduleSource interface {
	ListWeekly(vintage *int) ([]entities.ScheduleEvent, error)
}

type configSource interface {
	Get() (*catalog.Snapshot, error)
}

type DashboardSvc struct {
	apps     applicationSource
	schedule scheduleSource
	config   configSource
	now      func() time.Time
}

var _ service.DashboardService = (*DashboardSvc)(nil)

func NewDashboardService(apps applicationSource, schedule scheduleSource, cfg configSource) *DashboardSvc {
	return &DashboardSvc{apps: apps, schedule: schedule, config: cfg, now: time.Now}
}

func (s *DashboardSvc) WithClock(now func() time.Time) *DashboardSvc {
	s.now = now
	return s
}

func (s *DashboardSvc) Summarize(f dashboard.Filter) (*dashboard.Summary, error) {
	apps, err := s.apps.Load()
	if err != nil {
		return nil, fmt.Errorf("load applications: %w", err)
	}
	events, err := s.schedule.ListWeekly(nil)
	if err != nil {
		return nil, fmt.Errorf("load weekly schedule: %w", err)
	}
	snap, err := s.config.Get()
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}
	sum := dashboard.Compute(dashboard.Input{
		Applications: apps,
		Events:       events,
		Products:     snap.Products,
		Now:          s.now(),
	}, f)
	return &sum, nil
}

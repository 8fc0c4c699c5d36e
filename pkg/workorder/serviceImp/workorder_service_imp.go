package serviceImp

import (
	"time"

	"fertiplan/entities"
	"fertiplan/pkg/workorder"
	"fertiplan/pkg/workorder/service"
)

type applicationSource interface {
	Load() ([]entities.Application, error)
}

type WorkOrderSvc struct {
	apps applicationSource
	now  func() time.Time
}

var _ service.WorkOrderService = (*WorkOrderSvc)(nil)

func NewWorkOrderService(apps applicationSource) *WorkOrderSvc {
	return &WorkOrderSvc{apps: apps, now: time.Now}
}

func (s *WorkOrderSvc) WithClock(now func() time.Time) *WorkOrderSvc {
	s.now = now
	return s
}

func (s *WorkOrderSvc) Build(f workorder.Filter) (*workorder.Order, error) {
	rows, err := s.apps.Load()
	if err != nil {
		return nil, err
	}
	lines := workorder.Select(rows, f)
	if len(lines) == 0 {
		return nil, service.ErrNothingDue
	}
	return &workorder.Order{Issued: s.now(), Filter: f, Lines: lines}, nil
}

package service

import (
	"errors"

	"fertiplan/pkg/workorder"
)

// ErrNothingDue is returned when the filter selects no application.
var ErrNothingDue = errors.New("no applications match the selection")

type WorkOrderService interface {
	Build(f workorder.Filter) (*workorder.Order, error)
}

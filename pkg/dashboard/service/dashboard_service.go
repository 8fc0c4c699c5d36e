package service

import "fertiplan/pkg/dashboard"

type DashboardService interface {
	Summarize(f dashboard.Filter) (*dashboard.Summary, error)
}

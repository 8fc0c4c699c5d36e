package router

import (
	"github.com/labstack/echo/v4"

	"fertiplan/pkg/middleware"

	catalogCtrl "fertiplan/pkg/catalog/controllerImp"
	dashboardCtrl "fertiplan/pkg/dashboard/controllerImp"
	healthCtrl "fertiplan/pkg/health/controllerImp"
	planCtrl "fertiplan/pkg/plan/controllerImp"
	trackingCtrl "fertiplan/pkg/tracking/controllerImp"
	workorderCtrl "fertiplan/pkg/workorder/controllerImp"
)

func New(
	e *echo.Echo,
	apiKey string,
	health *healthCtrl.HealthCtrl,
	metrics echo.HandlerFunc,
	cfg *catalogCtrl.CatalogCtrl,
	plans *planCtrl.PlanCtrl,
	apps *trackingCtrl.TrackingCtrl,
	orders *workorderCtrl.WorkOrderCtrl,
	dash *dashboardCtrl.DashboardCtrl,
) *echo.Echo {
	e.Use(middleware.WriteGuard(apiKey))

	e.GET("/health", health.Health)
	if metrics != nil {
		e.GET("/metrics", metrics)
	}

	e.GET("/config", cfg.Get)
	e.PUT("/config", cfg.Replace)
	e.POST("/config/reset", cfg.Reset)

	p := e.Group("/plans")
	p.POST("/monthly", plans.GenerateMonthly)
	p.GET("/monthly", plans.ListMonthly)
	p.GET("/monthly/export", plans.ExportMonthly)
	p.POST("/weekly", plans.GenerateWeekly)
	p.GET("/weekly", plans.ListWeekly)
	p.GET("/weekly/export", plans.ExportWeekly)

	e.GET("/applications", apps.List)
	e.PUT("/applications", apps.Save)
	e.PATCH("/applications/:id", apps.Patch)

	e.GET("/work-orders", orders.Get)
	e.GET("/dashboard", dash.Get)
	return e
}

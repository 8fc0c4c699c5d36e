package main

import (
	"log"
	"time"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"fertiplan/config"
	"fertiplan/database"
	"fertiplan/pkg/metrics"
	"fertiplan/router"

	// Configuration
	catalogCtrlImp "fertiplan/pkg/catalog/controllerImp"
	catalogRepoImp "fertiplan/pkg/catalog/repositoryImp"
	catalogSvcImp "fertiplan/pkg/catalog/serviceImp"

	// Plans
	planCtrlImp "fertiplan/pkg/plan/controllerImp"
	planRepoImp "fertiplan/pkg/plan/repositoryImp"
	planSvcImp "fertiplan/pkg/plan/serviceImp"

	// Tracking
	trackingCtrlImp "fertiplan/pkg/tracking/controllerImp"
	trackingRepoImp "fertiplan/pkg/tracking/repositoryImp"
	trackingSvcImp "fertiplan/pkg/tracking/serviceImp"

	// Reports
	dashboardCtrlImp "fertiplan/pkg/dashboard/controllerImp"
	dashboardSvcImp "fertiplan/pkg/dashboard/serviceImp"
	workorderCtrlImp "fertiplan/pkg/workorder/controllerImp"
	workorderSvcImp "fertiplan/pkg/workorder/serviceImp"

	healthCtrlImp "fertiplan/pkg/health/controllerImp"
)

func main() {
	// 1) Config
	cfg := config.Load()
	if loc, err := time.LoadLocation(cfg.Timezone); err != nil {
		log.Printf("[cfg] unknown timezone %q, keeping %s: %v", cfg.Timezone, time.Local, err)
	} else {
		time.Local = loc
	}

	// 2) DB (sqlite) + automigrate
	db := database.OpenSQLite(cfg.DBPath)

	var m *metrics.Metrics
	var metricsHandler echo.HandlerFunc
	if cfg.MetricsEnabled {
		m = metrics.New()
		metricsHandler = m.Handler()
	}

	// 3) Repos/Services
	catalogSvc := catalogSvcImp.NewCatalogService(catalogRepoImp.New(db), cfg.SeedDir)
	planRepo := planRepoImp.New(db)
	planSvc := planSvcImp.NewPlanService(catalogSvc, planRepo, m)
	trackingSvc := trackingSvcImp.NewTrackingService(trackingRepoImp.New(db), planSvc, planRepo, m)
	orderSvc := workorderSvcImp.NewWorkOrderService(trackingSvc)
	dashSvc := dashboardSvcImp.NewDashboardService(trackingSvc, planSvc, catalogSvc)

	// 4) Echo
	e := echo.New()
	e.HideBanner = true
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.Logger())

	r := router.New(
		e,
		cfg.APIKey,
		healthCtrlImp.NewHealthCtrl(db, planSvc),
		metricsHandler,
		catalogCtrlImp.NewCatalogCtrl(catalogSvc),
		planCtrlImp.NewPlanCtrl(planSvc),
		trackingCtrlImp.NewTrackingCtrl(trackingSvc),
		workorderCtrlImp.NewWorkOrderCtrl(orderSvc),
		dashboardCtrlImp.NewDashboardCtrl(dashSvc),
	)

	// 5) Start
	log.Printf("listening on :%s", cfg.Port)
	if err := r.Start(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}

package controllerImp

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"fertiplan/entities"
)

var appStart = time.Now()

type runLookup interface {
	LatestRun(kind string) (*entities.PlanRun, error)
}

type HealthCtrl struct {
	db   *gorm.DB
	runs runLookup
}

func NewHealthCtrl(db *gorm.DB, runs runLookup) *HealthCtrl { return &HealthCtrl{db: db, runs: runs} }

type check struct {
	OK  bool   `json:"ok"`
	Err string `json:"err,omitempty"`
}

// Health pings the database and reports the last outcome of each run kind.
func (h *HealthCtrl) Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 800*time.Millisecond)
	defer cancel()

	db := check{OK: true}
	switch {
	case h.db == nil:
		db = check{Err: "gorm db is nil"}
	default:
		sqlDB, err := h.db.DB()
		if err != nil {
			db = check{Err: "db.DB(): " + err.Error()}
		} else if err := sqlDB.PingContext(ctx); err != nil {
			db = check{Err: "ping: " + err.Error()}
		}
	}

	last := map[string]any{}
	if db.OK && h.runs != nil {
		for _, kind := range []string{entities.RunMonthly, entities.RunWeekly, entities.RunReconcile} {
			run, err := h.runs.LatestRun(kind)
			if err != nil || run == nil {
				last[kind] = nil
				continue
			}
			last[kind] = echo.Map{"outcome": run.Outcome, "at": run.CreatedAt.Format(time.RFC3339)}
		}
	}

	status := http.StatusOK
	if !db.OK {
		status = http.StatusServiceUnavailable
	}
	return c.JSON(status, echo.Map{
		"status":     echo.Map{"ok": db.OK},
		"uptime_sec": int(time.Since(appStart).Seconds()),
		"checks":     echo.Map{"database": db},
		"last_runs":  last,
		"time":       time.Now().Format(time.RFC3339),
	})
}

package controllerImp

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/xuri/excelize/v2"

	"fertiplan/entities"
	"fertiplan/pkg/export"
	"fertiplan/pkg/plan/service"
	"fertiplan/pkg/plan/types"
)

type PlanCtrl struct{ svc service.PlanService }

func NewPlanCtrl(svc service.PlanService) *PlanCtrl { return &PlanCtrl{svc: svc} }

func (h *PlanCtrl) GenerateMonthly(c echo.Context) error {
	res, err := h.svc.GenerateMonthly()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	if res.Diagnostic != nil {
		return diagnostic(c, res.Run, res.Diagnostic)
	}
	return c.JSON(http.StatusCreated, res)
}

func (h *PlanCtrl) GenerateWeekly(c echo.Context) error {
	res, err := h.svc.GenerateWeekly()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	if res.Diagnostic != nil {
		return diagnostic(c, res.Run, res.Diagnostic)
	}
	return c.JSON(http.StatusCreated, res)
}

func (h *PlanCtrl) ListMonthly(c echo.Context) error {
	vintage, err := vintageParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	rows, err := h.svc.ListMonthly(vintage)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	run, err := h.svc.LatestRun(entities.RunMonthly)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	if rows == nil {
		rows = []entities.MonthlyPlanRow{}
	}
	return c.JSON(http.StatusOK, echo.Map{"run": run, "rows": rows})
}

func (h *PlanCtrl) ListWeekly(c echo.Context) error {
	vintage, err := vintageParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	events, err := h.svc.ListWeekly(vintage)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	run, err := h.svc.LatestRun(entities.RunWeekly)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	if events == nil {
		events = []entities.ScheduleEvent{}
	}
	return c.JSON(http.StatusOK, echo.Map{"run": run, "events": events})
}

func (h *PlanCtrl) ExportMonthly(c echo.Context) error {
	vintage, err := vintageParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	rows, err := h.svc.ListMonthly(vintage)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	f, err := export.MonthlyWorkbook(rows)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return attachment(c, f, export.FileName(entities.RunMonthly, vintage))
}

func (h *PlanCtrl) ExportWeekly(c echo.Context) error {
	vintage, err := vintageParam(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	events, err := h.svc.ListWeekly(vintage)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	f, err := export.WeeklyWorkbook(events)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return attachment(c, f, export.FileName(entities.RunWeekly, vintage))
}

func attachment(c echo.Context, f *excelize.File, name string) error {
	b, err := export.Bytes(f)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", name))
	return c.Blob(http.StatusOK, export.ContentType, b)
}

// diagnostic renders an empty outcome as 200 and a failure as 422.
func diagnostic(c echo.Context, run *entities.PlanRun, d *types.Diagnostic) error {
	status := http.StatusOK
	if d.Kind == types.DiagnosticError {
		status = http.StatusUnprocessableEntity
	}
	return c.JSON(status, echo.Map{"run": run, "diagnostic": d})
}

// vintageParam reads ?vintage=; blank or "all" means no filter.
func vintageParam(c echo.Context) (*int, error) {
	v := strings.TrimSpace(c.QueryParam("vintage"))
	if v == "" || strings.EqualFold(v, "all") {
		return nil, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil, fmt.Errorf("invalid vintage %q", v)
	}
	return &n, nil
}

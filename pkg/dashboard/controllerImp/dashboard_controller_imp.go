package controllerImp

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"fertiplan/pkg/dashboard"
	"fertiplan/pkg/dashboard/service"
)

type DashboardCtrl struct{ svc service.DashboardService }

func NewDashboardCtrl(svc service.DashboardService) *DashboardCtrl { return &DashboardCtrl{svc: svc} }

func (h *DashboardCtrl) Get(c echo.Context) error {
	f, err := filterParams(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	sum, err := h.svc.Summarize(f)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, sum)
}

func filterParams(c echo.Context) (dashboard.Filter, error) {
	var f dashboard.Filter
	if s := strings.TrimSpace(c.QueryParam("sector")); s != "" && !strings.EqualFold(s, "all") {
		f.Sector = s
	}
	if v := strings.TrimSpace(c.QueryParam("vintage")); v != "" && !strings.EqualFold(v, "all") {
		n, err := strconv.Atoi(v)
		if err != nil {
			return f, fmt.Errorf("invalid vintage %q", v)
		}
		f.Vintage = &n
	}
	if m := strings.TrimSpace(c.QueryParam("month")); m != "" {
		if _, err := time.Parse("2006-01", m); err != nil {
			return f, fmt.Errorf("invalid month %q, want YYYY-MM", m)
		}
		f.Month = m
	}
	return f, nil
}

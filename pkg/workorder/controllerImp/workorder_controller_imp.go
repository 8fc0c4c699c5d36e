package controllerImp

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"fertiplan/pkg/tabular"
	"fertiplan/pkg/workorder"
	"fertiplan/pkg/workorder/service"
)

type WorkOrderCtrl struct{ svc service.WorkOrderService }

func NewWorkOrderCtrl(svc service.WorkOrderService) *WorkOrderCtrl { return &WorkOrderCtrl{svc: svc} }

// Get serves GET /work-orders?date=&sector=&vintage=&format=pdf|html.
func (h *WorkOrderCtrl) Get(c echo.Context) error {
	f, err := filterParams(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	format := strings.ToLower(strings.TrimSpace(c.QueryParam("format")))
	if format == "" {
		format = "pdf"
	}
	if format != "pdf" && format != "html" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "format must be pdf or html"})
	}

	order, err := h.svc.Build(f)
	if errors.Is(err, service.ErrNothingDue) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": err.Error()})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	var buf bytes.Buffer
	if format == "html" {
		if err := workorder.WriteHTML(&buf, *order); err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
		}
		return c.HTMLBlob(http.StatusOK, buf.Bytes())
	}
	if err := workorder.WritePDF(&buf, *order); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	name := fmt.Sprintf("work_order_%s.pdf", order.Issued.Format("2006-01-02"))
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", name))
	return c.Blob(http.StatusOK, "application/pdf", buf.Bytes())
}

func filterParams(c echo.Context) (workorder.Filter, error) {
	var f workorder.Filter
	if d := strings.TrimSpace(c.QueryParam("date")); d != "" {
		if f.Date = tabular.ParseOptionalDate(d); f.Date == nil {
			return f, fmt.Errorf("invalid date %q", d)
		}
	}
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
	return f, nil
}

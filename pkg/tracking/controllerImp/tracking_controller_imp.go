package controllerImp

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"fertiplan/entities"
	"fertiplan/pkg/tracking/service"
)

type TrackingCtrl struct{ svc service.TrackingService }

func NewTrackingCtrl(svc service.TrackingService) *TrackingCtrl { return &TrackingCtrl{svc: svc} }

func (h *TrackingCtrl) List(c echo.Context) error {
	rows, err := h.svc.Load()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	if rows == nil {
		rows = []entities.Application{}
	}
	return c.JSON(http.StatusOK, rows)
}

// Save replaces the table with the edited rows and carries deviations forward.
func (h *TrackingCtrl) Save(c echo.Context) error {
	var in []service.ApplicationInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid json"})
	}
	res, err := h.svc.SaveAndAdjust(in)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, res)
}

func (h *TrackingCtrl) Patch(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid id"})
	}
	var p service.ApplicationPatch
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid json"})
	}
	a, err := h.svc.RecordActual(uint(id), p)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "application not found"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, a)
}

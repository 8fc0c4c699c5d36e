package controllerImp

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"fertiplan/pkg/catalog"
	"fertiplan/pkg/catalog/service"
	"fertiplan/pkg/catalog/serviceImp"
)

type CatalogCtrl struct{ svc service.CatalogService }

func NewCatalogCtrl(svc service.CatalogService) *CatalogCtrl { return &CatalogCtrl{svc: svc} }

func (h *CatalogCtrl) Get(c echo.Context) error {
	s, err := h.svc.Get()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, s)
}

func (h *CatalogCtrl) Replace(c echo.Context) error {
	var body catalog.Snapshot
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	s, err := h.svc.Replace(&body)
	if errors.Is(err, serviceImp.ErrInvalidStartDate) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, s)
}

func (h *CatalogCtrl) Reset(c echo.Context) error {
	if err := h.svc.Reset(); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

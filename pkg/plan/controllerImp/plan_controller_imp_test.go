package controllerImp

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"fertiplan/database"
	catalogRepoImp "fertiplan/pkg/catalog/repositoryImp"
	catalogSvcImp "fertiplan/pkg/catalog/serviceImp"
	"fertiplan/pkg/export"
	"fertiplan/pkg/plan/repositoryImp"
	"fertiplan/pkg/plan/serviceImp"
)

func newServer(t *testing.T) *echo.Echo {
	t.Helper()
	db, err := database.OpenMemory()
	require.NoError(t, err)
	cat := catalogSvcImp.NewCatalogService(catalogRepoImp.New(db), "")
	ctrl := NewPlanCtrl(serviceImp.NewPlanService(cat, repositoryImp.New(db), nil))

	e := echo.New()
	e.POST("/plans/monthly", ctrl.GenerateMonthly)
	e.GET("/plans/monthly", ctrl.ListMonthly)
	e.GET("/plans/monthly/export", ctrl.ExportMonthly)
	e.POST("/plans/weekly", ctrl.GenerateWeekly)
	e.GET("/plans/weekly", ctrl.ListWeekly)
	e.GET("/plans/weekly/export", ctrl.ExportWeekly)
	return e
}

func call(e *echo.Echo, method, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(method, path, nil))
	return rec
}

func TestWeeklyWithoutMonthlyIsUnprocessable(t *testing.T) {
	e := newServer(t)
	rec := call(e, http.MethodPost, "/plans/weekly")
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var body struct {
		Diagnostic struct {
			Kind    string `json:"kind"`
			Message string `json:"message"`
		} `json:"diagnostic"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "error", body.Diagnostic.Kind)
	assert.NotEmpty(t, body.Diagnostic.Message)
}

func TestGenerateListAndExport(t *testing.T) {
	e := newServer(t)

	require.Equal(t, http.StatusCreated, call(e, http.MethodPost, "/plans/monthly").Code)
	require.Equal(t, http.StatusCreated, call(e, http.MethodPost, "/plans/weekly").Code)

	rec := call(e, http.MethodGet, "/plans/monthly?vintage=2018")
	require.Equal(t, http.StatusOK, rec.Code)
	var listed struct {
		Run  map[string]any   `json:"run"`
		Rows []map[string]any `json:"rows"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	assert.Equal(t, "monthly", listed.Run["kind"])
	assert.Len(t, listed.Rows, 16)

	assert.Equal(t, http.StatusBadRequest, call(e, http.MethodGet, "/plans/weekly?vintage=old").Code)

	rec = call(e, http.MethodGet, "/plans/weekly/export?vintage=2019")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, export.ContentType, rec.Header().Get(echo.HeaderContentType))
	assert.Contains(t, rec.Header().Get(echo.HeaderContentDisposition), "plan_weekly_2019.xlsx")

	x, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)
	defer x.Close()
	rows, err := x.GetRows(export.WeeklySheet)
	require.NoError(t, err)
	require.Greater(t, len(rows), 1)
	for _, r := range rows[1:] {
		assert.Equal(t, "2019", r[2])
	}

	rec = call(e, http.MethodGet, "/plans/monthly/export")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get(echo.HeaderContentDisposition), "plan_monthly_all.xlsx")
}

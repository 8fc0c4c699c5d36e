package controllerImp

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fertiplan/database"
	"fertiplan/entities"
	catalogRepoImp "fertiplan/pkg/catalog/repositoryImp"
	catalogSvcImp "fertiplan/pkg/catalog/serviceImp"
	planRepoImp "fertiplan/pkg/plan/repositoryImp"
	planSvcImp "fertiplan/pkg/plan/serviceImp"
	"fertiplan/pkg/tracking/repositoryImp"
	"fertiplan/pkg/tracking/serviceImp"
)

func newServer(t *testing.T) *echo.Echo {
	t.Helper()
	db, err := database.OpenMemory()
	require.NoError(t, err)
	planRepo := planRepoImp.New(db)
	plans := planSvcImp.NewPlanService(catalogSvcImp.NewCatalogService(catalogRepoImp.New(db), ""), planRepo, nil)
	_, err = plans.GenerateMonthly()
	require.NoError(t, err)
	_, err = plans.GenerateWeekly()
	require.NoError(t, err)

	ctrl := NewTrackingCtrl(serviceImp.NewTrackingService(repositoryImp.New(db), plans, planRepo, nil))
	e := echo.New()
	e.GET("/applications", ctrl.List)
	e.PUT("/applications", ctrl.Save)
	e.PATCH("/applications/:id", ctrl.Patch)
	return e
}

func do(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestApplicationsFlow(t *testing.T) {
	e := newServer(t)

	rec := do(e, http.MethodGet, "/applications", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var rows []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rows))
	require.NotEmpty(t, rows)

	// record an over-application on the first row and send the table back
	rows[0]["actual_liters"] = "not a number"
	rows[1]["actual_liters"] = 1000
	body, err := json.Marshal(rows)
	require.NoError(t, err)
	rec = do(e, http.MethodPut, "/applications", string(body))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var saved struct {
		RunID        string                 `json:"run_id"`
		Applications []entities.Application `json:"applications"`
		Adjustments  []entities.Adjustment  `json:"adjustments"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &saved))
	assert.NotEmpty(t, saved.RunID)
	assert.Len(t, saved.Applications, len(rows))
	for _, a := range saved.Applications {
		if a.ID == uint(rows[0]["id"].(float64)) {
			assert.Nil(t, a.ActualLiters, "garbage volumes are stored blank")
		}
	}
	assert.LessOrEqual(t, len(saved.Adjustments), 1)

	id := saved.Applications[0].ID
	rec = do(e, http.MethodPatch, "/applications/"+strconv.FormatUint(uint64(id), 10), `{"actual_liters": 12.5, "notes": "ok"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var one entities.Application
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &one))
	require.NotNil(t, one.ActualLiters)
	assert.Equal(t, 12.5, *one.ActualLiters)
	assert.Equal(t, "ok", one.Notes)

	assert.Equal(t, http.StatusNotFound, do(e, http.MethodPatch, "/applications/99999", `{}`).Code)
	assert.Equal(t, http.StatusBadRequest, do(e, http.MethodPatch, "/applications/x", `{}`).Code)
	assert.Equal(t, http.StatusBadRequest, do(e, http.MethodPut, "/applications", `{"a":`).Code)
}

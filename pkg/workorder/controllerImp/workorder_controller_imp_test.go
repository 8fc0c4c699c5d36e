package controllerImp

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fertiplan/entities"
	"fertiplan/pkg/workorder/serviceImp"
)

type fixedApps []entities.Application

func (f fixedApps) Load() ([]entities.Application, error) { return f, nil }

func newServer() *echo.Echo {
	l := 31.5
	apps := fixedApps{
		{ID: 1, Sector: "Chacra Pivot", Vintage: 2012, Valve: "Valvula_3", Product: "NITRON", Date: time.Date(2024, 10, 21, 0, 0, 0, 0, time.UTC), PlannedLiters: &l},
		{ID: 2, Sector: "Chacra Isla", Vintage: 2019, Valve: "Valvula_1", Product: "BIOPREMIUM", Date: time.Date(2024, 10, 28, 0, 0, 0, 0, time.UTC), PlannedLiters: &l},
	}
	clock := func() time.Time { return time.Date(2024, 10, 20, 9, 0, 0, 0, time.UTC) }
	ctrl := NewWorkOrderCtrl(serviceImp.NewWorkOrderService(apps).WithClock(clock))
	e := echo.New()
	e.GET("/work-orders", ctrl.Get)
	return e
}

func get(e *echo.Echo, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestWorkOrderPDF(t *testing.T) {
	rec := get(newServer(), "/work-orders?date=2024-10-21")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get(echo.HeaderContentType))
	assert.Contains(t, rec.Header().Get(echo.HeaderContentDisposition), "work_order_2024-10-20.pdf")
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF")))
}

func TestWorkOrderHTML(t *testing.T) {
	rec := get(newServer(), "/work-orders?format=html&sector=Chacra%20Isla&vintage=all")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Header().Get(echo.HeaderContentType), echo.MIMETextHTML))

	doc, err := goquery.NewDocumentFromReader(rec.Body)
	require.NoError(t, err)
	rows := doc.Find("#lines tbody tr")
	require.Equal(t, 1, rows.Length())
	assert.Equal(t, "BIOPREMIUM", rows.Find("td.product").Text())
	assert.Equal(t, "31.50", rows.Find("td.liters").Text())
}

func TestWorkOrderErrors(t *testing.T) {
	e := newServer()
	assert.Equal(t, http.StatusNotFound, get(e, "/work-orders?vintage=1999").Code)
	assert.Equal(t, http.StatusBadRequest, get(e, "/work-orders?date=tomorrow").Code)
	assert.Equal(t, http.StatusBadRequest, get(e, "/work-orders?vintage=x").Code)
	assert.Equal(t, http.StatusBadRequest, get(e, "/work-orders?format=docx").Code)
}

package serviceImp

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"fertiplan/database"
	"fertiplan/entities"
	"fertiplan/pkg/metrics"
	planRepoImp "fertiplan/pkg/plan/repositoryImp"
	"fertiplan/pkg/tracking/repositoryImp"
	"fertiplan/pkg/tracking/service"
)

type stubSchedule struct {
	events []entities.ScheduleEvent
	calls  int
}

func (s *stubSchedule) ListWeekly(*int) ([]entities.ScheduleEvent, error) {
	s.calls++
	return s.events, nil
}

func monday(week int) time.Time {
	return time.Date(2024, 10, 21, 0, 0, 0, 0, time.UTC).AddDate(0, 0, 7*week)
}

func newSvc(t *testing.T, events ...entities.ScheduleEvent) (*TrackingSvc, *stubSchedule, *gorm.DB, *metrics.Metrics) {
	t.Helper()
	db, err := database.OpenMemory()
	require.NoError(t, err)
	sched := &stubSchedule{events: events}
	m := metrics.New()
	svc := NewTrackingService(repositoryImp.New(db), sched, planRepoImp.New(db), m)
	return svc, sched, db, m
}

func TestLoadSeedsFromScheduleOnce(t *testing.T) {
	svc, sched, _, _ := newSvc(t,
		entities.ScheduleEvent{ID: 10, Sector: "S1", Vintage: 2011, Valve: "Valvula_1", Date: monday(0), PlannedLiters: 40},
		entities.ScheduleEvent{ID: 11, Sector: "S1", Vintage: 2011, Valve: "Valvula_1", Date: monday(1), PlannedLiters: 25.5},
	)

	rows, err := svc.Load()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.EqualValues(t, 10, rows[0].EventID)
	require.NotNil(t, rows[1].PlannedLiters)
	assert.Equal(t, 25.5, *rows[1].PlannedLiters)
	assert.Nil(t, rows[0].ActualLiters)

	sched.events = append(sched.events, entities.ScheduleEvent{ID: 12, Date: monday(2)})
	rows, err = svc.Load()
	require.NoError(t, err)
	assert.Len(t, rows, 2, "a populated table is not re-seeded")
	assert.Equal(t, 1, sched.calls)
}

func TestSaveAndAdjustCarriesDeviation(t *testing.T) {
	svc, _, db, m := newSvc(t,
		entities.ScheduleEvent{ID: 1, Sector: "S1", Valve: "Valvula_1", Date: monday(0), PlannedLiters: 40},
		entities.ScheduleEvent{ID: 2, Sector: "S1", Valve: "Valvula_1", Date: monday(1), PlannedLiters: 40},
		entities.ScheduleEvent{ID: 3, Sector: "S2", Valve: "Valvula_1", Date: monday(1), PlannedLiters: 10},
	)
	rows, err := svc.Load()
	require.NoError(t, err)

	var in []service.ApplicationInput
	raw, err := json.Marshal(rows)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &in))
	require.NoError(t, json.Unmarshal([]byte(`"35"`), &in[0].ActualLiters))
	require.NoError(t, json.Unmarshal([]byte(`"2024-10-22"`), &in[0].ActualDate))
	in = append(in, service.ApplicationInput{Sector: "S2", Valve: "Valvula_9"})

	res, err := svc.SaveAndAdjust(in)
	require.NoError(t, err)
	require.Len(t, res.Adjustments, 1)
	adj := res.Adjustments[0]
	assert.Equal(t, -5.0, adj.Delta)
	assert.Equal(t, res.RunID, adj.RunID)

	byID := map[uint]entities.Application{}
	for _, a := range res.Applications {
		byID[a.ID] = a
	}
	assert.Equal(t, 35.0, *byID[adj.TargetID].PlannedLiters)
	assert.Contains(t, byID, uint(4), "new rows get the next free id")

	var run entities.PlanRun
	require.NoError(t, db.First(&run, "id = ?", res.RunID).Error)
	assert.Equal(t, entities.RunReconcile, run.Kind)
	assert.Equal(t, 1.0, counterValue(t, m, "fertiplan_adjustments_total"))
}

func TestSaveAndAdjustAssignsFreshIDs(t *testing.T) {
	svc, _, _, _ := newSvc(t)

	var in []service.ApplicationInput
	require.NoError(t, json.Unmarshal([]byte(`[
		{"id": 1, "sector": "S1", "valve": "Valvula_1", "date": "2024-10-21", "planned_liters": 10, "actual_liters": 12},
		{"id": 0, "sector": "S1", "valve": "Valvula_1", "date": "2024-10-28", "planned_liters": 10},
		{"id": 9, "sector": "S2", "valve": "Valvula_1", "date": "2024-10-21", "planned_liters": 5},
		{"id": 1, "sector": "S2", "valve": "Valvula_2", "date": "2024-10-21", "planned_liters": 5}
	]`), &in))

	res, err := svc.SaveAndAdjust(in)
	require.NoError(t, err)
	require.Len(t, res.Applications, 4)

	ids := map[uint]bool{}
	for _, a := range res.Applications {
		assert.False(t, ids[a.ID], "duplicate id %d", a.ID)
		ids[a.ID] = true
	}
	assert.Equal(t, map[uint]bool{1: true, 9: true, 10: true, 11: true}, ids)

	require.Len(t, res.Adjustments, 1)
	assert.EqualValues(t, 1, res.Adjustments[0].SourceID)
	assert.EqualValues(t, 10, res.Adjustments[0].TargetID)
}

func TestRecordActual(t *testing.T) {
	svc, _, _, _ := newSvc(t,
		entities.ScheduleEvent{ID: 1, Sector: "S1", Valve: "Valvula_1", Date: monday(0), PlannedLiters: 40},
		entities.ScheduleEvent{ID: 2, Sector: "S1", Valve: "Valvula_1", Date: monday(1), PlannedLiters: 40},
	)
	rows, err := svc.Load()
	require.NoError(t, err)

	var p service.ApplicationPatch
	require.NoError(t, json.Unmarshal([]byte(`{"actual_liters": 50, "actual_date": "2024-10-21"}`), &p))
	a, err := svc.RecordActual(rows[0].ID, p)
	require.NoError(t, err)
	require.NotNil(t, a.ActualLiters)
	assert.Equal(t, 50.0, *a.ActualLiters)

	notes := "rain"
	a, err = svc.RecordActual(rows[0].ID, service.ApplicationPatch{Notes: &notes})
	require.NoError(t, err)
	assert.Equal(t, 50.0, *a.ActualLiters, "absent fields are left alone")
	assert.Equal(t, "rain", a.Notes)

	after, err := svc.Load()
	require.NoError(t, err)
	assert.Equal(t, 40.0, *after[1].PlannedLiters, "recording an actual does not adjust")

	_, err = svc.RecordActual(999, p)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func counterValue(t *testing.T, m *metrics.Metrics, name string) float64 {
	t.Helper()
	families, err := m.Registry().Gather()
	require.NoError(t, err)
	for _, f := range families {
		if f.GetName() == name {
			return f.GetMetric()[0].GetCounter().GetValue()
		}
	}
	t.Fatalf("metric %s not found", name)
	return 0
}

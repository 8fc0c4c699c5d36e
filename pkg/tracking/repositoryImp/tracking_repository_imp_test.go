package repositoryImp

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fertiplan/database"
	"fertiplan/entities"
)

func TestReplaceAllKeepsIDsAndOrders(t *testing.T) {
	db, err := database.OpenMemory()
	require.NoError(t, err)
	repo := New(db)

	max, err := repo.MaxID()
	require.NoError(t, err)
	assert.Zero(t, max)

	d1 := time.Date(2024, 10, 21, 0, 0, 0, 0, time.UTC)
	d2 := d1.AddDate(0, 0, 7)
	rows := []entities.Application{
		{ID: 7, Sector: "S1", Valve: "Valvula_2", Date: d2},
		{ID: 3, Sector: "S1", Valve: "Valvula_2", Date: d1},
		{ID: 5, Sector: "S1", Valve: "Valvula_1", Date: d1},
	}
	adj := []entities.Adjustment{{RunID: "r1", SourceID: 3, TargetID: 7, Delta: 2}}
	require.NoError(t, repo.ReplaceAll(rows, adj))

	n, err := repo.Count()
	require.NoError(t, err)
	assert.EqualValues(t, 3, n)

	got, err := repo.List()
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, []uint{5, 3, 7}, []uint{got[0].ID, got[1].ID, got[2].ID})

	max, err = repo.MaxID()
	require.NoError(t, err)
	assert.EqualValues(t, 7, max)

	stored, err := repo.ListAdjustments("r1")
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, 2.0, stored[0].Delta)

	require.NoError(t, repo.ReplaceAll(rows[:1], nil))
	n, err = repo.Count()
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	one, err := repo.FindByID(7)
	require.NoError(t, err)
	one.Notes = "wind"
	require.NoError(t, repo.Update(one))
	again, err := repo.FindByID(7)
	require.NoError(t, err)
	assert.Equal(t, "wind", again.Notes)

	_, err = repo.FindByID(3)
	assert.Error(t, err)
}

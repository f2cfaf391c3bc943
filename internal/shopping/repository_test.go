package shopping

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func testDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(`CREATE TABLE shopping_lists (
		id TEXT PRIMARY KEY,
		plan_id TEXT NOT NULL DEFAULT '',
		items TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL
	)`)
	require.NoError(t, err)
	return db
}

func TestShoppingRepositoryRoundTrip(t *testing.T) {
	repo := NewRepository(testDB(t))
	ctx := context.Background()

	list := &List{
		PlanID: "plan-1",
		Items: []Item{
			{Text: "Rice", Quantity: 400, Unit: "g"},
			{Text: "Milk", Quantity: 1, Unit: "l", InStock: true},
		},
	}
	require.NoError(t, repo.Save(ctx, list))
	require.NotEmpty(t, list.ID)

	loaded, err := repo.Get(ctx, list.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, list.Items, loaded.Items)

	byPlan, err := repo.GetByPlanID(ctx, "plan-1")
	require.NoError(t, err)
	require.NotNil(t, byPlan)
	assert.Equal(t, list.ID, byPlan.ID)
}

func TestShoppingRepositorySaveOverwritesItems(t *testing.T) {
	repo := NewRepository(testDB(t))
	ctx := context.Background()

	list := &List{Items: []Item{{Text: "Eggs", Quantity: 12}}}
	require.NoError(t, repo.Save(ctx, list))

	list.Items[0].InStock = true
	require.NoError(t, repo.Save(ctx, list))

	loaded, err := repo.Get(ctx, list.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Items, 1)
	assert.True(t, loaded.Items[0].InStock, "checked state persists")
}

func TestShoppingRepositoryMissingAndDelete(t *testing.T) {
	repo := NewRepository(testDB(t))
	ctx := context.Background()

	loaded, err := repo.Get(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, loaded)

	byPlan, err := repo.GetByPlanID(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, byPlan)

	list := &List{Items: []Item{{Text: "Salt", Quantity: 1}}}
	require.NoError(t, repo.Save(ctx, list))
	require.NoError(t, repo.Delete(ctx, list.ID))

	gone, err := repo.Get(ctx, list.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)
}

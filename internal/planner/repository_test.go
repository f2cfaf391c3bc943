package planner

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"pantry-planner/internal/recipe"
)

func testDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(`CREATE TABLE meal_plans (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		data TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL
	)`)
	require.NoError(t, err)
	return db
}

func TestRepositoryRoundTrip(t *testing.T) {
	repo := NewRepository(testDB(t))
	ctx := context.Background()

	plan := &MealPlan{
		Name:        "Week A",
		Days:        1,
		MealsPerDay: 2,
		Meals: []Meal{
			{ID: 1, Name: "Breakfast", DayIndex: 0, MealType: "Breakfast",
				Recipes: []*recipe.Recipe{{ID: "7", Title: "Porridge", Servings: 2, MealPlanScale: 1.2}}},
			{ID: 2, Name: "Lunch", DayIndex: 0, MealType: "Lunch"},
		},
	}

	require.NoError(t, repo.Save(ctx, plan))
	assert.NotEmpty(t, plan.ID, "save assigns an id")
	assert.False(t, plan.CreatedAt.IsZero())

	loaded, err := repo.Get(ctx, plan.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, plan.Name, loaded.Name)
	require.Len(t, loaded.Meals, 2)
	require.Len(t, loaded.Meals[0].Recipes, 1)
	assert.Equal(t, 1.2, loaded.Meals[0].Recipes[0].MealPlanScale)
}

func TestRepositoryGetMissing(t *testing.T) {
	repo := NewRepository(testDB(t))

	loaded, err := repo.Get(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, loaded, "missing plan is a nil result, not an error")
}

func TestRepositoryListRecentAndDelete(t *testing.T) {
	repo := NewRepository(testDB(t))
	ctx := context.Background()

	for _, name := range []string{"first", "second", "third"} {
		require.NoError(t, repo.Save(ctx, &MealPlan{Name: name, Days: 1, MealsPerDay: 1}))
	}

	plans, err := repo.ListRecent(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, plans, 2)

	all, err := repo.ListRecent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, all, 3)

	require.NoError(t, repo.Delete(ctx, all[0].ID))
	remaining, err := repo.ListRecent(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, remaining, 2)

	assert.NoError(t, repo.Delete(ctx, "unknown"), "deleting an unknown id is not an error")
}

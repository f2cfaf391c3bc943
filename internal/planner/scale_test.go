package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"pantry-planner/internal/recipe"
)

func TestRecipeScale(t *testing.T) {
	t.Run("ExplicitOverrideWins", func(t *testing.T) {
		r := &recipe.Recipe{Servings: 2, MealPlanScale: 1.5}
		assert.Equal(t, 1.5, RecipeScale(r, 4))
	})

	t.Run("ServingsRatio", func(t *testing.T) {
		r := &recipe.Recipe{Servings: 2}
		assert.Equal(t, 2.0, RecipeScale(r, 4))
		assert.Equal(t, 0.5, RecipeScale(r, 1))
	})

	t.Run("DefaultsToOne", func(t *testing.T) {
		assert.Equal(t, 1.0, RecipeScale(&recipe.Recipe{}, 4), "no servings")
		assert.Equal(t, 1.0, RecipeScale(&recipe.Recipe{Servings: 2}, 0), "no people count")
		assert.Equal(t, 1.0, RecipeScale(&recipe.Recipe{Servings: -1}, 4), "negative servings")
		assert.Equal(t, 1.0, RecipeScale(nil, 4))
	})

	t.Run("NegativeOverrideIgnored", func(t *testing.T) {
		r := &recipe.Recipe{Servings: 2, MealPlanScale: -3}
		assert.Equal(t, 2.0, RecipeScale(r, 4))
	})
}

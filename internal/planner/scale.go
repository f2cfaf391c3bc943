package planner

import (
	"math"

	"pantry-planner/internal/recipe"
)

// RecipeScale computes the multiplier applied to a recipe's ingredient
// amounts. An explicit meal-plan scale wins; otherwise the recipe is sized
// from its servings to the number of people; otherwise it is used as-is.
func RecipeScale(r *recipe.Recipe, peopleCount float64) float64 {
	if r == nil {
		return 1
	}
	if r.MealPlanScale > 0 && !math.IsInf(r.MealPlanScale, 0) && !math.IsNaN(r.MealPlanScale) {
		return r.MealPlanScale
	}
	if r.Servings > 0 && peopleCount > 0 && !math.IsInf(peopleCount, 0) && !math.IsNaN(peopleCount) {
		return peopleCount / r.Servings
	}
	return 1
}

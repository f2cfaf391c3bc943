// Package planner selects recipes for meal slots and assembles multi-day
// meal plans sized to calorie targets and household composition.
package planner

import (
	"encoding/json"
	"time"

	"pantry-planner/internal/recipe"
)

// Meal is one filled slot of a plan: a day, a meal name and the recipes
// chosen for it. Recipes are shared references into the session catalog.
type Meal struct {
	ID       int              `json:"id"`
	Name     string           `json:"name"`
	DayIndex int              `json:"dayIndex"`
	MealType string           `json:"mealType"`
	Recipes  []*recipe.Recipe `json:"recipesForMeal"`

	// Notes stashes the per-person calorie targets for this slot as
	// serialized JSON. Display code reads it; the planner never parses
	// it back.
	Notes string `json:"notes,omitempty"`
}

// MealPlan is a generated or imported plan record. It is plain data and
// round-trips losslessly through JSON.
type MealPlan struct {
	ID              string          `json:"id,omitempty"`
	Name            string          `json:"name"`
	ProfileSnapshot json.RawMessage `json:"profileSnapshot,omitempty"`
	Days            int             `json:"days"`
	MealsPerDay     int             `json:"mealsPerDay"`
	Meals           []Meal          `json:"mealsForPlan"`
	CreatedAt       time.Time       `json:"createdAt,omitempty"`
}

package planner

import (
	"encoding/json"
	"fmt"
	"math"

	"go.uber.org/zap"

	"pantry-planner/internal/profile"
	"pantry-planner/internal/recipe"
)

// PlanRequest carries everything one plan generation needs. Slots is the
// flat per-meal per-person calorie grid, indexed as
// mealIndex*peopleCount+personIndex; nil entries mean "unset".
type PlanRequest struct {
	Profile         *profile.Profile
	ProfileSnapshot json.RawMessage
	Recipes         []*recipe.Recipe
	Slots           []*float64
	Days            int
	MealsPerDay     int
	PeopleCount     int
	MealNames       []string
	PlanName        string
}

// Generator walks the (day, meal) grid, fills each slot through the
// Selector and rebalances every meal to its aggregate calorie target.
type Generator struct {
	selector *Selector
	log      *zap.Logger
}

// NewGenerator creates a Generator around the given selector.
func NewGenerator(selector *Selector, log *zap.Logger) *Generator {
	return &Generator{selector: selector, log: log}
}

// Generate assembles a MealPlan, or returns nil when the request cannot
// produce one: an empty recipe pool, no calorie target anywhere in the
// grid, or no meals per day. Invalid input is a sentinel, not an error.
func (g *Generator) Generate(req PlanRequest) *MealPlan {
	if len(req.Recipes) == 0 {
		return nil
	}
	if !hasAnyTarget(req.Slots) {
		return nil
	}

	days := req.Days
	if days <= 0 {
		days = 1
	}
	peopleCount := req.PeopleCount
	if peopleCount <= 0 {
		peopleCount = 1
	}
	if req.MealsPerDay <= 0 {
		return nil
	}

	usedIDs := make(map[string]bool)
	mealID := 1
	var meals []Meal

	for dayIndex := 0; dayIndex < days; dayIndex++ {
		for mealIndex := 0; mealIndex < req.MealsPerDay; mealIndex++ {
			perPerson := slotValues(req.Slots, mealIndex, peopleCount)

			target := averageTarget(perPerson)
			picked := g.selector.PickForMeal(req.Recipes, req.Profile, target, usedIDs)
			for _, r := range picked {
				if r.ID != "" {
					usedIDs[r.ID] = true
				}
			}

			rebalanceMeal(picked, sumTargets(perPerson))

			meal := Meal{
				ID:       mealID,
				DayIndex: dayIndex,
				Name:     mealName(req.MealNames, mealIndex),
				MealType: mealName(req.MealNames, mealIndex),
				Recipes:  picked,
			}
			if notes, err := json.Marshal(perPerson); err == nil {
				meal.Notes = string(notes)
			}
			meals = append(meals, meal)
			mealID++
		}
	}

	g.log.Info("meal plan generated",
		zap.Int("days", days),
		zap.Int("mealsPerDay", req.MealsPerDay),
		zap.Int("meals", len(meals)),
	)

	return &MealPlan{
		Name:            req.PlanName,
		ProfileSnapshot: req.ProfileSnapshot,
		Days:            days,
		MealsPerDay:     req.MealsPerDay,
		Meals:           meals,
	}
}

// rebalanceMeal stamps one shared scale onto every recipe of a meal so the
// meal as a whole lands on its aggregate calorie target. Any prior scale
// is overwritten, not combined.
func rebalanceMeal(picked []*recipe.Recipe, targetTotalCalories float64) {
	if len(picked) == 0 || targetTotalCalories <= 0 {
		return
	}

	var baseline float64
	for _, r := range picked {
		perServing, ok := r.CaloriesPerServing()
		if !ok {
			continue
		}
		servings := r.Servings
		if servings <= 0 {
			servings = 1
		}
		baseline += perServing * servings
	}
	if baseline <= 0 || math.IsInf(baseline, 0) {
		return
	}

	scale := targetTotalCalories / baseline
	for _, r := range picked {
		r.MealPlanScale = scale
	}
}

// slotValues gathers the per-person entries of one meal column of the grid.
func slotValues(slots []*float64, mealIndex, peopleCount int) []*float64 {
	values := make([]*float64, peopleCount)
	for person := 0; person < peopleCount; person++ {
		idx := mealIndex*peopleCount + person
		if idx < len(slots) {
			values[person] = slots[idx]
		}
	}
	return values
}

// averageTarget averages the set per-person targets, or returns 0 when
// none are set.
func averageTarget(values []*float64) float64 {
	var sum float64
	var n int
	for _, v := range values {
		if isPositiveTarget(v) {
			sum += *v
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

func sumTargets(values []*float64) float64 {
	var sum float64
	for _, v := range values {
		if isPositiveTarget(v) {
			sum += *v
		}
	}
	return sum
}

func isPositiveTarget(v *float64) bool {
	return v != nil && *v > 0 && !math.IsInf(*v, 0) && !math.IsNaN(*v)
}

func hasAnyTarget(slots []*float64) bool {
	for _, v := range slots {
		if isPositiveTarget(v) {
			return true
		}
	}
	return false
}

func mealName(names []string, mealIndex int) string {
	if mealIndex < len(names) && names[mealIndex] != "" {
		return names[mealIndex]
	}
	return fmt.Sprintf("Meal %d", mealIndex+1)
}

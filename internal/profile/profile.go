// Package profile holds the user's dietary and planning preferences.
package profile

import "strings"

// Profile captures the settings the planner consults: dietary constraints,
// favorites and the calorie-planning grid. It persists as a single JSON
// document.
type Profile struct {
	DietType        string   `json:"dietType,omitempty"`
	AllergensText   string   `json:"allergensText,omitempty"`
	MaxReadyMinutes float64  `json:"maxReadyMinutes,omitempty"`
	FavoriteRecipes []string `json:"favoriteRecipeIds,omitempty"`

	PeopleCount             int        `json:"mealPlanPeopleCount,omitempty"`
	MealsPerDay             int        `json:"mealPlanMealsPerDay,omitempty"`
	CaloriesPerPersonPerDay float64    `json:"mealPlanCaloriesPerPersonPerDay,omitempty"`
	CalorieSlots            []*float64 `json:"mealPlanCaloriesPerMealSlots,omitempty"`
}

// Default returns the profile used before the user saves one.
func Default() *Profile {
	return &Profile{
		PeopleCount:             1,
		MealsPerDay:             3,
		CaloriesPerPersonPerDay: 2000,
	}
}

// IsFavorite reports whether the recipe id is in the favorites set,
// compared in string form.
func (p *Profile) IsFavorite(id string) bool {
	if p == nil || id == "" {
		return false
	}
	for _, fav := range p.FavoriteRecipes {
		if fav == id {
			return true
		}
	}
	return false
}

// AddFavorite records a recipe id as a favorite, once.
func (p *Profile) AddFavorite(id string) {
	if id == "" || p.IsFavorite(id) {
		return
	}
	p.FavoriteRecipes = append(p.FavoriteRecipes, id)
}

// RemoveFavorite drops a recipe id from the favorites set.
func (p *Profile) RemoveFavorite(id string) {
	for i, fav := range p.FavoriteRecipes {
		if fav == id {
			p.FavoriteRecipes = append(p.FavoriteRecipes[:i], p.FavoriteRecipes[i+1:]...)
			return
		}
	}
}

// AllergenTerms parses the free-text allergens field into lowercase
// matching terms. The field accepts commas, semicolons and newlines as
// separators; blank terms are discarded.
func (p *Profile) AllergenTerms() []string {
	if p == nil || p.AllergensText == "" {
		return nil
	}
	split := strings.FieldsFunc(p.AllergensText, func(r rune) bool {
		return r == ',' || r == ';' || r == '\n'
	})

	var terms []string
	for _, raw := range split {
		term := strings.ToLower(strings.TrimSpace(raw))
		if term != "" {
			terms = append(terms, term)
		}
	}
	return terms
}

// SlotCalories returns the per-person calorie target stored for one cell
// of the (meal, person) grid, or nil when unset or out of range.
func (p *Profile) SlotCalories(mealIndex, personIndex int) *float64 {
	if p == nil || p.PeopleCount <= 0 {
		return nil
	}
	idx := mealIndex*p.PeopleCount + personIndex
	if idx < 0 || idx >= len(p.CalorieSlots) {
		return nil
	}
	return p.CalorieSlots[idx]
}

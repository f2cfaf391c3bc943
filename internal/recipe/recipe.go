// Package recipe holds the recipe catalog model and the data-source
// adapters that load it: a remote search API, a bundled mock dataset and a
// TTL cache wrapper.
package recipe

import "strings"

// Ingredient is one entry of a recipe's ingredient list. Amount is a
// pointer because source data distinguishes "no stated amount" from zero.
type Ingredient struct {
	Name     string   `json:"name"`
	Original string   `json:"originalString,omitempty"`
	Amount   *float64 `json:"amount"`
	Unit     string   `json:"unit,omitempty"`
	UnitLong string   `json:"unitLong,omitempty"`
	Aisle    string   `json:"aisle,omitempty"`
	Meta     []string `json:"metaInformation,omitempty"`
}

// DisplayName returns the name used for aggregation and display: the
// ingredient name, falling back to its free-text original line. Empty means
// the ingredient cannot be aggregated or shown.
func (i Ingredient) DisplayName() string {
	if n := strings.TrimSpace(i.Name); n != "" {
		return n
	}
	return strings.TrimSpace(i.Original)
}

// DisplayUnit returns the unit used for aggregation: the short unit,
// falling back to the long form.
func (i Ingredient) DisplayUnit() string {
	if u := strings.TrimSpace(i.Unit); u != "" {
		return u
	}
	return strings.TrimSpace(i.UnitLong)
}

// BaseAmount returns the amount contributed before scaling. An ingredient
// with no stated (or non-positive) amount counts as one unit.
func (i Ingredient) BaseAmount() float64 {
	if i.Amount != nil && *i.Amount > 0 {
		return *i.Amount
	}
	return 1
}

// Nutrient is a single named nutrition value.
type Nutrient struct {
	Title  string  `json:"title"`
	Amount float64 `json:"amount"`
	Unit   string  `json:"unit"`
}

// Nutrition is a flat lookup table of nutrients keyed by title.
type Nutrition struct {
	Nutrients []Nutrient `json:"nutrients,omitempty"`
}

// Lookup finds a nutrient by title, case-insensitively.
func (n Nutrition) Lookup(title string) (Nutrient, bool) {
	for _, nu := range n.Nutrients {
		if strings.EqualFold(nu.Title, title) {
			return nu, true
		}
	}
	return Nutrient{}, false
}

// Recipe is a catalog record. Catalog recipes are shared by reference:
// meals point at them rather than copying. MealPlanScale is the one mutable
// field, written by the plan generator after a meal's recipes are chosen.
type Recipe struct {
	ID             string       `json:"id"`
	Title          string       `json:"title"`
	Servings       float64      `json:"servings,omitempty"`
	ReadyInMinutes float64      `json:"readyInMinutes,omitempty"`
	Likes          int          `json:"likes,omitempty"`
	Vegetarian     bool         `json:"vegetarian,omitempty"`
	Vegan          bool         `json:"vegan,omitempty"`
	GlutenFree     bool         `json:"glutenFree,omitempty"`
	DairyFree      bool         `json:"dairyFree,omitempty"`
	Ingredients    []Ingredient `json:"extendedIngredients"`
	Nutrition      Nutrition    `json:"nutrition,omitempty"`
	MealPlanScale  float64      `json:"mealPlanScale,omitempty"`
	SourceURL      string       `json:"sourceUrl,omitempty"`
}

// CaloriesPerServing returns the recipe's "Calories" nutrient amount, if
// one is present.
func (r *Recipe) CaloriesPerServing() (float64, bool) {
	n, ok := r.Nutrition.Lookup("Calories")
	if !ok {
		return 0, false
	}
	return n.Amount, true
}

// IngredientText concatenates all ingredient names and original lines,
// lowercased, for substring matching against allergen terms.
func (r *Recipe) IngredientText() string {
	var sb strings.Builder
	for _, ing := range r.Ingredients {
		sb.WriteString(strings.ToLower(ing.Name))
		sb.WriteString(" ")
		sb.WriteString(strings.ToLower(ing.Original))
		sb.WriteString(" ")
	}
	return sb.String()
}

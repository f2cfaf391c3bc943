package shopping

import (
	"sort"

	"pantry-planner/internal/planner"
	"pantry-planner/internal/units"
)

// RequiredIngredient is one aggregated ingredient need: how much of a
// normalized ingredient the whole plan calls for. Name and Unit keep
// whatever spelling was seen first.
type RequiredIngredient struct {
	Name     string
	Quantity float64
	Unit     string
}

// Required maps normalized ingredient keys to aggregated needs. It is
// built fresh per aggregation call and never persisted directly.
type Required map[string]*RequiredIngredient

// SortedKeys returns the aggregate's keys in a stable order for rendering
// and list construction.
func (req Required) SortedKeys() []string {
	keys := make([]string, 0, len(req))
	for k := range req {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// AggregatePlanIngredients sums the scaled ingredient requirements of all
// meals into one map keyed by normalized name and unit. Summation is
// commutative, but the display name and unit stored under a key are
// first-seen-wins. Ingredients with no name and no original text are
// skipped; an ingredient with no stated amount counts as one unit before
// scaling.
func AggregatePlanIngredients(meals []planner.Meal, peopleCount float64) Required {
	req := make(Required)
	if len(meals) == 0 {
		return req
	}

	for _, meal := range meals {
		for _, r := range meal.Recipes {
			scale := planner.RecipeScale(r, peopleCount)
			for _, ing := range r.Ingredients {
				name := ing.DisplayName()
				if name == "" {
					continue
				}
				unit := ing.DisplayUnit()
				contributed := ing.BaseAmount() * scale

				key := units.IngredientKey(name, unit)
				if entry, ok := req[key]; ok {
					entry.Quantity += contributed
				} else {
					req[key] = &RequiredIngredient{Name: name, Quantity: contributed, Unit: unit}
				}
			}
		}
	}
	return req
}

// ListFromShortfall turns a shortfall aggregate into shopping list items,
// unchecked, in stable key order.
func ListFromShortfall(shortfall Required, planID string) *List {
	list := &List{PlanID: planID}
	for _, key := range shortfall.SortedKeys() {
		entry := shortfall[key]
		list.Items = append(list.Items, Item{
			Text:     entry.Name,
			Quantity: entry.Quantity,
			Unit:     entry.Unit,
		})
	}
	return list
}

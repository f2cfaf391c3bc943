package shopping

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pantry-planner/internal/planner"
	"pantry-planner/internal/recipe"
	"pantry-planner/internal/units"
)

func amt(v float64) *float64 { return &v }

func mealWith(recipes ...*recipe.Recipe) planner.Meal {
	return planner.Meal{Recipes: recipes}
}

func TestAggregateEmptyPlan(t *testing.T) {
	assert.Empty(t, AggregatePlanIngredients(nil, 2))
	assert.Empty(t, AggregatePlanIngredients([]planner.Meal{}, 2))
}

func TestAggregateScalesByServings(t *testing.T) {
	// One recipe for 2 servings, planned for 4 people: everything doubles.
	r := &recipe.Recipe{
		ID:       "1",
		Servings: 2,
		Ingredients: []recipe.Ingredient{
			{Name: "Rice", Amount: amt(200), Unit: "g"},
		},
	}

	req := AggregatePlanIngredients([]planner.Meal{mealWith(r)}, 4)
	require.Len(t, req, 1)

	entry := req[units.IngredientKey("Rice", "g")]
	require.NotNil(t, entry)
	assert.Equal(t, "Rice", entry.Name)
	assert.Equal(t, 400.0, entry.Quantity)
	assert.Equal(t, "g", entry.Unit)
}

func TestAggregateMergesNormalizedKeys(t *testing.T) {
	a := &recipe.Recipe{Servings: 1, Ingredients: []recipe.Ingredient{
		{Name: "Olive Oil", Amount: amt(2), Unit: "Tablespoons"},
	}}
	b := &recipe.Recipe{Servings: 1, Ingredients: []recipe.Ingredient{
		{Name: " olive oil ", Amount: amt(1), Unit: "tbsp"},
	}}

	req := AggregatePlanIngredients([]planner.Meal{mealWith(a, b)}, 1)
	require.Len(t, req, 1)

	entry := req[units.IngredientKey("olive oil", "tbsp")]
	require.NotNil(t, entry)
	assert.Equal(t, 3.0, entry.Quantity)
	// First-seen spelling wins for display.
	assert.Equal(t, "Olive Oil", entry.Name)
	assert.Equal(t, "Tablespoons", entry.Unit)
}

func TestAggregateUnitMismatchStaysSeparate(t *testing.T) {
	r := &recipe.Recipe{Servings: 1, Ingredients: []recipe.Ingredient{
		{Name: "flour", Amount: amt(500), Unit: "g"},
		{Name: "flour", Amount: amt(0.5), Unit: "kg"},
	}}

	req := AggregatePlanIngredients([]planner.Meal{mealWith(r)}, 1)
	assert.Len(t, req, 2, "no unit conversion: g and kg stay separate entries")
}

func TestAggregateSkipsAndDefaults(t *testing.T) {
	r := &recipe.Recipe{Servings: 2, Ingredients: []recipe.Ingredient{
		{Name: "", Original: ""},                  // skipped: nothing to show
		{Name: "", Original: " a pinch of salt "}, // falls back to original text
		{Name: "basil", Amount: nil},              // no amount: counts as 1
	}}

	req := AggregatePlanIngredients([]planner.Meal{mealWith(r)}, 4)
	require.Len(t, req, 2)

	salt := req[units.IngredientKey("a pinch of salt", "")]
	require.NotNil(t, salt)
	assert.Equal(t, "a pinch of salt", salt.Name)
	assert.Equal(t, 2.0, salt.Quantity, "1 x scale(4/2)")

	basil := req[units.IngredientKey("basil", "")]
	require.NotNil(t, basil)
	assert.Equal(t, 2.0, basil.Quantity)
}

func TestAggregateHonorsMealPlanScale(t *testing.T) {
	r := &recipe.Recipe{Servings: 2, MealPlanScale: 3, Ingredients: []recipe.Ingredient{
		{Name: "rice", Amount: amt(100), Unit: "g"},
	}}

	req := AggregatePlanIngredients([]planner.Meal{mealWith(r)}, 4)
	entry := req[units.IngredientKey("rice", "g")]
	require.NotNil(t, entry)
	assert.Equal(t, 300.0, entry.Quantity, "explicit meal scale overrides the servings ratio")
}

func TestAggregateAdditivity(t *testing.T) {
	mealA := mealWith(&recipe.Recipe{Servings: 1, Ingredients: []recipe.Ingredient{
		{Name: "rice", Amount: amt(100), Unit: "g"},
		{Name: "beans", Amount: amt(1), Unit: "cup"},
	}})
	mealB := mealWith(&recipe.Recipe{Servings: 1, Ingredients: []recipe.Ingredient{
		{Name: "rice", Amount: amt(50), Unit: "g"},
	}})

	separateA := AggregatePlanIngredients([]planner.Meal{mealA}, 2)
	separateB := AggregatePlanIngredients([]planner.Meal{mealB}, 2)
	together := AggregatePlanIngredients([]planner.Meal{mealA, mealB}, 2)

	for key, entry := range together {
		var sum float64
		if e, ok := separateA[key]; ok {
			sum += e.Quantity
		}
		if e, ok := separateB[key]; ok {
			sum += e.Quantity
		}
		assert.InDelta(t, entry.Quantity, sum, 1e-9, "key %s", key)
	}
}

func TestListFromShortfall(t *testing.T) {
	shortfall := Required{
		"rice|g":   {Name: "Rice", Quantity: 400, Unit: "g"},
		"basil|":   {Name: "basil", Quantity: 2, Unit: ""},
		"milk|ml":  {Name: "Milk", Quantity: 250, Unit: "ml"},
	}

	list := ListFromShortfall(shortfall, "plan-1")
	assert.Equal(t, "plan-1", list.PlanID)
	require.Len(t, list.Items, 3)

	// Stable key order.
	assert.Equal(t, "basil", list.Items[0].Text)
	assert.Equal(t, "Milk", list.Items[1].Text)
	assert.Equal(t, "Rice", list.Items[2].Text)

	for _, item := range list.Items {
		assert.False(t, item.InStock, "new list items start unchecked")
	}
}

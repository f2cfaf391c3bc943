package planner

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pantry-planner/internal/profile"
	"pantry-planner/internal/recipe"
)

func testRecipe(id string, calories float64, likes int, ingredients ...string) *recipe.Recipe {
	r := &recipe.Recipe{ID: id, Title: "Recipe " + id, Likes: likes}
	if calories > 0 {
		r.Nutrition.Nutrients = []recipe.Nutrient{{Title: "Calories", Amount: calories, Unit: "kcal"}}
	}
	for _, name := range ingredients {
		r.Ingredients = append(r.Ingredients, recipe.Ingredient{Name: name})
	}
	return r
}

func seededSelector(seed int64) *Selector {
	return NewSelector(rand.New(rand.NewSource(seed)))
}

func TestPickForMealEmptyPool(t *testing.T) {
	s := seededSelector(1)
	assert.Empty(t, s.PickForMeal(nil, &profile.Profile{}, 500, nil))
}

func TestPickForMealCap(t *testing.T) {
	var pool []*recipe.Recipe
	for i := 0; i < 10; i++ {
		pool = append(pool, testRecipe(fmt.Sprintf("r%d", i), 400, 0, "rice"))
	}

	s := seededSelector(2)
	picked := s.PickForMeal(pool, &profile.Profile{}, 500, nil)
	assert.Len(t, picked, maxRecipesPerMeal)

	// Distinct recipes: a draw removes its candidate from the pool.
	seen := map[string]bool{}
	for _, r := range picked {
		assert.False(t, seen[r.ID], "recipe %s drawn twice", r.ID)
		seen[r.ID] = true
	}
}

func TestPickForMealAllergenFilter(t *testing.T) {
	pool := []*recipe.Recipe{
		testRecipe("1", 400, 0, "peanut butter", "bread"),
		testRecipe("2", 400, 0, "roasted peanuts"),
	}
	prof := &profile.Profile{AllergensText: "peanut; shellfish"}

	s := seededSelector(3)
	assert.Empty(t, s.PickForMeal(pool, prof, 500, nil), "allergen filter must exclude every candidate")

	// The substring also matches free-text original lines.
	withOriginal := []*recipe.Recipe{{ID: "3", Ingredients: []recipe.Ingredient{{Original: "2 tbsp Peanut oil"}}}}
	assert.Empty(t, s.PickForMeal(withOriginal, prof, 500, nil))
}

func TestPickForMealReadyTimeFilter(t *testing.T) {
	quick := testRecipe("quick", 400, 0, "rice")
	quick.ReadyInMinutes = 20
	slow := testRecipe("slow", 400, 0, "beans")
	slow.ReadyInMinutes = 90
	untimed := testRecipe("untimed", 400, 0, "eggs")

	prof := &profile.Profile{MaxReadyMinutes: 30}
	s := seededSelector(4)

	picked := s.PickForMeal([]*recipe.Recipe{quick, slow, untimed}, prof, 500, nil)
	require.Len(t, picked, 2)
	for _, r := range picked {
		assert.NotEqual(t, "slow", r.ID, "over-limit recipe must be filtered")
	}
}

func TestPickForMealDiversity(t *testing.T) {
	a := testRecipe("a", 400, 0, "rice")
	b := testRecipe("b", 400, 0, "beans")
	noID := testRecipe("", 400, 0, "eggs")

	s := seededSelector(5)

	t.Run("PrefersUnused", func(t *testing.T) {
		picked := s.PickForMeal([]*recipe.Recipe{a, b, noID}, &profile.Profile{}, 500, map[string]bool{"a": true})
		require.Len(t, picked, 2)
		for _, r := range picked {
			assert.NotEqual(t, "a", r.ID)
		}
	})

	t.Run("FallsBackWhenAllUsed", func(t *testing.T) {
		picked := s.PickForMeal([]*recipe.Recipe{a, b}, &profile.Profile{}, 500, map[string]bool{"a": true, "b": true})
		assert.Len(t, picked, 2, "a fully-used pool is reused rather than left empty")
	})

	t.Run("MissingIDCountsAsUnused", func(t *testing.T) {
		picked := s.PickForMeal([]*recipe.Recipe{a, noID}, &profile.Profile{}, 500, map[string]bool{"a": true})
		require.Len(t, picked, 1)
		assert.Equal(t, "", picked[0].ID)
	})
}

func TestPickForMealFavoriteBias(t *testing.T) {
	fav := testRecipe("fav", 400, 0, "rice")
	other := testRecipe("other", 400, 0, "beans")
	prof := &profile.Profile{FavoriteRecipes: []string{"fav"}}

	s := seededSelector(6)

	favoriteFirst := 0
	const trials = 1000
	for i := 0; i < trials; i++ {
		picked := s.PickForMeal([]*recipe.Recipe{fav, other}, prof, 500, nil)
		require.Len(t, picked, 2)
		if picked[0].ID == "fav" {
			favoriteFirst++
		}
	}

	// The favorites pool is drawn with probability 0.7; allow a generous
	// band around that.
	assert.Greater(t, favoriteFirst, 640)
	assert.Less(t, favoriteFirst, 760)
}

func TestScoreDistance(t *testing.T) {
	withCalories := testRecipe("1", 450, 10)
	assert.Equal(t, 50.0, scoreDistance(withCalories, 500))

	noCalories := testRecipe("2", 0, 25)
	assert.Equal(t, -25.0, scoreDistance(noCalories, 500), "likes fallback when calories are unknown")

	noTarget := testRecipe("3", 450, 8)
	assert.Equal(t, -8.0, scoreDistance(noTarget, 0), "likes fallback when no target is set")
}

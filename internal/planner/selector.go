package planner

import (
	"math"
	"math/rand"
	"strings"
	"time"

	"pantry-planner/internal/profile"
	"pantry-planner/internal/recipe"
)

// A meal holds at most this many recipes.
const maxRecipesPerMeal = 3

// Probability of drawing from the favorites pool when both pools still
// hold candidates.
const favoriteBias = 0.7

// Selector picks recipes for a single meal slot. Randomness comes from an
// injected source so tests can seed it.
type Selector struct {
	rng *rand.Rand
}

// NewSelector creates a Selector. A nil rng gets a time-seeded one.
func NewSelector(rng *rand.Rand) *Selector {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Selector{rng: rng}
}

// candidate is a scored recipe. Distance ranks candidates by closeness to
// the calorie target (or by negative likes when no comparison is
// possible); the draw itself stays uniform within each pool, so distance
// is carried but does not bias selection.
type candidate struct {
	recipe   *recipe.Recipe
	distance float64
	favorite bool
}

// PickForMeal filters the candidate pool by the profile's constraints,
// prefers recipes not already used in the current plan, and draws up to
// three recipes with a favorites-weighted random selection. An empty
// result means no candidate survived filtering.
func (s *Selector) PickForMeal(pool []*recipe.Recipe, prof *profile.Profile, targetCaloriesPerPerson float64, usedIDs map[string]bool) []*recipe.Recipe {
	if len(pool) == 0 {
		return nil
	}

	allowed := filterAllowed(pool, prof)
	if len(allowed) == 0 {
		return nil
	}

	// Plan-wide diversity: prefer recipes not already used, but fall back
	// to the full allowed pool rather than leaving the slot empty.
	if len(usedIDs) > 0 {
		var unused []*recipe.Recipe
		for _, r := range allowed {
			if r.ID == "" || !usedIDs[r.ID] {
				unused = append(unused, r)
			}
		}
		if len(unused) > 0 {
			allowed = unused
		}
	}

	var favorites, others []candidate
	for _, r := range allowed {
		c := candidate{
			recipe:   r,
			distance: scoreDistance(r, targetCaloriesPerPerson),
			favorite: prof.IsFavorite(r.ID),
		}
		if c.favorite {
			favorites = append(favorites, c)
		} else {
			others = append(others, c)
		}
	}

	var picked []*recipe.Recipe
	for len(picked) < maxRecipesPerMeal && (len(favorites) > 0 || len(others) > 0) {
		fromFavorites := len(favorites) > 0
		if fromFavorites && len(others) > 0 {
			fromFavorites = s.rng.Float64() < favoriteBias
		}

		if fromFavorites {
			var c candidate
			c, favorites = drawAt(favorites, s.rng.Intn(len(favorites)))
			picked = append(picked, c.recipe)
		} else {
			var c candidate
			c, others = drawAt(others, s.rng.Intn(len(others)))
			picked = append(picked, c.recipe)
		}
	}
	return picked
}

func drawAt(pool []candidate, i int) (candidate, []candidate) {
	c := pool[i]
	return c, append(pool[:i], pool[i+1:]...)
}

// filterAllowed drops recipes that exceed the profile's ready-time limit
// or whose ingredient text contains an allergen term.
func filterAllowed(pool []*recipe.Recipe, prof *profile.Profile) []*recipe.Recipe {
	var maxReady float64
	var terms []string
	if prof != nil {
		maxReady = prof.MaxReadyMinutes
		terms = prof.AllergenTerms()
	}

	var allowed []*recipe.Recipe
	for _, r := range pool {
		if maxReady > 0 && r.ReadyInMinutes > maxReady {
			continue
		}
		if containsAllergen(r, terms) {
			continue
		}
		allowed = append(allowed, r)
	}
	return allowed
}

func containsAllergen(r *recipe.Recipe, terms []string) bool {
	if len(terms) == 0 {
		return false
	}
	text := r.IngredientText()
	for _, term := range terms {
		if strings.Contains(text, term) {
			return true
		}
	}
	return false
}

// scoreDistance ranks a candidate: absolute distance to the calorie target
// when both sides are known, otherwise negative likes so better-liked
// recipes sort closer.
func scoreDistance(r *recipe.Recipe, targetCaloriesPerPerson float64) float64 {
	calories, ok := r.CaloriesPerServing()
	if ok && targetCaloriesPerPerson > 0 && !math.IsInf(targetCaloriesPerPerson, 0) {
		return math.Abs(calories - targetCaloriesPerPerson)
	}
	return -float64(r.Likes)
}

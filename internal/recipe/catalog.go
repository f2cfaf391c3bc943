package recipe

// Catalog is the session-wide recipe collection. It is loaded once from a
// Source and shared by reference afterwards: the planner reads it and
// stamps MealPlanScale onto chosen recipes, imports append to it, and only
// Replace swaps the whole set. Callers run on a single goroutine, so the
// catalog carries no locking.
type Catalog struct {
	recipes []*Recipe
	byID    map[string]*Recipe
}

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{byID: make(map[string]*Recipe)}
}

// Replace swaps the catalog contents wholesale.
func (c *Catalog) Replace(recipes []*Recipe) {
	c.recipes = recipes
	c.byID = make(map[string]*Recipe, len(recipes))
	for _, r := range recipes {
		if r.ID != "" {
			c.byID[r.ID] = r
		}
	}
}

// Add appends a recipe to the catalog.
func (c *Catalog) Add(r *Recipe) {
	c.recipes = append(c.recipes, r)
	if r.ID != "" {
		c.byID[r.ID] = r
	}
}

// All returns the shared recipe list. Callers must not reorder or mutate
// the slice itself.
func (c *Catalog) All() []*Recipe {
	return c.recipes
}

// ByID looks a recipe up by identifier. Returns nil when absent.
func (c *Catalog) ByID(id string) *Recipe {
	return c.byID[id]
}

// Len reports the number of recipes loaded.
func (c *Catalog) Len() int {
	return len(c.recipes)
}

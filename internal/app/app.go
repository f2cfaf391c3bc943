// Package app wires the application together and exposes the high-level
// operations the command line drives: catalog loading, plan generation,
// shopping list building, pantry reconciliation and data export.
package app

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"pantry-planner/internal/config"
	"pantry-planner/internal/database"
	"pantry-planner/internal/pantry"
	"pantry-planner/internal/planner"
	"pantry-planner/internal/profile"
	"pantry-planner/internal/recipe"
	"pantry-planner/internal/shopping"
	"pantry-planner/internal/storage"
	"pantry-planner/internal/units"
)

// defaultMealNames label the first meals of a day; slots past the list
// fall back to a numbered name.
var defaultMealNames = []string{"Breakfast", "Lunch", "Dinner"}

// App holds the application's dependencies.
type App struct {
	cfg *config.Config
	log *zap.Logger

	db        *database.DB
	source    recipe.Source
	catalog   *recipe.Catalog
	importer  *recipe.Importer
	generator *planner.Generator

	profileRepo  *profile.Repository
	planRepo     *planner.Repository
	shoppingRepo *shopping.Repository
	pantryRepo   *pantry.Repository
	snapshots    *storage.SnapshotStore
}

// New builds the full application: database with migrations applied, the
// recipe source (remote or bundled mock, wrapped in a cache), repositories
// and the plan generator.
func New(cfg *config.Config, log *zap.Logger) (*App, error) {
	db, err := database.New(cfg.DatabasePath(), log)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	var source recipe.Source
	if cfg.RecipeAPI.UseMock {
		mock, err := recipe.NewMockSource()
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to load bundled recipes: %w", err)
		}
		source = mock
		log.Info("using bundled recipe dataset")
	} else {
		source = recipe.NewAPIClient(cfg.RecipeAPI.BaseURL, cfg.RecipeAPI.APIKey, cfg.RecipeAPI.Timeout, log)
	}
	source = recipe.NewCachedSource(source, cfg.CacheTTL, log)

	snapshots, err := storage.NewSnapshotStore(cfg.DataDir)
	if err != nil {
		db.Close()
		return nil, err
	}

	return &App{
		cfg:          cfg,
		log:          log,
		db:           db,
		source:       source,
		catalog:      recipe.NewCatalog(),
		importer:     recipe.NewImporter(log),
		generator:    planner.NewGenerator(planner.NewSelector(nil), log),
		profileRepo:  profile.NewRepository(db.SQL),
		planRepo:     planner.NewRepository(db.SQL),
		shoppingRepo: shopping.NewRepository(db.SQL),
		pantryRepo:   pantry.NewRepository(db.SQL, log),
		snapshots:    snapshots,
	}, nil
}

// Close releases the database.
func (a *App) Close() error {
	return a.db.Close()
}

// Catalog exposes the in-memory recipe catalog.
func (a *App) Catalog() *recipe.Catalog {
	return a.catalog
}

// Profile loads the stored profile, falling back to defaults.
func (a *App) Profile(ctx context.Context) (*profile.Profile, error) {
	return a.profileRepo.Load(ctx)
}

// SaveProfile persists the profile.
func (a *App) SaveProfile(ctx context.Context, p *profile.Profile) error {
	return a.profileRepo.Save(ctx, p)
}

// Plans returns the most recent stored meal plans.
func (a *App) Plans(ctx context.Context, limit int) ([]*planner.MealPlan, error) {
	return a.planRepo.ListRecent(ctx, limit)
}

// Plan returns one stored meal plan, or nil when the id is unknown.
func (a *App) Plan(ctx context.Context, id string) (*planner.MealPlan, error) {
	return a.planRepo.Get(ctx, id)
}

// DeletePlan removes a stored plan along with its shopping list.
func (a *App) DeletePlan(ctx context.Context, id string) error {
	list, err := a.shoppingRepo.GetByPlanID(ctx, id)
	if err != nil {
		return err
	}
	if list != nil {
		if err := a.shoppingRepo.Delete(ctx, list.ID); err != nil {
			return err
		}
	}
	return a.planRepo.Delete(ctx, id)
}

// PantryItems loads the pantry inventory.
func (a *App) PantryItems(ctx context.Context) ([]*pantry.Item, error) {
	return a.pantryRepo.Load(ctx)
}

// SavePantry persists the pantry inventory wholesale.
func (a *App) SavePantry(ctx context.Context, items []*pantry.Item) error {
	return a.pantryRepo.Save(ctx, items)
}

// LoadCatalog fills the catalog from the recipe source, honoring the
// profile's diet and ready-time limits in the query. This is the only
// operation that can block on the network.
func (a *App) LoadCatalog(ctx context.Context, text string, number int) error {
	prof, err := a.profileRepo.Load(ctx)
	if err != nil {
		return err
	}

	q := recipe.Query{
		Text:            text,
		Diet:            prof.DietType,
		MaxReadyMinutes: int(prof.MaxReadyMinutes),
		Number:          number,
	}
	results, err := a.source.Search(ctx, q)
	if err != nil {
		return fmt.Errorf("failed to search recipes: %w", err)
	}

	a.catalog.Replace(results)
	a.log.Info("catalog loaded", zap.Int("recipes", a.catalog.Len()))
	return nil
}

// ImportRecipeFromURL scrapes a recipe page, adds the result to the
// catalog and returns it.
func (a *App) ImportRecipeFromURL(ctx context.Context, url string) (*recipe.Recipe, error) {
	rec, err := a.importer.FromURL(ctx, url)
	if err != nil {
		return nil, err
	}
	a.catalog.Add(rec)
	return rec, nil
}

// GeneratePlan builds a meal plan from the catalog and the stored
// profile, persists it and returns it. Days of zero falls back to one.
func (a *App) GeneratePlan(ctx context.Context, name string, days int) (*planner.MealPlan, error) {
	prof, err := a.profileRepo.Load(ctx)
	if err != nil {
		return nil, err
	}
	if a.catalog.Len() == 0 {
		return nil, fmt.Errorf("recipe catalog is empty, load or import recipes first")
	}

	snapshot, err := json.Marshal(prof)
	if err != nil {
		return nil, fmt.Errorf("failed to snapshot profile: %w", err)
	}

	req := planner.PlanRequest{
		Profile:         prof,
		ProfileSnapshot: snapshot,
		Recipes:         a.catalog.All(),
		Slots:           planSlots(prof),
		Days:            days,
		MealsPerDay:     prof.MealsPerDay,
		PeopleCount:     prof.PeopleCount,
		MealNames:       defaultMealNames,
		PlanName:        name,
	}
	plan := a.generator.Generate(req)
	if plan == nil {
		return nil, fmt.Errorf("no plan could be generated from the current catalog")
	}

	if err := a.planRepo.Save(ctx, plan); err != nil {
		return nil, fmt.Errorf("failed to save plan: %w", err)
	}
	return plan, nil
}

// planSlots derives the flat per-meal per-person calorie grid from the
// profile. An explicitly stored grid of the right size wins; otherwise
// every slot gets the per-day total divided across the day's meals.
func planSlots(prof *profile.Profile) []*float64 {
	mealsPerDay := prof.MealsPerDay
	peopleCount := prof.PeopleCount
	if mealsPerDay <= 0 || peopleCount <= 0 {
		return nil
	}

	want := mealsPerDay * peopleCount
	if len(prof.CalorieSlots) == want {
		return prof.CalorieSlots
	}

	if prof.CaloriesPerPersonPerDay <= 0 {
		return make([]*float64, want)
	}
	perMeal := prof.CaloriesPerPersonPerDay / float64(mealsPerDay)
	slots := make([]*float64, want)
	for i := range slots {
		v := perMeal
		slots[i] = &v
	}
	return slots
}

// BuildShoppingList aggregates the plan's ingredient needs, subtracts the
// pantry and persists the resulting list. A plan fully covered by the
// pantry yields an empty list.
func (a *App) BuildShoppingList(ctx context.Context, planID string) (*shopping.List, error) {
	plan, required, err := a.planRequirements(ctx, planID)
	if err != nil {
		return nil, err
	}

	items, err := a.pantryRepo.Load(ctx)
	if err != nil {
		return nil, err
	}
	shortfall := pantry.Shortfall(required, pantry.Totals(items))

	list := shopping.ListFromShortfall(shortfall, plan.ID)
	if err := a.shoppingRepo.Save(ctx, list); err != nil {
		return nil, fmt.Errorf("failed to save shopping list: %w", err)
	}
	a.log.Info("shopping list built",
		zap.String("planId", plan.ID),
		zap.Int("items", len(list.Items)))
	return list, nil
}

// SaveShoppingList persists the list, typically after check/uncheck
// edits.
func (a *App) SaveShoppingList(ctx context.Context, list *shopping.List) error {
	return a.shoppingRepo.Save(ctx, list)
}

// ShoppingListForPlan returns the latest stored list for a plan, or nil.
func (a *App) ShoppingListForPlan(ctx context.Context, planID string) (*shopping.List, error) {
	return a.shoppingRepo.GetByPlanID(ctx, planID)
}

// PantryCoversPlan reports whether the pantry fully covers the plan's
// aggregated needs.
func (a *App) PantryCoversPlan(ctx context.Context, planID string) (bool, error) {
	_, required, err := a.planRequirements(ctx, planID)
	if err != nil {
		return false, err
	}
	items, err := a.pantryRepo.Load(ctx)
	if err != nil {
		return false, err
	}
	return pantry.CoversAll(required, pantry.Totals(items)), nil
}

// ConsumeFromPantry deducts the plan's aggregated needs from the pantry
// and persists the result. It refuses to run unless the pantry covers the
// plan completely.
func (a *App) ConsumeFromPantry(ctx context.Context, planID string) error {
	_, required, err := a.planRequirements(ctx, planID)
	if err != nil {
		return err
	}

	items, err := a.pantryRepo.Load(ctx)
	if err != nil {
		return err
	}
	if !pantry.CoversAll(required, pantry.Totals(items)) {
		return fmt.Errorf("pantry does not cover plan %s, build a shopping list first", planID)
	}

	pantry.ConsumeForPlan(required, items)
	if err := a.pantryRepo.Save(ctx, items); err != nil {
		return fmt.Errorf("failed to save pantry after consumption: %w", err)
	}
	return nil
}

// TransferPurchased moves a list's checked items into the pantry, merging
// quantities on matching name and unit, and removes them from the list.
func (a *App) TransferPurchased(ctx context.Context, listID string) error {
	list, err := a.shoppingRepo.Get(ctx, listID)
	if err != nil {
		return err
	}
	if list == nil {
		return fmt.Errorf("shopping list %s not found", listID)
	}

	items, err := a.pantryRepo.Load(ctx)
	if err != nil {
		return err
	}

	byKey := make(map[string]*pantry.Item, len(items))
	for _, it := range items {
		if it.InStock {
			byKey[units.IngredientKey(it.Name, it.Unit)] = it
		}
	}

	remaining := list.Items[:0]
	transferred := 0
	for _, line := range list.Items {
		if !line.InStock {
			remaining = append(remaining, line)
			continue
		}
		key := units.IngredientKey(line.Text, line.Unit)
		if existing, ok := byKey[key]; ok {
			existing.Quantity += line.Quantity
		} else {
			added := &pantry.Item{
				Name:     line.Text,
				InStock:  true,
				Quantity: line.Quantity,
				Unit:     line.Unit,
			}
			items = append(items, added)
			byKey[key] = added
		}
		transferred++
	}
	if transferred == 0 {
		return fmt.Errorf("no checked items on list %s", listID)
	}
	list.Items = remaining

	if err := a.pantryRepo.Save(ctx, items); err != nil {
		return fmt.Errorf("failed to save pantry: %w", err)
	}
	if err := a.shoppingRepo.Save(ctx, list); err != nil {
		return fmt.Errorf("failed to save shopping list: %w", err)
	}
	a.log.Info("transferred purchases to pantry",
		zap.String("listId", listID),
		zap.Int("items", transferred))
	return nil
}

// planRequirements loads a plan and aggregates its scaled ingredient
// needs, using the profile's people count for recipes without a stamped
// scale.
func (a *App) planRequirements(ctx context.Context, planID string) (*planner.MealPlan, shopping.Required, error) {
	plan, err := a.planRepo.Get(ctx, planID)
	if err != nil {
		return nil, nil, err
	}
	if plan == nil {
		return nil, nil, fmt.Errorf("meal plan %s not found", planID)
	}

	prof, err := a.profileRepo.Load(ctx)
	if err != nil {
		return nil, nil, err
	}
	peopleCount := float64(prof.PeopleCount)
	if peopleCount <= 0 {
		peopleCount = 1
	}
	return plan, shopping.AggregatePlanIngredients(plan.Meals, peopleCount), nil
}

// ExportData writes a snapshot of everything stored and returns the file
// path.
func (a *App) ExportData(ctx context.Context) (string, error) {
	prof, err := a.profileRepo.Load(ctx)
	if err != nil {
		return "", err
	}
	items, err := a.pantryRepo.Load(ctx)
	if err != nil {
		return "", err
	}
	plans, err := a.planRepo.ListRecent(ctx, 100)
	if err != nil {
		return "", err
	}

	snap := &storage.Snapshot{Profile: prof, Pantry: items, Plans: plans}
	for _, plan := range plans {
		list, err := a.shoppingRepo.GetByPlanID(ctx, plan.ID)
		if err != nil {
			return "", err
		}
		if list != nil {
			snap.Lists = append(snap.Lists, list)
		}
	}
	return a.snapshots.Write(snap)
}

// ImportData restores a snapshot file into the database, overwriting the
// profile and pantry and upserting plans and lists by id.
func (a *App) ImportData(ctx context.Context, path string) error {
	snap, err := a.snapshots.Read(path)
	if err != nil {
		return err
	}

	if snap.Profile != nil {
		if err := a.profileRepo.Save(ctx, snap.Profile); err != nil {
			return fmt.Errorf("failed to restore profile: %w", err)
		}
	}
	if err := a.pantryRepo.Save(ctx, snap.Pantry); err != nil {
		return fmt.Errorf("failed to restore pantry: %w", err)
	}
	for _, plan := range snap.Plans {
		if err := a.planRepo.Save(ctx, plan); err != nil {
			return fmt.Errorf("failed to restore plan %s: %w", plan.ID, err)
		}
	}
	for _, list := range snap.Lists {
		if err := a.shoppingRepo.Save(ctx, list); err != nil {
			return fmt.Errorf("failed to restore shopping list %s: %w", list.ID, err)
		}
	}
	a.log.Info("snapshot imported",
		zap.String("path", path),
		zap.Int("plans", len(snap.Plans)),
		zap.Int("pantryItems", len(snap.Pantry)))
	return nil
}

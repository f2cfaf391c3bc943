package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"pantry-planner/internal/app"
	"pantry-planner/internal/config"
	"pantry-planner/internal/logging"
	"pantry-planner/internal/pantry"
	"pantry-planner/internal/planner"
	"pantry-planner/internal/shopping"
	"pantry-planner/internal/units"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logger := logging.New(cfg.LogLevel, cfg.LogFormat)
	defer logger.Sync()

	application, err := app.New(cfg, logger)
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}
	defer application.Close()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "plan":
		runPlan(ctx, application, os.Args[2:])
	case "shopping":
		runShopping(ctx, application, os.Args[2:])
	case "pantry":
		runPantry(ctx, application, os.Args[2:])
	case "recipes":
		runRecipes(ctx, application, os.Args[2:])
	case "profile":
		runProfile(ctx, application, os.Args[2:])
	case "export":
		path, err := application.ExportData(ctx)
		if err != nil {
			log.Fatalf("Export failed: %v", err)
		}
		fmt.Printf("Exported snapshot to %s\n", path)
	case "import":
		if len(os.Args) < 3 {
			log.Fatalf("Usage: planner import <file>")
		}
		if err := application.ImportData(ctx, os.Args[2]); err != nil {
			log.Fatalf("Import failed: %v", err)
		}
		fmt.Println("Snapshot imported.")
	default:
		fmt.Printf("Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func runPlan(ctx context.Context, application *app.App, args []string) {
	if len(args) < 1 {
		log.Fatalf("Usage: planner plan <generate|list|show|delete>")
	}
	switch args[0] {
	case "generate":
		cmd := flag.NewFlagSet("plan generate", flag.ExitOnError)
		name := cmd.String("name", "", "Plan name")
		days := cmd.Int("days", 1, "Number of days to plan")
		search := cmd.String("search", "", "Catalog search text")
		number := cmd.Int("number", 0, "Maximum recipes to load")
		cmd.Parse(args[1:])

		if err := application.LoadCatalog(ctx, *search, *number); err != nil {
			log.Fatalf("Failed to load recipe catalog: %v", err)
		}
		plan, err := application.GeneratePlan(ctx, *name, *days)
		if err != nil {
			log.Fatalf("Plan generation failed: %v", err)
		}
		printPlan(plan)
	case "list":
		plans, err := application.Plans(ctx, 20)
		if err != nil {
			log.Fatalf("Failed to list plans: %v", err)
		}
		if len(plans) == 0 {
			fmt.Println("No meal plans stored yet.")
			return
		}
		for _, p := range plans {
			name := p.Name
			if name == "" {
				name = "(unnamed)"
			}
			fmt.Printf("%s  %s  %d days, %d meals/day  %s\n",
				p.ID, p.CreatedAt.Format("2006-01-02"), p.Days, p.MealsPerDay, name)
		}
	case "show":
		if len(args) < 2 {
			log.Fatalf("Usage: planner plan show <id>")
		}
		plan, err := application.Plan(ctx, args[1])
		if err != nil {
			log.Fatalf("Failed to load plan: %v", err)
		}
		if plan == nil {
			log.Fatalf("Plan %s not found", args[1])
		}
		printPlan(plan)
	case "delete":
		if len(args) < 2 {
			log.Fatalf("Usage: planner plan delete <id>")
		}
		if err := application.DeletePlan(ctx, args[1]); err != nil {
			log.Fatalf("Failed to delete plan: %v", err)
		}
		fmt.Println("Plan deleted.")
	default:
		log.Fatalf("Unknown plan subcommand: %s", args[0])
	}
}

func runShopping(ctx context.Context, application *app.App, args []string) {
	if len(args) < 1 {
		log.Fatalf("Usage: planner shopping <build|show|check|transfer>")
	}
	switch args[0] {
	case "build":
		if len(args) < 2 {
			log.Fatalf("Usage: planner shopping build <plan-id>")
		}
		list, err := application.BuildShoppingList(ctx, args[1])
		if err != nil {
			log.Fatalf("Failed to build shopping list: %v", err)
		}
		printList(list)
	case "show":
		if len(args) < 2 {
			log.Fatalf("Usage: planner shopping show <plan-id>")
		}
		list, err := application.ShoppingListForPlan(ctx, args[1])
		if err != nil {
			log.Fatalf("Failed to load shopping list: %v", err)
		}
		if list == nil {
			log.Fatalf("No shopping list for plan %s", args[1])
		}
		printList(list)
	case "check":
		if len(args) < 2 {
			log.Fatalf("Usage: planner shopping check <plan-id> [item-text...]")
		}
		list, err := application.ShoppingListForPlan(ctx, args[1])
		if err != nil {
			log.Fatalf("Failed to load shopping list: %v", err)
		}
		if list == nil {
			log.Fatalf("No shopping list for plan %s", args[1])
		}
		checkItems(list, args[2:])
		if err := application.SaveShoppingList(ctx, list); err != nil {
			log.Fatalf("Failed to save shopping list: %v", err)
		}
		printList(list)
	case "transfer":
		if len(args) < 2 {
			log.Fatalf("Usage: planner shopping transfer <list-id>")
		}
		if err := application.TransferPurchased(ctx, args[1]); err != nil {
			log.Fatalf("Transfer failed: %v", err)
		}
		fmt.Println("Checked items moved to the pantry.")
	default:
		log.Fatalf("Unknown shopping subcommand: %s", args[0])
	}
}

func runPantry(ctx context.Context, application *app.App, args []string) {
	if len(args) < 1 {
		log.Fatalf("Usage: planner pantry <list|add|update|remove|consume>")
	}
	switch args[0] {
	case "list":
		items, err := application.PantryItems(ctx)
		if err != nil {
			log.Fatalf("Failed to load pantry: %v", err)
		}
		if len(items) == 0 {
			fmt.Println("Pantry is empty.")
			return
		}
		for _, it := range items {
			state := "out of stock"
			if it.InStock {
				state = "in stock"
			}
			fmt.Printf("- %s %s %s (%s)\n",
				units.FormatScaledAmount(it.Quantity), it.Unit, it.Name, state)
		}
	case "add":
		cmd := flag.NewFlagSet("pantry add", flag.ExitOnError)
		name := cmd.String("name", "", "Ingredient name")
		quantity := cmd.Float64("quantity", 0, "Quantity on hand")
		unit := cmd.String("unit", "", "Unit of measure")
		cmd.Parse(args[1:])
		if *name == "" {
			log.Fatalf("Usage: planner pantry add -name <name> [-quantity N] [-unit u]")
		}

		items, err := application.PantryItems(ctx)
		if err != nil {
			log.Fatalf("Failed to load pantry: %v", err)
		}
		items = append(items, &pantry.Item{
			Name:     *name,
			InStock:  true,
			Quantity: *quantity,
			Unit:     *unit,
		})
		if err := application.SavePantry(ctx, items); err != nil {
			log.Fatalf("Failed to save pantry: %v", err)
		}
		fmt.Printf("Added %s to the pantry.\n", *name)
	case "update":
		cmd := flag.NewFlagSet("pantry update", flag.ExitOnError)
		name := cmd.String("name", "", "Ingredient name")
		quantity := cmd.Float64("quantity", -1, "New quantity")
		stock := cmd.String("stock", "", "Set stock state: in or out")
		cmd.Parse(args[1:])
		if *name == "" {
			log.Fatalf("Usage: planner pantry update -name <name> [-quantity N] [-stock in|out]")
		}

		items, err := application.PantryItems(ctx)
		if err != nil {
			log.Fatalf("Failed to load pantry: %v", err)
		}
		updated := false
		for _, it := range items {
			if units.NormalizeName(it.Name) != units.NormalizeName(*name) {
				continue
			}
			if *quantity >= 0 {
				it.Quantity = *quantity
			}
			switch *stock {
			case "in":
				it.InStock = true
			case "out":
				it.InStock = false
			}
			updated = true
		}
		if !updated {
			log.Fatalf("No pantry item named %q", *name)
		}
		if err := application.SavePantry(ctx, items); err != nil {
			log.Fatalf("Failed to save pantry: %v", err)
		}
		fmt.Printf("Updated %s.\n", *name)
	case "remove":
		if len(args) < 2 {
			log.Fatalf("Usage: planner pantry remove <name>")
		}
		items, err := application.PantryItems(ctx)
		if err != nil {
			log.Fatalf("Failed to load pantry: %v", err)
		}
		kept := items[:0]
		for _, it := range items {
			if units.NormalizeName(it.Name) != units.NormalizeName(args[1]) {
				kept = append(kept, it)
			}
		}
		if len(kept) == len(items) {
			log.Fatalf("No pantry item named %q", args[1])
		}
		if err := application.SavePantry(ctx, kept); err != nil {
			log.Fatalf("Failed to save pantry: %v", err)
		}
		fmt.Printf("Removed %s from the pantry.\n", args[1])
	case "consume":
		if len(args) < 2 {
			log.Fatalf("Usage: planner pantry consume <plan-id>")
		}
		if err := application.ConsumeFromPantry(ctx, args[1]); err != nil {
			log.Fatalf("Consume failed: %v", err)
		}
		fmt.Println("Plan ingredients deducted from the pantry.")
	default:
		log.Fatalf("Unknown pantry subcommand: %s", args[0])
	}
}

func runRecipes(ctx context.Context, application *app.App, args []string) {
	if len(args) < 1 {
		log.Fatalf("Usage: planner recipes <load|import>")
	}
	switch args[0] {
	case "load":
		cmd := flag.NewFlagSet("recipes load", flag.ExitOnError)
		search := cmd.String("search", "", "Search text")
		number := cmd.Int("number", 0, "Maximum recipes to load")
		cmd.Parse(args[1:])

		if err := application.LoadCatalog(ctx, *search, *number); err != nil {
			log.Fatalf("Failed to load recipe catalog: %v", err)
		}
		for _, r := range application.Catalog().All() {
			cal := ""
			if perServing, ok := r.CaloriesPerServing(); ok {
				cal = fmt.Sprintf("  %.0f kcal/serving", perServing)
			}
			fmt.Printf("%s  %s%s\n", r.ID, r.Title, cal)
		}
	case "import":
		if len(args) < 2 {
			log.Fatalf("Usage: planner recipes import <url>")
		}
		rec, err := application.ImportRecipeFromURL(ctx, args[1])
		if err != nil {
			log.Fatalf("Import failed: %v", err)
		}
		fmt.Printf("Imported %q with %d ingredients.\n", rec.Title, len(rec.Ingredients))
	default:
		log.Fatalf("Unknown recipes subcommand: %s", args[0])
	}
}

func runProfile(ctx context.Context, application *app.App, args []string) {
	if len(args) < 1 {
		log.Fatalf("Usage: planner profile <show|set>")
	}
	switch args[0] {
	case "show":
		prof, err := application.Profile(ctx)
		if err != nil {
			log.Fatalf("Failed to load profile: %v", err)
		}
		fmt.Printf("Diet:             %s\n", orDash(prof.DietType))
		fmt.Printf("Allergens:        %s\n", orDash(prof.AllergensText))
		fmt.Printf("Max ready time:   %s\n", orDash(minutesText(prof.MaxReadyMinutes)))
		fmt.Printf("People:           %d\n", prof.PeopleCount)
		fmt.Printf("Meals per day:    %d\n", prof.MealsPerDay)
		fmt.Printf("Calories per day: %.0f\n", prof.CaloriesPerPersonPerDay)
		if len(prof.FavoriteRecipes) > 0 {
			fmt.Printf("Favorites:        %s\n", strings.Join(prof.FavoriteRecipes, ", "))
		}
	case "set":
		cmd := flag.NewFlagSet("profile set", flag.ExitOnError)
		diet := cmd.String("diet", "", "Diet type (vegetarian, vegan, gluten free, ...)")
		allergens := cmd.String("allergens", "", "Comma-separated allergen terms")
		maxReady := cmd.Float64("max-ready", -1, "Maximum recipe ready time in minutes")
		people := cmd.Int("people", 0, "People to plan for")
		meals := cmd.Int("meals", 0, "Meals per day")
		calories := cmd.Float64("calories", -1, "Calories per person per day")
		favorite := cmd.String("favorite", "", "Recipe id to mark as favorite")
		unfavorite := cmd.String("unfavorite", "", "Recipe id to unmark")
		cmd.Parse(args[1:])

		prof, err := application.Profile(ctx)
		if err != nil {
			log.Fatalf("Failed to load profile: %v", err)
		}
		if *diet != "" {
			prof.DietType = *diet
		}
		if *allergens != "" {
			prof.AllergensText = *allergens
		}
		if *maxReady >= 0 {
			prof.MaxReadyMinutes = *maxReady
		}
		if *people > 0 {
			prof.PeopleCount = *people
		}
		if *meals > 0 {
			prof.MealsPerDay = *meals
		}
		if *calories >= 0 {
			prof.CaloriesPerPersonPerDay = *calories
		}
		if *favorite != "" {
			prof.AddFavorite(*favorite)
		}
		if *unfavorite != "" {
			prof.RemoveFavorite(*unfavorite)
		}
		if err := application.SaveProfile(ctx, prof); err != nil {
			log.Fatalf("Failed to save profile: %v", err)
		}
		fmt.Println("Profile saved.")
	default:
		log.Fatalf("Unknown profile subcommand: %s", args[0])
	}
}

// checkItems toggles items whose text matches one of the given terms, or
// every item when no terms are given.
func checkItems(list *shopping.List, terms []string) {
	for i := range list.Items {
		if len(terms) == 0 {
			list.Items[i].InStock = true
			continue
		}
		for _, term := range terms {
			if strings.EqualFold(strings.TrimSpace(term), strings.TrimSpace(list.Items[i].Text)) {
				list.Items[i].InStock = !list.Items[i].InStock
			}
		}
	}
}

func printPlan(plan *planner.MealPlan) {
	name := plan.Name
	if name == "" {
		name = "(unnamed)"
	}
	fmt.Printf("Plan %s  %s\n", plan.ID, name)
	for _, meal := range plan.Meals {
		fmt.Printf("  Day %d, %s:\n", meal.DayIndex+1, meal.Name)
		for _, r := range meal.Recipes {
			scale := ""
			if r.MealPlanScale > 0 && r.MealPlanScale != 1 {
				scale = fmt.Sprintf(" (x%s)", strconv.FormatFloat(r.MealPlanScale, 'f', -1, 64))
			}
			fmt.Printf("    - %s%s\n", r.Title, scale)
		}
	}
}

func printList(list *shopping.List) {
	if len(list.Items) == 0 {
		fmt.Println("Nothing to buy, the pantry covers this plan.")
		return
	}
	fmt.Printf("Shopping list %s\n", list.ID)
	for _, item := range list.Items {
		mark := " "
		if item.InStock {
			mark = "x"
		}
		qty := units.FormatScaledAmount(item.Quantity)
		line := strings.TrimSpace(strings.Join([]string{qty, item.Unit, item.Text}, " "))
		fmt.Printf("  [%s] %s\n", mark, line)
	}
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

func minutesText(v float64) string {
	if v <= 0 {
		return ""
	}
	return fmt.Sprintf("%.0f minutes", v)
}

func printUsage() {
	fmt.Println("Usage: planner <command> [arguments]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  plan generate|list|show|delete")
	fmt.Println("                              Generate and inspect meal plans")
	fmt.Println("  shopping build|show|check|transfer")
	fmt.Println("                              Build and manage shopping lists")
	fmt.Println("  pantry list|add|update|remove|consume")
	fmt.Println("                              Manage the pantry inventory")
	fmt.Println("  recipes load|import         Load the catalog or import a recipe URL")
	fmt.Println("  profile show|set            Inspect and update preferences")
	fmt.Println("  export                      Write a JSON snapshot of all data")
	fmt.Println("  import <file>               Restore a JSON snapshot")
}

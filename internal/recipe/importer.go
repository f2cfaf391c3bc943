package recipe

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"pantry-planner/internal/units"
)

// Importer fetches a recipe page and extracts a Recipe from its
// schema.org/Recipe JSON-LD block.
type Importer struct {
	client *http.Client
	log    *zap.Logger
}

// NewImporter creates an Importer with a bounded fetch timeout.
func NewImporter(log *zap.Logger) *Importer {
	return &Importer{
		client: &http.Client{Timeout: 15 * time.Second},
		log:    log,
	}
}

// jsonLDRecipe mirrors the subset of schema.org/Recipe the importer reads.
type jsonLDRecipe struct {
	Type        interface{} `json:"@type"`
	Name        string      `json:"name"`
	Yield       interface{} `json:"recipeYield"`
	TotalTime   string      `json:"totalTime"`
	Ingredients []string    `json:"recipeIngredient"`
	Nutrition   struct {
		Calories string `json:"calories"`
	} `json:"nutrition"`
}

// FromURL fetches the page at url and parses its recipe markup.
func (im *Importer) FromURL(ctx context.Context, url string) (*Recipe, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", url, err)
	}

	resp, err := im.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch recipe page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch recipe page: status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse recipe page: %w", err)
	}

	rec, err := im.FromDocument(doc)
	if err != nil {
		return nil, err
	}
	rec.SourceURL = url

	im.log.Info("imported recipe",
		zap.String("title", rec.Title),
		zap.Int("ingredients", len(rec.Ingredients)),
	)
	return rec, nil
}

// FromDocument extracts a Recipe from an already-parsed HTML document.
func (im *Importer) FromDocument(doc *goquery.Document) (*Recipe, error) {
	var found *jsonLDRecipe

	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if ld := decodeRecipeLD(s.Text()); ld != nil {
			found = ld
			return false
		}
		return true
	})

	if found == nil {
		return nil, fmt.Errorf("page carries no schema.org Recipe markup")
	}
	if strings.TrimSpace(found.Name) == "" {
		return nil, fmt.Errorf("recipe markup has no name")
	}

	rec := &Recipe{
		Title:          found.Name,
		Servings:       parseYield(found.Yield),
		ReadyInMinutes: parseISOMinutes(found.TotalTime),
	}
	for _, line := range found.Ingredients {
		if strings.TrimSpace(line) == "" {
			continue
		}
		rec.Ingredients = append(rec.Ingredients, parseIngredientLine(line))
	}
	if cal := parseLeadingNumber(found.Nutrition.Calories); cal > 0 {
		rec.Nutrition.Nutrients = append(rec.Nutrition.Nutrients, Nutrient{
			Title:  "Calories",
			Amount: cal,
			Unit:   "kcal",
		})
	}
	return rec, nil
}

// decodeRecipeLD unmarshals a JSON-LD script body and digs out a Recipe
// node, whether it is the top-level object, an array element or a @graph
// member.
func decodeRecipeLD(raw string) *jsonLDRecipe {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	var node json.RawMessage
	if err := json.Unmarshal([]byte(raw), &node); err != nil {
		return nil
	}
	return findRecipeNode(node)
}

func findRecipeNode(node json.RawMessage) *jsonLDRecipe {
	trimmed := strings.TrimSpace(string(node))
	if strings.HasPrefix(trimmed, "[") {
		var items []json.RawMessage
		if err := json.Unmarshal(node, &items); err != nil {
			return nil
		}
		for _, item := range items {
			if ld := findRecipeNode(item); ld != nil {
				return ld
			}
		}
		return nil
	}

	var ld jsonLDRecipe
	if err := json.Unmarshal(node, &ld); err != nil {
		return nil
	}
	if isRecipeType(ld.Type) {
		return &ld
	}

	var wrapper struct {
		Graph []json.RawMessage `json:"@graph"`
	}
	if err := json.Unmarshal(node, &wrapper); err == nil {
		for _, item := range wrapper.Graph {
			if found := findRecipeNode(item); found != nil {
				return found
			}
		}
	}
	return nil
}

func isRecipeType(t interface{}) bool {
	switch v := t.(type) {
	case string:
		return v == "Recipe"
	case []interface{}:
		for _, item := range v {
			if s, ok := item.(string); ok && s == "Recipe" {
				return true
			}
		}
	}
	return false
}

var leadingNumberRe = regexp.MustCompile(`\d+(?:\.\d+)?`)

func parseYield(y interface{}) float64 {
	switch v := y.(type) {
	case float64:
		return v
	case string:
		return parseLeadingNumber(v)
	case []interface{}:
		for _, item := range v {
			if n := parseYield(item); n > 0 {
				return n
			}
		}
	}
	return 0
}

func parseLeadingNumber(s string) float64 {
	m := leadingNumberRe.FindString(s)
	if m == "" {
		return 0
	}
	n, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0
	}
	return n
}

// parseISOMinutes reads an ISO 8601 duration such as "PT1H30M" into
// minutes. Unparseable input yields 0, meaning "unknown".
func parseISOMinutes(iso string) float64 {
	iso = strings.ToUpper(strings.TrimSpace(iso))
	if !strings.HasPrefix(iso, "PT") {
		return 0
	}
	rest := iso[2:]

	var minutes float64
	for _, spec := range []struct {
		suffix string
		factor float64
	}{{"H", 60}, {"M", 1}, {"S", 1.0 / 60}} {
		idx := strings.Index(rest, spec.suffix)
		if idx < 0 {
			continue
		}
		n, err := strconv.ParseFloat(rest[:idx], 64)
		if err != nil {
			return 0
		}
		minutes += n * spec.factor
		rest = rest[idx+1:]
	}
	return minutes
}

// parseIngredientLine splits a free-text ingredient line such as
// "200 g spaghetti" into amount, unit and name. The full line is always
// kept as the original string, so nothing is lost when the split guesses
// wrong.
func parseIngredientLine(line string) Ingredient {
	ing := Ingredient{Original: strings.TrimSpace(line)}

	fields := strings.Fields(ing.Original)
	if len(fields) == 0 {
		return ing
	}

	amount, ok := parseAmountToken(fields[0])
	if !ok {
		ing.Name = ing.Original
		return ing
	}
	ing.Amount = &amount
	rest := fields[1:]

	if len(rest) > 0 && units.Known(rest[0]) {
		ing.Unit = rest[0]
		rest = rest[1:]
	}
	ing.Name = strings.Join(rest, " ")
	return ing
}

// parseAmountToken understands plain numbers and simple fractions ("1/2").
func parseAmountToken(tok string) (float64, bool) {
	if n, err := strconv.ParseFloat(tok, 64); err == nil {
		return n, true
	}
	parts := strings.SplitN(tok, "/", 2)
	if len(parts) != 2 {
		return 0, false
	}
	num, err1 := strconv.ParseFloat(parts[0], 64)
	den, err2 := strconv.ParseFloat(parts[1], 64)
	if err1 != nil || err2 != nil || den == 0 {
		return 0, false
	}
	return num / den, true
}

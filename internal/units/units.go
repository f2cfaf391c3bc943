// Package units canonicalizes ingredient names and measurement units so
// that quantities coming from different recipes can be summed and matched
// against pantry stock.
package units

import "strings"

// unitSynonyms maps common spellings of a unit to its canonical short form.
// Pieces map to the empty string: a count has no unit.
var unitSynonyms = map[string]string{
	"pcs":         "",
	"piece":       "",
	"pieces":      "",
	"tablespoon":  "tbsp",
	"tablespoons": "tbsp",
	"tbsp":        "tbsp",
	"teaspoon":    "tsp",
	"teaspoons":   "tsp",
	"tsp":         "tsp",
	"ounce":       "oz",
	"ounces":      "oz",
	"oz":          "oz",
	"pound":       "lb",
	"pounds":      "lb",
	"lbs":         "lb",
	"lb":          "lb",
	"gram":        "g",
	"grams":       "g",
	"g":           "g",
	"kilogram":    "kg",
	"kilograms":   "kg",
	"kg":          "kg",
	"milliliter":  "ml",
	"milliliters": "ml",
	"ml":          "ml",
	"liter":       "l",
	"liters":      "l",
	"l":           "l",
	"cup":         "cup",
	"cups":        "cup",
	"clove":       "clove",
	"cloves":      "clove",
}

// NormalizeName canonicalizes an ingredient name for matching: trimmed and
// lowercased. An empty input stays empty.
func NormalizeName(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// NormalizeUnit canonicalizes a unit string. Known synonyms collapse to one
// short form; anything else gets a naive plural strip (trailing "s"). The
// function is idempotent, so already-normalized units pass through unchanged.
func NormalizeUnit(raw string) string {
	u := strings.ToLower(strings.TrimSpace(raw))
	if canonical, ok := unitSynonyms[u]; ok {
		return canonical
	}
	if len(u) > 1 && strings.HasSuffix(u, "s") {
		return u[:len(u)-1]
	}
	return u
}

// Known reports whether the raw string is one of the measurement units the
// synonym table understands. Used by the web importer to split quantity
// tokens from ingredient names.
func Known(raw string) bool {
	_, ok := unitSynonyms[strings.ToLower(strings.TrimSpace(raw))]
	return ok
}

// IngredientKey builds the identity under which ingredient quantities are
// summed and matched against pantry entries. Two ingredients with different
// raw spellings but the same key are the same purchasable item.
//
// Normalization is lossy on purpose: it never converts between units, so
// "500 g" and "0.5 kg" of the same ingredient keep separate keys.
func IngredientKey(name, unit string) string {
	return NormalizeName(name) + "|" + NormalizeUnit(unit)
}

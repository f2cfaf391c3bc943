package pantry

import (
	"math"
	"strings"

	"pantry-planner/internal/shopping"
	"pantry-planner/internal/units"
)

// Tolerance for float accumulation noise: a pantry short by less than this
// counts as covering the need.
const epsilon = 1e-6

// Totals sums in-stock pantry quantities by normalized ingredient key.
// Entries that are out of stock, unnamed or without a positive quantity
// are skipped, so malformed inventory data degrades instead of failing.
func Totals(items []*Item) map[string]float64 {
	totals := make(map[string]float64)
	for _, item := range items {
		if item == nil || !item.InStock {
			continue
		}
		if strings.TrimSpace(item.Name) == "" {
			continue
		}
		if !(item.Quantity > 0) || math.IsInf(item.Quantity, 0) {
			continue
		}
		totals[units.IngredientKey(item.Name, item.Unit)] += item.Quantity
	}
	return totals
}

// Shortfall computes what must still be bought: each required quantity
// minus the matching pantry total. Needs covered within epsilon are
// omitted; fractional remainders are rounded to three decimals so float
// noise never reaches a displayed or stored quantity.
func Shortfall(required shopping.Required, totals map[string]float64) shopping.Required {
	missing := make(shopping.Required)
	for key, entry := range required {
		if !(entry.Quantity > 0) {
			continue
		}
		needed := entry.Quantity - totals[key]
		if needed <= epsilon {
			continue
		}
		if needed != math.Trunc(needed) {
			needed = math.Round(needed*1000) / 1000
		}
		missing[key] = &shopping.RequiredIngredient{
			Name:     entry.Name,
			Quantity: needed,
			Unit:     entry.Unit,
		}
	}
	return missing
}

// CoversAll reports whether the pantry satisfies every required quantity,
// within epsilon.
func CoversAll(required shopping.Required, totals map[string]float64) bool {
	for key, entry := range required {
		if !(entry.Quantity > 0) {
			continue
		}
		if totals[key]+epsilon < entry.Quantity {
			return false
		}
	}
	return true
}

// ConsumeForPlan subtracts the plan's requirements from the inventory in
// place. It is the one core operation allowed to mutate inventory and must
// only be called once CoversAll holds. A single requirement may drain
// several pantry entries sharing a normalized key; any entry emptied to
// within epsilon is clamped to zero and marked out of stock.
func ConsumeForPlan(required shopping.Required, items []*Item) {
	for key, entry := range required {
		if !(entry.Quantity > 0) {
			continue
		}
		remaining := entry.Quantity
		for _, item := range items {
			if remaining <= epsilon {
				break
			}
			if item == nil || !item.InStock || item.Quantity <= 0 {
				continue
			}
			if units.IngredientKey(item.Name, item.Unit) != key {
				continue
			}

			take := math.Min(item.Quantity, remaining)
			item.Quantity -= take
			remaining -= take

			if item.Quantity <= epsilon {
				item.Quantity = 0
				item.InStock = false
			}
		}
	}
}

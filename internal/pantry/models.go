// Package pantry tracks household inventory and reconciles it against a
// meal plan's aggregated ingredient needs.
package pantry

// Item is one pantry inventory entry. Selected and PartialQuantity are
// UI-side selection state carried through persistence; the reconciliation
// algorithms only consult the full Quantity of in-stock items.
type Item struct {
	Name            string  `json:"name"`
	InStock         bool    `json:"inStock"`
	Quantity        float64 `json:"quantity"`
	Unit            string  `json:"unit,omitempty"`
	Selected        bool    `json:"selected,omitempty"`
	PartialQuantity float64 `json:"partialQuantity,omitempty"`
}

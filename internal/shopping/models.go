// Package shopping aggregates a meal plan's ingredient needs and manages
// the shopping lists derived from them.
package shopping

import "time"

// Item is one shopping list line.
type Item struct {
	Text     string  `json:"text"`
	InStock  bool    `json:"inStock"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit,omitempty"`
}

// List is a persisted shopping list, usually derived from one meal plan's
// shortfall.
type List struct {
	ID        string    `json:"id,omitempty"`
	PlanID    string    `json:"planId,omitempty"`
	Items     []Item    `json:"items"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
}

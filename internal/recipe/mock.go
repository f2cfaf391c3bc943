package recipe

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
)

//go:embed mockdata/recipes.json
var mockFS embed.FS

// MockSource serves the bundled recipe dataset, for offline use and tests.
// It applies the same diet and ready-time constraints the remote API would.
type MockSource struct {
	recipes []*Recipe
}

// NewMockSource loads the embedded dataset.
func NewMockSource() (*MockSource, error) {
	data, err := mockFS.ReadFile("mockdata/recipes.json")
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded recipe dataset: %w", err)
	}

	var payload SearchResponse
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("failed to parse embedded recipe dataset: %w", err)
	}
	return &MockSource{recipes: payload.Results}, nil
}

// Search filters the embedded dataset by the query constraints.
func (m *MockSource) Search(ctx context.Context, q Query) ([]*Recipe, error) {
	var out []*Recipe
	for _, r := range m.recipes {
		if q.MaxReadyMinutes > 0 && r.ReadyInMinutes > float64(q.MaxReadyMinutes) {
			continue
		}
		if !matchesDiet(r, q.Diet) {
			continue
		}
		out = append(out, r)
		if q.Number > 0 && len(out) == q.Number {
			break
		}
	}
	return out, nil
}

func matchesDiet(r *Recipe, diet string) bool {
	switch diet {
	case "vegetarian":
		return r.Vegetarian
	case "vegan":
		return r.Vegan
	case "gluten free":
		return r.GlutenFree
	case "dairy free":
		return r.DairyFree
	default:
		return true
	}
}

package recipe

import "context"

// Query narrows a catalog search. Zero values mean "no constraint".
type Query struct {
	Text            string
	Diet            string
	MaxReadyMinutes int
	Number          int
}

// SearchResponse is the flat wire shape every source resolves to.
type SearchResponse struct {
	Results []*Recipe `json:"results"`
}

// Source resolves a query to a list of recipe records. Implementations:
// the remote API client, the bundled mock dataset and the TTL cache
// wrapper around either.
type Source interface {
	Search(ctx context.Context, q Query) ([]*Recipe, error)
}

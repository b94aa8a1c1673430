package search

import (
	"context"

	"github.com/imhyunho99/bar-menu/internal/auth"
	"github.com/imhyunho99/bar-menu/internal/model"
)

// Redirect is the outcome of a free-text search: where to send the browser,
// plus an optional flash notice to show there.
type Redirect struct {
	Location string
	Notice   *auth.Flash
}

// Suggestion is one live-typing search suggestion.
type Suggestion struct {
	Type     string `json:"type"` // "category" or "menu"
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	URL      string `json:"url"`
}

type UseCase interface {
	// Resolve maps a query to the single best-matching item's location:
	// exact name match first, substring second, main page otherwise.
	Resolve(ctx context.Context, r *model.Restaurant, query string) (Redirect, error)

	// Suggest returns up to 8 suggestions for a partial query.
	Suggest(ctx context.Context, r *model.Restaurant, query string) ([]Suggestion, error)
}

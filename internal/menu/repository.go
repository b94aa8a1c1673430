package menu

import (
	"context"

	"github.com/imhyunho99/bar-menu/internal/model"
)

// Repository is the scoped store accessor for menu items. Every query is
// pre-filtered by restaurant id.
type Repository interface {
	Create(ctx context.Context, item *model.MenuItem) error
	Update(ctx context.Context, item *model.MenuItem) error
	Delete(ctx context.Context, restaurantID, id string) error
	FindByID(ctx context.Context, restaurantID, id string) (*model.MenuItem, error)
	// FindByCategory lists a category's items ordered by priority then name.
	FindByCategory(ctx context.Context, restaurantID, categoryID string, availableOnly bool) ([]model.MenuItem, error)
	// FindAllOrdered lists every item of a restaurant in dashboard order:
	// category priority first, then item priority, then name.
	FindAllOrdered(ctx context.Context, restaurantID string) ([]model.MenuItem, error)
	// FindFirstNameExact returns the best case-insensitive exact name match,
	// or nil. Ties resolve by priority, name, id.
	FindFirstNameExact(ctx context.Context, restaurantID, name string) (*model.MenuItem, error)
	// FindFirstNameContains is the substring fallback with the same tie-break.
	FindFirstNameContains(ctx context.Context, restaurantID, query string) (*model.MenuItem, error)
	// SearchAvailable matches available items on name, localized name or
	// description and returns them with Category attached when present.
	SearchAvailable(ctx context.Context, restaurantID, query string, limit int) ([]model.MenuItem, error)
}

package category

import (
	"context"

	"github.com/imhyunho99/bar-menu/internal/category/dto"
	"github.com/imhyunho99/bar-menu/internal/model"
)

// Repository is the scoped store accessor for categories. Every query is
// pre-filtered by restaurant id; rows of other restaurants are unreachable.
type Repository interface {
	Create(ctx context.Context, category *model.Category) error
	FindByID(ctx context.Context, restaurantID, id string) (*model.Category, error)
	// FindAll lists categories ordered by priority then name.
	FindAll(ctx context.Context, filters *dto.CategoryFilters) ([]model.Category, error)
	// FindAllWithChildren loads the whole forest in one round trip with each
	// category's Children populated, ordered by priority then name.
	FindAllWithChildren(ctx context.Context, restaurantID string) ([]model.Category, error)
	// FindNavigable returns leaf categories holding at least one available
	// item, in the total navigation order (priority, name, id).
	FindNavigable(ctx context.Context, restaurantID string) ([]model.Category, error)
	// SearchByName returns up to limit categories whose name contains the
	// query, case-insensitively.
	SearchByName(ctx context.Context, restaurantID, query string, limit int) ([]model.Category, error)
	Delete(ctx context.Context, restaurantID, id string) error
}

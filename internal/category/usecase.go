package category

import (
	"context"

	"github.com/imhyunho99/bar-menu/internal/auth"
	"github.com/imhyunho99/bar-menu/internal/category/dto"
	"github.com/imhyunho99/bar-menu/internal/model"
)

type UseCase interface {
	CreateCategory(ctx context.Context, scope auth.Scope, input *dto.CreateCategoryInput) (*model.Category, error)
	DeleteCategory(ctx context.Context, scope auth.Scope, id string) error

	GetCategory(ctx context.Context, restaurantID, id string) (*model.Category, error)
	ListCategories(ctx context.Context, filters *dto.CategoryFilters) ([]model.Category, error)
	AllWithChildren(ctx context.Context, restaurantID string) ([]model.Category, error)

	// Breadcrumb returns the root-to-category ancestor path.
	Breadcrumb(ctx context.Context, restaurantID, categoryID string) ([]model.Category, error)
	// Neighbors returns the circular previous/next categories around the
	// given one; both are nil when the category is not part of the ring or
	// is its only member.
	Neighbors(ctx context.Context, restaurantID, categoryID string) (prev, next *model.Category, err error)
}

package restaurant

import (
	"context"

	"github.com/imhyunho99/bar-menu/internal/model"
)

type Repository interface {
	FindBySlug(ctx context.Context, slug string) (*model.Restaurant, error)
	// FindAll returns every restaurant ordered by name.
	FindAll(ctx context.Context) ([]model.Restaurant, error)
	// FindFirst returns the first restaurant in name order, or nil when none
	// exist.
	FindFirst(ctx context.Context) (*model.Restaurant, error)
}

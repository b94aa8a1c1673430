package settings

import (
	"context"

	"github.com/imhyunho99/bar-menu/internal/model"
)

type Repository interface {
	// FindByRestaurant returns the restaurant's settings record, or nil when
	// none has been configured yet.
	FindByRestaurant(ctx context.Context, restaurantID string) (*model.SiteSettings, error)
}

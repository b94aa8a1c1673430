package menu

import (
	"context"

	"github.com/imhyunho99/bar-menu/internal/auth"
	"github.com/imhyunho99/bar-menu/internal/menu/dto"
	"github.com/imhyunho99/bar-menu/internal/model"
)

type UseCase interface {
	CreateMenu(ctx context.Context, scope auth.Scope, input *dto.CreateMenuInput) (*model.MenuItem, error)
	UpdateMenu(ctx context.Context, scope auth.Scope, input *dto.UpdateMenuInput) (*model.MenuItem, error)
	DeleteMenu(ctx context.Context, scope auth.Scope, id string) error

	GetMenu(ctx context.Context, restaurantID, id string) (*model.MenuItem, error)
	AvailableItems(ctx context.Context, restaurantID, categoryID string) ([]model.MenuItem, error)
	DashboardItems(ctx context.Context, restaurantID string) ([]model.MenuItem, error)
}

package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/imhyunho99/bar-menu/internal/auth"
	"github.com/imhyunho99/bar-menu/internal/category"
	"github.com/imhyunho99/bar-menu/internal/menu"
	"github.com/imhyunho99/bar-menu/internal/menu/dto"
	"github.com/imhyunho99/bar-menu/internal/model"
	"github.com/imhyunho99/bar-menu/pkg/logger"
)

type menuUseCase struct {
	repo       menu.Repository
	categories category.Repository
	logger     logger.ZapLogger
}

func NewMenuUseCase(repo menu.Repository, categories category.Repository, log logger.ZapLogger) menu.UseCase {
	return &menuUseCase{
		repo:       repo,
		categories: categories,
		logger:     log,
	}
}

// resolveCategory validates a requested category against the restaurant. A
// missing or cross-restaurant id coerces to nil rather than failing, the
// same leniency the admin forms rely on everywhere.
func (uc *menuUseCase) resolveCategory(ctx context.Context, restaurantID string, categoryID *string) (*string, error) {
	if categoryID == nil || *categoryID == "" {
		return nil, nil
	}
	cat, err := uc.categories.FindByID(ctx, restaurantID, *categoryID)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, nil
	}
	return &cat.ID, nil
}

func (uc *menuUseCase) CreateMenu(ctx context.Context, scope auth.Scope, input *dto.CreateMenuInput) (*model.MenuItem, error) {
	if !scope.Allowed() {
		return nil, auth.ErrForbidden
	}
	restaurantID := scope.StampRestaurantID(input.RestaurantID)

	categoryID, err := uc.resolveCategory(ctx, restaurantID, input.CategoryID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	item := &model.MenuItem{
		BaseModel: model.BaseModel{
			ID:        uuid.New().String(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		RestaurantID: restaurantID,
		CategoryID:   categoryID,
		Name:         input.Name,
		NameEn:       input.NameEn,
		Price:        input.Price,
		Description:  input.Description,
		Notes:        input.Notes,
		IsAvailable:  true,
		Priority:     input.Priority,
		ImageURL:     input.ImageURL,
	}

	if err := uc.repo.Create(ctx, item); err != nil {
		uc.logger.Error("failed to create menu item", zap.Error(err))
		return nil, err
	}
	return item, nil
}

func (uc *menuUseCase) UpdateMenu(ctx context.Context, scope auth.Scope, input *dto.UpdateMenuInput) (*model.MenuItem, error) {
	if !scope.Allowed() || scope.Restaurant == nil {
		return nil, auth.ErrForbidden
	}
	restaurantID := scope.Restaurant.ID

	item, err := uc.repo.FindByID(ctx, restaurantID, input.ID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, nil
	}

	categoryID, err := uc.resolveCategory(ctx, restaurantID, input.CategoryID)
	if err != nil {
		return nil, err
	}

	item.CategoryID = categoryID
	item.Name = input.Name
	item.NameEn = input.NameEn
	item.Price = input.Price
	item.Description = input.Description
	item.Notes = input.Notes
	if input.IsAvailable != nil {
		item.IsAvailable = *input.IsAvailable
	}
	item.Priority = input.Priority
	if input.ImageURL != nil {
		item.ImageURL = input.ImageURL
	}
	item.UpdatedAt = time.Now()

	if err := uc.repo.Update(ctx, item); err != nil {
		uc.logger.Error("failed to update menu item", zap.Error(err))
		return nil, err
	}
	return item, nil
}

func (uc *menuUseCase) DeleteMenu(ctx context.Context, scope auth.Scope, id string) error {
	if !scope.Allowed() || scope.Restaurant == nil {
		return auth.ErrForbidden
	}
	return uc.repo.Delete(ctx, scope.Restaurant.ID, id)
}

func (uc *menuUseCase) GetMenu(ctx context.Context, restaurantID, id string) (*model.MenuItem, error) {
	return uc.repo.FindByID(ctx, restaurantID, id)
}

func (uc *menuUseCase) AvailableItems(ctx context.Context, restaurantID, categoryID string) ([]model.MenuItem, error) {
	return uc.repo.FindByCategory(ctx, restaurantID, categoryID, true)
}

func (uc *menuUseCase) DashboardItems(ctx context.Context, restaurantID string) ([]model.MenuItem, error) {
	return uc.repo.FindAllOrdered(ctx, restaurantID)
}

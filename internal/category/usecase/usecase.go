package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/imhyunho99/bar-menu/internal/auth"
	"github.com/imhyunho99/bar-menu/internal/category"
	"github.com/imhyunho99/bar-menu/internal/category/dto"
	"github.com/imhyunho99/bar-menu/internal/model"
	"github.com/imhyunho99/bar-menu/pkg/logger"
)

type categoryUseCase struct {
	repo   category.Repository
	logger logger.ZapLogger
}

func NewCategoryUseCase(repo category.Repository, log logger.ZapLogger) category.UseCase {
	return &categoryUseCase{
		repo:   repo,
		logger: log,
	}
}

func (uc *categoryUseCase) CreateCategory(ctx context.Context, scope auth.Scope, input *dto.CreateCategoryInput) (*model.Category, error) {
	if !scope.Allowed() {
		return nil, auth.ErrForbidden
	}
	restaurantID := scope.StampRestaurantID(input.RestaurantID)

	// A parent outside the stamped restaurant resolves to no parent at all.
	var parentID *string
	if input.ParentID != nil && *input.ParentID != "" {
		parent, err := uc.repo.FindByID(ctx, restaurantID, *input.ParentID)
		if err != nil {
			return nil, err
		}
		if parent != nil {
			parentID = &parent.ID
		}
	}

	now := time.Now()
	cat := &model.Category{
		BaseModel: model.BaseModel{
			ID:        uuid.New().String(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		RestaurantID: restaurantID,
		ParentID:     parentID,
		Name:         input.Name,
		NameEn:       input.NameEn,
		Priority:     input.Priority,
	}

	if err := uc.repo.Create(ctx, cat); err != nil {
		uc.logger.Error("failed to create category", zap.Error(err))
		return nil, err
	}
	return cat, nil
}

func (uc *categoryUseCase) DeleteCategory(ctx context.Context, scope auth.Scope, id string) error {
	if !scope.Allowed() || scope.Restaurant == nil {
		return auth.ErrForbidden
	}
	return uc.repo.Delete(ctx, scope.Restaurant.ID, id)
}

func (uc *categoryUseCase) GetCategory(ctx context.Context, restaurantID, id string) (*model.Category, error) {
	return uc.repo.FindByID(ctx, restaurantID, id)
}

func (uc *categoryUseCase) ListCategories(ctx context.Context, filters *dto.CategoryFilters) ([]model.Category, error) {
	return uc.repo.FindAll(ctx, filters)
}

func (uc *categoryUseCase) AllWithChildren(ctx context.Context, restaurantID string) ([]model.Category, error) {
	return uc.repo.FindAllWithChildren(ctx, restaurantID)
}

// Breadcrumb walks the parent chain up to the root and returns it reversed.
// The walk is scoped, so a cross-restaurant parent terminates the chain, and
// a visited set keeps a corrupted parent cycle from looping forever.
func (uc *categoryUseCase) Breadcrumb(ctx context.Context, restaurantID, categoryID string) ([]model.Category, error) {
	seen := make(map[string]bool)
	var path []model.Category

	current, err := uc.repo.FindByID(ctx, restaurantID, categoryID)
	if err != nil {
		return nil, err
	}
	for current != nil && !seen[current.ID] {
		seen[current.ID] = true
		path = append([]model.Category{*current}, path...)
		if current.ParentID == nil {
			break
		}
		current, err = uc.repo.FindByID(ctx, restaurantID, *current.ParentID)
		if err != nil {
			return nil, err
		}
	}
	return path, nil
}

func (uc *categoryUseCase) Neighbors(ctx context.Context, restaurantID, categoryID string) (*model.Category, *model.Category, error) {
	ring, err := uc.repo.FindNavigable(ctx, restaurantID)
	if err != nil {
		return nil, nil, err
	}

	currentIndex := -1
	for i, c := range ring {
		if c.ID == categoryID {
			currentIndex = i
			break
		}
	}

	// Absent from the ring (no available items), or alone in it: no links.
	if currentIndex < 0 || len(ring) <= 1 {
		return nil, nil, nil
	}

	n := len(ring)
	prev := ring[(currentIndex-1+n)%n]
	next := ring[(currentIndex+1)%n]
	return &prev, &next, nil
}

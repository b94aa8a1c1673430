package usecase

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/imhyunho99/bar-menu/internal/auth"
	"github.com/imhyunho99/bar-menu/internal/model"
	"github.com/imhyunho99/bar-menu/internal/restaurant"
	"github.com/imhyunho99/bar-menu/pkg/logger"
)

// fallbackSlug is where a superuser lands when no restaurant exists yet.
const fallbackSlug = "bid"

type authUseCase struct {
	repo        auth.Repository
	restaurants restaurant.Repository
	logger      logger.ZapLogger
}

func NewAuthUseCase(repo auth.Repository, restaurants restaurant.Repository, log logger.ZapLogger) auth.UseCase {
	return &authUseCase{
		repo:        repo,
		restaurants: restaurants,
		logger:      log,
	}
}

// Login verifies credentials and computes the post-login redirect slug:
// superusers keep the slug of the page they logged in from (first restaurant
// by name, then a fixed fallback, when absent); bound staff always land on
// their own restaurant regardless of the requested slug.
func (uc *authUseCase) Login(ctx context.Context, username, password, requestedSlug string) (*model.StaffUser, string, error) {
	user, err := uc.repo.FindByUsername(ctx, username)
	if err != nil {
		return nil, "", err
	}
	if user == nil || !user.IsStaff {
		return nil, "", auth.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", auth.ErrInvalidCredentials
	}

	if user.IsSuperuser {
		target := requestedSlug
		if target == "" {
			first, err := uc.restaurants.FindFirst(ctx)
			if err != nil {
				return nil, "", err
			}
			if first != nil {
				target = first.Slug
			} else {
				target = fallbackSlug
			}
		}
		uc.logger.Info("superuser logged in", zap.String("username", username), zap.String("target", target))
		return user, target, nil
	}

	if user.Restaurant != nil {
		uc.logger.Info("staff logged in", zap.String("username", username), zap.String("restaurant", user.Restaurant.Slug))
		return user, user.Restaurant.Slug, nil
	}

	return nil, "", auth.ErrNoManageableRestaurant
}

func (uc *authUseCase) Identity(ctx context.Context, userID string) (*model.StaffUser, error) {
	user, err := uc.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.IsStaff {
		return nil, nil
	}
	return user, nil
}

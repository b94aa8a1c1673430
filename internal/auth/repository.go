package auth

import (
	"context"

	"github.com/imhyunho99/bar-menu/internal/model"
)

type Repository interface {
	FindByUsername(ctx context.Context, username string) (*model.StaffUser, error)
	FindByID(ctx context.Context, id string) (*model.StaffUser, error)
}

package auth

import (
	"context"

	"github.com/imhyunho99/bar-menu/internal/model"
)

type UseCase interface {
	// Login authenticates a staff user and returns the slug of the restaurant
	// dashboard the user must be redirected to.
	Login(ctx context.Context, username, password, requestedSlug string) (*model.StaffUser, string, error)

	// Identity loads a staff user for a session's user id. Returns nil when
	// the account no longer exists or lost its staff flag.
	Identity(ctx context.Context, userID string) (*model.StaffUser, error)
}

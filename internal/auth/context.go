package auth

import (
	"context"

	"github.com/imhyunho99/bar-menu/internal/model"
)

// contextKey is an unexported type for context keys to prevent collisions.
type contextKey int

const (
	restaurantContextKey contextKey = iota
	identityContextKey
	sessionTokenContextKey
)

// NewContextWithRestaurant binds the resolved restaurant to the request
// context. The resolver middleware calls this exactly once per request.
func NewContextWithRestaurant(ctx context.Context, r *model.Restaurant) context.Context {
	return context.WithValue(ctx, restaurantContextKey, r)
}

// RestaurantFromContext returns the bound restaurant, or nil when the route
// carries no slug (reserved paths, index page).
func RestaurantFromContext(ctx context.Context) *model.Restaurant {
	r, _ := ctx.Value(restaurantContextKey).(*model.Restaurant)
	return r
}

func NewContextWithIdentity(ctx context.Context, u *model.StaffUser) context.Context {
	return context.WithValue(ctx, identityContextKey, u)
}

// IdentityFromContext returns the authenticated staff identity, or nil for
// anonymous requests.
func IdentityFromContext(ctx context.Context) *model.StaffUser {
	u, _ := ctx.Value(identityContextKey).(*model.StaffUser)
	return u
}

func NewContextWithSessionToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, sessionTokenContextKey, token)
}

func SessionTokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(sessionTokenContextKey).(string)
	return token
}

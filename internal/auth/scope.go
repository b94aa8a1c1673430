package auth

import (
	"errors"

	"github.com/imhyunho99/bar-menu/internal/model"
)

var (
	// ErrInvalidCredentials is the generic login failure. It deliberately does
	// not distinguish a wrong password from a non-staff account.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrNoManageableRestaurant means the identity authenticated but has
	// neither superuser status nor a restaurant binding.
	ErrNoManageableRestaurant = errors.New("no manageable restaurant for this account")

	// ErrForbidden is returned when a bound identity reaches for another
	// restaurant's data.
	ErrForbidden = errors.New("no permission for this restaurant")
)

type ScopeKind int

const (
	ScopeDenied ScopeKind = iota
	ScopeUnrestricted
	ScopeBoundTo
)

// Scope is the authorization result for one request. It is the single policy
// object every admin handler consults: read filtering, write stamping and
// restaurant-field visibility all derive from it.
type Scope struct {
	Kind ScopeKind

	// Restaurant is the restaurant the scope operates on: the identity's own
	// restaurant for BoundTo, the resolved one for Unrestricted.
	Restaurant *model.Restaurant
}

// ScopeFor computes the scope for an identity against the resolved
// restaurant. Superusers are unrestricted; bound staff must match the
// resolved slug exactly; everything else is denied.
func ScopeFor(identity *model.StaffUser, resolved *model.Restaurant) Scope {
	if identity == nil || !identity.IsStaff {
		return Scope{Kind: ScopeDenied}
	}
	if identity.IsSuperuser {
		return Scope{Kind: ScopeUnrestricted, Restaurant: resolved}
	}
	if identity.Restaurant != nil && resolved != nil && identity.Restaurant.Slug == resolved.Slug {
		return Scope{Kind: ScopeBoundTo, Restaurant: identity.Restaurant}
	}
	return Scope{Kind: ScopeDenied}
}

func (s Scope) Allowed() bool {
	return s.Kind != ScopeDenied
}

// StampRestaurantID returns the restaurant id a new record must carry. A
// bound scope overrides whatever the caller supplied; an unrestricted scope
// takes the supplied value as-is.
func (s Scope) StampRestaurantID(requested string) string {
	if s.Kind == ScopeBoundTo && s.Restaurant != nil {
		return s.Restaurant.ID
	}
	return requested
}

// CanSelectRestaurant reports whether a restaurant-picking field may be
// exposed at all. Bound staff never see one; the value is auto-assigned.
func (s Scope) CanSelectRestaurant() bool {
	return s.Kind == ScopeUnrestricted
}

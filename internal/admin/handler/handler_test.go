package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/imhyunho99/bar-menu/internal/auth"
	authuc "github.com/imhyunho99/bar-menu/internal/auth/usecase"
	categoryuc "github.com/imhyunho99/bar-menu/internal/category/usecase"
	menuuc "github.com/imhyunho99/bar-menu/internal/menu/usecase"
	"github.com/imhyunho99/bar-menu/internal/mocks"
	"github.com/imhyunho99/bar-menu/internal/model"
	"github.com/imhyunho99/bar-menu/internal/restaurant"
	"github.com/imhyunho99/bar-menu/pkg/logger"
)

type fixture struct {
	catalog  *mocks.CatalogStore
	users    *mocks.StaffStore
	sessions *mocks.SessionManager
	mux      *chi.Mux
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	require.NoError(t, err)

	bidID := "r-bid"
	catalog := &mocks.CatalogStore{
		Restaurants: []model.Restaurant{
			{BaseModel: model.BaseModel{ID: "r-bid"}, Slug: "bid", Name: "Bid"},
			{BaseModel: model.BaseModel{ID: "r-cafe"}, Slug: "cafe", Name: "Cafe"},
		},
	}
	users := &mocks.StaffStore{Users: []model.StaffUser{
		{
			BaseModel:    model.BaseModel{ID: "u-bid"},
			Username:     "bidstaff",
			PasswordHash: string(hash),
			IsStaff:      true,
			RestaurantID: &bidID,
			Restaurant:   &model.Restaurant{BaseModel: model.BaseModel{ID: "r-bid"}, Slug: "bid", Name: "Bid"},
		},
		{
			BaseModel:    model.BaseModel{ID: "u-root"},
			Username:     "root",
			PasswordHash: string(hash),
			IsStaff:      true,
			IsSuperuser:  true,
		},
	}}
	sessions := mocks.NewSessionManager()

	log := logger.NewNop()
	restaurants := &mocks.RestaurantStore{Catalog: catalog}
	menus := &mocks.MenuStore{Catalog: catalog}
	h := NewHandler(
		authuc.NewAuthUseCase(users, restaurants, log),
		sessions,
		categoryuc.NewCategoryUseCase(catalog, log),
		menuuc.NewMenuUseCase(menus, catalog, log),
		log,
	)

	mux := chi.NewRouter()
	mux.Route("/{restaurantSlug}/admin", func(r chi.Router) {
		r.Use(restaurant.Resolver(restaurants, log))
		r.Get("/login/", h.LoginPage)
		r.Post("/login/", h.Login)
		r.Group(func(r chi.Router) {
			r.Use(h.RequireStaff)
			r.Post("/logout/", h.Logout)
			r.Get("/dashboard/", h.Dashboard)
			r.Get("/category/add/", h.CategoryForm)
			r.Post("/category/add/", h.AddCategory)
			r.Post("/category/delete/{categoryID}/", h.DeleteCategory)
			r.Get("/menu/add/", h.MenuForm)
			r.Post("/menu/add/", h.AddMenu)
			r.Get("/menu/edit/{menuID}/", h.MenuForm)
			r.Post("/menu/edit/{menuID}/", h.EditMenu)
			r.Post("/menu/delete/{menuID}/", h.DeleteMenu)
		})
	})

	return &fixture{catalog: catalog, users: users, sessions: sessions, mux: mux}
}

// do performs a request carrying the given identity, the way the session
// middleware would attach it.
func (f *fixture) do(t *testing.T, method, path, userID string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	ctx := auth.NewContextWithSessionToken(req.Context(), "tok-test")
	if userID != "" {
		user, err := f.users.FindByID(context.Background(), userID)
		require.NoError(t, err)
		ctx = auth.NewContextWithIdentity(ctx, user)
	}

	rec := httptest.NewRecorder()
	f.mux.ServeHTTP(rec, req.WithContext(ctx))
	return rec
}

func TestAnonymousRedirectsToLogin(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodGet, "/bid/admin/dashboard/", "", nil)
	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/bid/admin/login/", rec.Header().Get("Location"))
}

func TestLoginBoundStaffRedirectsHome(t *testing.T) {
	f := newFixture(t)

	form := url.Values{"username": {"bidstaff"}, "password": {"secret"}}
	rec := f.do(t, http.MethodPost, "/cafe/admin/login/", "", form)

	// Bound staff land on their own dashboard even when logging in from
	// another restaurant's page.
	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/bid/admin/dashboard/", rec.Header().Get("Location"))
	assert.Equal(t, "u-bid", f.sessions.Sessions["tok-test"])
}

func TestLoginSuperuserKeepsSlug(t *testing.T) {
	f := newFixture(t)

	form := url.Values{"username": {"root"}, "password": {"secret"}}
	rec := f.do(t, http.MethodPost, "/cafe/admin/login/", "", form)

	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/cafe/admin/dashboard/", rec.Header().Get("Location"))
}

func TestLoginBadPasswordFlashes(t *testing.T) {
	f := newFixture(t)

	form := url.Values{"username": {"bidstaff"}, "password": {"wrong"}}
	rec := f.do(t, http.MethodPost, "/bid/admin/login/", "", form)

	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/bid/admin/login/", rec.Header().Get("Location"))
	assert.Empty(t, f.sessions.Sessions, "no session on failure")

	flashes := f.sessions.Flashes["tok-test"]
	require.Len(t, flashes, 1)
	assert.Equal(t, auth.FlashError, flashes[0].Level)
}

func TestDashboardForeignRestaurantForbidden(t *testing.T) {
	f := newFixture(t)

	// Staff bound to bid visiting cafe's admin.
	rec := f.do(t, http.MethodGet, "/cafe/admin/dashboard/", "u-bid", nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestDashboardOwnRestaurant(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodGet, "/bid/admin/dashboard/", "u-bid", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSuperuserReachesAnyDashboard(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodGet, "/cafe/admin/dashboard/", "u-root", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAddCategoryStampsOwnRestaurant(t *testing.T) {
	f := newFixture(t)

	// A forged restaurant field must not let bound staff write elsewhere.
	form := url.Values{"name": {"Drinks"}, "priority": {"1"}, "restaurant": {"r-cafe"}}
	rec := f.do(t, http.MethodPost, "/bid/admin/category/add/", "u-bid", form)

	require.Equal(t, http.StatusFound, rec.Code)
	require.Len(t, f.catalog.Categories, 1)
	assert.Equal(t, "r-bid", f.catalog.Categories[0].RestaurantID)
}

func TestAddCategorySuperuserPicksRestaurant(t *testing.T) {
	f := newFixture(t)

	form := url.Values{"name": {"Drinks"}, "restaurant": {"r-cafe"}}
	rec := f.do(t, http.MethodPost, "/bid/admin/category/add/", "u-root", form)

	require.Equal(t, http.StatusFound, rec.Code)
	require.Len(t, f.catalog.Categories, 1)
	assert.Equal(t, "r-cafe", f.catalog.Categories[0].RestaurantID)
}

func TestEditMenuMissingItemIs404(t *testing.T) {
	f := newFixture(t)

	form := url.Values{"name": {"Latte"}}
	rec := f.do(t, http.MethodPost, "/bid/admin/menu/edit/nope/", "u-bid", form)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestEditMenuWithoutAvailabilityFieldKeepsStored(t *testing.T) {
	f := newFixture(t)
	f.catalog.Items = []model.MenuItem{{
		BaseModel:    model.BaseModel{ID: "i-soldout"},
		RestaurantID: "r-bid",
		Name:         "Latte",
		IsAvailable:  false,
	}}

	form := url.Values{"name": {"Latte"}, "price": {"5,000"}, "priority": {"1"}}
	rec := f.do(t, http.MethodPost, "/bid/admin/menu/edit/i-soldout/", "u-bid", form)

	require.Equal(t, http.StatusFound, rec.Code)
	assert.False(t, f.catalog.Items[0].IsAvailable,
		"editing without touching availability must keep the item unavailable")
}

func TestEditMenuAvailabilityToggle(t *testing.T) {
	f := newFixture(t)
	f.catalog.Items = []model.MenuItem{{
		BaseModel:    model.BaseModel{ID: "i-1"},
		RestaurantID: "r-bid",
		Name:         "Latte",
		IsAvailable:  true,
	}}

	form := url.Values{"name": {"Latte"}, "is_available": {"false"}}
	rec := f.do(t, http.MethodPost, "/bid/admin/menu/edit/i-1/", "u-bid", form)

	require.Equal(t, http.StatusFound, rec.Code)
	assert.False(t, f.catalog.Items[0].IsAvailable)
}

func TestDeleteMenuScoped(t *testing.T) {
	f := newFixture(t)
	f.catalog.Items = []model.MenuItem{
		{BaseModel: model.BaseModel{ID: "i-theirs"}, RestaurantID: "r-cafe", Name: "Latte"},
	}

	rec := f.do(t, http.MethodPost, "/bid/admin/menu/delete/i-theirs/", "u-bid", nil)
	require.Equal(t, http.StatusFound, rec.Code)
	assert.Len(t, f.catalog.Items, 1, "foreign row survives a scoped delete")
}

func TestLogoutClearsSession(t *testing.T) {
	f := newFixture(t)
	f.sessions.Sessions["tok-test"] = "u-bid"

	rec := f.do(t, http.MethodPost, "/bid/admin/logout/", "u-bid", nil)
	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/bid/admin/login/", rec.Header().Get("Location"))
	assert.Empty(t, f.sessions.Sessions)
}

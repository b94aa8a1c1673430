package restaurant

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imhyunho99/bar-menu/internal/auth"
	"github.com/imhyunho99/bar-menu/internal/mocks"
	"github.com/imhyunho99/bar-menu/internal/model"
	"github.com/imhyunho99/bar-menu/pkg/logger"
)

func resolveRequest(t *testing.T, repo Repository, path string) (int, *model.Restaurant) {
	t.Helper()

	var bound *model.Restaurant
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		bound = auth.RestaurantFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	mux := chi.NewRouter()
	mux.With(Resolver(repo, logger.NewNop())).Get("/", handler)
	mux.Route("/{restaurantSlug}", func(r chi.Router) {
		r.Use(Resolver(repo, logger.NewNop()))
		r.Get("/", handler)
	})

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec.Code, bound
}

func bidRepo() Repository {
	return &mocks.RestaurantStore{Catalog: &mocks.CatalogStore{
		Restaurants: []model.Restaurant{
			{BaseModel: model.BaseModel{ID: "r-bid"}, Slug: "bid", Name: "Bid"},
		},
	}}
}

func TestResolverBindsKnownSlug(t *testing.T) {
	code, bound := resolveRequest(t, bidRepo(), "/bid/")
	assert.Equal(t, http.StatusOK, code)
	require.NotNil(t, bound)
	assert.Equal(t, "r-bid", bound.ID)
}

func TestResolverUnknownSlugIs404(t *testing.T) {
	code, bound := resolveRequest(t, bidRepo(), "/no-such-bar/")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Nil(t, bound)
}

func TestResolverNoSlugBindsNothing(t *testing.T) {
	code, bound := resolveRequest(t, bidRepo(), "/")
	assert.Equal(t, http.StatusOK, code)
	assert.Nil(t, bound)
}

func TestIsReservedPath(t *testing.T) {
	assert.True(t, isReservedPath("/static/css/site.css"))
	assert.True(t, isReservedPath("/media/latte.jpg"))
	assert.True(t, isReservedPath("/admin/"))
	assert.True(t, isReservedPath("/favicon.ico"))
	assert.False(t, isReservedPath("/bid/"))
	assert.False(t, isReservedPath("/staticky/"))
}

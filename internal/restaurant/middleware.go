package restaurant

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/imhyunho99/bar-menu/internal/auth"
	"github.com/imhyunho99/bar-menu/pkg/logger"
)

// reservedPrefixes bypass restaurant resolution entirely: static assets,
// uploaded media, the internal admin panel and the favicon.
var reservedPrefixes = []string{"/static/", "/media/", "/admin/", "/favicon.ico"}

func isReservedPath(path string) bool {
	for _, prefix := range reservedPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// Resolver is the tenant-resolution middleware. It reads the restaurantSlug
// URL param, loads the restaurant and binds it into the request context
// before any scoped read or write runs. An unknown slug is a terminal 404.
// Routes without a slug (and reserved paths) proceed with no binding.
func Resolver(repo Repository, log logger.ZapLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isReservedPath(r.URL.Path) {
				next.ServeHTTP(w, r.WithContext(auth.NewContextWithRestaurant(r.Context(), nil)))
				return
			}

			slug := chi.URLParam(r, "restaurantSlug")
			if slug == "" {
				next.ServeHTTP(w, r.WithContext(auth.NewContextWithRestaurant(r.Context(), nil)))
				return
			}

			resolved, err := repo.FindBySlug(r.Context(), slug)
			if err != nil {
				log.Error("failed to resolve restaurant", zap.String("slug", slug), zap.Error(err))
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				return
			}
			if resolved == nil {
				http.NotFound(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.NewContextWithRestaurant(r.Context(), resolved)))
		})
	}
}

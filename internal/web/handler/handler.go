package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/imhyunho99/bar-menu/internal/auth"
	"github.com/imhyunho99/bar-menu/internal/category"
	categorydto "github.com/imhyunho99/bar-menu/internal/category/dto"
	"github.com/imhyunho99/bar-menu/internal/menu"
	"github.com/imhyunho99/bar-menu/internal/restaurant"
	"github.com/imhyunho99/bar-menu/internal/search"
	"github.com/imhyunho99/bar-menu/internal/settings"
	"github.com/imhyunho99/bar-menu/pkg/logger"
)

// Handler serves the public browsing surface. Responses are JSON view models;
// template rendering sits outside this service.
type Handler struct {
	restaurants restaurant.Repository
	categories  category.UseCase
	menus       menu.UseCase
	searcher    search.UseCase
	settings    settings.Repository
	sessions    auth.SessionManager
	logger      logger.ZapLogger
}

func NewHandler(
	restaurants restaurant.Repository,
	categories category.UseCase,
	menus menu.UseCase,
	searcher search.UseCase,
	siteSettings settings.Repository,
	sessions auth.SessionManager,
	log logger.ZapLogger,
) *Handler {
	return &Handler{
		restaurants: restaurants,
		categories:  categories,
		menus:       menus,
		searcher:    searcher,
		settings:    siteSettings,
		sessions:    sessions,
		logger:      log,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Index lists every restaurant, name-ordered. The only route with no tenant.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	restaurants, err := h.restaurants.FindAll(r.Context())
	if err != nil {
		h.logger.Error("failed to list restaurants", zap.Error(err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"restaurants": restaurants})
}

// MainPage renders a restaurant's top-level categories plus the side-menu
// forest and pending flash notices.
func (h *Handler) MainPage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	current := auth.RestaurantFromContext(ctx)
	if current == nil {
		http.NotFound(w, r)
		return
	}

	rootFilter := ""
	top, err := h.categories.ListCategories(ctx, &categorydto.CategoryFilters{
		RestaurantID: current.ID,
		ParentID:     &rootFilter,
	})
	if err != nil {
		h.logger.Error("failed to list top categories", zap.Error(err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	all, err := h.categories.AllWithChildren(ctx, current.ID)
	if err != nil {
		h.logger.Error("failed to list categories", zap.Error(err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	siteSettings, err := h.settings.FindByRestaurant(ctx, current.ID)
	if err != nil {
		h.logger.Error("failed to load site settings", zap.Error(err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"restaurant":     current,
		"categories":     top,
		"all_categories": all,
		"site_settings":  siteSettings,
		"messages":       h.popFlashes(r),
	})
}

// CategoryPage branches on whether the category has sub-categories: child
// list for inner nodes, available items plus circular prev/next for leaves.
func (h *Handler) CategoryPage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	current := auth.RestaurantFromContext(ctx)
	if current == nil {
		http.NotFound(w, r)
		return
	}

	categoryID := chi.URLParam(r, "categoryID")
	cat, err := h.categories.GetCategory(ctx, current.ID, categoryID)
	if err != nil {
		h.logger.Error("failed to load category", zap.Error(err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if cat == nil {
		http.NotFound(w, r)
		return
	}

	breadcrumb, err := h.categories.Breadcrumb(ctx, current.ID, cat.ID)
	if err != nil {
		h.logger.Error("failed to build breadcrumb", zap.Error(err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	children, err := h.categories.ListCategories(ctx, &categorydto.CategoryFilters{
		RestaurantID: current.ID,
		ParentID:     &cat.ID,
	})
	if err != nil {
		h.logger.Error("failed to list sub-categories", zap.Error(err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	payload := map[string]any{
		"restaurant": current,
		"category":   cat,
		"breadcrumb": breadcrumb,
		"messages":   h.popFlashes(r),
	}

	if len(children) > 0 {
		payload["categories"] = children
		writeJSON(w, http.StatusOK, payload)
		return
	}

	items, err := h.menus.AvailableItems(ctx, current.ID, cat.ID)
	if err != nil {
		h.logger.Error("failed to list items", zap.Error(err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	prev, next, err := h.categories.Neighbors(ctx, current.ID, cat.ID)
	if err != nil {
		h.logger.Error("failed to compute neighbors", zap.Error(err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	payload["items"] = items
	payload["prev_category"] = prev
	payload["next_category"] = next
	if target := r.URL.Query().Get("target"); target != "" {
		payload["target"] = target
	}
	writeJSON(w, http.StatusOK, payload)
}

// SearchRedirect sends the browser to the best match's listing page, or back
// to the main page with a notice.
func (h *Handler) SearchRedirect(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	current := auth.RestaurantFromContext(ctx)
	if current == nil {
		http.NotFound(w, r)
		return
	}

	redirect, err := h.searcher.Resolve(ctx, current, r.URL.Query().Get("q"))
	if err != nil {
		h.logger.Error("search resolve failed", zap.Error(err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if redirect.Notice != nil {
		h.addFlash(r, *redirect.Notice)
	}
	http.Redirect(w, r, redirect.Location, http.StatusFound)
}

// SearchSuggest returns live-typing suggestions as a JSON array.
func (h *Handler) SearchSuggest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	current := auth.RestaurantFromContext(ctx)
	if current == nil {
		http.NotFound(w, r)
		return
	}

	results, err := h.searcher.Suggest(ctx, current, r.URL.Query().Get("q"))
	if err != nil {
		h.logger.Error("search suggest failed", zap.Error(err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"results": results})
}

func (h *Handler) popFlashes(r *http.Request) []auth.Flash {
	token := auth.SessionTokenFromContext(r.Context())
	if token == "" {
		return nil
	}
	flashes, err := h.sessions.PopFlashes(r.Context(), token)
	if err != nil {
		h.logger.Error("failed to pop flashes", zap.Error(err))
		return nil
	}
	return flashes
}

func (h *Handler) addFlash(r *http.Request, f auth.Flash) {
	token := auth.SessionTokenFromContext(r.Context())
	if token == "" {
		return
	}
	if err := h.sessions.AddFlash(r.Context(), token, f); err != nil {
		h.logger.Error("failed to add flash", zap.Error(err))
	}
}

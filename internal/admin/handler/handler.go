package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/imhyunho99/bar-menu/internal/auth"
	"github.com/imhyunho99/bar-menu/internal/category"
	categorydto "github.com/imhyunho99/bar-menu/internal/category/dto"
	"github.com/imhyunho99/bar-menu/internal/menu"
	menudto "github.com/imhyunho99/bar-menu/internal/menu/dto"
	"github.com/imhyunho99/bar-menu/internal/model"
	"github.com/imhyunho99/bar-menu/pkg/logger"
)

// Handler serves the per-restaurant admin surface. Every mutation first
// computes the request's Scope and refuses to proceed on Denied.
type Handler struct {
	authUC     auth.UseCase
	sessions   auth.SessionManager
	categories category.UseCase
	menus      menu.UseCase
	logger     logger.ZapLogger
}

func NewHandler(
	authUC auth.UseCase,
	sessions auth.SessionManager,
	categories category.UseCase,
	menus menu.UseCase,
	log logger.ZapLogger,
) *Handler {
	return &Handler{
		authUC:     authUC,
		sessions:   sessions,
		categories: categories,
		menus:      menus,
		logger:     log,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func loginURL(slug string) string     { return fmt.Sprintf("/%s/admin/login/", slug) }
func dashboardURL(slug string) string { return fmt.Sprintf("/%s/admin/dashboard/", slug) }

// RequireStaff redirects anonymous requests to the login page.
func (h *Handler) RequireStaff(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if auth.IdentityFromContext(r.Context()) == nil {
			slug := chi.URLParam(r, "restaurantSlug")
			http.Redirect(w, r, loginURL(slug), http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// scope resolves the request's authorization scope, writing the forbidden
// response itself when access is denied.
func (h *Handler) scope(w http.ResponseWriter, r *http.Request) (auth.Scope, bool) {
	identity := auth.IdentityFromContext(r.Context())
	resolved := auth.RestaurantFromContext(r.Context())
	s := auth.ScopeFor(identity, resolved)
	if !s.Allowed() || s.Restaurant == nil {
		http.Error(w, "이 매장에 대한 관리 권한이 없습니다.", http.StatusForbidden)
		return auth.Scope{}, false
	}
	return s, true
}

func (h *Handler) LoginPage(w http.ResponseWriter, r *http.Request) {
	token := auth.SessionTokenFromContext(r.Context())
	flashes, err := h.sessions.PopFlashes(r.Context(), token)
	if err != nil {
		h.logger.Error("failed to pop flashes", zap.Error(err))
	}
	writeJSON(w, http.StatusOK, map[string]any{"messages": flashes})
}

// Login authenticates and applies the redirect policy: superusers land on
// the requested restaurant (or the first one by name), bound staff on their
// own, and failures go back to the login page with a generic notice.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	ctx := r.Context()
	slug := chi.URLParam(r, "restaurantSlug")

	user, targetSlug, err := h.authUC.Login(ctx, r.PostFormValue("username"), r.PostFormValue("password"), slug)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrNoManageableRestaurant):
			h.flash(r, auth.Flash{Level: auth.FlashError, Message: "관리할 수 있는 매장이 없습니다."})
		case errors.Is(err, auth.ErrInvalidCredentials):
			h.flash(r, auth.Flash{Level: auth.FlashError, Message: "아이디 또는 비밀번호가 올바르지 않거나 권한이 없습니다."})
		default:
			h.logger.Error("login failed", zap.Error(err))
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		http.Redirect(w, r, loginURL(slug), http.StatusFound)
		return
	}

	token := auth.SessionTokenFromContext(ctx)
	if err := h.sessions.Login(ctx, token, user.ID); err != nil {
		h.logger.Error("failed to store session", zap.Error(err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, dashboardURL(targetSlug), http.StatusFound)
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	token := auth.SessionTokenFromContext(r.Context())
	if err := h.sessions.Logout(r.Context(), token); err != nil {
		h.logger.Error("failed to delete session", zap.Error(err))
	}
	http.Redirect(w, r, loginURL(chi.URLParam(r, "restaurantSlug")), http.StatusFound)
}

// Dashboard lists the scoped restaurant's categories and items.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	scope, ok := h.scope(w, r)
	if !ok {
		return
	}
	ctx := r.Context()

	categories, err := h.categories.ListCategories(ctx, &categorydto.CategoryFilters{
		RestaurantID: scope.Restaurant.ID,
	})
	if err != nil {
		h.logger.Error("failed to list categories", zap.Error(err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	items, err := h.menus.DashboardItems(ctx, scope.Restaurant.ID)
	if err != nil {
		h.logger.Error("failed to list menu items", zap.Error(err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"restaurant": scope.Restaurant,
		"categories": categories,
		"menu_items": items,
	})
}

// CategoryForm returns the options for the add-category form. The
// restaurant picker is exposed only to unrestricted scopes.
func (h *Handler) CategoryForm(w http.ResponseWriter, r *http.Request) {
	scope, ok := h.scope(w, r)
	if !ok {
		return
	}
	rootFilter := ""
	parents, err := h.categories.ListCategories(r.Context(), &categorydto.CategoryFilters{
		RestaurantID: scope.Restaurant.ID,
		ParentID:     &rootFilter,
	})
	if err != nil {
		h.logger.Error("failed to list parent categories", zap.Error(err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"categories":            parents,
		"can_select_restaurant": scope.CanSelectRestaurant(),
	})
}

func (h *Handler) AddCategory(w http.ResponseWriter, r *http.Request) {
	scope, ok := h.scope(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	input := &categorydto.CreateCategoryInput{
		RestaurantID: formRestaurantID(r, scope),
		Name:         r.PostFormValue("name"),
		NameEn:       r.PostFormValue("name_en"),
		Priority:     formInt(r, "priority"),
	}
	if parent := r.PostFormValue("parent"); parent != "" {
		input.ParentID = &parent
	}

	if _, err := h.categories.CreateCategory(r.Context(), scope, input); err != nil {
		h.logger.Error("failed to create category", zap.Error(err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, dashboardURL(scope.Restaurant.Slug), http.StatusFound)
}

func (h *Handler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	scope, ok := h.scope(w, r)
	if !ok {
		return
	}
	if err := h.categories.DeleteCategory(r.Context(), scope, chi.URLParam(r, "categoryID")); err != nil {
		h.logger.Error("failed to delete category", zap.Error(err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, dashboardURL(scope.Restaurant.Slug), http.StatusFound)
}

// MenuForm returns the options for the add/edit menu form, with the stored
// item attached when editing.
func (h *Handler) MenuForm(w http.ResponseWriter, r *http.Request) {
	scope, ok := h.scope(w, r)
	if !ok {
		return
	}
	ctx := r.Context()

	categories, err := h.categories.ListCategories(ctx, &categorydto.CategoryFilters{
		RestaurantID: scope.Restaurant.ID,
	})
	if err != nil {
		h.logger.Error("failed to list categories", zap.Error(err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	var item *model.MenuItem
	if menuID := chi.URLParam(r, "menuID"); menuID != "" {
		item, err = h.menus.GetMenu(ctx, scope.Restaurant.ID, menuID)
		if err != nil {
			h.logger.Error("failed to load menu item", zap.Error(err))
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		if item == nil {
			http.NotFound(w, r)
			return
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"menu":                  item,
		"categories":            categories,
		"can_select_restaurant": scope.CanSelectRestaurant(),
	})
}

func (h *Handler) AddMenu(w http.ResponseWriter, r *http.Request) {
	scope, ok := h.scope(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	input := &menudto.CreateMenuInput{
		RestaurantID: formRestaurantID(r, scope),
		Name:         r.PostFormValue("name"),
		NameEn:       r.PostFormValue("name_en"),
		Price:        r.PostFormValue("price"),
		Description:  r.PostFormValue("description"),
		Notes:        r.PostFormValue("notes"),
		Priority:     formInt(r, "priority"),
	}
	if categoryID := r.PostFormValue("category"); categoryID != "" {
		input.CategoryID = &categoryID
	}
	if image := r.PostFormValue("image"); image != "" {
		input.ImageURL = &image
	}

	if _, err := h.menus.CreateMenu(r.Context(), scope, input); err != nil {
		h.logger.Error("failed to create menu item", zap.Error(err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, dashboardURL(scope.Restaurant.Slug), http.StatusFound)
}

func (h *Handler) EditMenu(w http.ResponseWriter, r *http.Request) {
	scope, ok := h.scope(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	input := &menudto.UpdateMenuInput{
		ID:          chi.URLParam(r, "menuID"),
		Name:        r.PostFormValue("name"),
		NameEn:      r.PostFormValue("name_en"),
		Price:       r.PostFormValue("price"),
		Description: r.PostFormValue("description"),
		Notes:       r.PostFormValue("notes"),
		Priority:    formInt(r, "priority"),
	}
	// Availability has its own toggle; an edit form that does not carry the
	// field leaves the stored value alone.
	if value := r.PostFormValue("is_available"); value != "" {
		available := value != "false"
		input.IsAvailable = &available
	}
	if categoryID := r.PostFormValue("category"); categoryID != "" {
		input.CategoryID = &categoryID
	}
	if image := r.PostFormValue("image"); image != "" {
		input.ImageURL = &image
	}

	item, err := h.menus.UpdateMenu(r.Context(), scope, input)
	if err != nil {
		h.logger.Error("failed to update menu item", zap.Error(err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if item == nil {
		http.NotFound(w, r)
		return
	}
	http.Redirect(w, r, dashboardURL(scope.Restaurant.Slug), http.StatusFound)
}

func (h *Handler) DeleteMenu(w http.ResponseWriter, r *http.Request) {
	scope, ok := h.scope(w, r)
	if !ok {
		return
	}
	if err := h.menus.DeleteMenu(r.Context(), scope, chi.URLParam(r, "menuID")); err != nil {
		h.logger.Error("failed to delete menu item", zap.Error(err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, dashboardURL(scope.Restaurant.Slug), http.StatusFound)
}

func (h *Handler) flash(r *http.Request, f auth.Flash) {
	token := auth.SessionTokenFromContext(r.Context())
	if token == "" {
		return
	}
	if err := h.sessions.AddFlash(r.Context(), token, f); err != nil {
		h.logger.Error("failed to add flash", zap.Error(err))
	}
}

// formRestaurantID picks the restaurant id a mutation should target. The
// form value only matters for unrestricted scopes; stamping in the usecase
// overrides it for bound staff anyway.
func formRestaurantID(r *http.Request, scope auth.Scope) string {
	if scope.CanSelectRestaurant() {
		if requested := r.PostFormValue("restaurant"); requested != "" {
			return requested
		}
	}
	return scope.Restaurant.ID
}

func formInt(r *http.Request, key string) int {
	value, err := strconv.Atoi(r.PostFormValue(key))
	if err != nil {
		return 0
	}
	return value
}

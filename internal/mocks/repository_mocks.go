// Package mocks holds in-memory repository implementations for tests.
package mocks

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/imhyunho99/bar-menu/internal/auth"
	categorydto "github.com/imhyunho99/bar-menu/internal/category/dto"
	"github.com/imhyunho99/bar-menu/internal/model"
)

// CatalogStore holds a restaurant's fixture data and implements the category
// and settings repository interfaces directly. RestaurantStore and MenuStore
// wrap it to provide the remaining catalog interfaces.
type CatalogStore struct {
	Restaurants []model.Restaurant
	Categories  []model.Category
	Items       []model.MenuItem
	Settings    []model.SiteSettings
}

// RestaurantStore implements restaurant.Repository over a CatalogStore.
// It is a separate type because the restaurant and category interfaces
// both declare a FindAll method.
type RestaurantStore struct {
	Catalog *CatalogStore
}

func (s *RestaurantStore) FindBySlug(_ context.Context, slug string) (*model.Restaurant, error) {
	for i := range s.Catalog.Restaurants {
		if s.Catalog.Restaurants[i].Slug == slug {
			r := s.Catalog.Restaurants[i]
			return &r, nil
		}
	}
	return nil, nil
}

func (s *RestaurantStore) FindAll(_ context.Context) ([]model.Restaurant, error) {
	out := append([]model.Restaurant(nil), s.Catalog.Restaurants...)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *RestaurantStore) FindFirst(ctx context.Context) (*model.Restaurant, error) {
	all, _ := s.FindAll(ctx)
	if len(all) == 0 {
		return nil, nil
	}
	return &all[0], nil
}

// --- category.Repository ---

func sortCategories(cats []model.Category) {
	sort.Slice(cats, func(i, j int) bool {
		if cats[i].Priority != cats[j].Priority {
			return cats[i].Priority < cats[j].Priority
		}
		if cats[i].Name != cats[j].Name {
			return cats[i].Name < cats[j].Name
		}
		return cats[i].ID < cats[j].ID
	})
}

func (s *CatalogStore) Create(_ context.Context, c *model.Category) error {
	s.Categories = append(s.Categories, *c)
	return nil
}

func (s *CatalogStore) FindByID(_ context.Context, restaurantID, id string) (*model.Category, error) {
	for i := range s.Categories {
		if s.Categories[i].ID == id && s.Categories[i].RestaurantID == restaurantID {
			c := s.Categories[i]
			return &c, nil
		}
	}
	return nil, nil
}

func (s *CatalogStore) FindAll(_ context.Context, f *categorydto.CategoryFilters) ([]model.Category, error) {
	var out []model.Category
	for _, c := range s.Categories {
		if c.RestaurantID != f.RestaurantID {
			continue
		}
		if f.ParentID != nil {
			if *f.ParentID == "" {
				if c.ParentID != nil {
					continue
				}
			} else if c.ParentID == nil || *c.ParentID != *f.ParentID {
				continue
			}
		}
		out = append(out, c)
	}
	sortCategories(out)
	return out, nil
}

func (s *CatalogStore) FindAllWithChildren(ctx context.Context, restaurantID string) ([]model.Category, error) {
	flat, _ := s.FindAll(ctx, &categorydto.CategoryFilters{RestaurantID: restaurantID})
	childrenOf := make(map[string][]model.Category)
	for _, c := range flat {
		if c.ParentID != nil {
			childrenOf[*c.ParentID] = append(childrenOf[*c.ParentID], c)
		}
	}
	for i := range flat {
		flat[i].Children = childrenOf[flat[i].ID]
	}
	return flat, nil
}

func (s *CatalogStore) hasChildren(id string) bool {
	for _, c := range s.Categories {
		if c.ParentID != nil && *c.ParentID == id {
			return true
		}
	}
	return false
}

func (s *CatalogStore) hasAvailableItems(restaurantID, categoryID string) bool {
	for _, item := range s.Items {
		if item.RestaurantID == restaurantID && item.IsAvailable &&
			item.CategoryID != nil && *item.CategoryID == categoryID {
			return true
		}
	}
	return false
}

func (s *CatalogStore) FindNavigable(_ context.Context, restaurantID string) ([]model.Category, error) {
	var out []model.Category
	for _, c := range s.Categories {
		if c.RestaurantID != restaurantID {
			continue
		}
		if s.hasChildren(c.ID) || !s.hasAvailableItems(restaurantID, c.ID) {
			continue
		}
		out = append(out, c)
	}
	sortCategories(out)
	return out, nil
}

func (s *CatalogStore) SearchByName(_ context.Context, restaurantID, query string, limit int) ([]model.Category, error) {
	var out []model.Category
	for _, c := range s.Categories {
		if c.RestaurantID == restaurantID &&
			strings.Contains(strings.ToLower(c.Name), strings.ToLower(query)) {
			out = append(out, c)
		}
	}
	sortCategories(out)
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *CatalogStore) Delete(_ context.Context, restaurantID, id string) error {
	kept := s.Categories[:0]
	for _, c := range s.Categories {
		if c.ID == id && c.RestaurantID == restaurantID {
			continue
		}
		kept = append(kept, c)
	}
	s.Categories = kept
	return nil
}

// --- menu.Repository ---

func sortItems(items []model.MenuItem) {
	sort.Slice(items, func(i, j int) bool {
		if items[i].Priority != items[j].Priority {
			return items[i].Priority < items[j].Priority
		}
		if items[i].Name != items[j].Name {
			return items[i].Name < items[j].Name
		}
		return items[i].ID < items[j].ID
	})
}

type MenuStore struct {
	Catalog *CatalogStore
}

func (s *MenuStore) Create(_ context.Context, item *model.MenuItem) error {
	s.Catalog.Items = append(s.Catalog.Items, *item)
	return nil
}

func (s *MenuStore) Update(_ context.Context, item *model.MenuItem) error {
	for i := range s.Catalog.Items {
		if s.Catalog.Items[i].ID == item.ID && s.Catalog.Items[i].RestaurantID == item.RestaurantID {
			s.Catalog.Items[i] = *item
		}
	}
	return nil
}

func (s *MenuStore) Delete(_ context.Context, restaurantID, id string) error {
	kept := s.Catalog.Items[:0]
	for _, item := range s.Catalog.Items {
		if item.ID == id && item.RestaurantID == restaurantID {
			continue
		}
		kept = append(kept, item)
	}
	s.Catalog.Items = kept
	return nil
}

func (s *MenuStore) FindByID(_ context.Context, restaurantID, id string) (*model.MenuItem, error) {
	for i := range s.Catalog.Items {
		if s.Catalog.Items[i].ID == id && s.Catalog.Items[i].RestaurantID == restaurantID {
			item := s.Catalog.Items[i]
			return &item, nil
		}
	}
	return nil, nil
}

func (s *MenuStore) FindByCategory(_ context.Context, restaurantID, categoryID string, availableOnly bool) ([]model.MenuItem, error) {
	var out []model.MenuItem
	for _, item := range s.Catalog.Items {
		if item.RestaurantID != restaurantID {
			continue
		}
		if item.CategoryID == nil || *item.CategoryID != categoryID {
			continue
		}
		if availableOnly && !item.IsAvailable {
			continue
		}
		out = append(out, item)
	}
	sortItems(out)
	return out, nil
}

func (s *MenuStore) FindAllOrdered(_ context.Context, restaurantID string) ([]model.MenuItem, error) {
	categoryPriority := func(item model.MenuItem) int {
		if item.CategoryID == nil {
			return int(^uint(0) >> 1) // uncategorized last
		}
		for _, c := range s.Catalog.Categories {
			if c.ID == *item.CategoryID {
				return c.Priority
			}
		}
		return int(^uint(0) >> 1)
	}

	var out []model.MenuItem
	for _, item := range s.Catalog.Items {
		if item.RestaurantID == restaurantID {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		cpi, cpj := categoryPriority(out[i]), categoryPriority(out[j])
		if cpi != cpj {
			return cpi < cpj
		}
		if out[i].Priority != out[j].Priority {
			return out[i].Priority < out[j].Priority
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (s *MenuStore) findFirst(restaurantID string, match func(model.MenuItem) bool) *model.MenuItem {
	var candidates []model.MenuItem
	for _, item := range s.Catalog.Items {
		if item.RestaurantID == restaurantID && match(item) {
			candidates = append(candidates, item)
		}
	}
	if len(candidates) == 0 {
		return nil
	}
	sortItems(candidates)
	return &candidates[0]
}

func (s *MenuStore) FindFirstNameExact(_ context.Context, restaurantID, name string) (*model.MenuItem, error) {
	return s.findFirst(restaurantID, func(item model.MenuItem) bool {
		return strings.EqualFold(item.Name, name)
	}), nil
}

func (s *MenuStore) FindFirstNameContains(_ context.Context, restaurantID, query string) (*model.MenuItem, error) {
	return s.findFirst(restaurantID, func(item model.MenuItem) bool {
		return strings.Contains(strings.ToLower(item.Name), strings.ToLower(query))
	}), nil
}

func (s *MenuStore) SearchAvailable(ctx context.Context, restaurantID, query string, limit int) ([]model.MenuItem, error) {
	lowered := strings.ToLower(query)
	var out []model.MenuItem
	for _, item := range s.Catalog.Items {
		if item.RestaurantID != restaurantID || !item.IsAvailable {
			continue
		}
		if strings.Contains(strings.ToLower(item.Name), lowered) ||
			strings.Contains(strings.ToLower(item.NameEn), lowered) ||
			strings.Contains(strings.ToLower(item.Description), lowered) {
			out = append(out, item)
		}
	}
	sortItems(out)
	if len(out) > limit {
		out = out[:limit]
	}
	for i := range out {
		if out[i].CategoryID != nil {
			out[i].Category, _ = s.Catalog.FindByID(ctx, restaurantID, *out[i].CategoryID)
		}
	}
	return out, nil
}

// --- settings.Repository ---

func (s *CatalogStore) FindByRestaurant(_ context.Context, restaurantID string) (*model.SiteSettings, error) {
	for i := range s.Settings {
		if s.Settings[i].RestaurantID == restaurantID {
			out := s.Settings[i]
			return &out, nil
		}
	}
	return nil, nil
}

// --- auth.Repository ---

type StaffStore struct {
	Users []model.StaffUser
}

func (s *StaffStore) FindByUsername(_ context.Context, username string) (*model.StaffUser, error) {
	for i := range s.Users {
		if s.Users[i].Username == username {
			u := s.Users[i]
			return &u, nil
		}
	}
	return nil, nil
}

func (s *StaffStore) FindByID(_ context.Context, id string) (*model.StaffUser, error) {
	for i := range s.Users {
		if s.Users[i].ID == id {
			u := s.Users[i]
			return &u, nil
		}
	}
	return nil, nil
}

// --- auth.SessionManager ---

type SessionManager struct {
	Sessions map[string]string
	Flashes  map[string][]auth.Flash
}

func NewSessionManager() *SessionManager {
	return &SessionManager{
		Sessions: make(map[string]string),
		Flashes:  make(map[string][]auth.Flash),
	}
}

func (m *SessionManager) NewToken() string { return uuid.New().String() }

func (m *SessionManager) Login(_ context.Context, token, userID string) error {
	m.Sessions[token] = userID
	return nil
}

func (m *SessionManager) UserID(_ context.Context, token string) (string, error) {
	return m.Sessions[token], nil
}

func (m *SessionManager) Logout(_ context.Context, token string) error {
	delete(m.Sessions, token)
	return nil
}

func (m *SessionManager) AddFlash(_ context.Context, token string, f auth.Flash) error {
	m.Flashes[token] = append(m.Flashes[token], f)
	return nil
}

func (m *SessionManager) PopFlashes(_ context.Context, token string) ([]auth.Flash, error) {
	out := m.Flashes[token]
	delete(m.Flashes, token)
	return out, nil
}

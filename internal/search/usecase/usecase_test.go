package usecase

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imhyunho99/bar-menu/internal/auth"
	"github.com/imhyunho99/bar-menu/internal/mocks"
	"github.com/imhyunho99/bar-menu/internal/model"
	"github.com/imhyunho99/bar-menu/pkg/logger"
)

func strPtr(s string) *string { return &s }

var bid = &model.Restaurant{BaseModel: model.BaseModel{ID: "r-bid"}, Slug: "bid", Name: "Bid"}

func item(id, name string, categoryID *string) model.MenuItem {
	return model.MenuItem{
		BaseModel:    model.BaseModel{ID: id},
		RestaurantID: "r-bid",
		CategoryID:   categoryID,
		Name:         name,
		Price:        "5,000",
		IsAvailable:  true,
	}
}

func newSearch(catalog *mocks.CatalogStore) *searchUseCase {
	menus := &mocks.MenuStore{Catalog: catalog}
	return NewSearchUseCase(menus, catalog, logger.NewNop()).(*searchUseCase)
}

func TestResolveExactMatchBeatsSubstring(t *testing.T) {
	catalog := &mocks.CatalogStore{
		Categories: []model.Category{
			{BaseModel: model.BaseModel{ID: "c-1"}, RestaurantID: "r-bid", Name: "Coffee", Priority: 1},
		},
		Items: []model.MenuItem{
			item("i-iced", "Iced Latte", strPtr("c-1")),
			item("i-latte", "Latte", strPtr("c-1")),
		},
	}
	uc := newSearch(catalog)

	redirect, err := uc.Resolve(context.Background(), bid, "Latte")
	require.NoError(t, err)
	assert.Equal(t, "/bid/category/c-1/?target=i-latte", redirect.Location)
	assert.Nil(t, redirect.Notice)
}

func TestResolveSubstringFallback(t *testing.T) {
	catalog := &mocks.CatalogStore{
		Items: []model.MenuItem{item("i-latte", "Iced Latte", strPtr("c-1"))},
	}
	uc := newSearch(catalog)

	redirect, err := uc.Resolve(context.Background(), bid, "att")
	require.NoError(t, err)
	assert.Equal(t, "/bid/category/c-1/?target=i-latte", redirect.Location)
}

func TestResolveEmptyQueryGoesHome(t *testing.T) {
	uc := newSearch(&mocks.CatalogStore{})

	redirect, err := uc.Resolve(context.Background(), bid, "   ")
	require.NoError(t, err)
	assert.Equal(t, "/bid/", redirect.Location)
	assert.Nil(t, redirect.Notice)
}

func TestResolveNoMatchWarns(t *testing.T) {
	uc := newSearch(&mocks.CatalogStore{})

	redirect, err := uc.Resolve(context.Background(), bid, "없는메뉴")
	require.NoError(t, err)
	assert.Equal(t, "/bid/", redirect.Location)
	require.NotNil(t, redirect.Notice)
	assert.Equal(t, auth.FlashWarning, redirect.Notice.Level)
	assert.Contains(t, redirect.Notice.Message, "없는메뉴")
}

func TestResolveWildcardQueryIsLiteral(t *testing.T) {
	// "%" is an ordinary character here, not a wildcard; with no item name
	// containing it the search must come back empty-handed.
	catalog := &mocks.CatalogStore{
		Items: []model.MenuItem{item("i-1", "Latte", strPtr("c-1"))},
	}
	uc := newSearch(catalog)

	redirect, err := uc.Resolve(context.Background(), bid, "%")
	require.NoError(t, err)
	assert.Equal(t, "/bid/", redirect.Location)
	require.NotNil(t, redirect.Notice)
	assert.Equal(t, auth.FlashWarning, redirect.Notice.Level)
}

func TestResolveUncategorizedMatchInforms(t *testing.T) {
	catalog := &mocks.CatalogStore{
		Items: []model.MenuItem{item("i-1", "Latte", nil)},
	}
	uc := newSearch(catalog)

	redirect, err := uc.Resolve(context.Background(), bid, "Latte")
	require.NoError(t, err)
	assert.Equal(t, "/bid/", redirect.Location)
	require.NotNil(t, redirect.Notice)
	assert.Equal(t, auth.FlashInfo, redirect.Notice.Level)
}

func TestSuggestShortQueryReturnsNothing(t *testing.T) {
	catalog := &mocks.CatalogStore{
		Items: []model.MenuItem{item("i-1", "Latte", nil)},
	}
	uc := newSearch(catalog)

	results, err := uc.Suggest(context.Background(), bid, "L")
	require.NoError(t, err)
	assert.Empty(t, results)

	// Two runes suffice even when they are multi-byte.
	results, err = uc.Suggest(context.Background(), bid, "라떼")
	require.NoError(t, err)
	assert.NotNil(t, results)
}

func TestSuggestMixesCategoriesAndItems(t *testing.T) {
	catalog := &mocks.CatalogStore{
		Categories: []model.Category{
			{BaseModel: model.BaseModel{ID: "c-1"}, RestaurantID: "r-bid", Name: "Latte Bar", Priority: 1},
		},
		Items: []model.MenuItem{item("i-1", "Latte", strPtr("c-1"))},
	}
	uc := newSearch(catalog)

	results, err := uc.Suggest(context.Background(), bid, "Latte")
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, "category", results[0].Type)
	assert.Equal(t, "Latte Bar", results[0].Title)
	assert.Equal(t, "카테고리", results[0].Subtitle)
	assert.Equal(t, "/bid/category/c-1/", results[0].URL)

	assert.Equal(t, "menu", results[1].Type)
	assert.Equal(t, "Latte Bar - ₩5,000", results[1].Subtitle)
	assert.Equal(t, "/bid/category/c-1/#menu-i-1", results[1].URL)
}

func TestSuggestUncategorizedItem(t *testing.T) {
	catalog := &mocks.CatalogStore{
		Items: []model.MenuItem{item("i-1", "Latte", nil)},
	}
	uc := newSearch(catalog)

	results, err := uc.Suggest(context.Background(), bid, "Latte")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "메뉴 - ₩5,000", results[0].Subtitle)
	assert.Equal(t, "/bid/#menu-i-1", results[0].URL)
}

func TestSuggestCapsAtEight(t *testing.T) {
	catalog := &mocks.CatalogStore{}
	for i := 0; i < 6; i++ {
		catalog.Categories = append(catalog.Categories, model.Category{
			BaseModel:    model.BaseModel{ID: fmt.Sprintf("c-%d", i)},
			RestaurantID: "r-bid",
			Name:         fmt.Sprintf("Latte %d", i),
			Priority:     i,
		})
		catalog.Items = append(catalog.Items, item(fmt.Sprintf("i-%d", i), fmt.Sprintf("Latte %d", i), nil))
	}
	uc := newSearch(catalog)

	results, err := uc.Suggest(context.Background(), bid, "Latte")
	require.NoError(t, err)
	require.Len(t, results, 8, "5 categories + 5 items trimmed to 8")
	for _, s := range results[:5] {
		assert.Equal(t, "category", s.Type)
	}
	for _, s := range results[5:] {
		assert.Equal(t, "menu", s.Type)
	}
}

func TestFormatPrice(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"5000", "₩5000"},
		{"12,000", "₩12,000"},
		{"1.5", "₩1.5"},
		{"시가", "시가"},
		{"1.2.3", "1.2.3"},
		{"", ""},
		{"5,0.00", "₩5,0.00"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, formatPrice(tc.raw), "raw=%q", tc.raw)
	}
}

package usecase

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/imhyunho99/bar-menu/internal/auth"
	"github.com/imhyunho99/bar-menu/internal/category"
	"github.com/imhyunho99/bar-menu/internal/menu"
	"github.com/imhyunho99/bar-menu/internal/model"
	"github.com/imhyunho99/bar-menu/internal/search"
	"github.com/imhyunho99/bar-menu/pkg/logger"
)

const (
	minSuggestQueryLen  = 2
	maxSuggestPerKind   = 5
	maxSuggestionsTotal = 8
)

type searchUseCase struct {
	items      menu.Repository
	categories category.Repository
	logger     logger.ZapLogger
}

func NewSearchUseCase(items menu.Repository, categories category.Repository, log logger.ZapLogger) search.UseCase {
	return &searchUseCase{
		items:      items,
		categories: categories,
		logger:     log,
	}
}

func mainPageURL(r *model.Restaurant) string {
	return fmt.Sprintf("/%s/", r.Slug)
}

func (uc *searchUseCase) Resolve(ctx context.Context, r *model.Restaurant, query string) (search.Redirect, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return search.Redirect{Location: mainPageURL(r)}, nil
	}

	item, err := uc.items.FindFirstNameExact(ctx, r.ID, query)
	if err != nil {
		return search.Redirect{}, err
	}
	if item == nil {
		item, err = uc.items.FindFirstNameContains(ctx, r.ID, query)
		if err != nil {
			return search.Redirect{}, err
		}
	}

	if item == nil {
		return search.Redirect{
			Location: mainPageURL(r),
			Notice: &auth.Flash{
				Level:   auth.FlashWarning,
				Message: fmt.Sprintf("'%s'에 해당하는 메뉴를 찾을 수 없습니다.", query),
			},
		}, nil
	}

	if item.CategoryID == nil {
		return search.Redirect{
			Location: mainPageURL(r),
			Notice: &auth.Flash{
				Level:   auth.FlashInfo,
				Message: fmt.Sprintf("'%s' 메뉴를 찾았지만, 카테고리에 속해있지 않습니다.", item.Name),
			},
		}, nil
	}

	return search.Redirect{
		Location: fmt.Sprintf("/%s/category/%s/?target=%s", r.Slug, *item.CategoryID, item.ID),
	}, nil
}

func (uc *searchUseCase) Suggest(ctx context.Context, r *model.Restaurant, query string) ([]search.Suggestion, error) {
	query = strings.TrimSpace(query)
	if utf8.RuneCountInString(query) < minSuggestQueryLen {
		return []search.Suggestion{}, nil
	}

	results := make([]search.Suggestion, 0, maxSuggestionsTotal)

	categories, err := uc.categories.SearchByName(ctx, r.ID, query, maxSuggestPerKind)
	if err != nil {
		return nil, err
	}
	for _, c := range categories {
		results = append(results, search.Suggestion{
			Type:     "category",
			Title:    c.Name,
			Subtitle: "카테고리",
			URL:      fmt.Sprintf("/%s/category/%s/", r.Slug, c.ID),
		})
	}

	items, err := uc.items.SearchAvailable(ctx, r.ID, query, maxSuggestPerKind)
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		subtitle := "메뉴"
		url := fmt.Sprintf("/%s/#menu-%s", r.Slug, item.ID)
		if item.Category != nil {
			subtitle = item.Category.Name
			url = fmt.Sprintf("/%s/category/%s/#menu-%s", r.Slug, item.Category.ID, item.ID)
		}
		results = append(results, search.Suggestion{
			Type:     "menu",
			Title:    item.Name,
			Subtitle: fmt.Sprintf("%s - %s", subtitle, formatPrice(item.Price)),
			URL:      url,
		})
	}

	if len(results) > maxSuggestionsTotal {
		results = results[:maxSuggestionsTotal]
	}
	return results, nil
}

// formatPrice prefixes the currency sign only when the stored free-text
// price is purely numeric: digits with optional thousands commas and at most
// one decimal point. Anything else (e.g. "시가") passes through untouched.
func formatPrice(raw string) string {
	if isNumericPrice(raw) {
		return "₩" + raw
	}
	return raw
}

func isNumericPrice(raw string) bool {
	cleaned := strings.ReplaceAll(raw, ",", "")
	cleaned = strings.Replace(cleaned, ".", "", 1)
	if cleaned == "" {
		return false
	}
	for _, r := range cleaned {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/imhyunho99/bar-menu/internal/model"
)

type PGRepository struct {
	DB *sqlx.DB
}

// likeEscaper neutralizes LIKE metacharacters so user input always matches
// as a literal substring. Queries using it must carry ESCAPE '\'.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) Create(ctx context.Context, item *model.MenuItem) error {
	query := `
        INSERT INTO menu_items (
            id, restaurant_id, category_id, name, name_en, price, description,
            notes, is_available, priority, image_url, created_at, updated_at
        )
        VALUES (
            :id, :restaurant_id, :category_id, :name, :name_en, :price, :description,
            :notes, :is_available, :priority, :image_url, :created_at, :updated_at
        )
    `
	if _, err := r.DB.NamedExecContext(ctx, query, item); err != nil {
		return fmt.Errorf("create menu item: %w", err)
	}
	return nil
}

func (r *PGRepository) Update(ctx context.Context, item *model.MenuItem) error {
	query := `
        UPDATE menu_items
        SET category_id = :category_id,
            name = :name,
            name_en = :name_en,
            price = :price,
            description = :description,
            notes = :notes,
            is_available = :is_available,
            priority = :priority,
            image_url = :image_url,
            updated_at = :updated_at
        WHERE id = :id AND restaurant_id = :restaurant_id
    `
	if _, err := r.DB.NamedExecContext(ctx, query, item); err != nil {
		return fmt.Errorf("update menu item: %w", err)
	}
	return nil
}

func (r *PGRepository) Delete(ctx context.Context, restaurantID, id string) error {
	query := `DELETE FROM menu_items WHERE id = $1 AND restaurant_id = $2`
	if _, err := r.DB.ExecContext(ctx, query, id, restaurantID); err != nil {
		return fmt.Errorf("delete menu item: %w", err)
	}
	return nil
}

func (r *PGRepository) FindByID(ctx context.Context, restaurantID, id string) (*model.MenuItem, error) {
	var item model.MenuItem
	query := `SELECT * FROM menu_items WHERE id = $1 AND restaurant_id = $2 LIMIT 1`
	err := r.DB.GetContext(ctx, &item, query, id, restaurantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find menu item by id: %w", err)
	}
	return &item, nil
}

func (r *PGRepository) FindByCategory(ctx context.Context, restaurantID, categoryID string, availableOnly bool) ([]model.MenuItem, error) {
	query := `
        SELECT * FROM menu_items
        WHERE restaurant_id = $1 AND category_id = $2
    `
	if availableOnly {
		query += " AND is_available"
	}
	query += " ORDER BY priority ASC, name ASC"

	var items []model.MenuItem
	if err := r.DB.SelectContext(ctx, &items, query, restaurantID, categoryID); err != nil {
		return nil, fmt.Errorf("list menu items by category: %w", err)
	}
	return items, nil
}

func (r *PGRepository) FindAllOrdered(ctx context.Context, restaurantID string) ([]model.MenuItem, error) {
	// Uncategorized items sort last via NULLS LAST on the joined priority.
	query := `
        SELECT m.* FROM menu_items m
        LEFT JOIN categories c ON c.id = m.category_id
        WHERE m.restaurant_id = $1
        ORDER BY c.priority ASC NULLS LAST, m.priority ASC, m.name ASC
    `
	var items []model.MenuItem
	if err := r.DB.SelectContext(ctx, &items, query, restaurantID); err != nil {
		return nil, fmt.Errorf("list menu items: %w", err)
	}
	return items, nil
}

func (r *PGRepository) FindFirstNameExact(ctx context.Context, restaurantID, name string) (*model.MenuItem, error) {
	var item model.MenuItem
	query := `
        SELECT * FROM menu_items
        WHERE restaurant_id = $1 AND LOWER(name) = LOWER($2)
        ORDER BY priority ASC, name ASC, id ASC
        LIMIT 1
    `
	err := r.DB.GetContext(ctx, &item, query, restaurantID, name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find menu item by exact name: %w", err)
	}
	return &item, nil
}

func (r *PGRepository) FindFirstNameContains(ctx context.Context, restaurantID, query string) (*model.MenuItem, error) {
	var item model.MenuItem
	q := `
        SELECT * FROM menu_items
        WHERE restaurant_id = $1 AND name ILIKE '%' || $2 || '%' ESCAPE '\'
        ORDER BY priority ASC, name ASC, id ASC
        LIMIT 1
    `
	err := r.DB.GetContext(ctx, &item, q, restaurantID, escapeLike(query))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find menu item by name substring: %w", err)
	}
	return &item, nil
}

func (r *PGRepository) SearchAvailable(ctx context.Context, restaurantID, query string, limit int) ([]model.MenuItem, error) {
	q := `
        SELECT * FROM menu_items
        WHERE restaurant_id = $1
          AND is_available
          AND (name ILIKE '%' || $2 || '%' ESCAPE '\'
               OR name_en ILIKE '%' || $2 || '%' ESCAPE '\'
               OR description ILIKE '%' || $2 || '%' ESCAPE '\')
        ORDER BY priority ASC, name ASC, id ASC
        LIMIT $3
    `
	var items []model.MenuItem
	if err := r.DB.SelectContext(ctx, &items, q, restaurantID, escapeLike(query), limit); err != nil {
		return nil, fmt.Errorf("search menu items: %w", err)
	}

	if err := r.attachCategories(ctx, restaurantID, items); err != nil {
		return nil, err
	}
	return items, nil
}

// attachCategories batch-loads the referenced categories in one query
// instead of one lookup per item.
func (r *PGRepository) attachCategories(ctx context.Context, restaurantID string, items []model.MenuItem) error {
	ids := make([]string, 0, len(items))
	for _, item := range items {
		if item.CategoryID != nil {
			ids = append(ids, *item.CategoryID)
		}
	}
	if len(ids) == 0 {
		return nil
	}

	var categories []model.Category
	query := `SELECT * FROM categories WHERE restaurant_id = $1 AND id = ANY($2)`
	if err := r.DB.SelectContext(ctx, &categories, query, restaurantID, pq.Array(ids)); err != nil {
		return fmt.Errorf("load item categories: %w", err)
	}

	byID := make(map[string]*model.Category, len(categories))
	for i := range categories {
		byID[categories[i].ID] = &categories[i]
	}
	for i := range items {
		if items[i].CategoryID != nil {
			items[i].Category = byID[*items[i].CategoryID]
		}
	}
	return nil
}

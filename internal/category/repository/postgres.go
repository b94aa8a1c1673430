package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/imhyunho99/bar-menu/internal/category/dto"
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

func (r *PGRepository) Create(ctx context.Context, c *model.Category) error {
	query := `
        INSERT INTO categories (id, restaurant_id, parent_id, name, name_en, priority, created_at, updated_at)
        VALUES (:id, :restaurant_id, :parent_id, :name, :name_en, :priority, :created_at, :updated_at)
    `
	if _, err := r.DB.NamedExecContext(ctx, query, c); err != nil {
		return fmt.Errorf("create category: %w", err)
	}
	return nil
}

func (r *PGRepository) FindByID(ctx context.Context, restaurantID, id string) (*model.Category, error) {
	var category model.Category
	query := `SELECT * FROM categories WHERE id = $1 AND restaurant_id = $2 LIMIT 1`
	err := r.DB.GetContext(ctx, &category, query, id, restaurantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find category by id: %w", err)
	}
	return &category, nil
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.CategoryFilters) ([]model.Category, error) {
	conditions := []string{"restaurant_id = :restaurant_id"}
	args := map[string]interface{}{"restaurant_id": f.RestaurantID}

	if f.ParentID != nil {
		if *f.ParentID == "" {
			conditions = append(conditions, "parent_id IS NULL")
		} else {
			conditions = append(conditions, "parent_id = :parent_id")
			args["parent_id"] = *f.ParentID
		}
	}

	query := "SELECT * FROM categories WHERE " + strings.Join(conditions, " AND ") +
		" ORDER BY priority ASC, name ASC"

	nstmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer nstmt.Close()

	var categories []model.Category
	if err := nstmt.SelectContext(ctx, &categories, args); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

// FindAllWithChildren loads every category of the restaurant once and links
// children in memory, so rendering a parent list with sub-categories costs a
// single query instead of one per parent.
func (r *PGRepository) FindAllWithChildren(ctx context.Context, restaurantID string) ([]model.Category, error) {
	var flat []model.Category
	query := `SELECT * FROM categories WHERE restaurant_id = $1 ORDER BY priority ASC, name ASC`
	if err := r.DB.SelectContext(ctx, &flat, query, restaurantID); err != nil {
		return nil, fmt.Errorf("list categories with children: %w", err)
	}

	childrenOf := make(map[string][]model.Category, len(flat))
	for _, c := range flat {
		if c.ParentID != nil {
			childrenOf[*c.ParentID] = append(childrenOf[*c.ParentID], c)
		}
	}
	result := make([]model.Category, len(flat))
	for i, c := range flat {
		c.Children = childrenOf[c.ID]
		result[i] = c
	}
	return result, nil
}

func (r *PGRepository) FindNavigable(ctx context.Context, restaurantID string) ([]model.Category, error) {
	var categories []model.Category
	query := `
        SELECT c.* FROM categories c
        WHERE c.restaurant_id = $1
          AND EXISTS (
              SELECT 1 FROM menu_items m
              WHERE m.category_id = c.id AND m.restaurant_id = c.restaurant_id AND m.is_available
          )
          AND NOT EXISTS (
              SELECT 1 FROM categories ch WHERE ch.parent_id = c.id
          )
        ORDER BY c.priority ASC, c.name ASC, c.id ASC
    `
	if err := r.DB.SelectContext(ctx, &categories, query, restaurantID); err != nil {
		return nil, fmt.Errorf("list navigable categories: %w", err)
	}
	return categories, nil
}

func (r *PGRepository) SearchByName(ctx context.Context, restaurantID, query string, limit int) ([]model.Category, error) {
	var categories []model.Category
	q := `
        SELECT * FROM categories
        WHERE restaurant_id = $1 AND name ILIKE '%' || $2 || '%' ESCAPE '\'
        ORDER BY priority ASC, name ASC, id ASC
        LIMIT $3
    `
	if err := r.DB.SelectContext(ctx, &categories, q, restaurantID, escapeLike(query), limit); err != nil {
		return nil, fmt.Errorf("search categories: %w", err)
	}
	return categories, nil
}

func (r *PGRepository) Delete(ctx context.Context, restaurantID, id string) error {
	query := `DELETE FROM categories WHERE id = $1 AND restaurant_id = $2`
	if _, err := r.DB.ExecContext(ctx, query, id, restaurantID); err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}

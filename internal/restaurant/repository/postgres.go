package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/imhyunho99/bar-menu/internal/model"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

func (r *PGRepository) FindBySlug(ctx context.Context, slug string) (*model.Restaurant, error) {
	var restaurant model.Restaurant
	query := `SELECT * FROM restaurants WHERE slug = $1 LIMIT 1`
	err := r.DB.GetContext(ctx, &restaurant, query, slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find restaurant by slug: %w", err)
	}
	return &restaurant, nil
}

func (r *PGRepository) FindAll(ctx context.Context) ([]model.Restaurant, error) {
	var restaurants []model.Restaurant
	query := `SELECT * FROM restaurants ORDER BY name ASC`
	if err := r.DB.SelectContext(ctx, &restaurants, query); err != nil {
		return nil, fmt.Errorf("list restaurants: %w", err)
	}
	return restaurants, nil
}

func (r *PGRepository) FindFirst(ctx context.Context) (*model.Restaurant, error) {
	var restaurant model.Restaurant
	query := `SELECT * FROM restaurants ORDER BY name ASC LIMIT 1`
	err := r.DB.GetContext(ctx, &restaurant, query)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find first restaurant: %w", err)
	}
	return &restaurant, nil
}

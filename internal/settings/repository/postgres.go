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

func (r *PGRepository) FindByRestaurant(ctx context.Context, restaurantID string) (*model.SiteSettings, error) {
	var s model.SiteSettings
	query := `SELECT * FROM site_settings WHERE restaurant_id = $1 ORDER BY created_at ASC LIMIT 1`
	err := r.DB.GetContext(ctx, &s, query, restaurantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find site settings: %w", err)
	}
	return &s, nil
}

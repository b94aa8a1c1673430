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

func (r *PGRepository) FindByUsername(ctx context.Context, username string) (*model.StaffUser, error) {
	var user model.StaffUser
	query := `SELECT * FROM staff_users WHERE username = $1 LIMIT 1`
	err := r.DB.GetContext(ctx, &user, query, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find staff by username: %w", err)
	}
	if err := r.attachRestaurant(ctx, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.StaffUser, error) {
	var user model.StaffUser
	query := `SELECT * FROM staff_users WHERE id = $1 LIMIT 1`
	err := r.DB.GetContext(ctx, &user, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find staff by id: %w", err)
	}
	if err := r.attachRestaurant(ctx, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *PGRepository) attachRestaurant(ctx context.Context, user *model.StaffUser) error {
	if user.RestaurantID == nil {
		return nil
	}
	var restaurant model.Restaurant
	query := `SELECT * FROM restaurants WHERE id = $1 LIMIT 1`
	err := r.DB.GetContext(ctx, &restaurant, query, *user.RestaurantID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// Dangling binding behaves like no binding at all.
			return nil
		}
		return fmt.Errorf("load bound restaurant: %w", err)
	}
	user.Restaurant = &restaurant
	return nil
}

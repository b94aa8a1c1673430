package dto

type CategoryFilters struct {
	RestaurantID string
	ParentID     *string // Nil means ignore, empty string means root categories
}

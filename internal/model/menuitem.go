package model

// MenuItem's price is stored as free text. Legacy rows carry values like
// "시가" alongside "12,000", so formatting code must not assume a number.
type MenuItem struct {
	BaseModel
	RestaurantID string  `db:"restaurant_id" json:"restaurant_id"`
	CategoryID   *string `db:"category_id" json:"category_id"` // Nullable, "uncategorized" when nil
	Name         string  `db:"name" json:"name"`
	NameEn       string  `db:"name_en" json:"name_en"`
	Price        string  `db:"price" json:"price"`
	Description  string  `db:"description" json:"description"`
	Notes        string  `db:"notes" json:"notes"`
	IsAvailable  bool    `db:"is_available" json:"is_available"`
	Priority     int     `db:"priority" json:"priority"`
	ImageURL     *string `db:"image_url" json:"image_url"`

	Category *Category `db:"-" json:"category,omitempty"` // Joined data
}

package model

type Category struct {
	BaseModel
	RestaurantID string  `db:"restaurant_id" json:"restaurant_id"`
	ParentID     *string `db:"parent_id" json:"parent_id"` // Nullable, root when nil
	Name         string  `db:"name" json:"name"`
	NameEn       string  `db:"name_en" json:"name_en"`
	Priority     int     `db:"priority" json:"priority"`

	Children []Category `db:"-" json:"children,omitempty"` // For tree structure, not in DB
}

package model

// StaffUser is an authenticated admin identity. Superusers manage every
// restaurant; ordinary staff are bound to at most one via RestaurantID.
type StaffUser struct {
	BaseModel
	Username     string  `db:"username" json:"username"`
	PasswordHash string  `db:"password_hash" json:"-"`
	IsStaff      bool    `db:"is_staff" json:"is_staff"`
	IsSuperuser  bool    `db:"is_superuser" json:"is_superuser"`
	RestaurantID *string `db:"restaurant_id" json:"restaurant_id"`

	Restaurant *Restaurant `db:"-" json:"restaurant,omitempty"` // Joined data
}

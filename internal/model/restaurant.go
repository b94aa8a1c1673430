package model

// Restaurant is an independently managed menu namespace. The slug is the
// URL path segment every tenant-scoped route is keyed on and never changes
// once categories or items reference the restaurant.
type Restaurant struct {
	BaseModel
	Slug string `db:"slug" json:"slug"`
	Name string `db:"name" json:"name"`
}

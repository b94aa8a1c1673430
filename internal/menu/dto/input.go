package dto

type CreateMenuInput struct {
	RestaurantID string
	CategoryID   *string
	Name         string
	NameEn       string
	Price        string
	Description  string
	Notes        string
	Priority     int
	ImageURL     *string
}

type UpdateMenuInput struct {
	ID          string
	CategoryID  *string
	Name        string
	NameEn      string
	Price       string
	Description string
	Notes       string
	Priority    int
	IsAvailable *bool   // Nil keeps the stored value
	ImageURL    *string // Nil keeps the stored image
}

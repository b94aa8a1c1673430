package dto

type CreateCategoryInput struct {
	RestaurantID string
	ParentID     *string
	Name         string
	NameEn       string
	Priority     int
}

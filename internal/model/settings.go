package model

// SiteSettings is the per-restaurant theming record. The core only loads and
// passes it through; the styling fields are opaque to this service.
type SiteSettings struct {
	BaseModel
	RestaurantID    string  `db:"restaurant_id" json:"restaurant_id"`
	LogoImage       *string `db:"logo_image" json:"logo_image"`
	IntroImage      *string `db:"intro_image" json:"intro_image"`
	IntroVideo      *string `db:"intro_video" json:"intro_video"`
	SideImage       *string `db:"side_image" json:"side_image"`
	BackgroundColor string  `db:"background_color" json:"background_color"`
	CategoryColor   string  `db:"category_card_color" json:"category_card_color"`
	MenuCardColor   string  `db:"menu_card_color" json:"menu_card_color"`
}

package model

// Ingredient represents a user-owned recipe component. Same ownership and
// uniqueness rules as Tag: (user, name) identifies it.
type Ingredient struct {
	ID     uint   `json:"id" gorm:"primaryKey"`
	UserID uint   `json:"-" gorm:"not null;uniqueIndex:idx_ingredient_user_name"`
	Name   string `json:"name" gorm:"size:255;not null;uniqueIndex:idx_ingredient_user_name"`

	// Relations
	User User `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Recipe is owned by exactly one user. Tag and ingredient membership is a set;
// order carries no meaning.
type Recipe struct {
	ID          uint            `json:"id" gorm:"primaryKey"`
	UserID      uint            `json:"-" gorm:"not null;index"`
	Title       string          `json:"title" gorm:"size:255;not null"`
	TimeMinutes uint            `json:"time_minutes" gorm:"not null;default:0"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(5,2);not null;default:0"`
	Description string          `json:"description,omitempty" gorm:"type:text"`
	Link        string          `json:"link,omitempty" gorm:"size:255"`
	Image       string          `json:"image,omitempty" gorm:"size:255"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`

	// Relations
	User        User         `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Tags        []Tag        `json:"tags" gorm:"many2many:recipe_tags;constraint:OnDelete:CASCADE"`
	Ingredients []Ingredient `json:"ingredients" gorm:"many2many:recipe_ingredients;constraint:OnDelete:CASCADE"`
}

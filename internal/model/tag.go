package model

// Tag represents a user-owned recipe label. Names are unique per owner, not
// globally; the composite index backs get-or-create during reconciliation.
type Tag struct {
	ID     uint   `json:"id" gorm:"primaryKey"`
	UserID uint   `json:"-" gorm:"not null;uniqueIndex:idx_tag_user_name"`
	Name   string `json:"name" gorm:"size:255;not null;uniqueIndex:idx_tag_user_name"`

	// Relations
	User User `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

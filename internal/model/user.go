package model

import "time"

// User represents an account in the system. Email is the login identity and
// is stored normalized (domain portion lowercased).
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:50;not null"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	IsStaff      bool      `json:"is_staff" gorm:"default:false"`
	IsSuperuser  bool      `json:"is_superuser" gorm:"default:false"`
	DateJoined   time.Time `json:"date_joined" gorm:"autoCreateTime"`
}

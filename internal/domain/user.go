package domain

import "time"

// User is a login identity. Most users are linked one-to-one to an
// Employee record; the link is optional so that accounts can be
// provisioned before the employee card is filled in.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Username     string    `json:"username" gorm:"uniqueIndex;size:150"`
	PasswordHash string    `json:"-"`
	IsStaff      bool      `json:"is_staff"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

package models

import "time"

const (
	RoleAdmin  = "admin"
	RoleNormal = "normal"
)

// User & auth related models
type User struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Email       string     `gorm:"unique;not null;index" json:"email"`
	Password    string     `gorm:"not null" json:"-"` // hashé (bcrypt)
	Nom         string     `gorm:"index" json:"nom"`
	Role        string     `gorm:"not null;default:'normal'" json:"role"` // admin, normal
	Langue      string     `gorm:"not null;default:'fr'" json:"langue"`   // fr, en
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// IsAdmin reports whether the user carries the admin role.
func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }

package models

import "time"

type UserRole string

const (
	RoleAdmin  UserRole = "admin"
	RolePlayer UserRole = "player"
)

type User struct {
	ID              int       `json:"id" db:"id"`
	Username        string    `json:"username" db:"username"`
	PasswordHash    string    `json:"-" db:"password_hash"`
	FullName        string    `json:"full_name" db:"full_name"`
	Role            UserRole  `json:"role" db:"role"`
	Phone           *string   `json:"phone,omitempty" db:"phone"`
	ProfilePhotoKey *string   `json:"-" db:"profile_photo_key"`
	ProfilePhotoURL *string   `json:"profile_photo_url,omitempty" db:"-"`
	CategoryID      *int      `json:"category_id,omitempty" db:"category_id"`
	GroupID         *int      `json:"group_id,omitempty" db:"group_id"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`

	// Optional linked data, populated by services.
	CategoryName *string `json:"category_name,omitempty" db:"-"`
	GroupName    *string `json:"group_name,omitempty" db:"-"`
}

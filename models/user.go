package models

import "gorm.io/gorm"

// User is an admin account. The public recipe pages need no login;
// only the /admin surface (export, ingredient maintenance) does.
type User struct {
	gorm.Model
	Login    string `json:"login" gorm:"unique;not null"`
	Password string `json:"-" gorm:"not null"` // bcrypt hash
}

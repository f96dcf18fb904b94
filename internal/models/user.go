package models

// User is a dashboard account.
type User struct {
	Base
	Email        string `gorm:"unique_index" json:"email"`
	Name         string `json:"name"`
	PasswordHash string `json:"-"`
	Role         string `json:"role"`
}

package models

import "time"

// Cliente da barbearia, sem login.
type Client struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name  string `gorm:"size:100;not null" json:"name"`
	Alias string `gorm:"size:100" json:"alias"`
	Phone string `gorm:"size:30" json:"phone"`
	Email string `gorm:"size:100" json:"email"`
	Notes string `gorm:"type:text" json:"notes"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

package models

import "time"

type CutPhoto struct {
	ID uint `gorm:"primaryKey" json:"id"`

	// URL servida (ex.: /uploads/1700000000000000000-foto.jpg).
	Path      string `gorm:"size:512;not null" json:"path"`
	ThumbPath string `gorm:"size:512" json:"thumbPath,omitempty"`

	CutID uint `gorm:"not null;index" json:"cutId"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

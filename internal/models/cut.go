package models

import "time"

type Cut struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Service    string `gorm:"size:100;not null;index" json:"service"`
	Date       string `gorm:"size:10;not null;index" json:"date"`
	Detail     string `gorm:"type:text" json:"detail"`
	Nota       string `gorm:"type:text" json:"nota"`
	MetodoPago string `gorm:"size:30" json:"metodoPago"`

	ClientID uint    `gorm:"not null;index" json:"clientId"`
	Client   *Client `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"Client,omitempty"`

	BarberID uint    `gorm:"not null;index" json:"barberId"`
	Barber   *Barber `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"Barber,omitempty"`

	Photos []CutPhoto `gorm:"foreignKey:CutID;constraint:OnDelete:CASCADE;" json:"photos,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

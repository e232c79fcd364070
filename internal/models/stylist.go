package models

import "time"

const DefaultStylistImage = "default-avatar.jpg"

type Stylist struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name   string  `gorm:"size:100;not null" json:"name"`
	Email  string  `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Salary float64 `gorm:"type:numeric(12,2);default:0" json:"salary"`
	Image  string  `gorm:"size:512;default:'default-avatar.jpg'" json:"image"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

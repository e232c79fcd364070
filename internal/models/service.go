package models

import "time"

const (
	GenderMale   = "Male"
	GenderFemale = "Female"
	GenderUnisex = "Unisex"
)

func ValidGender(g string) bool {
	switch g {
	case GenderMale, GenderFemale, GenderUnisex:
		return true
	}
	return false
}

type Service struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name        string  `gorm:"size:150;not null" json:"service_name"`
	Price       float64 `gorm:"type:numeric(12,2);not null" json:"price"`
	Description string  `gorm:"type:text" json:"description"`
	Category    string  `gorm:"size:100" json:"category"`
	Gender      string  `gorm:"size:10;default:'Unisex'" json:"service_by_gender"`

	Images []ServiceImage `gorm:"foreignKey:ServiceID" json:"service_images"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ServiceImage struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	ServiceID uint   `gorm:"index;not null" json:"service_id"`
	URL       string `gorm:"size:512;not null" json:"image_url"`
	Title     string `gorm:"size:150" json:"image_title"`

	CreatedAt time.Time `json:"created_at"`
}

package models

import "time"

type Slot struct {
	ID uint `gorm:"primaryKey" json:"id"`

	StylistID uint     `gorm:"index;not null" json:"stylist_id"`
	Stylist   *Stylist `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"stylist,omitempty"`

	StartTime time.Time `gorm:"not null" json:"start_time"`
	EndTime   time.Time `gorm:"not null" json:"end_time"`
	Available bool      `gorm:"not null" json:"available"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

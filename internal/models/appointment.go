package models

import "time"

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	UserID uint  `gorm:"index;not null" json:"user_id"`
	User   *User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"user,omitempty"`

	StylistID uint     `gorm:"index;not null" json:"stylist_id"`
	Stylist   *Stylist `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"stylist,omitempty"`

	SlotID uint  `gorm:"index;not null" json:"slot_id"`
	Slot   *Slot `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"slot,omitempty"`

	ServiceID uint     `gorm:"index;not null" json:"service_id"`
	Service   *Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"service,omitempty"`

	// Copied when the appointment is created or re-pointed; never resynced.
	ServiceName        string `gorm:"size:150" json:"service_name"`
	ServiceDescription string `gorm:"type:text" json:"service_description"`
	StylistName        string `gorm:"size:100" json:"stylist_name"`

	Notes  string `gorm:"size:500" json:"notes"`
	Status string `gorm:"size:20;default:'pending'" json:"status"`

	ConfirmedAt *time.Time `json:"confirmed_at"`
	CancelledAt *time.Time `json:"cancelled_at"`
	CompletedAt *time.Time `json:"completed_at"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

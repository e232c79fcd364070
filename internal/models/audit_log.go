package models

import "time"

type AuditLog struct {
	ID uint `gorm:"primaryKey" json:"id" bson:"id"`

	ActorID *uint  `json:"actor_id" bson:"actor_id,omitempty"`
	Action  string `gorm:"size:50;not null" json:"action" bson:"action"`

	Entity   string `gorm:"size:50" json:"entity" bson:"entity"`
	EntityID *uint  `json:"entity_id" bson:"entity_id,omitempty"`
	Metadata string `gorm:"type:text" json:"metadata" bson:"metadata"`

	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

package audit

import (
	"context"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Save(ctx context.Context, entry *models.AuditLog) error {
	return s.db.WithContext(ctx).Create(entry).Error
}

func (s *GormStore) List(ctx context.Context, q Query) ([]models.AuditLog, error) {
	tx := s.db.WithContext(ctx).Model(&models.AuditLog{})
	if q.ActorID != nil {
		tx = tx.Where("actor_id = ?", *q.ActorID)
	}
	if q.Entity != "" {
		tx = tx.Where("entity = ?", q.Entity)
	}
	if q.EntityID != nil {
		tx = tx.Where("entity_id = ?", *q.EntityID)
	}

	var logs []models.AuditLog
	err := tx.Order("created_at DESC, id DESC").Limit(q.Limit).Find(&logs).Error
	return logs, err
}

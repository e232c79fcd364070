package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/salon-scheduler/internal/domain"
	apdomain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	slotdomain "github.com/BruksfildServices01/salon-scheduler/internal/domain/slot"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type SlotGormRepository struct {
	db *gorm.DB
}

func NewSlotGormRepository(db *gorm.DB) *SlotGormRepository {
	return &SlotGormRepository{db: db}
}

var _ slotdomain.Repository = (*SlotGormRepository)(nil)

func (r *SlotGormRepository) Transaction(
	ctx context.Context,
	fn func(tx slotdomain.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&SlotGormRepository{db: tx})
	})
}

func (r *SlotGormRepository) LockStylist(
	ctx context.Context,
	stylistID uint,
) (*models.Stylist, error) {

	var st models.Stylist
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&st, stylistID).Error; err != nil {
		return nil, translate(err)
	}
	return &st, nil
}

func (r *SlotGormRepository) CreateSlot(ctx context.Context, s *models.Slot) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Create(s).Error)
}

func (r *SlotGormRepository) GetSlot(ctx context.Context, id uint) (*models.Slot, error) {
	var s models.Slot
	if err := r.db.WithContext(ctx).Preload("Stylist").First(&s, id).Error; err != nil {
		return nil, translate(err)
	}
	return &s, nil
}

func (r *SlotGormRepository) GetSlotForUpdate(ctx context.Context, id uint) (*models.Slot, error) {
	var s models.Slot
	if err := r.db.WithContext(ctx).
		Preload("Stylist").
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&s, id).Error; err != nil {
		return nil, translate(err)
	}
	return &s, nil
}

func (r *SlotGormRepository) ListSlots(
	ctx context.Context,
	f slotdomain.Filter,
) ([]models.Slot, error) {

	q := r.db.WithContext(ctx).Preload("Stylist")

	if f.StylistID != 0 {
		q = q.Where("stylist_id = ?", f.StylistID)
	}
	if f.From != nil {
		q = q.Where("start_time >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("start_time < ?", *f.To)
	}
	if f.Available != nil {
		q = q.Where("available = ?", *f.Available)
	}

	var slots []models.Slot
	if err := q.Order("start_time ASC, id ASC").Find(&slots).Error; err != nil {
		return nil, err
	}
	return slots, nil
}

func (r *SlotGormRepository) UpdateSlot(ctx context.Context, s *models.Slot) error {
	return translate(r.db.WithContext(ctx).
		Model(&models.Slot{ID: s.ID}).
		Select("start_time", "end_time", "available", "updated_at").
		Updates(&models.Slot{
			StartTime: s.StartTime,
			EndTime:   s.EndTime,
			Available: s.Available,
			UpdatedAt: time.Now(),
		}).Error)
}

func (r *SlotGormRepository) DeleteSlot(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Slot{}, id)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *SlotGormRepository) HasOverlap(
	ctx context.Context,
	stylistID uint,
	start time.Time,
	end time.Time,
	excludeID uint,
) (bool, error) {

	q := r.db.WithContext(ctx)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	return exists(q, &models.Slot{},
		"stylist_id = ? AND start_time < ? AND end_time > ?",
		stylistID, end, start,
	)
}

func (r *SlotGormRepository) HasActiveAppointment(
	ctx context.Context,
	slotID uint,
) (bool, error) {
	return exists(r.db.WithContext(ctx), &models.Appointment{},
		"slot_id = ? AND status IN ?",
		slotID, []string{string(apdomain.StatusPending), string(apdomain.StatusConfirmed)},
	)
}

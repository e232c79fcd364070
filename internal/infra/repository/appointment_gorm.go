package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/salon-scheduler/internal/domain"
	apdomain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

var _ apdomain.Repository = (*AppointmentGormRepository)(nil)

func (r *AppointmentGormRepository) Transaction(
	ctx context.Context,
	fn func(tx apdomain.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&AppointmentGormRepository{db: tx})
	})
}

// --------------------------------------------------
// Catalog
// --------------------------------------------------

func (r *AppointmentGormRepository) GetService(
	ctx context.Context,
	id uint,
) (*models.Service, error) {

	var svc models.Service
	if err := r.db.WithContext(ctx).First(&svc, id).Error; err != nil {
		return nil, translate(err)
	}
	return &svc, nil
}

func (r *AppointmentGormRepository) GetStylist(
	ctx context.Context,
	id uint,
) (*models.Stylist, error) {

	var st models.Stylist
	if err := r.db.WithContext(ctx).First(&st, id).Error; err != nil {
		return nil, translate(err)
	}
	return &st, nil
}

// --------------------------------------------------
// Slot
// --------------------------------------------------

func (r *AppointmentGormRepository) GetSlot(
	ctx context.Context,
	id uint,
) (*models.Slot, error) {

	var s models.Slot
	if err := r.db.WithContext(ctx).First(&s, id).Error; err != nil {
		return nil, translate(err)
	}
	return &s, nil
}

func (r *AppointmentGormRepository) FindSlotByStart(
	ctx context.Context,
	stylistID uint,
	start time.Time,
) (*models.Slot, error) {

	var s models.Slot
	if err := r.db.WithContext(ctx).
		Where("stylist_id = ? AND start_time = ?", stylistID, start).
		First(&s).Error; err != nil {
		return nil, translate(err)
	}
	return &s, nil
}

func (r *AppointmentGormRepository) ReserveSlot(
	ctx context.Context,
	slotID uint,
) error {

	res := r.db.WithContext(ctx).
		Model(&models.Slot{}).
		Where("id = ? AND available = ?", slotID, true).
		Updates(map[string]any{
			"available":  false,
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 1 {
		return nil
	}

	found, err := exists(r.db.WithContext(ctx), &models.Slot{}, "id = ?", slotID)
	if err != nil {
		return err
	}
	if !found {
		return domain.ErrNotFound
	}
	return domain.ErrSlotUnavailable
}

func (r *AppointmentGormRepository) ReleaseSlot(
	ctx context.Context,
	slotID uint,
) error {

	res := r.db.WithContext(ctx).
		Model(&models.Slot{}).
		Where("id = ?", slotID).
		Updates(map[string]any{
			"available":  true,
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// --------------------------------------------------
// Appointment
// --------------------------------------------------

func (r *AppointmentGormRepository) CreateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Create(ap).Error)
}

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.preloaded(ctx).First(&ap, id).Error; err != nil {
		return nil, translate(err)
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) GetAppointmentForUpdate(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.preloaded(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&ap, id).Error; err != nil {
		return nil, translate(err)
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Save(ap).Error)
}

func (r *AppointmentGormRepository) DeleteAppointment(
	ctx context.Context,
	id uint,
) error {

	res := r.db.WithContext(ctx).Delete(&models.Appointment{}, id)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *AppointmentGormRepository) ListAppointments(
	ctx context.Context,
	filter apdomain.ListFilter,
) ([]models.Appointment, error) {

	q := r.preloaded(ctx)
	if filter.UserID != nil {
		q = q.Where("user_id = ?", *filter.UserID)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}

	var list []models.Appointment
	if err := q.Order("created_at DESC, id DESC").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// ListAppointmentsCreatedBetween feeds the income report. Only the service
// is attached since price is read from it.
func (r *AppointmentGormRepository) ListAppointmentsCreatedBetween(
	ctx context.Context,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	var list []models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Service").
		Where("created_at >= ? AND created_at < ?", start, end).
		Order("created_at ASC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *AppointmentGormRepository) preloaded(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("User").
		Preload("Stylist").
		Preload("Slot").
		Preload("Service")
}

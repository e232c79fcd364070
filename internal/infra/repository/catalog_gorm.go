package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/salon-scheduler/internal/domain"
	"github.com/BruksfildServices01/salon-scheduler/internal/domain/catalog"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type CatalogGormRepository struct {
	db *gorm.DB
}

func NewCatalogGormRepository(db *gorm.DB) *CatalogGormRepository {
	return &CatalogGormRepository{db: db}
}

var _ catalog.Repository = (*CatalogGormRepository)(nil)

// --------------------------------------------------
// Services
// --------------------------------------------------

func (r *CatalogGormRepository) ListServices(
	ctx context.Context,
	f catalog.ServiceFilter,
) ([]models.Service, error) {

	q := r.db.WithContext(ctx).Preload("Images", func(db *gorm.DB) *gorm.DB {
		return db.Order("id ASC")
	})

	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if f.Gender != "" {
		q = q.Where("gender = ?", f.Gender)
	}
	if s := strings.TrimSpace(f.Query); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}

	var list []models.Service
	if err := q.Order("name ASC").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *CatalogGormRepository) GetService(ctx context.Context, id uint) (*models.Service, error) {
	var svc models.Service
	if err := r.db.WithContext(ctx).
		Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		First(&svc, id).Error; err != nil {
		return nil, translate(err)
	}
	return &svc, nil
}

func (r *CatalogGormRepository) CreateService(ctx context.Context, s *models.Service) error {
	// images are inserted together with the service
	return translate(r.db.WithContext(ctx).Create(s).Error)
}

func (r *CatalogGormRepository) UpdateService(ctx context.Context, s *models.Service) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Save(s).Error)
}

func (r *CatalogGormRepository) DeleteService(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("service_id = ?", id).Delete(&models.ServiceImage{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Service{}, id)
		if res.Error != nil {
			return translate(res.Error)
		}
		if res.RowsAffected == 0 {
			return domain.ErrNotFound
		}
		return nil
	})
}

func (r *CatalogGormRepository) ServiceInUse(ctx context.Context, id uint) (bool, error) {
	return exists(r.db.WithContext(ctx), &models.Appointment{}, "service_id = ?", id)
}

func (r *CatalogGormRepository) AddServiceImage(ctx context.Context, img *models.ServiceImage) error {
	return translate(r.db.WithContext(ctx).Create(img).Error)
}

func (r *CatalogGormRepository) DeleteServiceImage(ctx context.Context, serviceID, imageID uint) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND service_id = ?", imageID, serviceID).
		Delete(&models.ServiceImage{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// --------------------------------------------------
// Stylists
// --------------------------------------------------

func (r *CatalogGormRepository) ListStylists(ctx context.Context) ([]models.Stylist, error) {
	var list []models.Stylist
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *CatalogGormRepository) GetStylist(ctx context.Context, id uint) (*models.Stylist, error) {
	var st models.Stylist
	if err := r.db.WithContext(ctx).First(&st, id).Error; err != nil {
		return nil, translate(err)
	}
	return &st, nil
}

func (r *CatalogGormRepository) CreateStylist(ctx context.Context, s *models.Stylist) error {
	return translate(r.db.WithContext(ctx).Create(s).Error)
}

func (r *CatalogGormRepository) UpdateStylist(ctx context.Context, s *models.Stylist) error {
	return translate(r.db.WithContext(ctx).Save(s).Error)
}

func (r *CatalogGormRepository) DeleteStylist(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Stylist{}, id)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *CatalogGormRepository) StylistInUse(ctx context.Context, id uint) (bool, error) {
	hasSlots, err := exists(r.db.WithContext(ctx), &models.Slot{}, "stylist_id = ?", id)
	if err != nil || hasSlots {
		return hasSlots, err
	}
	return exists(r.db.WithContext(ctx), &models.Appointment{}, "stylist_id = ?", id)
}

func (r *CatalogGormRepository) StylistEmailTaken(
	ctx context.Context,
	email string,
	excludeID uint,
) (bool, error) {
	return exists(r.db.WithContext(ctx), &models.Stylist{},
		"LOWER(email) = LOWER(?) AND id <> ?", email, excludeID)
}

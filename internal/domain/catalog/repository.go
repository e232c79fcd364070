package catalog

import (
	"context"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type ServiceFilter struct {
	Category string
	Gender   string
	Query    string
}

type Repository interface {
	// -------- Services --------
	ListServices(ctx context.Context, f ServiceFilter) ([]models.Service, error)
	GetService(ctx context.Context, id uint) (*models.Service, error)
	CreateService(ctx context.Context, s *models.Service) error
	UpdateService(ctx context.Context, s *models.Service) error
	DeleteService(ctx context.Context, id uint) error

	// ServiceInUse reports whether any appointment references the service.
	ServiceInUse(ctx context.Context, id uint) (bool, error)

	AddServiceImage(ctx context.Context, img *models.ServiceImage) error
	DeleteServiceImage(ctx context.Context, serviceID, imageID uint) error

	// -------- Stylists --------
	ListStylists(ctx context.Context) ([]models.Stylist, error)
	GetStylist(ctx context.Context, id uint) (*models.Stylist, error)
	CreateStylist(ctx context.Context, s *models.Stylist) error
	UpdateStylist(ctx context.Context, s *models.Stylist) error
	DeleteStylist(ctx context.Context, id uint) error

	// StylistInUse reports whether the stylist owns slots or appointments.
	StylistInUse(ctx context.Context, id uint) (bool, error)

	StylistEmailTaken(ctx context.Context, email string, excludeID uint) (bool, error)
}

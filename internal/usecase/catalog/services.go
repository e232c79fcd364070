package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/domain"
	catalogdomain "github.com/BruksfildServices01/salon-scheduler/internal/domain/catalog"
	"github.com/BruksfildServices01/salon-scheduler/internal/domain/identity"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type ImageInput struct {
	URL   string
	Title string
}

type CreateServiceInput struct {
	Name        string
	Price       float64
	Description string
	Category    string
	Gender      string
	Images      []ImageInput
}

// UpdateServiceInput carries optional fields; nil leaves the value as is.
type UpdateServiceInput struct {
	Name        *string
	Price       *float64
	Description *string
	Category    *string
	Gender      *string
}

type Services struct {
	repo   catalogdomain.Repository
	cache  Cache
	images ImageStore
	audit  *audit.Dispatcher
	ttl    time.Duration
}

func NewServices(
	repo catalogdomain.Repository,
	cache Cache,
	images ImageStore,
	audit *audit.Dispatcher,
	ttl time.Duration,
) *Services {
	return &Services{
		repo:   repo,
		cache:  cache,
		images: images,
		audit:  audit,
		ttl:    ttl,
	}
}

// ======================================================
// READ
// ======================================================

func (uc *Services) List(ctx context.Context, f catalogdomain.ServiceFilter) ([]models.Service, error) {
	if f.Gender != "" && !models.ValidGender(f.Gender) {
		return nil, httperr.ErrBusiness("invalid_gender")
	}

	key := fmt.Sprintf("%s:list:%s|%s|%s", servicesKey, f.Category, f.Gender, strings.ToLower(f.Query))

	var list []models.Service
	if uc.cache != nil && uc.cache.GetJSON(ctx, key, &list) {
		return list, nil
	}

	list, err := uc.repo.ListServices(ctx, f)
	if err != nil {
		return nil, err
	}
	if uc.cache != nil {
		uc.cache.SetJSON(ctx, key, list, uc.ttl)
	}
	return list, nil
}

func (uc *Services) Get(ctx context.Context, id uint) (*models.Service, error) {
	key := fmt.Sprintf("%s:id:%d", servicesKey, id)

	var svc models.Service
	if uc.cache != nil && uc.cache.GetJSON(ctx, key, &svc) {
		return &svc, nil
	}

	found, err := uc.repo.GetService(ctx, id)
	if err != nil {
		return nil, notFound(err, "service_not_found")
	}
	if uc.cache != nil {
		uc.cache.SetJSON(ctx, key, found, uc.ttl)
	}
	return found, nil
}

// ======================================================
// WRITE (admin)
// ======================================================

func (uc *Services) Create(
	ctx context.Context,
	actor identity.Actor,
	in CreateServiceInput,
) (*models.Service, error) {

	if !actor.IsAdmin() {
		return nil, httperr.ErrForbidden("admin_only")
	}

	svc := &models.Service{
		Name:        strings.TrimSpace(in.Name),
		Price:       in.Price,
		Description: in.Description,
		Category:    strings.TrimSpace(in.Category),
		Gender:      in.Gender,
	}
	if svc.Gender == "" {
		svc.Gender = models.GenderUnisex
	}
	for _, img := range in.Images {
		if img.URL == "" {
			continue
		}
		svc.Images = append(svc.Images, models.ServiceImage{URL: img.URL, Title: img.Title})
	}

	if err := validateService(svc); err != nil {
		return nil, err
	}
	if err := uc.repo.CreateService(ctx, svc); err != nil {
		return nil, err
	}

	uc.changed(ctx, actor, "service_created", svc.ID)
	return uc.repo.GetService(ctx, svc.ID)
}

func (uc *Services) Update(
	ctx context.Context,
	actor identity.Actor,
	id uint,
	in UpdateServiceInput,
) (*models.Service, error) {

	if !actor.IsAdmin() {
		return nil, httperr.ErrForbidden("admin_only")
	}

	svc, err := uc.repo.GetService(ctx, id)
	if err != nil {
		return nil, notFound(err, "service_not_found")
	}

	if in.Name != nil {
		svc.Name = strings.TrimSpace(*in.Name)
	}
	if in.Price != nil {
		svc.Price = *in.Price
	}
	if in.Description != nil {
		svc.Description = *in.Description
	}
	if in.Category != nil {
		svc.Category = strings.TrimSpace(*in.Category)
	}
	if in.Gender != nil {
		svc.Gender = *in.Gender
	}

	if err := validateService(svc); err != nil {
		return nil, err
	}

	svc.Images = nil
	if err := uc.repo.UpdateService(ctx, svc); err != nil {
		return nil, notFound(err, "service_not_found")
	}

	uc.changed(ctx, actor, "service_updated", id)
	return uc.repo.GetService(ctx, id)
}

// Delete refuses while any appointment, past or present, references the
// service.
func (uc *Services) Delete(ctx context.Context, actor identity.Actor, id uint) error {
	if !actor.IsAdmin() {
		return httperr.ErrForbidden("admin_only")
	}

	if _, err := uc.repo.GetService(ctx, id); err != nil {
		return notFound(err, "service_not_found")
	}

	used, err := uc.repo.ServiceInUse(ctx, id)
	if err != nil {
		return err
	}
	if used {
		return httperr.ErrConflict("service_in_use")
	}

	if err := uc.repo.DeleteService(ctx, id); err != nil {
		if errors.Is(err, domain.ErrInUse) {
			return httperr.ErrConflict("service_in_use")
		}
		return notFound(err, "service_not_found")
	}

	uc.changed(ctx, actor, "service_deleted", id)
	return nil
}

func (uc *Services) AddImage(
	ctx context.Context,
	actor identity.Actor,
	id uint,
	title string,
	r io.Reader,
) (*models.Service, error) {

	if !actor.IsAdmin() {
		return nil, httperr.ErrForbidden("admin_only")
	}
	if _, err := uc.repo.GetService(ctx, id); err != nil {
		return nil, notFound(err, "service_not_found")
	}

	url, err := upload(ctx, uc.images, "services", r)
	if err != nil {
		return nil, err
	}

	img := &models.ServiceImage{ServiceID: id, URL: url, Title: title}
	if err := uc.repo.AddServiceImage(ctx, img); err != nil {
		return nil, err
	}

	uc.changed(ctx, actor, "service_image_added", id)
	return uc.repo.GetService(ctx, id)
}

func (uc *Services) DeleteImage(
	ctx context.Context,
	actor identity.Actor,
	id uint,
	imageID uint,
) error {

	if !actor.IsAdmin() {
		return httperr.ErrForbidden("admin_only")
	}
	if err := uc.repo.DeleteServiceImage(ctx, id, imageID); err != nil {
		return notFound(err, "image_not_found")
	}

	uc.changed(ctx, actor, "service_image_deleted", id)
	return nil
}

func (uc *Services) changed(ctx context.Context, actor identity.Actor, action string, id uint) {
	if uc.cache != nil {
		uc.cache.Invalidate(ctx, servicesKey)
	}
	uc.audit.Dispatch(audit.Event{
		ActorID:  &actor.UserID,
		Action:   action,
		Entity:   "service",
		EntityID: &id,
	})
}

func validateService(svc *models.Service) error {
	if svc.Name == "" {
		return httperr.ErrBusiness("missing_fields")
	}
	if svc.Price <= 0 {
		return httperr.ErrBusiness("invalid_price")
	}
	if !models.ValidGender(svc.Gender) {
		return httperr.ErrBusiness("invalid_gender")
	}
	return nil
}

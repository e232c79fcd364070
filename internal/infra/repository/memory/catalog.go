package memory

import (
	"context"
	"slices"
	"strings"

	"github.com/BruksfildServices01/salon-scheduler/internal/domain"
	"github.com/BruksfildServices01/salon-scheduler/internal/domain/catalog"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type CatalogRepo struct {
	s *Store
}

func (s *Store) Catalog() *CatalogRepo {
	return &CatalogRepo{s: s}
}

var _ catalog.Repository = (*CatalogRepo)(nil)

// --------------------------------------------------
// Services
// --------------------------------------------------

func (r *CatalogRepo) ListServices(_ context.Context, f catalog.ServiceFilter) ([]models.Service, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	query := strings.ToLower(strings.TrimSpace(f.Query))

	var list []models.Service
	for _, svc := range r.s.services {
		if f.Category != "" && svc.Category != f.Category {
			continue
		}
		if f.Gender != "" && svc.Gender != f.Gender {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(svc.Name), query) &&
			!strings.Contains(strings.ToLower(svc.Description), query) {
			continue
		}
		list = append(list, r.s.serviceWithImages(svc))
	}

	slices.SortFunc(list, func(a, b models.Service) int { return strings.Compare(a.Name, b.Name) })
	return list, nil
}

func (r *CatalogRepo) GetService(_ context.Context, id uint) (*models.Service, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	svc, ok := r.s.services[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	svc = r.s.serviceWithImages(svc)
	return &svc, nil
}

func (r *CatalogRepo) CreateService(_ context.Context, svc *models.Service) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	now := r.s.Now()
	svc.ID = r.s.next("services")
	svc.CreatedAt = now
	svc.UpdatedAt = now

	for i := range svc.Images {
		svc.Images[i].ID = r.s.next("service_images")
		svc.Images[i].ServiceID = svc.ID
		svc.Images[i].CreatedAt = now
		r.s.images[svc.Images[i].ID] = svc.Images[i]
	}

	stored := *svc
	stored.Images = nil
	r.s.services[svc.ID] = stored
	return nil
}

func (r *CatalogRepo) UpdateService(_ context.Context, svc *models.Service) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.services[svc.ID]; !ok {
		return domain.ErrNotFound
	}
	svc.UpdatedAt = r.s.Now()
	stored := *svc
	stored.Images = nil
	r.s.services[svc.ID] = stored
	return nil
}

func (r *CatalogRepo) DeleteService(_ context.Context, id uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.services[id]; !ok {
		return domain.ErrNotFound
	}
	for imgID, img := range r.s.images {
		if img.ServiceID == id {
			delete(r.s.images, imgID)
		}
	}
	delete(r.s.services, id)
	return nil
}

func (r *CatalogRepo) ServiceInUse(_ context.Context, id uint) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, ap := range r.s.appointments {
		if ap.ServiceID == id {
			return true, nil
		}
	}
	return false, nil
}

func (r *CatalogRepo) AddServiceImage(_ context.Context, img *models.ServiceImage) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.services[img.ServiceID]; !ok {
		return domain.ErrNotFound
	}
	img.ID = r.s.next("service_images")
	img.CreatedAt = r.s.Now()
	r.s.images[img.ID] = *img
	return nil
}

func (r *CatalogRepo) DeleteServiceImage(_ context.Context, serviceID, imageID uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	img, ok := r.s.images[imageID]
	if !ok || img.ServiceID != serviceID {
		return domain.ErrNotFound
	}
	delete(r.s.images, imageID)
	return nil
}

// --------------------------------------------------
// Stylists
// --------------------------------------------------

func (r *CatalogRepo) ListStylists(_ context.Context) ([]models.Stylist, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	list := make([]models.Stylist, 0, len(r.s.stylists))
	for _, st := range r.s.stylists {
		list = append(list, st)
	}
	slices.SortFunc(list, func(a, b models.Stylist) int { return strings.Compare(a.Name, b.Name) })
	return list, nil
}

func (r *CatalogRepo) GetStylist(_ context.Context, id uint) (*models.Stylist, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	st, ok := r.s.stylists[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &st, nil
}

func (r *CatalogRepo) CreateStylist(_ context.Context, st *models.Stylist) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.s.stylistEmailTaken(st.Email, 0) {
		return domain.ErrDuplicate
	}

	now := r.s.Now()
	st.ID = r.s.next("stylists")
	if st.Image == "" {
		st.Image = models.DefaultStylistImage
	}
	st.CreatedAt = now
	st.UpdatedAt = now
	r.s.stylists[st.ID] = *st
	return nil
}

func (r *CatalogRepo) UpdateStylist(_ context.Context, st *models.Stylist) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.stylists[st.ID]; !ok {
		return domain.ErrNotFound
	}
	if r.s.stylistEmailTaken(st.Email, st.ID) {
		return domain.ErrDuplicate
	}
	st.UpdatedAt = r.s.Now()
	r.s.stylists[st.ID] = *st
	return nil
}

func (r *CatalogRepo) DeleteStylist(_ context.Context, id uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.stylists[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.stylists, id)
	return nil
}

func (r *CatalogRepo) StylistInUse(_ context.Context, id uint) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, sl := range r.s.slots {
		if sl.StylistID == id {
			return true, nil
		}
	}
	for _, ap := range r.s.appointments {
		if ap.StylistID == id {
			return true, nil
		}
	}
	return false, nil
}

func (r *CatalogRepo) StylistEmailTaken(_ context.Context, email string, excludeID uint) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	return r.s.stylistEmailTaken(email, excludeID), nil
}

func (s *Store) stylistEmailTaken(email string, excludeID uint) bool {
	for _, st := range s.stylists {
		if st.ID != excludeID && strings.EqualFold(st.Email, email) {
			return true
		}
	}
	return false
}

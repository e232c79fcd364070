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
	"github.com/BruksfildServices01/salon-scheduler/internal/validators"
)

type CreateStylistInput struct {
	Name   string
	Email  string
	Salary float64
	Image  string
}

type UpdateStylistInput struct {
	Name   *string
	Email  *string
	Salary *float64
	Image  *string
}

type Stylists struct {
	repo   catalogdomain.Repository
	cache  Cache
	images ImageStore
	audit  *audit.Dispatcher
	ttl    time.Duration
}

func NewStylists(
	repo catalogdomain.Repository,
	cache Cache,
	images ImageStore,
	audit *audit.Dispatcher,
	ttl time.Duration,
) *Stylists {
	return &Stylists{
		repo:   repo,
		cache:  cache,
		images: images,
		audit:  audit,
		ttl:    ttl,
	}
}

func (uc *Stylists) List(ctx context.Context) ([]models.Stylist, error) {
	key := stylistsKey + ":list"

	var list []models.Stylist
	if uc.cache != nil && uc.cache.GetJSON(ctx, key, &list) {
		return list, nil
	}

	list, err := uc.repo.ListStylists(ctx)
	if err != nil {
		return nil, err
	}
	if uc.cache != nil {
		uc.cache.SetJSON(ctx, key, list, uc.ttl)
	}
	return list, nil
}

func (uc *Stylists) Get(ctx context.Context, id uint) (*models.Stylist, error) {
	key := fmt.Sprintf("%s:id:%d", stylistsKey, id)

	var st models.Stylist
	if uc.cache != nil && uc.cache.GetJSON(ctx, key, &st) {
		return &st, nil
	}

	found, err := uc.repo.GetStylist(ctx, id)
	if err != nil {
		return nil, notFound(err, "stylist_not_found")
	}
	if uc.cache != nil {
		uc.cache.SetJSON(ctx, key, found, uc.ttl)
	}
	return found, nil
}

func (uc *Stylists) Create(
	ctx context.Context,
	actor identity.Actor,
	in CreateStylistInput,
) (*models.Stylist, error) {

	if !actor.IsAdmin() {
		return nil, httperr.ErrForbidden("admin_only")
	}

	st := &models.Stylist{
		Name:   strings.TrimSpace(in.Name),
		Email:  validators.NormalizeEmail(in.Email),
		Salary: in.Salary,
		Image:  in.Image,
	}
	if err := uc.validate(ctx, st); err != nil {
		return nil, err
	}

	if err := uc.repo.CreateStylist(ctx, st); err != nil {
		return nil, emailErr(err)
	}

	uc.changed(ctx, actor, "stylist_created", st.ID)
	return st, nil
}

func (uc *Stylists) Update(
	ctx context.Context,
	actor identity.Actor,
	id uint,
	in UpdateStylistInput,
) (*models.Stylist, error) {

	if !actor.IsAdmin() {
		return nil, httperr.ErrForbidden("admin_only")
	}

	st, err := uc.repo.GetStylist(ctx, id)
	if err != nil {
		return nil, notFound(err, "stylist_not_found")
	}

	if in.Name != nil {
		st.Name = strings.TrimSpace(*in.Name)
	}
	if in.Email != nil {
		st.Email = validators.NormalizeEmail(*in.Email)
	}
	if in.Salary != nil {
		st.Salary = *in.Salary
	}
	if in.Image != nil && *in.Image != "" {
		st.Image = *in.Image
	}

	if err := uc.validate(ctx, st); err != nil {
		return nil, err
	}
	if err := uc.repo.UpdateStylist(ctx, st); err != nil {
		return nil, emailErr(err)
	}

	// appointment snapshots keep the old name on purpose
	uc.changed(ctx, actor, "stylist_updated", id)
	return st, nil
}

// Delete refuses while the stylist still owns slots or appointments.
func (uc *Stylists) Delete(ctx context.Context, actor identity.Actor, id uint) error {
	if !actor.IsAdmin() {
		return httperr.ErrForbidden("admin_only")
	}

	if _, err := uc.repo.GetStylist(ctx, id); err != nil {
		return notFound(err, "stylist_not_found")
	}

	used, err := uc.repo.StylistInUse(ctx, id)
	if err != nil {
		return err
	}
	if used {
		return httperr.ErrConflict("stylist_in_use")
	}

	if err := uc.repo.DeleteStylist(ctx, id); err != nil {
		if errors.Is(err, domain.ErrInUse) {
			return httperr.ErrConflict("stylist_in_use")
		}
		return notFound(err, "stylist_not_found")
	}

	uc.changed(ctx, actor, "stylist_deleted", id)
	return nil
}

func (uc *Stylists) SetImage(
	ctx context.Context,
	actor identity.Actor,
	id uint,
	r io.Reader,
) (*models.Stylist, error) {

	if !actor.IsAdmin() {
		return nil, httperr.ErrForbidden("admin_only")
	}

	st, err := uc.repo.GetStylist(ctx, id)
	if err != nil {
		return nil, notFound(err, "stylist_not_found")
	}

	url, err := upload(ctx, uc.images, "stylists", r)
	if err != nil {
		return nil, err
	}

	st.Image = url
	if err := uc.repo.UpdateStylist(ctx, st); err != nil {
		return nil, emailErr(err)
	}

	uc.changed(ctx, actor, "stylist_image_updated", id)
	return st, nil
}

func (uc *Stylists) validate(ctx context.Context, st *models.Stylist) error {
	if st.Name == "" || st.Email == "" {
		return httperr.ErrBusiness("missing_fields")
	}
	if !validators.IsEmail(st.Email) {
		return httperr.ErrBusiness("invalid_email")
	}
	if st.Salary < 0 {
		return httperr.ErrBusiness("invalid_salary")
	}

	taken, err := uc.repo.StylistEmailTaken(ctx, st.Email, st.ID)
	if err != nil {
		return err
	}
	if taken {
		return httperr.ErrConflict("email_taken")
	}
	return nil
}

func (uc *Stylists) changed(ctx context.Context, actor identity.Actor, action string, id uint) {
	if uc.cache != nil {
		uc.cache.Invalidate(ctx, stylistsKey)
	}
	uc.audit.Dispatch(audit.Event{
		ActorID:  &actor.UserID,
		Action:   action,
		Entity:   "stylist",
		EntityID: &id,
	})
}

func emailErr(err error) error {
	switch {
	case errors.Is(err, domain.ErrDuplicate):
		return httperr.ErrConflict("email_taken")
	case errors.Is(err, domain.ErrNotFound):
		return httperr.ErrNotFound("stylist_not_found")
	}
	return err
}

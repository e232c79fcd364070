package user

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/auth"
	"github.com/BruksfildServices01/salon-scheduler/internal/domain"
	"github.com/BruksfildServices01/salon-scheduler/internal/domain/identity"
	userdomain "github.com/BruksfildServices01/salon-scheduler/internal/domain/user"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/media"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/validators"
)

// ImageStore is satisfied by *media.Storage.
type ImageStore interface {
	Upload(ctx context.Context, folder string, r io.Reader) (string, error)
}

type UpdateUserInput struct {
	Name    *string
	Email   *string
	Phone   *string
	Address *string

	// admin only
	Role *string
}

type Accounts struct {
	repo   userdomain.Repository
	images ImageStore
	audit  *audit.Dispatcher
}

func NewAccounts(
	repo userdomain.Repository,
	images ImageStore,
	audit *audit.Dispatcher,
) *Accounts {
	return &Accounts{
		repo:   repo,
		images: images,
		audit:  audit,
	}
}

func (uc *Accounts) List(ctx context.Context, actor identity.Actor) ([]models.User, error) {
	if !actor.IsAdmin() {
		return nil, httperr.ErrForbidden("admin_only")
	}
	return uc.repo.ListUsers(ctx)
}

func (uc *Accounts) Get(ctx context.Context, actor identity.Actor, id uint) (*models.User, error) {
	if !actor.CanAccess(id) {
		return nil, httperr.ErrForbidden("forbidden")
	}

	u, err := uc.repo.GetUser(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return u, nil
}

func (uc *Accounts) Update(
	ctx context.Context,
	actor identity.Actor,
	id uint,
	in UpdateUserInput,
) (*models.User, error) {

	if !actor.CanAccess(id) {
		return nil, httperr.ErrForbidden("forbidden")
	}
	if in.Role != nil && !actor.IsAdmin() {
		return nil, httperr.ErrForbidden("admin_only")
	}

	u, err := uc.repo.GetUser(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, httperr.ErrBusiness("missing_fields")
		}
		u.Name = name
	}
	if in.Email != nil {
		email := validators.NormalizeEmail(*in.Email)
		if !validators.IsEmail(email) {
			return nil, httperr.ErrBusiness("invalid_email")
		}

		taken, err := uc.repo.EmailTaken(ctx, email, u.ID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, httperr.ErrConflict("email_taken")
		}
		u.Email = email
	}
	if in.Phone != nil {
		u.Phone = strings.TrimSpace(*in.Phone)
	}
	if in.Address != nil {
		u.Address = strings.TrimSpace(*in.Address)
	}
	if in.Role != nil {
		if *in.Role != models.RoleUser && *in.Role != models.RoleAdmin {
			return nil, httperr.ErrBusiness("invalid_request")
		}
		u.Role = *in.Role
	}

	if err := uc.save(ctx, u); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  &actor.UserID,
		Action:   "user_updated",
		Entity:   "user",
		EntityID: &u.ID,
	})
	return u, nil
}

// Delete removes a customer account. Admin accounts and customers with an
// appointment history stay.
func (uc *Accounts) Delete(ctx context.Context, actor identity.Actor, id uint) error {
	if !actor.IsAdmin() {
		return httperr.ErrForbidden("admin_only")
	}

	u, err := uc.repo.GetUser(ctx, id)
	if err != nil {
		return notFound(err)
	}
	if u.IsAdmin() {
		return httperr.ErrForbidden("cannot_delete_admin")
	}

	has, err := uc.repo.HasAppointments(ctx, id)
	if err != nil {
		return err
	}
	if has {
		return httperr.ErrConflict("user_in_use")
	}

	if err := uc.repo.DeleteUser(ctx, id); err != nil {
		if errors.Is(err, domain.ErrInUse) {
			return httperr.ErrConflict("user_in_use")
		}
		return notFound(err)
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  &actor.UserID,
		Action:   "user_deleted",
		Entity:   "user",
		EntityID: &id,
	})
	return nil
}

// ChangePassword requires the current password from the account owner. An
// admin resetting somebody else's password does not.
func (uc *Accounts) ChangePassword(
	ctx context.Context,
	actor identity.Actor,
	id uint,
	current string,
	next string,
) error {

	if !actor.CanAccess(id) {
		return httperr.ErrForbidden("forbidden")
	}
	if !validators.IsPasswordStrong(next) {
		return httperr.ErrBusiness("weak_password")
	}

	u, err := uc.repo.GetUser(ctx, id)
	if err != nil {
		return notFound(err)
	}

	if actor.Owns(id) && !auth.CheckPassword(u.PasswordHash, current) {
		return httperr.ErrBusiness("wrong_password")
	}

	hash, err := auth.HashPassword(next)
	if err != nil {
		return err
	}
	u.PasswordHash = hash

	if err := uc.save(ctx, u); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  &actor.UserID,
		Action:   "password_changed",
		Entity:   "user",
		EntityID: &u.ID,
	})
	return nil
}

func (uc *Accounts) SetAvatar(
	ctx context.Context,
	actor identity.Actor,
	id uint,
	r io.Reader,
) (*models.User, error) {

	if !actor.CanAccess(id) {
		return nil, httperr.ErrForbidden("forbidden")
	}
	if uc.images == nil {
		return nil, httperr.ErrUnavailable("storage_not_configured")
	}

	u, err := uc.repo.GetUser(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}

	url, err := uc.images.Upload(ctx, "avatars", r)
	if err != nil {
		if errors.Is(err, media.ErrInvalidImage) {
			return nil, httperr.ErrBusiness("invalid_image")
		}
		return nil, err
	}

	u.Avatar = url
	if err := uc.save(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (uc *Accounts) save(ctx context.Context, u *models.User) error {
	err := uc.repo.UpdateUser(ctx, u)
	switch {
	case errors.Is(err, domain.ErrDuplicate):
		return httperr.ErrConflict("email_taken")
	case err != nil:
		return notFound(err)
	}
	return nil
}

func notFound(err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return httperr.ErrNotFound("user_not_found")
	}
	return err
}

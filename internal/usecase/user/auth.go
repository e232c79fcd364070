package user

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/auth"
	"github.com/BruksfildServices01/salon-scheduler/internal/domain"
	userdomain "github.com/BruksfildServices01/salon-scheduler/internal/domain/user"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/validators"
)

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Phone    string
	Address  string
}

type Session struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// Auth issues and checks tokens. Revoked token ids live in the blacklist
// until the token would have expired anyway.
type Auth struct {
	repo      userdomain.Repository
	tokens    *auth.Manager
	blacklist auth.Blacklist
	audit     *audit.Dispatcher
	log       *zap.Logger
}

func NewAuth(
	repo userdomain.Repository,
	tokens *auth.Manager,
	blacklist auth.Blacklist,
	audit *audit.Dispatcher,
	log *zap.Logger,
) *Auth {
	if log == nil {
		log = zap.NewNop()
	}
	return &Auth{
		repo:      repo,
		tokens:    tokens,
		blacklist: blacklist,
		audit:     audit,
		log:       log,
	}
}

func (uc *Auth) Register(ctx context.Context, in RegisterInput) (*Session, error) {
	name := strings.TrimSpace(in.Name)
	email := validators.NormalizeEmail(in.Email)

	if name == "" || email == "" || in.Password == "" {
		return nil, httperr.ErrBusiness("missing_fields")
	}
	if !validators.IsEmail(email) {
		return nil, httperr.ErrBusiness("invalid_email")
	}
	if !validators.IsPasswordStrong(in.Password) {
		return nil, httperr.ErrBusiness("weak_password")
	}

	taken, err := uc.repo.EmailTaken(ctx, email, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, httperr.ErrConflict("email_taken")
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	u := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Phone:        strings.TrimSpace(in.Phone),
		Address:      strings.TrimSpace(in.Address),
		Role:         models.RoleUser,
	}
	if err := uc.repo.CreateUser(ctx, u); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, httperr.ErrConflict("email_taken")
		}
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  &u.ID,
		Action:   "user_registered",
		Entity:   "user",
		EntityID: &u.ID,
	})

	return uc.session(u)
}

func (uc *Auth) Login(ctx context.Context, email, password string) (*Session, error) {
	email = validators.NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, httperr.ErrBusiness("missing_fields")
	}

	u, err := uc.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, httperr.ErrUnauthenticated("invalid_credentials")
		}
		return nil, err
	}
	if !auth.CheckPassword(u.PasswordHash, password) {
		return nil, httperr.ErrUnauthenticated("invalid_credentials")
	}

	uc.log.Info("user logged in", zap.Uint("user_id", u.ID))
	return uc.session(u)
}

// Logout revokes the presented token for the rest of its lifetime.
func (uc *Auth) Logout(ctx context.Context, claims *auth.Claims) error {
	if claims == nil || claims.ID == "" {
		return httperr.ErrUnauthenticated("invalid_token")
	}
	return uc.blacklist.Revoke(ctx, claims.ID, claims.Remaining())
}

// Authenticate verifies a bearer token and reloads its user. The role on
// the returned record is the persisted one, not the one in the token.
func (uc *Auth) Authenticate(ctx context.Context, token string) (*models.User, *auth.Claims, error) {
	if token == "" {
		return nil, nil, httperr.ErrUnauthenticated("unauthenticated")
	}

	claims, err := uc.tokens.Parse(token)
	if err != nil {
		return nil, nil, httperr.ErrUnauthenticated("invalid_token")
	}

	revoked, err := uc.blacklist.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, nil, err
	}
	if revoked {
		return nil, nil, httperr.ErrUnauthenticated("invalid_token")
	}

	id, err := claims.UserID()
	if err != nil {
		return nil, nil, httperr.ErrUnauthenticated("invalid_token")
	}

	u, err := uc.repo.GetUser(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil, httperr.ErrUnauthenticated("user_not_found")
		}
		return nil, nil, err
	}
	return u, claims, nil
}

// SeedAdmin creates the configured administrator on first start. An
// existing account with that email is left untouched.
func (uc *Auth) SeedAdmin(ctx context.Context, name, email, password string) error {
	email = validators.NormalizeEmail(email)
	if email == "" || password == "" {
		return nil
	}

	if _, err := uc.repo.GetUserByEmail(ctx, email); err == nil {
		return nil
	} else if !errors.Is(err, domain.ErrNotFound) {
		return err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	if name == "" {
		name = "Administrator"
	}

	u := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         models.RoleAdmin,
	}
	if err := uc.repo.CreateUser(ctx, u); err != nil {
		return err
	}

	uc.log.Info("default admin created", zap.String("email", email))
	return nil
}

func (uc *Auth) session(u *models.User) (*Session, error) {
	token, _, err := uc.tokens.Generate(u.ID, u.Role)
	if err != nil {
		return nil, err
	}
	return &Session{Token: token, User: u}, nil
}

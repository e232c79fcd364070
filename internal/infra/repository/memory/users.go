package memory

import (
	"cmp"
	"context"
	"slices"
	"strings"

	"github.com/BruksfildServices01/salon-scheduler/internal/domain"
	"github.com/BruksfildServices01/salon-scheduler/internal/domain/user"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type UserRepo struct {
	s *Store
}

func (s *Store) Users() *UserRepo {
	return &UserRepo{s: s}
}

var _ user.Repository = (*UserRepo)(nil)

func (r *UserRepo) GetUser(_ context.Context, id uint) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &u, nil
}

func (r *UserRepo) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range r.s.users {
		if strings.EqualFold(u.Email, email) {
			return &u, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *UserRepo) CreateUser(_ context.Context, u *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.s.userEmailTaken(u.Email, 0) {
		return domain.ErrDuplicate
	}

	now := r.s.Now()
	u.ID = r.s.next("users")
	if u.Role == "" {
		u.Role = models.RoleUser
	}
	u.CreatedAt = now
	u.UpdatedAt = now
	r.s.users[u.ID] = *u
	return nil
}

func (r *UserRepo) UpdateUser(_ context.Context, u *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[u.ID]; !ok {
		return domain.ErrNotFound
	}
	if r.s.userEmailTaken(u.Email, u.ID) {
		return domain.ErrDuplicate
	}
	u.UpdatedAt = r.s.Now()
	r.s.users[u.ID] = *u
	return nil
}

func (r *UserRepo) DeleteUser(_ context.Context, id uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.users, id)
	return nil
}

func (r *UserRepo) ListUsers(_ context.Context) ([]models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	list := make([]models.User, 0, len(r.s.users))
	for _, u := range r.s.users {
		list = append(list, u)
	}
	slices.SortFunc(list, func(a, b models.User) int { return cmp.Compare(b.ID, a.ID) })
	return list, nil
}

func (r *UserRepo) EmailTaken(_ context.Context, email string, excludeID uint) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	return r.s.userEmailTaken(email, excludeID), nil
}

func (r *UserRepo) HasAppointments(_ context.Context, userID uint) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, ap := range r.s.appointments {
		if ap.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (s *Store) userEmailTaken(email string, excludeID uint) bool {
	for _, u := range s.users {
		if u.ID != excludeID && strings.EqualFold(u.Email, email) {
			return true
		}
	}
	return false
}

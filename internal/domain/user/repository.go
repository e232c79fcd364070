package user

import (
	"context"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type Repository interface {
	GetUser(ctx context.Context, id uint) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	CreateUser(ctx context.Context, u *models.User) error
	UpdateUser(ctx context.Context, u *models.User) error
	DeleteUser(ctx context.Context, id uint) error
	ListUsers(ctx context.Context) ([]models.User, error)

	EmailTaken(ctx context.Context, email string, excludeID uint) (bool, error)
	HasAppointments(ctx context.Context, userID uint) (bool, error)
}

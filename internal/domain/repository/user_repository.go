package repository

import (
	"context"

	"github.com/jhoicas/catalogo-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para cuentas (DIP).
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	// GetByEmail devuelve (nil, nil) si no existe.
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
}

// ProfileRepository define el puerto de persistencia para perfiles de acceso.
type ProfileRepository interface {
	Create(ctx context.Context, profile *entity.UserProfile) error
	// GetByID y GetByEmail devuelven (nil, nil) si no existe.
	GetByID(ctx context.Context, id string) (*entity.UserProfile, error)
	GetByEmail(ctx context.Context, email string) (*entity.UserProfile, error)
	List(ctx context.Context, status string, limit, offset int) ([]*entity.UserProfile, error)
	UpdateAccess(ctx context.Context, id, status string, canSeePrices bool) (*entity.UserProfile, error)
}

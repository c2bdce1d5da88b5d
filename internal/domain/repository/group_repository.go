package repository

import (
	"context"

	"github.com/jhoicas/catalogo-api/internal/domain/entity"
)

// GroupRepository define el puerto remoto para Group. El grupo reservado nunca llega aquí.
type GroupRepository interface {
	ListByUser(ctx context.Context, userID string) ([]*entity.Group, error)
	Create(ctx context.Context, group *entity.Group) (*entity.Group, error)
	Delete(ctx context.Context, userID, name string) error
}

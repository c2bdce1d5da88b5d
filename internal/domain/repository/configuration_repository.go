package repository

import (
	"context"

	"github.com/jhoicas/catalogo-api/internal/domain/entity"
)

// ConfigurationRepository define el puerto remoto para la configuración (una fila por usuario).
type ConfigurationRepository interface {
	// Get devuelve domain.ErrNotFound (envuelto) si el usuario aún no tiene configuración.
	Get(ctx context.Context, userID string) (*entity.UserConfiguration, error)
	Upsert(ctx context.Context, cfg *entity.UserConfiguration) (*entity.UserConfiguration, error)
}

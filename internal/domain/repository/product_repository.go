package repository

import (
	"context"

	"github.com/jhoicas/catalogo-api/internal/domain/entity"
)

// ProductRepository define el puerto remoto para Product (DIP).
// Todas las operaciones van acotadas por userID; nunca se ven filas de otro usuario.
type ProductRepository interface {
	// ListByUser devuelve los productos ordenados por marca y nombre ascendente.
	ListByUser(ctx context.Context, userID string) ([]*entity.Product, error)
	// Create inserta el producto; el backend asigna el ID y devuelve la fila canónica.
	Create(ctx context.Context, userID string, product *entity.Product) (*entity.Product, error)
	// Update aplica el patch; un ID inexistente para el usuario es un error de backend.
	Update(ctx context.Context, userID, id string, patch entity.ProductPatch) (*entity.Product, error)
	Delete(ctx context.Context, userID, id string) error
}

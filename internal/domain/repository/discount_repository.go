package repository

import (
	"context"

	"github.com/jhoicas/catalogo-api/internal/domain/entity"
)

// DiscountRepository define el puerto remoto para los descuentos por marca.
type DiscountRepository interface {
	ListByUser(ctx context.Context, userID string) ([]*entity.BrandDiscount, error)
	// Upsert crea o reemplaza el descuento de (usuario, marca).
	Upsert(ctx context.Context, discount *entity.BrandDiscount) (*entity.BrandDiscount, error)
	Delete(ctx context.Context, userID, brand string) error
}

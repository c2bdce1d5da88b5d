package usecase

import (
	"context"

	"github.com/jhoicas/catalogo-api/internal/application/catalog"
	"github.com/jhoicas/catalogo-api/internal/application/dto"
)

// DiscountUseCase casos de uso de los descuentos por marca.
type DiscountUseCase struct {
	factory *catalog.Factory
}

// NewDiscountUseCase construye el caso de uso.
func NewDiscountUseCase(factory *catalog.Factory) *DiscountUseCase {
	return &DiscountUseCase{factory: factory}
}

// List devuelve los descuentos del usuario indexados por marca.
func (uc *DiscountUseCase) List(ctx context.Context, s catalog.Session) (*dto.DiscountListResponse, error) {
	discounts, err := uc.factory.For(s).ListDiscounts(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.DiscountListResponse{Items: discounts}, nil
}

// Set fija el descuento de la marca. La marca se capitaliza igual que en los productos.
func (uc *DiscountUseCase) Set(ctx context.Context, s catalog.Session, brand string, in dto.SetDiscountRequest) (*dto.DiscountListResponse, error) {
	coord := uc.factory.For(s)
	if err := coord.SetDiscount(ctx, Capitalize(brand), *in.Percent); err != nil {
		return nil, err
	}
	return uc.List(ctx, s)
}

// Delete quita el descuento de la marca.
func (uc *DiscountUseCase) Delete(ctx context.Context, s catalog.Session, brand string) error {
	return uc.factory.For(s).DeleteDiscount(ctx, Capitalize(brand))
}

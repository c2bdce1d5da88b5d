package usecase

import (
	"context"

	"github.com/jhoicas/catalogo-api/internal/application/catalog"
	"github.com/jhoicas/catalogo-api/internal/application/dto"
	"github.com/jhoicas/catalogo-api/internal/domain/entity"
)

// SessionUseCase abre la sesión: carga inicial y migración de datos locales.
type SessionUseCase struct {
	loader *catalog.Loader
}

// NewSessionUseCase construye el caso de uso.
func NewSessionUseCase(loader *catalog.Loader) *SessionUseCase {
	return &SessionUseCase{loader: loader}
}

// Load carga productos, grupos, configuración y descuentos de la sesión.
func (uc *SessionUseCase) Load(ctx context.Context, s catalog.Session, role string) (*dto.SessionResponse, error) {
	data, err := uc.loader.Load(ctx, s)
	if err != nil {
		return nil, err
	}
	minStock := entity.DefaultMinStock
	if data.Configuration != nil {
		minStock = data.Configuration.MinStockThreshold
	}
	products := append([]*entity.Product(nil), data.Products...)
	SortProducts(products)
	resp := &dto.SessionResponse{
		Products:      ToProductResponses(products, minStock, entity.CanSeeWholesale(role), data.Discounts),
		Groups:        data.Groups,
		Discounts:     data.Discounts,
		Configuration: ToConfigurationResponse(data.Configuration),
		Remote:        data.Remote,
	}
	if m := data.Migration; m != nil {
		resp.Migration = &dto.MigrationResponse{
			Products:        m.Products,
			ProductsSkipped: m.ProductsSkipped,
			Groups:          m.Groups,
			GroupsSkipped:   m.GroupsSkipped,
			Configuration:   m.Configuration,
			Discounts:       m.Discounts,
		}
	}
	return resp, nil
}

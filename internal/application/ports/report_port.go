package ports

import (
	"context"

	"github.com/jhoicas/catalogo-api/internal/domain/entity"
)

// ShortlistRenderer define el puerto de salida para el listado imprimible de faltantes.
type ShortlistRenderer interface {
	// RenderShortlist genera el documento con los productos a reponer.
	// showPrices en false omite la columna de precio mayorista.
	RenderShortlist(ctx context.Context, owner string, products []*entity.Product, minStock int, showPrices bool) ([]byte, error)
}

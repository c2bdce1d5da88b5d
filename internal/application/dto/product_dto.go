package dto

import "github.com/shopspring/decimal"

// CreateProductRequest entrada para crear un producto. Los campos deshabilitados en
// la configuración de carga se completan con valores por defecto.
type CreateProductRequest struct {
	Name           string          `json:"name" validate:"max=200"`
	Brand          string          `json:"brand" validate:"max=200"`
	Code           string          `json:"code" validate:"max=100"`
	Quantity       *int            `json:"quantity" validate:"omitempty,min=0"`
	Group          string          `json:"group" validate:"max=100"`
	Photo          string          `json:"photo"`
	WholesalePrice decimal.Decimal `json:"wholesale_price" validate:"gt=0"`
}

// UpdateProductRequest edición completa o parcial; nil = no cambia.
type UpdateProductRequest struct {
	Name           *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Brand          *string          `json:"brand" validate:"omitempty,min=1,max=200"`
	Code           *string          `json:"code" validate:"omitempty,min=1,max=100"`
	Quantity       *int             `json:"quantity" validate:"omitempty,min=0"`
	Group          *string          `json:"group" validate:"omitempty,max=100"`
	Photo          *string          `json:"photo"`
	Visible        *bool            `json:"visible"`
	Missing        *bool            `json:"missing"`
	WholesalePrice *decimal.Decimal `json:"wholesale_price" validate:"omitempty,gt=0"`
}

// StockRequest ajuste de stock: Delta suma (o resta) y Set fija el valor. Uno de los dos.
type StockRequest struct {
	Delta *int `json:"delta" validate:"required_without=Set"`
	Set   *int `json:"set" validate:"omitempty,min=0"`
}

// ProductFilter filtros del listado.
type ProductFilter struct {
	Text       string `query:"q"`
	Group      string `query:"group"`
	Visibility string `query:"visibility" validate:"omitempty,oneof=visibles ocultos todos"`
	Stock      string `query:"stock" validate:"omitempty,oneof=todos bajo sin"`
}

// ProductResponse salida de un producto. Los precios se omiten para roles sin permiso;
// DiscountedPrice sólo aparece cuando la marca tiene descuento.
type ProductResponse struct {
	ID              string           `json:"id"`
	Name            string           `json:"name"`
	Brand           string           `json:"brand"`
	Code            string           `json:"code"`
	Quantity        int              `json:"quantity"`
	Group           string           `json:"group"`
	Photo           string           `json:"photo,omitempty"`
	Missing         bool             `json:"missing"`
	Visible         bool             `json:"visible"`
	LowStock        bool             `json:"low_stock"`
	Local           bool             `json:"local"`
	WholesalePrice  *decimal.Decimal `json:"wholesale_price,omitempty"`
	Discount        int              `json:"discount,omitempty"`
	DiscountedPrice *decimal.Decimal `json:"discounted_price,omitempty"`
}

// ProductListResponse lista filtrada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Total int               `json:"total"`
}

// ResetMissingResponse cantidad de productos desmarcados.
type ResetMissingResponse struct {
	Reset int `json:"reset"`
}

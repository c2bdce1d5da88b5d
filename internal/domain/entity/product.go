package entity

import (
	"strings"

	"github.com/shopspring/decimal"
)

// LocalIDPrefix marca los IDs generados localmente cuando el backend no está disponible.
// Los IDs del servidor son numéricos, así que ambos espacios nunca colisionan.
const LocalIDPrefix = "local-"

// Product representa un artículo del catálogo de un usuario.
// Group y Photo vacíos equivalen a null en el backend.
type Product struct {
	ID             string
	UserID         string
	Name           string
	Brand          string
	Code           string // SKU libre, se espera único por usuario
	Quantity       int
	Group          string
	Photo          string // data-URI o URL
	Missing        bool   // marcado "para pedir"
	Visible        bool
	WholesalePrice decimal.Decimal
}

// IsLocal indica si el producto solo existe en el caché local.
func (p *Product) IsLocal() bool {
	return strings.HasPrefix(p.ID, LocalIDPrefix)
}

// BelowThreshold indica stock en o bajo el mínimo configurado.
func (p *Product) BelowThreshold(minStock int) bool {
	return p.Quantity <= minStock
}

// ProductPatch describe una actualización parcial; nil = no cambia.
type ProductPatch struct {
	Name           *string
	Brand          *string
	Code           *string
	Quantity       *int
	Group          *string
	Photo          *string
	Missing        *bool
	Visible        *bool
	WholesalePrice *decimal.Decimal
}

// IsEmpty indica que el patch no modifica ningún campo.
func (p ProductPatch) IsEmpty() bool {
	return p.Name == nil && p.Brand == nil && p.Code == nil && p.Quantity == nil &&
		p.Group == nil && p.Photo == nil && p.Missing == nil && p.Visible == nil &&
		p.WholesalePrice == nil
}

// Apply copia los campos presentes del patch sobre p.
func (p ProductPatch) Apply(dst *Product) {
	if p.Name != nil {
		dst.Name = *p.Name
	}
	if p.Brand != nil {
		dst.Brand = *p.Brand
	}
	if p.Code != nil {
		dst.Code = *p.Code
	}
	if p.Quantity != nil {
		dst.Quantity = *p.Quantity
	}
	if p.Group != nil {
		dst.Group = *p.Group
	}
	if p.Photo != nil {
		dst.Photo = *p.Photo
	}
	if p.Missing != nil {
		dst.Missing = *p.Missing
	}
	if p.Visible != nil {
		dst.Visible = *p.Visible
	}
	if p.WholesalePrice != nil {
		dst.WholesalePrice = *p.WholesalePrice
	}
}

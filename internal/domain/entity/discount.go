package entity

import (
	"strings"

	"github.com/shopspring/decimal"
)

// MaxDiscount es el porcentaje máximo de descuento por marca.
const MaxDiscount = 100

// BrandDiscount es el descuento porcentual de un usuario sobre una marca.
type BrandDiscount struct {
	UserID  string
	Brand   string
	Percent int
}

// BrandDiscounts indexa los porcentajes por marca.
type BrandDiscounts map[string]int

// NormalizeBrand recorta la marca; es la clave con la que se guarda el descuento.
func NormalizeBrand(brand string) string {
	return strings.TrimSpace(brand)
}

// For devuelve el porcentaje vigente para la marca (0 si no tiene).
func (d BrandDiscounts) For(brand string) int {
	return d[NormalizeBrand(brand)]
}

// Apply devuelve el precio con el descuento de la marca y el porcentaje aplicado.
// Sin descuento (o con 0) el precio vuelve intacto.
func (d BrandDiscounts) Apply(price decimal.Decimal, brand string) (decimal.Decimal, int) {
	pct := d.For(brand)
	if pct <= 0 {
		return price, 0
	}
	factor := decimal.NewFromInt(int64(MaxDiscount - pct)).Div(decimal.NewFromInt(MaxDiscount))
	return price.Mul(factor).Round(2), pct
}

// ToDiscounts arma el índice a partir de las filas.
func ToDiscounts(rows []*BrandDiscount) BrandDiscounts {
	out := make(BrandDiscounts, len(rows))
	for _, r := range rows {
		out[NormalizeBrand(r.Brand)] = r.Percent
	}
	return out
}

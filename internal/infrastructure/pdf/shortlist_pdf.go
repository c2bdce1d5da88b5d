// Package pdf genera el listado imprimible de faltantes con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + usuario      │  Fecha + stock mínimo        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Marca | Producto | Código | Grupo | Stock | Precio   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: total de productos a pedir                          │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/catalogo-api/internal/application/ports"
	"github.com/jhoicas/catalogo-api/internal/domain/entity"
)

var _ ports.ShortlistRenderer = (*ShortlistGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 180, Green: 30, Blue: 30}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// ShortlistGenerator implementa ports.ShortlistRenderer usando Maroto v2.
type ShortlistGenerator struct {
	now func() time.Time
}

// NewShortlistGenerator construye el generador.
func NewShortlistGenerator() *ShortlistGenerator {
	return &ShortlistGenerator{now: time.Now}
}

// RenderShortlist genera el PDF y devuelve sus bytes.
func (g *ShortlistGenerator) RenderShortlist(
	_ context.Context,
	owner string,
	products []*entity.Product,
	minStock int,
	showPrices bool,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Productos a pedir", true).
		WithAuthor(nonEmpty(owner, "catalogo"), true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(owner, g.now(), minStock))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow(showPrices))
	m.AddRows(tableRows(products, minStock, showPrices)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(footerRow(len(products)))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(owner string, now time.Time, minStock int) core.Row {
	return row.New(16).Add(
		col.New(7).Add(
			text.New("PRODUCTOS A PEDIR", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(nonEmpty(owner, "-"), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("Fecha: "+now.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
			text.New("Stock mínimo: "+strconv.Itoa(minStock), props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow(showPrices bool) core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	cols := []core.Col{
		h("Marca", 2, align.Left),
		h("Producto", 4, align.Left),
		h("Código", 2, align.Left),
		h("Grupo", 2, align.Left),
		h("Stock", 1, align.Center),
	}
	if showPrices {
		cols = append(cols, h("Precio", 1, align.Right))
	} else {
		cols = append(cols, col.New(1))
	}
	return row.New(8).Add(cols...)
}

func tableRows(products []*entity.Product, minStock int, showPrices bool) []core.Row {
	result := make([]core.Row, 0, len(products))
	for _, p := range products {
		stockText := props.Text{Size: 8, Align: align.Center, Top: 1}
		if p.BelowThreshold(minStock) {
			stockText.Style = fontstyle.Bold
			stockText.Color = colorAlert
		}
		name := p.Name
		if p.Missing {
			name += " *"
		}
		cols := []core.Col{
			col.New(2).Add(text.New(p.Brand, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(4).Add(text.New(name, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(p.Code, props.Text{Size: 8, Top: 1, Left: 1, Color: colorGray})),
			col.New(2).Add(text.New(nonEmpty(p.Group, entity.DefaultGroup), props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(1).Add(text.New(strconv.Itoa(p.Quantity), stockText)),
		}
		if showPrices {
			cols = append(cols, col.New(1).Add(text.New("$"+formatMoney(p.WholesalePrice),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})))
		} else {
			cols = append(cols, col.New(1))
		}
		result = append(result, row.New(7).Add(cols...))
	}
	return result
}

func footerRow(total int) core.Row {
	return row.New(10).Add(col.New(12).Add(
		text.New(fmt.Sprintf("Total a pedir: %d   (* marcado como faltante)", total), props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Color: colorPrimary, Top: 2,
		}),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatMoney formatea con puntos de miles y coma decimal.
// Ej: 25000 → "25.000,00", 1234.5 → "1.234,50"
func formatMoney(d decimal.Decimal) string {
	s := d.StringFixed(2)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	intPart, frac, _ := strings.Cut(s, ".")

	n := len(intPart)
	buf := make([]byte, 0, n+n/3+3)
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	out := string(buf) + "," + frac
	if neg {
		out = "-" + out
	}
	return out
}

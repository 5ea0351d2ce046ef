// Package pdf genera el catálogo de categorías en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + total de categorías  │  Fecha de emisión   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Categoría | Seq | Tipo | Visible | Carrito | Precio  │
//	│         (subcategorías indentadas bajo su padre)             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: leyenda                                             │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
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

	"github.com/jhoicas/categories-api/internal/application/category"
	"github.com/jhoicas/categories-api/internal/application/dto"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// indentPerLevel sangría (mm) por nivel de profundidad.
const indentPerLevel = 4

var _ category.CatalogRenderer = (*MarotoCatalogGenerator)(nil)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoCatalogGenerator implementa category.CatalogRenderer usando Maroto v2.
type MarotoCatalogGenerator struct {
	title string
}

// NewMarotoCatalogGenerator construye el generador. title encabeza el documento.
func NewMarotoCatalogGenerator(title string) *MarotoCatalogGenerator {
	if title == "" {
		title = "Catálogo de categorías"
	}
	return &MarotoCatalogGenerator{title: title}
}

// RenderCatalog genera el PDF del árbol y devuelve sus bytes.
func (g *MarotoCatalogGenerator) RenderCatalog(_ context.Context, tree []dto.CategoryTreeNode, generatedAt time.Time) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(g.title, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(g.title, countNodes(tree), generatedAt))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	rows := treeRows(tree, 0)
	if len(rows) == 0 {
		rows = append(rows, row.New(8).Add(col.New(12).Add(
			text.New("Sin categorías registradas.", props.Text{
				Size: 9, Align: align.Center, Color: colorGray, Top: 2,
			}),
		)))
	}
	m.AddRows(rows...)

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow())

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(title string, total int, generatedAt time.Time) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New(title, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("%d categorías", total), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("Emitido: "+generatedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 3, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Categoría", 5, align.Left),
		h("Seq.", 1, align.Center),
		h("Tipo", 2, align.Left),
		h("Visible", 1, align.Center),
		h("Carrito", 1, align.Center),
		h("Precio", 2, align.Right),
	)
}

// treeRows: una fila por nodo en preorden; los hijos van indentados.
func treeRows(nodes []dto.CategoryTreeNode, depth int) []core.Row {
	var result []core.Row
	for _, n := range nodes {
		c := n.Category
		style := fontstyle.Normal
		if depth == 0 {
			style = fontstyle.Bold
		}
		result = append(result, row.New(6).Add(
			col.New(5).Add(text.New(c.Name, props.Text{
				Size: 8, Style: style, Top: 1, Left: float64(1 + depth*indentPerLevel),
			})),
			col.New(1).Add(text.New(fmt.Sprintf("%d", c.Sequence), props.Text{
				Size: 8, Align: align.Center, Top: 1,
			})),
			col.New(2).Add(text.New(c.CategoryType, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(1).Add(text.New(visibility(c), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(1).Add(text.New(yesNo(c.AddToCart), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(price(c), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
		result = append(result, treeRows(n.Children, depth+1)...)
	}
	return result
}

func footerRow() core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New("U = visible para usuarios, V = visible para vendedores.", props.Text{
			Size: 6.5, Color: colorGray, Top: 2,
		}),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func countNodes(nodes []dto.CategoryTreeNode) int {
	n := len(nodes)
	for _, c := range nodes {
		n += countNodes(c.Children)
	}
	return n
}

func visibility(c dto.CategoryResponse) string {
	var parts []string
	if c.VisibleToUser {
		parts = append(parts, "U")
	}
	if c.VisibleToVendor {
		parts = append(parts, "V")
	}
	if len(parts) == 0 {
		return "—"
	}
	return strings.Join(parts, "/")
}

func yesNo(b bool) string {
	if b {
		return "Sí"
	}
	return "No"
}

// price: solo subcategorías con precio; el resto "—".
func price(c dto.CategoryResponse) string {
	if c.SubcategoryFields == nil || c.Price == nil {
		return "—"
	}
	return "$" + formatMoney(decimal.NewFromFloat(*c.Price).StringFixed(2))
}

// formatMoney inserta puntos de miles en la parte entera y coma decimal.
// Ej: "25000.50" → "25.000,50"
func formatMoney(s string) string {
	intPart, frac, hasFrac := strings.Cut(s, ".")
	sign := ""
	if strings.HasPrefix(intPart, "-") {
		sign, intPart = "-", intPart[1:]
	}
	n := len(intPart)
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	out := sign + string(buf)
	if hasFrac {
		out += "," + frac
	}
	return out
}

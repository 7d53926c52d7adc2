// Package pdf implementa la representación gráfica de un DTE FEL (SAT Guatemala).
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Emisor + NIT        │  Tipo DTE + Serie/Número     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  EMISOR: Dirección / Municipio / Email                       │
//	│  RECEPTOR: Nombre + NIT                                      │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: # | Cant | Descripción | P.Unit | Total              │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Subtotal / IVA / TOTAL                             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER FEL: Autorización (UUID) + QR de verificación        │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"net/url"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
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

	"github.com/jhoicas/Ventas-api/internal/application/billing"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/pkg/fel"
)

// verificadorSAT portal público de verificación de DTE.
const verificadorSAT = "https://felpub.c.sat.gob.gt/verificador-web/publico/vistas/verificacionDte.jsf"

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

var _ billing.FiscalPDFGenerator = (*MarotoPDFGenerator)(nil)

// MarotoPDFGenerator implementa billing.FiscalPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateFiscalPDF genera el PDF del documento y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateFiscalPDF(_ context.Context, doc *entity.FiscalDocument, p billing.InvoicePayload) ([]byte, error) {
	if doc == nil {
		return nil, fmt.Errorf("pdf: documento nil")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Factura Electrónica en Línea", true).
		WithAuthor(p.Seller.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(doc, p))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(emisorRow(p.Seller))
	m.AddRows(receptorRow(p.Buyer))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableDetailRows(p.Lines)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(p))

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(felFooterRows(doc, p)...)

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return out.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(doc *entity.FiscalDocument, p billing.InvoicePayload) core.Row {
	tipo := fel.DocumentTypes[doc.DocumentType]
	if tipo == "" {
		tipo = doc.DocumentType
	}
	fecha := p.IssuedAt.Format("02/01/2006 15:04")

	return row.New(18).Add(
		col.New(7).Add(
			text.New(nonEmpty(p.Seller.TradeName, p.Seller.Name), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("NIT: "+p.Seller.NIT, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(tipo, props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New("Serie "+doc.Serie+"  No. "+doc.Number, props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 7,
			}),
			text.New("Emisión: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

func emisorRow(s billing.Seller) core.Row {
	return row.New(12).Add(
		col.New(12).Add(
			text.New(s.Name, props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("%s, %s, %s   |   Email: %s",
				nonEmpty(s.Address, "Ciudad"),
				nonEmpty(s.Municipality, "-"),
				nonEmpty(s.Department, "-"),
				nonEmpty(s.Email, "-"),
			), props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

func receptorRow(b billing.Buyer) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("RECEPTOR", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(b.Name, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New("NIT: "+nonEmpty(b.NIT, fel.ConsumidorFinal), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("#", 1, align.Center),
		h("Cant.", 1, align.Center),
		h("Descripción", 6, align.Left),
		h("P. Unit.", 2, align.Right),
		h("Total", 2, align.Right),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

func tableDetailRows(lines []billing.InvoiceLine) []core.Row {
	result := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(fmt.Sprint(l.LineNumber), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(1).Add(text.New(fmt.Sprint(l.Quantity), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(6).Add(text.New(l.Description, props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1})),
			col.New(2).Add(text.New(formatMoney(l.UnitPrice), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(formatMoney(l.Total), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return result
}

func totalsRow(p billing.InvoicePayload) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2})
	}
	value := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1, Top: top})
	}
	return row.New(20).Add(
		col.New(6),
		col.New(3).Add(
			label("Subtotal:"),
			text.New("IVA:", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: 5}),
			text.New("TOTAL:", props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Right: 2, Top: 11, Color: colorPrimary}),
		),
		col.New(3).Add(
			value(formatMoney(p.Subtotal), 0),
			value(formatMoney(p.Tax), 5),
			text.New(formatMoney(p.Total), props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Right: 1, Top: 11, Color: colorPrimary}),
		),
	)
}

func felFooterRows(doc *entity.FiscalDocument, p billing.InvoicePayload) []core.Row {
	rows := []core.Row{
		row.New(6).Add(col.New(12).Add(
			text.New("DATOS DE CERTIFICACIÓN", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
		)),
		row.New(5).Add(col.New(12).Add(
			text.New("Número de autorización: "+doc.UUID, props.Text{Size: 7.5, Top: 1}),
		)),
	}
	if doc.CertifiedAt != nil {
		rows = append(rows, row.New(5).Add(col.New(12).Add(
			text.New("Fecha de certificación: "+doc.CertifiedAt.Format("02/01/2006 15:04:05"), props.Text{Size: 7.5, Top: 1, Color: colorGray}),
		)))
	}
	if doc.Status == entity.FiscalStatusAnnulled {
		rows = append(rows, row.New(8).Add(col.New(12).Add(
			text.New("DOCUMENTO ANULADO", props.Text{Style: fontstyle.Bold, Size: 12, Align: align.Center, Top: 1}),
		)))
	}
	rows = append(rows, row.New(40).Add(
		col.New(3).Add(code.NewQr(verificationURL(doc, p), props.Rect{Percent: 95, Center: true})),
		col.New(9).Add(
			text.New("Verifique este documento en el portal de la SAT\nescaneando el código QR.", props.Text{
				Size: 8, Top: 4, Left: 3, Color: colorGray,
			}),
			text.New("Sujeto a pagos trimestrales ISR", props.Text{Size: 7, Top: 18, Left: 3, Color: colorGray}),
		),
	))
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

func verificationURL(doc *entity.FiscalDocument, p billing.InvoicePayload) string {
	q := url.Values{}
	q.Set("tipo", "autorizacion")
	q.Set("numero", doc.UUID)
	q.Set("emisor", fel.NormalizeNIT(p.Seller.NIT))
	q.Set("receptor", nonEmpty(fel.NormalizeNIT(p.Buyer.NIT), fel.ConsumidorFinal))
	q.Set("monto", p.Total.StringFixed(2))
	return verificadorSAT + "?" + q.Encode()
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatMoney formato quetzales con separador de miles: 1234.5 → "Q 1,234.50".
func formatMoney(d decimal.Decimal) string {
	s := d.Abs().StringFixed(2)
	intPart, frac := s[:len(s)-3], s[len(s)-3:]
	n := len(intPart)
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, ',')
		}
		buf = append(buf, c)
	}
	sign := ""
	if d.IsNegative() {
		sign = "-"
	}
	return "Q " + sign + string(buf) + frac
}

// Package pdf implementa la representación gráfica de las facturas del local.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre del local + CUIT │ N° Factura + Fecha        │
//	│  LOCAL: Dirección / Tel / Email                              │
//	│  CLIENTE: Nombre + contacto + domicilio de entrega           │
//	│  PEDIDO: N° pedido + forma de entrega                        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Cant | Artículo | P.Unit | Desc. | Subtotal          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Subtotal / Descuentos / Envío / TOTAL              │
//	│  PAGOS: medio + estado + monto                               │
//	│  FOOTER: QR con número y total                               │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

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

	"github.com/jhoicas/BuenSabor-api/internal/application/billing"
	"github.com/jhoicas/BuenSabor-api/internal/domain/entity"
	appconfig "github.com/jhoicas/BuenSabor-api/pkg/config"
)

var _ billing.InvoicePDFGenerator = (*MarotoPDFGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 176, Green: 38, Blue: 30}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa billing.InvoicePDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	business appconfig.BusinessConfig
}

// NewMarotoPDFGenerator construye el generador con los datos del local.
func NewMarotoPDFGenerator(business appconfig.BusinessConfig) *MarotoPDFGenerator {
	return &MarotoPDFGenerator{business: business}
}

// GenerateInvoicePDF genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateInvoicePDF(_ context.Context, doc *billing.InvoiceDocument) ([]byte, error) {
	if doc == nil || doc.Invoice == nil || doc.Order == nil {
		return nil, fmt.Errorf("pdf: documento incompleto")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Factura "+doc.Invoice.Number, true).
		WithAuthor(g.business.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(doc.Invoice))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(g.businessRow())
	m.AddRows(customerRow(doc.Customer, doc.Address))
	m.AddRows(orderRow(doc.Order))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableDetailRows(doc.Lines)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(doc.Invoice))

	if len(doc.Invoice.Payments) > 0 {
		m.AddRows(line.NewRow(3))
		m.AddRows(paymentRows(doc.Invoice)...)
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(doc.Invoice))

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return out.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: nombre del local + CUIT (izq) y N° Factura + Fecha (der).
func (g *MarotoPDFGenerator) headerRow(inv *entity.Invoice) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(nonEmpty(g.business.Name, "El Buen Sabor"), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("CUIT: "+nonEmpty(g.business.TaxID, "-"), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("FACTURA", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(inv.Number, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Fecha: "+inv.IssuedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

func (g *MarotoPDFGenerator) businessRow() core.Row {
	return row.New(12).Add(
		col.New(12).Add(
			text.New("LOCAL", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Dirección: %s   |   Tel: %s   |   Email: %s",
				nonEmpty(g.business.Address, "-"),
				nonEmpty(g.business.Phone, "-"),
				nonEmpty(g.business.Email, "-"),
			), props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

// customerRow: datos del cliente y, si es envío, el domicilio.
func customerRow(c *entity.Customer, addr *entity.Address) core.Row {
	name, contact := "Consumidor final", ""
	if c != nil {
		name = strings.TrimSpace(c.Name + " " + c.LastName)
		contact = fmt.Sprintf("Email: %s   |   Tel: %s", nonEmpty(c.Email, "-"), nonEmpty(c.Phone, "-"))
	}
	cells := []core.Component{
		text.New("CLIENTE", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
		text.New(name, props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
		text.New(contact, props.Text{Size: 8, Top: 12, Color: colorGray}),
	}
	if addr != nil {
		cells = append(cells, text.New(
			fmt.Sprintf("Domicilio: %s %s, %s (CP %s)", addr.Street, addr.Number, addr.Locality, nonEmpty(addr.PostalCode, "-")),
			props.Text{Size: 8, Top: 17, Color: colorGray},
		))
	}
	return row.New(22).Add(col.New(12).Add(cells...))
}

func orderRow(o *entity.Order) core.Row {
	entrega := "Retiro en local"
	if o.DeliveryType == entity.DeliveryHome {
		entrega = "Envío a domicilio"
	}
	return row.New(7).Add(col.New(12).Add(
		text.New(fmt.Sprintf("Pedido: %s   |   Entrega: %s", o.ID, entrega), props.Text{
			Size: 8, Top: 1, Color: colorGray,
		}),
	))
}

// tableHeaderRow: cabecera de la tabla de detalles.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).WithStyle(&props.Cell{BackgroundColor: colorPrimary}).Add(
		h("Cant.", 1, align.Center),
		h("Artículo", 5, align.Left),
		h("Precio Unit.", 2, align.Right),
		h("Desc.", 2, align.Right),
		h("Subtotal", 2, align.Right),
	)
}

// tableDetailRows: una fila por línea del pedido.
func tableDetailRows(lines []billing.DocumentLine) []core.Row {
	result := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(fmt.Sprint(l.Quantity), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(5).Add(text.New(l.Denomination, props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1})),
			col.New(2).Add(text.New(FormatMoney(l.UnitPrice), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(FormatMoney(l.Discount), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(FormatMoney(l.FinalSubtotal), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return result
}

// totalsRow: bloque de totales alineado a la derecha.
func totalsRow(inv *entity.Invoice) core.Row {
	label := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: top})
	}
	value := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1, Top: top})
	}
	return row.New(26).Add(
		col.New(6),
		col.New(3).Add(
			label("Subtotal:", 0),
			label("Descuentos:", 5),
			label("Envío:", 10),
			text.New("TOTAL:", props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 2, Top: 16,
			}),
		),
		col.New(3).Add(
			value(FormatMoney(inv.Subtotal), 0),
			value("-"+FormatMoney(inv.Discount), 5),
			value(FormatMoney(inv.ShippingCost), 10),
			text.New(FormatMoney(inv.Total), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 1, Top: 16,
			}),
		),
	)
}

// paymentRows: pagos registrados y saldo pendiente.
func paymentRows(inv *entity.Invoice) []core.Row {
	rows := []core.Row{
		row.New(6).Add(col.New(12).Add(
			text.New("PAGOS", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
		)),
	}
	for _, p := range inv.Payments {
		rows = append(rows, row.New(5).Add(
			col.New(4).Add(text.New(string(p.Method), props.Text{Size: 8, Left: 2})),
			col.New(4).Add(text.New(string(p.Status), props.Text{Size: 8, Color: colorGray})),
			col.New(4).Add(text.New(FormatMoney(p.Amount), props.Text{Size: 8, Align: align.Right, Right: 1})),
		))
	}
	rows = append(rows, row.New(6).Add(
		col.New(8).Add(text.New("Saldo pendiente:", props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Right, Top: 1, Right: 2})),
		col.New(4).Add(text.New(FormatMoney(inv.PendingBalance()), props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Right, Top: 1, Right: 1})),
	))
	return rows
}

// footerRow: QR con número y total + leyenda.
func footerRow(inv *entity.Invoice) core.Row {
	qr := fmt.Sprintf("%s|%s|%s", inv.Number, inv.Total.StringFixed(2), inv.IssuedAt.Format("2006-01-02"))
	return row.New(40).Add(
		col.New(3).Add(code.NewQr(qr, props.Rect{Percent: 95, Center: true})),
		col.New(9).Add(
			text.New("¡Gracias por elegir El Buen Sabor!", props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 8, Left: 3, Color: colorPrimary,
			}),
			text.New("Documento no válido como factura fiscal. Conserve este comprobante.", props.Text{
				Size: 7, Top: 18, Left: 3, Color: colorGray,
			}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// FormatMoney formatea un importe en pesos: 1234.5 → "$ 1.234,50".
func FormatMoney(d decimal.Decimal) string {
	neg := d.IsNegative()
	s := d.Abs().StringFixed(2)
	intPart, frac, _ := strings.Cut(s, ".")

	n := len(intPart)
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	out := "$ " + string(buf) + "," + frac
	if neg {
		return "-" + out
	}
	return out
}

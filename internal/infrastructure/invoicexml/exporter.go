// Package invoicexml exporta las facturas del local como documento XML.
package invoicexml

import (
	"bytes"
	"fmt"
	"strconv"
	"time"

	"github.com/beevik/etree"

	"github.com/jhoicas/BuenSabor-api/internal/application/billing"
	"github.com/jhoicas/BuenSabor-api/pkg/config"
)

// Namespace espacio de nombres del documento exportado.
const Namespace = "urn:elbuensabor:factura:1.0"

var _ billing.InvoiceXMLExporter = (*Exporter)(nil)

// Exporter implementa billing.InvoiceXMLExporter con beevik/etree.
type Exporter struct {
	business config.BusinessConfig
}

// NewExporter construye el exportador con los datos del local.
func NewExporter(business config.BusinessConfig) *Exporter {
	return &Exporter{business: business}
}

// ExportInvoiceXML serializa factura, cliente, líneas y pagos.
//
//	<Factura xmlns="urn:elbuensabor:factura:1.0" numero="FAC-..." moneda="ARS">
//	  <Emisor/> <Cliente/> <Pedido/> <Lineas/> <Totales/> <Pagos/>
//	</Factura>
func (e *Exporter) ExportInvoiceXML(doc *billing.InvoiceDocument) ([]byte, error) {
	if doc == nil || doc.Invoice == nil || doc.Order == nil {
		return nil, fmt.Errorf("invoicexml: documento incompleto")
	}
	inv := doc.Invoice

	x := etree.NewDocument()
	x.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	root := x.CreateElement("Factura")
	root.CreateAttr("xmlns", Namespace)
	root.CreateAttr("id", inv.ID)
	root.CreateAttr("numero", inv.Number)
	root.CreateAttr("moneda", currencyOf(doc))
	root.CreateElement("FechaEmision").SetText(inv.IssuedAt.Format(time.RFC3339))

	emisor := root.CreateElement("Emisor")
	emisor.CreateElement("Nombre").SetText(e.business.Name)
	optional(emisor, "CUIT", e.business.TaxID)
	optional(emisor, "Direccion", e.business.Address)
	optional(emisor, "Telefono", e.business.Phone)
	optional(emisor, "Email", e.business.Email)

	if c := doc.Customer; c != nil {
		cli := root.CreateElement("Cliente")
		cli.CreateAttr("id", c.ID)
		cli.CreateElement("Nombre").SetText(c.Name)
		cli.CreateElement("Apellido").SetText(c.LastName)
		optional(cli, "Email", c.Email)
		optional(cli, "Telefono", c.Phone)
		if a := doc.Address; a != nil {
			dom := cli.CreateElement("Domicilio")
			dom.CreateElement("Calle").SetText(a.Street)
			dom.CreateElement("Numero").SetText(a.Number)
			optional(dom, "CodigoPostal", a.PostalCode)
			dom.CreateElement("Localidad").SetText(a.Locality)
		}
	}

	ped := root.CreateElement("Pedido")
	ped.CreateAttr("id", doc.Order.ID)
	ped.CreateElement("TipoEnvio").SetText(string(doc.Order.DeliveryType))
	ped.CreateElement("Estado").SetText(string(doc.Order.Status))

	lineas := root.CreateElement("Lineas")
	for i, l := range doc.Lines {
		le := lineas.CreateElement("Linea")
		le.CreateAttr("nro", strconv.Itoa(i+1))
		le.CreateAttr("articulo", l.ArticleID)
		le.CreateElement("Denominacion").SetText(l.Denomination)
		le.CreateElement("Cantidad").SetText(strconv.Itoa(l.Quantity))
		le.CreateElement("PrecioUnitario").SetText(l.UnitPrice.StringFixed(2))
		le.CreateElement("Descuento").SetText(l.Discount.StringFixed(2))
		le.CreateElement("Subtotal").SetText(l.FinalSubtotal.StringFixed(2))
	}

	tot := root.CreateElement("Totales")
	tot.CreateElement("Subtotal").SetText(inv.Subtotal.StringFixed(2))
	tot.CreateElement("Descuento").SetText(inv.Discount.StringFixed(2))
	tot.CreateElement("Envio").SetText(inv.ShippingCost.StringFixed(2))
	tot.CreateElement("Total").SetText(inv.Total.StringFixed(2))
	tot.CreateElement("Pagado").SetText(inv.TotalPaid().StringFixed(2))
	tot.CreateElement("Saldo").SetText(inv.PendingBalance().StringFixed(2))

	if len(inv.Payments) > 0 {
		pagos := root.CreateElement("Pagos")
		for _, p := range inv.Payments {
			pe := pagos.CreateElement("Pago")
			pe.CreateAttr("id", p.ID)
			pe.CreateAttr("medio", string(p.Method))
			pe.CreateAttr("estado", string(p.Status))
			pe.CreateElement("Monto").SetText(p.Amount.StringFixed(2))
			optional(pe, "IdPasarela", p.GatewayPaymentID)
		}
	}

	x.Indent(2)
	var out bytes.Buffer
	if _, err := x.WriteTo(&out); err != nil {
		return nil, fmt.Errorf("invoicexml: serializar: %w", err)
	}
	return out.Bytes(), nil
}

func optional(parent *etree.Element, tag, value string) {
	if value != "" {
		parent.CreateElement(tag).SetText(value)
	}
}

func currencyOf(doc *billing.InvoiceDocument) string {
	for _, p := range doc.Invoice.Payments {
		if p.Currency != "" {
			return p.Currency
		}
	}
	return "ARS"
}

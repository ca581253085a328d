package invoicexml_test

import (
	"testing"
	"time"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/BuenSabor-api/internal/application/billing"
	"github.com/jhoicas/BuenSabor-api/internal/domain/entity"
	"github.com/jhoicas/BuenSabor-api/internal/infrastructure/invoicexml"
	"github.com/jhoicas/BuenSabor-api/pkg/config"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func sampleDocument() *billing.InvoiceDocument {
	return &billing.InvoiceDocument{
		Invoice: &entity.Invoice{
			ID:           "inv-1",
			OrderID:      "ord-1",
			Number:       "FAC-20261018-0001",
			IssuedAt:     time.Date(2026, 10, 18, 21, 30, 0, 0, time.UTC),
			Subtotal:     dec("3000"),
			Discount:     dec("300"),
			ShippingCost: dec("200"),
			Total:        dec("2900"),
			Payments: []entity.Payment{
				{ID: "p1", Method: entity.PaymentCash, Status: entity.PaymentApproved, Amount: dec("1000"), Currency: "ARS"},
				{ID: "p2", Method: entity.PaymentMercadoPago, Status: entity.PaymentRejected, Amount: dec("1900"), Currency: "ARS", GatewayPaymentID: "mp-9"},
			},
		},
		Order:    &entity.Order{ID: "ord-1", Status: entity.OrderDelivered, DeliveryType: entity.DeliveryHome},
		Customer: &entity.Customer{ID: "c1", Name: "Ana", LastName: "Pérez", Email: "ana@test.com"},
		Address:  &entity.Address{Street: "San Martín", Number: "1200", Locality: "Mendoza"},
		Lines: []billing.DocumentLine{
			{ArticleID: "a1", Denomination: "Pizza & fainá", Quantity: 2, UnitPrice: dec("1500"), Discount: dec("300"), FinalSubtotal: dec("2700")},
		},
	}
}

func parse(t *testing.T, raw []byte) *etree.Element {
	t.Helper()
	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(raw))
	root := doc.Root()
	require.NotNil(t, root)
	return root
}

// ──────────────────────────────────────────────────────────────────────────────
// Exportación
// ──────────────────────────────────────────────────────────────────────────────

func TestExportInvoiceXML_EstructuraYTotales(t *testing.T) {
	raw, err := invoicexml.NewExporter(config.BusinessConfig{Name: "El Buen Sabor", TaxID: "30-12345678-9"}).
		ExportInvoiceXML(sampleDocument())
	require.NoError(t, err)

	root := parse(t, raw)
	assert.Equal(t, "Factura", root.Tag)
	assert.Equal(t, "FAC-20261018-0001", root.SelectAttrValue("numero", ""))
	assert.Equal(t, "ARS", root.SelectAttrValue("moneda", ""))
	assert.Equal(t, "30-12345678-9", root.FindElement("./Emisor/CUIT").Text())
	assert.Equal(t, "Mendoza", root.FindElement("./Cliente/Domicilio/Localidad").Text())

	assert.Equal(t, "2900.00", root.FindElement("./Totales/Total").Text())
	assert.Equal(t, "1000.00", root.FindElement("./Totales/Pagado").Text(), "solo suman los pagos aprobados")
	assert.Equal(t, "1900.00", root.FindElement("./Totales/Saldo").Text())

	lineas := root.FindElements("./Lineas/Linea")
	require.Len(t, lineas, 1)
	assert.Equal(t, "Pizza & fainá", lineas[0].FindElement("Denominacion").Text(), "el texto se escapa y se recupera intacto")
	assert.Equal(t, "2700.00", lineas[0].FindElement("Subtotal").Text())

	pagos := root.FindElements("./Pagos/Pago")
	require.Len(t, pagos, 2)
	assert.Equal(t, "mp-9", pagos[1].FindElement("IdPasarela").Text())
}

func TestExportInvoiceXML_RetiroSinDomicilio(t *testing.T) {
	doc := sampleDocument()
	doc.Address = nil
	doc.Invoice.Payments = nil

	raw, err := invoicexml.NewExporter(config.BusinessConfig{}).ExportInvoiceXML(doc)
	require.NoError(t, err)

	root := parse(t, raw)
	assert.Nil(t, root.FindElement("./Cliente/Domicilio"))
	assert.Nil(t, root.FindElement("./Pagos"))
	assert.Nil(t, root.FindElement("./Emisor/CUIT"), "los campos vacíos se omiten")
}

func TestExportInvoiceXML_DocumentoIncompleto(t *testing.T) {
	_, err := invoicexml.NewExporter(config.BusinessConfig{}).ExportInvoiceXML(&billing.InvoiceDocument{})
	assert.Error(t, err)
}

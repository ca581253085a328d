package pdf_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/BuenSabor-api/internal/application/billing"
	"github.com/jhoicas/BuenSabor-api/internal/domain/entity"
	"github.com/jhoicas/BuenSabor-api/internal/infrastructure/pdf"
	"github.com/jhoicas/BuenSabor-api/pkg/config"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func sampleDocument() *billing.InvoiceDocument {
	issued := time.Date(2026, 10, 18, 21, 30, 0, 0, time.UTC)
	return &billing.InvoiceDocument{
		Invoice: &entity.Invoice{
			ID:           "inv-1",
			OrderID:      "ord-1",
			Number:       "FAC-20261018-0001",
			IssuedAt:     issued,
			Subtotal:     dec("3000"),
			Discount:     dec("300"),
			ShippingCost: dec("200"),
			Total:        dec("2900"),
			Payments: []entity.Payment{
				{ID: "p1", Method: entity.PaymentCash, Status: entity.PaymentApproved, Amount: dec("1000")},
			},
		},
		Order: &entity.Order{ID: "ord-1", DeliveryType: entity.DeliveryHome},
		Customer: &entity.Customer{
			ID: "c1", Name: "Ana", LastName: "Pérez", Email: "ana@test.com", Phone: "2615550000",
		},
		Address: &entity.Address{Street: "San Martín", Number: "1200", Locality: "Mendoza", PostalCode: "5500"},
		Lines: []billing.DocumentLine{
			{ArticleID: "a1", Denomination: "Pizza muzzarella", Quantity: 2, UnitPrice: dec("1500"), Discount: dec("300"), FinalSubtotal: dec("2700")},
		},
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Generación
// ──────────────────────────────────────────────────────────────────────────────

func TestGenerateInvoicePDF_DevuelvePDF(t *testing.T) {
	g := pdf.NewMarotoPDFGenerator(config.BusinessConfig{Name: "El Buen Sabor", TaxID: "30-12345678-9"})

	out, err := g.GenerateInvoicePDF(context.Background(), sampleDocument())
	require.NoError(t, err)
	require.NotEmpty(t, out)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")), "el contenido debe ser un PDF")
}

func TestGenerateInvoicePDF_RetiroSinDomicilioNiPagos(t *testing.T) {
	doc := sampleDocument()
	doc.Address = nil
	doc.Order.DeliveryType = entity.DeliveryTakeAway
	doc.Invoice.Payments = nil

	out, err := pdf.NewMarotoPDFGenerator(config.BusinessConfig{}).GenerateInvoicePDF(context.Background(), doc)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestGenerateInvoicePDF_DocumentoIncompleto(t *testing.T) {
	g := pdf.NewMarotoPDFGenerator(config.BusinessConfig{})
	_, err := g.GenerateInvoicePDF(context.Background(), &billing.InvoiceDocument{})
	assert.Error(t, err)
}

// ──────────────────────────────────────────────────────────────────────────────
// Formato de importes
// ──────────────────────────────────────────────────────────────────────────────

func TestFormatMoney(t *testing.T) {
	cases := map[string]string{
		"0":        "$ 0,00",
		"999.5":    "$ 999,50",
		"1234.5":   "$ 1.234,50",
		"1000000":  "$ 1.000.000,00",
		"-2500.25": "-$ 2.500,25",
	}
	for in, want := range cases {
		assert.Equal(t, want, pdf.FormatMoney(dec(in)), in)
	}
}

package billing

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/BuenSabor-api/internal/domain/entity"
)

// DocumentLine línea de la factura con la denominación del artículo.
type DocumentLine struct {
	ArticleID     string
	Denomination  string
	Quantity      int
	UnitPrice     decimal.Decimal
	Discount      decimal.Decimal
	FinalSubtotal decimal.Decimal
}

// InvoiceDocument datos completos para representar una factura (PDF / XML).
type InvoiceDocument struct {
	Invoice  *entity.Invoice
	Order    *entity.Order
	Customer *entity.Customer
	Address  *entity.Address // nil si es retiro en local
	Lines    []DocumentLine
}

// InvoicePDFGenerator genera la representación gráfica de la factura.
type InvoicePDFGenerator interface {
	GenerateInvoicePDF(ctx context.Context, doc *InvoiceDocument) ([]byte, error)
}

// InvoiceXMLExporter exporta la factura en XML.
type InvoiceXMLExporter interface {
	ExportInvoiceXML(doc *InvoiceDocument) ([]byte, error)
}

// PreferenceRequest datos para crear un checkout en la pasarela.
type PreferenceRequest struct {
	ExternalReference string // id del pago
	Title             string
	Amount            decimal.Decimal
	Currency          string
	PayerEmail        string
}

// Preference checkout creado en la pasarela.
type Preference struct {
	ID        string
	InitPoint string
}

// GatewayPayment estado de un pago según la pasarela.
type GatewayPayment struct {
	ID                string
	Status            string // approved, rejected, pending, in_process, cancelled, refunded, charged_back
	StatusDetail      string
	ExternalReference string
	Amount            decimal.Decimal
	Currency          string
	ApprovedAt        *time.Time
}

// PaymentGateway puerto hacia la pasarela de pagos (MercadoPago).
type PaymentGateway interface {
	CreatePreference(ctx context.Context, req PreferenceRequest) (*Preference, error)
	GetPayment(ctx context.Context, id string) (*GatewayPayment, error)
	// VerifyNotification valida la firma del webhook; nil si no hay secreto configurado.
	VerifyNotification(signature, requestID, dataID string) error
}

package billing

import (
	"context"
	"fmt"

	"github.com/jhoicas/BuenSabor-api/internal/application/dto"
	"github.com/jhoicas/BuenSabor-api/internal/domain"
	"github.com/jhoicas/BuenSabor-api/internal/domain/entity"
	"github.com/jhoicas/BuenSabor-api/internal/domain/repository"
)

// InvoiceUseCase consulta, emisión manual y descarga de facturas.
type InvoiceUseCase struct {
	tx        repository.TxRunner
	invoices  repository.InvoiceRepository
	orders    repository.OrderRepository
	customers repository.CustomerRepository
	articles  repository.ArticleRepository
	generator *InvoiceGenerator
	pdf       InvoicePDFGenerator
	xml       InvoiceXMLExporter
}

// NewInvoiceUseCase construye el caso de uso.
func NewInvoiceUseCase(
	tx repository.TxRunner,
	invoices repository.InvoiceRepository,
	orders repository.OrderRepository,
	customers repository.CustomerRepository,
	articles repository.ArticleRepository,
	generator *InvoiceGenerator,
	pdf InvoicePDFGenerator,
	xml InvoiceXMLExporter,
) *InvoiceUseCase {
	return &InvoiceUseCase{
		tx:        tx,
		invoices:  invoices,
		orders:    orders,
		customers: customers,
		articles:  articles,
		generator: generator,
		pdf:       pdf,
		xml:       xml,
	}
}

// Get devuelve la factura con pagos y saldos.
func (uc *InvoiceUseCase) Get(ctx context.Context, actor dto.Actor, id string) (*dto.InvoiceResponse, error) {
	inv, _, err := uc.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	return ToInvoiceResponse(inv), nil
}

// GenerateForOrder emite la factura de un pedido no cancelado que todavía no la tenga.
func (uc *InvoiceUseCase) GenerateForOrder(ctx context.Context, orderID string) (*dto.InvoiceResponse, error) {
	var inv *entity.Invoice
	err := uc.tx.Run(ctx, func(repos repository.TxRepos) error {
		order, err := repos.Orders.GetForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return fmt.Errorf("pedido %s: %w", orderID, domain.ErrNotFound)
		}
		if order.Status == entity.OrderCancelled {
			return &domain.TransitionError{Entity: "factura", From: string(order.Status), To: "FACTURADO"}
		}
		inv, err = uc.generator.Generate(ctx, repos, order)
		return err
	})
	if err != nil {
		return nil, err
	}
	return ToInvoiceResponse(inv), nil
}

// PDF genera el PDF de la factura.
func (uc *InvoiceUseCase) PDF(ctx context.Context, actor dto.Actor, id string) ([]byte, string, error) {
	doc, err := uc.document(ctx, actor, id)
	if err != nil {
		return nil, "", err
	}
	b, err := uc.pdf.GenerateInvoicePDF(ctx, doc)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}
	return b, fmt.Sprintf("%s.pdf", doc.Invoice.Number), nil
}

// XML exporta la factura en XML.
func (uc *InvoiceUseCase) XML(ctx context.Context, actor dto.Actor, id string) ([]byte, string, error) {
	doc, err := uc.document(ctx, actor, id)
	if err != nil {
		return nil, "", err
	}
	b, err := uc.xml.ExportInvoiceXML(doc)
	if err != nil {
		return nil, "", fmt.Errorf("xml: exportación fallida: %w", err)
	}
	return b, fmt.Sprintf("%s.xml", doc.Invoice.Number), nil
}

func (uc *InvoiceUseCase) load(ctx context.Context, actor dto.Actor, id string) (*entity.Invoice, *entity.Order, error) {
	inv, err := uc.invoices.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if inv == nil {
		return nil, nil, fmt.Errorf("factura %s: %w", id, domain.ErrNotFound)
	}
	order, err := uc.orders.GetByID(ctx, inv.OrderID)
	if err != nil {
		return nil, nil, err
	}
	if order == nil {
		return nil, nil, fmt.Errorf("pedido %s: %w", inv.OrderID, domain.ErrNotFound)
	}
	if actor.IsClient() && order.CustomerID != actor.CustomerID {
		return nil, nil, domain.ErrForbidden
	}
	return inv, order, nil
}

func (uc *InvoiceUseCase) document(ctx context.Context, actor dto.Actor, id string) (*InvoiceDocument, error) {
	inv, order, err := uc.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	doc := &InvoiceDocument{Invoice: inv, Order: order}
	if doc.Customer, err = uc.customers.GetByID(ctx, order.CustomerID); err != nil {
		return nil, err
	}
	if order.AddressID != "" {
		if doc.Address, err = uc.customers.GetAddress(ctx, order.AddressID); err != nil {
			return nil, err
		}
	}
	for _, l := range order.Lines {
		name := l.ArticleID
		if a, aErr := uc.articles.GetByID(ctx, l.ArticleID); aErr == nil && a != nil {
			name = a.Denomination
		}
		doc.Lines = append(doc.Lines, DocumentLine{
			ArticleID:     l.ArticleID,
			Denomination:  name,
			Quantity:      l.Quantity,
			UnitPrice:     l.UnitPrice,
			Discount:      l.Discount,
			FinalSubtotal: l.FinalSubtotal,
		})
	}
	return doc, nil
}

// ToInvoiceResponse mapea la factura con sus saldos derivados.
func ToInvoiceResponse(inv *entity.Invoice) *dto.InvoiceResponse {
	resp := &dto.InvoiceResponse{
		ID:             inv.ID,
		OrderID:        inv.OrderID,
		Number:         inv.Number,
		IssuedAt:       inv.IssuedAt,
		Subtotal:       inv.Subtotal,
		Discount:       inv.Discount,
		ShippingCost:   inv.ShippingCost,
		Total:          inv.Total,
		TotalPaid:      inv.TotalPaid(),
		PendingBalance: inv.PendingBalance(),
		FullyPaid:      inv.IsFullyPaid(),
		Payments:       make([]dto.PaymentResponse, 0, len(inv.Payments)),
	}
	for i := range inv.Payments {
		resp.Payments = append(resp.Payments, *ToPaymentResponse(&inv.Payments[i]))
	}
	return resp
}

// ToPaymentResponse mapea un pago.
func ToPaymentResponse(p *entity.Payment) *dto.PaymentResponse {
	return &dto.PaymentResponse{
		ID:                  p.ID,
		InvoiceID:           p.InvoiceID,
		Method:              string(p.Method),
		Status:              string(p.Status),
		Amount:              p.Amount,
		Currency:            p.Currency,
		GatewayPreferenceID: p.GatewayPreferenceID,
		GatewayPaymentID:    p.GatewayPaymentID,
		GatewayStatusDetail: p.GatewayStatusDetail,
		InitPoint:           p.InitPoint,
		CreatedAt:           p.CreatedAt,
		UpdatedAt:           p.UpdatedAt,
	}
}

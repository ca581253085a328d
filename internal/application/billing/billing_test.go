package billing_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/BuenSabor-api/internal/application/billing"
	"github.com/jhoicas/BuenSabor-api/internal/application/dto"
	"github.com/jhoicas/BuenSabor-api/internal/domain"
	"github.com/jhoicas/BuenSabor-api/internal/domain/entity"
	"github.com/jhoicas/BuenSabor-api/internal/domain/repository"
	"github.com/jhoicas/BuenSabor-api/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

var staff = dto.Actor{UserID: "u-caja", Role: entity.RoleCajero}

func seedOrder(t *testing.T, store *memory.Store, id string, delivery entity.DeliveryType, total, discount string) *entity.Order {
	t.Helper()
	ctx := context.Background()
	repos := store.Repos()
	if c, _ := repos.Customers.GetByID(ctx, "cliente-1"); c == nil {
		require.NoError(t, repos.Customers.Create(ctx, &entity.Customer{ID: "cliente-1", Email: "ana@example.com"}))
	}
	o := &entity.Order{
		ID: id, CustomerID: "cliente-1", BranchID: "s1",
		Status: entity.OrderPreparation, DeliveryType: delivery,
		Total: dec(total), Discount: dec(discount), CreatedAt: time.Now(),
	}
	require.NoError(t, repos.Orders.Create(ctx, o))
	return o
}

func generate(t *testing.T, store *memory.Store, gen *billing.InvoiceGenerator, order *entity.Order) (*entity.Invoice, error) {
	t.Helper()
	var inv *entity.Invoice
	err := store.Run(context.Background(), func(repos repository.TxRepos) error {
		var err error
		inv, err = gen.Generate(context.Background(), repos, order)
		return err
	})
	return inv, err
}

type fakeGateway struct {
	payments map[string]*billing.GatewayPayment
	prefErr  error
	sigErr   error
	lastPref billing.PreferenceRequest
	getCalls int
}

func (g *fakeGateway) CreatePreference(_ context.Context, req billing.PreferenceRequest) (*billing.Preference, error) {
	g.lastPref = req
	if g.prefErr != nil {
		return nil, g.prefErr
	}
	return &billing.Preference{ID: "pref-" + req.ExternalReference, InitPoint: "https://mp.test/checkout"}, nil
}

func (g *fakeGateway) GetPayment(_ context.Context, id string) (*billing.GatewayPayment, error) {
	g.getCalls++
	p, ok := g.payments[id]
	if !ok {
		return nil, errors.New("no encontrado")
	}
	return p, nil
}

func (g *fakeGateway) VerifyNotification(_, _, _ string) error { return g.sigErr }

// ──────────────────────────────────────────────────────────────────────────────
// Generador de facturas
// ──────────────────────────────────────────────────────────────────────────────

func TestGenerate_ImportesYNumero(t *testing.T) {
	store := memory.NewStore()
	gen := billing.NewInvoiceGenerator(dec("200"), 5, time.UTC)
	order := seedOrder(t, store, "p-1", entity.DeliveryHome, "370", "30")

	inv, err := generate(t, store, gen, order)
	require.NoError(t, err)
	assert.True(t, inv.ShippingCost.Equal(dec("200")))
	assert.True(t, inv.Total.Equal(dec("370")))
	assert.True(t, inv.Subtotal.Equal(dec("200")), "370 - 200 + 30, obtenido %s", inv.Subtotal)
	assert.Equal(t, billing.InvoiceNumber(time.Now().UTC(), 1), inv.Number)

	saved, err := store.Repos().Orders.GetByID(context.Background(), "p-1")
	require.NoError(t, err)
	assert.Equal(t, inv.ID, saved.InvoiceID)
}

func TestGenerate_UsaRecargoDelPedido(t *testing.T) {
	store := memory.NewStore()
	// El recargo configurado cambió después de crear el pedido.
	gen := billing.NewInvoiceGenerator(dec("350"), 5, time.UTC)
	order := seedOrder(t, store, "p-1", entity.DeliveryHome, "370", "30")
	order.DeliveryFee = dec("200")

	inv, err := generate(t, store, gen, order)
	require.NoError(t, err)
	assert.True(t, inv.ShippingCost.Equal(dec("200")), "obtenido %s", inv.ShippingCost)
	assert.True(t, inv.Subtotal.Equal(dec("200")), "370 - 200 + 30, obtenido %s", inv.Subtotal)
}

func TestGenerate_SegundaFacturaDuplicada(t *testing.T) {
	store := memory.NewStore()
	gen := billing.NewInvoiceGenerator(dec("200"), 5, time.UTC)
	order := seedOrder(t, store, "p-1", entity.DeliveryTakeAway, "180", "20")

	_, err := generate(t, store, gen, order)
	require.NoError(t, err)
	_, err = generate(t, store, gen, order)
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestGenerate_ReintentaNumeroOcupado(t *testing.T) {
	store := memory.NewStore()
	gen := billing.NewInvoiceGenerator(decimal.Zero, 5, time.UTC)
	// Factura de otro día con el número que tocaría hoy: CountIssuedOn no la cuenta.
	seedOrder(t, store, "viejo", entity.DeliveryTakeAway, "10", "0")
	require.NoError(t, store.Repos().Invoices.Create(context.Background(), &entity.Invoice{
		ID: "f-vieja", OrderID: "viejo", Number: billing.InvoiceNumber(time.Now().UTC(), 1),
		IssuedAt: time.Now().UTC().AddDate(0, 0, -3), Total: dec("10"),
	}))

	order := seedOrder(t, store, "p-2", entity.DeliveryTakeAway, "50", "0")
	inv, err := generate(t, store, gen, order)
	require.NoError(t, err)
	assert.Equal(t, billing.InvoiceNumber(time.Now().UTC(), 2), inv.Number)
}

func TestInvoiceNumber_Formato(t *testing.T) {
	day := time.Date(2026, 3, 7, 22, 0, 0, 0, time.UTC)
	assert.Equal(t, "FAC-20260307-0042", billing.InvoiceNumber(day, 42))
}

// ──────────────────────────────────────────────────────────────────────────────
// Pagos
// ──────────────────────────────────────────────────────────────────────────────

func setupPayments(t *testing.T, gw billing.PaymentGateway) (*memory.Store, *billing.PaymentUseCase, *entity.Invoice) {
	t.Helper()
	store := memory.NewStore()
	gen := billing.NewInvoiceGenerator(dec("200"), 5, time.UTC)
	order := seedOrder(t, store, "p-1", entity.DeliveryHome, "400", "0")
	inv, err := generate(t, store, gen, order)
	require.NoError(t, err)
	repos := store.Repos()
	uc := billing.NewPaymentUseCase(store, repos.Invoices, repos.Payments, repos.Customers, repos.Orders, gw)
	return store, uc, inv
}

func TestCash_ConfirmarActualizaSaldo(t *testing.T) {
	store, uc, inv := setupPayments(t, nil)
	ctx := context.Background()

	p, err := uc.CreateCash(ctx, inv.ID, dto.CashPaymentRequest{Amount: dec("150")})
	require.NoError(t, err)
	assert.Equal(t, string(entity.PaymentPending), p.Status)

	_, err = uc.CreateCash(ctx, inv.ID, dto.CashPaymentRequest{Amount: dec("300")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "150 reservados, quedan 250")

	confirmed, err := uc.ConfirmCash(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, string(entity.PaymentApproved), confirmed.Status)

	_, err = uc.RejectCash(ctx, p.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidState, "un pago aprobado no vuelve a cambiar")

	got, err := store.Repos().Invoices.GetByID(ctx, inv.ID)
	require.NoError(t, err)
	assert.True(t, got.TotalPaid().Equal(dec("150")))
	assert.True(t, got.PendingBalance().Equal(dec("250")))
	assert.False(t, got.IsFullyPaid())
}

func TestGatewayCheckout_SinPasarela(t *testing.T) {
	_, uc, inv := setupPayments(t, nil)
	_, err := uc.CreateGatewayCheckout(context.Background(), staff, inv.ID, dto.GatewayPaymentRequest{})
	assert.ErrorIs(t, err, domain.ErrGatewayUnavailable)
}

func TestGatewayCheckout_ErrorDePasarelaCancelaElPago(t *testing.T) {
	gw := &fakeGateway{prefErr: errors.New("timeout")}
	store, uc, inv := setupPayments(t, gw)

	_, err := uc.CreateGatewayCheckout(context.Background(), staff, inv.ID, dto.GatewayPaymentRequest{})
	require.ErrorIs(t, err, domain.ErrGatewayUnavailable)

	payments, err := store.Repos().Payments.ListByInvoice(context.Background(), inv.ID)
	require.NoError(t, err)
	require.Len(t, payments, 1)
	assert.Equal(t, entity.PaymentCancelled, payments[0].Status, "no queda saldo reservado")
}

func TestGatewayCheckout_ClienteAjeno(t *testing.T) {
	gw := &fakeGateway{payments: map[string]*billing.GatewayPayment{}}
	_, uc, inv := setupPayments(t, gw)
	ctx := context.Background()

	other := dto.Actor{UserID: "u-2", CustomerID: "cliente-2", Role: entity.RoleCliente}
	_, err := uc.CreateGatewayCheckout(ctx, other, inv.ID, dto.GatewayPaymentRequest{})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	owner := dto.Actor{UserID: "u-1", CustomerID: "cliente-1", Role: entity.RoleCliente}
	_, err = uc.CreateGatewayCheckout(ctx, owner, inv.ID, dto.GatewayPaymentRequest{})
	assert.NoError(t, err)
}

func TestWebhook_ApruebaPagoYEsIdempotente(t *testing.T) {
	gw := &fakeGateway{payments: map[string]*billing.GatewayPayment{}}
	store, uc, inv := setupPayments(t, gw)
	ctx := context.Background()

	p, err := uc.CreateGatewayCheckout(ctx, staff, inv.ID, dto.GatewayPaymentRequest{})
	require.NoError(t, err)
	assert.Equal(t, "pref-"+p.ID, p.GatewayPreferenceID)
	assert.Equal(t, "ana@example.com", gw.lastPref.PayerEmail)
	assert.True(t, gw.lastPref.Amount.Equal(dec("400")), "sin monto se toma el saldo")

	gw.payments["mp-99"] = &billing.GatewayPayment{
		ID: "mp-99", Status: "approved", StatusDetail: "accredited",
		ExternalReference: p.ID, Amount: dec("400"),
	}
	in := billing.WebhookInput{}
	in.Notification.Type = "payment"
	in.Notification.Data.ID = "mp-99"

	require.NoError(t, uc.HandleWebhook(ctx, in))
	first, err := store.Repos().Payments.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentApproved, first.Status)
	assert.Equal(t, "mp-99", first.GatewayPaymentID)

	require.NoError(t, uc.HandleWebhook(ctx, in), "reenvío de la misma notificación")
	second, err := store.Repos().Payments.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, first.UpdatedAt, second.UpdatedAt, "sin cambios no se actualiza")

	got, err := store.Repos().Invoices.GetByID(ctx, inv.ID)
	require.NoError(t, err)
	assert.True(t, got.IsFullyPaid())
}

func TestWebhook_NoRetrocedeEstadoFinal(t *testing.T) {
	gw := &fakeGateway{payments: map[string]*billing.GatewayPayment{}}
	store, uc, inv := setupPayments(t, gw)
	ctx := context.Background()
	p, err := uc.CreateGatewayCheckout(ctx, staff, inv.ID, dto.GatewayPaymentRequest{})
	require.NoError(t, err)

	in := billing.WebhookInput{Topic: "payment", DataID: "mp-1"}
	gw.payments["mp-1"] = &billing.GatewayPayment{ID: "mp-1", Status: "rejected", ExternalReference: p.ID}
	require.NoError(t, uc.HandleWebhook(ctx, in))

	gw.payments["mp-1"].Status = "in_process"
	require.NoError(t, uc.HandleWebhook(ctx, in))

	got, err := store.Repos().Payments.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentRejected, got.Status)
}

func TestWebhook_AprobadoNoPasaARechazado(t *testing.T) {
	gw := &fakeGateway{payments: map[string]*billing.GatewayPayment{}}
	store, uc, inv := setupPayments(t, gw)
	ctx := context.Background()
	p, err := uc.CreateGatewayCheckout(ctx, staff, inv.ID, dto.GatewayPaymentRequest{})
	require.NoError(t, err)

	// Dos intentos sobre la misma preferencia: el rechazado llega después del aprobado.
	gw.payments["mp-ok"] = &billing.GatewayPayment{ID: "mp-ok", Status: "approved", ExternalReference: p.ID, Amount: dec("400")}
	gw.payments["mp-ko"] = &billing.GatewayPayment{ID: "mp-ko", Status: "rejected", ExternalReference: p.ID, Amount: dec("400")}
	require.NoError(t, uc.HandleWebhook(ctx, billing.WebhookInput{Topic: "payment", DataID: "mp-ok"}))
	require.NoError(t, uc.HandleWebhook(ctx, billing.WebhookInput{Topic: "payment", DataID: "mp-ko"}))

	got, err := store.Repos().Payments.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentApproved, got.Status)
	assert.Equal(t, "mp-ok", got.GatewayPaymentID)
	factura, err := store.Repos().Invoices.GetByID(ctx, inv.ID)
	require.NoError(t, err)
	assert.True(t, factura.IsFullyPaid())

	// El mismo intento sí puede reembolsarse.
	gw.payments["mp-ok"].Status = "refunded"
	require.NoError(t, uc.HandleWebhook(ctx, billing.WebhookInput{Topic: "payment", DataID: "mp-ok"}))
	got, err = store.Repos().Payments.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentRefunded, got.Status)
}

func TestWebhook_RechazadoLuegoAprobado(t *testing.T) {
	gw := &fakeGateway{payments: map[string]*billing.GatewayPayment{}}
	store, uc, inv := setupPayments(t, gw)
	ctx := context.Background()
	p, err := uc.CreateGatewayCheckout(ctx, staff, inv.ID, dto.GatewayPaymentRequest{})
	require.NoError(t, err)

	gw.payments["mp-1"] = &billing.GatewayPayment{ID: "mp-1", Status: "rejected", ExternalReference: p.ID, Amount: dec("400")}
	gw.payments["mp-2"] = &billing.GatewayPayment{ID: "mp-2", Status: "approved", ExternalReference: p.ID, Amount: dec("400")}
	require.NoError(t, uc.HandleWebhook(ctx, billing.WebhookInput{Topic: "payment", DataID: "mp-1"}))
	require.NoError(t, uc.HandleWebhook(ctx, billing.WebhookInput{Topic: "payment", DataID: "mp-2"}))

	got, err := store.Repos().Payments.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentApproved, got.Status, "un segundo intento aprobado cobra el pago")
	assert.Equal(t, "mp-2", got.GatewayPaymentID)
}

func TestWebhook_NoLiquidaPagoEnEfectivo(t *testing.T) {
	gw := &fakeGateway{payments: map[string]*billing.GatewayPayment{}}
	store, uc, inv := setupPayments(t, gw)
	ctx := context.Background()
	cash, err := uc.CreateCash(ctx, inv.ID, dto.CashPaymentRequest{})
	require.NoError(t, err)

	gw.payments["mp-x"] = &billing.GatewayPayment{ID: "mp-x", Status: "approved", ExternalReference: cash.ID, Amount: dec("400")}
	require.NoError(t, uc.HandleWebhook(ctx, billing.WebhookInput{Topic: "payment", DataID: "mp-x"}))

	got, err := store.Repos().Payments.GetByID(ctx, cash.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentCash, got.Method)
	assert.Equal(t, entity.PaymentPending, got.Status, "el efectivo solo se confirma en caja")
	assert.Empty(t, got.GatewayPaymentID)
}

func TestWebhook_MontoDistintoNoAprueba(t *testing.T) {
	gw := &fakeGateway{payments: map[string]*billing.GatewayPayment{}}
	store, uc, inv := setupPayments(t, gw)
	ctx := context.Background()
	p, err := uc.CreateGatewayCheckout(ctx, staff, inv.ID, dto.GatewayPaymentRequest{})
	require.NoError(t, err)

	gw.payments["mp-1"] = &billing.GatewayPayment{ID: "mp-1", Status: "approved", ExternalReference: p.ID, Amount: dec("1")}
	require.NoError(t, uc.HandleWebhook(ctx, billing.WebhookInput{Topic: "payment", DataID: "mp-1"}))

	got, err := store.Repos().Payments.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentPending, got.Status)
}

func TestReserva_PedidoCancelado(t *testing.T) {
	gw := &fakeGateway{payments: map[string]*billing.GatewayPayment{}}
	store, uc, inv := setupPayments(t, gw)
	ctx := context.Background()
	require.NoError(t, store.Repos().Orders.UpdateStatus(ctx, inv.OrderID, entity.OrderCancelled, time.Now()))

	_, err := uc.CreateCash(ctx, inv.ID, dto.CashPaymentRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidState)
	_, err = uc.CreateGatewayCheckout(ctx, staff, inv.ID, dto.GatewayPaymentRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidState)
	assert.Empty(t, gw.lastPref.ExternalReference, "no se crea preferencia")
}

func TestWebhook_FirmaInvalida(t *testing.T) {
	gw := &fakeGateway{sigErr: errors.New("hmac distinto")}
	_, uc, _ := setupPayments(t, gw)

	err := uc.HandleWebhook(context.Background(), billing.WebhookInput{Topic: "payment", DataID: "mp-1"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.Zero(t, gw.getCalls, "no se consulta la pasarela")
}

func TestWebhook_TopicIgnorado(t *testing.T) {
	gw := &fakeGateway{}
	_, uc, _ := setupPayments(t, gw)
	assert.NoError(t, uc.HandleWebhook(context.Background(), billing.WebhookInput{Topic: "merchant_order", DataID: "1"}))
	assert.Zero(t, gw.getCalls)
}

func TestMapGatewayStatus(t *testing.T) {
	cases := map[string]entity.PaymentStatus{
		"approved":     entity.PaymentApproved,
		"rejected":     entity.PaymentRejected,
		"cancelled":    entity.PaymentCancelled,
		"refunded":     entity.PaymentRefunded,
		"charged_back": entity.PaymentRefunded,
		"in_process":   entity.PaymentPending,
		"":             entity.PaymentPending,
	}
	for in, want := range cases {
		assert.Equal(t, want, billing.MapGatewayStatus(in), in)
	}
}

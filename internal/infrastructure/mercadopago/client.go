// Package mercadopago adaptador de la API REST de MercadoPago: preferencias de checkout,
// consulta de pagos y validación de la firma de los webhooks.
package mercadopago

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/jhoicas/BuenSabor-api/internal/application/billing"
)

var _ billing.PaymentGateway = (*Client)(nil)

// ErrInvalidSignature la firma x-signature no coincide o está mal formada.
var ErrInvalidSignature = errors.New("mercadopago: firma inválida")

// Config credenciales y URLs de retorno.
type Config struct {
	AccessToken     string
	BaseURL         string // https://api.mercadopago.com
	WebhookSecret   string // vacío = no se valida x-signature
	NotificationURL string
	SuccessURL      string
	FailureURL      string
	Timeout         time.Duration
}

// Client implementa billing.PaymentGateway con net/http.
type Client struct {
	cfg        Config
	httpClient *http.Client
	tracer     trace.Tracer
}

// NewClient construye el adaptador. Sin AccessToken las llamadas devuelven error.
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.mercadopago.com"
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		tracer:     otel.Tracer("github.com/jhoicas/BuenSabor-api/internal/infrastructure/mercadopago"),
	}
}

// ── Protocolo ─────────────────────────────────────────────────────────────────

type preferenceItem struct {
	Title      string      `json:"title"`
	Quantity   int         `json:"quantity"`
	UnitPrice  json.Number `json:"unit_price"`
	CurrencyID string      `json:"currency_id"`
}

type preferenceBody struct {
	Items             []preferenceItem `json:"items"`
	ExternalReference string           `json:"external_reference"`
	Payer             *struct {
		Email string `json:"email"`
	} `json:"payer,omitempty"`
	NotificationURL string `json:"notification_url,omitempty"`
	BackURLs        *struct {
		Success string `json:"success,omitempty"`
		Failure string `json:"failure,omitempty"`
		Pending string `json:"pending,omitempty"`
	} `json:"back_urls,omitempty"`
	AutoReturn string `json:"auto_return,omitempty"`
}

type preferenceResponse struct {
	ID        string `json:"id"`
	InitPoint string `json:"init_point"`
}

type paymentResponse struct {
	ID                json.Number     `json:"id"`
	Status            string          `json:"status"`
	StatusDetail      string          `json:"status_detail"`
	ExternalReference string          `json:"external_reference"`
	TransactionAmount decimal.Decimal `json:"transaction_amount"`
	CurrencyID        string          `json:"currency_id"`
	DateApproved      *time.Time      `json:"date_approved"`
}

type apiError struct {
	Message string `json:"message"`
	Error   string `json:"error"`
	Status  int    `json:"status"`
}

// ── Puerto ────────────────────────────────────────────────────────────────────

// CreatePreference crea un checkout con un único ítem por el monto del pago.
func (c *Client) CreatePreference(ctx context.Context, req billing.PreferenceRequest) (*billing.Preference, error) {
	ctx, span := c.tracer.Start(ctx, "mercadopago.CreatePreference",
		trace.WithAttributes(attribute.String("external_reference", req.ExternalReference)))
	defer span.End()

	body := preferenceBody{
		Items: []preferenceItem{{
			Title:      req.Title,
			Quantity:   1,
			UnitPrice:  json.Number(req.Amount.StringFixed(2)),
			CurrencyID: req.Currency,
		}},
		ExternalReference: req.ExternalReference,
		NotificationURL:   c.cfg.NotificationURL,
	}
	if req.PayerEmail != "" {
		body.Payer = &struct {
			Email string `json:"email"`
		}{Email: req.PayerEmail}
	}
	if c.cfg.SuccessURL != "" || c.cfg.FailureURL != "" {
		body.BackURLs = &struct {
			Success string `json:"success,omitempty"`
			Failure string `json:"failure,omitempty"`
			Pending string `json:"pending,omitempty"`
		}{Success: c.cfg.SuccessURL, Failure: c.cfg.FailureURL, Pending: c.cfg.SuccessURL}
		if c.cfg.SuccessURL != "" {
			body.AutoReturn = "approved"
		}
	}

	var out preferenceResponse
	if err := c.do(ctx, http.MethodPost, "/checkout/preferences", body, &out); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return &billing.Preference{ID: out.ID, InitPoint: out.InitPoint}, nil
}

// GetPayment consulta un pago por id de MercadoPago.
func (c *Client) GetPayment(ctx context.Context, id string) (*billing.GatewayPayment, error) {
	ctx, span := c.tracer.Start(ctx, "mercadopago.GetPayment",
		trace.WithAttributes(attribute.String("mp_payment_id", id)))
	defer span.End()

	var out paymentResponse
	if err := c.do(ctx, http.MethodGet, "/v1/payments/"+url.PathEscape(id), nil, &out); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return &billing.GatewayPayment{
		ID:                out.ID.String(),
		Status:            out.Status,
		StatusDetail:      out.StatusDetail,
		ExternalReference: out.ExternalReference,
		Amount:            out.TransactionAmount,
		Currency:          out.CurrencyID,
		ApprovedAt:        out.DateApproved,
	}, nil
}

// VerifyNotification valida x-signature ("ts=...,v1=...") con HMAC-SHA256 sobre el manifest
// "id:<data.id>;request-id:<x-request-id>;ts:<ts>;". Las partes ausentes se omiten.
func (c *Client) VerifyNotification(signature, requestID, dataID string) error {
	if c.cfg.WebhookSecret == "" {
		return nil
	}
	var ts, v1 string
	for _, part := range strings.Split(signature, ",") {
		k, v, ok := strings.Cut(strings.TrimSpace(part), "=")
		if !ok {
			continue
		}
		switch k {
		case "ts":
			ts = v
		case "v1":
			v1 = v
		}
	}
	if ts == "" || v1 == "" {
		return ErrInvalidSignature
	}
	got, err := hex.DecodeString(v1)
	if err != nil {
		return ErrInvalidSignature
	}
	if !hmac.Equal(got, Sign(c.cfg.WebhookSecret, Manifest(dataID, requestID, ts))) {
		return ErrInvalidSignature
	}
	return nil
}

// Manifest arma el texto firmado por MercadoPago. Los ids alfanuméricos van en minúsculas.
func Manifest(dataID, requestID, ts string) string {
	var b strings.Builder
	if dataID != "" {
		b.WriteString("id:" + strings.ToLower(dataID) + ";")
	}
	if requestID != "" {
		b.WriteString("request-id:" + requestID + ";")
	}
	if ts != "" {
		b.WriteString("ts:" + ts + ";")
	}
	return b.String()
}

// Sign HMAC-SHA256 del manifest.
func Sign(secret, manifest string) []byte {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(manifest))
	return mac.Sum(nil)
}

// ── HTTP ──────────────────────────────────────────────────────────────────────

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	if c.cfg.AccessToken == "" {
		return fmt.Errorf("mercadopago: MP_ACCESS_TOKEN no configurado")
	}
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("mercadopago: serializar request: %w", err)
		}
		body = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.cfg.BaseURL+path, body)
	if err != nil {
		return fmt.Errorf("mercadopago: crear HTTP request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.AccessToken)
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("mercadopago: timeout o cancelación: %w", ctx.Err())
		}
		return fmt.Errorf("mercadopago: llamada HTTP fallida: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 256*1024))
	if err != nil {
		return fmt.Errorf("mercadopago: leer respuesta: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr apiError
		if jsonErr := json.Unmarshal(raw, &apiErr); jsonErr == nil && apiErr.Message != "" {
			return fmt.Errorf("mercadopago: HTTP %d (%s): %s", resp.StatusCode, apiErr.Error, apiErr.Message)
		}
		return fmt.Errorf("mercadopago: HTTP %d: %s", resp.StatusCode, string(raw))
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("mercadopago: deserializar respuesta: %w", err)
	}
	return nil
}

package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/BuenSabor-api/internal/application/analytics"
	"github.com/jhoicas/BuenSabor-api/internal/application/auth"
	"github.com/jhoicas/BuenSabor-api/internal/application/billing"
	"github.com/jhoicas/BuenSabor-api/internal/application/catalog"
	"github.com/jhoicas/BuenSabor-api/internal/application/customer"
	"github.com/jhoicas/BuenSabor-api/internal/application/inventory"
	"github.com/jhoicas/BuenSabor-api/internal/application/ordering"
	"github.com/jhoicas/BuenSabor-api/internal/application/promotion"
	"github.com/jhoicas/BuenSabor-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	ArticleUC   *catalog.ArticleUseCase
	CategoryUC  *catalog.CategoryUseCase
	PurchaseUC  *inventory.PurchaseUseCase
	PromotionUC *promotion.UseCase
	OrderUC     *ordering.OrderUseCase
	InvoiceUC   *billing.InvoiceUseCase
	PaymentUC   *billing.PaymentUseCase
	CustomerUC  *customer.UseCase
	AnalyticsUC *analytics.UseCase
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	const (
		admin    = entity.RoleAdmin
		cajero   = entity.RoleCajero
		cocinero = entity.RoleCocinero
		delivery = entity.RoleDelivery
	)

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Catálogo: lectura pública
	articleHandler := NewArticleHandler(deps.ArticleUC)
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	promotionHandler := NewPromotionHandler(deps.PromotionUC)
	api.Get("/articulos", articleHandler.List)
	api.Get("/articulos/buscar", articleHandler.Search)
	api.Get("/articulos/:id", articleHandler.GetByID)
	api.Get("/categorias", categoryHandler.List)
	api.Get("/promociones", promotionHandler.List)
	api.Get("/promociones/:id", promotionHandler.GetByID)

	// Webhook de MercadoPago (público; se valida la firma)
	paymentHandler := NewPaymentHandler(deps.PaymentUC)
	api.Post("/pagos/webhook", paymentHandler.Webhook)

	// Rutas protegidas (requieren Bearer Token)
	requireAuth := AuthMiddleware(deps.JWTSecret)

	api.Post("/usuarios", requireAuth, RequireRole(admin), authHandler.CreateStaff)

	api.Post("/articulos/insumos", requireAuth, RequireRole(admin), articleHandler.CreateInsumo)
	api.Post("/articulos/manufacturados", requireAuth, RequireRole(admin), articleHandler.CreateManufactured)
	api.Put("/articulos/:id", requireAuth, RequireRole(admin), articleHandler.Update)
	api.Post("/categorias", requireAuth, RequireRole(admin), categoryHandler.Create)
	api.Post("/promociones", requireAuth, RequireRole(admin), promotionHandler.Create)

	inventoryHandler := NewInventoryHandler(deps.PurchaseUC)
	insumos := api.Group("/insumos", requireAuth, RequireRole(admin, cocinero))
	insumos.Get("/stock-bajo", articleHandler.LowStock)
	insumos.Post("/:id/compras", inventoryHandler.RegisterPurchase)

	// Pedidos: el cliente opera solo sobre los suyos (lo controla el caso de uso)
	orderHandler := NewOrderHandler(deps.OrderUC)
	pedidos := api.Group("/pedidos", requireAuth)
	pedidos.Post("/", orderHandler.Create)
	pedidos.Post("/validar", orderHandler.Validate)
	pedidos.Post("/calcular-total", orderHandler.Quote)
	pedidos.Post("/tiempo-estimado", orderHandler.Estimate)
	pedidos.Get("/", orderHandler.List)
	pedidos.Get("/:id", orderHandler.GetByID)
	pedidos.Put("/:id/confirmar", RequireRole(admin, cajero), orderHandler.Confirm)
	pedidos.Put("/:id/preparacion", RequireRole(admin, cajero, cocinero), orderHandler.StartPreparation)
	pedidos.Put("/:id/listo", RequireRole(admin, cocinero), orderHandler.MarkReady)
	pedidos.Put("/:id/entregado", RequireRole(admin, cajero, delivery), orderHandler.Deliver)
	pedidos.Put("/:id/cancelar", orderHandler.Cancel)

	// Facturas y pagos
	invoiceHandler := NewInvoiceHandler(deps.InvoiceUC)
	facturas := api.Group("/facturas", requireAuth)
	facturas.Get("/:id", invoiceHandler.GetByID)
	facturas.Get("/:id/pdf", invoiceHandler.PDF)
	facturas.Get("/:id/xml", invoiceHandler.XML)
	facturas.Post("/pedido/:pedidoId", RequireRole(admin, cajero), invoiceHandler.GenerateForOrder)
	facturas.Post("/:id/pagos/efectivo", RequireRole(admin, cajero), paymentHandler.CreateCash)
	facturas.Post("/:id/pagos/mercadopago", paymentHandler.CreateMercadoPago)

	caja := RequireRole(admin, cajero)
	api.Put("/pagos/:id/confirmar", requireAuth, caja, paymentHandler.Confirm)
	api.Put("/pagos/:id/rechazar", requireAuth, caja, paymentHandler.Reject)

	// Clientes
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	clientes := api.Group("/clientes", requireAuth)
	clientes.Get("/:id", customerHandler.GetByID)
	clientes.Post("/:id/domicilios", customerHandler.AddAddress)
	clientes.Get("/:id/domicilios", customerHandler.ListAddresses)

	// Estadísticas
	analyticsHandler := NewAnalyticsHandler(deps.AnalyticsUC)
	stats := api.Group("/estadisticas", requireAuth, RequireRole(admin))
	stats.Get("/ranking", analyticsHandler.Ranking)
	stats.Get("/balance", analyticsHandler.Balance)
}

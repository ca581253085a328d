package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	_ "github.com/jhoicas/BuenSabor-api/docs"
	"github.com/jhoicas/BuenSabor-api/internal/application/analytics"
	"github.com/jhoicas/BuenSabor-api/internal/application/auth"
	"github.com/jhoicas/BuenSabor-api/internal/application/billing"
	"github.com/jhoicas/BuenSabor-api/internal/application/catalog"
	"github.com/jhoicas/BuenSabor-api/internal/application/customer"
	"github.com/jhoicas/BuenSabor-api/internal/application/inventory"
	"github.com/jhoicas/BuenSabor-api/internal/application/ordering"
	"github.com/jhoicas/BuenSabor-api/internal/application/promotion"
	domainordering "github.com/jhoicas/BuenSabor-api/internal/domain/ordering"
	"github.com/jhoicas/BuenSabor-api/internal/domain/repository"
	"github.com/jhoicas/BuenSabor-api/internal/infrastructure/invoicexml"
	"github.com/jhoicas/BuenSabor-api/internal/infrastructure/memory"
	"github.com/jhoicas/BuenSabor-api/internal/infrastructure/mercadopago"
	infrapdf "github.com/jhoicas/BuenSabor-api/internal/infrastructure/pdf"
	"github.com/jhoicas/BuenSabor-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/BuenSabor-api/internal/interfaces/http"
	"github.com/jhoicas/BuenSabor-api/pkg/config"
	"github.com/jhoicas/BuenSabor-api/pkg/logger"
)

// storage puertos de persistencia según STORAGE.
type storage struct {
	tx         repository.TxRunner
	repos      repository.TxRepos
	categories repository.CategoryRepository
	promotions repository.PromotionRepository
	analytics  repository.AnalyticsRepository
	close      func()
}

func openStorage(ctx context.Context, cfg *config.Config, log *logger.Logger) storage {
	if cfg.App.Storage == "memory" {
		log.Warn().Msg("STORAGE=memory: los datos se pierden al reiniciar")
		store := memory.NewStore()
		return storage{
			tx:         store,
			repos:      store.Repos(),
			categories: store.Categories(),
			promotions: store.Promotions(),
			analytics:  store.Analytics(),
			close:      func() {},
		}
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	if err := postgres.Migrate(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("migración del esquema")
	}
	return storage{
		tx:         postgres.NewTxRunner(pool),
		repos:      postgres.NewRepos(pool),
		categories: postgres.NewCategoryRepository(pool),
		promotions: postgres.NewPromotionRepository(pool),
		analytics:  postgres.NewAnalyticsRepository(pool),
		close:      pool.Close,
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("storage", cfg.App.Storage).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET es obligatorio")
	}
	loc, err := time.LoadLocation(cfg.App.Timezone)
	if err != nil {
		log.Fatal().Err(err).Str("tz", cfg.App.Timezone).Msg("zona horaria inválida")
	}

	ctx := context.Background()
	st := openStorage(ctx, cfg, log)
	defer st.close()

	// Pasarela: sin access token los pagos con MercadoPago responden 502.
	var gateway billing.PaymentGateway
	if cfg.MercadoPago.AccessToken != "" {
		gateway = mercadopago.NewClient(mercadopago.Config{
			AccessToken:     cfg.MercadoPago.AccessToken,
			BaseURL:         cfg.MercadoPago.BaseURL,
			WebhookSecret:   cfg.MercadoPago.WebhookSecret,
			NotificationURL: cfg.MercadoPago.NotificationURL,
			SuccessURL:      cfg.MercadoPago.SuccessURL,
			FailureURL:      cfg.MercadoPago.FailureURL,
			Timeout:         time.Duration(cfg.MercadoPago.TimeoutSeconds) * time.Second,
		})
	} else {
		log.Warn().Msg("MP_ACCESS_TOKEN vacío: pagos con MercadoPago deshabilitados")
	}

	authUC := auth.NewAuthUseCase(st.tx, st.repos.Users, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	if cfg.App.AdminEmail != "" {
		if err := authUC.EnsureAdmin(ctx, cfg.App.AdminEmail, cfg.App.AdminPassword); err != nil {
			log.Fatal().Err(err).Msg("alta del administrador inicial")
		}
	}

	invoiceGen := billing.NewInvoiceGenerator(cfg.Pricing.DeliveryFee, cfg.Pricing.InvoiceNumberRetries, loc)
	pricing := ordering.NewPricingEngine(
		catalog.NewLookup(st.repos.Articles),
		promotion.NewResolver(st.promotions, loc),
		st.repos.Orders,
		ordering.PricingConfig{
			Policy: domainordering.TotalsPolicy{
				DeliveryFee:         cfg.Pricing.DeliveryFee,
				TakeAwayDiscountPct: cfg.Pricing.TakeAwayDiscountPct,
			},
			DeliveryMinutes: cfg.Pricing.DeliveryMinutes,
			Cooks:           cfg.Pricing.Cooks,
		},
	)
	orderUC := ordering.NewOrderUseCase(st.tx, st.repos.Orders, st.repos.Customers, pricing,
		ordering.NewStockService(st.repos.Stock), invoiceGen)

	invoiceUC := billing.NewInvoiceUseCase(st.tx, st.repos.Invoices, st.repos.Orders, st.repos.Customers,
		st.repos.Articles, invoiceGen,
		infrapdf.NewMarotoPDFGenerator(cfg.Business),
		invoicexml.NewExporter(cfg.Business),
	)
	paymentUC := billing.NewPaymentUseCase(st.tx, st.repos.Invoices, st.repos.Payments, st.repos.Customers,
		st.repos.Orders, gateway)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "El Buen Sabor API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		ArticleUC:   catalog.NewArticleUseCase(st.repos.Articles, st.categories),
		CategoryUC:  catalog.NewCategoryUseCase(st.categories),
		PurchaseUC:  inventory.NewPurchaseUseCase(st.tx),
		PromotionUC: promotion.NewUseCase(st.promotions, st.repos.Articles),
		OrderUC:     orderUC,
		InvoiceUC:   invoiceUC,
		PaymentUC:   paymentUC,
		CustomerUC:  customer.NewUseCase(st.tx, st.repos.Customers),
		AnalyticsUC: analytics.NewUseCase(st.analytics, loc),
		JWTSecret:   cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

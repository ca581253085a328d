package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App         AppConfig
	DB          DBConfig
	JWT         JWTConfig
	HTTP        HTTPConfig
	Pricing     PricingConfig
	MercadoPago MercadoPagoConfig
	Business    BusinessConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
	Timezone string // zona horaria del local; las promociones se evalúan en esta zona
	Storage  string // postgres | memory (memory solo para desarrollo local)

	AdminEmail    string // administrador inicial; vacío = no se crea
	AdminPassword string
}

// DBConfig configuración de PostgreSQL.
// Si DatabaseURL no está vacío, se usa como connection string completo.
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
	MaxConns    int32
	MinConns    int32
}

// ConnectionString devuelve el DSN a usar: DATABASE_URL si está definido, si no el construido con DSN().
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN devuelve el connection string para PostgreSQL con URL encoding para caracteres especiales.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: fmt.Sprintf("sslmode=%s", c.SSLMode),
	}
	return u.String()
}

// JWTConfig configuración de JWT.
type JWTConfig struct {
	Secret     string
	Expiration int // minutos
	Issuer     string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// PricingConfig parámetros del cálculo de totales y tiempos de un pedido.
type PricingConfig struct {
	DeliveryFee          decimal.Decimal // recargo fijo por envío a domicilio
	TakeAwayDiscountPct  decimal.Decimal // % de descuento por retiro en local (si el cliente lo solicita)
	DeliveryMinutes      int             // minutos que se suman al estimado cuando es DELIVERY
	Cooks                int             // cocineros activos; divide la carga de la cocina
	InvoiceNumberRetries int
}

// MercadoPagoConfig credenciales y URLs de la pasarela de pago.
type MercadoPagoConfig struct {
	AccessToken     string
	BaseURL         string
	WebhookSecret   string // vacío = no se valida x-signature
	NotificationURL string
	SuccessURL      string
	FailureURL      string
	TimeoutSeconds  int
}

// BusinessConfig datos del local impresos en las facturas.
type BusinessConfig struct {
	Name    string
	TaxID   string // CUIT
	Address string
	Phone   string
	Email   string
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, DB_HOST, JWT_SECRET, MP_ACCESS_TOKEN, etc.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	deliveryFee, err := getDecimal(v, "PRICING_DELIVERY_FEE", "200")
	if err != nil {
		return nil, err
	}
	takeAwayPct, err := getDecimal(v, "PRICING_TAKE_AWAY_DISCOUNT_PCT", "10")
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "el-buen-sabor"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
			Timezone: getString(v, "APP_TIMEZONE", "America/Argentina/Mendoza"),
			Storage:  strings.ToLower(getString(v, "STORAGE", "postgres")),

			AdminEmail:    getString(v, "ADMIN_EMAIL", ""),
			AdminPassword: getString(v, "ADMIN_PASSWORD", ""),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "buen_sabor"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
			MaxConns:    int32(getInt(v, "DB_MAX_CONNS", 25)),
			MinConns:    int32(getInt(v, "DB_MIN_CONNS", 2)),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 60),
			Issuer:     getString(v, "JWT_ISSUER", "el-buen-sabor"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		Pricing: PricingConfig{
			DeliveryFee:          deliveryFee,
			TakeAwayDiscountPct:  takeAwayPct,
			DeliveryMinutes:      getInt(v, "PRICING_DELIVERY_MINUTES", 10),
			Cooks:                getInt(v, "PRICING_COOKS", 1),
			InvoiceNumberRetries: getInt(v, "INVOICE_NUMBER_RETRIES", 5),
		},
		MercadoPago: MercadoPagoConfig{
			AccessToken:     getString(v, "MP_ACCESS_TOKEN", ""),
			BaseURL:         getString(v, "MP_BASE_URL", "https://api.mercadopago.com"),
			WebhookSecret:   getString(v, "MP_WEBHOOK_SECRET", ""),
			NotificationURL: getString(v, "MP_NOTIFICATION_URL", ""),
			SuccessURL:      getString(v, "MP_SUCCESS_URL", ""),
			FailureURL:      getString(v, "MP_FAILURE_URL", ""),
			TimeoutSeconds:  getInt(v, "MP_TIMEOUT_SECONDS", 15),
		},
		Business: BusinessConfig{
			Name:    getString(v, "BUSINESS_NAME", "El Buen Sabor"),
			TaxID:   getString(v, "BUSINESS_CUIT", ""),
			Address: getString(v, "BUSINESS_ADDRESS", ""),
			Phone:   getString(v, "BUSINESS_PHONE", ""),
			Email:   getString(v, "BUSINESS_EMAIL", ""),
		},
	}

	if cfg.App.Storage != "postgres" && cfg.App.Storage != "memory" {
		return nil, fmt.Errorf("config: STORAGE debe ser postgres o memory")
	}
	if cfg.Pricing.Cooks <= 0 {
		return nil, fmt.Errorf("config: PRICING_COOKS debe ser mayor a 0")
	}
	if cfg.Pricing.DeliveryFee.IsNegative() || cfg.Pricing.TakeAwayDiscountPct.IsNegative() {
		return nil, fmt.Errorf("config: los valores de pricing no pueden ser negativos")
	}
	return cfg, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, err := strconv.Atoi(v.GetString(key))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}

func getDecimal(v *viper.Viper, key, def string) (decimal.Decimal, error) {
	raw := getString(v, key, def)
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero, fmt.Errorf("config: %s inválido: %w", key, err)
	}
	return d, nil
}

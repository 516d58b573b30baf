package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	Service      ServiceConfig
	DB           DBConfig
	Redis        RedisConfig
	FeatureFlags FeatureFlagsConfig
	GoogleMaps   GoogleMapsConfig
	GCP          GCPConfig
	PubSub       PubSubConfig
	Outbox       OutboxConfig
	Pricing      PricingConfig
	Checkout     CheckoutConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	if cfg.FeatureFlags.UseSQLite {
		cfg.DB.Driver = "sqlite"
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"PALENGKE_APP_ENV" required:"true"`
	Port         string `envconfig:"PALENGKE_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"PALENGKE_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"PALENGKE_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type ServiceConfig struct {
	Kind string `envconfig:"PALENGKE_SERVICE_KIND" default:"api"`
}

type DBConfig struct {
	DSN    string `envconfig:"PALENGKE_DB_DSN"`
	Driver string `envconfig:"PALENGKE_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"PALENGKE_DB_HOST"`
	LegacyPort     int    `envconfig:"PALENGKE_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"PALENGKE_DB_USER"`
	LegacyPassword string `envconfig:"PALENGKE_DB_PASSWORD"`
	LegacyName     string `envconfig:"PALENGKE_DB_NAME"`
	LegacySSLMode  string `envconfig:"PALENGKE_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"PALENGKE_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"PALENGKE_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"PALENGKE_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"PALENGKE_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"PALENGKE_REDIS_URL" required:"true"`
	Address      string        `envconfig:"PALENGKE_REDIS_ADDR"`
	Password     string        `envconfig:"PALENGKE_REDIS_PASSWORD"`
	DB           int           `envconfig:"PALENGKE_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"PALENGKE_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"PALENGKE_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"PALENGKE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"PALENGKE_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"PALENGKE_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"PALENGKE_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"PALENGKE_AUTO_MIGRATE" default:"false"`
	QuoteCache  bool `envconfig:"PALENGKE_FEATURE_QUOTE_CACHE" default:"true"`
}

type GoogleMapsConfig struct {
	APIKey string `envconfig:"PALENGKE_GOOGLE_MAPS_API_KEY"`
}

type GCPConfig struct {
	ProjectID              string `envconfig:"PALENGKE_GCP_PROJECT_ID" required:"true"`
	CredentialsJSON        string `envconfig:"PALENGKE_GCP_CREDENTIALS_JSON"`
	ApplicationCredentials string `envconfig:"PALENGKE_GOOGLE_APPLICATION_CREDENTIALS"`
}

type PubSubConfig struct {
	OrdersTopic        string `envconfig:"PALENGKE_PUBSUB_ORDERS_TOPIC" required:"true"`
	OrdersSubscription string `envconfig:"PALENGKE_PUBSUB_ORDERS_SUBSCRIPTION" required:"true"`
}

type OutboxConfig struct {
	BatchSize      int `envconfig:"PALENGKE_OUTBOX_PUBLISH_BATCH_SIZE" default:"50"`
	PollIntervalMS int `envconfig:"PALENGKE_OUTBOX_PUBLISH_POLL_MS" default:"500"`
	MaxAttempts    int `envconfig:"PALENGKE_OUTBOX_MAX_ATTEMPTS" default:"10"`
}

// PricingConfig carries the storefront-wide delivery pricing defaults applied
// when a merchant has no per-km rate configured.
type PricingConfig struct {
	DefaultPerKmRate string `envconfig:"PALENGKE_PRICING_DEFAULT_PER_KM_RATE" default:"10"`
	CurrencySymbol   string `envconfig:"PALENGKE_PRICING_CURRENCY_SYMBOL" default:"₱"`
}

type CheckoutConfig struct {
	QuoteCacheTTL time.Duration `envconfig:"PALENGKE_CHECKOUT_QUOTE_CACHE_TTL" default:"2m"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}

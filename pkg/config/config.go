package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/angelmondragon/cartview/pkg/enums"
)

type Config struct {
	App      AppConfig
	Store    StoreConfig
	DB       DBConfig
	Redis    RedisConfig
	Cart     CartConfig
	Eventing EventingConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Store.validate(); err != nil {
		return nil, err
	}
	if cfg.Store.UsesDB() {
		if err := cfg.DB.ensureDSN(cfg.Store.Driver); err != nil {
			return nil, err
		}
	}
	if cfg.Store.Driver == enums.StoreDriverRedis && cfg.Redis.URL == "" && cfg.Redis.Address == "" {
		return nil, fmt.Errorf("%s or %s is required for the redis store", EnvRedisURL, EnvRedisAddr)
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"CARTVIEW_APP_ENV" required:"true"`
	Port         string `envconfig:"CARTVIEW_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"CARTVIEW_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"CARTVIEW_LOG_WARN_STACK" default:"false"`

	CORSOrigins []string `envconfig:"CARTVIEW_CORS_ORIGINS" default:"http://localhost:3000"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type StoreConfig struct {
	Driver      enums.StoreDriver `envconfig:"CARTVIEW_STORE_DRIVER" default:"memory"`
	SeedFile    string            `envconfig:"CARTVIEW_SEED_FILE"`
	AutoMigrate bool              `envconfig:"CARTVIEW_AUTO_MIGRATE" default:"false"`
}

// UsesDB reports whether the configured driver is backed by gorm.
func (s StoreConfig) UsesDB() bool {
	return s.Driver == enums.StoreDriverSQLite || s.Driver == enums.StoreDriverPostgres
}

func (s *StoreConfig) validate() error {
	if strings.TrimSpace(string(s.Driver)) == "" {
		s.Driver = enums.StoreDriverMemory
		return nil
	}
	driver, err := enums.ParseStoreDriver(string(s.Driver))
	if err != nil {
		return fmt.Errorf("%s: %w", EnvStoreDriver, err)
	}
	s.Driver = driver
	return nil
}

type DBConfig struct {
	DSN string `envconfig:"CARTVIEW_DB_DSN"`

	Host     string `envconfig:"CARTVIEW_DB_HOST"`
	Port     int    `envconfig:"CARTVIEW_DB_PORT" default:"5432"`
	User     string `envconfig:"CARTVIEW_DB_USER"`
	Password string `envconfig:"CARTVIEW_DB_PASSWORD"`
	Name     string `envconfig:"CARTVIEW_DB_NAME"`
	SSLMode  string `envconfig:"CARTVIEW_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"CARTVIEW_DB_MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns    int           `envconfig:"CARTVIEW_DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `envconfig:"CARTVIEW_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"CARTVIEW_DB_CONN_MAX_IDLE_TIME" default:"10m"`

	// Driver is copied from StoreConfig so pkg/db can pick a dialector.
	Driver enums.StoreDriver `ignored:"true"`
}

type RedisConfig struct {
	URL          string        `envconfig:"CARTVIEW_REDIS_URL"`
	Address      string        `envconfig:"CARTVIEW_REDIS_ADDR"`
	Password     string        `envconfig:"CARTVIEW_REDIS_PASSWORD"`
	DB           int           `envconfig:"CARTVIEW_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"CARTVIEW_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"CARTVIEW_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"CARTVIEW_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"CARTVIEW_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"CARTVIEW_REDIS_WRITE_TIMEOUT" default:"5s"`
	CartKey      string        `envconfig:"CARTVIEW_REDIS_CART_KEY" default:"default"`
	LockTTL      time.Duration `envconfig:"CARTVIEW_REDIS_LOCK_TTL" default:"5s"`
}

// Enabled reports whether any redis endpoint was configured.
func (r RedisConfig) Enabled() bool {
	return r.URL != "" || r.Address != ""
}

type CartConfig struct {
	ContinueShoppingURL string `envconfig:"CARTVIEW_CONTINUE_SHOPPING_URL" default:"/"`
	PlaceholderImageURL string `envconfig:"CARTVIEW_PLACEHOLDER_IMAGE_URL" default:"https://cdn.pixabay.com/photo/2018/04/02/07/42/leaf-3283175_1280.jpg"`
	CheckoutNotice      string `envconfig:"CARTVIEW_CHECKOUT_NOTICE" default:"Checkout functionality will be added later"`
}

type EventingConfig struct {
	IdempotencyTTL time.Duration `envconfig:"CARTVIEW_IDEMPOTENCY_TTL" default:"24h"`
}

func (db *DBConfig) ensureDSN(driver enums.StoreDriver) error {
	db.Driver = driver
	if db.DSN != "" {
		return nil
	}
	if driver == enums.StoreDriverSQLite {
		db.DSN = defaultSQLiteDSN
		return nil
	}

	missing := []string{}
	values := map[string]string{
		EnvDBHost: db.Host,
		EnvDBUser: db.User,
		EnvDBName: db.Name,
	}
	for _, env := range postgresDBEnvVars {
		if values[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.User)
	if db.Password != "" {
		userInfo = url.UserPassword(db.User, db.Password)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.Host, db.Port),
		Path:   db.Name,
	}

	if db.SSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.SSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}

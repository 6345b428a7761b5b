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
	HTTP         HTTPConfig
	DB           DBConfig
	Redis        RedisConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env             string        `envconfig:"CUSTOMERCORE_APP_ENV" default:"dev"`
	Port            string        `envconfig:"CUSTOMERCORE_APP_PORT" default:"8080"`
	LogLevel        string        `envconfig:"CUSTOMERCORE_LOG_LEVEL" default:"info"`
	LogFormat       string        `envconfig:"CUSTOMERCORE_LOG_FORMAT" default:"json"`
	LogWarnStack    bool          `envconfig:"CUSTOMERCORE_LOG_WARN_STACK" default:"false"`
	ShutdownTimeout time.Duration `envconfig:"CUSTOMERCORE_APP_SHUTDOWN_TIMEOUT" default:"15s"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev) || strings.EqualFold(a.Env, "development")
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd) || strings.EqualFold(a.Env, "production")
}

type HTTPConfig struct {
	ReadTimeout    time.Duration `envconfig:"CUSTOMERCORE_HTTP_READ_TIMEOUT" default:"15s"`
	WriteTimeout   time.Duration `envconfig:"CUSTOMERCORE_HTTP_WRITE_TIMEOUT" default:"15s"`
	IdleTimeout    time.Duration `envconfig:"CUSTOMERCORE_HTTP_IDLE_TIMEOUT" default:"60s"`
	AllowedOrigins []string      `envconfig:"CUSTOMERCORE_HTTP_ALLOWED_ORIGINS" default:"http://localhost:3000"`
	IdempotencyTTL time.Duration `envconfig:"CUSTOMERCORE_HTTP_IDEMPOTENCY_TTL" default:"24h"`
}

type DBConfig struct {
	DSN    string `envconfig:"CUSTOMERCORE_DB_DSN"`
	Driver string `envconfig:"CUSTOMERCORE_DB_DRIVER" default:"postgres"`
	LogSQL bool   `envconfig:"CUSTOMERCORE_DB_LOG_SQL" default:"false"`

	Host     string `envconfig:"CUSTOMERCORE_DB_HOST"`
	Port     int    `envconfig:"CUSTOMERCORE_DB_PORT" default:"5432"`
	User     string `envconfig:"CUSTOMERCORE_DB_USER"`
	Password string `envconfig:"CUSTOMERCORE_DB_PASSWORD"`
	Name     string `envconfig:"CUSTOMERCORE_DB_NAME"`
	SSLMode  string `envconfig:"CUSTOMERCORE_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"CUSTOMERCORE_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"CUSTOMERCORE_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"CUSTOMERCORE_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"CUSTOMERCORE_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// IsSQLite reports whether the sqlite driver is selected.
func (db DBConfig) IsSQLite() bool {
	return strings.EqualFold(strings.TrimSpace(db.Driver), DriverSQLite)
}

// RedisConfig is optional; an empty URL and address disables idempotency keys.
type RedisConfig struct {
	URL          string        `envconfig:"CUSTOMERCORE_REDIS_URL"`
	Address      string        `envconfig:"CUSTOMERCORE_REDIS_ADDR"`
	Password     string        `envconfig:"CUSTOMERCORE_REDIS_PASSWORD"`
	DB           int           `envconfig:"CUSTOMERCORE_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"CUSTOMERCORE_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"CUSTOMERCORE_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"CUSTOMERCORE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"CUSTOMERCORE_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"CUSTOMERCORE_REDIS_WRITE_TIMEOUT" default:"5s"`
}

func (r RedisConfig) Enabled() bool {
	return strings.TrimSpace(r.URL) != "" || strings.TrimSpace(r.Address) != ""
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"CUSTOMERCORE_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	if db.IsSQLite() {
		db.DSN = defaultSQLiteDSN
		return nil
	}

	missing := []string{}
	values := map[string]string{
		EnvDBHost: db.Host,
		EnvDBUser: db.User,
		EnvDBName: db.Name,
	}
	for _, env := range discreteDBEnvVars {
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

package config

// EnvPrefix is passed to envconfig; every field carries an explicit name.
const EnvPrefix = "CUSTOMERCORE"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	defaultSQLiteDSN = "file:customercore.db?_foreign_keys=on&_busy_timeout=5000&_txlock=immediate"
)

const (
	EnvAppEnv      = "CUSTOMERCORE_APP_ENV"
	EnvPort        = "CUSTOMERCORE_APP_PORT"
	EnvLogLevel    = "CUSTOMERCORE_LOG_LEVEL"
	EnvDBDSN       = "CUSTOMERCORE_DB_DSN"
	EnvDBDriver    = "CUSTOMERCORE_DB_DRIVER"
	EnvDBHost      = "CUSTOMERCORE_DB_HOST"
	EnvDBPort      = "CUSTOMERCORE_DB_PORT"
	EnvDBUser      = "CUSTOMERCORE_DB_USER"
	EnvDBPassword  = "CUSTOMERCORE_DB_PASSWORD"
	EnvDBName      = "CUSTOMERCORE_DB_NAME"
	EnvRedisURL    = "CUSTOMERCORE_REDIS_URL"
	EnvAutoMigrate = "CUSTOMERCORE_AUTO_MIGRATE"
	EnvOrigins     = "CUSTOMERCORE_HTTP_ALLOWED_ORIGINS"
)

var discreteDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

package config

const (
	EnvPrefix = "CARTVIEW"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvAppEnv      = "CARTVIEW_APP_ENV"
	EnvPort        = "CARTVIEW_APP_PORT"
	EnvStoreDriver = "CARTVIEW_STORE_DRIVER"
	EnvSeedFile    = "CARTVIEW_SEED_FILE"
	EnvDBDSN       = "CARTVIEW_DB_DSN"
	EnvDBHost      = "CARTVIEW_DB_HOST"
	EnvDBUser      = "CARTVIEW_DB_USER"
	EnvDBName      = "CARTVIEW_DB_NAME"
	EnvRedisURL    = "CARTVIEW_REDIS_URL"
	EnvRedisAddr   = "CARTVIEW_REDIS_ADDR"

	defaultSQLiteDSN = "file:cartview.db?cache=shared"
)

var postgresDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

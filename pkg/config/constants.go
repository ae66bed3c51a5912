package config

// EnvPrefix is the envconfig prefix shared by every BakeCake binary.
const EnvPrefix = "BAKECAKE"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

const (
	EnvAppEnv   = "BAKECAKE_APP_ENV"
	EnvPort     = "BAKECAKE_APP_PORT"
	EnvDBDSN    = "BAKECAKE_DB_DSN"
	EnvDBHost   = "BAKECAKE_DB_HOST"
	EnvDBUser   = "BAKECAKE_DB_USER"
	EnvDBName   = "BAKECAKE_DB_NAME"
	EnvRedisURL = "BAKECAKE_REDIS_URL"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

package config

// EnvPrefix scopes every variable read by envconfig.
const EnvPrefix = "LEADFLOW"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	DBDriverPostgres = "postgres"
	DBDriverSQLite   = "sqlite"
)

const (
	EnvAppEnv       = "LEADFLOW_APP_ENV"
	EnvPort         = "LEADFLOW_APP_PORT"
	EnvDBDSN        = "LEADFLOW_DB_DSN"
	EnvDBDriver     = "LEADFLOW_DB_DRIVER"
	EnvDBHost       = "LEADFLOW_DB_HOST"
	EnvDBUser       = "LEADFLOW_DB_USER"
	EnvDBName       = "LEADFLOW_DB_NAME"
	EnvRedisURL     = "LEADFLOW_REDIS_URL"
	EnvJWTSecret    = "LEADFLOW_JWT_SECRET"
	EnvJWTIssuer    = "LEADFLOW_JWT_ISSUER"
	EnvJWTExpMins   = "LEADFLOW_JWT_EXPIRATION_MINUTES"
	EnvCORSOrigins  = "LEADFLOW_CORS_ALLOWED_ORIGINS"
	EnvWebhookToken = "LEADFLOW_WEBHOOK_TOKEN"
	EnvWebhookOwner = "LEADFLOW_WEBHOOK_DEFAULT_ASSIGNEE_EMAIL"
	EnvLeadStatuses = "LEADFLOW_LEAD_STATUSES"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

package config

const (
	EnvPrefix = "PALENGKE"

	AppEnvDev  = "dev"
	AppEnvProd = "production"

	EnvAppEnv = "PALENGKE_APP_ENV"
	EnvPort   = "PALENGKE_APP_PORT"

	EnvDBDSN  = "PALENGKE_DB_DSN"
	EnvDBHost = "PALENGKE_DB_HOST"
	EnvDBUser = "PALENGKE_DB_USER"
	EnvDBName = "PALENGKE_DB_NAME"

	EnvRedisURL = "PALENGKE_REDIS_URL"

	EnvGCPProjectID = "PALENGKE_GCP_PROJECT_ID"

	EnvPubSubOrdersTopic = "PALENGKE_PUBSUB_ORDERS_TOPIC"
	EnvPubSubOrdersSub   = "PALENGKE_PUBSUB_ORDERS_SUBSCRIPTION"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

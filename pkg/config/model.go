package config

// #nosec
const (
	EnvironmentVariableNotDefined = "%s variable is not defined"

	ServerPort = "SERVER_PORT"

	MongodbUri            = "MONGODB_URI"
	MongodbUsername       = "MONGODB_USERNAME"
	MongodbPassword       = "MONGODB_PASSWORD"
	MongodbDatabase       = "MONGODB_DATABASE"
	MongodbUserCollection = "MONGODB_USER_COLLECTION"

	JwtAccessSecret     = "JWT_SECRET"
	JwtRefreshSecret    = "JWT_REFRESH_SECRET"
	JwtExpiresIn        = "JWT_EXPIRES_IN"
	JwtRefreshExpiresIn = "JWT_REFRESH_EXPIRES_IN"

	FrontendUrl     = "FRONTEND_URL"
	ResendApiKey    = "RESEND_API_KEY"
	ResendFromEmail = "RESEND_FROM_EMAIL"

	CleanupSchedule = "CLEANUP_SCHEDULE"

	IsAtRemote = "IS_AT_REMOTE"
)

const (
	DefaultServerPort          = "8080"
	DefaultJwtExpiresIn        = "1d"
	DefaultJwtRefreshExpiresIn = "7d"
	DefaultFrontendUrl         = "http://localhost:5173"
	DefaultResendFromEmail     = "onboarding@resend.dev"

	// Daily at 02:00, matching the unverified-account retention policy.
	DefaultCleanupSchedule = "0 2 * * *"
)

type MongodbConfig struct {
	Uri            string
	Username       string
	Password       string
	Database       string
	UserCollection string
}

type JwtConfig struct {
	AccessSecret     []byte
	RefreshSecret    []byte
	ExpiresIn        string
	RefreshExpiresIn string
}

type EmailConfig struct {
	ApiKey    string
	FromEmail string
}

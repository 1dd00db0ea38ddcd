package config

type Config interface {
	EnvConfig
	CorsConfig
	AuthConfig
	WalletConfig
}

type EnvConfig interface {
	GetPort() string
	GetAppName() string
	GetBaseURL() string
	GetEnv() string
	GetDataFolder() string
	GetRedisAddr() string
	GetSQLitePath() string
	GetSmtpHost() string
	GetSmtpPort() string
	GetSmtpAccount() string
	GetSmtpPassword() string
}

type CorsConfig interface {
	GetAllowedOrigins() AllowedOrigins
	GetAllowedMethods() string
	GetAllowedHeaders() string
}

type mainConfig struct {
	EnvVars
	Cors
	Auth
	Wallet
}

func New() Config {
	return mainConfig{}
}

package config

type Config interface {
	EnvConfig
	OIDCConfig
	SessionConfig
}

type EnvConfig interface {
	GetPort() string
	GetAppName() string
	GetAppBase() string
	GetEnv() string
}

type mainConfig struct {
	EnvVars
	OIDC
	Sessions
}

func New() Config {
	return mainConfig{}
}

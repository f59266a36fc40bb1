package config

import "time"

type SessionConfig interface {
	GetSessionSecret() string
	GetSessionTTL() time.Duration
}

type Sessions struct{}

var _ SessionConfig = Sessions{}

// GetSessionSecret returns the key used to sign session cookies. The default
// is only acceptable in development.
func (Sessions) GetSessionSecret() string {
	return GetEnv("SESSION_SECRET", "dev_session_secret_change_me")
}

func (Sessions) GetSessionTTL() time.Duration {
	return durationEnv("SESSION_TTL", 1*time.Hour)
}

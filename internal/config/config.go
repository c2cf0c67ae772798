package config

import (
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/pkg/errors"
)

type Config interface {
	EnvConfig
	BackendConfig
	SessionConfig
}

type EnvConfig interface {
	GetAppName() string
	GetEnv() string
	GetDataFolder() string
	GetCallbackAddr() string
	GetCallbackTimeout() time.Duration
}

type BackendConfig interface {
	GetBackendURL() string
	GetRequestTimeout() time.Duration
	GetSkipToastPaths() []string
}

type SessionConfig interface {
	GetSessionStore() StoreType
	GetKeyringService() string
	GetToastDuration() time.Duration
}

type mainConfig struct {
	EnvVars
	Backend
	Session
}

// New reads the configuration from the process environment.
func New() (Config, error) {
	var c mainConfig
	if err := env.Parse(&c); err != nil {
		return nil, errors.Wrap(err, "[config.New] parse env")
	}
	if err := c.Session.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

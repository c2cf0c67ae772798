package config

import (
	"fmt"
	"strings"
	"time"
)

type EnvVars struct {
	AppName         string        `env:"AUTH_CLIENT_APP_NAME" envDefault:"Go Auth Portal"`
	Env             string        `env:"ENV" envDefault:"DEV"`
	DataFolder      string        `env:"AUTH_CLIENT_DATA_FOLDER" envDefault:"./data"`
	CallbackPort    string        `env:"AUTH_CLIENT_CALLBACK_PORT" envDefault:"4200"`
	CallbackTimeout time.Duration `env:"AUTH_CLIENT_CALLBACK_TIMEOUT" envDefault:"5m"`
}

var _ EnvConfig = EnvVars{}

func (e EnvVars) GetAppName() string {
	return e.AppName
}

func (e EnvVars) GetEnv() string {
	if e.Env == "" {
		return "DEV"
	}
	return e.Env
}

func (e EnvVars) GetDataFolder() string {
	return e.DataFolder
}

// GetCallbackAddr is the loopback address the callback server listens on.
func (e EnvVars) GetCallbackAddr() string {
	port := strings.TrimPrefix(e.CallbackPort, ":")
	return fmt.Sprintf("127.0.0.1:%s", port)
}

func (e EnvVars) GetCallbackTimeout() time.Duration {
	return e.CallbackTimeout
}

package config

import (
	"strings"
	"time"
)

type Backend struct {
	URL            string        `env:"AUTH_CLIENT_BACKEND_URL" envDefault:"http://localhost:8081"`
	RequestTimeout time.Duration `env:"AUTH_CLIENT_REQUEST_TIMEOUT" envDefault:"30s"`
	SkipToastPaths []string      `env:"AUTH_CLIENT_SKIP_TOAST_PATHS" envSeparator:"," envDefault:"/auth/user-info"`
}

var _ BackendConfig = Backend{}

func (b Backend) GetBackendURL() string {
	return strings.TrimRight(b.URL, "/")
}

func (b Backend) GetRequestTimeout() time.Duration {
	return b.RequestTimeout
}

func (b Backend) GetSkipToastPaths() []string {
	return b.SkipToastPaths
}

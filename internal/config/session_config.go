package config

import (
	"fmt"
	"time"
)

// StoreType selects where the session is persisted.
type StoreType string

const (
	StoreTypeFile    StoreType = "file"
	StoreTypeKeyring StoreType = "keyring"
	StoreTypeMemory  StoreType = "memory"
)

type Session struct {
	Store          StoreType     `env:"AUTH_CLIENT_SESSION_STORE" envDefault:"file"`
	KeyringService string        `env:"AUTH_CLIENT_KEYRING_SERVICE" envDefault:"com.go-auth-client"`
	ToastDuration  time.Duration `env:"AUTH_CLIENT_TOAST_DURATION" envDefault:"5s"`
}

var _ SessionConfig = Session{}

func (s Session) GetSessionStore() StoreType {
	return s.Store
}

func (s Session) GetKeyringService() string {
	return s.KeyringService
}

func (s Session) GetToastDuration() time.Duration {
	return s.ToastDuration
}

func (s Session) validate() error {
	switch s.Store {
	case StoreTypeFile, StoreTypeKeyring, StoreTypeMemory:
		return nil
	}
	return fmt.Errorf("unknown session store %q", s.Store)
}

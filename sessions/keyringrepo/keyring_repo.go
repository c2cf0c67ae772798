// Package keyringrepo keeps the session in the operating system keychain.
package keyringrepo

import (
	"github.com/jrsteele09/go-auth-client/sessions"
	"github.com/pkg/errors"
	"github.com/zalando/go-keyring"
)

var _ sessions.Repo = (*Repo)(nil)

// Repo stores one keychain item per session key under a single service name.
// The keychain has no transactions: a batch is applied item by item.
type Repo struct {
	service string
}

func New(service string) *Repo {
	return &Repo{service: service}
}

func (r *Repo) Get(key string) (string, bool, error) {
	v, err := keyring.Get(r.service, key)
	if errors.Is(err, keyring.ErrNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, errors.Wrapf(err, "[keyringrepo.Get] %s", key)
	}
	return v, true, nil
}

func (r *Repo) Set(values map[string]string) error {
	for k, v := range values {
		if err := keyring.Set(r.service, k, v); err != nil {
			return errors.Wrapf(err, "[keyringrepo.Set] %s", k)
		}
	}
	return nil
}

func (r *Repo) Delete(keys ...string) error {
	for _, k := range keys {
		if err := keyring.Delete(r.service, k); err != nil && !errors.Is(err, keyring.ErrNotFound) {
			return errors.Wrapf(err, "[keyringrepo.Delete] %s", k)
		}
	}
	return nil
}

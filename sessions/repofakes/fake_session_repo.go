package repofakes

import (
	"errors"
	"sync"

	"github.com/jrsteele09/go-auth-client/sessions"
)

var _ sessions.Repo = (*FakeSessionRepo)(nil)

// FakeSessionRepo is an in-memory Repo. It also backs the "memory" session store.
type FakeSessionRepo struct {
	values map[string]string
	lock   sync.RWMutex

	// FailWrites makes Set and Delete fail, to exercise error paths
	FailWrites bool
}

func NewFakeSessionRepo() *FakeSessionRepo {
	return &FakeSessionRepo{values: make(map[string]string)}
}

func (r *FakeSessionRepo) Get(key string) (string, bool, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	v, ok := r.values[key]
	return v, ok, nil
}

func (r *FakeSessionRepo) Set(values map[string]string) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	if r.FailWrites {
		return errors.New("write failed")
	}
	for k, v := range values {
		r.values[k] = v
	}
	return nil
}

func (r *FakeSessionRepo) Delete(keys ...string) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	if r.FailWrites {
		return errors.New("write failed")
	}
	for _, k := range keys {
		delete(r.values, k)
	}
	return nil
}

// Snapshot returns a copy of the stored values.
func (r *FakeSessionRepo) Snapshot() map[string]string {
	r.lock.RLock()
	defer r.lock.RUnlock()

	out := make(map[string]string, len(r.values))
	for k, v := range r.values {
		out[k] = v
	}
	return out
}

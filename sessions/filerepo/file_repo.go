// Package filerepo persists the session as a JSON object in a single file.
package filerepo

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/jrsteele09/go-auth-client/sessions"
	"github.com/pkg/errors"
)

const FileName = "session.json"

var _ sessions.Repo = (*Repo)(nil)

// Repo rewrites the whole file on every batch (temp file + rename), so a batch
// is never partially applied.
type Repo struct {
	path string
	lock sync.Mutex
}

// New returns a Repo storing its file in folder, creating the folder if needed.
func New(folder string) (*Repo, error) {
	if err := os.MkdirAll(folder, 0o700); err != nil {
		return nil, errors.Wrap(err, "[filerepo.New] create folder")
	}
	return &Repo{path: filepath.Join(folder, FileName)}, nil
}

// Path is the location of the session file.
func (r *Repo) Path() string {
	return r.path
}

func (r *Repo) Get(key string) (string, bool, error) {
	r.lock.Lock()
	defer r.lock.Unlock()

	values, err := r.read()
	if err != nil {
		return "", false, err
	}
	v, ok := values[key]
	return v, ok, nil
}

func (r *Repo) Set(values map[string]string) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	current, err := r.read()
	if err != nil {
		return err
	}
	for k, v := range values {
		current[k] = v
	}
	return r.write(current)
}

func (r *Repo) Delete(keys ...string) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	current, err := r.read()
	if err != nil {
		return err
	}
	for _, k := range keys {
		delete(current, k)
	}
	if len(current) == 0 {
		if err := os.Remove(r.path); err != nil && !os.IsNotExist(err) {
			return errors.Wrap(err, "[filerepo.Delete] remove")
		}
		return nil
	}
	return r.write(current)
}

func (r *Repo) read() (map[string]string, error) {
	values := make(map[string]string)
	b, err := os.ReadFile(r.path)
	if os.IsNotExist(err) {
		return values, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "[filerepo.read]")
	}
	if len(b) == 0 {
		return values, nil
	}
	if err := json.Unmarshal(b, &values); err != nil {
		return nil, errors.Wrap(err, "[filerepo.read] decode")
	}
	return values, nil
}

func (r *Repo) write(values map[string]string) error {
	b, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return errors.Wrap(err, "[filerepo.write] encode")
	}
	tmp, err := os.CreateTemp(filepath.Dir(r.path), FileName+".*")
	if err != nil {
		return errors.Wrap(err, "[filerepo.write] temp file")
	}
	defer os.Remove(tmp.Name())

	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return errors.Wrap(err, "[filerepo.write] chmod")
	}
	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		return errors.Wrap(err, "[filerepo.write] write")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "[filerepo.write] close")
	}
	if err := os.Rename(tmp.Name(), r.path); err != nil {
		return errors.Wrap(err, "[filerepo.write] rename")
	}
	return nil
}

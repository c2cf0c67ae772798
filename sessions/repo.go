package sessions

// Repo is the persisted key-value storage behind a Store.
// Set and Delete operate on a batch; implementations apply a batch atomically
// when the medium allows it.
type Repo interface {
	// Get returns the value for key and whether it was present
	Get(key string) (string, bool, error)

	// Set writes all values
	Set(values map[string]string) error

	// Delete removes keys; missing keys are not an error
	Delete(keys ...string) error
}

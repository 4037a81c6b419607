// Package session owns the locally persisted session: the bearer token,
// the current-user profile and the user's portal settings. It is the
// only component allowed to touch local storage.
package session

// Keys under which session state is persisted locally.
const (
	KeyToken    = "clinic_token"
	KeyUser     = "clinic_user"
	KeySettings = "clinic_settings"
)

// Store is a named key/value store with durable writes. Implementations
// must survive process restarts; a missing key is not an error.
type Store interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Delete(key string) error
}

package guard

// LoggedInKey is the storage key holding the authentication flag.
const LoggedInKey = "isLoggedIn"

// Storage is the host's persistent key/value store.
type Storage interface {
	Get(key string) (string, bool)
}

// StorageSession reads the authentication flag from Storage. Only the exact
// string "true" counts as logged in.
type StorageSession struct {
	Storage Storage
}

func (s StorageSession) IsAuthenticated() bool {
	if s.Storage == nil {
		return false
	}

	v, ok := s.Storage.Get(LoggedInKey)

	return ok && v == "true"
}

// MemoryStorage is an in-process Storage.
type MemoryStorage map[string]string

func (m MemoryStorage) Get(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

func (m MemoryStorage) Set(key, value string) { m[key] = value }

// StaticSession is a fixed authentication state.
type StaticSession bool

func (s StaticSession) IsAuthenticated() bool { return bool(s) }

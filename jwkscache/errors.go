package jwkscache

import "errors"

var (
	// ErrNotFound is returned by SecureStore implementations when a key has
	// no stored value.
	ErrNotFound = errors.New("jwkscache: entry not found")

	// ErrNoKeySet is returned by Keyfunc when no key set is cached yet for
	// the realm. A background fetch has been triggered; retry later.
	ErrNoKeySet = errors.New("jwkscache: no key set cached yet")
)

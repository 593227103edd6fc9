package jwkscache

import "context"

const (
	contentKeySuffix       = "_jwks_content"
	requestedDateKeySuffix = "_requested_date"
)

// SecureStore is a durable, secure string/number key-value store scoped to the
// running user or service. The manager derives its keys from the realm name,
// so entries for different realms never collide unless realm names do.
//
// GetString and GetFloat64 return ErrNotFound when no value was ever written
// for a key; any other error is treated by the manager as absence as well.
type SecureStore interface {
	GetString(ctx context.Context, key string) (string, error)
	SetString(ctx context.Context, key, value string) error
	GetFloat64(ctx context.Context, key string) (float64, error)
	SetFloat64(ctx context.Context, key string, value float64) error
}

func contentKey(realm string) string {
	return realm + contentKeySuffix
}

func requestedDateKey(realm string) string {
	return realm + requestedDateKeySuffix
}

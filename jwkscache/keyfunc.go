package jwkscache

import (
	"context"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Keyfunc returns a jwt.Keyfunc that resolves RSA verification keys for the
// realm from the cached key set, selected by the token's kid header.
//
// The returned func goes through Load, so resolving a key on a cold cache
// fails with ErrNoKeySet while a background fetch fills the cache; later
// verifications of the same token succeed once keys are available.
func (m *Manager) Keyfunc(realm RealmConfig) jwt.Keyfunc {
	return func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, fmt.Errorf("unexpected signing method: %s", token.Method.Alg())
		}

		kid, ok := token.Header["kid"].(string)
		if !ok || kid == "" {
			return nil, fmt.Errorf("token has no kid header")
		}

		keySet := m.Load(context.Background(), realm)
		if keySet == nil {
			return nil, ErrNoKeySet
		}

		key := keySet.FindKey(kid)
		if key == nil {
			return nil, fmt.Errorf("no key found for kid %q in realm %q", kid, realm.Name)
		}

		return key.RSAPublicKey()
	}
}

package jwkscache

import (
	"crypto/rsa"
	"encoding/base64"
	"fmt"
	"math/big"
	"strings"
)

// JSONWebKey is a single RSA signing key descriptor as served by a provider's
// JWKS endpoint.
type JSONWebKey struct {
	Alg string `json:"alg"`
	Kty string `json:"kty"`
	Use string `json:"use"`
	N   string `json:"n"`
	E   string `json:"e"`
	Kid string `json:"kid"`
}

// KeySet is the JWKS document of one realm at one point in time. It is treated
// as immutable once decoded from a fetch response or from the store.
type KeySet struct {
	Keys []JSONWebKey `json:"keys"`
}

// FindKey returns the key whose kid matches, or nil when no key matches.
// When several keys share a kid, the last one in document order wins.
func (s *KeySet) FindKey(kid string) *JSONWebKey {
	if s == nil {
		return nil
	}
	var found *JSONWebKey
	for i := range s.Keys {
		if s.Keys[i].Kid == kid {
			found = &s.Keys[i]
		}
	}
	return found
}

// RSAPublicKey converts the key's base64url modulus and exponent into an
// *rsa.PublicKey usable by token verifiers.
func (k *JSONWebKey) RSAPublicKey() (*rsa.PublicKey, error) {
	if k.Kty != "RSA" {
		return nil, fmt.Errorf("unsupported key type: %s", k.Kty)
	}

	nBytes, err := decodeBase64URL(k.N)
	if err != nil {
		return nil, fmt.Errorf("failed to decode modulus: %w", err)
	}

	eBytes, err := decodeBase64URL(k.E)
	if err != nil {
		return nil, fmt.Errorf("failed to decode exponent: %w", err)
	}

	var exp int
	for _, b := range eBytes {
		exp = exp<<8 | int(b)
	}
	if exp == 0 {
		return nil, fmt.Errorf("invalid exponent for key %q", k.Kid)
	}

	return &rsa.PublicKey{
		N: new(big.Int).SetBytes(nBytes),
		E: exp,
	}, nil
}

// decodeBase64URL accepts both padded and unpadded base64url, since providers
// differ on padding.
func decodeBase64URL(s string) ([]byte, error) {
	return base64.RawURLEncoding.DecodeString(strings.TrimRight(s, "="))
}

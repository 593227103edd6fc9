package jwkscache

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/laurafitzgerald/jwks-cache-go/jwkscache/internal/mockidp"
)

func signedToken(t *testing.T, provider *mockidp.Provider, realm, kid string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, jwt.MapClaims{
		"sub": "john.doe@example.com",
		"iss": "https://idp.example.com/realms/" + realm,
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	token.Header["kid"] = kid

	signed, err := token.SignedString(provider.PrivateKey(realm, 0))
	if err != nil {
		t.Fatalf("Error signing token: %v", err)
	}
	return signed
}

func TestKeyfuncResolvesCachedKey(t *testing.T) {
	provider := mockidp.New()
	defer provider.Close()

	kids, err := provider.AddRealm("demo", 2)
	if err != nil {
		t.Fatalf("Error adding realm: %v", err)
	}
	realm := RealmConfig{Name: "demo", JwksURL: provider.JWKSURL("demo")}

	m := NewManager(NewMemStore(), NewHTTPTransport(5*time.Second), FetchConfig{MinTimeBetweenRequests: 30}, nil)
	fetchAndWait(t, m, realm)

	signed := signedToken(t, provider, "demo", kids[0])

	parsed, err := jwt.Parse(signed, m.Keyfunc(realm))
	if err != nil {
		t.Fatalf("Error verifying token against cached JWKS: %v", err)
	}
	if !parsed.Valid {
		t.Error("Expected token to be valid")
	}
}

func TestKeyfuncColdCache(t *testing.T) {
	provider := mockidp.New()
	defer provider.Close()

	kids, err := provider.AddRealm("demo", 1)
	if err != nil {
		t.Fatalf("Error adding realm: %v", err)
	}
	realm := RealmConfig{Name: "demo", JwksURL: provider.JWKSURL("demo")}

	m := NewManager(NewMemStore(), NewHTTPTransport(5*time.Second), FetchConfig{MinTimeBetweenRequests: 30}, nil)

	signed := signedToken(t, provider, "demo", kids[0])

	_, err = jwt.Parse(signed, m.Keyfunc(realm))
	if !errors.Is(err, ErrNoKeySet) {
		t.Fatalf("Expected ErrNoKeySet on a cold cache, got: %v", err)
	}

	// The failed resolution kicked off a background fetch; once it lands the
	// same token verifies.
	eventually(t, func() bool {
		parsed, err := jwt.Parse(signed, m.Keyfunc(realm))
		return err == nil && parsed.Valid
	}, "Expected verification to succeed once the background fetch completed")
}

func TestKeyfuncUnknownKid(t *testing.T) {
	provider := mockidp.New()
	defer provider.Close()

	if _, err := provider.AddRealm("demo", 1); err != nil {
		t.Fatalf("Error adding realm: %v", err)
	}
	realm := RealmConfig{Name: "demo", JwksURL: provider.JWKSURL("demo")}

	m := NewManager(NewMemStore(), NewHTTPTransport(5*time.Second), FetchConfig{MinTimeBetweenRequests: 30}, nil)
	fetchAndWait(t, m, realm)

	signed := signedToken(t, provider, "demo", "no-such-kid")

	if _, err := jwt.Parse(signed, m.Keyfunc(realm)); err == nil {
		t.Fatal("Expected verification to fail for an unknown kid")
	}
}

func TestKeyfuncRejectsNonRSAMethods(t *testing.T) {
	realm := RealmConfig{Name: "demo", JwksURL: "https://idp.example.com/certs"}
	m := NewManager(NewMemStore(), &fakeTransport{body: jwksBody("k1")}, FetchConfig{}, nil)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "x"})
	token.Header["kid"] = "k1"
	signed, err := token.SignedString([]byte("shared-secret"))
	if err != nil {
		t.Fatalf("Error signing token: %v", err)
	}

	if _, err := jwt.Parse(signed, m.Keyfunc(realm)); err == nil {
		t.Fatal("Expected non-RSA signing method to be rejected")
	}
}

// Package mockidp runs a fake identity provider that serves per-realm JWKS
// documents over HTTP, for exercising the cache against a live endpoint.
package mockidp

import (
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type jwk struct {
	Alg string `json:"alg"`
	Kty string `json:"kty"`
	Use string `json:"use"`
	N   string `json:"n"`
	E   string `json:"e"`
	Kid string `json:"kid"`
}

type jwks struct {
	Keys []jwk `json:"keys"`
}

type realm struct {
	keys []*rsa.PrivateKey
	kids []string
	hits int
}

// Provider is a fake identity provider. Realms are added up front; each realm
// serves its JWKS at the Keycloak certs path and counts how often it is hit.
type Provider struct {
	server *httptest.Server

	mu     sync.Mutex
	realms map[string]*realm
}

// New starts a Provider. Callers must Close it.
func New() *Provider {
	p := &Provider{
		realms: make(map[string]*realm),
	}

	router := mux.NewRouter()
	router.HandleFunc("/realms/{realm}/protocol/openid-connect/certs", p.serveJWKS)
	p.server = httptest.NewServer(router)

	return p
}

// AddRealm registers a realm with numKeys freshly generated RSA signing keys
// and returns the generated key identifiers in document order.
func (p *Provider) AddRealm(name string, numKeys int) ([]string, error) {
	r := &realm{}
	for i := 0; i < numKeys; i++ {
		key, err := rsa.GenerateKey(rand.Reader, 2048)
		if err != nil {
			return nil, fmt.Errorf("generating key: %w", err)
		}
		r.keys = append(r.keys, key)
		r.kids = append(r.kids, uuid.NewString())
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.realms[name] = r

	return append([]string(nil), r.kids...), nil
}

// JWKSURL returns the realm's JWKS endpoint URL.
func (p *Provider) JWKSURL(name string) string {
	return p.server.URL + "/realms/" + name + "/protocol/openid-connect/certs"
}

// PrivateKey returns the i-th signing key of the realm, for signing test
// tokens that the served JWKS can verify.
func (p *Provider) PrivateKey(name string, i int) *rsa.PrivateKey {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.realms[name].keys[i]
}

// Requests reports how many JWKS requests the realm has served.
func (p *Provider) Requests(name string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	r, ok := p.realms[name]
	if !ok {
		return 0
	}
	return r.hits
}

// Close shuts the underlying HTTP server down.
func (p *Provider) Close() {
	p.server.Close()
}

func (p *Provider) serveJWKS(w http.ResponseWriter, req *http.Request) {
	name := mux.Vars(req)["realm"]

	p.mu.Lock()
	defer p.mu.Unlock()

	r, ok := p.realms[name]
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	r.hits++

	doc := jwks{}
	for i, key := range r.keys {
		pub := key.PublicKey
		doc.Keys = append(doc.Keys, jwk{
			Alg: "RS256",
			Kty: "RSA",
			Use: "sig",
			N:   base64.RawURLEncoding.EncodeToString(pub.N.Bytes()),
			E:   base64.RawURLEncoding.EncodeToString(exponentBytes(pub.E)),
			Kid: r.kids[i],
		})
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(doc); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
	}
}

func exponentBytes(e int) []byte {
	b := binary.BigEndian.AppendUint64(nil, uint64(e))
	for len(b) > 1 && b[0] == 0 {
		b = b[1:]
	}
	return b
}

package ssmstore

import (
	"context"
	"errors"
	"testing"

	"github.com/laurafitzgerald/jwks-cache-go/jwkscache"
	"github.com/laurafitzgerald/jwks-cache-go/jwkscache/internal/mockssm"
)

func TestStringRoundTrip(t *testing.T) {
	store := New(mockssm.NewMockSSM(), "/testsvc/jwks/")

	value := `{"keys":[{"kid":"k1"}]}`
	if err := store.SetString(context.Background(), "demo_jwks_content", value); err != nil {
		t.Fatalf("Error setting parameter: %v", err)
	}

	got, err := store.GetString(context.Background(), "demo_jwks_content")
	if err != nil {
		t.Fatalf("Error getting parameter: %v", err)
	}
	if got != value {
		t.Errorf("Expected %q, got %q", value, got)
	}
}

func TestFloat64RoundTrip(t *testing.T) {
	store := New(mockssm.NewMockSSM(), "/testsvc/jwks/")

	if err := store.SetFloat64(context.Background(), "demo_requested_date", 1717243200.25); err != nil {
		t.Fatalf("Error setting parameter: %v", err)
	}

	got, err := store.GetFloat64(context.Background(), "demo_requested_date")
	if err != nil {
		t.Fatalf("Error getting parameter: %v", err)
	}
	if got != 1717243200.25 {
		t.Errorf("Expected 1717243200.25, got %v", got)
	}
}

func TestGetMissingParameter(t *testing.T) {
	store := New(mockssm.NewMockSSM(), "/testsvc/jwks/")

	if _, err := store.GetString(context.Background(), "never_written"); !errors.Is(err, jwkscache.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got: %v", err)
	}
	if _, err := store.GetFloat64(context.Background(), "never_written"); !errors.Is(err, jwkscache.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got: %v", err)
	}
}

func TestGetNonNumericFloat(t *testing.T) {
	store := New(mockssm.NewMockSSM(), "/testsvc/jwks/")

	if err := store.SetString(context.Background(), "demo_requested_date", "not-a-number"); err != nil {
		t.Fatalf("Error setting parameter: %v", err)
	}
	if _, err := store.GetFloat64(context.Background(), "demo_requested_date"); err == nil {
		t.Error("Expected parse error for non-numeric value")
	}
}

func TestOverwrite(t *testing.T) {
	store := New(mockssm.NewMockSSM(), "/testsvc/jwks/")

	if err := store.SetString(context.Background(), "demo_jwks_content", "old"); err != nil {
		t.Fatalf("Error setting parameter: %v", err)
	}
	if err := store.SetString(context.Background(), "demo_jwks_content", "new"); err != nil {
		t.Fatalf("Error overwriting parameter: %v", err)
	}

	got, err := store.GetString(context.Background(), "demo_jwks_content")
	if err != nil {
		t.Fatalf("Error getting parameter: %v", err)
	}
	if got != "new" {
		t.Errorf("Expected overwritten value, got %q", got)
	}
}

func TestPrefixIsolation(t *testing.T) {
	client := mockssm.NewMockSSM()
	storeA := New(client, "/service-a/")
	storeB := New(client, "/service-b/")

	if err := storeA.SetString(context.Background(), "demo_jwks_content", "a"); err != nil {
		t.Fatalf("Error setting parameter: %v", err)
	}

	if _, err := storeB.GetString(context.Background(), "demo_jwks_content"); !errors.Is(err, jwkscache.ErrNotFound) {
		t.Errorf("Expected prefixes to isolate entries, got: %v", err)
	}
}

// The manager only depends on the SecureStore contract; make sure the SSM
// store satisfies it.
var _ jwkscache.SecureStore = (*Store)(nil)

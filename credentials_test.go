package sdk

import (
	"context"
	"testing"
)

func TestCredentialStoreLastWriteWins(t *testing.T) {
	store := &CredentialStore{}
	if got := store.Token(); got != "" {
		t.Fatalf("zero value should hold no token, got %q", got)
	}
	store.SetToken("first")
	store.SetToken("second")
	if got := store.Token(); got != "second" {
		t.Fatalf("expected last write, got %q", got)
	}
}

func TestCredentialStoreTrimsBearerPrefix(t *testing.T) {
	store := &CredentialStore{}
	store.SetToken("Bearer abc123")
	if got := store.Token(); got != "abc123" {
		t.Fatalf("expected trimmed token, got %q", got)
	}
	store.SetToken("  bearer abc123  ")
	if got := store.Token(); got != "abc123" {
		t.Fatalf("expected case-insensitive trim, got %q", got)
	}
}

func TestCredentialStoreResetClearsEverything(t *testing.T) {
	store := &CredentialStore{}
	store.SetToken("abc123")
	store.SetRefreshFunc(func(ctx context.Context) (string, error) { return "x", nil })
	store.SetUnauthorizedFunc(func() {})

	store.Reset()
	if got := store.Token(); got != "" {
		t.Fatalf("expected cleared token, got %q", got)
	}
	if store.refreshFunc() != nil {
		t.Fatal("expected cleared refresh func")
	}
	// notifyUnauthorized after reset is a no-op, not a panic.
	store.notifyUnauthorized()
	store.Reset()
}

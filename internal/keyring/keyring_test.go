package keyring

import (
	"errors"
	"testing"

	gokeyring "github.com/zalando/go-keyring"
)

func TestConnectionStringRoundTrip(t *testing.T) {
	gokeyring.MockInit()

	connStr := "postgres://exo@localhost:5432/exocortex?sslmode=disable"
	if err := SetConnectionString(connStr); err != nil {
		t.Fatalf("SetConnectionString failed: %v", err)
	}

	got, err := GetConnectionString()
	if err != nil {
		t.Fatalf("GetConnectionString failed: %v", err)
	}
	if got != connStr {
		t.Errorf("got %q, want %q", got, connStr)
	}

	if err := DeleteConnectionString(); err != nil {
		t.Fatalf("DeleteConnectionString failed: %v", err)
	}
	if _, err := GetConnectionString(); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v after delete, want ErrNotFound", err)
	}
}

func TestOpenAIKeyIsSeparateEntry(t *testing.T) {
	gokeyring.MockInit()

	if err := SetConnectionString("postgres://exo@host/db"); err != nil {
		t.Fatalf("SetConnectionString failed: %v", err)
	}
	if err := SetOpenAIKey("sk-test"); err != nil {
		t.Fatalf("SetOpenAIKey failed: %v", err)
	}

	key, err := GetOpenAIKey()
	if err != nil {
		t.Fatalf("GetOpenAIKey failed: %v", err)
	}
	if key != "sk-test" {
		t.Errorf("key = %q, want sk-test", key)
	}

	if err := DeleteOpenAIKey(); err != nil {
		t.Fatalf("DeleteOpenAIKey failed: %v", err)
	}
	// Connection string is untouched.
	if _, err := GetConnectionString(); err != nil {
		t.Errorf("connection string lost after deleting API key: %v", err)
	}
}

func TestSetEmptyValueRejected(t *testing.T) {
	gokeyring.MockInit()
	if err := SetOpenAIKey(""); err == nil {
		t.Fatal("expected error for empty credential")
	}
}

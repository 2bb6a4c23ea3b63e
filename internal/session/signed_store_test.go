package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"researchai/pkg/domain"
)

func newSignedStore(t *testing.T, ttl time.Duration) (*SignedStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "session.json")
	store, err := NewSignedStore(path, "test-secret", ttl)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	return store, path
}

func TestSignedStoreRoundTrip(t *testing.T) {
	store, _ := newSignedStore(t, time.Hour)
	sess := domain.Session{UserID: "user-1", Email: "u@example.com"}
	if err := store.Save(sess); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, ok, err := store.Load()
	if err != nil || !ok {
		t.Fatalf("load: ok=%v err=%v", ok, err)
	}
	if got != sess {
		t.Fatalf("session = %+v, want %+v", got, sess)
	}
}

func TestSignedStoreTamperedTokenReadsAsLoggedOut(t *testing.T) {
	store, path := newSignedStore(t, time.Hour)
	if err := store.Save(domain.Session{UserID: "user-1"}); err != nil {
		t.Fatalf("save: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read file: %v", err)
	}
	var state signedState
	if err := json.Unmarshal(data, &state); err != nil {
		t.Fatalf("parse file: %v", err)
	}
	// Flip the payload to impersonate another user; the signature no longer matches.
	parts := strings.Split(state.Token, ".")
	if len(parts) != 3 {
		t.Fatalf("token has %d parts", len(parts))
	}
	parts[1] = "eyJzdWIiOiJ1c2VyLTIifQ"
	state.Token = strings.Join(parts, ".")
	data, _ = json.Marshal(state)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write file: %v", err)
	}

	_, ok, err := store.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if ok {
		t.Fatal("tampered session must read as logged out")
	}
}

func TestSignedStoreExpiredTokenReadsAsLoggedOut(t *testing.T) {
	store, _ := newSignedStore(t, time.Millisecond)
	if err := store.Save(domain.Session{UserID: "user-1"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	time.Sleep(10 * time.Millisecond)

	_, ok, err := store.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if ok {
		t.Fatal("expired session must read as logged out")
	}
}

func TestSignedStoreWrongSecretReadsAsLoggedOut(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	writer, err := NewSignedStore(path, "secret-a", time.Hour)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	if err := writer.Save(domain.Session{UserID: "user-1"}); err != nil {
		t.Fatalf("save: %v", err)
	}

	reader, err := NewSignedStore(path, "secret-b", time.Hour)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	_, ok, err := reader.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if ok {
		t.Fatal("session signed under another secret must read as logged out")
	}
}

func TestSignedStoreRejectsEmptySession(t *testing.T) {
	store, _ := newSignedStore(t, time.Hour)
	if err := store.Save(domain.Session{}); err == nil {
		t.Fatal("expected error saving session without user ID")
	}
}

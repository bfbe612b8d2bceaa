//go:build darwin && integration

package keychain

import (
	"testing"
)

// Integration tests use the real macOS Keychain.
// Run with: go test -tags integration ./internal/keychain/
//
// Requires an unlocked login Keychain and an interactive session
// (first run may prompt for Keychain access approval).

const integrationService = "github.com/benaskins/lpop-test?env=integration"

func integrationStore() *SystemStore {
	return NewSystemStore(Options{})
}

func cleanupIntegration(t *testing.T, s *SystemStore, accounts ...string) {
	t.Helper()
	for _, a := range accounts {
		s.DeletePassword(integrationService, a)
	}
}

func TestKeychainSetAndGet(t *testing.T) {
	s := integrationStore()
	account := "INTEGRATION_SET_GET"
	defer cleanupIntegration(t, s, account)

	if err := s.SetPassword(integrationService, account, "hello-keychain", nil); err != nil {
		t.Fatalf("SetPassword: %v", err)
	}

	value, ok, err := s.GetPassword(integrationService, account)
	if err != nil {
		t.Fatalf("GetPassword: %v", err)
	}
	if !ok || value != "hello-keychain" {
		t.Errorf("expected hello-keychain, got ok=%v value=%q", ok, value)
	}
}

func TestKeychainGetAbsent(t *testing.T) {
	s := integrationStore()

	_, ok, err := s.GetPassword(integrationService, "INTEGRATION_NEVER_SET")
	if err != nil {
		t.Fatalf("GetPassword on absent key: %v", err)
	}
	if ok {
		t.Error("expected absent entry")
	}
}

func TestKeychainOverwrite(t *testing.T) {
	s := integrationStore()
	account := "INTEGRATION_OVERWRITE"
	defer cleanupIntegration(t, s, account)

	s.SetPassword(integrationService, account, "first", nil)
	s.SetPassword(integrationService, account, "second", nil)

	value, ok, err := s.GetPassword(integrationService, account)
	if err != nil {
		t.Fatalf("GetPassword: %v", err)
	}
	if !ok || value != "second" {
		t.Errorf("expected second, got ok=%v value=%q", ok, value)
	}
}

func TestKeychainDeleteAbsent(t *testing.T) {
	s := integrationStore()

	removed, err := s.DeletePassword(integrationService, "INTEGRATION_NEVER_EXISTED")
	if err != nil {
		t.Fatalf("DeletePassword on absent key: %v", err)
	}
	if removed {
		t.Error("expected removed=false")
	}
}

func TestKeychainUnicodeRoundTrip(t *testing.T) {
	s := integrationStore()
	account := "INTEGRATION_UNICODE"
	defer cleanupIntegration(t, s, account)

	want := "emoji 🔑\nline two with \"quotes\""
	if err := s.SetPassword(integrationService, account, want, nil); err != nil {
		t.Fatalf("SetPassword: %v", err)
	}

	got, ok, err := s.GetPassword(integrationService, account)
	if err != nil {
		t.Fatalf("GetPassword: %v", err)
	}
	if !ok || got != want {
		t.Errorf("expected %q, got ok=%v %q", want, ok, got)
	}
}

func TestKeychainFindEntries(t *testing.T) {
	s := integrationStore()
	accounts := []string{"app_db", "app_cache", "web_host"}
	defer cleanupIntegration(t, s, accounts...)

	for _, a := range accounts {
		if err := s.SetPassword(integrationService, a, "v-"+a, nil); err != nil {
			t.Fatalf("SetPassword(%s): %v", a, err)
		}
	}

	entries, err := s.FindEntries(integrationService, &FindQuery{AccountPrefix: "app_"})
	if err != nil {
		t.Fatalf("FindEntries: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries with prefix app_, got %d", len(entries))
	}
	for _, e := range entries {
		if e.Password != "v-"+e.Account {
			t.Errorf("entry %s: expected password %q, got %q", e.Account, "v-"+e.Account, e.Password)
		}
		if e.Metadata == nil || e.Metadata.CreatedAt.IsZero() {
			t.Errorf("entry %s: expected native creation date", e.Account)
		}
	}
}

func TestKeychainEntryLabel(t *testing.T) {
	s := integrationStore()
	account := "INTEGRATION_LABEL"
	defer cleanupIntegration(t, s, account)

	if err := s.SetPassword(integrationService, account, "v", nil); err != nil {
		t.Fatalf("SetPassword: %v", err)
	}

	entry, err := s.GetEntry(integrationService, account)
	if err != nil {
		t.Fatalf("GetEntry: %v", err)
	}
	if entry == nil || entry.Metadata == nil {
		t.Fatal("expected entry with metadata")
	}
	want := integrationService + " (" + account + ")"
	if entry.Metadata.Label != want {
		t.Errorf("expected label %q, got %q", want, entry.Metadata.Label)
	}
}

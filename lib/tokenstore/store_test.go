// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tokenstore

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/netrunner-host/netrunner/lib/schema/account"
	"github.com/netrunner-host/netrunner/lib/testutil"
)

// exerciseStore runs the Store contract against any backend.
func exerciseStore(t *testing.T, store Store) {
	t.Helper()

	if _, ok := store.Get(account.RoleCustomer); ok {
		t.Fatal("new store has a customer token")
	}

	if err := store.Set(account.RoleCustomer, "cust"); err != nil {
		t.Fatalf("Set(customer): %v", err)
	}
	if err := store.Set(account.RoleAdmin, "adm"); err != nil {
		t.Fatalf("Set(admin): %v", err)
	}

	if token, ok := store.Get(account.RoleCustomer); !ok || token != "cust" {
		t.Errorf("Get(customer) = %q, %v", token, ok)
	}
	if token, ok := store.Get(account.RoleAdmin); !ok || token != "adm" {
		t.Errorf("Get(admin) = %q, %v", token, ok)
	}

	if err := store.Clear(account.RoleCustomer); err != nil {
		t.Fatalf("Clear(customer): %v", err)
	}
	if _, ok := store.Get(account.RoleCustomer); ok {
		t.Error("customer token survived Clear")
	}
	if token, ok := store.Get(account.RoleAdmin); !ok || token != "adm" {
		t.Errorf("clearing customer disturbed admin: %q, %v", token, ok)
	}
	if err := store.Clear(account.RoleCustomer); err != nil {
		t.Errorf("clearing an empty slot: %v", err)
	}

	if err := store.Set(account.RoleAnonymous, "x"); !errors.Is(err, ErrNoSlot) {
		t.Errorf("Set(anonymous) error = %v, want ErrNoSlot", err)
	}
	if _, ok := store.Get(account.RoleAnonymous); ok {
		t.Error("Get(anonymous) reported a token")
	}
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemory())
}

func TestFileStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "tokens.json")
	store, err := OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	exerciseStore(t, store)

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if mode := info.Mode().Perm(); mode != 0600 {
		t.Errorf("token file mode = %o, want 600", mode)
	}
	directoryInfo, err := os.Stat(filepath.Dir(path))
	if err != nil {
		t.Fatalf("Stat dir: %v", err)
	}
	if mode := directoryInfo.Mode().Perm(); mode != 0700 {
		t.Errorf("token directory mode = %o, want 700", mode)
	}
}

func TestFileStorePersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tokens.json")
	first, err := OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	if err := first.Set(account.RoleAdmin, "persisted"); err != nil {
		t.Fatalf("Set: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	var document map[string]string
	if err := json.Unmarshal(data, &document); err != nil {
		t.Fatalf("token file is not JSON: %v", err)
	}
	if document["admin"] != "persisted" {
		t.Errorf("document = %v", document)
	}

	second, err := OpenFile(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if token, ok := second.Get(account.RoleAdmin); !ok || token != "persisted" {
		t.Errorf("reopened Get(admin) = %q, %v", token, ok)
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("directory has %d entries, want only the token file", len(entries))
	}
}

func TestFileStoreCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tokens.json")
	if err := os.WriteFile(path, []byte("{not json"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := OpenFile(path); err == nil {
		t.Error("OpenFile on a corrupt file should fail")
	}
}

func TestSealedStore(t *testing.T) {
	directory := t.TempDir()
	documentPath := filepath.Join(directory, "tokens.age")
	keyPath := filepath.Join(directory, "keys", "tokens.key")

	store, err := OpenSealed(documentPath, keyPath)
	if err != nil {
		t.Fatalf("OpenSealed: %v", err)
	}
	exerciseStore(t, store)

	keyInfo, err := os.Stat(keyPath)
	if err != nil {
		t.Fatalf("key file not created: %v", err)
	}
	if mode := keyInfo.Mode().Perm(); mode != 0600 {
		t.Errorf("key file mode = %o, want 600", mode)
	}

	data, err := os.ReadFile(documentPath)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if bytes.Contains(data, []byte("adm")) {
		t.Error("sealed document contains a plaintext token")
	}

	reopened, err := OpenSealed(documentPath, keyPath)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if token, ok := reopened.Get(account.RoleAdmin); !ok || token != "adm" {
		t.Errorf("reopened Get(admin) = %q, %v", token, ok)
	}
}

func TestSealedStoreWrongKey(t *testing.T) {
	directory := t.TempDir()
	documentPath := filepath.Join(directory, "tokens.age")

	store, err := OpenSealed(documentPath, filepath.Join(directory, "a.key"))
	if err != nil {
		t.Fatalf("OpenSealed: %v", err)
	}
	if err := store.Set(account.RoleCustomer, "t"); err != nil {
		t.Fatalf("Set: %v", err)
	}

	if _, err := OpenSealed(documentPath, filepath.Join(directory, "b.key")); err == nil {
		t.Error("opening with a different key should fail")
	}
}

func TestDefaultPath(t *testing.T) {
	configHome := testutil.IsolateEnv(t)

	if got, want := DefaultPath(), filepath.Join(configHome, "netrunner", "tokens.json"); got != want {
		t.Errorf("DefaultPath() = %q, want %q", got, want)
	}

	t.Setenv("NETRUNNER_TOKEN_FILE", "/custom/tokens.json")
	if got := DefaultPath(); got != "/custom/tokens.json" {
		t.Errorf("DefaultPath() with override = %q", got)
	}

	documentPath, keyPath := DefaultSealedPaths()
	if filepath.Dir(documentPath) != filepath.Join(configHome, "netrunner") || filepath.Base(keyPath) != "tokens.key" {
		t.Errorf("DefaultSealedPaths() = %q, %q", documentPath, keyPath)
	}
}

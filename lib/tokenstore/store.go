// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tokenstore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/netrunner-host/netrunner/lib/schema/account"
)

// Store holds at most one token per identity. Identities are
// account.RoleCustomer and account.RoleAdmin; the anonymous role has no
// slot.
type Store interface {
	// Get returns the stored token and true, or "" and false when the
	// slot is empty.
	Get(identity account.Role) (string, bool)

	// Set replaces the token for identity. An empty token is
	// equivalent to Clear.
	Set(identity account.Role, token string) error

	// Clear empties the slot for identity. Clearing an empty slot is
	// not an error.
	Clear(identity account.Role) error
}

// ErrNoSlot is returned when a mutation names an identity without a
// token slot.
var ErrNoSlot = errors.New("tokenstore: identity has no token slot")

// slots is the persisted document shared by every backend.
type slots struct {
	Customer string `json:"customer,omitempty" cbor:"customer,omitempty"`
	Admin    string `json:"admin,omitempty" cbor:"admin,omitempty"`
}

func (s *slots) field(identity account.Role) (*string, error) {
	switch identity {
	case account.RoleCustomer:
		return &s.Customer, nil
	case account.RoleAdmin:
		return &s.Admin, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrNoSlot, identity)
	}
}

func (s *slots) get(identity account.Role) (string, bool) {
	field, err := s.field(identity)
	if err != nil || *field == "" {
		return "", false
	}
	return *field, true
}

// Memory is an in-process Store. The zero value is ready to use.
type Memory struct {
	mu    sync.Mutex
	slots slots
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory { return &Memory{} }

func (m *Memory) Get(identity account.Role) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slots.get(identity)
}

func (m *Memory) Set(identity account.Role, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	field, err := m.slots.field(identity)
	if err != nil {
		return err
	}
	*field = token
	return nil
}

func (m *Memory) Clear(identity account.Role) error {
	return m.Set(identity, "")
}

// ConfigDirectory returns $XDG_CONFIG_HOME/netrunner, falling back to
// ~/.config/netrunner.
func ConfigDirectory() string {
	configDirectory := os.Getenv("XDG_CONFIG_HOME")
	if configDirectory == "" {
		homeDirectory, err := os.UserHomeDir()
		if err != nil {
			return filepath.Join(os.TempDir(), "netrunner")
		}
		configDirectory = filepath.Join(homeDirectory, ".config")
	}
	return filepath.Join(configDirectory, "netrunner")
}

// DefaultPath returns the token file path: NETRUNNER_TOKEN_FILE when
// set, otherwise tokens.json under ConfigDirectory.
func DefaultPath() string {
	if envPath := os.Getenv("NETRUNNER_TOKEN_FILE"); envPath != "" {
		return envPath
	}
	return filepath.Join(ConfigDirectory(), "tokens.json")
}

// DefaultSealedPaths returns the sealed document and key file paths
// under ConfigDirectory.
func DefaultSealedPaths() (documentPath, keyPath string) {
	directory := ConfigDirectory()
	return filepath.Join(directory, "tokens.age"), filepath.Join(directory, "tokens.key")
}

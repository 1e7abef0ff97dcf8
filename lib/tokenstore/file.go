// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tokenstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/netrunner-host/netrunner/lib/schema/account"
)

// documentCodec converts the slot document to and from its on-disk
// bytes.
type documentCodec interface {
	encode(slots) ([]byte, error)
	decode([]byte) (slots, error)
}

type jsonCodec struct{}

func (jsonCodec) encode(document slots) ([]byte, error) {
	data, err := json.MarshalIndent(document, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

func (jsonCodec) decode(data []byte) (slots, error) {
	var document slots
	err := json.Unmarshal(data, &document)
	return document, err
}

// FileStore is a Store backed by a single file. The whole document is
// loaded at open time and rewritten on every mutation.
type FileStore struct {
	path  string
	codec documentCodec

	mu    sync.Mutex
	slots slots
}

// OpenFile opens the JSON token file at path. A missing file is an
// empty store; the file is created on the first Set. A file that
// exists but does not parse is an error.
func OpenFile(path string) (*FileStore, error) {
	return openDocument(path, jsonCodec{})
}

func openDocument(path string, codec documentCodec) (*FileStore, error) {
	store := &FileStore{path: path, codec: codec}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return store, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading token file %s: %w", path, err)
	}
	if len(data) == 0 {
		return store, nil
	}

	document, err := codec.decode(data)
	if err != nil {
		return nil, fmt.Errorf("parsing token file %s: %w", path, err)
	}
	store.slots = document
	return store, nil
}

// Path returns the file the store persists to.
func (s *FileStore) Path() string { return s.path }

func (s *FileStore) Get(identity account.Role) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.slots.get(identity)
}

func (s *FileStore) Set(identity account.Role, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	updated := s.slots
	field, err := updated.field(identity)
	if err != nil {
		return err
	}
	*field = token

	data, err := s.codec.encode(updated)
	if err != nil {
		return fmt.Errorf("encoding token file: %w", err)
	}
	if err := writeFileAtomic(s.path, data); err != nil {
		return err
	}
	s.slots = updated
	return nil
}

func (s *FileStore) Clear(identity account.Role) error {
	return s.Set(identity, "")
}

// writeFileAtomic writes data to a temporary file in the target's
// directory and renames it into place, so readers see either the old
// document or the new one. The directory is created 0700 and the file
// ends up 0600.
func writeFileAtomic(path string, data []byte) error {
	directory := filepath.Dir(path)
	if err := os.MkdirAll(directory, 0700); err != nil {
		return fmt.Errorf("creating token directory %s: %w", directory, err)
	}

	temporary, err := os.CreateTemp(directory, ".tokens-*")
	if err != nil {
		return fmt.Errorf("creating temporary token file: %w", err)
	}
	temporaryPath := temporary.Name()
	defer os.Remove(temporaryPath)

	if err := temporary.Chmod(0600); err != nil {
		temporary.Close()
		return fmt.Errorf("setting token file mode: %w", err)
	}
	if _, err := temporary.Write(data); err != nil {
		temporary.Close()
		return fmt.Errorf("writing token file: %w", err)
	}
	if err := temporary.Sync(); err != nil {
		temporary.Close()
		return fmt.Errorf("syncing token file: %w", err)
	}
	if err := temporary.Close(); err != nil {
		return fmt.Errorf("closing token file: %w", err)
	}
	if err := os.Rename(temporaryPath, path); err != nil {
		return fmt.Errorf("replacing token file %s: %w", path, err)
	}
	return nil
}

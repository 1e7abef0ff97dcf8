// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tokenstore

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/netrunner-host/netrunner/lib/codec"
	"github.com/netrunner-host/netrunner/lib/sealed"
)

type sealedCodec struct {
	privateKey string
	publicKey  string
}

func (c sealedCodec) encode(document slots) ([]byte, error) {
	plaintext, err := codec.Marshal(document)
	if err != nil {
		return nil, err
	}
	return sealed.Encrypt(plaintext, []string{c.publicKey})
}

func (c sealedCodec) decode(data []byte) (slots, error) {
	plaintext, err := sealed.Decrypt(data, c.privateKey)
	if err != nil {
		return slots{}, err
	}
	var document slots
	err = codec.Unmarshal(plaintext, &document)
	return document, err
}

// OpenSealed opens an encrypted token document at documentPath using
// the age identity in keyPath. When keyPath does not exist a new
// keypair is generated and its private key written there with mode
// 0600. A document that cannot be decrypted with the key is an error.
func OpenSealed(documentPath, keyPath string) (*FileStore, error) {
	privateKey, err := loadOrCreateKey(keyPath)
	if err != nil {
		return nil, err
	}
	publicKey, err := sealed.PublicKeyOf(privateKey)
	if err != nil {
		return nil, fmt.Errorf("key file %s: %w", keyPath, err)
	}
	return openDocument(documentPath, sealedCodec{privateKey: privateKey, publicKey: publicKey})
}

func loadOrCreateKey(keyPath string) (string, error) {
	data, err := os.ReadFile(keyPath)
	if err == nil {
		return strings.TrimSpace(string(data)), nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("reading key file %s: %w", keyPath, err)
	}

	keypair, err := sealed.GenerateKeypair()
	if err != nil {
		return "", err
	}

	directory := filepath.Dir(keyPath)
	if err := os.MkdirAll(directory, 0700); err != nil {
		return "", fmt.Errorf("creating key directory %s: %w", directory, err)
	}
	file, err := os.OpenFile(keyPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
	if err != nil {
		return "", fmt.Errorf("creating key file %s: %w", keyPath, err)
	}
	if _, err := file.WriteString(keypair.PrivateKey + "\n"); err != nil {
		file.Close()
		return "", fmt.Errorf("writing key file %s: %w", keyPath, err)
	}
	if err := file.Close(); err != nil {
		return "", fmt.Errorf("closing key file %s: %w", keyPath, err)
	}
	return keypair.PrivateKey, nil
}

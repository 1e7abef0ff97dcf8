// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/netrunner-host/netrunner/lib/schema/account"
	"github.com/netrunner-host/netrunner/lib/testutil"
	"github.com/netrunner-host/netrunner/lib/tokenstore"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestDefault(t *testing.T) {
	configHome := testutil.IsolateEnv(t)
	cfg := Default()

	if cfg.API.BaseURL != DefaultAPIURL {
		t.Errorf("expected base_url=%s, got %s", DefaultAPIURL, cfg.API.BaseURL)
	}
	if want := filepath.Join(configHome, "netrunner", "tokens.json"); cfg.Storage.TokenFile != want {
		t.Errorf("expected token_file=%s, got %s", want, cfg.Storage.TokenFile)
	}
	if cfg.Storage.Sealed {
		t.Error("sealed storage should be off by default")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestLoad_NoFileUsesDefaults(t *testing.T) {
	testutil.IsolateEnv(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.API.BaseURL != DefaultAPIURL {
		t.Errorf("base_url = %s", cfg.API.BaseURL)
	}
	if cfg.LogLevel() != slog.LevelInfo {
		t.Errorf("log level = %v", cfg.LogLevel())
	}
}

func TestLoad_YAMLWithEnvironmentSection(t *testing.T) {
	testutil.IsolateEnv(t)

	path := writeConfig(t, "netrunner.yaml", `
environment: staging
api:
  base_url: https://prod.example/api
  timeout: 5s
staging:
  api:
    base_url: https://staging.example/api
  log:
    level: debug
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.API.BaseURL != "https://staging.example/api" {
		t.Errorf("staging override not applied: %s", cfg.API.BaseURL)
	}
	if cfg.Timeout() != 5*time.Second {
		t.Errorf("timeout = %v", cfg.Timeout())
	}
	if cfg.LogLevel() != slog.LevelDebug {
		t.Errorf("log level = %v", cfg.LogLevel())
	}
}

func TestLoad_JSONC(t *testing.T) {
	testutil.IsolateEnv(t)

	path := writeConfig(t, "netrunner.jsonc", `{
  // local fake server
  "api": {"base_url": "http://127.0.0.1:8080/api",},
  "storage": {"ephemeral": true},
}`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.API.BaseURL != "http://127.0.0.1:8080/api" {
		t.Errorf("base_url = %s", cfg.API.BaseURL)
	}
	if !cfg.Storage.Ephemeral {
		t.Error("ephemeral not set")
	}
}

func TestLoad_FromEnvironmentVariable(t *testing.T) {
	testutil.IsolateEnv(t)

	path := writeConfig(t, "netrunner.yaml", "api:\n  base_url: https://file.example/api\n")
	t.Setenv("NETRUNNER_CONFIG", path)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.API.BaseURL != "https://file.example/api" {
		t.Errorf("base_url = %s", cfg.API.BaseURL)
	}
}

func TestLoad_VariablesOverrideFile(t *testing.T) {
	testutil.IsolateEnv(t)

	path := writeConfig(t, "netrunner.yaml", "api:\n  base_url: https://file.example/api\nlog:\n  level: info\n")
	t.Setenv("NETRUNNER_API_URL", "https://env.example/api")
	t.Setenv("NETRUNNER_LOG_LEVEL", "WARN")
	t.Setenv("NETRUNNER_TOKEN_FILE", "/tmp/override/tokens.json")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.API.BaseURL != "https://env.example/api" {
		t.Errorf("base_url = %s", cfg.API.BaseURL)
	}
	if cfg.LogLevel() != slog.LevelWarn {
		t.Errorf("log level = %v", cfg.LogLevel())
	}
	if cfg.Storage.TokenFile != "/tmp/override/tokens.json" {
		t.Errorf("token_file = %s", cfg.Storage.TokenFile)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	testutil.IsolateEnv(t)
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("Load of a missing file should fail")
	}
}

func TestExpandVars(t *testing.T) {
	t.Setenv("NETRUNNER_TEST_VAR", "from-env")
	vars := map[string]string{"HOME": "/home/test"}

	tests := map[string]string{
		"${HOME}/tokens.json":                "/home/test/tokens.json",
		"${NETRUNNER_TEST_VAR}/x":            "from-env/x",
		"${NETRUNNER_UNSET_VAR:-fallback}/x": "fallback/x",
		"plain":                              "plain",
	}
	for input, want := range tests {
		if got := expandVars(input, vars); got != want {
			t.Errorf("expandVars(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestValidate(t *testing.T) {
	testutil.IsolateEnv(t)

	cfg := Default()
	cfg.Environment = "qa"
	cfg.API.BaseURL = "not a url"
	cfg.API.Timeout = "soon"
	cfg.Log.Level = "verbose"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation errors")
	}
	for _, fragment := range []string{"Environment", "BaseURL", "api.timeout", "Level"} {
		if !strings.Contains(err.Error(), fragment) {
			t.Errorf("validation error missing %q: %v", fragment, err)
		}
	}
}

func TestValidate_SealedNeedsKeyFile(t *testing.T) {
	testutil.IsolateEnv(t)

	cfg := Default()
	cfg.Storage.Sealed = true
	cfg.Storage.KeyFile = ""
	if err := cfg.Validate(); err == nil || !strings.Contains(err.Error(), "key_file") {
		t.Errorf("expected key_file error, got %v", err)
	}
}

func TestOpenTokenStore(t *testing.T) {
	testutil.IsolateEnv(t)
	directory := t.TempDir()

	cfg := Default()
	cfg.Storage.Ephemeral = true
	store, err := cfg.OpenTokenStore()
	if err != nil {
		t.Fatalf("OpenTokenStore(ephemeral): %v", err)
	}
	if _, ok := store.(*tokenstore.Memory); !ok {
		t.Errorf("ephemeral store is %T", store)
	}

	cfg = Default()
	cfg.Storage.TokenFile = filepath.Join(directory, "tokens.json")
	store, err = cfg.OpenTokenStore()
	if err != nil {
		t.Fatalf("OpenTokenStore(file): %v", err)
	}
	if err := store.Set(account.RoleCustomer, "abc"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if _, err := os.Stat(cfg.Storage.TokenFile); err != nil {
		t.Errorf("token file not written: %v", err)
	}

	cfg = Default()
	cfg.Storage.Sealed = true
	cfg.Storage.SealedFile = filepath.Join(directory, "tokens.age")
	cfg.Storage.KeyFile = filepath.Join(directory, "tokens.key")
	if _, err := cfg.OpenTokenStore(); err != nil {
		t.Fatalf("OpenTokenStore(sealed): %v", err)
	}
	if _, err := os.Stat(cfg.Storage.KeyFile); err != nil {
		t.Errorf("sealed key not generated: %v", err)
	}
}

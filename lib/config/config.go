// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/netrunner-host/netrunner/lib/tokenstore"
)

// DefaultAPIURL is the public storefront API.
const DefaultAPIURL = "https://ne7runner.ru/api"

// Environment represents the deployment environment of the API the
// client talks to.
type Environment string

const (
	Development Environment = "development"
	Staging     Environment = "staging"
	Production  Environment = "production"
)

// Config is the client configuration.
type Config struct {
	Environment Environment `yaml:"environment" validate:"oneof=development staging production"`

	API     APIConfig     `yaml:"api"`
	Storage StorageConfig `yaml:"storage"`
	Log     LogConfig     `yaml:"log"`

	// Per-environment overrides, applied after the base file is read.
	Development *Overrides `yaml:"development,omitempty" validate:"-"`
	Staging     *Overrides `yaml:"staging,omitempty" validate:"-"`
	Production  *Overrides `yaml:"production,omitempty" validate:"-"`
}

// Overrides contains the fields an environment section may replace.
type Overrides struct {
	API     *APIConfig     `yaml:"api,omitempty"`
	Storage *StorageConfig `yaml:"storage,omitempty"`
	Log     *LogConfig     `yaml:"log,omitempty"`
}

// APIConfig configures the storefront API client.
type APIConfig struct {
	// BaseURL is the API root; operation paths are appended to it.
	BaseURL string `yaml:"base_url" validate:"required,url"`

	// Timeout bounds each request, as a Go duration string. Empty
	// means the transport default (no client-side timeout).
	Timeout string `yaml:"timeout"`
}

// StorageConfig selects the token store backend.
type StorageConfig struct {
	// TokenFile is the JSON token document.
	TokenFile string `yaml:"token_file" validate:"required_without=Ephemeral"`

	// Sealed switches to the age-encrypted backend.
	Sealed bool `yaml:"sealed"`

	// SealedFile and KeyFile locate the encrypted document and its
	// identity. Defaults live next to the token file.
	SealedFile string `yaml:"sealed_file"`
	KeyFile    string `yaml:"key_file"`

	// Ephemeral keeps tokens in memory only.
	Ephemeral bool `yaml:"ephemeral"`
}

// LogConfig configures the client's log output.
type LogConfig struct {
	Level string `yaml:"level" validate:"oneof=debug info warn error"`

	// Output is a file that receives JSON log records in addition to
	// the normal sink. Empty disables it.
	Output string `yaml:"output"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	sealedFile, keyFile := tokenstore.DefaultSealedPaths()
	return &Config{
		Environment: Production,
		API: APIConfig{
			BaseURL: DefaultAPIURL,
		},
		Storage: StorageConfig{
			TokenFile:  tokenstore.DefaultPath(),
			SealedFile: sealedFile,
			KeyFile:    keyFile,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load resolves configuration from path, or from NETRUNNER_CONFIG when
// path is empty. With neither set the defaults apply. A .env file in
// the working directory is read first so it can supply any NETRUNNER_*
// variable, including NETRUNNER_CONFIG.
func Load(path string) (*Config, error) {
	if err := loadDotenv(".env"); err != nil {
		return nil, err
	}
	if path == "" {
		path = os.Getenv("NETRUNNER_CONFIG")
	}

	cfg := Default()
	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, fmt.Errorf("loading config %s: %w", path, err)
		}
	}

	cfg.applyEnvironmentOverrides()
	cfg.applyEnvironmentVariables()
	cfg.expandVariables()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// loadDotenv reads KEY=VALUE pairs from path into the process
// environment. Variables already set win over the file. A missing file
// is not an error.
func loadDotenv(path string) error {
	err := godotenv.Load(path)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("loading %s: %w", path, err)
}

// loadFile merges a YAML or JSONC file into c. JSONC is stripped of
// comments and trailing commas, which leaves JSON, which YAML parses.
func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if strings.EqualFold(filepath.Ext(path), ".jsonc") {
		data = jsonc.ToJSON(data)
	}
	return yaml.Unmarshal(data, c)
}

func (c *Config) applyEnvironmentOverrides() {
	var overrides *Overrides
	switch c.Environment {
	case Development:
		overrides = c.Development
	case Staging:
		overrides = c.Staging
	case Production:
		overrides = c.Production
	}
	if overrides == nil {
		return
	}

	if overrides.API != nil {
		if overrides.API.BaseURL != "" {
			c.API.BaseURL = overrides.API.BaseURL
		}
		if overrides.API.Timeout != "" {
			c.API.Timeout = overrides.API.Timeout
		}
	}
	if overrides.Storage != nil {
		if overrides.Storage.TokenFile != "" {
			c.Storage.TokenFile = overrides.Storage.TokenFile
		}
		if overrides.Storage.SealedFile != "" {
			c.Storage.SealedFile = overrides.Storage.SealedFile
		}
		if overrides.Storage.KeyFile != "" {
			c.Storage.KeyFile = overrides.Storage.KeyFile
		}
		// Booleans always apply from a present section.
		c.Storage.Sealed = overrides.Storage.Sealed
		c.Storage.Ephemeral = overrides.Storage.Ephemeral
	}
	if overrides.Log != nil {
		if overrides.Log.Level != "" {
			c.Log.Level = overrides.Log.Level
		}
		if overrides.Log.Output != "" {
			c.Log.Output = overrides.Log.Output
		}
	}
}

func (c *Config) applyEnvironmentVariables() {
	if value := os.Getenv("NETRUNNER_ENVIRONMENT"); value != "" {
		c.Environment = Environment(value)
	}
	if value := os.Getenv("NETRUNNER_API_URL"); value != "" {
		c.API.BaseURL = value
	}
	if value := os.Getenv("NETRUNNER_TOKEN_FILE"); value != "" {
		c.Storage.TokenFile = value
	}
	if value := os.Getenv("NETRUNNER_LOG_LEVEL"); value != "" {
		c.Log.Level = strings.ToLower(value)
	}
}

func (c *Config) expandVariables() {
	vars := map[string]string{
		"HOME":          os.Getenv("HOME"),
		"NETRUNNER_DIR": tokenstore.ConfigDirectory(),
	}
	c.API.BaseURL = expandVars(c.API.BaseURL, vars)
	c.Storage.TokenFile = expandVars(c.Storage.TokenFile, vars)
	c.Storage.SealedFile = expandVars(c.Storage.SealedFile, vars)
	c.Storage.KeyFile = expandVars(c.Storage.KeyFile, vars)
	c.Log.Output = expandVars(c.Log.Output, vars)
}

// varPattern matches ${VAR} and ${VAR:-default}.
var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		name := parts[1]
		defaultValue := parts[2]

		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the configuration. Struct-tag rules run first; the
// remaining checks cover what tags cannot express. All problems are
// reported together.
func (c *Config) Validate() error {
	var errs []error

	if err := validate.Struct(c); err != nil {
		var fieldErrors validator.ValidationErrors
		if errors.As(err, &fieldErrors) {
			for _, fieldError := range fieldErrors {
				errs = append(errs, fmt.Errorf("%s: failed %q check (value %v)",
					fieldError.Namespace(), fieldError.Tag(), fieldError.Value()))
			}
		} else {
			errs = append(errs, err)
		}
	}

	if c.API.Timeout != "" {
		if timeout, err := time.ParseDuration(c.API.Timeout); err != nil {
			errs = append(errs, fmt.Errorf("api.timeout: %w", err))
		} else if timeout < 0 {
			errs = append(errs, fmt.Errorf("api.timeout must not be negative"))
		}
	}

	if c.Storage.Sealed && !c.Storage.Ephemeral {
		if c.Storage.SealedFile == "" {
			errs = append(errs, fmt.Errorf("storage.sealed_file is required when storage.sealed is set"))
		}
		if c.Storage.KeyFile == "" {
			errs = append(errs, fmt.Errorf("storage.key_file is required when storage.sealed is set"))
		}
	}

	return errors.Join(errs...)
}

// Timeout returns the parsed request timeout, zero when unset.
func (c *Config) Timeout() time.Duration {
	timeout, _ := time.ParseDuration(c.API.Timeout)
	return timeout
}

// LogLevel maps Log.Level to a slog level.
func (c *Config) LogLevel() slog.Level {
	switch c.Log.Level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// OpenTokenStore constructs the backend Storage selects.
func (c *Config) OpenTokenStore() (tokenstore.Store, error) {
	switch {
	case c.Storage.Ephemeral:
		return tokenstore.NewMemory(), nil
	case c.Storage.Sealed:
		return tokenstore.OpenSealed(c.Storage.SealedFile, c.Storage.KeyFile)
	default:
		return tokenstore.OpenFile(c.Storage.TokenFile)
	}
}

// Package config loads server configuration through koanf: defaults, then
// an optional config.yaml, then CODESPLIT_* environment variables — later
// layers win, so a container can override any file setting.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// GitHub holds the OAuth App credentials.
type GitHub struct {
	ClientID     string `koanf:"clientId"`
	ClientSecret string `koanf:"clientSecret"`
	CallbackURL  string `koanf:"callbackUrl"`
}

// Config is everything the server needs to start.
type Config struct {
	Port      int    `koanf:"port"`
	DBPath    string `koanf:"dbPath"`
	JWTSecret string `koanf:"jwtSecret"`
	LogLevel  string `koanf:"logLevel"`
	GitHub    GitHub `koanf:"github"`
}

const envPrefix = "CODESPLIT_"

// Load reads configuration from the given YAML path (skipped when the file
// doesn't exist) and the environment.
//
// Environment names map underscores to nesting: CODESPLIT_PORT → port,
// CODESPLIT_GITHUB_CLIENTID → github.clientId. Matching is
// case-insensitive on unmarshal, so the flattened lowercase env keys land
// on the camelCase yaml keys.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	cfg := &Config{
		Port:     8080,
		DBPath:   "codesplit.db",
		LogLevel: "info",
	}

	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("config: reading %s: %w", path, err)
		}
	}

	err := k.Load(env.Provider(".", env.Opt{
		Prefix: envPrefix,
		TransformFunc: func(key, value string) (string, any) {
			key = strings.TrimPrefix(key, envPrefix)
			key = strings.ToLower(strings.ReplaceAll(key, "_", "."))
			return key, value
		},
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("config: loading environment: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshaling: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("config: jwtSecret is required (CODESPLIT_JWTSECRET)")
	}
	if c.GitHub.ClientID == "" || c.GitHub.ClientSecret == "" {
		return fmt.Errorf("config: github.clientId and github.clientSecret are required")
	}
	if c.GitHub.CallbackURL == "" {
		c.GitHub.CallbackURL = fmt.Sprintf("http://localhost:%d/auth/github/callback", c.Port)
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("config: invalid port %d", c.Port)
	}
	return nil
}

// Package config holds the server configuration, loaded from a YAML file
// with DOCDEX_* environment overrides layered on top.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Storage drivers.
const (
	DriverLocal = "local"
	DriverS3    = "s3"
	DriverMinio = "minio"
)

// Config is the full server configuration.
type Config struct {
	HTTP    HTTPConfig    `koanf:"http"`
	Storage StorageConfig `koanf:"storage"`
	Engine  EngineConfig  `koanf:"engine"`
	Logging LoggingConfig `koanf:"logging"`
}

// HTTPConfig configures the listener.
type HTTPConfig struct {
	Addr           string  `koanf:"addr"`
	ShutdownSec    int     `koanf:"shutdown_sec"`
	WriteRateLimit float64 `koanf:"write_rate_limit"`
	WriteRateBurst int     `koanf:"write_rate_burst"`
}

// StorageConfig selects and configures the durable root.
type StorageConfig struct {
	Driver string `koanf:"driver"`

	// Dir is the root directory for the local driver.
	Dir string `koanf:"dir"`

	// Bucket and Prefix apply to the s3 and minio drivers.
	Bucket string `koanf:"bucket"`
	Prefix string `koanf:"prefix"`

	// Endpoint, AccessKey, SecretKey and Insecure apply to the minio
	// driver. S3 credentials come from the standard AWS environment.
	Endpoint  string `koanf:"endpoint"`
	AccessKey string `koanf:"access_key"`
	SecretKey string `koanf:"secret_key"`
	Insecure  bool   `koanf:"insecure"`
}

// EngineConfig configures the envelope format of new writes.
type EngineConfig struct {
	Codec       string `koanf:"codec"`
	Compression string `koanf:"compression"`
}

// LoggingConfig configures the structured logger.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// Default returns the configuration used when no file or environment
// override is present.
func Default() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Addr:        ":3030",
			ShutdownSec: 10,
		},
		Storage: StorageConfig{
			Driver: DriverLocal,
			Dir:    "data",
		},
		Engine: EngineConfig{
			Codec:       "json",
			Compression: "none",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads the YAML file at path, if it exists, then overlays DOCDEX_*
// environment variables. Underscore-separated variables map onto nested
// keys, e.g. DOCDEX_STORAGE_DRIVER -> storage.driver.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := Default()

	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	if err := k.Load(env.Provider("DOCDEX_", ".", func(s string) string {
		s = strings.ToLower(strings.TrimPrefix(s, "DOCDEX_"))
		return strings.Replace(s, "_", ".", 1)
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

var validDrivers = map[string]bool{
	DriverLocal: true,
	DriverS3:    true,
	DriverMinio: true,
}

// Validate checks the configuration for values that cannot work.
func (c *Config) Validate() error {
	if !validDrivers[c.Storage.Driver] {
		return fmt.Errorf("invalid storage driver %q: must be one of local, s3, minio", c.Storage.Driver)
	}
	if c.Storage.Driver == DriverLocal && c.Storage.Dir == "" {
		return fmt.Errorf("storage dir is required for the local driver")
	}
	if c.Storage.Driver != DriverLocal && c.Storage.Bucket == "" {
		return fmt.Errorf("storage bucket is required for the %s driver", c.Storage.Driver)
	}
	if c.Storage.Driver == DriverMinio && c.Storage.Endpoint == "" {
		return fmt.Errorf("storage endpoint is required for the minio driver")
	}
	if c.HTTP.Addr == "" {
		return fmt.Errorf("http addr is required")
	}
	if c.HTTP.WriteRateLimit < 0 {
		return fmt.Errorf("write_rate_limit must be non-negative")
	}
	return nil
}

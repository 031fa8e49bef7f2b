package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
	require.NoError(t, err)

	assert.Equal(t, ":3030", cfg.HTTP.Addr)
	assert.Equal(t, DriverLocal, cfg.Storage.Driver)
	assert.Equal(t, "data", cfg.Storage.Dir)
	assert.Equal(t, "json", cfg.Engine.Codec)
	assert.Equal(t, "none", cfg.Engine.Compression)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "docdex.yml")
	require.NoError(t, os.WriteFile(path, []byte(`
http:
  addr: ":8080"
storage:
  driver: minio
  bucket: docs
  endpoint: localhost:9000
engine:
  compression: zstd
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, DriverMinio, cfg.Storage.Driver)
	assert.Equal(t, "docs", cfg.Storage.Bucket)
	assert.Equal(t, "zstd", cfg.Engine.Compression)
	// Untouched keys keep their defaults.
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("DOCDEX_STORAGE_DRIVER", "s3")
	t.Setenv("DOCDEX_STORAGE_BUCKET", "from-env")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
	require.NoError(t, err)

	assert.Equal(t, DriverS3, cfg.Storage.Driver)
	assert.Equal(t, "from-env", cfg.Storage.Bucket)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "unknown driver",
			mutate:  func(c *Config) { c.Storage.Driver = "ftp" },
			wantErr: "invalid storage driver",
		},
		{
			name: "s3 without bucket",
			mutate: func(c *Config) {
				c.Storage.Driver = DriverS3
				c.Storage.Bucket = ""
			},
			wantErr: "bucket is required",
		},
		{
			name: "minio without endpoint",
			mutate: func(c *Config) {
				c.Storage.Driver = DriverMinio
				c.Storage.Bucket = "b"
				c.Storage.Endpoint = ""
			},
			wantErr: "endpoint is required",
		},
		{
			name:    "negative rate limit",
			mutate:  func(c *Config) { c.HTTP.WriteRateLimit = -1 },
			wantErr: "write_rate_limit",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

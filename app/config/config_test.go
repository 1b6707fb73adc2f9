package config

import (
	"flag"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("serve", nil, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, StorageBadger, cfg.Storage)
	assert.Equal(t, 10, cfg.PageSize)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.Zero(t, cfg.CacheTTL)
}

func TestLoadFlags(t *testing.T) {
	cfg, err := Load("serve", []string{"-a", ":9090", "-page-size", "5", "-cache-ttl", "1m"}, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, 5, cfg.PageSize)
	assert.Equal(t, time.Minute, cfg.CacheTTL)
}

func TestLoadYAMLFileThenFlags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "yatube.yaml")
	body := "addr: \":7000\"\npage_size: 20\nlog_format: json\nsession_ttl: 2h\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))

	cfg, err := Load("serve", []string{"-c", path, "-page-size", "3"}, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, ":7000", cfg.Addr)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 2*time.Hour, cfg.SessionTTL)
	assert.Equal(t, 3, cfg.PageSize, "flags override the file")
}

func TestLoadYAMLUnknownField(t *testing.T) {
	cfg := LoadDefaults()
	err := cfg.LoadYAML(strings.NewReader("bogus: 1\n"))
	assert.Error(t, err)
}

func TestLoadYAMLEmpty(t *testing.T) {
	cfg := LoadDefaults()
	require.NoError(t, cfg.LoadYAML(strings.NewReader("")))
	assert.Equal(t, ":8080", cfg.Addr)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"defaults", func(*Config) {}, true},
		{"postgres without dsn", func(c *Config) { c.Storage = StoragePostgres; c.Media = MediaS3; c.S3Bucket = "b" }, false},
		{"postgres with s3", func(c *Config) {
			c.Storage = StoragePostgres
			c.DatabaseDSN = "postgres://localhost/yatube"
			c.Media = MediaS3
			c.S3Bucket = "b"
		}, true},
		{"postgres with badger media", func(c *Config) { c.Storage = StoragePostgres; c.DatabaseDSN = "x" }, false},
		{"unknown storage", func(c *Config) { c.Storage = "mysql" }, false},
		{"s3 without bucket", func(c *Config) { c.Media = MediaS3 }, false},
		{"zero page size", func(c *Config) { c.PageSize = 0 }, false},
		{"empty secret", func(c *Config) { c.SecretKey = "" }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := LoadDefaults()
			tt.mutate(cfg)
			if tt.ok {
				assert.NoError(t, cfg.Validate())
			} else {
				assert.Error(t, cfg.Validate())
			}
		})
	}
}

func TestLoadBadFlag(t *testing.T) {
	_, err := Load("serve", []string{"-nope"}, io.Discard)
	assert.Error(t, err)
}

func TestConfigPath(t *testing.T) {
	assert.Equal(t, "a.yaml", configPath([]string{"-c", "a.yaml"}))
	assert.Equal(t, "b.yaml", configPath([]string{"-a", ":1", "--config=b.yaml"}))
	assert.Equal(t, "", configPath([]string{"-a", ":1"}))
	assert.Equal(t, "", configPath([]string{"c", "x"}))
}

func TestLoadExtraFlags(t *testing.T) {
	var username string
	cfg, err := Load("user", []string{"-username", "leo", "-page-size", "3"}, io.Discard, func(fs *flag.FlagSet) {
		fs.StringVar(&username, "username", "", "")
	})
	require.NoError(t, err)
	assert.Equal(t, "leo", username)
	assert.Equal(t, 3, cfg.PageSize)
}

func TestEnsureSecret(t *testing.T) {
	cfg := LoadDefaults()
	require.Equal(t, DefaultSecretKey, cfg.SecretKey)

	generated, err := cfg.EnsureSecret()
	require.NoError(t, err)
	assert.True(t, generated)
	assert.NotEqual(t, DefaultSecretKey, cfg.SecretKey)
	assert.Len(t, cfg.SecretKey, 64)

	other := LoadDefaults()
	_, err = other.EnsureSecret()
	require.NoError(t, err)
	assert.NotEqual(t, cfg.SecretKey, other.SecretKey)

	custom := LoadDefaults()
	custom.SecretKey = "s3cr3t"
	generated, err = custom.EnsureSecret()
	require.NoError(t, err)
	assert.False(t, generated)
	assert.Equal(t, "s3cr3t", custom.SecretKey)
}
